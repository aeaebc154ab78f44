// Gamedex
// Copyright (c) 2025 The Gamedex Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Gamedex.
//
// Gamedex is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gamedex is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gamedex.  If not, see <http://www.gnu.org/licenses/>.

package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMatcher struct {
	mock.Mock
}

func (m *mockMatcher) FindWikipediaMatch(
	titles []string,
	item *catalog.SourceItem,
) (catalog.SearchCandidate, bool) {
	args := m.Called(titles, item)
	return args.Get(0).(catalog.SearchCandidate), args.Bool(1) //nolint:forcetypeassert // test mock
}

func newWikiServer(t *testing.T, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		q := r.URL.Query()
		switch q.Get("action") {
		case "opensearch":
			if q.Get("search") == "Nothing" {
				_, _ = w.Write([]byte(`["Nothing",[],[],[]]`))
				return
			}
			_, _ = w.Write([]byte(`["Halo 3",["Halo 3","Halo 3: ODST"],["",""],["",""]]`))
		case "query":
			assert.Equal(t, "info", q.Get("prop"))
			assert.Equal(t, "url", q.Get("inprop"))
			_, _ = w.Write([]byte(`{"query":{"pages":{"1234":{"pageid":1234,"title":"` + q.Get("titles") +
				`","fullurl":"https://en.wikipedia.org/wiki/Halo_3"}}}}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSearch(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := newWikiServer(t, &requests)
	c := New(Options{BaseURL: server.URL})

	titles, err := c.Search(context.Background(), "Halo 3")
	require.NoError(t, err)
	assert.Equal(t, []string{"Halo 3", "Halo 3: ODST"}, titles)

	titles, err = c.Search(context.Background(), "Nothing")
	require.NoError(t, err)
	assert.Empty(t, titles)
}

func TestPageURL(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := newWikiServer(t, &requests)
	c := New(Options{BaseURL: server.URL})

	u, err := c.PageURL(context.Background(), "Halo 3")
	require.NoError(t, err)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Halo_3", u)
}

func TestPageURL_NoPages(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"query":{"pages":{}}}`))
	}))
	t.Cleanup(server.Close)
	c := New(Options{BaseURL: server.URL})

	_, err := c.PageURL(context.Background(), "Missing")
	require.Error(t, err)
}

func TestPage_CachedByItemID(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := newWikiServer(t, &requests)
	c := New(Options{BaseURL: server.URL})

	item := catalog.NewSourceItem("item-1", "Halo 3", "Xbox 360")
	m := &mockMatcher{}
	m.On("FindWikipediaMatch", []string{"Halo 3", "Halo 3: ODST"}, item).
		Return(catalog.SearchCandidate{Name: "Halo 3"}, true).Once()

	for range 2 {
		u, err := c.Page(context.Background(), "Halo 3", item, m)
		require.NoError(t, err)
		assert.Equal(t, "https://en.wikipedia.org/wiki/Halo_3", u)
	}
	assert.Equal(t, int32(2), requests.Load())
	m.AssertExpectations(t)
}

func TestPage_NoMatch(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	server := newWikiServer(t, &requests)
	c := New(Options{BaseURL: server.URL})

	item := catalog.NewSourceItem("item-2", "Nothing", "")
	m := &mockMatcher{}
	m.On("FindWikipediaMatch", mock.Anything, item).Return(catalog.SearchCandidate{}, false)

	_, err := c.Page(context.Background(), "Nothing", item, m)
	require.ErrorIs(t, err, catalog.ErrNoMatch)
}
