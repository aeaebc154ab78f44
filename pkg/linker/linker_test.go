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

package linker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAmazon struct {
	mock.Mock
}

func (m *mockAmazon) SearchItems(
	ctx context.Context,
	keywords string,
	browseNode int64,
	suppressDuplicates bool,
) ([]catalog.DetailItem, error) {
	args := m.Called(ctx, keywords, browseNode, suppressDuplicates)
	items, _ := args.Get(0).([]catalog.DetailItem)
	return items, args.Error(1)
}

func (m *mockAmazon) ItemDetail(ctx context.Context, asin string) (*catalog.DetailItem, error) {
	args := m.Called(ctx, asin)
	item, _ := args.Get(0).(*catalog.DetailItem)
	return item, args.Error(1)
}

type mockGiantBomb struct {
	mock.Mock
}

func (m *mockGiantBomb) SearchItems(ctx context.Context, keywords string) ([]catalog.DetailItem, error) {
	args := m.Called(ctx, keywords)
	items, _ := args.Get(0).([]catalog.DetailItem)
	return items, args.Error(1)
}

func (m *mockGiantBomb) ItemDetail(ctx context.Context, gbombID string) (*catalog.DetailItem, error) {
	args := m.Called(ctx, gbombID)
	item, _ := args.Get(0).(*catalog.DetailItem)
	return item, args.Error(1)
}

func detail(id, name, platform, releaseDate string) catalog.DetailItem {
	return catalog.DetailItem{ID: id, Name: name, Platform: platform, ReleaseDate: releaseDate}
}

func haloItem() *catalog.SourceItem {
	item := catalog.NewSourceItem("item-1", "Halo 3 (Limited Edition)", "Xbox 360")
	item.ReleaseDate = "2007-09-25"
	return item
}

func TestFindMatch_GiantBomb(t *testing.T) {
	t.Parallel()

	gb := &mockGiantBomb{}
	gb.On("SearchItems", mock.Anything, "halo 3").Return([]catalog.DetailItem{
		detail("1", "Halo 3: ODST", "n/a", "2009-09-22"),
		detail("2", "Halo 3", "n/a", "2007-09-25"),
		detail("3", "Halo Wars", "n/a", "2009-02-26"),
	}, nil)

	l := New(&mockAmazon{}, gb, nil, nil)
	match, err := l.FindMatch(context.Background(), haloItem(), catalog.ProviderAmazon, Options{})
	require.NoError(t, err)
	assert.Equal(t, "2", match.ID)
	gb.AssertExpectations(t)
}

func TestFindMatch_GiantBombTieKeepsFirst(t *testing.T) {
	t.Parallel()

	gb := &mockGiantBomb{}
	gb.On("SearchItems", mock.Anything, "halo 3").Return([]catalog.DetailItem{
		detail("1", "Halo 3", "n/a", catalog.UnknownDate),
		detail("2", "Halo 3", "n/a", catalog.UnknownDate),
	}, nil)

	l := New(&mockAmazon{}, gb, nil, nil)
	match, err := l.FindMatch(context.Background(), haloItem(), catalog.ProviderAmazon, Options{})
	require.NoError(t, err)
	assert.Equal(t, "1", match.ID)
}

func TestFindMatch_GiantBombEmpty(t *testing.T) {
	t.Parallel()

	gb := &mockGiantBomb{}
	gb.On("SearchItems", mock.Anything, "halo 3").Return([]catalog.DetailItem{}, nil)

	l := New(&mockAmazon{}, gb, nil, nil)
	_, err := l.FindMatch(context.Background(), haloItem(), catalog.ProviderAmazon, Options{})
	require.ErrorIs(t, err, ErrNoMatch)
}

func TestFindMatch_AmazonUsesBrowseNode(t *testing.T) {
	t.Parallel()

	amazon := &mockAmazon{}
	amazon.On("SearchItems", mock.Anything, "Halo 3 (Limited Edition)", int64(14220161), true).
		Return([]catalog.DetailItem{
			{ID: "GUIDE", Name: "Halo 3 Guide", Filtered: true},
			detail("B000FRU0NU", "Halo 3", "Xbox 360", "2007-09-25"),
		}, nil).Once()

	l := New(amazon, &mockGiantBomb{}, nil, nil)
	match, err := l.FindMatch(context.Background(), haloItem(), catalog.ProviderGiantBomb, Options{SuppressDuplicates: true})
	require.NoError(t, err)
	assert.Equal(t, "B000FRU0NU", match.ID)
	amazon.AssertExpectations(t)
}

func TestFindMatch_AmazonRetriesWithoutPlatform(t *testing.T) {
	t.Parallel()

	amazon := &mockAmazon{}
	amazon.On("SearchItems", mock.Anything, "Halo 3 (Limited Edition)", int64(14220161), false).
		Return([]catalog.DetailItem{{ID: "GUIDE", Name: "Halo 3 Guide", Filtered: true}}, nil).Once()
	amazon.On("SearchItems", mock.Anything, "Halo 3 (Limited Edition)", int64(0), false).
		Return([]catalog.DetailItem{detail("B000FRU0NU", "Halo 3", "n/a", "2007-09-25")}, nil).Once()

	l := New(amazon, &mockGiantBomb{}, nil, nil)
	match, err := l.FindMatch(context.Background(), haloItem(), catalog.ProviderGiantBomb, Options{})
	require.NoError(t, err)
	assert.Equal(t, "B000FRU0NU", match.ID)
	amazon.AssertExpectations(t)
}

func TestFindMatch_AmazonRetriesOnce(t *testing.T) {
	t.Parallel()

	item := catalog.NewSourceItem("item-2", "Obscure Game", "")
	amazon := &mockAmazon{}
	amazon.On("SearchItems", mock.Anything, "Obscure Game", int64(0), false).
		Return([]catalog.DetailItem{}, nil).Twice()

	l := New(amazon, &mockGiantBomb{}, nil, nil)
	_, err := l.FindMatch(context.Background(), item, catalog.ProviderGiantBomb, Options{})
	require.ErrorIs(t, err, ErrNoMatch)
	amazon.AssertNumberOfCalls(t, "SearchItems", 2)
}

func TestFindMatch_TransportErrorNotRetried(t *testing.T) {
	t.Parallel()

	transportErr := errors.New("connection reset")
	amazon := &mockAmazon{}
	amazon.On("SearchItems", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, transportErr)

	l := New(amazon, &mockGiantBomb{}, nil, nil)
	_, err := l.FindMatch(context.Background(), haloItem(), catalog.ProviderGiantBomb, Options{})
	require.ErrorIs(t, err, transportErr)
	assert.NotErrorIs(t, err, ErrNoMatch)
	amazon.AssertNumberOfCalls(t, "SearchItems", 1)
}

func TestFindMatch_UnknownProvider(t *testing.T) {
	t.Parallel()

	l := New(&mockAmazon{}, &mockGiantBomb{}, nil, nil)
	_, err := l.FindMatch(context.Background(), haloItem(), catalog.ProviderSteam, Options{})
	require.ErrorIs(t, err, ErrUnknownProvider)
}

func TestFindWikipediaMatch(t *testing.T) {
	t.Parallel()

	l := New(&mockAmazon{}, &mockGiantBomb{}, nil, nil)
	item := catalog.NewSourceItem("item-1", "The Witcher 3", "PC")

	match, ok := l.FindWikipediaMatch([]string{"Witcher", "witcher 3", "The Witcher 3: Wild Hunt"}, item)
	require.True(t, ok)
	assert.Equal(t, "witcher 3", match.Name)

	_, ok = l.FindWikipediaMatch(nil, item)
	assert.False(t, ok)

	called := false
	l.WikipediaMatch(nil, item, func(catalog.SearchCandidate) { called = true })
	assert.False(t, called)
}

func TestGetLinkedItemData(t *testing.T) {
	t.Parallel()

	gbDetail := &catalog.DetailItem{ID: "20686", Name: "Halo 3"}
	amazonDetail := &catalog.DetailItem{ID: "B000FRU0NU", Name: "Halo 3"}

	amazon := &mockAmazon{}
	amazon.On("ItemDetail", mock.Anything, "B000FRU0NU").Return(amazonDetail, nil)
	gb := &mockGiantBomb{}
	gb.On("ItemDetail", mock.Anything, "20686").Return(gbDetail, nil)

	item := haloItem()
	item.ASIN = "B000FRU0NU"
	item.GBombID = "20686"

	l := New(amazon, gb, nil, nil)

	got, err := l.GetLinkedItemData(context.Background(), item, catalog.ProviderAmazon)
	require.NoError(t, err)
	assert.Same(t, gbDetail, got)

	got, err = l.GetLinkedItemData(context.Background(), item, catalog.ProviderGiantBomb)
	require.NoError(t, err)
	assert.Same(t, amazonDetail, got)

	_, err = l.GetLinkedItemData(context.Background(), item, catalog.ProviderWikipedia)
	require.ErrorIs(t, err, ErrUnknownProvider)
}

func TestFindMatchAsync_ExactlyOneCallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		results []catalog.DetailItem
		err     error
		name    string
		matched bool
	}{
		{name: "match", results: []catalog.DetailItem{detail("1", "Halo 3", "n/a", "")}, matched: true},
		{name: "no match", results: []catalog.DetailItem{}},
		{name: "transport error", err: errors.New("timeout")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gb := &mockGiantBomb{}
			gb.On("SearchItems", mock.Anything, "halo 3").Return(tt.results, tt.err)
			l := New(&mockAmazon{}, gb, nil, nil)

			calls := make(chan string, 2)
			l.FindMatchAsync(context.Background(), haloItem(), catalog.ProviderAmazon, Options{},
				func(*catalog.DetailItem) { calls <- "match" },
				func(error) { calls <- "nomatch" },
			)

			select {
			case got := <-calls:
				if tt.matched {
					assert.Equal(t, "match", got)
				} else {
					assert.Equal(t, "nomatch", got)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("no callback")
			}
			select {
			case extra := <-calls:
				t.Fatalf("unexpected second callback %q", extra)
			case <-time.After(50 * time.Millisecond):
			}
		})
	}
}

func TestLookupStates(t *testing.T) {
	t.Parallel()

	lk := newLookup("id", "item", "amazon")
	require.True(t, lk.to(StateSearching))
	require.True(t, lk.to(StateScoring))
	require.True(t, lk.to(StateRetrySearching))
	require.True(t, lk.to(StateScoring))
	require.True(t, lk.to(StateMatched))
	assert.True(t, lk.state.Terminal())

	assert.False(t, lk.to(StateUnmatched), "a finished lookup cannot end twice")
	assert.Equal(t, StateMatched, lk.state)
	assert.Equal(t, []State{
		StateIdle, StateSearching, StateScoring, StateRetrySearching, StateScoring, StateMatched,
	}, lk.history)
	assert.Equal(t, "retry_searching", StateRetrySearching.String())
}
