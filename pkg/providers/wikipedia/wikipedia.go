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

// Package wikipedia finds the Wikipedia article of an item through the
// MediaWiki opensearch and page info APIs.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/providers/cache"
	"github.com/codecollision/gamedex/pkg/shared/httpclient"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the English Wikipedia API endpoint.
const DefaultBaseURL = "https://en.wikipedia.org/w/api.php"

// Matcher picks the page title that matches an item out of search results.
type Matcher interface {
	FindWikipediaMatch(titles []string, item *catalog.SourceItem) (catalog.SearchCandidate, bool)
}

// Options configures a Client.
type Options struct {
	HTTP    *httpclient.Client
	BaseURL string
}

// Client talks to the Wikipedia API. Page URLs are cached per source item
// id.
type Client struct {
	http    *httpclient.Client
	pages   *cache.Cache[string]
	baseURL string
}

type pageInfo struct {
	Title   string `json:"title"`
	FullURL string `json:"fullurl"`
	PageID  int    `json:"pageid"`
}

type queryResponse struct {
	Query struct {
		Pages map[string]pageInfo `json:"pages"`
	} `json:"query"`
}

// New creates a Wikipedia client.
func New(opts Options) *Client {
	c := &Client{
		http:    opts.HTTP,
		baseURL: opts.BaseURL,
		pages:   cache.New[string]("wikipedia_page"),
	}
	if c.http == nil {
		c.http = httpclient.NewClient(httpclient.Options{Provider: string(catalog.ProviderWikipedia)})
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	return c
}

// Search returns the page titles opensearch suggests for title.
func (c *Client) Search(ctx context.Context, title string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "opensearch")
	params.Set("format", "json")
	params.Set("search", title)

	var data []json.RawMessage
	if err := c.get(ctx, params, &data); err != nil {
		return nil, fmt.Errorf("failed to search Wikipedia for %q: %w", title, err)
	}
	if len(data) < 2 {
		return nil, nil
	}

	var titles []string
	if err := json.Unmarshal(data[1], &titles); err != nil {
		return nil, fmt.Errorf("failed to decode Wikipedia search titles: %w", err)
	}
	return titles, nil
}

// PageURL returns the full URL of the page titled pageTitle.
func (c *Client) PageURL(ctx context.Context, pageTitle string) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("titles", pageTitle)
	params.Set("prop", "info")
	params.Set("inprop", "url")

	var resp queryResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return "", fmt.Errorf("failed to query Wikipedia page %q: %w", pageTitle, err)
	}

	keys := make([]string, 0, len(resp.Query.Pages))
	for k := range resp.Query.Pages {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if u := resp.Query.Pages[k].FullURL; u != "" {
			return u, nil
		}
	}
	return "", fmt.Errorf("wikipedia page %q: %w", pageTitle, httpclient.ErrNotFound)
}

// Page returns the URL of the Wikipedia article for item, searching by
// title and choosing among the results with m. The result is cached under
// the item's id. catalog.ErrNoMatch is returned when the search found
// nothing.
func (c *Client) Page(
	ctx context.Context,
	title string,
	item *catalog.SourceItem,
	m Matcher,
) (string, error) {
	return c.pages.Fetch(ctx, item.ID, func(ctx context.Context) (string, error) {
		titles, err := c.Search(ctx, title)
		if err != nil {
			return "", err
		}
		match, ok := m.FindWikipediaMatch(titles, item)
		if !ok {
			return "", fmt.Errorf("wikipedia search %q: %w", title, catalog.ErrNoMatch)
		}
		pageURL, err := c.PageURL(ctx, match.Name)
		if err != nil {
			return "", err
		}
		log.Debug().Str("item", item.ID).Str("page", pageURL).Msg("Wikipedia page")
		return pageURL, nil
	})
}

func (c *Client) get(ctx context.Context, params url.Values, v any) error {
	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	body, err := c.http.GetBody(ctx, c.baseURL+sep+params.Encode())
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
