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

// Package giantbomb is the GiantBomb catalog adapter.
package giantbomb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/providers/cache"
	"github.com/codecollision/gamedex/pkg/shared/httpclient"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the public GiantBomb API.
	DefaultBaseURL = "https://www.giantbomb.com/api"

	gameResourcePrefix  = "3030-"
	videoResourcePrefix = "2300-"
)

var (
	searchFields   = []string{"id", "name", "original_release_date", "image", "platforms", "site_detail_url", "expected_release_day", "expected_release_month", "expected_release_quarter", "expected_release_year"}
	detailFields   = []string{"id", "name", "original_release_date", "image"}
	dataFields     = []string{"description", "site_detail_url", "videos"}
	platformFields = []string{"platforms"}
)

// Options configures a Client.
type Options struct {
	HTTP    *httpclient.Client
	Clock   clockwork.Clock
	BaseURL string
	APIKey  string
}

// Client talks to the GiantBomb API. Item details and item data are cached
// per GiantBomb id with concurrent requests for the same id coalesced;
// videos are cached but not coalesced.
type Client struct {
	http        *httpclient.Client
	clock       clockwork.Clock
	detailCache *cache.Cache[*Result]
	dataCache   *cache.Cache[*ItemData]
	videoCache  *cache.Cache[*Video]
	baseURL     string
	apiKey      string
}

// New creates a GiantBomb client.
func New(opts Options) *Client {
	c := &Client{
		http:        opts.HTTP,
		clock:       opts.Clock,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		apiKey:      opts.APIKey,
		detailCache: cache.New[*Result]("giantbomb_detail"),
		dataCache:   cache.New[*ItemData]("giantbomb_data"),
		videoCache:  cache.New[*Video]("giantbomb_video"),
	}
	if c.http == nil {
		c.http = httpclient.NewClient(httpclient.Options{Provider: string(catalog.ProviderGiantBomb)})
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	return c
}

// Search runs a game search for keywords. No results is an empty slice.
func (c *Client) Search(ctx context.Context, keywords string) ([]Result, error) {
	params := url.Values{}
	params.Set("query", keywords)
	params.Set("resources", "game")

	var results []Result
	if err := c.get(ctx, "/search/", params, searchFields, &results); err != nil {
		return nil, fmt.Errorf("failed to search GiantBomb for %q: %w", keywords, err)
	}

	log.Debug().Str("keywords", keywords).Int("results", len(results)).Msg("GiantBomb search")
	return results, nil
}

// SearchItems runs Search and parses every result.
func (c *Client) SearchItems(ctx context.Context, keywords string) ([]catalog.DetailItem, error) {
	results, err := c.Search(ctx, keywords)
	if err != nil {
		return nil, err
	}
	items := make([]catalog.DetailItem, 0, len(results))
	for i := range results {
		items = append(items, c.ParseResult(&results[i]))
	}
	return items, nil
}

// ItemDetail returns the parsed detail record for a GiantBomb id.
func (c *Client) ItemDetail(ctx context.Context, gbombID string) (*catalog.DetailItem, error) {
	result, err := c.detailCache.Fetch(ctx, gbombID, func(ctx context.Context) (*Result, error) {
		var r Result
		if err := c.get(ctx, gamePath(gbombID), nil, detailFields, &r); err != nil {
			return nil, fmt.Errorf("failed to get GiantBomb item %s: %w", gbombID, err)
		}
		return &r, nil
	})
	if err != nil {
		return nil, err
	}

	item := c.ParseResult(result)
	return &item, nil
}

// ItemData returns the description, site page and videos for a GiantBomb
// id.
func (c *Client) ItemData(ctx context.Context, gbombID string) (*ItemData, error) {
	return c.dataCache.Fetch(ctx, gbombID, func(ctx context.Context) (*ItemData, error) {
		var data ItemData
		if err := c.get(ctx, gamePath(gbombID), nil, dataFields, &data); err != nil {
			return nil, fmt.Errorf("failed to get GiantBomb item data %s: %w", gbombID, err)
		}
		return &data, nil
	})
}

// ItemPlatforms returns the platforms a GiantBomb game was released on.
func (c *Client) ItemPlatforms(ctx context.Context, gbombID string) ([]Platform, error) {
	var r Result
	if err := c.get(ctx, gamePath(gbombID), nil, platformFields, &r); err != nil {
		return nil, fmt.Errorf("failed to get GiantBomb platforms %s: %w", gbombID, err)
	}
	return r.Platforms, nil
}

// Video returns a GiantBomb video. Results are cached but concurrent
// requests for the same video are not coalesced.
func (c *Client) Video(ctx context.Context, videoID string) (*Video, error) {
	if v, ok := c.videoCache.Get(videoID); ok {
		return v, nil
	}

	var v Video
	if err := c.get(ctx, "/video/"+videoResourcePrefix+url.PathEscape(videoID)+"/", nil, nil, &v); err != nil {
		return nil, fmt.Errorf("failed to get GiantBomb video %s: %w", videoID, err)
	}
	c.videoCache.Set(videoID, &v)
	return &v, nil
}

func gamePath(gbombID string) string {
	return "/game/" + gameResourcePrefix + url.PathEscape(gbombID) + "/"
}

// get requests path and decodes the response's results into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, fields []string, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("format", "json")
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if len(fields) > 0 {
		params.Set("field_list", strings.Join(fields, ","))
	}

	body, err := c.http.GetBody(ctx, c.baseURL+path+"?"+params.Encode())
	if err != nil {
		return err
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if resp.StatusCode != statusOK {
		return fmt.Errorf("API error: %s (code %d)", resp.Error, resp.StatusCode)
	}
	if len(resp.Results) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Results, out); err != nil {
		return fmt.Errorf("failed to decode results: %w", err)
	}
	return nil
}
