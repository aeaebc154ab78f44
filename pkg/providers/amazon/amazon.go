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

// Package amazon is the Amazon product catalog adapter.
package amazon

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/providers/cache"
	"github.com/codecollision/gamedex/pkg/shared/httpclient"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the Product Advertising endpoint.
	DefaultBaseURL = "https://webservices.amazon.com/onca/xml"

	searchIndex = "VideoGames"
)

// Options configures a Client.
type Options struct {
	HTTP         *httpclient.Client
	Clock        clockwork.Clock
	BaseURL      string
	AssociateTag string
	AccessKey    string
}

// Client talks to the Amazon product catalog. Item details and offers are
// cached per ASIN with concurrent requests for the same ASIN coalesced.
type Client struct {
	http         *httpclient.Client
	clock        clockwork.Clock
	searchCache  *cache.Cache[[]Item]
	detailCache  *cache.Cache[*Item]
	offersCache  *cache.Cache[*catalog.Offers]
	baseURL      string
	associateTag string
	accessKey    string
}

// New creates an Amazon client.
func New(opts Options) *Client {
	c := &Client{
		http:         opts.HTTP,
		clock:        opts.Clock,
		baseURL:      opts.BaseURL,
		associateTag: opts.AssociateTag,
		accessKey:    opts.AccessKey,
		searchCache:  cache.New[[]Item]("amazon_search"),
		detailCache:  cache.New[*Item]("amazon_detail"),
		offersCache:  cache.New[*catalog.Offers]("amazon_offers"),
	}
	if c.http == nil {
		c.http = httpclient.NewClient(httpclient.Options{Provider: string(catalog.ProviderAmazon)})
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	return c
}

// Search runs a video game search for keywords, restricted to browseNode
// unless it is 0. With suppressDuplicates set, identical searches share one
// request and their results are kept for later identical searches.
func (c *Client) Search(
	ctx context.Context,
	keywords string,
	browseNode int64,
	suppressDuplicates bool,
) ([]Item, error) {
	search := func(ctx context.Context) ([]Item, error) {
		params := url.Values{}
		params.Set("Operation", "ItemSearch")
		params.Set("SearchIndex", searchIndex)
		params.Set("Keywords", keywords)
		params.Set("ResponseGroup", "Medium,OfferSummary")
		if browseNode != 0 {
			params.Set("BrowseNode", strconv.FormatInt(browseNode, 10))
		}

		resp, err := c.request(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("failed to search Amazon for %q: %w", keywords, err)
		}
		log.Debug().
			Str("keywords", keywords).
			Int64("browseNode", browseNode).
			Int("results", len(resp.Items.Item)).
			Msg("Amazon search")
		return resp.Items.Item, nil
	}

	if !suppressDuplicates {
		return search(ctx)
	}
	key := keywords + "|" + strconv.FormatInt(browseNode, 10)
	return c.searchCache.Fetch(ctx, key, search)
}

// SearchItems runs Search and parses every result. Filtered items are
// included and flagged.
func (c *Client) SearchItems(
	ctx context.Context,
	keywords string,
	browseNode int64,
	suppressDuplicates bool,
) ([]catalog.DetailItem, error) {
	items, err := c.Search(ctx, keywords, browseNode, suppressDuplicates)
	if err != nil {
		return nil, err
	}
	parsed := make([]catalog.DetailItem, 0, len(items))
	for i := range items {
		parsed = append(parsed, c.ParseItem(&items[i], false))
	}
	return parsed, nil
}

// ItemDetail returns the parsed detail record for an ASIN.
func (c *Client) ItemDetail(ctx context.Context, asin string) (*catalog.DetailItem, error) {
	item, err := c.detailCache.Fetch(ctx, asin, func(ctx context.Context) (*Item, error) {
		return c.lookup(ctx, asin, "Medium,OfferSummary,EditorialReview")
	})
	if err != nil {
		return nil, err
	}

	detail := c.ParseItem(item, true)
	return &detail, nil
}

// ItemOffers returns the current price snapshot for an ASIN.
func (c *Client) ItemOffers(ctx context.Context, asin string) (*catalog.Offers, error) {
	return c.offersCache.Fetch(ctx, asin, func(ctx context.Context) (*catalog.Offers, error) {
		item, err := c.lookup(ctx, asin, "Offers,OfferSummary")
		if err != nil {
			return nil, err
		}
		return parseOffers(item), nil
	})
}

func (c *Client) lookup(ctx context.Context, asin, responseGroup string) (*Item, error) {
	params := url.Values{}
	params.Set("Operation", "ItemLookup")
	params.Set("ItemId", asin)
	params.Set("ResponseGroup", responseGroup)

	resp, err := c.request(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to look up Amazon item %s: %w", asin, err)
	}
	if len(resp.Items.Item) == 0 {
		return nil, fmt.Errorf("amazon item %s: %w", asin, httpclient.ErrNotFound)
	}
	return &resp.Items.Item[0], nil
}

// request performs an API call and decodes the XML response. A search
// without matches is an empty response, not an error.
func (c *Client) request(ctx context.Context, params url.Values) (*Response, error) {
	params.Set("Service", "AWSECommerceService")
	if c.associateTag != "" {
		params.Set("AssociateTag", c.associateTag)
	}
	if c.accessKey != "" {
		params.Set("AWSAccessKeyId", c.accessKey)
	}

	sep := "?"
	if strings.Contains(c.baseURL, "?") {
		sep = "&"
	}
	body, err := c.http.GetBody(ctx, c.baseURL+sep+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp Response
	if err := xml.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(resp.Items.Request.Errors) > 0 {
		e := resp.Items.Request.Errors[0]
		if e.Code == noExactMatches {
			return &Response{}, nil
		}
		return nil, fmt.Errorf("API error: %s (code %s)", e.Message, e.Code)
	}
	return &resp, nil
}
