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

// Package steam finds an item's Steam store page and price through the
// store search suggestions.
package steam

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/matcher"
	"github.com/codecollision/gamedex/pkg/providers/cache"
	"github.com/codecollision/gamedex/pkg/shared/httpclient"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

const (
	// DefaultBaseURL is the Steam store root.
	DefaultBaseURL = "https://store.steampowered.com"
	// DefaultCountryCode selects the store region prices are quoted in.
	DefaultCountryCode = "US"
	// FreePrice is the price recorded for free games.
	FreePrice = "0.00"

	suggestPath = "/search/suggest"
)

var rePrice = regexp.MustCompile(`\d(?:[\d.,]*\d)?`)

// Item is the Steam listing matched to a source item.
type Item struct {
	Price string `json:"steamPrice"`
	Page  string `json:"steamPage"`
	AppID string `json:"appID"`
}

// Result is one search suggestion.
type Result struct {
	AppID string
	Name  string
	Page  string
	Price string
}

// Options configures a Client.
type Options struct {
	HTTP        *httpclient.Client
	Scorer      *matcher.Scorer
	BaseURL     string
	CountryCode string
}

// Client talks to the Steam store. Matches are cached per standard name.
type Client struct {
	http        *httpclient.Client
	scorer      *matcher.Scorer
	items       *cache.Cache[Item]
	baseURL     string
	countryCode string
}

// New creates a Steam client.
func New(opts Options) *Client {
	c := &Client{
		http:        opts.HTTP,
		scorer:      opts.Scorer,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		countryCode: opts.CountryCode,
		items:       cache.New[Item]("steam"),
	}
	if c.http == nil {
		c.http = httpclient.NewClient(httpclient.Options{Provider: string(catalog.ProviderSteam)})
	}
	if c.scorer == nil {
		c.scorer = matcher.NewScorer(nil)
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.countryCode == "" {
		c.countryCode = DefaultCountryCode
	}
	return c
}

// Search returns the store suggestions for term.
func (c *Client) Search(ctx context.Context, term string) ([]Result, error) {
	params := url.Values{}
	params.Set("term", term)
	params.Set("f", "games")
	params.Set("cc", c.countryCode)

	body, err := c.http.GetBody(ctx, c.baseURL+suggestPath+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to search Steam for %q: %w", term, err)
	}
	results, err := ParseSuggestions(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Steam suggestions: %w", err)
	}
	return results, nil
}

// Game returns the Steam listing that best matches item, searching by
// standardName. catalog.ErrNoMatch is returned when Steam suggests nothing.
func (c *Client) Game(ctx context.Context, standardName string, item *catalog.SourceItem) (Item, error) {
	return c.items.Fetch(ctx, standardName, func(ctx context.Context) (Item, error) {
		results, err := c.Search(ctx, standardName)
		if err != nil {
			return Item{}, err
		}

		candidates := make([]catalog.SearchCandidate, len(results))
		for i, r := range results {
			candidates[i] = catalog.SearchCandidate{Name: r.Name, ID: r.AppID, Page: r.Page}
		}
		best := c.scorer.Best(item, candidates).Best
		if best == nil {
			return Item{}, fmt.Errorf("steam search %q: %w", standardName, catalog.ErrNoMatch)
		}

		var game Item
		for _, r := range results {
			if r.AppID == best.ID {
				game = Item{AppID: r.AppID, Page: r.Page, Price: r.Price}
				break
			}
		}
		log.Debug().
			Str("item", item.ID).
			Str("appID", game.AppID).
			Str("price", game.Price).
			Msg("Steam match")
		return game, nil
	})
}

// ParseSuggestions reads the suggestion anchors of a search suggest page.
// Anchors without an app id are bundles or packages and are skipped.
func ParseSuggestions(r io.Reader) ([]Result, error) {
	var (
		results []Result
		current *Result
		field   *string
		depth   int
	)

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			for i := range results {
				results[i].normalize()
			}
			return results, nil

		case html.StartTagToken:
			tok := z.Token()
			switch {
			case tok.Data == "a":
				if appID := attr(tok, "data-ds-appid"); appID != "" {
					results = append(results, Result{AppID: appID, Page: attr(tok, "href")})
					current = &results[len(results)-1]
				} else {
					current = nil
				}
			case current != nil && tok.Data == "div":
				if field != nil {
					depth++
					continue
				}
				switch class := attr(tok, "class"); {
				case hasClass(class, "match_name"):
					field = &current.Name
				case hasClass(class, "match_price"):
					field = &current.Price
				}
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "a":
				current, field = nil, nil
			case "div":
				if depth > 0 {
					depth--
				} else {
					field = nil
				}
			}

		case html.TextToken:
			if field != nil {
				*field += string(z.Text())
			}

		case html.SelfClosingTagToken, html.CommentToken, html.DoctypeToken:
		}
	}
}

// normalize tidies the text collected for a result, which may span
// several text tokens.
func (r *Result) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Price = NormalizePrice(r.Price)
}

// NormalizePrice reduces a listed price to its decimal amount. Free games
// are 0.00. A discounted listing shows the original price first, so the
// last amount wins. Listings without a price are empty.
func NormalizePrice(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(strings.ToLower(text), "free") {
		return FreePrice
	}
	amounts := rePrice.FindAllString(text, -1)
	if len(amounts) == 0 {
		return ""
	}
	return decimalAmount(amounts[len(amounts)-1])
}

// decimalAmount rewrites an amount such as "1,299.99" or "9,99" with a
// plain decimal point. A separator followed by exactly two digits is the
// decimal separator, any other is a thousands separator.
func decimalAmount(amount string) string {
	digits := func(s string) string {
		return strings.NewReplacer(".", "", ",", "").Replace(s)
	}
	i := strings.LastIndexAny(amount, ".,")
	if i >= 0 && len(amount)-i-1 == 2 {
		return digits(amount[:i]) + "." + amount[i+1:]
	}
	return digits(amount)
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(class, name string) bool {
	return slices.Contains(strings.Fields(class), name)
}
