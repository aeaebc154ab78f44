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

// Package metacritic looks up metascores by scraping the Metacritic game
// search page.
package metacritic

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/matcher"
	"github.com/codecollision/gamedex/pkg/providers/cache"
	"github.com/codecollision/gamedex/pkg/shared/httpclient"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is the Metacritic site root. Score pages are relative
	// to it.
	DefaultBaseURL = "https://www.metacritic.com"

	searchPath = "/search/game/"
)

var reWhitespace = regexp.MustCompile(`\s`)

var releaseDateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2006",
	catalog.DateLayout,
}

// Score is the metascore of an item and the path of its Metacritic page.
// Metascore is -1 when Metacritic has no score, and Page is empty when no
// search result matched at all.
type Score struct {
	Page      string `json:"metascorePage"`
	Metascore int    `json:"metascore"`
}

// Options configures a Client.
type Options struct {
	HTTP    *httpclient.Client
	Scorer  *matcher.Scorer
	BaseURL string
}

// Client fetches metascores. Scores are cached under both the ASIN and the
// GiantBomb id of the item they were found for.
type Client struct {
	http    *httpclient.Client
	scorer  *matcher.Scorer
	scores  *cache.Cache[Score]
	baseURL string
}

// New creates a Metacritic client.
func New(opts Options) *Client {
	c := &Client{
		http:    opts.HTTP,
		scorer:  opts.Scorer,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		scores:  cache.New[Score]("metacritic"),
	}
	if c.http == nil {
		c.http = httpclient.NewClient(httpclient.Options{Provider: string(catalog.ProviderMetacritic)})
	}
	if c.scorer == nil {
		c.scorer = matcher.NewScorer(nil)
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	return c
}

// SearchURL returns the search page URL for searchTerms. Whitespace becomes
// '+' and colons are dropped.
func (c *Client) SearchURL(searchTerms string) string {
	terms := reWhitespace.ReplaceAllString(searchTerms, "+")
	terms = strings.ReplaceAll(terms, ":", "")
	return c.baseURL + searchPath + url.PathEscape(terms) + "/results"
}

// PageURL returns the absolute URL of a score page path.
func (c *Client) PageURL(page string) string {
	if page == "" || strings.HasPrefix(page, "http") {
		return page
	}
	return c.baseURL + page
}

// Metascore returns the score of the search result that best matches item.
// A score cached for the item's ASIN, or failing that its GiantBomb id, is
// returned without a request.
func (c *Client) Metascore(
	ctx context.Context,
	searchTerms string,
	item *catalog.SourceItem,
) (Score, error) {
	if score, ok := c.cached(item); ok {
		return score, nil
	}

	body, err := c.http.GetBody(ctx, c.SearchURL(searchTerms))
	if err != nil {
		return Score{}, fmt.Errorf("failed to search Metacritic for %q: %w", searchTerms, err)
	}

	candidates, err := ParseResults(body)
	if err != nil {
		return Score{}, err
	}

	score := Score{Metascore: catalog.MetascoreUnavailable}
	if best := c.scorer.Best(item, candidates).Best; best != nil {
		score.Page = best.Page
		if best.Score != "" {
			score.Metascore = parseMetascore(best.Score)
		}
	}

	log.Debug().
		Str("item", item.ID).
		Int("metascore", score.Metascore).
		Str("page", score.Page).
		Msg("Metacritic score")

	if item.ASIN != catalog.NoID {
		c.scores.Set(item.ASIN, score)
	}
	if item.GBombID != catalog.NoID {
		c.scores.Set(item.GBombID, score)
	}
	return score, nil
}

func (c *Client) cached(item *catalog.SourceItem) (Score, bool) {
	for _, key := range []string{item.ASIN, item.GBombID} {
		if key == "" || key == catalog.NoID {
			continue
		}
		if score, ok := c.scores.Get(key); ok {
			return score, true
		}
	}
	return Score{}, false
}

// ParseResults extracts the search results of a Metacritic search page.
func ParseResults(body []byte) ([]catalog.SearchCandidate, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse Metacritic search page: %w", err)
	}

	var candidates []catalog.SearchCandidate
	doc.Find("#main .result").Each(func(_ int, s *goquery.Selection) {
		title := s.Find(".product_title a").First()
		href, _ := title.Attr("href")
		candidates = append(candidates, catalog.SearchCandidate{
			Name:        strings.TrimSpace(title.Text()),
			ReleaseDate: parseReleaseDate(s.Find(".release_date .data").Text()),
			Platform:    strings.TrimSpace(s.Find(".platform").Text()),
			Score:       strings.TrimSpace(s.Find(".metascore").Text()),
			Page:        href,
		})
	})
	return candidates, nil
}

// parseReleaseDate converts a listed release date to YYYY-MM-DD. Dates that
// do not parse are empty, which leaves the date out of scoring.
func parseReleaseDate(text string) string {
	text = strings.TrimSpace(text)
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.Format(catalog.DateLayout)
		}
	}
	return ""
}

// parseMetascore reads a listed score. Placeholders such as "tbd" are
// unavailable.
func parseMetascore(text string) int {
	n, err := strconv.Atoi(text)
	if err != nil {
		return catalog.MetascoreUnavailable
	}
	return n
}
