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

// Package enrich attaches store prices, metascores and Wikipedia pages to
// source items and persists the results.
package enrich

import (
	"context"
	"errors"
	"fmt"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/database"
	"github.com/codecollision/gamedex/pkg/pricing"
	"github.com/codecollision/gamedex/pkg/providers/metacritic"
	"github.com/codecollision/gamedex/pkg/providers/steam"
	"github.com/codecollision/gamedex/pkg/providers/wikipedia"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// OffersProvider returns Amazon offers by ASIN.
type OffersProvider interface {
	ItemOffers(ctx context.Context, asin string) (*catalog.Offers, error)
}

// SteamProvider finds an item's Steam listing.
type SteamProvider interface {
	Game(ctx context.Context, standardName string, item *catalog.SourceItem) (steam.Item, error)
}

// MetascoreProvider finds an item's metascore.
type MetascoreProvider interface {
	Metascore(ctx context.Context, searchTerms string, item *catalog.SourceItem) (metacritic.Score, error)
}

// WikipediaProvider finds an item's Wikipedia article.
type WikipediaProvider interface {
	Page(ctx context.Context, title string, item *catalog.SourceItem, m wikipedia.Matcher) (string, error)
}

// Options wires the providers of a Service. Nil providers and a nil store
// are skipped.
type Options struct {
	Offers    OffersProvider
	Steam     SteamProvider
	Metascore MetascoreProvider
	Wikipedia WikipediaProvider
	Matcher   wikipedia.Matcher
	Store     database.LinkStore
}

// Result is an enriched copy of a source item.
type Result struct {
	Item          *catalog.SourceItem `json:"item"`
	LowestPrice   catalog.Provider    `json:"lowestPrice"`
	WikipediaPage string              `json:"wikipediaPage,omitempty"`
}

// Service enriches items from the configured providers.
type Service struct {
	opts Options
}

// NewService creates a Service.
func NewService(opts Options) *Service {
	return &Service{opts: opts}
}

// Enrich fetches whatever item is missing: Amazon offers when it has an
// ASIN but no offers, a Steam price when it has none, and a metascore when
// it has no score or no score page. The lookups run concurrently. A failed
// lookup is logged and leaves its fields as they were. The item itself is
// not modified.
func (s *Service) Enrich(ctx context.Context, item *catalog.SourceItem) (*Result, error) {
	out := item.Clone()
	standardName := item.StandardName()

	var (
		offers        *catalog.Offers
		steamItem     *steam.Item
		score         *metacritic.Score
		wikipediaPage string
	)

	g, gctx := errgroup.WithContext(ctx)

	if s.opts.Offers != nil && item.ASIN != catalog.NoID && item.ASIN != "" && emptyOffers(item.Offers) {
		g.Go(func() error {
			o, err := s.opts.Offers.ItemOffers(gctx, item.ASIN)
			if err != nil {
				logFailure(err, item, catalog.ProviderAmazon)
				return nil
			}
			offers = o
			return nil
		})
	}

	if s.opts.Steam != nil && item.SteamPrice == nil {
		g.Go(func() error {
			game, err := s.opts.Steam.Game(gctx, standardName, item)
			switch {
			case errors.Is(err, catalog.ErrNoMatch):
				steamItem = &steam.Item{}
			case err != nil:
				logFailure(err, item, catalog.ProviderSteam)
			default:
				steamItem = &game
			}
			return nil
		})
	}

	if s.opts.Metascore != nil && (item.Metascore < 0 || item.MetascorePage == "") {
		g.Go(func() error {
			sc, err := s.opts.Metascore.Metascore(gctx, standardName, item)
			if err != nil {
				logFailure(err, item, catalog.ProviderMetacritic)
				return nil
			}
			score = &sc
			return nil
		})
	}

	if s.opts.Wikipedia != nil && s.opts.Matcher != nil {
		g.Go(func() error {
			page, err := s.opts.Wikipedia.Page(gctx, standardName, item, s.opts.Matcher)
			if err != nil && !errors.Is(err, catalog.ErrNoMatch) {
				logFailure(err, item, catalog.ProviderWikipedia)
			}
			wikipediaPage = page
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to enrich item %s: %w", item.ID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to enrich item %s: %w", item.ID, err)
	}

	if offers != nil {
		out.Offers = offers
	}
	if steamItem != nil {
		out.SteamPrice = catalog.Price(steamItem.Price)
		out.SteamPage = steamItem.Page
	}
	if score != nil {
		out.Metascore = score.Metascore
		out.MetascorePage = score.Page
	}

	result := &Result{
		Item:          out,
		LowestPrice:   pricing.LowestPrice(out),
		WikipediaPage: wikipediaPage,
	}

	if err := s.persist(ctx, result); err != nil {
		return result, err
	}
	return result, nil
}

func (s *Service) persist(ctx context.Context, result *Result) error {
	if s.opts.Store == nil {
		return nil
	}
	item := result.Item

	link := database.LinkFromItem(item)
	link.WikipediaPage = result.WikipediaPage
	if err := s.opts.Store.SaveLink(ctx, link); err != nil {
		return fmt.Errorf("failed to save link for %s: %w", item.ID, err)
	}

	if item.Offers != nil {
		price := pricing.LowestAmazonPrice(item)
		if price < pricing.NoPrice {
			err := s.opts.Store.SavePrice(ctx, database.ItemPrice{
				ItemID:   item.ID,
				Provider: string(catalog.ProviderAmazon),
				Price:    fmt.Sprintf("%.2f", price),
				Page:     item.Offers.ProductURL,
			})
			if err != nil {
				return fmt.Errorf("failed to save Amazon price for %s: %w", item.ID, err)
			}
		}
	}
	if item.SteamPrice != nil {
		err := s.opts.Store.SavePrice(ctx, database.ItemPrice{
			ItemID:   item.ID,
			Provider: string(catalog.ProviderSteam),
			Price:    *item.SteamPrice,
			Page:     item.SteamPage,
		})
		if err != nil {
			return fmt.Errorf("failed to save Steam price for %s: %w", item.ID, err)
		}
	}
	return nil
}

func emptyOffers(o *catalog.Offers) bool {
	return o == nil || *o == (catalog.Offers{})
}

func logFailure(err error, item *catalog.SourceItem, provider catalog.Provider) {
	log.Warn().Err(err).
		Str("item", item.ID).
		Str("provider", string(provider)).
		Msg("enrichment lookup failed")
}
