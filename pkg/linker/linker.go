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

// Package linker finds the record of an item on the other search provider
// and fetches linked item data across providers.
package linker

import (
	"context"
	"errors"
	"fmt"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/matcher"
	"github.com/codecollision/gamedex/pkg/metrics"
	"github.com/codecollision/gamedex/pkg/platformdefs"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrNoMatch is returned when the target provider has no candidate for the
// item.
var ErrNoMatch = catalog.ErrNoMatch

// ErrUnknownProvider is returned for a provider that items cannot be
// linked through.
var ErrUnknownProvider = errors.New("unknown search provider")

// AmazonProvider is the part of the Amazon adapter the linker uses.
type AmazonProvider interface {
	SearchItems(ctx context.Context, keywords string, browseNode int64, suppressDuplicates bool) ([]catalog.DetailItem, error)
	ItemDetail(ctx context.Context, asin string) (*catalog.DetailItem, error)
}

// GiantBombProvider is the part of the GiantBomb adapter the linker uses.
type GiantBombProvider interface {
	SearchItems(ctx context.Context, keywords string) ([]catalog.DetailItem, error)
	ItemDetail(ctx context.Context, gbombID string) (*catalog.DetailItem, error)
}

// Options adjusts a single lookup.
type Options struct {
	// SuppressDuplicates shares identical concurrent Amazon searches.
	SuppressDuplicates bool
}

// Linker matches items across providers.
type Linker struct {
	amazon    AmazonProvider
	giantBomb GiantBombProvider
	scorer    *matcher.Scorer
	platforms *platformdefs.Table
}

// New creates a Linker. A nil scorer or platform table uses the embedded
// platform table.
func New(
	amazon AmazonProvider,
	giantBomb GiantBombProvider,
	scorer *matcher.Scorer,
	platforms *platformdefs.Table,
) *Linker {
	if platforms == nil {
		platforms = platformdefs.Default()
	}
	if scorer == nil {
		scorer = matcher.NewScorer(platforms)
	}
	return &Linker{
		amazon:    amazon,
		giantBomb: giantBomb,
		scorer:    scorer,
		platforms: platforms,
	}
}

// FindMatch finds item, known through provider, on the other search
// provider. An item from Amazon is searched on GiantBomb by its standard
// name; an item from GiantBomb is searched on Amazon by its name.
func (l *Linker) FindMatch(
	ctx context.Context,
	item *catalog.SourceItem,
	provider catalog.Provider,
	opts Options,
) (*catalog.DetailItem, error) {
	var (
		target catalog.Provider
		find   func(context.Context, *catalog.SourceItem, Options, *lookup) (*catalog.DetailItem, error)
	)
	switch provider {
	case catalog.ProviderAmazon:
		target, find = catalog.ProviderGiantBomb, l.findGiantBombMatch
	case catalog.ProviderGiantBomb:
		target, find = catalog.ProviderAmazon, l.findAmazonMatch
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	lk := newLookup(uuid.NewString(), item.ID, string(target))
	match, err := find(ctx, item, opts, lk)
	switch {
	case err == nil:
		metrics.Matches.WithLabelValues(string(target), metrics.MatchMatched).Inc()
	case errors.Is(err, ErrNoMatch):
		metrics.Matches.WithLabelValues(string(target), metrics.MatchUnmatched).Inc()
	default:
		lk.to(StateUnmatched)
		metrics.Matches.WithLabelValues(string(target), metrics.MatchError).Inc()
		log.Warn().Err(err).Str("item", item.ID).Str("provider", string(target)).Msg("match lookup failed")
	}
	return match, err
}

func (l *Linker) findGiantBombMatch(
	ctx context.Context,
	item *catalog.SourceItem,
	_ Options,
	lk *lookup,
) (*catalog.DetailItem, error) {
	lk.to(StateSearching)
	results, err := l.giantBomb.SearchItems(ctx, item.StandardName())
	if err != nil {
		return nil, err
	}

	lk.to(StateScoring)
	if best := l.best(item, results); best != nil {
		lk.to(StateMatched)
		return best, nil
	}
	lk.to(StateUnmatched)
	return nil, fmt.Errorf("giantbomb search %q: %w", item.StandardName(), ErrNoMatch)
}

// findAmazonMatch searches Amazon within the item's platform. When no
// unfiltered result is found it searches once more across all platforms.
func (l *Linker) findAmazonMatch(
	ctx context.Context,
	item *catalog.SourceItem,
	opts Options,
	lk *lookup,
) (*catalog.DetailItem, error) {
	var browseNode int64
	if item.Platform != platformdefs.NotAvailable {
		if p, ok := l.platforms.ByName(item.Platform); ok {
			browseNode = p.Amazon
		}
	}

	lk.to(StateSearching)
	results, err := l.amazon.SearchItems(ctx, item.Name, browseNode, opts.SuppressDuplicates)
	if err != nil {
		return nil, err
	}

	lk.to(StateScoring)
	if best := l.best(item, results); best != nil {
		lk.to(StateMatched)
		return best, nil
	}

	lk.to(StateRetrySearching)
	results, err = l.amazon.SearchItems(ctx, item.Name, 0, false)
	if err != nil {
		return nil, err
	}

	lk.to(StateScoring)
	if best := l.best(item, results); best != nil {
		lk.to(StateMatched)
		return best, nil
	}
	lk.to(StateUnmatched)
	return nil, fmt.Errorf("amazon search %q: %w", item.Name, ErrNoMatch)
}

func (l *Linker) best(item *catalog.SourceItem, results []catalog.DetailItem) *catalog.DetailItem {
	candidates := make([]catalog.SearchCandidate, len(results))
	for i := range results {
		candidates[i] = results[i].Candidate()
	}
	if best := l.scorer.Best(item, candidates).Best; best != nil {
		return best.Detail
	}
	return nil
}

// FindWikipediaMatch picks the page title that best matches item. It
// reports false for an empty title list.
func (l *Linker) FindWikipediaMatch(
	titles []string,
	item *catalog.SourceItem,
) (catalog.SearchCandidate, bool) {
	candidates := make([]catalog.SearchCandidate, len(titles))
	for i, title := range titles {
		candidates[i] = catalog.SearchCandidate{Name: title}
	}
	best := l.scorer.Best(item, candidates).Best
	if best == nil {
		return catalog.SearchCandidate{}, false
	}
	return *best, true
}

// GetLinkedItemData fetches the detail record of an already linked item
// from the provider other than provider.
func (l *Linker) GetLinkedItemData(
	ctx context.Context,
	item *catalog.SourceItem,
	provider catalog.Provider,
) (*catalog.DetailItem, error) {
	switch provider {
	case catalog.ProviderAmazon:
		detail, err := l.giantBomb.ItemDetail(ctx, item.GBombID)
		if err != nil {
			return nil, fmt.Errorf("failed to get linked GiantBomb item %s: %w", item.GBombID, err)
		}
		return detail, nil
	case catalog.ProviderGiantBomb:
		detail, err := l.amazon.ItemDetail(ctx, item.ASIN)
		if err != nil {
			return nil, fmt.Errorf("failed to get linked Amazon item %s: %w", item.ASIN, err)
		}
		return detail, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}
