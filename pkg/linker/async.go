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

	"github.com/codecollision/gamedex/pkg/catalog"
)

// FindMatchAsync runs FindMatch on a new goroutine. Exactly one of onMatch
// and onNoMatch is called: onMatch with the match, or onNoMatch with
// ErrNoMatch or the provider error.
func (l *Linker) FindMatchAsync(
	ctx context.Context,
	item *catalog.SourceItem,
	provider catalog.Provider,
	opts Options,
	onMatch func(*catalog.DetailItem),
	onNoMatch func(error),
) {
	go func() {
		match, err := l.FindMatch(ctx, item, provider, opts)
		if err != nil {
			if onNoMatch != nil {
				onNoMatch(err)
			}
			return
		}
		if onMatch != nil {
			onMatch(match)
		}
	}()
}

// WikipediaMatch calls onMatch with the title that best matches item.
// Nothing is called for an empty title list.
func (l *Linker) WikipediaMatch(
	titles []string,
	item *catalog.SourceItem,
	onMatch func(catalog.SearchCandidate),
) {
	if match, ok := l.FindWikipediaMatch(titles, item); ok {
		onMatch(match)
	}
}
