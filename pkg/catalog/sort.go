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

package catalog

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"
)

// SortType selects the ordering applied by SortItems.
type SortType string

const (
	SortAlphabetical SortType = "alphabetical"
	SortMetascore    SortType = "metascore"
	SortReleaseDate  SortType = "releaseDate"
	SortPlatform     SortType = "platform"
	SortPrice        SortType = "price"
)

// ParseSortType validates a sort type name.
func ParseSortType(s string) (SortType, error) {
	switch st := SortType(s); st {
	case SortAlphabetical, SortMetascore, SortReleaseDate, SortPlatform, SortPrice:
		return st, nil
	default:
		return "", fmt.Errorf("unknown sort type: %q", s)
	}
}

// SortItems orders items in place. Metascores sort highest first, release
// dates newest first and prices lowest first, with items lacking an Amazon
// lowest new price treated as free. Ties keep their existing order.
func SortItems(items []*SourceItem, sortType SortType) {
	switch sortType {
	case SortAlphabetical:
		slices.SortStableFunc(items, func(a, b *SourceItem) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case SortMetascore:
		slices.SortStableFunc(items, func(a, b *SourceItem) int {
			return cmp.Compare(b.Metascore, a.Metascore)
		})
	case SortReleaseDate:
		slices.SortStableFunc(items, func(a, b *SourceItem) int {
			return cmp.Compare(releaseKey(b), releaseKey(a))
		})
	case SortPlatform:
		slices.SortStableFunc(items, func(a, b *SourceItem) int {
			return strings.Compare(strings.ToLower(a.Platform), strings.ToLower(b.Platform))
		})
	case SortPrice:
		slices.SortStableFunc(items, func(a, b *SourceItem) int {
			return cmp.Compare(priceKey(a), priceKey(b))
		})
	}
}

// releaseKey sorts unparseable dates after every real date.
func releaseKey(item *SourceItem) int64 {
	t, ok := ParseDate(item.ReleaseDate)
	if !ok {
		return math.MinInt64
	}
	return t.Unix()
}

func priceKey(item *SourceItem) float64 {
	if item.Offers == nil || item.Offers.LowestNewPrice == nil {
		return 0
	}
	p := ParsePrice(*item.Offers.LowestNewPrice)
	if math.IsNaN(p) {
		return 0
	}
	return p
}
