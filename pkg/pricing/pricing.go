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

// Package pricing decides which store offers an item for less.
package pricing

import (
	"github.com/codecollision/gamedex/pkg/catalog"
)

// NoPrice stands in for a price the store did not report.
const NoPrice = 9999.00

// LowestAmazonPrice returns the lower of the buy now and lowest new prices.
// Missing prices are NoPrice. A buy now price that does not parse is NaN
// and is never replaced.
func LowestAmazonPrice(item *catalog.SourceItem) float64 {
	buyNow := NoPrice
	lowestNew := NoPrice
	lowest := NoPrice

	if item.Offers != nil {
		if item.Offers.BuyNowPrice != nil {
			buyNow = catalog.ParsePrice(*item.Offers.BuyNowPrice)
			lowest = buyNow
		}
		if item.Offers.LowestNewPrice != nil {
			lowestNew = catalog.ParsePrice(*item.Offers.LowestNewPrice)
		}
	}

	if lowestNew < buyNow {
		lowest = lowestNew
	}
	return lowest
}

// LowestPrice returns steam when the Steam price is strictly lower than the
// lowest Amazon price, and amazon otherwise. An item with no prices at all
// is amazon.
func LowestPrice(item *catalog.SourceItem) catalog.Provider {
	steam := NoPrice
	if item.SteamPrice != nil {
		steam = catalog.ParsePrice(*item.SteamPrice)
	}

	if steam < LowestAmazonPrice(item) {
		return catalog.ProviderSteam
	}
	return catalog.ProviderAmazon
}
