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

package amazon

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/platformdefs"
)

// gameProductGroups are the product groups of actual games. Anything else
// (books, music, toys, accessories) is filtered out of matching.
var gameProductGroups = map[string]bool{
	"Video Games":         true,
	"Digital Video Games": true,
}

var reNonGameTitle = regexp.MustCompile(
	`(?i)\b(strategy guide|official guide|prima|bradygames|soundtrack|art of|artbook|controller|headset|faceplate|skin|amiibo)\b`,
)

// IsFiltered reports whether an item is not a game and must not be matched.
func IsFiltered(item *Item) bool {
	if group := item.ItemAttributes.ProductGroup; group != "" && !gameProductGroups[group] {
		return true
	}
	return reNonGameTitle.MatchString(item.ItemAttributes.Title)
}

// ParseItem normalizes an Amazon item into a detail item. Offers are
// attached when withOffers is set.
func (c *Client) ParseItem(item *Item, withOffers bool) catalog.DetailItem {
	detail := catalog.DetailItem{
		ID:             item.ASIN,
		ASIN:           item.ASIN,
		GBombID:        catalog.NoID,
		Name:           item.ItemAttributes.Title,
		Platform:       platformdefs.StandardName(item.ItemAttributes.Platform),
		ReleaseDate:    item.ItemAttributes.ReleaseDate,
		SmallImage:     catalog.ImageOrDefault(item.SmallImage.URL),
		ThumbnailImage: catalog.ImageOrDefault(item.MediumImage.URL),
		LargeImage:     catalog.ImageOrDefault(item.LargeImage.URL),
		Description:    catalog.NoDescription,
		Filtered:       IsFiltered(item),
	}

	if detail.ReleaseDate == "" || detail.ReleaseDate == catalog.UnknownDate {
		detail.ReleaseDate = catalog.UnknownDate
		detail.CalendarDate = catalog.UnknownCalendar
	} else {
		detail.CalendarDate = catalog.CalendarDate(detail.ReleaseDate, c.clock.Now())
	}

	for _, review := range item.EditorialReviews {
		if review.Content != "" {
			detail.Description = review.Content
			break
		}
	}

	if withOffers {
		detail.Offers = parseOffers(item)
	}

	return detail
}

// parseOffers builds the price snapshot for an item. The buy now price is
// the first offer listing's price.
func parseOffers(item *Item) *catalog.Offers {
	offers := &catalog.Offers{
		ProductURL:      item.DetailPageURL,
		LowestNewPrice:  formatPrice(item.OfferSummary.LowestNewPrice),
		LowestUsedPrice: formatPrice(item.OfferSummary.LowestUsedPrice),
		TotalNew:        item.OfferSummary.TotalNew,
		TotalUsed:       item.OfferSummary.TotalUsed,
	}
	if len(item.Offers) > 0 {
		offers.BuyNowPrice = formatPrice(item.Offers[0].Price)
	}
	return offers
}

// formatPrice renders an amount in cents as a decimal string. Missing or
// malformed amounts are nil.
func formatPrice(p Price) *string {
	if p.Amount == "" {
		return nil
	}
	cents, err := strconv.ParseInt(p.Amount, 10, 64)
	if err != nil {
		return nil
	}
	return catalog.Price(fmt.Sprintf("%d.%02d", cents/100, cents%100))
}
