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

package giantbomb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/platformdefs"
)

// quarterDates maps an expected release quarter to the month and day used
// as its release date. June 31 and September 31 do not exist; dates built
// from them never parse, so they carry no date weight when scoring.
var quarterDates = map[int]string{
	1: "03-31",
	2: "06-31",
	3: "09-31",
	4: "12-31",
}

// ParseResult normalizes a GiantBomb game into a detail item.
func (c *Client) ParseResult(r *Result) catalog.DetailItem {
	id := strconv.Itoa(r.ID)
	item := catalog.DetailItem{
		ID:          id,
		ASIN:        catalog.NoID,
		GBombID:     id,
		Name:        r.Name,
		Platform:    platformdefs.NotAvailable,
		ReleaseDate: releaseDate(r),
		Description: r.Description,
	}

	for _, p := range r.Platforms {
		item.Platforms = append(item.Platforms, p.Name)
	}

	if item.ReleaseDate != "" && item.ReleaseDate != catalog.UnknownDate {
		item.CalendarDate = catalog.CalendarDate(item.ReleaseDate, c.clock.Now())
	} else {
		item.CalendarDate = catalog.UnknownCalendar
		item.ReleaseDate = catalog.UnknownDate
	}

	var small, thumb string
	if r.Image != nil {
		small = r.Image.SmallURL
		thumb = r.Image.ThumbURL
	}
	item.SmallImage = catalog.ImageOrDefault(small)
	item.ThumbnailImage = catalog.ImageOrDefault(thumb)
	// the large slot shows the small image as well
	item.LargeImage = catalog.ImageOrDefault(small)

	if item.Description == "" {
		item.Description = catalog.NoDescription
	}

	return item
}

// releaseDate picks the original release date, then a fully specified
// expected release date, then an expected release quarter.
func releaseDate(r *Result) string {
	if r.OriginalReleaseDate != "" {
		date, _, _ := strings.Cut(r.OriginalReleaseDate, " ")
		return date
	}

	year := intValue(r.ExpectedReleaseYear)
	month := intValue(r.ExpectedReleaseMonth)
	day := intValue(r.ExpectedReleaseDay)
	if year != 0 && month != 0 && day != 0 {
		return fmt.Sprintf("%d-%02d-%02d", year, month, day)
	}

	if suffix, ok := quarterDates[intValue(r.ExpectedReleaseQuarter)]; ok && year != 0 {
		return fmt.Sprintf("%d-%s", year, suffix)
	}

	return ""
}

func intValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
