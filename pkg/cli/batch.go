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

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/platformdefs"
	"github.com/codecollision/gamedex/pkg/pricing"
	"github.com/codecollision/gamedex/pkg/service/enrich"
	"github.com/codecollision/gamedex/pkg/validation"
	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
)

// BatchItem is one row of a batch input file.
type BatchItem struct {
	ID          string `csv:"id"`
	Name        string `csv:"name" validate:"required"`
	Platform    string `csv:"platform" validate:"platform"`
	ASIN        string `csv:"asin"`
	GBombID     string `csv:"gbomb_id"`
	ReleaseDate string `csv:"release_date" validate:"releasedate"`
}

// BatchRow is one row of a batch output file.
type BatchRow struct {
	ID            string `csv:"id"`
	Name          string `csv:"name"`
	StandardName  string `csv:"standard_name"`
	Platform      string `csv:"platform"`
	ASIN          string `csv:"asin"`
	GBombID       string `csv:"gbomb_id"`
	ReleaseDate   string `csv:"release_date"`
	MetascorePage string `csv:"metascore_page"`
	Rating        string `csv:"rating"`
	AmazonPrice   string `csv:"amazon_price"`
	SteamPrice    string `csv:"steam_price"`
	SteamPage     string `csv:"steam_page"`
	LowestPrice   string `csv:"lowest_price"`
	WikipediaPage string `csv:"wikipedia_page"`
	Error         string `csv:"error"`
	Metascore     int    `csv:"metascore"`
}

// SourceItem validates the row and converts it to a source item. Rows
// without an id get a new random one.
func (b *BatchItem) SourceItem() (*catalog.SourceItem, error) {
	if err := validation.Validate(b); err != nil {
		return nil, fmt.Errorf("invalid item %q: %w", b.Name, err)
	}

	id := b.ID
	if id == "" {
		id = uuid.NewString()
	}
	item := catalog.NewSourceItem(id, b.Name, platformdefs.StandardName(b.Platform))
	if b.ASIN != "" {
		item.ASIN = b.ASIN
	}
	if b.GBombID != "" {
		item.GBombID = b.GBombID
	}
	if b.ReleaseDate != "" {
		item.ReleaseDate = b.ReleaseDate
	}
	return item, nil
}

// ReadBatch reads source items from CSV with a header row.
func ReadBatch(r io.Reader) ([]*catalog.SourceItem, error) {
	rows := make([]BatchItem, 0)
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to unmarshal batch CSV: %w", err)
	}

	items := make([]*catalog.SourceItem, 0, len(rows))
	for i := range rows {
		item, err := rows[i].SourceItem()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// NewBatchRow builds the output row for item. A failed enrichment is
// reported in the error column with the input item's fields.
func NewBatchRow(item *catalog.SourceItem, res enrich.ItemResult) BatchRow {
	row := BatchRow{}
	if res.Result != nil {
		item = res.Result.Item
		row.LowestPrice = string(res.Result.LowestPrice)
		row.WikipediaPage = res.Result.WikipediaPage
	}
	if res.Err != nil {
		row.Error = res.Err.Error()
	}

	row.ID = item.ID
	row.Name = item.Name
	row.StandardName = item.StandardName()
	row.Platform = item.Platform
	row.ASIN = item.ASIN
	row.GBombID = item.GBombID
	row.ReleaseDate = item.ReleaseDate
	row.Metascore = item.Metascore
	row.MetascorePage = item.MetascorePage
	row.Rating = catalog.MetascoreRating(item.Metascore)
	row.SteamPage = item.SteamPage
	if item.SteamPrice != nil {
		row.SteamPrice = *item.SteamPrice
	}
	if price := pricing.LowestAmazonPrice(item); price < pricing.NoPrice {
		row.AmazonPrice = strconv.FormatFloat(price, 'f', 2, 64)
	}
	return row
}

// BatchRows pairs items with their results and orders the rows by
// sortType. An empty sortType keeps input order.
func BatchRows(items []*catalog.SourceItem, results []enrich.ItemResult, sortType catalog.SortType) []BatchRow {
	sorted := make([]*catalog.SourceItem, len(items))
	byItem := make(map[*catalog.SourceItem]enrich.ItemResult, len(items))
	for i, item := range items {
		res := results[i]
		if res.Result != nil {
			item = res.Result.Item
		}
		sorted[i] = item
		byItem[item] = res
	}

	if sortType != "" {
		catalog.SortItems(sorted, sortType)
	}

	rows := make([]BatchRow, len(sorted))
	for i, item := range sorted {
		rows[i] = NewBatchRow(item, byItem[item])
	}
	return rows
}

// WriteBatch writes rows as CSV with a header row.
func WriteBatch(w io.Writer, rows []BatchRow) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to marshal batch CSV: %w", err)
	}
	return nil
}
