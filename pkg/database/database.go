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

// Package database holds the record types and store interfaces shared by
// the Gamedex databases. Implementations live in subpackages.
package database

import (
	"context"
	"errors"
	"time"

	"github.com/codecollision/gamedex/pkg/catalog"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ItemLink is the persisted cross-provider identity of a source item.
type ItemLink struct {
	UpdatedAt     time.Time `json:"updatedAt"`
	ItemID        string    `json:"itemId"`
	Name          string    `json:"name"`
	StandardName  string    `json:"standardName"`
	Platform      string    `json:"platform"`
	ASIN          string    `json:"asin"`
	GBombID       string    `json:"gbombID"`
	ReleaseDate   string    `json:"releaseDate"`
	MetascorePage string    `json:"metascorePage"`
	WikipediaPage string    `json:"wikipediaPage"`
	Metascore     int       `json:"metascore"`
}

// ItemPrice is the last known price of an item at one store.
type ItemPrice struct {
	UpdatedAt time.Time `json:"updatedAt"`
	ItemID    string    `json:"itemId"`
	Provider  string    `json:"provider"`
	Price     string    `json:"price"`
	Page      string    `json:"page"`
}

// LinkFromItem builds the link record of item. The Wikipedia page is left
// empty.
func LinkFromItem(item *catalog.SourceItem) ItemLink {
	return ItemLink{
		ItemID:        item.ID,
		Name:          item.Name,
		StandardName:  item.StandardName(),
		Platform:      item.Platform,
		ASIN:          item.ASIN,
		GBombID:       item.GBombID,
		ReleaseDate:   item.ReleaseDate,
		Metascore:     item.Metascore,
		MetascorePage: item.MetascorePage,
	}
}

// LinkStore persists item links and prices.
type LinkStore interface {
	SaveLink(ctx context.Context, link ItemLink) error
	GetLink(ctx context.Context, itemID string) (ItemLink, error)
	SavePrice(ctx context.Context, price ItemPrice) error
	GetPrices(ctx context.Context, itemID string) ([]ItemPrice, error)
	Truncate(ctx context.Context) error
	Close() error
}
