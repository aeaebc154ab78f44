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

// Package catalog defines the item shapes exchanged between the provider
// adapters, the matching engine and the view layer.
package catalog

import (
	"errors"

	"github.com/codecollision/gamedex/pkg/platformdefs"
	"github.com/codecollision/gamedex/pkg/titles"
)

const (
	// UnknownDate is the release date sentinel for unknown or unreleased
	// items.
	UnknownDate = "1900-01-01"
	// NoID marks an absent provider id.
	NoID = "0"
	// NoImage is the image fallback for every image size slot.
	NoImage = "no image.png"
	// NoDescription is the description fallback.
	NoDescription = "No Description"
	// UnknownCalendar is the calendar string for items without a known
	// release date.
	UnknownCalendar = "Unknown"
	// MetascoreUnavailable marks an item without a metascore.
	MetascoreUnavailable = -1
)

// Provider identifies an external catalog.
type Provider string

const (
	ProviderAmazon     Provider = "amazon"
	ProviderGiantBomb  Provider = "giantbomb"
	ProviderMetacritic Provider = "metacritic"
	ProviderWikipedia  Provider = "wikipedia"
	ProviderSteam      Provider = "steam"
)

// SearchProviders are the providers items are searched and linked through.
// Metacritic, Wikipedia and Steam are consulted directly.
var SearchProviders = []Provider{ProviderAmazon, ProviderGiantBomb}

// IsSearchProvider reports whether p is one of SearchProviders.
func (p Provider) IsSearchProvider() bool {
	return p == ProviderAmazon || p == ProviderGiantBomb
}

// Offers is an Amazon price snapshot. Prices are kept exactly as the
// provider reports them; nil means the provider did not report one.
type Offers struct {
	BuyNowPrice     *string `json:"buyNowPrice,omitempty"`
	LowestNewPrice  *string `json:"lowestNewPrice,omitempty"`
	LowestUsedPrice *string `json:"lowestUsedPrice,omitempty"`
	ProductURL      string  `json:"productURL,omitempty"`
	TotalNew        int     `json:"totalNew"`
	TotalUsed       int     `json:"totalUsed"`
}

// SourceItem is a game tracked in the user's collection.
type SourceItem struct {
	Offers        *Offers `json:"offers,omitempty"`
	SteamPrice    *string `json:"steamPrice,omitempty"`
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Platform      string  `json:"platform"`
	ASIN          string  `json:"asin"`
	GBombID       string  `json:"gbombID"`
	ReleaseDate   string  `json:"releaseDate"`
	MetascorePage string  `json:"metascorePage"`
	SteamPage     string  `json:"steamPage,omitempty"`
	standardName  string
	standardFrom  string
	Metascore     int `json:"metascore"`
}

// NewSourceItem creates an item with its standard name derived from name.
// Missing ids, platform and release date get their sentinel values.
func NewSourceItem(id, name, platform string) *SourceItem {
	item := &SourceItem{
		ID:          id,
		Platform:    platformdefs.NotAvailable,
		ASIN:        NoID,
		GBombID:     NoID,
		ReleaseDate: UnknownDate,
		Metascore:   MetascoreUnavailable,
	}
	if platform != "" {
		item.Platform = platform
	}
	item.SetName(name)
	return item
}

// SetName changes the item's name and recomputes its standard name.
func (i *SourceItem) SetName(name string) {
	i.Name = name
	i.standardName = titles.Normalize(name)
	i.standardFrom = name
}

// StandardName is the normalized form of Name used for matching. Items
// whose Name was assigned directly, or decoded from JSON, derive it on
// every call.
func (i *SourceItem) StandardName() string {
	if i.standardFrom == i.Name && (i.standardName != "" || i.Name == "") {
		return i.standardName
	}
	return titles.Normalize(i.Name)
}

// Clone returns a copy of the item that shares no pointers with it.
func (i *SourceItem) Clone() *SourceItem {
	c := *i
	if i.Offers != nil {
		offers := *i.Offers
		offers.BuyNowPrice = clonePrice(i.Offers.BuyNowPrice)
		offers.LowestNewPrice = clonePrice(i.Offers.LowestNewPrice)
		offers.LowestUsedPrice = clonePrice(i.Offers.LowestUsedPrice)
		c.Offers = &offers
	}
	c.SteamPrice = clonePrice(i.SteamPrice)
	return &c
}

func clonePrice(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Price returns a pointer to price, for building Offers literals.
func Price(price string) *string {
	return &price
}

// SearchCandidate is a provider search result being scored against a
// source item. An empty ReleaseDate or Platform means the provider did not
// report one, which removes that factor from scoring.
type SearchCandidate struct {
	Detail      *DetailItem
	Name        string
	ReleaseDate string
	Platform    string
	ID          string
	Page        string
	Score       string
	Filtered    bool
}

// MatchResult is the best candidate of a scored list. Best is nil only for
// an empty list.
type MatchResult struct {
	Best  *SearchCandidate
	Score float64
}

// DetailItem is a provider record normalized for display.
type DetailItem struct {
	Offers         *Offers  `json:"offers,omitempty"`
	ID             string   `json:"id"`
	ASIN           string   `json:"asin"`
	GBombID        string   `json:"gbombID"`
	Name           string   `json:"name"`
	Platform       string   `json:"platform"`
	ReleaseDate    string   `json:"releaseDate"`
	CalendarDate   string   `json:"calendarDate"`
	SmallImage     string   `json:"smallImage"`
	ThumbnailImage string   `json:"thumbnailImage"`
	LargeImage     string   `json:"largeImage"`
	Description    string   `json:"description"`
	Platforms      []string `json:"platforms,omitempty"`
	Filtered       bool     `json:"filtered,omitempty"`
}

// Candidate converts the detail item into a search candidate carrying the
// item as its payload.
func (d *DetailItem) Candidate() SearchCandidate {
	return SearchCandidate{
		Name:        d.Name,
		ReleaseDate: d.ReleaseDate,
		Platform:    d.Platform,
		ID:          d.ID,
		Filtered:    d.Filtered,
		Detail:      d,
	}
}

// ImageOrDefault returns url, or NoImage when url is empty.
func ImageOrDefault(url string) string {
	if url == "" {
		return NoImage
	}
	return url
}

// ErrNoMatch is returned when no candidate of a provider matches an item.
var ErrNoMatch = errors.New("no match found")
