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

// noExactMatches is the error code Amazon returns for searches without
// results.
const noExactMatches = "AWS.ECommerceService.NoExactMatches"

// Response is the shared shape of ItemSearchResponse and
// ItemLookupResponse documents.
type Response struct {
	Items Items `xml:"Items"`
}

// Items is the item list of a response.
type Items struct {
	Request Request `xml:"Request"`
	Item    []Item  `xml:"Item"`
}

// Request echoes the request and carries its errors.
type Request struct {
	IsValid string  `xml:"IsValid"`
	Errors  []Error `xml:"Errors>Error"`
}

// Error is a request error.
type Error struct {
	Code    string `xml:"Code"`
	Message string `xml:"Message"`
}

// Item is one Amazon product.
type Item struct {
	ItemAttributes   ItemAttributes    `xml:"ItemAttributes"`
	OfferSummary     OfferSummary      `xml:"OfferSummary"`
	SmallImage       Image             `xml:"SmallImage"`
	MediumImage      Image             `xml:"MediumImage"`
	LargeImage       Image             `xml:"LargeImage"`
	ASIN             string            `xml:"ASIN"`
	DetailPageURL    string            `xml:"DetailPageURL"`
	Offers           []Offer           `xml:"Offers>Offer"`
	EditorialReviews []EditorialReview `xml:"EditorialReviews>EditorialReview"`
}

// ItemAttributes are the descriptive attributes of an item.
type ItemAttributes struct {
	ListPrice    Price  `xml:"ListPrice"`
	Title        string `xml:"Title"`
	Platform     string `xml:"Platform"`
	ReleaseDate  string `xml:"ReleaseDate"`
	ProductGroup string `xml:"ProductGroup"`
}

// Image is an image URL.
type Image struct {
	URL string `xml:"URL"`
}

// Price is an amount in the currency's smallest unit plus its display form.
type Price struct {
	Amount         string `xml:"Amount"`
	CurrencyCode   string `xml:"CurrencyCode"`
	FormattedPrice string `xml:"FormattedPrice"`
}

// OfferSummary summarizes the offers for an item.
type OfferSummary struct {
	LowestNewPrice  Price `xml:"LowestNewPrice"`
	LowestUsedPrice Price `xml:"LowestUsedPrice"`
	TotalNew        int   `xml:"TotalNew"`
	TotalUsed       int   `xml:"TotalUsed"`
}

// Offer is a single offer listing.
type Offer struct {
	Price Price `xml:"OfferListing>Price"`
}

// EditorialReview is a product description.
type EditorialReview struct {
	Source  string `xml:"Source"`
	Content string `xml:"Content"`
}
