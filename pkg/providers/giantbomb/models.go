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

import "encoding/json"

// statusOK is the status_code GiantBomb reports for successful requests.
const statusOK = 1

// apiResponse is the envelope of every GiantBomb API response. Results is
// an array for searches and an object for detail requests.
type apiResponse struct {
	Error      string          `json:"error"`
	Results    json.RawMessage `json:"results"`
	StatusCode int             `json:"status_code"`
}

// Image holds the image URLs of a game.
type Image struct {
	IconURL   string `json:"icon_url"`
	MediumURL string `json:"medium_url"`
	ScreenURL string `json:"screen_url"`
	SmallURL  string `json:"small_url"`
	SuperURL  string `json:"super_url"`
	ThumbURL  string `json:"thumb_url"`
	TinyURL   string `json:"tiny_url"`
}

// Platform is a platform reference on a game.
type Platform struct {
	Name          string `json:"name"`
	Abbreviation  string `json:"abbreviation"`
	SiteDetailURL string `json:"site_detail_url"`
	ID            int    `json:"id"`
}

// Result is a game as returned by search and detail requests. Which fields
// are populated depends on the requested field list.
type Result struct {
	Image                  *Image     `json:"image"`
	ExpectedReleaseDay     *int       `json:"expected_release_day"`
	ExpectedReleaseMonth   *int       `json:"expected_release_month"`
	ExpectedReleaseQuarter *int       `json:"expected_release_quarter"`
	ExpectedReleaseYear    *int       `json:"expected_release_year"`
	Name                   string     `json:"name"`
	OriginalReleaseDate    string     `json:"original_release_date"`
	SiteDetailURL          string     `json:"site_detail_url"`
	Description            string     `json:"description"`
	Platforms              []Platform `json:"platforms"`
	ID                     int        `json:"id"`
}

// VideoRef is a video reference on a game.
type VideoRef struct {
	Name          string `json:"name"`
	SiteDetailURL string `json:"site_detail_url"`
	ID            int    `json:"id"`
}

// ItemData is the supplementary data shown on an item's detail view.
type ItemData struct {
	Description   string     `json:"description"`
	SiteDetailURL string     `json:"site_detail_url"`
	Videos        []VideoRef `json:"videos"`
}

// Video is a GiantBomb video record.
type Video struct {
	Name          string `json:"name"`
	Deck          string `json:"deck"`
	HighURL       string `json:"high_url"`
	LowURL        string `json:"low_url"`
	PublishDate   string `json:"publish_date"`
	SiteDetailURL string `json:"site_detail_url"`
	ID            int    `json:"id"`
	LengthSeconds int    `json:"length_seconds"`
}
