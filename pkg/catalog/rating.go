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

// Metascore ratings.
const (
	RatingUnavailable = "unavailable"
	RatingUnfavorable = "unfavorable"
	RatingNeutral     = "neutral"
	RatingFavorable   = "favorable"
)

// MetascoreRating buckets a metascore for display.
func MetascoreRating(score int) string {
	switch {
	case score < 0:
		return RatingUnavailable
	case score < 50:
		return RatingUnfavorable
	case score < 75:
		return RatingNeutral
	default:
		return RatingFavorable
	}
}
