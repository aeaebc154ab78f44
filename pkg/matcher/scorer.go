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

// Package matcher scores provider search candidates against a source item
// and selects the best match.
package matcher

import (
	"math"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/platformdefs"
	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
)

const (
	baseScore         = 100
	sameDayBonus      = 100
	samePlatformBonus = 20
	// initialBestScore is below any score a real candidate can reach, so
	// the first scored candidate always becomes the best.
	initialBestScore = -99999
	msPerDay         = 86400000
)

// Levenshtein returns the edit distance between a and b with unit costs,
// compared code point by code point and case-sensitively.
func Levenshtein(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}

// Scorer scores candidates using a platform table to reconcile platform
// names.
type Scorer struct {
	platforms *platformdefs.Table
}

// NewScorer returns a Scorer backed by platforms. A nil table uses the
// embedded default.
func NewScorer(platforms *platformdefs.Table) *Scorer {
	if platforms == nil {
		platforms = platformdefs.Default()
	}
	return &Scorer{platforms: platforms}
}

// Score rates how well candidate matches source. It starts at 100 and
// subtracts the edit distance between the source's standard name and the
// candidate's raw name. A candidate with a release date gains 100 for the
// same day and loses the date difference in years unless its date is the
// unknown sentinel. A candidate whose platform resolves to the source's
// platform gains 20.
func (s *Scorer) Score(source *catalog.SourceItem, candidate *catalog.SearchCandidate) float64 {
	score := float64(baseScore - Levenshtein(source.StandardName(), candidate.Name))

	if candidate.ReleaseDate != "" {
		diff, ok := diffDays(source.ReleaseDate, candidate.ReleaseDate)
		if ok && diff == 0 {
			score += sameDayBonus
		}
		if ok && candidate.ReleaseDate != catalog.UnknownDate {
			score -= math.Abs(diff / 365)
		}
	}

	if candidate.Platform != "" {
		if s.platforms.Lookup(candidate.Platform).Name == source.Platform {
			score += samePlatformBonus
		}
	}

	return score
}

// diffDays is the whole number of days from candidate to source, floored.
func diffDays(source, candidate string) (float64, bool) {
	st, ok := catalog.ParseDate(source)
	if !ok {
		return 0, false
	}
	ct, ok := catalog.ParseDate(candidate)
	if !ok {
		return 0, false
	}
	ms := float64(st.UnixMilli() - ct.UnixMilli())
	return math.Floor(ms / msPerDay), true
}

// Best returns the highest scoring unfiltered candidate. The first
// unfiltered candidate seeds the result and a later candidate replaces the
// best only with a strictly greater score, so ties keep the earlier one.
// Best is nil when there is no unfiltered candidate.
func (s *Scorer) Best(
	source *catalog.SourceItem,
	candidates []catalog.SearchCandidate,
) catalog.MatchResult {
	result := catalog.MatchResult{Score: initialBestScore}

	for i := range candidates {
		candidate := &candidates[i]
		if candidate.Filtered {
			continue
		}
		if result.Best == nil {
			result.Best = candidate
		}

		score := s.Score(source, candidate)
		log.Debug().
			Str("source", source.StandardName()).
			Str("candidate", candidate.Name).
			Float64("score", score).
			Msg("scored match candidate")

		if score > result.Score {
			result.Best = candidate
			result.Score = score
		}
	}

	return result
}
