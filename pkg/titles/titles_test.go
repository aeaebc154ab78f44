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

package titles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "parenthetical and leading the",
			input:    "The Legend of Zelda: Skyward Sword (Special Edition)",
			expected: "legend of zelda: skyward sword",
		},
		{
			name:     "greedy bracket span",
			input:    "Halo [Platinum] Reach (PAL)",
			expected: "halo",
		},
		{
			name:     "trophies removed",
			input:    "Uncharted 2 Trophies",
			expected: "uncharted 2",
		},
		{
			name:     "trailing edition word",
			input:    "Game Deluxe Edition",
			expected: "game",
		},
		{
			name:     "edition not at end is kept",
			input:    "Special Edition Racing",
			expected: "special edition racing",
		},
		{
			name:     "with suffix removed",
			input:    "Rock Band with Guitar Bundle",
			expected: "rock band",
		},
		{
			name:     "the only at start",
			input:    "Beyond the Sword",
			expected: "beyond the sword",
		},
		{
			name:     "leading whitespace before the",
			input:    "  THE Witcher",
			expected: "witcher",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestConvertRomanNumerals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "Final Fantasy II", expected: "Final Fantasy 2"},
		{input: "Final Fantasy III", expected: "Final Fantasy 3"},
		{input: "Final Fantasy IV", expected: "Final Fantasy 4"},
		{input: "Dragon Quest IX", expected: "Dragon Quest 9"},
		{input: "Final Fantasy VI", expected: "Final Fantasy 6"},
		{input: "Final Fantasy XIV", expected: "Final Fantasy 14"},
		{input: "Final Fantasy VIII", expected: "Final Fantasy 8"},
		{input: "Odd IIII", expected: "Odd 2"},
		{input: "dragon quest ix", expected: "dragon quest 9"},
		{input: "Rocky IV Returns", expected: "Rocky 4 Returns"},
		{input: "Civilization V II", expected: "Civilization 5 II"},
		{input: "Halo", expected: "Halo"},
		{input: "IV", expected: "IV"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ConvertRomanNumerals(tt.input))
		})
	}
}

func TestPropertyNormalizeIsLowercase(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		title := rapid.StringMatching(`[A-Za-z0-9 :()\[\]]{0,40}`).Draw(t, "title")
		got := Normalize(title)
		if got != strings.ToLower(got) {
			t.Fatalf("Normalize(%q) = %q is not lowercase", title, got)
		}
	})
}

func TestPropertyNormalizeIdempotentWithoutMarkers(t *testing.T) {
	t.Parallel()
	words := []string{"super", "mario", "zelda", "quest", "dragon", "racing", "star"}
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 5).Draw(t, "count")
		parts := make([]string, count)
		for i := range count {
			parts[i] = rapid.SampledFrom(words).Draw(t, "word")
		}
		title := strings.Join(parts, " ")
		if got := Normalize(title); got != title {
			t.Fatalf("Normalize(%q) = %q, want unchanged", title, got)
		}
	})
}
