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
	"regexp"
	"strconv"
	"strings"
)

var (
	reBracketed   = regexp.MustCompile(`\s*[\[(].*[)\]]`)
	reTrophies    = regexp.MustCompile(`(?i)\s*trophies`)
	reEdition     = regexp.MustCompile(`(?i)\s*\S+ edition$`)
	reWithSuffix  = regexp.MustCompile(`(?i)\swith\s.*`)
	reLeadingThe  = regexp.MustCompile(`(?i)^\s*the\s`)
	reRomanRun    = regexp.MustCompile(`(?i)\s[IVX]+`)
	reRomanTriple = regexp.MustCompile(`(?i)III`)
)

// Normalize canonicalizes a raw game title into the comparable form stored
// as an item's standard name. Each step works on the previous step's output:
//
//  1. the span from the first opening bracket to the last closing bracket
//     is removed (greedy)
//  2. the word "trophies" is removed anywhere
//  3. a trailing "<word> edition" is removed
//  4. everything from " with " onwards is removed
//  5. a leading "the " is removed
//  6. the result is lowercased
//
// Normalize("The Legend of Zelda: Skyward Sword (Special Edition)") returns
// "legend of zelda: skyward sword".
func Normalize(title string) string {
	name := reBracketed.ReplaceAllString(title, "")
	name = reTrophies.ReplaceAllString(name, "")
	name = reEdition.ReplaceAllString(name, "")
	name = reWithSuffix.ReplaceAllString(name, "")
	name = reLeadingThe.ReplaceAllString(name, "")
	return strings.ToLower(name)
}

// ConvertRomanNumerals replaces the first whitespace-prefixed run of roman
// numeral letters (I, V, X in any case) with a space and a decimal number.
//
// Any "III" inside the run is removed and seeds the total with 3, then the
// remaining letters are walked right to left, subtracting a letter when it is
// worth less than the running total and adding it otherwise. "II" becomes 2, "IV" 4, "VIII" 8 and "IIII" 2.
func ConvertRomanNumerals(name string) string {
	loc := reRomanRun.FindStringIndex(name)
	if loc == nil {
		return name
	}

	run := name[loc[0]:loc[1]]
	total := 0
	if reRomanTriple.MatchString(run) {
		total = 3
		run = reRomanTriple.ReplaceAllString(run, "")
	}

	// index 0 is the whitespace that prefixes the run
	for i := len(run) - 1; i >= 1; i-- {
		value := romanValue(run[i])
		if value < total {
			total -= value
		} else {
			total += value
		}
	}

	return name[:loc[0]] + " " + strconv.Itoa(total) + name[loc[1]:]
}

func romanValue(c byte) int {
	switch c &^ 0x20 {
	case 'I':
		return 1
	case 'V':
		return 5
	case 'X':
		return 10
	default:
		return 0
	}
}
