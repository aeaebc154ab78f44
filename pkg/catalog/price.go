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

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var reFloatPrefix = regexp.MustCompile(`^[+-]?(Infinity|\d+\.?\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?)`)

// ParsePrice parses the longest numeric prefix of s after leading
// whitespace, so "19.99 USD" is 19.99. Strings without a numeric prefix
// parse as NaN, which never compares lower than any price.
func ParsePrice(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f \uFEFF")
	m := reFloatPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	// out of range exponents report an error but still return ±Inf or 0
	f, _ := strconv.ParseFloat(m, 64)
	return f
}
