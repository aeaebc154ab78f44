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

import "time"

// DateLayout is the layout of every release date string.
const DateLayout = "2006-01-02"

// CalendarDate renders a release date relative to now the way a calendar
// widget does: "Today at 12:00 AM", "Yesterday at …", "Tomorrow at …",
// "Last Monday at …", "Monday at …", otherwise "MM/DD/YYYY". Missing,
// sentinel and invalid dates render as "Unknown".
func CalendarDate(date string, now time.Time) string {
	if date == "" || date == UnknownDate {
		return UnknownCalendar
	}
	t, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return UnknownCalendar
	}

	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	diff := t.Sub(startOfToday).Hours() / 24
	clock := t.Format("3:04 PM")

	switch {
	case diff < -6:
		return t.Format("01/02/2006")
	case diff < -1:
		return "Last " + t.Weekday().String() + " at " + clock
	case diff < 0:
		return "Yesterday at " + clock
	case diff < 1:
		return "Today at " + clock
	case diff < 2:
		return "Tomorrow at " + clock
	case diff < 7:
		return t.Weekday().String() + " at " + clock
	default:
		return t.Format("01/02/2006")
	}
}

// ParseDate parses a release date. The sentinel parses like any other date.
func ParseDate(date string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
