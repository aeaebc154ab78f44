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

package linker

import (
	"slices"

	"github.com/rs/zerolog/log"
)

// State is the progress of a single lookup.
type State int

const (
	StateIdle State = iota
	StateSearching
	StateScoring
	StateRetrySearching
	StateMatched
	StateUnmatched
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSearching:
		return "searching"
	case StateScoring:
		return "scoring"
	case StateRetrySearching:
		return "retry_searching"
	case StateMatched:
		return "matched"
	case StateUnmatched:
		return "unmatched"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends a lookup.
func (s State) Terminal() bool {
	return s == StateMatched || s == StateUnmatched
}

var transitions = map[State][]State{
	StateIdle:           {StateSearching},
	StateSearching:      {StateScoring, StateUnmatched},
	StateScoring:        {StateMatched, StateRetrySearching, StateUnmatched},
	StateRetrySearching: {StateScoring, StateUnmatched},
}

// lookup tracks one FindMatch call through its states.
type lookup struct {
	id       string
	itemID   string
	provider string
	history  []State
	state    State
}

func newLookup(id, itemID, provider string) *lookup {
	return &lookup{
		id:       id,
		itemID:   itemID,
		provider: provider,
		state:    StateIdle,
		history:  []State{StateIdle},
	}
}

// to moves the lookup to next. Invalid transitions and transitions out of
// a terminal state are logged and ignored, so a lookup ends exactly once.
func (l *lookup) to(next State) bool {
	if !slices.Contains(transitions[l.state], next) {
		log.Error().
			Str("lookup", l.id).
			Stringer("from", l.state).
			Stringer("to", next).
			Msg("invalid lookup state transition")
		return false
	}

	log.Debug().
		Str("lookup", l.id).
		Str("item", l.itemID).
		Str("provider", l.provider).
		Stringer("from", l.state).
		Stringer("to", next).
		Msg("lookup state")
	l.state = next
	l.history = append(l.history, next)
	return true
}
