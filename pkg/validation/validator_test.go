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

//nolint:revive // custom validation tags are unknown to revive
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomTags(t *testing.T) {
	t.Parallel()

	type record struct {
		Timeout  string `validate:"duration"`
		Platform string `validate:"platform"`
		Release  string `validate:"releasedate"`
		Provider string `validate:"provider"`
	}

	tests := []struct {
		name    string
		wantTag string
		rec     record
	}{
		{name: "all empty", rec: record{}},
		{name: "all valid", rec: record{Timeout: "30s", Platform: "PS3", Release: "2007-09-25", Provider: "amazon"}},
		{name: "n/a platform", rec: record{Platform: "n/a"}},
		{name: "bad duration", rec: record{Timeout: "thirty"}, wantTag: "duration"},
		{name: "unknown platform", rec: record{Platform: "Virtual Boy"}, wantTag: "platform"},
		{name: "bad date", rec: record{Release: "09/25/2007"}, wantTag: "releasedate"},
		{name: "non search provider", rec: record{Provider: "steam"}, wantTag: "provider"},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := v.Validate(&tt.rec)
			if tt.wantTag == "" {
				require.NoError(t, err)
				return
			}
			var verr *Error
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.wantTag, verr.Fields[0].Tag)
			assert.NotEmpty(t, verr.Error())
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	type record struct {
		Name    string `validate:"required"`
		Workers int    `validate:"gte=1,lte=8"`
	}

	err := Validate(&record{Workers: 20})
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name is required; workers must be less than or equal to 8", verr.Error())
	assert.Equal(t, "record.Name", verr.Fields[0].Field)
}

func TestEmptyError(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "validation failed", (&Error{}).Error())
}
