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

// Package platformdefs holds the standard platform table used to reconcile
// the platform strings reported by each provider.
package platformdefs

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// NotAvailable is the platform name used for unknown or missing platforms.
const NotAvailable = "n/a"

//go:embed platforms.yaml
var platformsYAML []byte

// Platform is one entry of the standard platform table.
type Platform struct {
	Name       string   `yaml:"name"`
	GiantBomb  string   `yaml:"giantbomb"`
	Metacritic string   `yaml:"metacritic"`
	Aliases    []string `yaml:"aliases"`
	Amazon     int64    `yaml:"amazon"`
}

type tableFile struct {
	Platforms []Platform `yaml:"platforms"`
}

// Table maps normalized platform aliases to standard platforms.
type Table struct {
	byAlias   map[string]Platform
	byName    map[string]Platform
	platforms []Platform
}

// Parse builds a Table from YAML data in the platforms.yaml format.
func Parse(data []byte) (*Table, error) {
	var tf tableFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse platform table: %w", err)
	}

	t := &Table{
		byAlias:   make(map[string]Platform),
		byName:    make(map[string]Platform),
		platforms: tf.Platforms,
	}
	for _, p := range tf.Platforms {
		if p.Name == "" {
			return nil, fmt.Errorf("platform table entry without name: %+v", p)
		}
		t.byName[p.Name] = p
		t.byAlias[normalizeKey(p.Name)] = p
		t.byAlias[normalizeKey(p.GiantBomb)] = p
		for _, alias := range p.Aliases {
			key := normalizeKey(alias)
			if existing, ok := t.byAlias[key]; ok && existing.Name != p.Name {
				return nil, fmt.Errorf("platform alias %q used by %q and %q", alias, existing.Name, p.Name)
			}
			t.byAlias[key] = p
		}
	}
	delete(t.byAlias, "")

	return t, nil
}

// Lookup resolves a raw provider platform string to its standard platform.
// Unknown strings resolve to the "n/a" platform.
func (t *Table) Lookup(raw string) Platform {
	if p, ok := t.byAlias[normalizeKey(raw)]; ok {
		return p
	}
	if raw != "" && raw != NotAvailable {
		log.Debug().Str("platform", raw).Msg("unknown platform")
	}
	return Platform{Name: NotAvailable}
}

// ByName returns the platform with the given standard name.
func (t *Table) ByName(name string) (Platform, bool) {
	p, ok := t.byName[name]
	return p, ok
}

// Platforms returns all platforms in table order.
func (t *Table) Platforms() []Platform {
	out := make([]Platform, len(t.platforms))
	copy(out, t.platforms)
	return out
}

var defaultTable = sync.OnceValue(func() *Table {
	t, err := Parse(platformsYAML)
	if err != nil {
		panic(err)
	}
	return t
})

// Default returns the embedded platform table.
func Default() *Table {
	return defaultTable()
}

// Lookup resolves raw using the embedded table.
func Lookup(raw string) Platform {
	return Default().Lookup(raw)
}

// StandardName returns the standard platform name for raw, or "n/a".
func StandardName(raw string) string {
	return Default().Lookup(raw).Name
}

// AmazonBrowseNode returns the Amazon browse node for a standard platform
// name. Unknown platforms and "n/a" return 0, which searches all of games.
func AmazonBrowseNode(name string) int64 {
	if p, ok := Default().ByName(name); ok {
		return p.Amazon
	}
	return 0
}

var keyTransformer = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// normalizeKey folds case, strips diacritics and drops everything that is
// not a letter or digit, so "PlayStation 3", "playstation-3" and
// "PLAYSTATION3" share a key.
func normalizeKey(s string) string {
	if normalized, _, err := transform.String(keyTransformer, s); err == nil {
		s = normalized
	}
	s = cases.Fold().String(s)

	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
