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

// Package cli holds the flag handling and command runners of the gamedex
// binary.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/config"
	"github.com/codecollision/gamedex/pkg/helpers"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

var ErrNoCommand = errors.New("no command given")

type Flags struct {
	Match     *string
	Name      *string
	Platform  *string
	Release   *string
	ASIN      *string
	GBombID   *string
	Enrich    *bool
	Batch     *string
	Out       *string
	Sort      *string
	Normalize *string
	Config    *string
	Metrics   *string
	Workers   *int
	Debug     *bool
	Version   *bool
	fs        *flag.FlagSet
}

// SetupFlags defines the gamedex flags on fs.
func SetupFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs: fs,
		Match: fs.String(
			"match",
			"",
			"find the item known through this provider (amazon or giantbomb) on the other one",
		),
		Name: fs.String(
			"name",
			"",
			"item name",
		),
		Platform: fs.String(
			"platform",
			"",
			"item platform",
		),
		Release: fs.String(
			"release",
			"",
			"item release date (YYYY-MM-DD)",
		),
		ASIN: fs.String(
			"asin",
			catalog.NoID,
			"item Amazon ASIN",
		),
		GBombID: fs.String(
			"gbomb",
			catalog.NoID,
			"item GiantBomb id",
		),
		Enrich: fs.Bool(
			"enrich",
			false,
			"fetch prices, metascore and Wikipedia page for the item",
		),
		Batch: fs.String(
			"batch",
			"",
			"enrich every item of a CSV file",
		),
		Out: fs.String(
			"out",
			"",
			"write batch results to this CSV file instead of stdout",
		),
		Sort: fs.String(
			"sort",
			"",
			"sort batch results: alphabetical, metascore, releaseDate, platform or price",
		),
		Normalize: fs.String(
			"normalize",
			"",
			"print the standard name of a title and exit",
		),
		Config: fs.String(
			"config",
			"",
			"config directory",
		),
		Metrics: fs.String(
			"metrics",
			"",
			"serve Prometheus metrics on this address",
		),
		Workers: fs.Int(
			"workers",
			0,
			"batch enrichment workers (default from config)",
		),
		Debug: fs.Bool(
			"debug",
			false,
			"enable debug logging",
		),
		Version: fs.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

// Passed reports whether the named flag was set on the command line.
func (f *Flags) Passed(name string) bool {
	found := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// Setup initializes logging and loads the user config.
//
//nolint:gocritic // config struct copied for immutability
func Setup(
	f *Flags,
	fs afero.Fs,
	defaultConfig config.Values,
	writers []io.Writer,
) (*config.Instance, error) {
	if err := helpers.InitLogging(helpers.LogDir(), writers); err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	configDir := *f.Config
	if configDir == "" {
		configDir = helpers.ConfigDir()
	}

	cfg, err := config.NewConfig(fs, configDir, defaultConfig)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if cfg.DebugLogging() || *f.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if *f.Workers > 0 {
		cfg.SetEnrichWorkers(*f.Workers)
	}

	return cfg, nil
}

// PrintVersion writes the version line.
func PrintVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Gamedex v%s\n", config.AppVersion)
}
