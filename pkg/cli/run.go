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

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/codecollision/gamedex/pkg/config"
	"github.com/codecollision/gamedex/pkg/linker"
	"github.com/codecollision/gamedex/pkg/titles"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Runner executes the command selected by the flags.
type Runner struct {
	Flags   *Flags
	Cfg     *config.Instance
	Clients *Clients
	Fs      afero.Fs
	Out     io.Writer
}

// Run dispatches to the batch, match or enrich command, in that order of
// precedence.
func (r *Runner) Run(ctx context.Context) error {
	switch {
	case *r.Flags.Batch != "":
		return r.runBatch(ctx)
	case *r.Flags.Match != "":
		return r.runMatch(ctx)
	case *r.Flags.Enrich:
		return r.runEnrich(ctx)
	default:
		return ErrNoCommand
	}
}

// Normalize writes the standard name of title.
func Normalize(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, titles.Normalize(title))
}

// ItemFromFlags builds the source item described by the item flags.
func (f *Flags) ItemFromFlags() (*catalog.SourceItem, error) {
	b := BatchItem{
		Name:        *f.Name,
		Platform:    *f.Platform,
		ASIN:        *f.ASIN,
		GBombID:     *f.GBombID,
		ReleaseDate: *f.Release,
	}
	return b.SourceItem()
}

func (r *Runner) runMatch(ctx context.Context) error {
	provider := catalog.Provider(*r.Flags.Match)
	if !provider.IsSearchProvider() {
		return fmt.Errorf("%w: %s", linker.ErrUnknownProvider, provider)
	}

	item, err := r.Flags.ItemFromFlags()
	if err != nil {
		return err
	}

	detail, err := r.Clients.Linker.FindMatch(ctx, item, provider, linker.Options{})
	if errors.Is(err, linker.ErrNoMatch) {
		_, _ = fmt.Fprintf(r.Out, "No match found for %q\n", item.Name)
		return nil
	} else if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}

	return r.writeJSON(detail)
}

func (r *Runner) runEnrich(ctx context.Context) error {
	item, err := r.Flags.ItemFromFlags()
	if err != nil {
		return err
	}

	res, err := r.Clients.Enrich.Enrich(ctx, item)
	if err != nil {
		return fmt.Errorf("enrich failed: %w", err)
	}
	return r.writeJSON(res)
}

func (r *Runner) runBatch(ctx context.Context) error {
	var sortType catalog.SortType
	if *r.Flags.Sort != "" {
		st, err := catalog.ParseSortType(*r.Flags.Sort)
		if err != nil {
			return err
		}
		sortType = st
	}

	in, err := r.Fs.Open(*r.Flags.Batch)
	if err != nil {
		return fmt.Errorf("failed to open batch file: %w", err)
	}
	defer func() {
		_ = in.Close()
	}()

	items, err := ReadBatch(in)
	if err != nil {
		return err
	}

	results := r.Clients.Enrich.EnrichAll(ctx, items, r.Cfg.EnrichWorkers())

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	log.Info().Int("items", len(items)).Int("failed", failed).Msg("batch finished")

	rows := BatchRows(items, results, sortType)

	if *r.Flags.Out == "" {
		return WriteBatch(r.Out, rows)
	}

	out, err := r.Fs.Create(*r.Flags.Out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteBatch(out, rows); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}

func (r *Runner) writeJSON(v any) error {
	enc := json.NewEncoder(r.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}
	return nil
}
