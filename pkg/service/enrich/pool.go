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

package enrich

import (
	"context"
	"sync"

	"github.com/codecollision/gamedex/pkg/catalog"
	"github.com/rs/zerolog/log"
)

// DefaultWorkers is the worker count used when none is configured.
const DefaultWorkers = 4

type job struct {
	item  *catalog.SourceItem
	index int
}

// ItemResult is the outcome of enriching one item of a batch.
type ItemResult struct {
	Result *Result
	Err    error
}

// EnrichAll enriches items on a pool of workers and returns the results in
// item order. Items not started before ctx is done report ctx's error.
func (s *Service) EnrichAll(ctx context.Context, items []*catalog.SourceItem, workers int) []ItemResult {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	workers = min(workers, len(items))

	results := make([]ItemResult, len(items))
	jobs := make(chan job)

	log.Info().Int("workers", workers).Int("items", len(items)).Msg("starting enrichment")

	var wg sync.WaitGroup
	for id := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, id, jobs, results)
		}()
	}

	queued := 0
queue:
	for i, item := range items {
		select {
		case <-ctx.Done():
			break queue
		case jobs <- job{index: i, item: item}:
			queued++
		}
	}
	close(jobs)
	wg.Wait()

	for i := queued; i < len(items); i++ {
		results[i].Err = ctx.Err()
	}

	log.Info().Int("items", queued).Msg("enrichment finished")
	return results
}

func (s *Service) worker(ctx context.Context, id int, jobs <-chan job, results []ItemResult) {
	log.Debug().Int("worker_id", id).Msg("enrich worker started")
	for j := range jobs {
		log.Debug().Int("worker_id", id).Str("item", j.item.ID).Msg("enriching item")
		res, err := s.Enrich(ctx, j.item)
		if err != nil {
			log.Error().Err(err).Int("worker_id", id).Str("item", j.item.ID).Msg("failed to enrich item")
		}
		results[j.index] = ItemResult{Result: res, Err: err}
	}
	log.Debug().Int("worker_id", id).Msg("enrich worker stopped")
}
