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

// Package cache provides the per-provider result cache with request
// de-duplication shared by every provider adapter.
//
// A Cache holds successful results for the lifetime of the process. While
// a key is being fetched, further requests for it queue behind the single
// in-flight fetch and receive its result in the order they were made.
package cache

import (
	"context"

	"github.com/codecollision/gamedex/pkg/helpers/syncutil"
	"github.com/codecollision/gamedex/pkg/metrics"
	"github.com/rs/zerolog/log"
)

// FetchFunc loads the value for a key from the provider.
type FetchFunc[V any] func(ctx context.Context) (V, error)

// ResultFunc receives the outcome of a cached or fetched request.
type ResultFunc[V any] func(value V, err error)

type waiter[V any] struct {
	ctx      context.Context //nolint:containedctx // checked when the shared fetch resolves
	onResult ResultFunc[V]
}

// Cache is a keyed result cache for one provider namespace. Keys of
// different caches never collide. Entries are never evicted.
type Cache[V any] struct {
	entries map[string]V
	pending map[string][]waiter[V]
	name    string
	mu      syncutil.Mutex
}

// New creates an empty cache. The name labels its log lines and metrics.
func New[V any](name string) *Cache[V] {
	return &Cache[V]{
		name:    name,
		entries: make(map[string]V),
		pending: make(map[string][]waiter[V]),
	}
}

// Get returns the cached value for key.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores value for key, replacing any cached value.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Pending returns the number of requests waiting on key's in-flight fetch.
func (c *Cache[V]) Pending(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending[key])
}

// Do delivers the value for key to onResult.
//
// A cached value is delivered immediately on the calling goroutine.
// Otherwise the request joins key's queue and, if it is the first in the
// queue, fetch is started on a new goroutine. When the fetch resolves, a
// successful value is cached and every queued request receives the same
// result in the order it joined, on the goroutine that ran the fetch.
// Failed fetches are not cached.
//
// The fetch outlives the caller that started it: it runs on a context that
// keeps ctx's values but not its cancellation. A request whose ctx is done
// by the time the result arrives is skipped.
func (c *Cache[V]) Do(ctx context.Context, key string, fetch FetchFunc[V], onResult ResultFunc[V]) {
	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		metrics.CacheRequests.WithLabelValues(c.name, metrics.CacheHit).Inc()
		onResult(v, nil)
		return
	}

	queue := append(c.pending[key], waiter[V]{ctx: ctx, onResult: onResult})
	c.pending[key] = queue
	first := len(queue) == 1
	c.mu.Unlock()

	if !first {
		metrics.CacheRequests.WithLabelValues(c.name, metrics.CacheCoalesced).Inc()
		log.Debug().
			Str("cache", c.name).
			Str("key", key).
			Int("queued", len(queue)).
			Msg("joined in-flight request")
		return
	}

	metrics.CacheRequests.WithLabelValues(c.name, metrics.CacheMiss).Inc()
	go c.resolve(context.WithoutCancel(ctx), key, fetch)
}

func (c *Cache[V]) resolve(ctx context.Context, key string, fetch FetchFunc[V]) {
	v, err := fetch(ctx)

	c.mu.Lock()
	if err == nil {
		c.entries[key] = v
	}
	queue := c.pending[key]
	delete(c.pending, key)
	c.mu.Unlock()

	if err != nil {
		metrics.CacheRequests.WithLabelValues(c.name, metrics.CacheError).Inc()
		log.Warn().Err(err).
			Str("cache", c.name).
			Str("key", key).
			Int("waiters", len(queue)).
			Msg("fetch failed")
	}

	for _, w := range queue {
		if w.ctx.Err() != nil {
			continue
		}
		w.onResult(v, err)
	}
}

type result[V any] struct {
	value V
	err   error
}

// Fetch is the blocking form of Do. It returns when the value is available
// or ctx is done, whichever comes first; an abandoned fetch still completes
// and populates the cache for later callers.
func (c *Cache[V]) Fetch(ctx context.Context, key string, fetch FetchFunc[V]) (V, error) {
	done := make(chan result[V], 1)
	c.Do(ctx, key, fetch, func(v V, err error) {
		done <- result[V]{value: v, err: err}
	})

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}
