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

// Package metrics defines the Prometheus collectors exported by Gamedex.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache request results.
const (
	CacheHit       = "hit"
	CacheMiss      = "miss"
	CacheCoalesced = "coalesced"
	CacheError     = "error"
)

// Match outcomes.
const (
	MatchMatched   = "matched"
	MatchUnmatched = "unmatched"
	MatchError     = "error"
)

var (
	// CacheRequests counts provider cache lookups by cache name and result.
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamedex_cache_requests_total",
		Help: "Total number of provider cache requests.",
	}, []string{"provider", "result"})

	// Matches counts finished item lookups by target provider and outcome.
	Matches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gamedex_match_total",
		Help: "Total number of cross-provider item lookups.",
	}, []string{"provider", "outcome"})

	ProviderRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gamedex_provider_request_seconds",
		Help:    "Duration of provider HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})
)

// RecordProviderRequest records the time taken by one provider request.
func RecordProviderRequest(provider string, start time.Time) {
	ProviderRequestDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}
