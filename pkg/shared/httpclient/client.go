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

package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/codecollision/gamedex/pkg/metrics"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeoutSeconds is the default timeout for HTTP requests
	DefaultTimeoutSeconds = 30
	// DefaultUserAgent identifies Gamedex to providers.
	DefaultUserAgent = "Gamedex/2.0"
	// MaxBodySize caps how much of a response body is read.
	MaxBodySize = 8 << 20
)

var (
	ErrRateLimited  = errors.New("rate limited by provider")
	ErrUnauthorized = errors.New("provider rejected credentials")
	ErrNotFound     = errors.New("provider resource not found")
	ErrServer       = errors.New("provider server error")
)

// StatusError is returned for non-200 provider responses. It unwraps to
// one of the Err* sentinels where the status maps to one.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d from %s", e.StatusCode, e.URL)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode >= http.StatusInternalServerError:
		return ErrServer
	default:
		return nil
	}
}

// DefaultTransport provides a configured transport with connection pooling and reasonable timeouts
var DefaultTransport = &http.Transport{
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ResponseHeaderTimeout: 30 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
}

// Options configures a provider client.
type Options struct {
	// Transport overrides DefaultTransport, mostly for tests.
	Transport http.RoundTripper
	// Provider labels request metrics and log lines.
	Provider  string
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond limits outgoing requests. Zero or less disables
	// the limit.
	RequestsPerSecond float64
}

// Client is an HTTP client for one provider with a request rate limit.
type Client struct {
	*http.Client
	limiter   *rate.Limiter
	provider  string
	userAgent string
}

// NewClient creates a provider client from opts.
func NewClient(opts Options) *Client {
	transport := opts.Transport
	if transport == nil {
		transport = DefaultTransport
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeoutSeconds * time.Second
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}

	return &Client{
		Client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		limiter:   limiter,
		provider:  opts.Provider,
		userAgent: userAgent,
	}
}

// NewClientWithTimeout creates an unlimited client with a custom timeout.
func NewClientWithTimeout(timeout time.Duration) *Client {
	return NewClient(Options{Timeout: timeout})
}

// Get performs a GET request and returns the response. The call waits for
// the rate limiter first.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("error waiting for rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.Do(req)
	if c.provider != "" {
		metrics.RecordProviderRequest(c.provider, start)
	}
	if err != nil {
		return nil, fmt.Errorf("error performing GET request: %w", err)
	}

	return resp, nil
}

// GetBody performs a GET request and returns the body of a 200 response.
// Other statuses return a *StatusError.
func (c *Client) GetBody(ctx context.Context, url string) ([]byte, error) {
	log.Debug().Str("provider", c.provider).Str("url", url).Msg("provider request")

	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}
	return body, nil
}
