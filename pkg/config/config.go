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

// Package config loads and saves the gamedex.toml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/codecollision/gamedex/pkg/helpers/syncutil"
	"github.com/codecollision/gamedex/pkg/validation"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	SchemaVersion = 1
	CfgEnv        = "GAMEDEX_CFG"
)

var ErrSchemaMismatch = errors.New("schema version mismatch")

type Values struct {
	Providers    Providers `toml:"providers"`
	Database     Database  `toml:"database,omitempty"`
	HTTP         HTTP      `toml:"http"`
	Enrich       Enrich    `toml:"enrich"`
	ConfigSchema int       `toml:"config_schema"`
	DebugLogging bool      `toml:"debug_logging"`
}

type Providers struct {
	GiantBomb  GiantBomb  `toml:"giantbomb"`
	Amazon     Amazon     `toml:"amazon"`
	Metacritic Metacritic `toml:"metacritic,omitempty"`
	Wikipedia  Wikipedia  `toml:"wikipedia,omitempty"`
	Steam      Steam      `toml:"steam"`
}

type GiantBomb struct {
	BaseURL string `toml:"base_url,omitempty" validate:"omitempty,http_url"`
	APIKey  string `toml:"api_key"`
}

type Amazon struct {
	BaseURL      string `toml:"base_url,omitempty" validate:"omitempty,http_url"`
	AssociateTag string `toml:"associate_tag"`
	AccessKey    string `toml:"access_key"`
}

type Metacritic struct {
	BaseURL string `toml:"base_url,omitempty" validate:"omitempty,http_url"`
}

type Wikipedia struct {
	BaseURL string `toml:"base_url,omitempty" validate:"omitempty,http_url"`
}

type Steam struct {
	BaseURL     string `toml:"base_url,omitempty" validate:"omitempty,http_url"`
	CountryCode string `toml:"country_code" validate:"omitempty,len=2,alpha"`
}

type HTTP struct {
	Timeout           string  `toml:"timeout" validate:"duration"`
	RequestsPerSecond float64 `toml:"requests_per_second" validate:"gte=0"`
}

type Database struct {
	Path string `toml:"path,omitempty"`
}

type Enrich struct {
	Workers int `toml:"workers" validate:"gte=0,lte=64"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Providers: Providers{
		Steam: Steam{CountryCode: "US"},
	},
	HTTP: HTTP{
		Timeout:           DefaultHTTPTimeout.String(),
		RequestsPerSecond: 1,
	},
	Enrich: Enrich{
		Workers: DefaultWorkers,
	},
}

// Instance is the loaded configuration. All accessors are safe for
// concurrent use.
type Instance struct {
	fs       afero.Fs
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

// NewConfig loads the config file from configDir, or from the path in
// GAMEDEX_CFG when set. A missing file is created with defaults.
//
//nolint:gocritic // config struct copied for immutability
func NewConfig(fs afero.Fs, configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		fs:       fs,
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	exists, err := afero.Exists(fs, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if !exists {
		log.Info().Str("path", cfgPath).Msg("saving new default config to disk")
		if err := fs.MkdirAll(filepath.Dir(cfgPath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
		if err := cfg.Save(); err != nil {
			return nil, err
		}
	}

	if err := cfg.Load(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads the config file over the defaults and validates it.
func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := afero.ReadFile(c.fs, c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// fields missing from the file keep their defaults
	newVals := c.defaults
	if err := toml.Unmarshal(data, &newVals); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return ErrSchemaMismatch
	}

	if err := validation.Validate(&newVals); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	c.vals = newVals
	return nil
}

// Save writes the current values to the config file.
func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := afero.WriteFile(c.fs, c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Path is the location of the config file.
func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
	if enabled {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func (c *Instance) Providers() Providers {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Providers
}

// HTTPTimeout returns the provider request timeout. Zero or unparseable
// values fall back to DefaultHTTPTimeout.
func (c *Instance) HTTPTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, err := time.ParseDuration(c.vals.HTTP.Timeout)
	if err != nil || d <= 0 {
		return DefaultHTTPTimeout
	}
	return d
}

func (c *Instance) RequestsPerSecond() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.HTTP.RequestsPerSecond
}

// DatabasePath returns the configured link database path, or LinkDbFile
// next to the config file.
func (c *Instance) DatabasePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Database.Path != "" {
		return c.vals.Database.Path
	}
	return filepath.Join(filepath.Dir(c.cfgPath), LinkDbFile)
}

func (c *Instance) EnrichWorkers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Enrich.Workers <= 0 {
		return DefaultWorkers
	}
	return c.vals.Enrich.Workers
}

func (c *Instance) SetEnrichWorkers(workers int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Enrich.Workers = workers
}
