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

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/codecollision/gamedex/pkg/testing/helpers"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigDir = "/config"

func newTestConfig(t *testing.T, fs afero.Fs) *Instance {
	t.Helper()
	cfg, err := NewConfig(fs, testConfigDir, BaseDefaults)
	require.NoError(t, err)
	return cfg
}

func TestNewConfig_WritesDefaults(t *testing.T) {
	t.Setenv(CfgEnv, "")
	fs := afero.NewMemMapFs()

	cfg := newTestConfig(t, fs)

	path := filepath.Join(testConfigDir, CfgFile)
	assert.Equal(t, path, cfg.Path())

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "config_schema = 1")
	assert.Contains(t, string(data), "country_code = 'US'")

	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout())
	assert.InDelta(t, 1.0, cfg.RequestsPerSecond(), 0)
	assert.Equal(t, DefaultWorkers, cfg.EnrichWorkers())
	assert.Equal(t, "US", cfg.Providers().Steam.CountryCode)
	assert.False(t, cfg.DebugLogging())
}

func TestNewConfig_LoadsExistingFile(t *testing.T) {
	t.Setenv(CfgEnv, "")
	h := helpers.NewMemoryFS()

	content := `debug_logging = true

[providers.giantbomb]
api_key = 'abc123'

[providers.amazon]
associate_tag = 'gamedex-20'
access_key = 'AKIA'

[http]
timeout = '5s'
requests_per_second = 2.5

[database]
path = '/data/links.db'

[enrich]
workers = 8
`
	_, err := h.CreateConfigFile(testConfigDir, content)
	require.NoError(t, err)

	cfg := newTestConfig(t, h.Fs)

	assert.True(t, cfg.DebugLogging())
	assert.Equal(t, "abc123", cfg.Providers().GiantBomb.APIKey)
	assert.Equal(t, "gamedex-20", cfg.Providers().Amazon.AssociateTag)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout())
	assert.InDelta(t, 2.5, cfg.RequestsPerSecond(), 0)
	assert.Equal(t, "/data/links.db", cfg.DatabasePath())
	assert.Equal(t, 8, cfg.EnrichWorkers())
	// missing from the file, so the default is kept
	assert.Equal(t, "US", cfg.Providers().Steam.CountryCode)
}

func TestNewConfig_EnvPath(t *testing.T) {
	t.Setenv(CfgEnv, "/elsewhere/custom.toml")
	h := helpers.NewMemoryFS()

	cfg := newTestConfig(t, h.Fs)

	assert.Equal(t, "/elsewhere/custom.toml", cfg.Path())
	assert.True(t, h.FileExists("/elsewhere/custom.toml"))
	assert.Equal(t, filepath.Join("/elsewhere", LinkDbFile), cfg.DatabasePath())
}

func TestNewConfig_SchemaMismatch(t *testing.T) {
	t.Setenv(CfgEnv, "")
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(testConfigDir, CfgFile),
		[]byte("config_schema = 99\n"), 0o600))

	_, err := NewConfig(fs, testConfigDir, BaseDefaults)
	require.ErrorIs(t, err, ErrSchemaMismatch)
}

func TestNewConfig_InvalidValues(t *testing.T) {
	t.Setenv(CfgEnv, "")

	tests := []struct {
		name    string
		content string
	}{
		{name: "bad timeout", content: "config_schema = 1\n[http]\ntimeout = 'soon'\n"},
		{name: "negative rate", content: "config_schema = 1\n[http]\nrequests_per_second = -1.0\n"},
		{name: "too many workers", content: "config_schema = 1\n[enrich]\nworkers = 1000\n"},
		{name: "bad base url", content: "config_schema = 1\n[providers.steam]\nbase_url = 'nope'\n"},
		{name: "bad country", content: "config_schema = 1\n[providers.steam]\ncountry_code = 'USA'\n"},
		{name: "bad toml", content: "config_schema = [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, filepath.Join(testConfigDir, CfgFile),
				[]byte(tt.content), 0o600))

			_, err := NewConfig(fs, testConfigDir, BaseDefaults)
			require.Error(t, err)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(CfgEnv, "")
	fs := afero.NewMemMapFs()

	cfg := newTestConfig(t, fs)
	cfg.SetEnrichWorkers(6)
	cfg.SetDebugLogging(true)
	t.Cleanup(func() { cfg.SetDebugLogging(false) })
	require.NoError(t, cfg.Save())

	reloaded := newTestConfig(t, fs)
	assert.Equal(t, 6, reloaded.EnrichWorkers())
	assert.True(t, reloaded.DebugLogging())
}

func TestHTTPTimeoutFallback(t *testing.T) {
	t.Parallel()

	cfg := &Instance{vals: Values{HTTP: HTTP{Timeout: "0s"}}}
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout())

	cfg = &Instance{vals: Values{HTTP: HTTP{Timeout: ""}}}
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTPTimeout())
}

func TestEnrichWorkersFallback(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	assert.Equal(t, DefaultWorkers, cfg.EnrichWorkers())
}
