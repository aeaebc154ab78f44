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

package helpers

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/codecollision/gamedex/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogging(t *testing.T) {
	// Cannot use t.Parallel() because InitLogging modifies global log.Logger
	original := log.Logger
	t.Cleanup(func() { log.Logger = original })

	t.Run("creates log directory", func(t *testing.T) {
		logDir := filepath.Join(t.TempDir(), "logs", "nested")

		require.NoError(t, InitLogging(logDir, nil))

		info, err := os.Stat(logDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("writes to file and extra writers", func(t *testing.T) {
		logDir := t.TempDir()
		var buf bytes.Buffer

		require.NoError(t, InitLogging(logDir, []io.Writer{&buf}))
		log.Info().Msg("hello gamedex")

		assert.Contains(t, buf.String(), "hello gamedex")
		data, err := os.ReadFile(filepath.Join(logDir, config.LogFile))
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello gamedex")
	})

	t.Run("fails on invalid path", func(t *testing.T) {
		err := InitLogging("/proc/invalid\x00path", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create log directory")
	})
}

func TestDefaultDirs(t *testing.T) {
	t.Parallel()

	if _, ok := HasUserDir(); ok {
		t.Skip("portable user directory present")
	}
	assert.Equal(t, filepath.Join(xdg.ConfigHome, config.AppName), ConfigDir())
	assert.Equal(t, filepath.Join(xdg.DataHome, config.AppName), DataDir())
	assert.Equal(t, filepath.Join(DataDir(), config.LogsDir), LogDir())
}

func TestFindUserDir(t *testing.T) {
	t.Parallel()

	t.Run("found next to binary", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(root, config.UserDir), 0o750))

		dir, ok := findUserDir(filepath.Join(root, "gamedex"))
		assert.True(t, ok)
		assert.Equal(t, filepath.Join(root, config.UserDir), dir)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, ok := findUserDir(filepath.Join(t.TempDir(), "gamedex"))
		assert.False(t, ok)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, config.UserDir), nil, 0o600))

		_, ok := findUserDir(filepath.Join(root, "gamedex"))
		assert.False(t, ok)
	})
}
