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
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/codecollision/gamedex/pkg/config"
)

var (
	userDirCache       string
	userDirCacheExists bool
	userDirOnce        sync.Once
)

// HasUserDir checks if a "user" directory exists next to the gamedex binary
// and returns its absolute path. When present it holds the config, database
// and logs, for a portable install. The result is cached after the first
// call.
func HasUserDir() (string, bool) {
	userDirOnce.Do(func() {
		userDirCache, userDirCacheExists = findUserDir(os.Getenv(config.AppEnv))
	})
	return userDirCache, userDirCacheExists
}

func findUserDir(exePath string) (string, bool) {
	if exePath == "" {
		var err error
		exePath, err = os.Executable()
		if err != nil {
			return "", false
		}
	}

	userDir := filepath.Join(filepath.Dir(exePath), config.UserDir)
	info, err := os.Stat(userDir)
	if err != nil || !info.IsDir() {
		return "", false
	}
	return userDir, true
}

// ConfigDir is where gamedex.toml lives: the portable user directory, or
// the XDG config directory.
func ConfigDir() string {
	if v, ok := HasUserDir(); ok {
		return v
	}
	return filepath.Join(xdg.ConfigHome, config.AppName)
}

// DataDir is where the link database lives by default.
func DataDir() string {
	if v, ok := HasUserDir(); ok {
		return v
	}
	return filepath.Join(xdg.DataHome, config.AppName)
}

// LogDir is where the rotating log file is written.
func LogDir() string {
	return filepath.Join(DataDir(), config.LogsDir)
}
