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

import "time"

// AppVersion is set at build time.
var AppVersion = "DEVELOPMENT"

const (
	AppName    = "gamedex"
	LogFile    = "gamedex.log"
	CfgFile    = "gamedex.toml"
	LinkDbFile = "links.db"
	UserDir    = "user"
	LogsDir    = "logs"

	// AppEnv overrides the binary path used to find the portable user
	// directory.
	AppEnv = "GAMEDEX_APPBIN"

	DefaultHTTPTimeout = 30 * time.Second
	DefaultWorkers     = 4
)
