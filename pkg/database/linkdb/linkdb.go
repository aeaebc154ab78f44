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

// Package linkdb is the SQLite store for cross-provider item links and
// store prices.
package linkdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/codecollision/gamedex/pkg/database"
	"github.com/jonboulle/clockwork"
	_ "github.com/mattn/go-sqlite3"
)

// ErrNullSQL is returned when the database is not open.
var ErrNullSQL = errors.New("LinkDB is not connected")

const sqliteConnParams = "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"

// LinkDB implements database.LinkStore on SQLite.
type LinkDB struct {
	sql   *sql.DB
	clock clockwork.Clock
}

var _ database.LinkStore = (*LinkDB)(nil)

// Open opens or creates the database at path and applies migrations.
func Open(path string, clock clockwork.Clock) (*LinkDB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create directory for database: %w", err)
	}
	sqlInstance, err := sql.Open("sqlite3", path+sqliteConnParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db := New(sqlInstance, clock)
	if err := db.MigrateUp(); err != nil {
		_ = sqlInstance.Close()
		return nil, err
	}
	return db, nil
}

// New wraps an open connection. Migrations are not applied.
func New(sqlDB *sql.DB, clock clockwork.Clock) *LinkDB {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &LinkDB{sql: sqlDB, clock: clock}
}

func (db *LinkDB) MigrateUp() error {
	if db.sql == nil {
		return ErrNullSQL
	}
	return sqlMigrateUp(db.sql)
}

func (db *LinkDB) SaveLink(ctx context.Context, link database.ItemLink) error {
	if db.sql == nil {
		return ErrNullSQL
	}
	link.UpdatedAt = db.clock.Now()
	return sqlSaveLink(ctx, db.sql, &link)
}

// GetLink returns the link for itemID, or database.ErrNotFound.
func (db *LinkDB) GetLink(ctx context.Context, itemID string) (database.ItemLink, error) {
	if db.sql == nil {
		return database.ItemLink{}, ErrNullSQL
	}
	return sqlGetLink(ctx, db.sql, itemID)
}

func (db *LinkDB) SavePrice(ctx context.Context, price database.ItemPrice) error {
	if db.sql == nil {
		return ErrNullSQL
	}
	price.UpdatedAt = db.clock.Now()
	return sqlSavePrice(ctx, db.sql, &price)
}

// GetPrices returns the known prices of itemID ordered by provider.
func (db *LinkDB) GetPrices(ctx context.Context, itemID string) ([]database.ItemPrice, error) {
	if db.sql == nil {
		return nil, ErrNullSQL
	}
	return sqlGetPrices(ctx, db.sql, itemID)
}

func (db *LinkDB) Truncate(ctx context.Context) error {
	if db.sql == nil {
		return ErrNullSQL
	}
	return sqlTruncate(ctx, db.sql)
}

func (db *LinkDB) Close() error {
	if db.sql == nil {
		return nil
	}
	if err := db.sql.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
