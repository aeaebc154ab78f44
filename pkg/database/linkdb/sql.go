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

package linkdb

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/codecollision/gamedex/pkg/database"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func sqlMigrateUp(db *sql.DB) error {
	if err := database.MigrateUp(db, migrationFiles, "migrations"); err != nil {
		return fmt.Errorf("failed to run link database migrations: %w", err)
	}
	return nil
}

func closeStmt(stmt *sql.Stmt) {
	if err := stmt.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close sql statement")
	}
}

func sqlSaveLink(ctx context.Context, db *sql.DB, link *database.ItemLink) error {
	stmt, err := db.PrepareContext(ctx, `
		insert into ItemLinks(
			ItemID, Name, StandardName, Platform, ASIN, GBombID, ReleaseDate,
			Metascore, MetascorePage, WikipediaPage, UpdatedAt
		) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		on conflict(ItemID) do update set
			Name = excluded.Name,
			StandardName = excluded.StandardName,
			Platform = excluded.Platform,
			ASIN = excluded.ASIN,
			GBombID = excluded.GBombID,
			ReleaseDate = excluded.ReleaseDate,
			Metascore = excluded.Metascore,
			MetascorePage = excluded.MetascorePage,
			WikipediaPage = coalesce(nullif(excluded.WikipediaPage, ''), ItemLinks.WikipediaPage),
			UpdatedAt = excluded.UpdatedAt;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare link upsert statement: %w", err)
	}
	defer closeStmt(stmt)

	_, err = stmt.ExecContext(ctx,
		link.ItemID,
		link.Name,
		link.StandardName,
		link.Platform,
		link.ASIN,
		link.GBombID,
		link.ReleaseDate,
		link.Metascore,
		link.MetascorePage,
		link.WikipediaPage,
		link.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to execute link upsert: %w", err)
	}
	return nil
}

func sqlGetLink(ctx context.Context, db *sql.DB, itemID string) (database.ItemLink, error) {
	var row database.ItemLink
	stmt, err := db.PrepareContext(ctx, `
		select
		ItemID, Name, StandardName, Platform, ASIN, GBombID, ReleaseDate,
		Metascore, MetascorePage, WikipediaPage, UpdatedAt
		from ItemLinks
		where ItemID = ?;
	`)
	if err != nil {
		return row, fmt.Errorf("failed to prepare link select statement: %w", err)
	}
	defer closeStmt(stmt)

	var updatedAt int64
	err = stmt.QueryRowContext(ctx, itemID).Scan(
		&row.ItemID,
		&row.Name,
		&row.StandardName,
		&row.Platform,
		&row.ASIN,
		&row.GBombID,
		&row.ReleaseDate,
		&row.Metascore,
		&row.MetascorePage,
		&row.WikipediaPage,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return row, fmt.Errorf("item link %s: %w", itemID, database.ErrNotFound)
	}
	if err != nil {
		return row, fmt.Errorf("failed to scan link row: %w", err)
	}
	row.UpdatedAt = time.Unix(updatedAt, 0)
	return row, nil
}

func sqlSavePrice(ctx context.Context, db *sql.DB, price *database.ItemPrice) error {
	stmt, err := db.PrepareContext(ctx, `
		insert into ItemPrices(ItemID, Provider, Price, Page, UpdatedAt)
		values (?, ?, ?, ?, ?)
		on conflict(ItemID, Provider) do update set
			Price = excluded.Price,
			Page = excluded.Page,
			UpdatedAt = excluded.UpdatedAt;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare price upsert statement: %w", err)
	}
	defer closeStmt(stmt)

	_, err = stmt.ExecContext(ctx,
		price.ItemID,
		price.Provider,
		price.Price,
		price.Page,
		price.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to execute price upsert: %w", err)
	}
	return nil
}

func sqlGetPrices(ctx context.Context, db *sql.DB, itemID string) ([]database.ItemPrice, error) {
	list := make([]database.ItemPrice, 0, 2)
	stmt, err := db.PrepareContext(ctx, `
		select ItemID, Provider, Price, Page, UpdatedAt
		from ItemPrices
		where ItemID = ?
		order by Provider;
	`)
	if err != nil {
		return list, fmt.Errorf("failed to prepare price select statement: %w", err)
	}
	defer closeStmt(stmt)

	rows, err := stmt.QueryContext(ctx, itemID)
	if err != nil {
		return list, fmt.Errorf("failed to query prices: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close rows")
		}
	}()

	for rows.Next() {
		var p database.ItemPrice
		var updatedAt int64
		if err := rows.Scan(&p.ItemID, &p.Provider, &p.Price, &p.Page, &updatedAt); err != nil {
			return list, fmt.Errorf("failed to scan price row: %w", err)
		}
		p.UpdatedAt = time.Unix(updatedAt, 0)
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return list, fmt.Errorf("failed to iterate price rows: %w", err)
	}
	return list, nil
}

//goland:noinspection SqlWithoutWhere
func sqlTruncate(ctx context.Context, db *sql.DB) error {
	sqlStmt := `
	delete from ItemPrices;
	delete from ItemLinks;
	vacuum;
	`
	if _, err := db.ExecContext(ctx, sqlStmt); err != nil {
		return fmt.Errorf("failed to truncate database: %w", err)
	}
	return nil
}
