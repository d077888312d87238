// Zaparoo Game Scanner
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Game Scanner.
//
// Zaparoo Game Scanner is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Game Scanner is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Game Scanner.  If not, see <http://www.gnu.org/licenses/>.


package amazon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers"
	"github.com/rs/zerolog/log"
)

// installRow is one DbSet row of GameInstallInfo.sqlite.
type installRow struct {
	ID               string
	InstallDirectory string
	ProductTitle     string
	Installed        bool
}

const selectInstallRows = `SELECT Id, InstallDirectory, ProductTitle, Installed FROM DbSet`

func scanInstallRow(scanner interface{ Scan(dest ...any) error }) (installRow, error) {
	var (
		row       installRow
		id        sql.NullString
		dir       sql.NullString
		title     sql.NullString
		installed sql.NullInt64
	)
	if err := scanner.Scan(&id, &dir, &title, &installed); err != nil {
		return installRow{}, err
	}
	row.ID = id.String
	row.InstallDirectory = dir.String
	row.ProductTitle = title.String
	row.Installed = installed.Valid && installed.Int64 != 0
	return row, nil
}

func sqlInstallRows(ctx context.Context, db *sql.DB) ([]installRow, error) {
	rows, err := db.QueryContext(ctx, selectInstallRows+" ORDER BY Id;")
	if err != nil {
		return nil, fmt.Errorf("failed to query install info: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close rows")
		}
	}()

	// A row that can't be scanned is skipped like a bad manifest.
	var list []installRow
	for rows.Next() {
		row, err := scanInstallRow(rows)
		if err != nil {
			launchers.LogSkipped(games.Amazon, "",
				games.NewError(games.KindSQLite, games.Amazon, "", "failed to scan install info row", err))
			continue
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// sqlInstallRow reads a single row by id. A missing row returns
// sql.ErrNoRows.
func sqlInstallRow(ctx context.Context, db *sql.DB, id string) (installRow, error) {
	row, err := scanInstallRow(db.QueryRowContext(ctx, selectInstallRows+" WHERE Id = ? LIMIT 1;", id))
	if errors.Is(err, sql.ErrNoRows) {
		return installRow{}, err
	} else if err != nil {
		return installRow{}, fmt.Errorf("failed to query install info for %s: %w", id, err)
	}
	return row, nil
}
