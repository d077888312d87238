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


// Package database opens the SQLite stores that some launchers keep their
// install state in. Every store is opened read-only; the scanner never
// writes to launcher data.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	// sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const readOnlyConnParams = "?mode=ro&_busy_timeout=5000&_query_only=true"

// OpenReadOnly opens an existing SQLite database file without write
// access. A missing file returns an error wrapping fs.ErrNotExist instead
// of creating an empty database.
func OpenReadOnly(ctx context.Context, dbPath string) (*sql.DB, error) {
	info, err := os.Stat(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat database %s: %w", dbPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("database %s is a directory: %w", dbPath, fs.ErrNotExist)
	}

	dsn := "file:" + filepath.ToSlash(dbPath) + readOnlyConnParams
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing database")
		}
		return nil, fmt.Errorf("failed to connect to database %s: %w", dbPath, err)
	}

	log.Debug().Str("path", dbPath).Msg("opened read-only database")
	return sqlDB, nil
}

// ErrExecutableNotFound is returned when a lookup has no row for an
// install id.
var ErrExecutableNotFound = errors.New("no executable recorded for install")

// ExecutableLookup resolves a game's executable path from its install id.
type ExecutableLookup interface {
	LookupExecutable(ctx context.Context, installID string) (string, error)
}

// ExecutablesDB is an ExecutableLookup backed by a table mapping install
// ids to executable paths:
//
//	CREATE TABLE Executables (
//		InstallID TEXT PRIMARY KEY,
//		ExecutablePath TEXT NOT NULL
//	);
type ExecutablesDB struct {
	sql *sql.DB
}

var _ ExecutableLookup = (*ExecutablesDB)(nil)

// NewExecutablesDB wraps an already open database.
func NewExecutablesDB(sqlDB *sql.DB) *ExecutablesDB {
	return &ExecutablesDB{sql: sqlDB}
}

// OpenExecutablesDB opens the lookup database at dbPath read-only.
func OpenExecutablesDB(ctx context.Context, dbPath string) (*ExecutablesDB, error) {
	sqlDB, err := OpenReadOnly(ctx, dbPath)
	if err != nil {
		return nil, err
	}
	return NewExecutablesDB(sqlDB), nil
}

func (db *ExecutablesDB) LookupExecutable(ctx context.Context, installID string) (string, error) {
	return sqlLookupExecutable(ctx, db.sql, installID)
}

func (db *ExecutablesDB) Close() error {
	if db.sql == nil {
		return nil
	}
	if err := db.sql.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func sqlLookupExecutable(ctx context.Context, db *sql.DB, installID string) (string, error) {
	var exe string
	err := db.QueryRowContext(ctx,
		`SELECT ExecutablePath FROM Executables WHERE InstallID = ? LIMIT 1;`,
		installID,
	).Scan(&exe)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("install %s: %w", installID, ErrExecutableNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to scan executable row: %w", err)
	}
	if exe == "" {
		return "", fmt.Errorf("install %s: %w", installID, ErrExecutableNotFound)
	}
	return exe, nil
}
