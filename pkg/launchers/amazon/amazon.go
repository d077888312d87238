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


// Package amazon reads the games installed by the Amazon Games app from
// its GameInstallInfo.sqlite database.
package amazon

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/database"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/platform"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// InstallInfoDB is the install database's file name inside the manifest
// root.
const InstallInfoDB = "GameInstallInfo.sqlite"

// OpenFunc opens the install database read-only.
type OpenFunc func(ctx context.Context, path string) (*sql.DB, error)

type Launcher struct {
	locator platform.Locator
	fs      afero.Fs
	cfg     *config.Instance
	open    OpenFunc
}

var _ launchers.Launcher = (*Launcher)(nil)

func New(locator platform.Locator, fsys afero.Fs, cfg *config.Instance) *Launcher {
	return NewWithOpener(locator, fsys, cfg, database.OpenReadOnly)
}

func NewWithOpener(locator platform.Locator, fsys afero.Fs, cfg *config.Instance, open OpenFunc) *Launcher {
	return &Launcher{
		locator: locator,
		fs:      fsys,
		cfg:     cfg,
		open:    open,
	}
}

func (*Launcher) Type() games.LauncherType {
	return games.Amazon
}

func (l *Launcher) openDB(ctx context.Context) (db *sql.DB, executable string, err error) {
	executable, err = l.locator.LocateExecutable(games.Amazon)
	if err != nil {
		return nil, "", err
	}
	root, err := l.locator.LocateManifestRoot(games.Amazon)
	if err != nil {
		return nil, "", err
	}

	dbPath := filepath.Join(root, InstallInfoDB)
	db, err = l.open(ctx, dbPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, "", games.NewError(games.KindLibraryNotFound, games.Amazon, dbPath, "", err)
	case err != nil:
		return nil, "", games.NewError(games.KindSQLite, games.Amazon, dbPath, "", err)
	}
	return db, executable, nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing Amazon Games database")
	}
}

func (l *Launcher) Games(ctx context.Context) ([]games.Game, error) {
	db, exe, err := l.openDB(ctx)
	if err != nil {
		return nil, err
	}
	defer closeDB(db)

	rows, err := sqlInstallRows(ctx, db)
	if err != nil {
		return nil, games.NewError(games.KindSQLite, games.Amazon, "", "", err)
	}

	maxBytes := l.cfg.MaxManifestBytes()
	list := make([]games.Game, 0, len(rows))
	for i := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		game, err := rowGame(l.fs, &rows[i], exe, maxBytes)
		if err != nil {
			launchers.LogSkipped(games.Amazon, rows[i].InstallDirectory, err)
			continue
		}
		list = append(list, game)
	}

	launchers.SortGames(list)
	return list, nil
}

func (l *Launcher) Find(ctx context.Context, id string) (games.Game, error) {
	db, exe, err := l.openDB(ctx)
	if err != nil {
		return games.Game{}, err
	}
	defer closeDB(db)

	row, err := sqlInstallRow(ctx, db, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return games.Game{}, games.GameNotFound(games.Amazon, id)
	case err != nil:
		return games.Game{}, games.NewError(games.KindSQLite, games.Amazon, "", "", err)
	}

	game, err := rowGame(l.fs, &row, exe, l.cfg.MaxManifestBytes())
	if err != nil {
		return games.Game{}, err
	}
	return game, nil
}
