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


// Package epicgames reads the games installed by the Epic Games Launcher
// from its JSON .item manifests.
package epicgames

import (
	"context"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/database"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/platform"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// LookupDBFile is the executable lookup database's file name, next to the
// Manifests directory unless configured otherwise.
const LookupDBFile = "Executables.sqlite"

type Launcher struct {
	locator platform.Locator
	fs      afero.Fs
	cfg     *config.Instance
	lookup  database.ExecutableLookup
}

var _ launchers.Launcher = (*Launcher)(nil)

func New(locator platform.Locator, fsys afero.Fs, cfg *config.Instance) *Launcher {
	return &Launcher{
		locator: locator,
		fs:      fsys,
		cfg:     cfg,
	}
}

// NewWithLookup returns a Launcher that resolves executables with lookup
// instead of opening the lookup database.
func NewWithLookup(
	locator platform.Locator,
	fsys afero.Fs,
	cfg *config.Instance,
	lookup database.ExecutableLookup,
) *Launcher {
	l := New(locator, fsys, cfg)
	l.lookup = lookup
	return l
}

func (*Launcher) Type() games.LauncherType {
	return games.EpicGames
}

// openLookup returns the executable lookup for a scan and a function to
// release it. A missing database isn't an error; manifests then fall back
// to their own LaunchExecutable.
func (l *Launcher) openLookup(ctx context.Context, manifestRoot string) (database.ExecutableLookup, func()) {
	if l.lookup != nil {
		return l.lookup, func() {}
	}

	dbPath := l.cfg.EpicLookupDB()
	if dbPath == "" {
		dbPath = filepath.Join(filepath.Dir(manifestRoot), LookupDBFile)
	}

	db, err := database.OpenExecutablesDB(ctx, dbPath)
	if err != nil {
		log.Debug().Err(err).Msg("Epic Games executable lookup unavailable")
		return nil, func() {}
	}

	return db, func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing Epic Games lookup database")
		}
	}
}

func (l *Launcher) scanSetup(
	ctx context.Context,
) (*launchers.ScanOptions, launchers.ParseFunc, func(), error) {
	exe, err := l.locator.LocateExecutable(games.EpicGames)
	if err != nil {
		return nil, nil, nil, err
	}
	root, err := l.locator.LocateManifestRoot(games.EpicGames)
	if err != nil {
		return nil, nil, nil, err
	}

	lookup, closeLookup := l.openLookup(ctx, root)

	opts := &launchers.ScanOptions{
		Fs:       l.fs,
		Match:    helpers.HasExt(ManifestExt),
		Roots:    []string{root},
		Launcher: games.EpicGames,
		MaxDepth: 0,
		Workers:  l.cfg.Workers(),
	}

	readOpts := &ReadOptions{
		Lookup:       lookup,
		Fs:           l.fs,
		Executable:   exe,
		MaxBytes:     l.cfg.MaxManifestBytes(),
		StrictLookup: l.cfg.EpicStrictLookup(),
	}
	parse := func(ctx context.Context, path string) (games.Game, error) {
		return ReadManifest(ctx, path, readOpts)
	}

	return opts, parse, closeLookup, nil
}

func (l *Launcher) Games(ctx context.Context) ([]games.Game, error) {
	opts, parse, closeLookup, err := l.scanSetup(ctx)
	if err != nil {
		return nil, err
	}
	defer closeLookup()
	return launchers.ScanManifests(ctx, opts, parse)
}

func (l *Launcher) Find(ctx context.Context, id string) (games.Game, error) {
	opts, parse, closeLookup, err := l.scanSetup(ctx)
	if err != nil {
		return games.Game{}, err
	}
	defer closeLookup()
	return launchers.FindManifest(ctx, opts, id, parse)
}
