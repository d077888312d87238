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


// Package steam reads the games installed by the Steam client from the
// app manifests in each of its libraries.
package steam

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/platform"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type Launcher struct {
	locator platform.Locator
	fs      afero.Fs
	cfg     *config.Instance
}

var _ launchers.Launcher = (*Launcher)(nil)

func New(locator platform.Locator, fsys afero.Fs, cfg *config.Instance) *Launcher {
	return &Launcher{
		locator: locator,
		fs:      fsys,
		cfg:     cfg,
	}
}

func (*Launcher) Type() games.LauncherType {
	return games.Steam
}

// scanSetup locates Steam and lists the libraries to scan.
func (l *Launcher) scanSetup() (*launchers.ScanOptions, launchers.ParseFunc, string, error) {
	exe, err := l.locator.LocateExecutable(games.Steam)
	if err != nil {
		return nil, nil, "", err
	}
	steamApps, err := l.locator.LocateManifestRoot(games.Steam)
	if err != nil {
		return nil, nil, "", err
	}

	roots := []string{steamApps}
	extra, err := LibraryDirs(l.fs, steamApps)
	if err != nil {
		log.Debug().Err(err).Msg("only scanning the main Steam library")
	}
	roots = append(roots, extra...)

	opts := &launchers.ScanOptions{
		Fs:       l.fs,
		Match:    helpers.HasExt(ManifestExt),
		Roots:    roots,
		Launcher: games.Steam,
		MaxDepth: 0,
		Workers:  l.cfg.Workers(),
	}

	ignored := l.cfg.SteamIgnoredApps()
	maxBytes := l.cfg.MaxManifestBytes()
	parse := func(_ context.Context, path string) (games.Game, error) {
		return ReadManifest(l.fs, path, &ReadOptions{
			Executable:  exe,
			LibraryRoot: filepath.Join(filepath.Dir(path), "common"),
			IgnoredApps: ignored,
			MaxBytes:    maxBytes,
		})
	}

	return opts, parse, exe, nil
}

// shortcuts reads the non-Steam games of every Steam user. Unreadable
// files are skipped and a game listed by several users is kept once.
func (l *Launcher) shortcuts(ctx context.Context, steamApps, exe string) ([]games.Game, error) {
	files, err := ShortcutFiles(l.fs, steamApps)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var list []games.Game
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := ReadShortcuts(l.fs, path, exe, l.cfg.MaxManifestBytes())
		if err != nil {
			launchers.LogSkipped(games.Steam, path, err)
			continue
		}
		for i := range found {
			if seen[found[i].ID] {
				continue
			}
			seen[found[i].ID] = true
			list = append(list, found[i])
		}
	}
	return list, nil
}

func (l *Launcher) Games(ctx context.Context) ([]games.Game, error) {
	opts, parse, exe, err := l.scanSetup()
	if err != nil {
		return nil, err
	}
	list, err := launchers.ScanManifests(ctx, opts, parse)
	if err != nil || !l.cfg.SteamIncludeShortcuts() {
		return list, err
	}

	extra, err := l.shortcuts(ctx, opts.Roots[0], exe)
	if err != nil {
		return nil, err
	}
	list = append(list, extra...)
	launchers.SortGames(list)
	return list, nil
}

func (l *Launcher) Find(ctx context.Context, id string) (games.Game, error) {
	opts, parse, exe, err := l.scanSetup()
	if err != nil {
		return games.Game{}, err
	}
	game, err := launchers.FindManifest(ctx, opts, id, parse)
	if !errors.Is(err, games.ErrGameNotFound) || !l.cfg.SteamIncludeShortcuts() {
		return game, err
	}

	extra, scErr := l.shortcuts(ctx, opts.Roots[0], exe)
	if scErr != nil {
		return games.Game{}, scErr
	}
	for i := range extra {
		if extra[i].ID == id {
			return extra[i], nil
		}
	}
	return games.Game{}, err
}
