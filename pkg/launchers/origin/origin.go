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


// Package origin reads the games installed by the Origin client from its
// URL-query encoded .mfst manifests.
package origin

import (
	"context"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/platform"
	"github.com/spf13/afero"
)

// manifestDepth covers LocalContent/<game>/<id>.mfst and games that keep
// their manifest one folder further down.
const manifestDepth = 2

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
	return games.Origin
}

func (l *Launcher) scanSetup() (*launchers.ScanOptions, launchers.ParseFunc, error) {
	exe, err := l.locator.LocateExecutable(games.Origin)
	if err != nil {
		return nil, nil, err
	}
	root, err := l.locator.LocateManifestRoot(games.Origin)
	if err != nil {
		return nil, nil, err
	}

	opts := &launchers.ScanOptions{
		Fs:       l.fs,
		Match:    helpers.HasExt(ManifestExt),
		Roots:    []string{root},
		Launcher: games.Origin,
		MaxDepth: manifestDepth,
		Workers:  l.cfg.Workers(),
	}

	maxBytes := l.cfg.MaxManifestBytes()
	parse := func(_ context.Context, path string) (games.Game, error) {
		return ReadManifest(l.fs, path, exe, maxBytes)
	}

	return opts, parse, nil
}

func (l *Launcher) Games(ctx context.Context) ([]games.Game, error) {
	opts, parse, err := l.scanSetup()
	if err != nil {
		return nil, err
	}
	return launchers.ScanManifests(ctx, opts, parse)
}

func (l *Launcher) Find(ctx context.Context, id string) (games.Game, error) {
	opts, parse, err := l.scanSetup()
	if err != nil {
		return games.Game{}, err
	}
	return launchers.FindManifest(ctx, opts, id, parse)
}
