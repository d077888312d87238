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


package steam

import (
	"errors"
	"path/filepath"
	"slices"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers"
	"github.com/spf13/afero"
)

// ManifestExt is the extension of Steam app manifests.
const ManifestExt = ".acf"

var errMissingAppID = errors.New("manifest has no appid")

// ReadOptions controls how app manifests are turned into games.
type ReadOptions struct {
	// Executable is the Steam client used in the game's commands.
	Executable string
	// LibraryRoot is the directory install dirs are relative to.
	LibraryRoot string
	// IgnoredApps are app IDs that are never reported as games.
	IgnoredApps []string
	// MaxBytes limits the manifest size, zero for no limit.
	MaxBytes int64
}

// ReadManifest reads an appmanifest_<id>.acf file.
func ReadManifest(fsys afero.Fs, path string, opts *ReadOptions) (games.Game, error) {
	data, err := launchers.ReadManifest(fsys, games.Steam, path, opts.MaxBytes)
	if err != nil {
		return games.Game{}, err
	}
	return manifestGame(string(data), path, opts)
}

func manifestGame(content, path string, opts *ReadOptions) (games.Game, error) {
	values := parseACF(content)

	id := values["appid"]
	if id == "" {
		return games.Game{}, games.InvalidManifest(games.Steam, path, errMissingAppID)
	}
	if slices.Contains(opts.IgnoredApps, id) {
		return games.Game{}, games.IgnoredApp(games.Steam, path, "ignored app "+id)
	}

	name := values["name"]
	if name == "" {
		name = games.UnknownName
	}

	var installPath *string
	if dir := values["installdir"]; dir != "" {
		installPath = games.StringPtr(filepath.Join(opts.LibraryRoot, dir))
	}

	return games.Game{
		Type:     games.Steam,
		ID:       id,
		Name:     name,
		Path:     installPath,
		Commands: Commands(opts.Executable, id),
		State:    gameState(values, installPath != nil),
	}, nil
}

// Commands returns the steam:// commands for an app.
func Commands(executable, id string) games.Commands {
	return games.Commands{
		Install:   []string{executable, "steam://install/" + id},
		Launch:    []string{executable, "-silent", "steam://run/" + id},
		Uninstall: []string{executable, "steam://uninstall/" + id},
	}
}
