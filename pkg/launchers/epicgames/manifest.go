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


package epicgames

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/database"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers"
	"github.com/spf13/afero"
)

// ManifestExt is the extension of Epic Games install manifests.
const ManifestExt = ".item"

const launcherURI = "com.epicgames.launcher://apps/"

var errMissingAppName = errors.New("manifest has no AppName")

// item holds the fields of a .item manifest the scanner uses.
type item struct {
	AppName              string `json:"AppName"`
	MainGameAppName      string `json:"MainGameAppName"`
	DisplayName          string `json:"DisplayName"`
	InstallLocation      string `json:"InstallLocation"`
	InstallationGUID     string `json:"InstallationGuid"`
	LaunchExecutable     string `json:"LaunchExecutable"`
	BIsIncompleteInstall bool   `json:"bIsIncompleteInstall"`
}

// ReadOptions controls how .item manifests are turned into games.
type ReadOptions struct {
	// Lookup resolves game executables by installation GUID. It may be nil.
	Lookup     database.ExecutableLookup
	Fs         afero.Fs
	Executable string
	MaxBytes   int64
	// StrictLookup disables the LaunchExecutable fallback, so a manifest
	// the lookup can't resolve is invalid.
	StrictLookup bool
}

// ReadManifest reads an Epic Games .item file.
func ReadManifest(ctx context.Context, path string, opts *ReadOptions) (games.Game, error) {
	data, err := launchers.ReadManifest(opts.Fs, games.EpicGames, path, opts.MaxBytes)
	if err != nil {
		return games.Game{}, err
	}

	var it item
	if err := json.Unmarshal(data, &it); err != nil {
		return games.Game{}, games.InvalidManifest(games.EpicGames, path,
			games.NewError(games.KindJSON, games.EpicGames, "", "", err))
	}

	return manifestGame(ctx, &it, path, opts)
}

func manifestGame(ctx context.Context, it *item, path string, opts *ReadOptions) (games.Game, error) {
	if it.AppName == "" {
		return games.Game{}, games.InvalidManifest(games.EpicGames, path, errMissingAppName)
	}
	if it.MainGameAppName != "" && it.MainGameAppName != it.AppName {
		return games.Game{}, games.IgnoredApp(games.EpicGames, path, "add-on of "+it.MainGameAppName)
	}

	exe, err := resolveExecutable(ctx, it, opts.Lookup, opts.StrictLookup)
	if err != nil {
		return games.Game{}, games.InvalidManifest(games.EpicGames, path, err)
	}

	name := it.DisplayName
	if name == "" {
		name = games.UnknownName
	}

	installPath := games.StringPtr(it.InstallLocation)
	installed := false
	if installPath != nil {
		installed, _ = afero.Exists(opts.Fs, exe)
	}

	return games.Game{
		Type:     games.EpicGames,
		ID:       it.AppName,
		Name:     name,
		Path:     installPath,
		Commands: Commands(opts.Executable, it.AppName),
		State: games.State{
			Installed:   installed,
			NeedsUpdate: it.BIsIncompleteInstall,
		},
	}, nil
}

// resolveExecutable finds the game's executable, first in the lookup
// database and then, unless strict, from the manifest's own
// LaunchExecutable.
func resolveExecutable(
	ctx context.Context,
	it *item,
	lookup database.ExecutableLookup,
	strict bool,
) (string, error) {
	if lookup != nil && it.InstallationGUID != "" {
		exe, err := lookup.LookupExecutable(ctx, it.InstallationGUID)
		switch {
		case err == nil:
			return installRelative(it.InstallLocation, exe), nil
		case !errors.Is(err, database.ErrExecutableNotFound):
			return "", games.NewError(games.KindSQLite, games.EpicGames, "", "", err)
		}
	}

	if !strict && it.LaunchExecutable != "" {
		return installRelative(it.InstallLocation, it.LaunchExecutable), nil
	}

	return "", fmt.Errorf("install %s: %w", it.InstallationGUID, database.ErrExecutableNotFound)
}

// installRelative joins a manifest executable path, which uses forward
// slashes, under the install location unless it's already absolute.
func installRelative(installLocation, exe string) string {
	exe = filepath.FromSlash(exe)
	if filepath.IsAbs(exe) || filepath.VolumeName(exe) != "" || installLocation == "" {
		return exe
	}
	return filepath.Join(installLocation, exe)
}

// Commands returns the launcher URI commands for an app.
func Commands(executable, appName string) games.Commands {
	uri := launcherURI + strings.TrimSpace(appName)
	return games.Commands{
		Install:   []string{executable, uri + "?action=install"},
		Launch:    []string{executable, uri + "?action=launch&silent=true"},
		Uninstall: []string{executable, uri + "?action=uninstall"},
	}
}
