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
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// FuelFile is the per-game launch description written into every install
// directory.
const FuelFile = "fuel.json"

const playURI = "amazon-games://play/"

var errNoCommand = errors.New("fuel.json has no Main.Command")

type fuel struct {
	Main struct {
		Command string   `json:"Command"`
		Args    []string `json:"Args"`
	} `json:"Main"`
}

// fuelExecutable returns the game executable named by the install
// directory's fuel.json.
func fuelExecutable(fsys afero.Fs, installDir string, maxBytes int64) (string, error) {
	path := filepath.Join(installDir, FuelFile)
	data, err := launchers.ReadManifest(fsys, games.Amazon, path, maxBytes)
	if err != nil {
		return "", err
	}

	var f fuel
	if err := json.Unmarshal(data, &f); err != nil {
		return "", games.InvalidManifest(games.Amazon, path,
			games.NewError(games.KindJSON, games.Amazon, "", "", err))
	}

	cmd := strings.TrimSpace(f.Main.Command)
	if cmd == "" {
		return "", games.InvalidManifest(games.Amazon, path, errNoCommand)
	}
	cmd = filepath.FromSlash(strings.ReplaceAll(cmd, `\`, "/"))
	if filepath.IsAbs(cmd) || filepath.VolumeName(cmd) != "" {
		return cmd, nil
	}
	return filepath.Join(installDir, cmd), nil
}

// rowGame converts an install row into a game. A row is installed only
// when the database says so and its fuel.json names an executable that
// exists.
func rowGame(fsys afero.Fs, row *installRow, executable string, maxBytes int64) (games.Game, error) {
	if strings.TrimSpace(row.ID) == "" {
		return games.Game{}, games.NewError(games.KindInvalidGame, games.Amazon, "", "install row has no id", nil)
	}

	name := row.ProductTitle
	if name == "" {
		name = games.UnknownName
	}

	game := games.Game{
		Type:     games.Amazon,
		ID:       row.ID,
		Name:     name,
		Commands: Commands(executable, row.ID),
	}

	if !row.Installed {
		return game, nil
	}

	game.Path = games.StringPtr(row.InstallDirectory)
	if game.Path == nil {
		return game, nil
	}

	exe, err := fuelExecutable(fsys, *game.Path, maxBytes)
	if err != nil {
		log.Debug().Err(err).Str("id", row.ID).Msg("no Amazon Games executable")
		return game, nil
	}
	game.State.Installed, _ = afero.Exists(fsys, exe)
	return game, nil
}

// Commands returns the launcher URI commands for a game. The launcher has
// no install or uninstall URI.
func Commands(executable, id string) games.Commands {
	return games.Commands{
		Launch: []string{executable, playURI + strings.TrimSpace(id)},
	}
}
