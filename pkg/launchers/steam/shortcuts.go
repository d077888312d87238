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
	"bytes"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-gamescanner/internal/vdfbinary"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ShortcutsFile lists a Steam user's non-Steam games.
const ShortcutsFile = "shortcuts.vdf"

// ShortcutGameID returns the id Steam launches a non-Steam game by.
func ShortcutGameID(appID uint32) uint64 {
	return uint64(appID)<<32 | 0x02000000
}

// ShortcutFiles returns the shortcuts.vdf of every user of the Steam
// install that owns steamAppsDir.
func ShortcutFiles(fsys afero.Fs, steamAppsDir string) ([]string, error) {
	pattern := filepath.Join(filepath.Dir(steamAppsDir), "userdata", "*", "config", ShortcutsFile)
	files, err := afero.Glob(fsys, pattern)
	if err != nil {
		return nil, games.NewError(games.KindIO, games.Steam, pattern, "", err)
	}
	return files, nil
}

// ReadShortcuts reads a shortcuts.vdf file. Hidden shortcuts are left out.
func ReadShortcuts(fsys afero.Fs, path, executable string, maxBytes int64) ([]games.Game, error) {
	data, err := launchers.ReadManifest(fsys, games.Steam, path, maxBytes)
	if err != nil {
		return nil, err
	}

	shortcuts, err := vdfbinary.DecodeShortcuts(bytes.NewReader(data))
	if err != nil {
		return nil, games.InvalidManifest(games.Steam, path,
			games.NewError(games.KindVDF, games.Steam, "", "", err))
	}

	list := make([]games.Game, 0, len(shortcuts))
	for i := range shortcuts {
		s := &shortcuts[i]
		if s.Hidden {
			log.Debug().Str("name", s.AppName).Msg("skipping hidden Steam shortcut")
			continue
		}
		list = append(list, shortcutGame(fsys, s, executable))
	}
	return list, nil
}

func shortcutGame(fsys afero.Fs, s *vdfbinary.Shortcut, executable string) games.Game {
	id := strconv.FormatUint(ShortcutGameID(s.AppID), 10)
	target := unquote(s.Exe)
	installed, _ := afero.Exists(fsys, target)

	return games.Game{
		Type: games.Steam,
		ID:   id,
		Name: s.AppName,
		Path: games.StringPtr(unquote(s.StartDir)),
		Commands: games.Commands{
			Launch: []string{executable, "-silent", "steam://rungameid/" + id},
		},
		State: games.State{Installed: installed},
	}
}

// unquote strips the double quotes Steam wraps shortcut paths in.
func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
