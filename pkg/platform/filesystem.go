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


package platform

import (
	"errors"
	"os/exec"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/adrg/xdg"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// FlatpakSteamID is the Flatpak app ID for Steam.
const FlatpakSteamID = "com.valvesoftware.Steam"

var errNotDetected = errors.New("no known install location exists")

// candidates lists the places a launcher may be installed on one OS.
type candidates struct {
	// executables are checked in order, then binaries on PATH.
	executables []string
	binaries    []string
	// installDirs are checked in order, and the manifest root is relative
	// to the first one found.
	installDirs  []string
	manifestRoot func(installDir string) string
}

// FilesystemLocator finds launchers by probing their usual install
// locations on macOS and Linux.
type FilesystemLocator struct {
	fs       afero.Fs
	cfg      *config.Instance
	lookPath func(string) (string, error)
	table    map[games.LauncherType]candidates
}

var _ Locator = (*FilesystemLocator)(nil)

// NewFilesystemLocator returns a FilesystemLocator for the given OS, with
// user paths relative to home.
func NewFilesystemLocator(fsys afero.Fs, cfg *config.Instance, home, goos string) *FilesystemLocator {
	return &FilesystemLocator{
		fs:       fsys,
		cfg:      cfg,
		lookPath: exec.LookPath,
		table:    candidateTable(home, xdg.DataHome, goos),
	}
}

func candidateTable(home, dataHome, goos string) map[games.LauncherType]candidates {
	table := make(map[games.LauncherType]candidates)

	switch goos {
	case "darwin":
		appSupport := filepath.Join(home, "Library", "Application Support")
		table[games.Steam] = candidates{
			executables: []string{
				"/Applications/Steam.app/Contents/MacOS/steam_osx",
				filepath.Join(home, "Applications", "Steam.app", "Contents", "MacOS", "steam_osx"),
			},
			installDirs:  []string{filepath.Join(appSupport, "Steam")},
			manifestRoot: steamAppsDir,
		}
		table[games.Origin] = candidates{
			executables:  []string{"/Applications/Origin.app/Contents/MacOS/Origin"},
			installDirs:  []string{"/Library/Application Support/Origin"},
			manifestRoot: func(dir string) string {
				return filepath.Join(dir, "LocalContent")
			},
		}
		table[games.EpicGames] = candidates{
			executables: []string{
				"/Applications/Epic Games Launcher.app/Contents/MacOS/EpicGamesLauncher",
			},
			installDirs:  []string{filepath.Join(appSupport, "Epic", "EpicGamesLauncher")},
			manifestRoot: func(dir string) string {
				return filepath.Join(dir, "Data", "Manifests")
			},
		}
	case "linux":
		table[games.Steam] = candidates{
			// Flatpak and snap installs only expose wrapper commands, which
			// take the same steam:// arguments.
			executables: []string{
				"/usr/bin/steam",
				"/usr/games/steam",
				filepath.Join(dataHome, "flatpak", "exports", "bin", FlatpakSteamID),
				filepath.Join("/var/lib/flatpak/exports/bin", FlatpakSteamID),
				"/snap/bin/steam",
			},
			binaries: []string{"steam", FlatpakSteamID},
			installDirs: []string{
				filepath.Join(home, ".steam", "steam"),
				filepath.Join(dataHome, "Steam"),
				filepath.Join(home, ".local", "share", "Steam"),
				filepath.Join(home, ".var", "app", FlatpakSteamID, ".steam", "steam"),
				filepath.Join(home, "snap", "steam", "common", ".steam", "steam"),
			},
			manifestRoot: steamAppsDir,
		}
	}

	return table
}

func (l *FilesystemLocator) LocateExecutable(launcher games.LauncherType) (string, error) {
	if exe, ok := overrideExecutable(l.fs, l.cfg, launcher); ok {
		return exe, nil
	}

	c, ok := l.table[launcher]
	if !ok {
		return "", games.LauncherNotFound(launcher, "", errNotDetected)
	}

	if exe, found := firstFile(l.fs, c.executables); found {
		log.Debug().Msgf("found %s executable: %s", launcher.DisplayName(), exe)
		return exe, nil
	}

	for _, bin := range c.binaries {
		if exe, err := l.lookPath(bin); err == nil {
			log.Debug().Msgf("found %s executable on PATH: %s", launcher.DisplayName(), exe)
			return exe, nil
		}
	}

	return "", games.LauncherNotFound(launcher, "", errNotDetected)
}

func (l *FilesystemLocator) LocateManifestRoot(launcher games.LauncherType) (string, error) {
	if dir, ok := overrideManifestRoot(l.fs, l.cfg, launcher); ok {
		return dir, nil
	}

	c, ok := l.table[launcher]
	if !ok || c.manifestRoot == nil {
		return "", games.LauncherNotFound(launcher, "", errNotDetected)
	}

	roots := make([]string, 0, len(c.installDirs))
	for _, dir := range c.installDirs {
		roots = append(roots, c.manifestRoot(dir))
	}

	dir, found := firstDir(l.fs, roots)
	if !found {
		return "", games.LauncherNotFound(launcher, "", errNotDetected)
	}
	log.Debug().Msgf("found %s manifest directory: %s", launcher.DisplayName(), dir)
	return dir, nil
}
