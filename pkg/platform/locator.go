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


// Package platform finds where game launchers are installed on the host.
package platform

import (
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Locator resolves the launcher executable and the directory holding its
// install manifests. A launcher that isn't installed returns an error of
// kind games.KindLauncherNotFound.
type Locator interface {
	LocateExecutable(launcher games.LauncherType) (string, error)
	LocateManifestRoot(launcher games.LauncherType) (string, error)
}

// launcherDefaults returns the user's config overrides for a launcher,
// matched by id or display name.
func launcherDefaults(cfg *config.Instance, launcher games.LauncherType) (config.LaunchersDefault, bool) {
	if def, ok := cfg.LookupLauncherDefaults(launcher.String()); ok {
		return def, true
	}
	return cfg.LookupLauncherDefaults(launcher.DisplayName())
}

// overrideExecutable returns the user-configured executable, if it exists.
func overrideExecutable(fsys afero.Fs, cfg *config.Instance, launcher games.LauncherType) (string, bool) {
	def, ok := launcherDefaults(cfg, launcher)
	if !ok || def.Executable == "" {
		return "", false
	}
	if exists, _ := afero.Exists(fsys, def.Executable); !exists {
		log.Warn().Msgf("user-configured %s executable not found: %s", launcher.DisplayName(), def.Executable)
		return "", false
	}
	log.Debug().Msgf("using user-configured %s executable: %s", launcher.DisplayName(), def.Executable)
	return def.Executable, true
}

// overrideManifestRoot returns the user-configured manifest directory. For
// Steam an install_dir is also accepted, with manifests in its steamapps
// directory.
func overrideManifestRoot(fsys afero.Fs, cfg *config.Instance, launcher games.LauncherType) (string, bool) {
	def, ok := launcherDefaults(cfg, launcher)
	if !ok {
		return "", false
	}

	dir := def.ManifestDir
	if dir == "" && launcher == games.Steam && def.InstallDir != "" {
		dir = steamAppsDir(def.InstallDir)
	}
	if dir == "" {
		return "", false
	}

	if exists, _ := afero.DirExists(fsys, dir); !exists {
		log.Warn().Msgf("user-configured %s manifest directory not found: %s", launcher.DisplayName(), dir)
		return "", false
	}
	log.Debug().Msgf("using user-configured %s manifest directory: %s", launcher.DisplayName(), dir)
	return dir, true
}

func steamAppsDir(steamDir string) string {
	return filepath.Join(steamDir, "steamapps")
}

// firstDir returns the first candidate that is an existing directory.
func firstDir(fsys afero.Fs, candidates []string) (string, bool) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if ok, _ := afero.DirExists(fsys, c); ok {
			return c, true
		}
	}
	return "", false
}

// firstFile returns the first candidate that exists and is not a directory.
func firstFile(fsys afero.Fs, candidates []string) (string, bool) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		info, err := fsys.Stat(c)
		if err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}
