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
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/helpers"
	"github.com/andygrunwald/vdf"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// LibraryFoldersFile lists every Steam library, including the main one.
const LibraryFoldersFile = "libraryfolders.vdf"

// normalizeVDFKeys recursively lowercases all keys in a map[string]any tree.
// VDF keys are case-insensitive.
func normalizeVDFKeys(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeVDFKeys(nested)
		}
		result[strings.ToLower(k)] = v
	}
	return result
}

// LibraryDirs returns the steamapps directories of the extra libraries
// listed in steamAppsDir's libraryfolders.vdf, in library order. The main
// steamapps directory itself is not included.
func LibraryDirs(fsys afero.Fs, steamAppsDir string) ([]string, error) {
	vdfPath := filepath.Join(steamAppsDir, LibraryFoldersFile)

	f, err := fsys.Open(vdfPath)
	if err != nil {
		return nil, games.NewError(games.KindIO, games.Steam, vdfPath, "", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing libraryfolders.vdf")
		}
	}()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		return nil, games.NewError(games.KindVDF, games.Steam, vdfPath, "", err)
	}
	m = normalizeVDFKeys(m)

	lfs, ok := m["libraryfolders"].(map[string]any)
	if !ok {
		return nil, games.NewError(
			games.KindVDF, games.Steam, vdfPath, "", fmt.Errorf("libraryfolders is not a map"),
		)
	}

	keys := make([]string, 0, len(lfs))
	for k := range lfs {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareLibraryKeys)

	// Windows clients don't keep the drive letter's case consistent.
	seen := map[string]bool{helpers.NormalizePathForComparison(steamAppsDir): true}
	var dirs []string
	for _, k := range keys {
		libraryPath, ok := libraryPath(lfs[k])
		if !ok {
			continue
		}

		dir := filepath.Clean(filepath.Join(libraryPath, "steamapps"))
		norm := helpers.NormalizePathForComparison(dir)
		if seen[norm] {
			continue
		}
		seen[norm] = true
		log.Debug().Str("library", k).Str("path", dir).Msg("found Steam library")
		dirs = append(dirs, dir)
	}

	return dirs, nil
}

// libraryPath reads a library entry. Current clients write a map with a
// "path" key, older ones wrote the path as the value itself. Other values,
// like "contentstatsid", aren't libraries.
func libraryPath(v any) (string, bool) {
	var p string
	switch entry := v.(type) {
	case map[string]any:
		p, _ = entry["path"].(string)
	case string:
		p = entry
		if !strings.ContainsAny(p, `/\`) {
			return "", false
		}
	}
	if p == "" {
		return "", false
	}
	return strings.ReplaceAll(p, `\\`, `\`), true
}

// compareLibraryKeys orders numeric library keys numerically.
func compareLibraryKeys(a, b string) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}
