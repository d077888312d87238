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


// Package launchers holds what every launcher integration shares: the
// Launcher interface and the manifest enumeration used to turn a directory
// of per-game manifests into games.
package launchers

import (
	"context"
	"errors"
	"io/fs"
	"slices"
	"strings"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// Launcher lists and finds the games managed by one installed launcher.
type Launcher interface {
	Type() games.LauncherType
	// Games returns every game the launcher knows about, sorted by ID.
	// Manifests that fail to parse are skipped.
	Games(ctx context.Context) ([]games.Game, error)
	// Find returns the game with the given ID, or an error of kind
	// games.KindGameNotFound.
	Find(ctx context.Context, id string) (games.Game, error)
}

// ParseFunc decodes the manifest at path into a game.
type ParseFunc func(ctx context.Context, path string) (games.Game, error)

// ScanOptions describes where a launcher keeps its manifests.
type ScanOptions struct {
	Fs    afero.Fs
	Match helpers.MatchFunc
	// Roots are the directories holding manifests. The first is the
	// launcher's own and must exist; later ones are extra libraries that
	// are skipped when missing.
	Roots    []string
	Launcher games.LauncherType
	MaxDepth int
	Workers  int
}

func (o *ScanOptions) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

// ListManifests returns the manifest files under every root.
func ListManifests(opts *ScanOptions) ([]string, error) {
	if len(opts.Roots) == 0 {
		return nil, games.NewError(
			games.KindLibraryNotFound, opts.Launcher, "", "no manifest directory", nil,
		)
	}

	var files []string
	for i, root := range opts.Roots {
		found, err := helpers.ListFiles(opts.Fs, root, opts.MaxDepth, opts.Match)
		if err != nil {
			if i == 0 {
				return nil, listError(opts.Launcher, root, err)
			}
			log.Debug().Err(err).Str("root", root).Msgf("skipping %s library", opts.Launcher.DisplayName())
			continue
		}
		files = append(files, found...)
	}

	log.Debug().
		Str("launcher", opts.Launcher.String()).
		Int("count", len(files)).
		Msg("found manifests")

	return files, nil
}

func listError(launcher games.LauncherType, root string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return games.NewError(games.KindLibraryNotFound, launcher, root, "", err)
	}
	return games.NewError(games.KindIO, launcher, root, "", err)
}

// LogSkipped logs a game that was left out of the results. Expected
// outcomes, such as an ignored app, are only logged at debug level.
func LogSkipped(launcher games.LauncherType, path string, err error) {
	log.WithLevel(games.LogLevel(err)).
		Err(err).
		Str("launcher", launcher.String()).
		Str("path", path).
		Msg("skipping manifest")
}

// SortGames orders games by ID, then by install path for duplicates.
func SortGames(list []games.Game) {
	slices.SortStableFunc(list, func(a, b games.Game) int {
		if c := strings.Compare(a.ID, b.ID); c != 0 {
			return c
		}
		return strings.Compare(a.InstallPath(), b.InstallPath())
	})
}

// ScanManifests parses every manifest in parallel. A manifest that fails
// to parse is logged and skipped; only a missing manifest directory or a
// cancelled context fails the scan.
func ScanManifests(ctx context.Context, opts *ScanOptions, parse ParseFunc) ([]games.Game, error) {
	files, err := ListManifests(opts)
	if err != nil {
		return nil, err
	}

	parsed := make([]*games.Game, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			game, err := parse(gctx, file)
			if err != nil {
				LogSkipped(opts.Launcher, file, err)
				return nil
			}

			parsed[i] = &game
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]games.Game, 0, len(files))
	for _, game := range parsed {
		if game != nil {
			results = append(results, *game)
		}
	}
	SortGames(results)

	return results, nil
}

// FindManifest parses manifests until one with a matching ID is found.
// Remaining work is cancelled once there's a match. If several manifests
// share the ID, the one listed first wins among those parsed.
func FindManifest(ctx context.Context, opts *ScanOptions, id string, parse ParseFunc) (games.Game, error) {
	files, err := ListManifests(opts)
	if err != nil {
		return games.Game{}, err
	}

	findCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       syncutil.Mutex
		match    games.Game
		matchIdx = -1
	)

	g, gctx := errgroup.WithContext(findCtx)
	g.SetLimit(opts.workers())

	for i, file := range files {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			game, err := parse(gctx, file)
			if err != nil {
				if gctx.Err() == nil {
					LogSkipped(opts.Launcher, file, err)
				}
				return nil
			}
			if game.ID != id {
				return nil
			}

			mu.Lock()
			if matchIdx == -1 || i < matchIdx {
				match = game
				matchIdx = i
			}
			mu.Unlock()

			cancel()
			return nil
		})
	}

	_ = g.Wait()

	if matchIdx != -1 {
		return match, nil
	}
	if err := ctx.Err(); err != nil {
		return games.Game{}, err
	}
	return games.Game{}, games.GameNotFound(opts.Launcher, id)
}

// ReadManifest reads a manifest file, refusing files over maxBytes.
func ReadManifest(fsys afero.Fs, launcher games.LauncherType, path string, maxBytes int64) ([]byte, error) {
	data, err := helpers.ReadFileLimited(fsys, path, maxBytes)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, games.NewError(games.KindManifestNotFound, launcher, path, "", err)
		case errors.Is(err, helpers.ErrFileTooLarge):
			return nil, games.InvalidManifest(launcher, path, err)
		default:
			return nil, games.NewError(games.KindIO, launcher, path, "", err)
		}
	}
	return data, nil
}
