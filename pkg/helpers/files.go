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

package helpers

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/helpers/syncutil"
	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrFileTooLarge is returned by ReadFileLimited for files over the limit.
var ErrFileTooLarge = errors.New("file exceeds size limit")

// MatchFunc reports whether a file found by ListFiles should be returned.
type MatchFunc func(path string) bool

// HasExt returns a MatchFunc accepting files with the given extension,
// compared case-insensitively. ext includes the leading dot.
func HasExt(ext string) MatchFunc {
	return func(path string) bool {
		return strings.EqualFold(filepath.Ext(path), ext)
	}
}

// ListFiles returns the sorted paths of regular files under root accepted
// by match. maxDepth limits how many directory levels below root are
// visited: 0 lists only root itself. On the OS filesystem the walk runs in
// parallel with fastwalk.
func ListFiles(fsys afero.Fs, root string, maxDepth int, match MatchFunc) ([]string, error) {
	ok, err := afero.DirExists(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat directory %s: %w", root, err)
	}
	if !ok {
		return nil, fmt.Errorf("directory %s: %w", root, fs.ErrNotExist)
	}

	var files []string
	if _, isOS := fsys.(*afero.OsFs); isOS {
		files, err = listOSFiles(root, maxDepth, match)
	} else {
		files, err = listAferoFiles(fsys, root, maxDepth, match)
	}
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

// tooDeep reports whether the contents of directory dir sit deeper than
// maxDepth levels below root.
func tooDeep(root, dir string, maxDepth int) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return false
	}
	depth := strings.Count(rel, string(os.PathSeparator)) + 1
	return depth > maxDepth
}

func listOSFiles(root string, maxDepth int, match MatchFunc) ([]string, error) {
	var (
		mu    syncutil.Mutex
		files []string
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Debug().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}

		if d.IsDir() {
			if tooDeep(root, path, maxDepth) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !match(path) {
			return nil
		}

		mu.Lock()
		files = append(files, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}

func listAferoFiles(fsys afero.Fs, root string, maxDepth int, match MatchFunc) ([]string, error) {
	var files []string

	err := afero.Walk(fsys, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			log.Debug().Err(err).Str("path", path).Msg("skipping unreadable path")
			return nil
		}

		if info.IsDir() {
			if tooDeep(root, path, maxDepth) {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode().IsRegular() && match(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}

// ReadFileLimited reads a whole file, refusing anything larger than
// maxBytes. A maxBytes of zero or less disables the limit.
func ReadFileLimited(fsys afero.Fs, path string, maxBytes int64) ([]byte, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("path", path).Msg("error closing file")
		}
	}()

	if maxBytes <= 0 {
		data, readErr := io.ReadAll(f)
		if readErr != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, readErr)
		}
		return data, nil
	}

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%s is over %d bytes: %w", path, maxBytes, ErrFileTooLarge)
	}
	return data, nil
}
