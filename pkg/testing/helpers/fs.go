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
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FSHelper provides utilities for filesystem mocking in tests
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOSFS creates a filesystem helper using the real filesystem (for integration tests)
func NewOSFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewOsFs(),
	}
}

// WriteFile writes content to path, creating parent directories.
func (h *FSHelper) WriteFile(path, content string) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := afero.WriteFile(h.Fs, path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteFiles writes each file, keyed by its path relative to root.
func (h *FSHelper) WriteFiles(root string, files map[string]string) error {
	for name, content := range files {
		if err := h.WriteFile(filepath.Join(root, name), content); err != nil {
			return err
		}
	}
	return nil
}

// Mkdir creates a directory and its parents.
func (h *FSHelper) Mkdir(path string) error {
	if err := h.Fs.MkdirAll(path, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}
