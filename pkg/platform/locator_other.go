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


//go:build !windows

package platform

import (
	"os"
	"runtime"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// New returns a locator probing the usual install locations.
func New(cfg *config.Instance) Locator {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("failed to get user home directory")
	}
	return NewFilesystemLocator(afero.NewOsFs(), cfg, home, runtime.GOOS)
}
