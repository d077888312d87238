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

package config

import (
	"slices"
	"strings"
)

type Launchers struct {
	Default []LaunchersDefault `toml:"default,omitempty" validate:"dive"`
}

// LaunchersDefault overrides launcher detection for hosts where the
// registry or the usual install locations are wrong.
type LaunchersDefault struct {
	Launcher    string `toml:"launcher" validate:"required"`
	InstallDir  string `toml:"install_dir,omitempty"`
	ManifestDir string `toml:"manifest_dir,omitempty"`
	Executable  string `toml:"executable,omitempty"`
}

func (c *Instance) LookupLauncherDefaults(launcherID string) (LaunchersDefault, bool) {
	if c == nil {
		return LaunchersDefault{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, defaultLauncher := range c.vals.Launchers.Default {
		if strings.EqualFold(defaultLauncher.Launcher, launcherID) {
			return defaultLauncher, true
		}
	}
	return LaunchersDefault{}, false
}

func (c *Instance) SetLauncherDefaults(defaults []LaunchersDefault) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Launchers.Default = slices.Clone(defaults)
}
