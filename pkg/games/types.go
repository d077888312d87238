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

// Package games defines the normalized game record shared by every launcher
// and the error taxonomy used across the scanner.
package games

import (
	"fmt"
	"strings"
)

// LauncherType identifies a supported game launcher.
type LauncherType string

const (
	Steam     LauncherType = "steam"
	Origin    LauncherType = "origin"
	EpicGames LauncherType = "epicgames"
	Amazon    LauncherType = "amazon"
)

// UnknownName is used when a manifest gives no usable title.
const UnknownName = "Unknown"

// AllLaunchers returns every supported launcher in scan order.
func AllLaunchers() []LauncherType {
	return []LauncherType{Steam, Origin, EpicGames, Amazon}
}

// ParseLauncherType converts a user supplied launcher name into a
// LauncherType. Matching is case-insensitive and accepts a few aliases.
func ParseLauncherType(s string) (LauncherType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "steam":
		return Steam, nil
	case "origin", "ea":
		return Origin, nil
	case "epicgames", "epic", "epic games":
		return EpicGames, nil
	case "amazon", "amazongames", "amazon games":
		return Amazon, nil
	default:
		return "", fmt.Errorf("unknown launcher: %q", s)
	}
}

func (t LauncherType) String() string {
	return string(t)
}

// DisplayName returns the launcher's human-readable name.
func (t LauncherType) DisplayName() string {
	switch t {
	case Steam:
		return "Steam"
	case Origin:
		return "Origin"
	case EpicGames:
		return "Epic Games"
	case Amazon:
		return "Amazon Games"
	default:
		return string(t)
	}
}

// Commands holds the command lines used to act on a game. Each command is
// the executable followed by its arguments. A nil command is unsupported.
type Commands struct {
	Install   []string `json:"install,omitempty" yaml:"install,omitempty"`
	Launch    []string `json:"launch,omitempty" yaml:"launch,omitempty"`
	Uninstall []string `json:"uninstall,omitempty" yaml:"uninstall,omitempty"`
}

// State is the normalized install/update state of a game.
// Downloading always implies NeedsUpdate.
type State struct {
	TotalBytes    *uint64 `json:"totalBytes,omitempty" yaml:"total_bytes,omitempty"`
	ReceivedBytes *uint64 `json:"receivedBytes,omitempty" yaml:"received_bytes,omitempty"`
	Installed     bool    `json:"installed" yaml:"installed"`
	NeedsUpdate   bool    `json:"needsUpdate" yaml:"needs_update"`
	Downloading   bool    `json:"downloading" yaml:"downloading"`
}

// Game is the normalized record produced for every launcher.
// (Type, ID) is the natural key; IDs are only unique within a launcher.
type Game struct {
	Path     *string      `json:"path,omitempty" yaml:"path,omitempty"`
	Type     LauncherType `json:"type" yaml:"type"`
	ID       string       `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Commands Commands     `json:"commands" yaml:"commands"`
	State    State        `json:"state" yaml:"state"`
}

// InstallPath returns the install directory or an empty string.
func (g *Game) InstallPath() string {
	if g.Path == nil {
		return ""
	}
	return *g.Path
}

// Key returns a string that is unique across launchers.
func (g *Game) Key() string {
	return string(g.Type) + ":" + g.ID
}

// StringPtr returns a pointer to s, or nil if s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Uint64Ptr returns a pointer to v.
func Uint64Ptr(v uint64) *uint64 {
	return &v
}
