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
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "steam", want: "Steam"},
		{in: "program files", want: "Program Files"},
		{in: "SteamApps", want: "SteamApps"},
		{in: "c:", want: "C:"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CamelCase(tt.in), tt.in)
	}
}

func TestFixExecutablePath(t *testing.T) {
	t.Parallel()

	sep := string(os.PathSeparator)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "epic_launcher_x86",
			raw:  "c:/Program Files (x86)/Epic Games/Launcher.exe",
			want: filepath.Join("C:"+sep, "Program Files (x86)", "Epic Games", "Launcher.exe"),
		},
		{
			name: "steam_lowercase_registry_value",
			raw:  "c:/program files (x86)/steam/steam.exe",
			want: filepath.Join("C:"+sep, "Program Files (x86)", "Steam", "steam.exe"),
		},
		{
			name: "exe_name_case_kept",
			raw:  "d:/games/launcher/launcherapp.EXE",
			want: filepath.Join("D:"+sep, "Games", "Launcher", "launcherapp.EXE"),
		},
		{
			name: "backslash_separators",
			raw:  `c:\program files\origin\Origin.exe`,
			want: filepath.Join("C:"+sep, "Program Files", "Origin", "Origin.exe"),
		},
		{
			name: "empty",
			raw:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FixExecutablePath(tt.raw))
		})
	}
}

func TestFixExecutablePathKeepsX86(t *testing.T) {
	t.Parallel()

	got := FixExecutablePath("c:/program files (x86)/steam/steam.exe")
	assert.Contains(t, got, "(x86)")
	assert.NotContains(t, got, "(X86)")
}

func TestDecodeEscapedPath(t *testing.T) {
	t.Parallel()

	sep := string(os.PathSeparator)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "lower_backslash", raw: "C%3a%5cGames%5cMyGame", want: "C:" + sep + "Games" + sep + "MyGame"},
		{name: "upper_escapes", raw: "C%3A%5CGames%5CMy%20Game", want: "C:" + sep + "Games" + sep + "My Game"},
		{name: "forward_slash", raw: "D%3a%2fOrigin%20Games%2FSims", want: "D:" + sep + "Origin Games" + sep + "Sims"},
		{name: "already_plain", raw: `C:\Games\Sims`, want: `C:\Games\Sims`},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, DecodeEscapedPath(tt.raw))
		})
	}
}

func TestDecodeEscapedPathWindows(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("backslash separator only on Windows")
	}
	t.Parallel()
	assert.Equal(t, `C:\Games\MyGame`, DecodeEscapedPath("C%3a%5cGames%5cMyGame"))
}

func TestNormalizePathForComparison(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "/games/steam", NormalizePathForComparison("/Games/Steam/"))
	assert.Equal(t, "/games/steam", NormalizePathForComparison("/games/./steam"))
}
