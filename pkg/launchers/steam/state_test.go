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
	"errors"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/testing/fixtures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestGameState(t *testing.T) {
	t.Parallel()

	u := games.Uint64Ptr

	tests := []struct {
		values map[string]string
		want   games.State
		name   string
	}{
		{
			name:   "fully_installed",
			values: map[string]string{"stateflags": "4"},
			want:   games.State{Installed: true},
		},
		{
			name:   "update_required",
			values: map[string]string{"stateflags": "6"},
			want:   games.State{Installed: true, NeedsUpdate: true},
		},
		{
			name: "downloading_update",
			values: map[string]string{
				"stateflags":      "774",
				"bytestodownload": "100",
				"bytesdownloaded": "42",
			},
			want: games.State{Installed: true, NeedsUpdate: true},
		},
		{
			name: "update_running",
			values: map[string]string{
				"stateflags":      "1286",
				"bytestodownload": "100",
				"bytesdownloaded": "42",
			},
			want: games.State{
				Installed:     true,
				NeedsUpdate:   true,
				Downloading:   true,
				TotalBytes:    u(100),
				ReceivedBytes: u(42),
			},
		},
		{
			name: "first_download",
			values: map[string]string{
				"stateflags":      "1049858",
				"bytestodownload": "5000",
				"bytesdownloaded": "bad",
			},
			want: games.State{
				NeedsUpdate: true,
				Downloading: true,
				TotalBytes:  u(5000),
			},
		},
		{
			name:   "bytes_ignored_when_idle",
			values: map[string]string{"stateflags": "4", "bytestodownload": "100"},
			want:   games.State{Installed: true},
		},
		{
			name:   "no_flags",
			values: map[string]string{},
			want:   games.State{Installed: true},
		},
		{
			name:   "malformed_flags",
			values: map[string]string{"stateflags": "lots"},
			want:   games.State{Installed: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gameState(tt.values, true))
		})
	}
}

// TestPropertyDownloadingImpliesNeedsUpdate verifies the state invariant
// holds for every flag combination.
func TestPropertyDownloadingImpliesNeedsUpdate(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		flags := rapid.Uint64Range(0, 1<<24-1).Draw(t, "flags")
		values := map[string]string{
			"stateflags":      strconv.FormatUint(flags, 10),
			"bytestodownload": rapid.StringMatching(`[0-9]{1,6}`).Draw(t, "total"),
			"bytesdownloaded": rapid.StringMatching(`[0-9]{1,6}`).Draw(t, "received"),
		}

		state := gameState(values, rapid.Bool().Draw(t, "hasPath"))
		if state.Downloading && !state.NeedsUpdate {
			t.Fatalf("Downloading without NeedsUpdate for flags %d", flags)
		}
		if state.ReceivedBytes != nil && state.TotalBytes == nil {
			t.Fatalf("ReceivedBytes without TotalBytes for flags %d", flags)
		}
		if !state.Downloading && state.TotalBytes != nil {
			t.Fatalf("TotalBytes set while not downloading for flags %d", flags)
		}
	})
}

// TestPropertyManifestFieldsReflected verifies id, name and path come
// straight from appid, name and installdir.
func TestPropertyManifestFieldsReflected(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		id := rapid.StringMatching(`[1-9][0-9]{0,7}`).Filter(func(s string) bool {
			return s != "228980"
		}).Draw(t, "id")
		name := rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9 :'-]{0,30}[A-Za-z0-9]`).Draw(t, "name")
		dir := rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9 _-]{0,20}`).Draw(t, "dir")

		opts := testReadOptions()
		game, err := manifestGame(fixtures.SteamAppManifest(id, name, dir, "4"), "x.acf", opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if game.ID != id || game.Name != name {
			t.Fatalf("got id=%q name=%q, want id=%q name=%q", game.ID, game.Name, id, name)
		}
		if want := filepath.Join(opts.LibraryRoot, dir); game.InstallPath() != want {
			t.Fatalf("got path %q, want %q", game.InstallPath(), want)
		}
	})
}

// TestPropertyIgnoredAppAlwaysRejected verifies an ignored id is never a
// game whatever else the manifest holds.
func TestPropertyIgnoredAppAlwaysRejected(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z0-9 ]{0,20}`).Draw(t, "name")
		dir := rapid.StringMatching(`[A-Za-z0-9 ]{0,20}`).Draw(t, "dir")
		flags := rapid.StringMatching(`[0-9]{0,7}`).Draw(t, "flags")

		_, err := manifestGame(fixtures.SteamAppManifest("228980", name, dir, flags), "x.acf", testReadOptions())
		if !errors.Is(err, games.ErrIgnoredApp) {
			t.Fatalf("ignored app was not rejected: %v", err)
		}
	})
}

func TestStateFlagsHas(t *testing.T) {
	t.Parallel()

	f := StateFullyInstalled | StateUpdateRequired
	require.True(t, f.Has(StateFullyInstalled))
	require.True(t, f.Has(StateUpdateRequired|StateDownloading))
	require.False(t, f.Has(StateDownloading))
}
