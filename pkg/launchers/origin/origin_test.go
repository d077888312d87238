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


package origin

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/testing/fixtures"
	testhelpers "github.com/ZaparooProject/zaparoo-gamescanner/pkg/testing/helpers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const testExe = `C:\Program Files (x86)\Origin\Origin.exe`

func TestManifestGame(t *testing.T) {
	t.Parallel()

	t.Run("installed_game", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join("LocalContent", "Battlefield 1", "OFB-EAST1234.mfst")
		game, err := manifestGame(fixtures.OriginManifest("OFB-EAST:1234", "Battlefield 1", "kReadyToStart"), path, testExe)
		require.NoError(t, err)

		assert.Equal(t, games.Origin, game.Type)
		assert.Equal(t, "OFB-EAST:1234", game.ID)
		assert.Equal(t, "Battlefield 1", game.Name)
		assert.Equal(t, `C:\Games\Battlefield 1\`, game.InstallPath())
		assert.Equal(t, []string{testExe, "origin2://game/download?offerId=OFB-EAST:1234"}, game.Commands.Install)
		assert.Equal(t, []string{testExe, "origin2://game/launch?offerIds=OFB-EAST:1234"}, game.Commands.Launch)
		assert.Nil(t, game.Commands.Uninstall)
		assert.True(t, game.State.Installed)
		assert.False(t, game.State.NeedsUpdate)
		assert.False(t, game.State.Downloading)
	})

	t.Run("byte_counters", func(t *testing.T) {
		t.Parallel()

		game, err := manifestGame("id=1&totalbytes=100&savedbytes=42", "a/1.mfst", testExe)
		require.NoError(t, err)
		require.NotNil(t, game.State.TotalBytes)
		require.NotNil(t, game.State.ReceivedBytes)
		assert.Equal(t, uint64(100), *game.State.TotalBytes)
		assert.Equal(t, uint64(42), *game.State.ReceivedBytes)
	})

	t.Run("total_falls_back_to_download_bytes", func(t *testing.T) {
		t.Parallel()

		game, err := manifestGame("id=1&totaldownloadbytes=300", "a/1.mfst", testExe)
		require.NoError(t, err)
		require.NotNil(t, game.State.TotalBytes)
		assert.Equal(t, uint64(300), *game.State.TotalBytes)
		assert.Nil(t, game.State.ReceivedBytes)
	})

	t.Run("escaped_install_path", func(t *testing.T) {
		t.Parallel()

		// %25 decodes to a literal %, leaving escapes for the path decoder
		game, err := manifestGame("id=1&dipinstallpath=D%253a%252fGames%252fMy%2520Game", "a/1.mfst", testExe)
		require.NoError(t, err)
		sep := string(os.PathSeparator)
		assert.Equal(t, "D:"+sep+"Games"+sep+"My Game", game.InstallPath())
	})

	t.Run("not_installed", func(t *testing.T) {
		t.Parallel()

		game, err := manifestGame("id=1&currentstate=kEnqueued", "a/1.mfst", testExe)
		require.NoError(t, err)
		assert.Nil(t, game.Path)
		assert.False(t, game.State.Installed)
		assert.True(t, game.State.NeedsUpdate)
		assert.False(t, game.State.Downloading)
	})

	t.Run("repeated_key_last_wins", func(t *testing.T) {
		t.Parallel()

		game, err := manifestGame("id=1&id=2", "a/2.mfst", testExe)
		require.NoError(t, err)
		assert.Equal(t, "2", game.ID)
	})

	t.Run("name_defaults_to_unknown", func(t *testing.T) {
		t.Parallel()

		game, err := manifestGame("id=1", "1.mfst", testExe)
		require.NoError(t, err)
		assert.Equal(t, games.UnknownName, game.Name)
	})

	malformed := []struct {
		name    string
		content string
	}{
		{name: "bad_escape_in_unknown_key", content: "id=1&currentstate=kReadyToStart&ddextra=50%"},
		{name: "semicolon_in_unknown_key", content: "id=1&currentstate=kReadyToStart&note=a;b"},
		{name: "bad_escape_in_install_path", content: "id=1&currentstate=kReadyToStart&dipinstallpath=%zz"},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			game, err := manifestGame(tt.content, "a/1.mfst", testExe)
			require.NoError(t, err)
			assert.Equal(t, "1", game.ID)
			assert.False(t, game.State.NeedsUpdate)
			assert.Nil(t, game.Path)
		})
	}

	invalid := []struct {
		name    string
		content string
	}{
		{name: "bad_total_bytes", content: "id=1&totalbytes=lots"},
		{name: "negative_saved_bytes", content: "id=1&savedbytes=-5"},
		{name: "overflow_download_bytes", content: "id=1&totaldownloadbytes=18446744073709551616"},
		{name: "missing_id", content: "currentstate=kReadyToStart"},
		{name: "empty", content: ""},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := manifestGame(tt.content, "a/1.mfst", testExe)
			require.ErrorIs(t, err, games.ErrInvalidManifest)
		})
	}
}

// TestPropertyStateMapping verifies the currentstate vocabulary maps to
// NeedsUpdate and Downloading for any state token.
func TestPropertyStateMapping(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		state := rapid.OneOf(
			rapid.SampledFrom([]string{StateTransferring, StateEnqueued, StateReadyToStart, "kPaused", ""}),
			rapid.StringMatching(`k[A-Za-z]{0,15}`),
		).Draw(t, "state")

		game, err := manifestGame("id=1&currentstate="+state, "a/1.mfst", testExe)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		switch state {
		case StateTransferring:
			if !game.State.Downloading || !game.State.NeedsUpdate {
				t.Fatalf("%s: got %+v", state, game.State)
			}
		case StateEnqueued:
			if game.State.Downloading || !game.State.NeedsUpdate {
				t.Fatalf("%s: got %+v", state, game.State)
			}
		default:
			if game.State.Downloading || game.State.NeedsUpdate {
				t.Fatalf("%s: got %+v", state, game.State)
			}
		}
	})
}

// TestPropertyByteCountersRoundTrip verifies counters are reported exactly.
func TestPropertyByteCountersRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.Uint64().Draw(t, "total")
		saved := rapid.Uint64().Draw(t, "saved")

		content := "id=1&totalbytes=" + strconv.FormatUint(total, 10) +
			"&savedbytes=" + strconv.FormatUint(saved, 10)
		game, err := manifestGame(content, "a/1.mfst", testExe)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if game.State.TotalBytes == nil || *game.State.TotalBytes != total {
			t.Fatalf("total bytes: got %v, want %d", game.State.TotalBytes, total)
		}
		if game.State.ReceivedBytes == nil || *game.State.ReceivedBytes != saved {
			t.Fatalf("received bytes: got %v, want %d", game.State.ReceivedBytes, saved)
		}
	})
}

func TestLauncher(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.WriteFiles("/LocalContent", map[string]string{
		"Battlefield 1/OFB-EAST1234.mfst": fixtures.OriginManifest("OFB-EAST:1234", "Battlefield 1", "kReadyToStart"),
		"FIFA 21/Origin.OFR.50.0004000.mfst": fixtures.OriginManifest(
			"Origin.OFR.50.0004000", "FIFA 21", "kTransferring"),
		"Broken/broken.mfst":    "id=9&totalbytes=oops",
		"Battlefield 1/cfg.ini": "x",
	}))

	loc := mocks.NewInstalledLocator(games.Origin, testExe, "/LocalContent")
	l := New(loc, h.Fs, config.FromValues(config.BaseDefaults))
	assert.Equal(t, games.Origin, l.Type())

	list, err := l.Games(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "OFB-EAST:1234", list[0].ID)
	assert.Equal(t, "Origin.OFR.50.0004000", list[1].ID)
	assert.Equal(t, "FIFA 21", list[1].Name)
	assert.True(t, list[1].State.Downloading)

	game, err := l.Find(context.Background(), "Origin.OFR.50.0004000")
	require.NoError(t, err)
	assert.Equal(t, "FIFA 21", game.Name)

	_, err = l.Find(context.Background(), "9")
	require.ErrorIs(t, err, games.ErrGameNotFound)
}

func TestLauncherNilConfig(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.WriteFiles("/LocalContent", map[string]string{
		"Battlefield 1/OFB-EAST1234.mfst": fixtures.OriginManifest("OFB-EAST:1234", "Battlefield 1", "kReadyToStart"),
	}))

	loc := mocks.NewInstalledLocator(games.Origin, testExe, "/LocalContent")
	list, err := New(loc, h.Fs, nil).Games(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestLauncherNotInstalled(t *testing.T) {
	t.Parallel()

	l := New(mocks.NewMissingLocator(games.Origin), testhelpers.NewMemoryFS().Fs, config.FromValues(config.BaseDefaults))

	_, err := l.Games(context.Background())
	require.ErrorIs(t, err, games.ErrLauncherNotFound)
	assert.True(t, games.IsExpected(err))
}

func TestParseManifestFields(t *testing.T) {
	t.Parallel()

	m, err := parseManifest("?id=OFB-EAST%3a1&downloading=1&paused=0&totalbytes=10&totalbytes=20" +
		"&previousstate=kPaused&dipinstallpath=C%3a%5cGames%5cSims&unknownkey=x")
	require.NoError(t, err)

	assert.Equal(t, "OFB-EAST:1", m.ID)
	assert.True(t, m.Downloading)
	assert.False(t, m.Paused)
	require.NotNil(t, m.TotalBytes)
	assert.Equal(t, uint64(20), *m.TotalBytes)
	assert.Nil(t, m.SavedBytes)
	assert.Equal(t, "kPaused", m.PreviousState)
	assert.NotContains(t, m.InstallPath, "%")
}
