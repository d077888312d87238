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
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/testing/fixtures"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testExe = "/steam/steam.exe"

func testReadOptions() *ReadOptions {
	return &ReadOptions{
		Executable:  testExe,
		LibraryRoot: filepath.Join("/library", "steamapps", "common"),
		IgnoredApps: []string{"228980"},
	}
}

func TestParseACF(t *testing.T) {
	t.Parallel()

	content := "\"AppState\"\r\n{\r\n" +
		"\t\"appid\"\t\t\"620\"\r\n" +
		"\t\"name\"\t\t\"Portal 2\"\r\n" +
		"\t\"installdir\"\t\t\"Portal 2\"\r\n" +
		"\t\"broken\"\r\n" +
		"\t\"a\"\t\"b\"\t\"c\"\r\n" +
		"\t\"UserConfig\"\r\n\t{\r\n" +
		"\t\t\"name\"\t\t\"nested\"\r\n" +
		"\t}\r\n}\r\n"

	values := parseACF(content)
	assert.Equal(t, "620", values["appid"])
	assert.Equal(t, "Portal 2", values["name"])
	assert.Equal(t, "Portal 2", values["installdir"])
	assert.NotContains(t, values, "broken")
	assert.NotContains(t, values, "a")
}

func TestRemoveQuotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: `"appid"`, want: "appid"},
		{in: `  "name"  `, want: "name"},
		{in: `""`, want: ""},
		{in: `"`, want: ""},
		{in: `plain`, want: "plain"},
		{in: `"say "hi""`, want: `say "hi"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, removeQuotes(tt.in), tt.in)
	}
}

func TestManifestGame(t *testing.T) {
	t.Parallel()

	t.Run("installed_game", func(t *testing.T) {
		t.Parallel()

		content := fixtures.SteamAppManifest("620", "Portal 2", "Portal 2", "4")
		game, err := manifestGame(content, "/library/steamapps/appmanifest_620.acf", testReadOptions())
		require.NoError(t, err)

		assert.Equal(t, games.Steam, game.Type)
		assert.Equal(t, "620", game.ID)
		assert.Equal(t, "Portal 2", game.Name)
		require.NotNil(t, game.Path)
		assert.Equal(t, filepath.Join("/library", "steamapps", "common", "Portal 2"), *game.Path)
		assert.Equal(t, []string{testExe, "-silent", "steam://run/620"}, game.Commands.Launch)
		assert.Equal(t, []string{testExe, "steam://install/620"}, game.Commands.Install)
		assert.Equal(t, []string{testExe, "steam://uninstall/620"}, game.Commands.Uninstall)
	})

	t.Run("missing_name_and_installdir", func(t *testing.T) {
		t.Parallel()

		content := fixtures.SteamAppManifest("70", "", "", "")
		game, err := manifestGame(content, "appmanifest_70.acf", testReadOptions())
		require.NoError(t, err)
		assert.Equal(t, games.UnknownName, game.Name)
		assert.Nil(t, game.Path)
		assert.False(t, game.State.Installed)
	})

	t.Run("missing_appid", func(t *testing.T) {
		t.Parallel()

		content := fixtures.SteamAppManifest("", "Nameless", "x", "4")
		_, err := manifestGame(content, "appmanifest_.acf", testReadOptions())
		require.ErrorIs(t, err, games.ErrInvalidManifest)
	})

	t.Run("not_a_manifest", func(t *testing.T) {
		t.Parallel()

		_, err := manifestGame("\x00\x01garbage", "bad.acf", testReadOptions())
		require.ErrorIs(t, err, games.ErrInvalidManifest)
	})

	t.Run("ignored_app", func(t *testing.T) {
		t.Parallel()

		content := fixtures.SteamAppManifest("228980", "Steamworks Common Redistributables", "Steamworks Shared", "4")
		_, err := manifestGame(content, "appmanifest_228980.acf", testReadOptions())
		require.ErrorIs(t, err, games.ErrIgnoredApp)
		assert.True(t, games.IsExpected(err))
	})

	t.Run("custom_ignore_list", func(t *testing.T) {
		t.Parallel()

		opts := testReadOptions()
		opts.IgnoredApps = []string{"1070560"}

		_, err := manifestGame(fixtures.SteamAppManifest("1070560", "Steam Linux Runtime", "x", "4"), "a.acf", opts)
		require.ErrorIs(t, err, games.ErrIgnoredApp)

		_, err = manifestGame(fixtures.SteamAppManifest("228980", "Redist", "x", "4"), "b.acf", opts)
		require.NoError(t, err)
	})
}

func TestReadManifest(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	path := "/library/steamapps/appmanifest_620.acf"
	require.NoError(t, afero.WriteFile(fsys, path,
		[]byte(fixtures.SteamAppManifest("620", "Portal 2", "Portal 2", "4")), 0o600))

	game, err := ReadManifest(fsys, path, testReadOptions())
	require.NoError(t, err)
	assert.Equal(t, "620", game.ID)

	opts := testReadOptions()
	opts.MaxBytes = 10
	_, err = ReadManifest(fsys, path, opts)
	require.ErrorIs(t, err, games.ErrInvalidManifest)

	_, err = ReadManifest(fsys, "/library/steamapps/appmanifest_1.acf", testReadOptions())
	require.ErrorIs(t, err, games.ErrManifestNotFound)
}
