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


package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/testing/fixtures"
	testhelpers "github.com/ZaparooProject/zaparoo-gamescanner/pkg/testing/helpers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/testing/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// stubLauncher returns fixed results, optionally advancing a fake clock to
// simulate a slow scan.
type stubLauncher struct {
	err     error
	clock   *clockwork.FakeClock
	kind    games.LauncherType
	list    []games.Game
	advance time.Duration
}

var _ launchers.Launcher = (*stubLauncher)(nil)

func (s *stubLauncher) Type() games.LauncherType {
	return s.kind
}

func (s *stubLauncher) Games(context.Context) ([]games.Game, error) {
	if s.clock != nil {
		s.clock.Advance(s.advance)
	}
	return s.list, s.err
}

func (s *stubLauncher) Find(_ context.Context, id string) (games.Game, error) {
	for _, g := range s.list {
		if g.ID == id {
			return g, nil
		}
	}
	return games.Game{}, games.GameNotFound(s.kind, id)
}

func stubGames(kind games.LauncherType, ids ...string) []games.Game {
	list := make([]games.Game, 0, len(ids))
	for _, id := range ids {
		list = append(list, games.Game{Type: kind, ID: id, Name: id})
	}
	return list
}

func TestScanDropsFailedLaunchers(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	s := NewWithLaunchers(clock,
		&stubLauncher{kind: games.Steam, list: stubGames(games.Steam, "10", "20")},
		&stubLauncher{kind: games.Origin, err: games.LauncherNotFound(games.Origin, "", nil)},
		&stubLauncher{kind: games.EpicGames, err: errors.New("boom")},
		&stubLauncher{
			kind:    games.Amazon,
			list:    stubGames(games.Amazon, "amzn1.a"),
			clock:   clock,
			advance: 2 * time.Second,
		},
	)

	report, err := s.Scan(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Games, 3)
	assert.Equal(t, games.Steam, report.Games[0].Type)
	assert.Equal(t, "20", report.Games[1].ID)
	assert.Equal(t, games.Amazon, report.Games[2].Type)

	require.Len(t, report.Launchers, 4)
	assert.Equal(t, 2, report.Launchers[0].Count)
	require.ErrorIs(t, report.Launchers[1].Err, games.ErrLauncherNotFound)
	require.Error(t, report.Launchers[2].Err)
	assert.Equal(t, 2*time.Second, report.Launchers[3].Duration)
	assert.Equal(t, 2*time.Second, report.Duration)
}

func TestGamesNeverNil(t *testing.T) {
	t.Parallel()

	s := NewWithLaunchers(clockwork.NewFakeClock(),
		&stubLauncher{kind: games.Steam, err: games.LauncherNotFound(games.Steam, "", nil)},
	)

	list, err := s.Games(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestScanCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewWithLaunchers(clockwork.NewFakeClock(),
		&stubLauncher{kind: games.Steam, err: context.Canceled},
	)
	_, err := s.Games(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLauncherGamesAndFind(t *testing.T) {
	t.Parallel()

	s := NewWithLaunchers(clockwork.NewFakeClock(),
		&stubLauncher{kind: games.Steam, list: stubGames(games.Steam, "10")},
		&stubLauncher{kind: games.Origin, err: games.LauncherNotFound(games.Origin, "", nil)},
	)

	list, err := s.LauncherGames(context.Background(), games.Steam)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = s.LauncherGames(context.Background(), games.Origin)
	require.ErrorIs(t, err, games.ErrLauncherNotFound)

	// not configured at all
	_, err = s.LauncherGames(context.Background(), games.Amazon)
	require.ErrorIs(t, err, games.ErrLauncherNotFound)

	game, err := s.Find(context.Background(), games.Steam, "10")
	require.NoError(t, err)
	assert.Equal(t, "10", game.Name)

	_, err = s.Find(context.Background(), games.Steam, "99")
	require.ErrorIs(t, err, games.ErrGameNotFound)

	_, err = s.Find(context.Background(), games.EpicGames, "x")
	require.ErrorIs(t, err, games.ErrLauncherNotFound)
}

func TestEnabledLaunchers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, games.AllLaunchers(), EnabledLaunchers(config.FromValues(config.BaseDefaults)))

	vals := config.BaseDefaults
	vals.Scan.Launchers = []string{"amazon", "steam"}
	assert.Equal(t,
		[]games.LauncherType{games.Steam, games.Amazon},
		EnabledLaunchers(config.FromValues(vals)),
		"scan order is fixed regardless of config order")
}

func TestScanHost(t *testing.T) {
	t.Parallel()

	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.WriteFiles("/steam/steamapps", map[string]string{
		"appmanifest_10.acf":     fixtures.SteamAppManifest("10", "Counter-Strike", "Half-Life", "4"),
		"appmanifest_220.acf":    fixtures.SteamAppManifest("220", "Half-Life 2", "Half-Life 2", "4"),
		"appmanifest_999.acf":    "\"AppState\"\n{\n\t\"name\"\t\"no id\"\n}\n",
		"appmanifest_228980.acf": fixtures.SteamAppManifest("228980", "Steamworks Common Redistributables", "Steamworks Shared", "4"),
	}))
	require.NoError(t, h.WriteFile("/origin/LocalContent/Game/OFB-EAST_1.mfst",
		fixtures.OriginManifest("OFB-EAST:1", "Some Game", "kReadyToStart")))

	loc := &mocks.MockLocator{}
	loc.On("LocateExecutable", games.Steam).Return("/steam/steam.exe", nil)
	loc.On("LocateManifestRoot", games.Steam).Return("/steam/steamapps", nil)
	loc.On("LocateExecutable", games.Origin).Return("/origin/Origin.exe", nil)
	loc.On("LocateManifestRoot", games.Origin).Return("/origin/LocalContent", nil)
	missing := games.LauncherNotFound(games.EpicGames, "", nil)
	loc.On("LocateExecutable", games.EpicGames).Return("", missing)
	loc.On("LocateManifestRoot", games.EpicGames).Return("", missing)
	missing = games.LauncherNotFound(games.Amazon, "", nil)
	loc.On("LocateExecutable", games.Amazon).Return("", missing)
	loc.On("LocateManifestRoot", games.Amazon).Return("", missing)

	s := NewWithLocator(config.FromValues(config.BaseDefaults), loc, h.Fs, clockwork.NewFakeClock())
	assert.Equal(t, games.AllLaunchers(), s.Types())

	list, err := s.Games(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "10", list[0].ID)
	assert.Equal(t, "220", list[1].ID)
	assert.Equal(t, games.Origin, list[2].Type)
	assert.Equal(t, "OFB-EAST:1", list[2].ID)

	_, err = s.Find(context.Background(), games.EpicGames, "Fortnite")
	require.ErrorIs(t, err, games.ErrLauncherNotFound)

	_, err = s.Find(context.Background(), games.Steam, "228980")
	require.ErrorIs(t, err, games.ErrGameNotFound)
}
