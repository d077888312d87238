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


// Package scanner runs the launcher readers and merges their games into
// one list.
package scanner

import (
	"context"
	"errors"
	"time"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers/amazon"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers/epicgames"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers/origin"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers/steam"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/platform"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

var errDisabled = errors.New("launcher disabled in config")

// Constructor builds a launcher reader.
type Constructor func(platform.Locator, afero.Fs, *config.Instance) launchers.Launcher

var constructors = map[games.LauncherType]Constructor{
	games.Steam: func(loc platform.Locator, fsys afero.Fs, cfg *config.Instance) launchers.Launcher {
		return steam.New(loc, fsys, cfg)
	},
	games.Origin: func(loc platform.Locator, fsys afero.Fs, cfg *config.Instance) launchers.Launcher {
		return origin.New(loc, fsys, cfg)
	},
	games.EpicGames: func(loc platform.Locator, fsys afero.Fs, cfg *config.Instance) launchers.Launcher {
		return epicgames.New(loc, fsys, cfg)
	},
	games.Amazon: func(loc platform.Locator, fsys afero.Fs, cfg *config.Instance) launchers.Launcher {
		return amazon.New(loc, fsys, cfg)
	},
}

// LauncherReport is the outcome of scanning one launcher.
type LauncherReport struct {
	Err      error
	Type     games.LauncherType
	Count    int
	Duration time.Duration
}

// Report is the outcome of a full scan.
type Report struct {
	Started   time.Time
	Games     []games.Game
	Launchers []LauncherReport
	Duration  time.Duration
}

type Scanner struct {
	clock     clockwork.Clock
	launchers []launchers.Launcher
}

// New returns a Scanner for this host's launchers, limited to the ones
// enabled in cfg.
func New(cfg *config.Instance) *Scanner {
	return NewWithLocator(cfg, platform.New(cfg), afero.NewOsFs(), clockwork.NewRealClock())
}

func NewWithLocator(
	cfg *config.Instance,
	locator platform.Locator,
	fsys afero.Fs,
	clock clockwork.Clock,
) *Scanner {
	enabled := EnabledLaunchers(cfg)
	ls := make([]launchers.Launcher, 0, len(enabled))
	for _, t := range enabled {
		ls = append(ls, constructors[t](locator, fsys, cfg))
	}
	return NewWithLaunchers(clock, ls...)
}

// NewWithLaunchers returns a Scanner over the given readers, scanned and
// reported in the order given.
func NewWithLaunchers(clock clockwork.Clock, ls ...launchers.Launcher) *Scanner {
	return &Scanner{
		clock:     clock,
		launchers: ls,
	}
}

// EnabledLaunchers returns the launchers cfg allows, in scan order. Names
// are validated when the config is loaded, so unknown ones are dropped.
func EnabledLaunchers(cfg *config.Instance) []games.LauncherType {
	names := cfg.ScanLaunchers()
	if len(names) == 0 {
		return games.AllLaunchers()
	}

	allowed := make(map[games.LauncherType]bool, len(names))
	for _, name := range names {
		t, err := games.ParseLauncherType(name)
		if err != nil {
			log.Warn().Err(err).Msg("ignoring launcher in config")
			continue
		}
		allowed[t] = true
	}

	var enabled []games.LauncherType
	for _, t := range games.AllLaunchers() {
		if allowed[t] {
			enabled = append(enabled, t)
		}
	}
	return enabled
}

// Types returns the launchers this Scanner reads.
func (s *Scanner) Types() []games.LauncherType {
	types := make([]games.LauncherType, 0, len(s.launchers))
	for _, l := range s.launchers {
		types = append(types, l.Type())
	}
	return types
}

// Launcher returns the reader for t. A launcher that was disabled is
// reported as not found.
func (s *Scanner) Launcher(t games.LauncherType) (launchers.Launcher, error) {
	for _, l := range s.launchers {
		if l.Type() == t {
			return l, nil
		}
	}
	return nil, games.NewError(games.KindLauncherNotFound, t, "", "", errDisabled)
}

// Scan reads every launcher in parallel. A launcher that fails is logged
// and recorded in the report but never fails the scan; the only error
// returned is ctx's.
func (s *Scanner) Scan(ctx context.Context) (Report, error) {
	report := Report{
		Started:   s.clock.Now(),
		Launchers: make([]LauncherReport, len(s.launchers)),
	}
	results := make([][]games.Game, len(s.launchers))

	var g errgroup.Group
	for i, l := range s.launchers {
		g.Go(func() error {
			start := s.clock.Now()
			list, err := l.Games(ctx)
			report.Launchers[i] = LauncherReport{
				Type:     l.Type(),
				Count:    len(list),
				Err:      err,
				Duration: s.clock.Since(start),
			}
			if err != nil {
				log.WithLevel(games.LogLevel(err)).Err(err).
					Str("launcher", l.Type().String()).
					Msg("skipping launcher")
				return nil
			}
			results[i] = list
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	for _, list := range results {
		report.Games = append(report.Games, list...)
	}
	if report.Games == nil {
		report.Games = []games.Game{}
	}
	report.Duration = s.clock.Since(report.Started)

	log.Info().
		Int("games", len(report.Games)).
		Dur("elapsed", report.Duration).
		Msg("scan finished")
	return report, nil
}

// Games returns every game of every enabled launcher, grouped by launcher
// and sorted by id within each.
func (s *Scanner) Games(ctx context.Context) ([]games.Game, error) {
	report, err := s.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return report.Games, nil
}

// LauncherGames returns one launcher's games. Unlike Games, a launcher
// that isn't installed is reported to the caller.
func (s *Scanner) LauncherGames(ctx context.Context, t games.LauncherType) ([]games.Game, error) {
	l, err := s.Launcher(t)
	if err != nil {
		return nil, err
	}
	start := s.clock.Now()
	list, err := l.Games(ctx)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("launcher", t.String()).
		Int("games", len(list)).
		Dur("elapsed", s.clock.Since(start)).
		Msg("launcher scan finished")
	return list, nil
}

// Find looks up one game by launcher and id.
func (s *Scanner) Find(ctx context.Context, t games.LauncherType, id string) (games.Game, error) {
	l, err := s.Launcher(t)
	if err != nil {
		return games.Game{}, err
	}
	return l.Find(ctx, id)
}
