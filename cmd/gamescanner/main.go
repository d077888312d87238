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


package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/scanner"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	configDir string
	format    string
	launcher  string
	debug     bool
}

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "gamescanner",
		Short:         "List the games installed by Steam, Origin, Epic Games and Amazon Games",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", config.DefaultConfigDir(), "config directory")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", formatTable, "output format: table, json, yaml or csv")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	list := &cobra.Command{
		Use:   "list",
		Short: "List installed games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}
	list.Flags().StringVarP(&opts.launcher, "launcher", "l", "", "only scan this launcher")

	find := &cobra.Command{
		Use:   "find <launcher> <id>",
		Short: "Show one game by launcher and id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, opts, args[0], args[1])
		},
	}

	launchersCmd := &cobra.Command{
		Use:   "launchers",
		Short: "Show which launchers were found and how many games each has",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLaunchers(cmd, opts)
		},
	}

	root.AddCommand(list, find, launchersCmd)
	return root
}

// setup loads the config and starts logging. Console logs go to stderr so
// stdout only carries results.
func setup(opts *options) (*scanner.Scanner, error) {
	cfg, err := config.NewConfig(opts.configDir, config.BaseDefaults)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	debug := opts.debug || cfg.DebugLogging()
	if err := helpers.InitLogging(
		config.DefaultLogDir(),
		debug,
		zerolog.ConsoleWriter{Out: os.Stderr},
	); err != nil {
		return nil, fmt.Errorf("failed to start logging: %w", err)
	}
	log.Debug().Str("config", cfg.Path()).Msg("config loaded")

	return scanner.New(cfg), nil
}

func runList(cmd *cobra.Command, opts *options) error {
	s, err := setup(opts)
	if err != nil {
		return err
	}

	var list []games.Game
	if opts.launcher == "" {
		list, err = s.Games(cmd.Context())
	} else {
		var t games.LauncherType
		t, err = games.ParseLauncherType(opts.launcher)
		if err != nil {
			return err
		}
		list, err = s.LauncherGames(cmd.Context(), t)
	}
	if err != nil {
		return err
	}

	return writeGames(cmd.OutOrStdout(), opts.format, list)
}

func runFind(cmd *cobra.Command, opts *options, launcher, id string) error {
	t, err := games.ParseLauncherType(launcher)
	if err != nil {
		return err
	}
	s, err := setup(opts)
	if err != nil {
		return err
	}

	game, err := s.Find(cmd.Context(), t, id)
	if err != nil {
		return err
	}
	return writeGames(cmd.OutOrStdout(), opts.format, []games.Game{game})
}

func runLaunchers(cmd *cobra.Command, opts *options) error {
	s, err := setup(opts)
	if err != nil {
		return err
	}

	report, err := s.Scan(cmd.Context())
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), report.Launchers)
}
