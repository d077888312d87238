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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/scanner"
	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatCSV   = "csv"
)

var outputFormats = []string{formatTable, formatJSON, formatYAML, formatCSV}

// gameRow is the flattened form of a game for CSV output.
type gameRow struct {
	Launcher      string `csv:"launcher"`
	ID            string `csv:"id"`
	Name          string `csv:"name"`
	Path          string `csv:"path"`
	Launch        string `csv:"launch"`
	TotalBytes    string `csv:"total_bytes"`
	ReceivedBytes string `csv:"received_bytes"`
	Installed     bool   `csv:"installed"`
	NeedsUpdate   bool   `csv:"needs_update"`
	Downloading   bool   `csv:"downloading"`
}

func optionalUint(v *uint64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatUint(*v, 10)
}

func newGameRow(g *games.Game) gameRow {
	return gameRow{
		Launcher:      g.Type.String(),
		ID:            g.ID,
		Name:          g.Name,
		Path:          g.InstallPath(),
		Launch:        strings.Join(g.Commands.Launch, " "),
		TotalBytes:    optionalUint(g.State.TotalBytes),
		ReceivedBytes: optionalUint(g.State.ReceivedBytes),
		Installed:     g.State.Installed,
		NeedsUpdate:   g.State.NeedsUpdate,
		Downloading:   g.State.Downloading,
	}
}

func stateLabel(s *games.State) string {
	switch {
	case s.Downloading && s.TotalBytes != nil && s.ReceivedBytes != nil && *s.TotalBytes > 0:
		received, total := *s.ReceivedBytes, *s.TotalBytes
		return fmt.Sprintf("downloading %d%%", received*100/total)
	case s.Downloading:
		return "downloading"
	case s.NeedsUpdate:
		return "needs update"
	case s.Installed:
		return "installed"
	default:
		return "not installed"
	}
}

func writeGames(w io.Writer, format string, list []games.Game) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(list); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
	case formatCSV:
		rows := make([]gameRow, 0, len(list))
		for i := range list {
			rows = append(rows, newGameRow(&list[i]))
		}
		if err := gocsv.Marshal(&rows, w); err != nil {
			return fmt.Errorf("failed to encode csv: %w", err)
		}
	case formatTable:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "LAUNCHER\tID\tNAME\tSTATE\tPATH")
		for i := range list {
			g := &list[i]
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				g.Type.DisplayName(), g.ID, g.Name, stateLabel(&g.State), g.InstallPath())
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q, expected one of: %s", format, strings.Join(outputFormats, ", "))
	}
	return nil
}

func writeReport(w io.Writer, reports []scanner.LauncherReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "LAUNCHER\tGAMES\tTIME\tSTATUS")
	for _, r := range reports {
		status := "ok"
		switch {
		case errors.Is(r.Err, games.ErrLauncherNotFound):
			status = "not installed"
		case r.Err != nil:
			status = r.Err.Error()
		}
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
			r.Type.DisplayName(), r.Count, r.Duration.Round(time.Millisecond), status)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
