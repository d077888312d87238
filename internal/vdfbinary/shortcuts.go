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


package vdfbinary

import (
	"errors"
	"io"
	"slices"
	"strconv"
)

var errNoShortcuts = errors.New("binary vdf has no shortcuts section")

// Shortcut is a non-Steam game added to the Steam library.
type Shortcut struct {
	AppName       string
	Exe           string
	StartDir      string
	LaunchOptions string
	AppID         uint32
	Hidden        bool
}

// DecodeShortcuts reads a shortcuts.vdf file. Entries are returned in the
// order Steam lists them. Entries without an app id, name or executable,
// which some third-party tools write, are skipped.
func DecodeShortcuts(r io.Reader) ([]Shortcut, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}

	entries, ok := doc.Map("shortcuts")
	if !ok {
		return nil, errNoShortcuts
	}

	type indexed struct {
		entry Map
		index int
	}
	ordered := make([]indexed, 0, len(entries))
	for k, v := range entries {
		entry, ok := v.(Map)
		if !ok {
			continue
		}
		i, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		ordered = append(ordered, indexed{index: i, entry: entry})
	}
	slices.SortFunc(ordered, func(a, b indexed) int {
		return a.index - b.index
	})

	shortcuts := make([]Shortcut, 0, len(ordered))
	for _, o := range ordered {
		appID, ok := o.entry.Uint32("appid")
		if !ok {
			continue
		}
		name, _ := o.entry.String("AppName")
		exe, _ := o.entry.String("Exe")
		if name == "" || exe == "" {
			continue
		}
		startDir, _ := o.entry.String("StartDir")
		options, _ := o.entry.String("LaunchOptions")
		hidden, _ := o.entry.Bool("IsHidden")

		shortcuts = append(shortcuts, Shortcut{
			AppID:         appID,
			AppName:       name,
			Exe:           exe,
			StartDir:      startDir,
			LaunchOptions: options,
			Hidden:        hidden,
		})
	}

	return shortcuts, nil
}
