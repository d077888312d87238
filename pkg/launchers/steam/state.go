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
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
)

// StateFlags is the bit set Steam writes to an app manifest's StateFlags.
type StateFlags uint64

const (
	StateInvalid        StateFlags = 0
	StateUninstalled    StateFlags = 1 << 0
	StateUpdateRequired StateFlags = 1 << 1
	StateFullyInstalled StateFlags = 1 << 2
	StateEncrypted      StateFlags = 1 << 3
	StateLocked         StateFlags = 1 << 4
	StateFilesMissing   StateFlags = 1 << 5
	StateAppRunning     StateFlags = 1 << 6
	StateFilesCorrupt   StateFlags = 1 << 7
	StateUpdateRunning  StateFlags = 1 << 8
	StateUpdatePaused   StateFlags = 1 << 9
	StateUpdateStarted  StateFlags = 1 << 10
	StateUninstalling   StateFlags = 1 << 11
	StateBackupRunning  StateFlags = 1 << 12
	StateReconfiguring  StateFlags = 1 << 16
	StateValidating     StateFlags = 1 << 17
	StateAddingFiles    StateFlags = 1 << 18
	StatePreallocating  StateFlags = 1 << 19
	StateDownloading    StateFlags = 1 << 20
	StateStaging        StateFlags = 1 << 21
	StateCommitting     StateFlags = 1 << 22
	StateUpdateStopping StateFlags = 1 << 23
)

const (
	transferFlags    = StateDownloading | StateUpdateRunning
	needsUpdateFlags = StateUpdateRequired | StateFilesMissing | StateFilesCorrupt |
		StateUpdatePaused | StateUpdateStarted | StatePreallocating | StateStaging | StateCommitting
)

func (f StateFlags) Has(flag StateFlags) bool {
	return f&flag != 0
}

// parseUint parses an unsigned manifest number. Steam counters are read
// leniently: a malformed value is reported as absent.
func parseUint(s string) (uint64, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// gameState maps the manifest's state fields to a games.State. When the
// manifest has no StateFlags, a game with an install dir is assumed to be
// installed.
func gameState(values map[string]string, hasPath bool) games.State {
	raw, ok := values["stateflags"]
	if !ok {
		return games.State{Installed: hasPath}
	}
	v, ok := parseUint(raw)
	if !ok {
		return games.State{Installed: hasPath}
	}
	flags := StateFlags(v)

	state := games.State{
		Installed:   flags.Has(StateFullyInstalled),
		Downloading: flags.Has(transferFlags) && !flags.Has(StateUpdatePaused),
	}
	state.NeedsUpdate = state.Downloading || flags.Has(needsUpdateFlags)

	if state.Downloading {
		if total, ok := parseUint(values["bytestodownload"]); ok {
			state.TotalBytes = games.Uint64Ptr(total)
			if received, ok := parseUint(values["bytesdownloaded"]); ok {
				state.ReceivedBytes = games.Uint64Ptr(received)
			}
		}
	}

	return state
}
