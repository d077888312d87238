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
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/launchers"
	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ManifestExt is the extension of Origin install manifests.
const ManifestExt = ".mfst"

// Install states written to a manifest's currentstate.
const (
	StateTransferring = "kTransferring"
	StateEnqueued     = "kEnqueued"
	StateReadyToStart = "kReadyToStart"
)

var errMissingID = errors.New("manifest has no id")

// manifest holds the query values of an .mfst file.
type manifest struct {
	TotalDownloadBytes *uint64 `mfst:"totaldownloadbytes"`
	TotalBytes         *uint64 `mfst:"totalbytes"`
	SavedBytes         *uint64 `mfst:"savedbytes"`
	ID                 string  `mfst:"id"`
	InstallPath        string  `mfst:"dipinstallpath"`
	CurrentState       string  `mfst:"currentstate"`
	PreviousState      string  `mfst:"previousstate"`
	Downloading        bool    `mfst:"downloading"`
	Paused             bool    `mfst:"paused"`
}

// stringToUintHook only accepts base 10 digits. Weak decoding would let
// "-5" or "0x10" through.
func stringToUintHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Uint64 {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("not an unsigned integer: %w", err)
		}
		return n, nil
	}
}

// Origin writes flags as "1" and "0".
func stringToFlagHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Bool {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		return s == "1", nil
	}
}

// parseManifest decodes the query string an .mfst file holds. When a key
// repeats, the last value wins. Pairs that don't decode are dropped; only
// byte counters that aren't unsigned integers fail the whole manifest.
func parseManifest(content string) (*manifest, error) {
	query := strings.TrimPrefix(strings.TrimSpace(content), "?")

	// ParseQuery keeps every pair it could decode alongside the first error.
	values, err := url.ParseQuery(query)
	if err != nil {
		log.Debug().Err(err).Msg("dropped malformed Origin manifest pairs")
	}

	raw := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			raw[k] = v[len(v)-1]
		}
	}

	m := &manifest{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  m,
		TagName: "mfst",
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			stringToUintHook(),
			stringToFlagHook(),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}

	m.InstallPath = helpers.DecodeEscapedPath(m.InstallPath)
	return m, nil
}

// state maps Origin's install state vocabulary to a games.State.
func (m *manifest) state() games.State {
	downloading := m.CurrentState == StateTransferring
	state := games.State{
		Installed:     m.InstallPath != "",
		NeedsUpdate:   downloading || m.CurrentState == StateEnqueued,
		Downloading:   downloading,
		TotalBytes:    m.TotalBytes,
		ReceivedBytes: m.SavedBytes,
	}
	if state.TotalBytes == nil {
		state.TotalBytes = m.TotalDownloadBytes
	}
	return state
}

// gameName uses the name of the directory holding the manifest, which
// Origin names after the game.
func gameName(path string) string {
	name := filepath.Base(filepath.Dir(path))
	switch name {
	case "", ".", string(filepath.Separator):
		return games.UnknownName
	default:
		return name
	}
}

// Commands returns the origin2:// commands for an offer.
func Commands(executable, id string) games.Commands {
	return games.Commands{
		Install: []string{executable, "origin2://game/download?offerId=" + id},
		Launch:  []string{executable, "origin2://game/launch?offerIds=" + id},
	}
}

// ReadManifest reads an Origin .mfst file.
func ReadManifest(fsys afero.Fs, path, executable string, maxBytes int64) (games.Game, error) {
	data, err := launchers.ReadManifest(fsys, games.Origin, path, maxBytes)
	if err != nil {
		return games.Game{}, err
	}
	return manifestGame(string(data), path, executable)
}

func manifestGame(content, path, executable string) (games.Game, error) {
	m, err := parseManifest(content)
	if err != nil {
		return games.Game{}, games.InvalidManifest(games.Origin, path, err)
	}
	if m.ID == "" {
		return games.Game{}, games.InvalidManifest(games.Origin, path, errMissingID)
	}

	log.Debug().
		Str("id", m.ID).
		Str("currentstate", m.CurrentState).
		Str("previousstate", m.PreviousState).
		Bool("downloading", m.Downloading).
		Bool("paused", m.Paused).
		Msg("read Origin manifest")

	return games.Game{
		Type:     games.Origin,
		ID:       m.ID,
		Name:     gameName(path),
		Path:     games.StringPtr(m.InstallPath),
		Commands: Commands(executable, m.ID),
		State:    m.state(),
	}, nil
}
