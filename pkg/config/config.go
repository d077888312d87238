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

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/helpers/syncutil"
	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	AppName       = "zaparoo"
	CfgFile       = "gamescanner.toml"
	CfgEnv        = "GAMESCANNER_CFG"

	// SteamRuntimeAppID is Steamworks Common Redistributables, which Steam
	// installs like a game but isn't one.
	SteamRuntimeAppID = "228980"

	DefaultWorkers          = 4
	DefaultMaxManifestBytes = 4 << 20
)

type Values struct {
	EpicGames    EpicGames `toml:"epicgames,omitempty"`
	Launchers    Launchers `toml:"launchers,omitempty"`
	Steam        Steam     `toml:"steam"`
	Scan         Scan      `toml:"scan"`
	ConfigSchema int       `toml:"config_schema"`
	DebugLogging bool      `toml:"debug_logging"`
}

type Scan struct {
	Launchers        []string `toml:"launchers,omitempty" validate:"dive,oneof=steam origin epicgames amazon"`
	Workers          int      `toml:"workers" validate:"min=1,max=64"`
	MaxManifestBytes int64    `toml:"max_manifest_bytes" validate:"min=0"`
}

type Steam struct {
	IgnoredApps      []string `toml:"ignored_apps" validate:"dive,numeric"`
	IncludeShortcuts bool     `toml:"include_shortcuts"`
}

type EpicGames struct {
	LookupDB     string `toml:"lookup_db,omitempty"`
	StrictLookup bool   `toml:"strict_lookup,omitempty"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Scan: Scan{
		Workers:          DefaultWorkers,
		MaxManifestBytes: DefaultMaxManifestBytes,
	},
	Steam: Steam{
		IgnoredApps: []string{SteamRuntimeAppID},
	},
}

// clone copies vals so that decoding into the copy never writes through
// to shared slices such as BaseDefaults'.
//
//nolint:gocritic // config struct copied for immutability
func (v Values) clone() Values {
	v.Scan.Launchers = slices.Clone(v.Scan.Launchers)
	v.Steam.IgnoredApps = slices.Clone(v.Steam.IgnoredApps)
	v.Launchers.Default = slices.Clone(v.Launchers.Default)
	return v
}

// Instance is a thread-safe view of the loaded config. Accessors on a nil
// *Instance return the BaseDefaults values.
type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

var validate = validator.New()

// DefaultConfigDir is where the config file lives unless overridden.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultLogDir is where the rotating log file is written.
func DefaultLogDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		cfgPath:  cfgPath,
		vals:     defaults.clone(),
		defaults: defaults.clone(),
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FromValues returns an Instance backed only by memory. Save and Load
// fail on it.
//
//nolint:gocritic // config struct copied for immutability
func FromValues(vals Values) *Instance {
	return &Instance{vals: vals.clone(), defaults: vals.clone()}
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then unmarshal file values on top.
	newVals := c.defaults.clone()
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	if err := validate.Struct(newVals); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	if c == nil {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

// Workers is the number of manifests parsed in parallel per launcher.
func (c *Instance) Workers() int {
	if c == nil {
		return DefaultWorkers
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Scan.Workers < 1 {
		return 1
	}
	return c.vals.Scan.Workers
}

// MaxManifestBytes is the largest manifest file that will be read. Zero
// means no limit.
func (c *Instance) MaxManifestBytes() int64 {
	if c == nil {
		return DefaultMaxManifestBytes
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Scan.MaxManifestBytes
}

// ScanLaunchers returns the launcher names to scan. An empty list means all
// supported launchers.
func (c *Instance) ScanLaunchers() []string {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Scan.Launchers)
}

// SteamIgnoredApps returns the Steam app IDs that are never reported as
// games.
func (c *Instance) SteamIgnoredApps() []string {
	if c == nil {
		return []string{SteamRuntimeAppID}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Steam.IgnoredApps)
}

// SteamIncludeShortcuts reports whether non-Steam games added to the
// Steam library are listed alongside Steam's own.
func (c *Instance) SteamIncludeShortcuts() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Steam.IncludeShortcuts
}

// EpicLookupDB returns the configured path of the Epic Games executable
// lookup database, or an empty string to use the default location.
func (c *Instance) EpicLookupDB() string {
	if c == nil {
		return ""
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.EpicGames.LookupDB
}

// EpicStrictLookup reports whether Epic Games manifests must resolve their
// executable through the lookup database, without falling back to the
// manifest's LaunchExecutable.
func (c *Instance) EpicStrictLookup() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.EpicGames.StrictLookup
}
