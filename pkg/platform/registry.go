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


package platform

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/config"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/helpers"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrRegistryValueNotFound is returned by a RegistryReader when the key or
// the value doesn't exist.
var ErrRegistryValueNotFound = errors.New("registry value not found")

// RegistryRoot is a predefined registry hive.
type RegistryRoot int

const (
	CurrentUser RegistryRoot = iota
	LocalMachine
)

func (r RegistryRoot) String() string {
	if r == LocalMachine {
		return "HKLM"
	}
	return "HKCU"
}

// RegistryReader reads string values from the Windows registry.
type RegistryReader interface {
	StringValue(root RegistryRoot, path, name string) (string, error)
}

type registryValue struct {
	path string
	name string
	root RegistryRoot
}

func (v registryValue) String() string {
	return fmt.Sprintf(`%s\%s\%s`, v.root, v.path, v.name)
}

const amazonUninstallKey = `Software\Microsoft\Windows\CurrentVersion\Uninstall\` +
	`{4DD10B06-78A4-4E6F-AA39-25E9C38FA568}`

var (
	steamExeValues = []registryValue{
		{root: CurrentUser, path: `Software\Valve\Steam`, name: "SteamExe"},
	}
	steamInstallValues = []registryValue{
		{root: LocalMachine, path: `SOFTWARE\WOW6432Node\Valve\Steam`, name: "InstallPath"},
		{root: LocalMachine, path: `SOFTWARE\Valve\Steam`, name: "InstallPath"},
	}
	originClientValues = []registryValue{
		{root: LocalMachine, path: `SOFTWARE\WOW6432Node\Origin`, name: "ClientPath"},
		{root: LocalMachine, path: `SOFTWARE\Origin`, name: "ClientPath"},
	}
	epicCommandValues = []registryValue{
		{root: CurrentUser, path: `Software\Epic Games\EOS`, name: "ModSdkCommand"},
	}
	epicDataValues = []registryValue{
		{root: LocalMachine, path: `SOFTWARE\WOW6432Node\Epic Games\EpicGamesLauncher`, name: "AppDataPath"},
		{root: LocalMachine, path: `SOFTWARE\Epic Games\EpicGamesLauncher`, name: "AppDataPath"},
	}
	amazonInstallValues = []registryValue{
		{root: CurrentUser, path: amazonUninstallKey, name: "InstallLocation"},
	}
)

// RegistryLocator finds launchers through the values their installers
// write to the Windows registry.
type RegistryLocator struct {
	reg    RegistryReader
	fs     afero.Fs
	cfg    *config.Instance
	getenv func(string) string
}

var _ Locator = (*RegistryLocator)(nil)

// NewRegistryLocator returns a RegistryLocator. getenv expands the known
// folders (ProgramData, LOCALAPPDATA) that some launchers keep manifests in.
func NewRegistryLocator(
	reg RegistryReader,
	fsys afero.Fs,
	cfg *config.Instance,
	getenv func(string) string,
) *RegistryLocator {
	return &RegistryLocator{
		reg:    reg,
		fs:     fsys,
		cfg:    cfg,
		getenv: getenv,
	}
}

// lookup returns the first non-empty value from the list.
func (l *RegistryLocator) lookup(launcher games.LauncherType, values []registryValue) (string, error) {
	var lastErr error
	for _, v := range values {
		s, err := l.reg.StringValue(v.root, v.path, v.name)
		if err != nil {
			lastErr = err
			continue
		}
		if s == "" {
			lastErr = ErrRegistryValueNotFound
			continue
		}
		log.Debug().Str("key", v.String()).Msgf("found %s registry value: %s", launcher.DisplayName(), s)
		return s, nil
	}
	return "", games.LauncherNotFound(launcher, values[len(values)-1].String(), lastErr)
}

// knownFolder returns the directory in the named environment variable.
func (l *RegistryLocator) knownFolder(launcher games.LauncherType, env string) (string, error) {
	dir := l.getenv(env)
	if dir == "" {
		return "", games.LauncherNotFound(
			launcher, "%"+env+"%", fmt.Errorf("environment variable %s is not set", env),
		)
	}
	return dir, nil
}

func (l *RegistryLocator) LocateExecutable(launcher games.LauncherType) (string, error) {
	if exe, ok := overrideExecutable(l.fs, l.cfg, launcher); ok {
		return exe, nil
	}

	exe, err := l.registryExecutable(launcher)
	if err != nil {
		return "", err
	}
	if _, found := firstFile(l.fs, []string{exe}); !found {
		return "", games.LauncherNotFound(launcher, exe, errors.New("executable does not exist"))
	}
	return exe, nil
}

func (l *RegistryLocator) registryExecutable(launcher games.LauncherType) (string, error) {
	switch launcher {
	case games.Steam:
		exe, err := l.lookup(launcher, steamExeValues)
		if err != nil {
			return "", err
		}
		return helpers.FixExecutablePath(exe), nil
	case games.Origin:
		return l.lookup(launcher, originClientValues)
	case games.EpicGames:
		exe, err := l.lookup(launcher, epicCommandValues)
		if err != nil {
			return "", err
		}
		return helpers.FixExecutablePath(exe), nil
	case games.Amazon:
		dir, err := l.lookup(launcher, amazonInstallValues)
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, "Amazon Games.exe"), nil
	default:
		return "", games.LauncherNotFound(launcher, "", errors.New("unsupported launcher"))
	}
}

func (l *RegistryLocator) LocateManifestRoot(launcher games.LauncherType) (string, error) {
	if dir, ok := overrideManifestRoot(l.fs, l.cfg, launcher); ok {
		return dir, nil
	}

	var dir string
	switch launcher {
	case games.Steam:
		installPath, err := l.lookup(launcher, steamInstallValues)
		if err != nil {
			return "", err
		}
		dir = steamAppsDir(installPath)
	case games.Origin:
		programData, err := l.knownFolder(launcher, "ProgramData")
		if err != nil {
			return "", err
		}
		dir = filepath.Join(programData, "Origin", "LocalContent")
	case games.EpicGames:
		dataPath, err := l.lookup(launcher, epicDataValues)
		if err != nil {
			return "", err
		}
		dir = filepath.Join(dataPath, "Manifests")
	case games.Amazon:
		localAppData, err := l.knownFolder(launcher, "LOCALAPPDATA")
		if err != nil {
			return "", err
		}
		dir = filepath.Join(localAppData, "Amazon Games", "Data", "Games", "Sql")
	default:
		return "", games.LauncherNotFound(launcher, "", errors.New("unsupported launcher"))
	}

	if ok, _ := afero.DirExists(l.fs, dir); !ok {
		return "", games.LauncherNotFound(launcher, dir, errors.New("manifest directory does not exist"))
	}
	return dir, nil
}
