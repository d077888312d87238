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

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows/registry"
)

// WindowsRegistry reads values from the live Windows registry.
type WindowsRegistry struct{}

var _ RegistryReader = WindowsRegistry{}

func (WindowsRegistry) StringValue(root RegistryRoot, path, name string) (string, error) {
	hive := registry.CURRENT_USER
	if root == LocalMachine {
		hive = registry.LOCAL_MACHINE
	}

	key, err := registry.OpenKey(hive, path, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", fmt.Errorf(`%s\%s: %w`, root, path, ErrRegistryValueNotFound)
		}
		return "", fmt.Errorf(`failed to open %s\%s: %w`, root, path, err)
	}
	defer func() {
		if closeErr := key.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing registry key")
		}
	}()

	value, _, err := key.GetStringValue(name)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", fmt.Errorf(`%s\%s\%s: %w`, root, path, name, ErrRegistryValueNotFound)
		}
		return "", fmt.Errorf(`failed to read %s\%s\%s: %w`, root, path, name, err)
	}
	return value, nil
}
