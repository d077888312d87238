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


package mocks

import (
	"fmt"

	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/games"
	"github.com/ZaparooProject/zaparoo-gamescanner/pkg/platform"
	"github.com/stretchr/testify/mock"
)

// MockLocator is a mock implementation of platform.Locator using
// testify/mock.
type MockLocator struct {
	mock.Mock
}

var _ platform.Locator = (*MockLocator)(nil)

func (m *MockLocator) LocateExecutable(launcher games.LauncherType) (string, error) {
	args := m.Called(launcher)
	if err := args.Error(1); err != nil {
		return "", fmt.Errorf("mock locate executable failed: %w", err)
	}
	return args.String(0), nil
}

func (m *MockLocator) LocateManifestRoot(launcher games.LauncherType) (string, error) {
	args := m.Called(launcher)
	if err := args.Error(1); err != nil {
		return "", fmt.Errorf("mock locate manifest root failed: %w", err)
	}
	return args.String(0), nil
}

// NewInstalledLocator returns a MockLocator reporting launcher as
// installed with the given executable and manifest root.
func NewInstalledLocator(launcher games.LauncherType, executable, manifestRoot string) *MockLocator {
	m := &MockLocator{}
	m.On("LocateExecutable", launcher).Return(executable, nil)
	m.On("LocateManifestRoot", launcher).Return(manifestRoot, nil)
	return m
}

// NewMissingLocator returns a MockLocator reporting launcher as not
// installed.
func NewMissingLocator(launcher games.LauncherType) *MockLocator {
	m := &MockLocator{}
	err := games.LauncherNotFound(launcher, "", nil)
	m.On("LocateExecutable", launcher).Return("", err)
	m.On("LocateManifestRoot", launcher).Return("", err)
	return m
}
