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

package games

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// Kind classifies a scanner failure.
type Kind int

const (
	KindOther Kind = iota
	KindLauncherNotFound
	KindLibraryNotFound
	KindManifestNotFound
	KindInvalidManifest
	KindGameNotFound
	KindInvalidGame
	KindIgnoredApp
	KindIO
	KindJSON
	KindVDF
	KindSQLite
)

var kindNames = map[Kind]string{
	KindOther:            "Other",
	KindLauncherNotFound: "LauncherNotFound",
	KindLibraryNotFound:  "LibraryNotFound",
	KindManifestNotFound: "ManifestNotFound",
	KindInvalidManifest:  "InvalidManifest",
	KindGameNotFound:     "GameNotFound",
	KindInvalidGame:      "InvalidGame",
	KindIgnoredApp:       "IgnoredApp",
	KindIO:               "IO",
	KindJSON:             "JSON",
	KindVDF:              "VDF",
	KindSQLite:           "SQLite",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinel errors, one per kind. Every *Error matches the sentinel of its
// kind with errors.Is.
var (
	ErrOther            = errors.New("scanner error")
	ErrLauncherNotFound = errors.New("launcher not found")
	ErrLibraryNotFound  = errors.New("library not found")
	ErrManifestNotFound = errors.New("manifest not found")
	ErrInvalidManifest  = errors.New("invalid manifest")
	ErrGameNotFound     = errors.New("game not found")
	ErrInvalidGame      = errors.New("invalid game")
	ErrIgnoredApp       = errors.New("ignored app")
	ErrIO               = errors.New("io error")
	ErrJSON             = errors.New("json decode error")
	ErrVDF              = errors.New("vdf decode error")
	ErrSQLite           = errors.New("sqlite error")
)

var kindSentinels = map[Kind]error{
	KindOther:            ErrOther,
	KindLauncherNotFound: ErrLauncherNotFound,
	KindLibraryNotFound:  ErrLibraryNotFound,
	KindManifestNotFound: ErrManifestNotFound,
	KindInvalidManifest:  ErrInvalidManifest,
	KindGameNotFound:     ErrGameNotFound,
	KindInvalidGame:      ErrInvalidGame,
	KindIgnoredApp:       ErrIgnoredApp,
	KindIO:               ErrIO,
	KindJSON:             ErrJSON,
	KindVDF:              ErrVDF,
	KindSQLite:           ErrSQLite,
}

// Error is a typed scanner failure. Path is the manifest, file or registry
// key involved, when there is one.
type Error struct {
	Err      error
	Launcher LauncherType
	Path     string
	Msg      string
	Kind     Kind
}

// NewError builds an *Error of the given kind wrapping cause.
func NewError(kind Kind, launcher LauncherType, path, msg string, cause error) *Error {
	return &Error{
		Kind:     kind,
		Launcher: launcher,
		Path:     path,
		Msg:      msg,
		Err:      cause,
	}
}

func (e *Error) Error() string {
	s := e.Kind.String()
	if e.Launcher != "" {
		s = e.Launcher.DisplayName() + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Path != "" {
		s += ": " + e.Path
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// KindOf returns the kind of the outermost *Error in err's chain, or
// KindOther when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindOther
}

// LauncherNotFound reports a launcher that is not installed on this host.
func LauncherNotFound(launcher LauncherType, path string, cause error) *Error {
	return NewError(KindLauncherNotFound, launcher, path, "maybe this launcher is not installed", cause)
}

// InvalidManifest reports a manifest that could not be read or decoded.
func InvalidManifest(launcher LauncherType, path string, cause error) *Error {
	return NewError(KindInvalidManifest, launcher, path, "", cause)
}

// GameNotFound reports a lookup by id that matched nothing.
func GameNotFound(launcher LauncherType, id string) *Error {
	return NewError(KindGameNotFound, launcher, "", "id "+id, nil)
}

// IgnoredApp reports a record that is deliberately excluded from results.
func IgnoredApp(launcher LauncherType, path, reason string) *Error {
	return NewError(KindIgnoredApp, launcher, path, reason, nil)
}

// IsExpected reports whether err is a normal outcome of scanning a host,
// such as a launcher that isn't installed, rather than a real problem.
func IsExpected(err error) bool {
	switch KindOf(err) {
	case KindLauncherNotFound, KindIgnoredApp, KindGameNotFound:
		return true
	default:
		return false
	}
}

// LogLevel picks the level a skipped failure is logged at. Expected
// outcomes only show up with debug logging enabled.
func LogLevel(err error) zerolog.Level {
	if IsExpected(err) {
		return zerolog.DebugLevel
	}
	return zerolog.WarnLevel
}
