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

package helpers

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CamelCase upper-cases the first letter of every word in s and leaves the
// rest of each word untouched, so "program files" becomes "Program Files"
// and "SteamApps" stays as it is.
func CamelCase(s string) string {
	// Casers are stateful and can't be shared between goroutines.
	return cases.Title(language.Und, cases.NoLower).String(s)
}

func isPathSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// FixExecutablePath rebuilds a launcher executable path read from the
// registry, where some launchers store forward slashes and lower-case
// segments ("c:/program files (x86)/steam/steam.exe"), into a native path
// with conventional folder casing ("C:\Program Files (x86)\Steam\steam.exe").
//
// Drive segments are camel-cased and keep their trailing separator. Segments
// containing "x86" are camel-cased word by word, skipping the word that
// holds "86". The executable file name itself is left alone.
func FixExecutablePath(raw string) string {
	if raw == "" {
		return ""
	}

	sep := string(os.PathSeparator)
	segments := strings.FieldsFunc(raw, isPathSeparator)
	fixed := make([]string, 0, len(segments)+1)

	if isPathSeparator(rune(raw[0])) {
		fixed = append(fixed, sep)
	}

	for _, segment := range segments {
		switch {
		case strings.Contains(segment, ":"):
			fixed = append(fixed, CamelCase(segment)+sep)
		case strings.Contains(segment, "x86"):
			words := strings.Split(segment, " ")
			for i, word := range words {
				if !strings.Contains(word, "86") {
					words[i] = CamelCase(word)
				}
			}
			fixed = append(fixed, strings.Join(words, " "))
		case !isExecutableName(segment):
			fixed = append(fixed, CamelCase(segment))
		default:
			fixed = append(fixed, segment)
		}
	}

	return filepath.Join(fixed...)
}

func isExecutableName(segment string) bool {
	return strings.Contains(strings.ToLower(segment), ".exe")
}

// escapedPathReplacer applies the replacements in the order they are listed.
var escapedPathReplacer = []struct {
	old string
	new string
}{
	{"%5c", string(os.PathSeparator)},
	{"%5C", string(os.PathSeparator)},
	{"%2f", string(os.PathSeparator)},
	{"%2F", string(os.PathSeparator)},
	{"%3a", ":"},
	{"%3A", ":"},
	{"%20", " "},
}

// DecodeEscapedPath turns a percent-escaped path from a URL-query manifest,
// such as "C%3a%5cGames%5cMyGame", into a native path. Only separators,
// colons and spaces are decoded.
func DecodeEscapedPath(raw string) string {
	p := raw
	for _, r := range escapedPathReplacer {
		p = strings.ReplaceAll(p, r.old, r.new)
	}
	return p
}

// NormalizePathForComparison normalizes a path for cross-platform
// case-insensitive comparison. Converts to forward slashes and lowercases.
func NormalizePathForComparison(path string) string {
	p := filepath.ToSlash(filepath.Clean(path))
	return strings.ToLower(p)
}
