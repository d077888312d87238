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
	"strings"
)

// parseACF reads the flat "key"<tab>"value" lines of an app manifest.
// Lines that don't split into exactly two tokens, such as section names
// and braces, are ignored. Keys are lowercased and the first occurrence of
// a key wins, so values in nested sections never replace top level ones.
func parseACF(content string) map[string]string {
	values := make(map[string]string)

	for line := range strings.SplitSeq(content, "\n") {
		tokens := make([]string, 0, 2)
		for token := range strings.SplitSeq(line, "\t") {
			if strings.TrimSpace(token) != "" {
				tokens = append(tokens, token)
			}
		}
		if len(tokens) != 2 {
			continue
		}

		key := strings.ToLower(removeQuotes(tokens[0]))
		if key == "" {
			continue
		}
		if _, seen := values[key]; seen {
			continue
		}
		values[key] = removeQuotes(tokens[1])
	}

	return values
}

func removeQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return strings.Trim(s, `"`)
}
