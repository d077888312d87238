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


// Package vdfbinary decodes Valve's binary KeyValues format, which the
// Steam client uses for shortcuts.vdf.
package vdfbinary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	markerMap    byte = 0x00
	markerString byte = 0x01
	markerInt32  byte = 0x02
	markerEnd    byte = 0x08

	// maxDepth bounds nesting so a corrupt file can't exhaust the stack.
	maxDepth = 32
)

var (
	ErrEmpty     = errors.New("binary vdf is empty")
	ErrNotBinary = errors.New("not a binary vdf, it may be a text vdf")
	ErrTruncated = errors.New("binary vdf ended early, the file may be corrupted")
	ErrTooDeep   = errors.New("binary vdf nested too deeply")
)

// Map is a decoded node. Keys are lower-cased. Values are Map, string or
// uint32.
type Map map[string]any

func (m Map) Map(key string) (Map, bool) {
	v, ok := m[strings.ToLower(key)].(Map)
	return v, ok
}

func (m Map) String(key string) (string, bool) {
	v, ok := m[strings.ToLower(key)].(string)
	return v, ok
}

func (m Map) Uint32(key string) (uint32, bool) {
	v, ok := m[strings.ToLower(key)].(uint32)
	return v, ok
}

// Bool reads an int32 flag, which is true when non-zero.
func (m Map) Bool(key string) (value, ok bool) {
	v, ok := m.Uint32(key)
	return v != 0, ok
}

// Decode reads a whole binary VDF document.
func Decode(r io.Reader) (Map, error) {
	buf := bufio.NewReader(r)

	first, err := buf.Peek(1)
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	} else if err != nil {
		return nil, fmt.Errorf("failed to read vdf: %w", err)
	}
	switch first[0] {
	case markerMap, markerString, markerInt32, markerEnd:
	default:
		return nil, ErrNotBinary
	}

	m, err := decodeMap(buf, 0)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, ErrTruncated
	}
	return m, err
}

func decodeMap(buf *bufio.Reader, depth int) (Map, error) {
	if depth > maxDepth {
		return nil, ErrTooDeep
	}

	m := make(Map)
	for {
		marker, err := buf.ReadByte()
		if err != nil {
			return nil, err
		}
		if marker == markerEnd {
			return m, nil
		}

		key, err := readString(buf)
		if err != nil {
			return nil, err
		}

		var value any
		switch marker {
		case markerMap:
			value, err = decodeMap(buf, depth+1)
		case markerString:
			value, err = readString(buf)
		case markerInt32:
			value, err = readUint32(buf)
		default:
			return nil, fmt.Errorf("unexpected marker 0x%02x for key %q", marker, key)
		}
		if err != nil {
			return nil, err
		}

		m[strings.ToLower(key)] = value
	}
}

func readString(buf *bufio.Reader) (string, error) {
	s, err := buf.ReadString(0x00)
	if err != nil {
		return "", err
	}
	return s[:len(s)-1], nil
}

func readUint32(buf *bufio.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(buf, b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}
