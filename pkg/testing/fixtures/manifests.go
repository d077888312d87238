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


package fixtures

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// Launcher manifest fixtures, in the formats the launchers write them.

// SteamAppManifest returns an appmanifest_<id>.acf file. An empty value
// leaves the key out.
func SteamAppManifest(appID, name, installDir, stateFlags string) string {
	var b strings.Builder
	b.WriteString("\"AppState\"\n{\n")
	writeACF(&b, "appid", appID)
	writeACF(&b, "universe", "1")
	writeACF(&b, "LauncherPath", `C:\Program Files (x86)\Steam\steam.exe`)
	writeACF(&b, "name", name)
	writeACF(&b, "StateFlags", stateFlags)
	writeACF(&b, "installdir", installDir)
	writeACF(&b, "SizeOnDisk", "1048576")
	b.WriteString("\t\"InstalledDepots\"\n\t{\n")
	b.WriteString("\t\t\"" + appID + "1\"\n\t\t{\n")
	b.WriteString("\t\t\t\"manifest\"\t\t\"7164946234924012345\"\n")
	b.WriteString("\t\t\t\"size\"\t\t\"1048576\"\n")
	b.WriteString("\t\t}\n\t}\n")
	b.WriteString("\t\"UserConfig\"\n\t{\n")
	b.WriteString("\t\t\"language\"\t\t\"english\"\n")
	b.WriteString("\t}\n}\n")
	return b.String()
}

func writeACF(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "\t%q\t\t%q\n", key, value)
}

// SteamLibraryFolders returns a libraryfolders.vdf listing each library
// path.
func SteamLibraryFolders(paths ...string) string {
	var b strings.Builder
	b.WriteString("\"libraryfolders\"\n{\n")
	for i, p := range paths {
		fmt.Fprintf(&b, "\t\"%d\"\n\t{\n", i)
		fmt.Fprintf(&b, "\t\t\"path\"\t\t\"%s\"\n", p)
		b.WriteString("\t\t\"label\"\t\t\"\"\n")
		b.WriteString("\t\t\"contentid\"\t\t\"4211234567890123456\"\n")
		b.WriteString("\t\t\"apps\"\n\t\t{\n\t\t}\n")
		b.WriteString("\t}\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// OriginManifest returns a .mfst file for an installed game, as written
// by Origin for a game at C:\Games\<dir>.
func OriginManifest(id, dir, state string) string {
	return "?currentstate=" + state +
		"&downloading=0" +
		"&dipinstallpath=C%3a%5cGames%5c" + strings.ReplaceAll(dir, " ", "%20") + "%5c" +
		"&id=" + id +
		"&paused=0" +
		"&previousstate=kReadyToStart" +
		"&savedbytes=42" +
		"&totalbytes=100" +
		"&totaldownloadbytes=100"
}

// EpicItem returns a .item manifest.
func EpicItem(appName, displayName, installLocation, installationGUID string) string {
	return fmt.Sprintf(`{
	"FormatVersion": 0,
	"bIsIncompleteInstall": false,
	"LaunchCommand": "",
	"LaunchExecutable": "Binaries/Win64/Game.exe",
	"ManifestLocation": "C:\\ProgramData\\Epic\\EpicGamesLauncher\\Data\\Manifests",
	"bIsApplication": true,
	"bIsExecutable": true,
	"DisplayName": %q,
	"InstallationGuid": %q,
	"InstallLocation": %q,
	"CatalogNamespace": "ns",
	"CatalogItemId": "item",
	"AppName": %q,
	"MainGameAppName": %q,
	"AppVersionString": "1.0.0"
}`, displayName, installationGUID, installLocation, appName, appName)
}

// SteamShortcut is one entry of a shortcuts.vdf fixture.
type SteamShortcut struct {
	Name     string
	Exe      string
	StartDir string
	AppID    uint32
	Hidden   bool
}

// SteamShortcuts returns a binary shortcuts.vdf listing each shortcut.
// Paths are quoted the way Steam writes them.
func SteamShortcuts(shortcuts ...SteamShortcut) []byte {
	var b bytes.Buffer
	key := func(marker byte, k string) {
		b.WriteByte(marker)
		b.WriteString(k)
		b.WriteByte(0x00)
	}
	str := func(k, v string) {
		key(0x01, k)
		b.WriteString(v)
		b.WriteByte(0x00)
	}
	num := func(k string, v uint32) {
		key(0x02, k)
		_ = binary.Write(&b, binary.LittleEndian, v)
	}

	key(0x00, "shortcuts")
	for i, s := range shortcuts {
		key(0x00, strconv.Itoa(i))
		num("appid", s.AppID)
		str("AppName", s.Name)
		str("Exe", strconv.Quote(s.Exe))
		str("StartDir", strconv.Quote(s.StartDir))
		str("icon", "")
		str("LaunchOptions", "")
		hidden := uint32(0)
		if s.Hidden {
			hidden = 1
		}
		num("IsHidden", hidden)
		key(0x00, "tags")
		b.WriteByte(0x08)
		b.WriteByte(0x08)
	}
	b.WriteByte(0x08)
	b.WriteByte(0x08)
	return b.Bytes()
}
