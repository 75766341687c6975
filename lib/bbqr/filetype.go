// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bbqr

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// FileType is the single uppercase letter in byte 3 of every frame
// header describing what the payload is. The set is open: any letter
// A-Z is a legal wire value, and the named constants are the ones this
// package recognizes.
type FileType byte

const (
	FilePSBT        FileType = 'P'
	FileTransaction FileType = 'T'
	FileJSON        FileType = 'J'
	FileCBOR        FileType = 'C'
	FileUnicode     FileType = 'U'
	FileBinary      FileType = 'B'
	FileExecutable  FileType = 'X'
)

// psbtMagic is "psbt" followed by the 0xff separator (BIP 174).
var psbtMagic = []byte{0x70, 0x73, 0x62, 0x74, 0xff}

// Valid reports whether t is a single uppercase ASCII letter.
func (t FileType) Valid() bool {
	return t >= 'A' && t <= 'Z'
}

// String returns the descriptive name, or the bare letter for types
// this package does not name.
func (t FileType) String() string {
	switch t {
	case FilePSBT:
		return "psbt"
	case FileTransaction:
		return "transaction"
	case FileJSON:
		return "json"
	case FileCBOR:
		return "cbor"
	case FileUnicode:
		return "unicode"
	case FileBinary:
		return "binary"
	case FileExecutable:
		return "executable"
	}
	if t.Valid() {
		return string(rune(t))
	}
	return fmt.Sprintf("invalid(%q)", byte(t))
}

// ParseFileType accepts either a single letter or one of the names
// returned by String.
func ParseFileType(name string) (FileType, error) {
	if len(name) == 1 {
		fileType := FileType(name[0])
		if !fileType.Valid() {
			return 0, fmt.Errorf("%w: %q is not an uppercase letter", ErrInvalidFileType, name)
		}
		return fileType, nil
	}
	for _, known := range []FileType{
		FilePSBT, FileTransaction, FileJSON, FileCBOR, FileUnicode, FileBinary, FileExecutable,
	} {
		if strings.EqualFold(name, known.String()) {
			return known, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown file type %q", ErrInvalidFileType, name)
}

// DetectFileType classifies data by cheap content checks, in order:
//
//  1. PSBT magic at offset 0
//  2. little-endian uint32 version 1 or 2 at offset 0 (Transaction)
//  3. valid UTF-8 that trims to a JSON object or array and parses
//  4. anything else is Binary
//
// The transaction check is a heuristic: any buffer that happens to start
// with 01000000 or 02000000 is labeled a transaction. Callers that know
// the type should pass it to [Encode] instead.
func DetectFileType(data []byte) FileType {
	if bytes.HasPrefix(data, psbtMagic) {
		return FilePSBT
	}

	if len(data) >= 4 {
		version := binary.LittleEndian.Uint32(data[:4])
		if version == 1 || version == 2 {
			return FileTransaction
		}
	}

	if looksLikeJSON(data) {
		return FileJSON
	}

	return FileBinary
}

func looksLikeJSON(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return false
	}
	return json.Valid(trimmed)
}
