// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bbqr

import (
	"encoding/base32"
	"encoding/hex"
	"fmt"
	"strings"
)

// Encoding is the payload encoding tag carried in byte 2 of every
// frame header. The byte values are protocol constants.
type Encoding byte

const (
	// EncodingAuto is not a wire value. In [EncodeOptions] it asks the
	// encoder to try compression and fall back to base32.
	EncodingAuto Encoding = 0

	// EncodingHex is uppercase hex, two characters per byte.
	EncodingHex Encoding = 'H'

	// EncodingBase32 is RFC 4648 base32 without padding, eight
	// characters per five bytes.
	EncodingBase32 Encoding = '2'

	// EncodingCompressed is raw deflate (1 KiB window) followed by
	// unpadded base32.
	EncodingCompressed Encoding = 'Z'
)

var base32NoPadding = base32.StdEncoding.WithPadding(base32.NoPadding)

// ParseEncoding converts a header byte into an Encoding.
func ParseEncoding(tag byte) (Encoding, error) {
	switch encoding := Encoding(tag); encoding {
	case EncodingHex, EncodingBase32, EncodingCompressed:
		return encoding, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidEncoding, tag)
	}
}

// ParseEncodingName accepts the human-facing names used in flags and
// config files ("auto", "hex", "base32", "compressed") as well as the
// single-character wire tags.
func ParseEncodingName(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return EncodingAuto, nil
	case "hex", "h":
		return EncodingHex, nil
	case "base32", "2":
		return EncodingBase32, nil
	case "compressed", "zlib", "z":
		return EncodingCompressed, nil
	default:
		return 0, fmt.Errorf("%w: unknown encoding name %q", ErrInvalidEncoding, name)
	}
}

// Valid reports whether e is one of the three wire encodings.
func (e Encoding) Valid() bool {
	return e == EncodingHex || e == EncodingBase32 || e == EncodingCompressed
}

// String returns the human-readable name.
func (e Encoding) String() string {
	switch e {
	case EncodingAuto:
		return "auto"
	case EncodingHex:
		return "hex"
	case EncodingBase32:
		return "base32"
	case EncodingCompressed:
		return "compressed"
	default:
		return fmt.Sprintf("unknown(%q)", byte(e))
	}
}

// Modulus is the alignment every non-final chunk must honor so that
// each chunk decodes independently: one byte of hex, or one five-byte
// base32 quantum.
func (e Encoding) Modulus() int {
	if e == EncodingHex {
		return 2
	}
	return 8
}

// TextLength is the number of frame characters byteCount bytes occupy
// under e. For EncodingCompressed the count is of already-deflated
// bytes.
func (e Encoding) TextLength(byteCount int) int {
	if e == EncodingHex {
		return 2 * byteCount
	}
	return (8*byteCount + 4) / 5
}

// encodeText renders already-selected payload bytes as frame text. For
// EncodingCompressed the bytes must already be deflated.
func (e Encoding) encodeText(data []byte) string {
	if e == EncodingHex {
		return strings.ToUpper(hex.EncodeToString(data))
	}
	return base32NoPadding.EncodeToString(data)
}

// decodeText is the exact inverse of the full encoding, including
// inflation for EncodingCompressed.
func (e Encoding) decodeText(text string) ([]byte, error) {
	switch e {
	case EncodingHex:
		data, err := hex.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: hex: %v", ErrInvalidPayload, err)
		}
		return data, nil

	case EncodingBase32, EncodingCompressed:
		// Unpadded base32 ends in a quantum of 0, 2, 4, 5 or 7
		// characters. The decoder silently drops a dangling 1, 3 or 6.
		switch len(text) % 8 {
		case 1, 3, 6:
			return nil, fmt.Errorf("%w: base32: %d characters is not a whole number of bytes", ErrInvalidPayload, len(text))
		}
		data, err := base32NoPadding.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: base32: %v", ErrInvalidPayload, err)
		}
		if e == EncodingBase32 {
			return data, nil
		}
		inflated, err := decompress(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		return inflated, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidEncoding, byte(e))
	}
}
