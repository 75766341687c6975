// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bbqr

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// HeaderLen is the fixed length of every frame header.
	HeaderLen = 8

	// Prefix opens every frame.
	Prefix = "B$"

	// MaxParts is the largest part count two base36 digits can carry
	// ("ZZ").
	MaxParts = 36*36 - 1
)

// Header is the decoded 8-character frame header.
type Header struct {
	Encoding  Encoding
	FileType  FileType
	PartCount int
	PartIndex int
}

// Validate checks every field against the wire format: a wire
// encoding, an uppercase file type, 1 <= PartCount <= MaxParts and
// 0 <= PartIndex < PartCount.
func (h Header) Validate() error {
	if !h.Encoding.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidEncoding, byte(h.Encoding))
	}
	if !h.FileType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFileType, byte(h.FileType))
	}
	if h.PartCount < 1 || h.PartCount > MaxParts {
		return fmt.Errorf("%w: %d not in 1..%d", ErrInvalidPartCount, h.PartCount, MaxParts)
	}
	if h.PartIndex < 0 || h.PartIndex >= h.PartCount {
		return fmt.Errorf("%w: index %d with %d parts", ErrPartIndexOutOfRange, h.PartIndex, h.PartCount)
	}
	return nil
}

// Encode renders the header as its 8-character wire form.
func (h Header) Encode() (string, error) {
	if err := h.Validate(); err != nil {
		return "", err
	}
	var builder strings.Builder
	builder.Grow(HeaderLen)
	builder.WriteString(Prefix)
	builder.WriteByte(byte(h.Encoding))
	builder.WriteByte(byte(h.FileType))
	builder.WriteString(formatBase36(h.PartCount))
	builder.WriteString(formatBase36(h.PartIndex))
	return builder.String(), nil
}

// EncodeHeader is shorthand for building a Header and calling Encode.
func EncodeHeader(encoding Encoding, fileType FileType, partCount, partIndex int) (string, error) {
	return Header{
		Encoding:  encoding,
		FileType:  fileType,
		PartCount: partCount,
		PartIndex: partIndex,
	}.Encode()
}

// ParseHeader decodes the first HeaderLen characters of a frame. The
// rest of the frame is not examined.
//
// Counter fields must be uppercase base36: QR alphanumeric mode cannot
// carry lowercase letters, so a lowercase digit means the text did not
// come from a BBQr QR code.
func ParseHeader(frame string) (Header, error) {
	if len(frame) < HeaderLen {
		return Header{}, fmt.Errorf("%w: %d characters, need %d", ErrMalformedHeader, len(frame), HeaderLen)
	}
	if frame[:2] != Prefix {
		return Header{}, fmt.Errorf("%w: prefix %q, want %q", ErrMalformedHeader, frame[:2], Prefix)
	}

	encoding, err := ParseEncoding(frame[2])
	if err != nil {
		return Header{}, err
	}

	fileType := FileType(frame[3])
	if !fileType.Valid() {
		return Header{}, fmt.Errorf("%w: %q is not an uppercase letter", ErrInvalidFileType, frame[3])
	}

	partCount, err := parseBase36(frame[4:6])
	if err != nil {
		return Header{}, fmt.Errorf("%w: part count: %v", ErrMalformedHeader, err)
	}
	if partCount < 1 {
		return Header{}, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidPartCount, partCount, MaxParts)
	}

	partIndex, err := parseBase36(frame[6:8])
	if err != nil {
		return Header{}, fmt.Errorf("%w: part index: %v", ErrMalformedHeader, err)
	}
	if partIndex >= partCount {
		return Header{}, fmt.Errorf("%w: index %d with %d parts", ErrPartIndexOutOfRange, partIndex, partCount)
	}

	return Header{
		Encoding:  encoding,
		FileType:  fileType,
		PartCount: partCount,
		PartIndex: partIndex,
	}, nil
}

// formatBase36 renders 0..MaxParts as two uppercase base36 digits.
// Callers validate the range first.
func formatBase36(value int) string {
	digits := strings.ToUpper(strconv.FormatInt(int64(value), 36))
	if len(digits) < 2 {
		digits = "0" + digits
	}
	return digits
}

// parseBase36 parses exactly two uppercase base36 digits.
func parseBase36(digits string) (int, error) {
	value := 0
	for i := 0; i < len(digits); i++ {
		character := digits[i]
		var digit int
		switch {
		case character >= '0' && character <= '9':
			digit = int(character - '0')
		case character >= 'A' && character <= 'Z':
			digit = int(character-'A') + 10
		default:
			return 0, fmt.Errorf("%q is not an uppercase base36 number", digits)
		}
		value = value*36 + digit
	}
	return value, nil
}
