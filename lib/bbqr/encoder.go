// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bbqr

import "fmt"

// EncodeOptions controls [Encode]. The zero value auto-detects the file
// type, tries compression, and allows every version and split.
type EncodeOptions struct {
	// FileType overrides detection when non-zero.
	FileType FileType

	// Encoding forces EncodingHex or EncodingBase32. EncodingAuto and
	// EncodingCompressed both try compression and fall back to base32
	// when it does not shrink the payload.
	Encoding Encoding

	// Bounds limits the split planner.
	Bounds Bounds
}

// EncodeResult is the output of [Encode].
type EncodeResult struct {
	// Frames are the header-prefixed QR strings, in part order.
	Frames []string

	// Encoding is the encoding actually used. It may be EncodingBase32
	// when compression was requested but did not help.
	Encoding Encoding

	FileType  FileType
	Version   int
	PartCount int
}

// Encode splits data into BBQr frames.
func Encode(data []byte, options EncodeOptions) (*EncodeResult, error) {
	fileType := options.FileType
	if fileType == 0 {
		fileType = DetectFileType(data)
	} else if !fileType.Valid() {
		return nil, fmt.Errorf("%w: %q is not an uppercase letter", ErrInvalidFileType, byte(fileType))
	}

	if err := options.Bounds.Validate(); err != nil {
		return nil, err
	}

	encoding, payload, err := selectEncoding(data, options.Encoding)
	if err != nil {
		return nil, err
	}
	text := encoding.encodeText(payload)

	plan, err := Plan(len(text), encoding, options.Bounds)
	if err != nil {
		return nil, err
	}

	chunks := plan.chunks(text)
	frames := make([]string, len(chunks))
	for index, chunk := range chunks {
		header, err := EncodeHeader(encoding, fileType, plan.PartCount, index)
		if err != nil {
			return nil, err
		}
		frames[index] = header + chunk
	}

	return &EncodeResult{
		Frames:    frames,
		Encoding:  encoding,
		FileType:  fileType,
		Version:   plan.Version,
		PartCount: plan.PartCount,
	}, nil
}

// EncodePSBT encodes a PSBT regardless of what detection would say.
func EncodePSBT(psbt []byte, options EncodeOptions) (*EncodeResult, error) {
	options.FileType = FilePSBT
	return Encode(psbt, options)
}

// EncodeTransaction encodes a raw transaction regardless of what
// detection would say.
func EncodeTransaction(transaction []byte, options EncodeOptions) (*EncodeResult, error) {
	options.FileType = FileTransaction
	return Encode(transaction, options)
}

// selectEncoding resolves the requested encoding to a wire encoding and
// the bytes to render under it. Compression is used only when it makes
// the payload strictly smaller; any compressor failure falls back to
// base32 as well.
func selectEncoding(data []byte, requested Encoding) (Encoding, []byte, error) {
	switch requested {
	case EncodingHex, EncodingBase32:
		return requested, data, nil

	case EncodingAuto, EncodingCompressed:
		// errIncompressible is the common case here; a compressor
		// error is handled the same way.
		compressed, err := compress(data)
		if err != nil {
			return EncodingBase32, data, nil
		}
		return EncodingCompressed, compressed, nil

	default:
		return 0, nil, fmt.Errorf("%w: %q", ErrInvalidEncoding, byte(requested))
	}
}
