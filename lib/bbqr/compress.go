// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bbqr

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// compressionWindow is the deflate window size in bytes (wbits=10).
// Hardware signers inflate BBQr payloads with a 1 KiB window, so no
// back-reference may reach further than this.
const compressionWindow = 1 << 10

// maxInflatedSize caps decompression output. The largest legal transfer
// is 1295 version-40 frames, a little over 2 MiB of deflate stream; a
// payload inflating past this limit is treated as hostile.
const maxInflatedSize = 64 << 20

// errIncompressible is returned by compress when the deflated form is
// not strictly smaller than the input. The encoder falls back to
// EncodingBase32.
var errIncompressible = errors.New("bbqr: payload is incompressible")

// compress deflates data with no zlib framing and a 1 KiB window.
// klauspost's custom-window writer is a level-5-class encoder, not
// level 9: no stronger mode honors a window this small. Its output is
// deterministic for a given input.
func compress(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := flate.NewWriterWindow(&buffer, compressionWindow)
	if err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}
	if buffer.Len() >= len(data) {
		return nil, errIncompressible
	}
	return buffer.Bytes(), nil
}

// decompress inflates a raw deflate stream.
func decompress(compressed []byte) ([]byte, error) {
	reader := flate.NewReader(bytes.NewReader(compressed))
	defer reader.Close()

	inflated, err := io.ReadAll(io.LimitReader(reader, maxInflatedSize+1))
	if err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	if len(inflated) > maxInflatedSize {
		return nil, fmt.Errorf("inflate: output exceeds %d bytes", maxInflatedSize)
	}
	return inflated, nil
}
