// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bbqr

import (
	"encoding/base64"
	"encoding/hex"
)

// NormalizeInput converts text handed in by a wallet screen into
// payload bytes: an even-length hex string is decoded, anything else is
// taken as UTF-8 text.
func NormalizeInput(text string) []byte {
	if len(text) > 0 && len(text)%2 == 0 {
		if data, err := hex.DecodeString(text); err == nil {
			return data
		}
	}
	return []byte(text)
}

// FragmentBounds returns default bounds whose MinSplit keeps each frame
// near bytesPerFragment bytes of payload. Animated displays cycle
// through small codes faster than a scanner can lose focus on one large
// code. A non-positive bytesPerFragment leaves the defaults unchanged.
func FragmentBounds(payloadLength, bytesPerFragment int) Bounds {
	bounds := DefaultBounds()
	if bytesPerFragment <= 0 {
		return bounds
	}
	minSplit := (payloadLength + bytesPerFragment - 1) / bytesPerFragment
	bounds.MinSplit = min(max(1, minSplit), MaxParts)
	return bounds
}

// DisplayString renders a payload the way a wallet consumes it: PSBTs
// as base64 (the form PSBT importers expect), everything else as text.
func (p *Payload) DisplayString() string {
	if p.FileType == FilePSBT {
		return base64.StdEncoding.EncodeToString(p.Data)
	}
	return string(p.Data)
}
