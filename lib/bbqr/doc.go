// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bbqr implements the BBQr multi-part QR transport: splitting
// an arbitrary binary payload into a bounded sequence of QR-safe text
// frames, and reassembling the original bytes from those frames scanned
// in any order, with duplicates, and possibly incomplete.
//
// Every frame starts with an 8-character header:
//
//	B$ Z P 0C 03
//	|  | | |  +-- part index, base36, two digits
//	|  | | +----- total part count, base36, two digits (1..ZZ)
//	|  | +------- file type, one uppercase letter
//	|  +--------- payload encoding: H (hex), 2 (base32), Z (deflate+base32)
//	+------------ fixed prefix
//
// followed by this part's slice of the encoded payload. Every non-final
// slice is a multiple of the encoding's modulus (2 for hex, 8 for the
// base32 encodings) so each part decodes on its own.
//
// The package is organized leaf-first:
//
//   - [CapacityFor] -- alphanumeric capacity of QR versions 5..40 (ECC L)
//   - [Encoding] and [FileType] -- the closed header tag sets
//   - [ParseHeader] and [Header.Encode] -- the 8-character header codec
//   - [Plan] -- the split planner (fewest parts, then smallest version)
//   - [Encode] -- detection, encoding selection, planning, framing
//   - [Decode] -- one-shot reassembly of a batch of frames
//   - [StreamDecoder] -- incremental reassembly for live scanning
//
// All operations are synchronous and allocation-bounded by their input.
// Encode and Decode are safe for concurrent use on separate inputs. A
// StreamDecoder is owned by one scanning session; callers with several
// producers serialize through [StreamDecoder.Collect] or their own lock.
//
// This package has no dependencies on other packages in this module.
package bbqr
