// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the module's standard CBOR configuration.
//
// CBOR shows up in two places:
//
//   - the on-disk wallet preference store (lib/preference), where the
//     same preferences must always produce identical file bytes;
//   - BBQr transfers with file type 'C', whose payload is CBOR that the
//     CLI validates and renders in diagnostic notation.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//	err = codec.Wellformed(payload)
//	notation, err := codec.Diagnose(payload)
//
// Struct types serialized here use `cbor` tags.
package codec
