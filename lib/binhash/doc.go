// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash provides BLAKE3 content digests for BBQr payloads.
//
// A transfer split across dozens of QR codes is only useful if the
// receiver ends up with exactly the bytes the sender had. The CLI
// prints a payload digest on both ends (after encode and after decode
// or scan) so an operator can compare them, and decode can verify a
// digest given on the command line.
//
// The API surface:
//
//   - [HashBytes] -- digest of an in-memory payload
//   - [HashFile] -- streams a file through the hash with constant memory
//   - [FormatDigest] -- canonical lowercase hex form used in logs and
//     CLI output
//   - [ParseDigest] -- parses the hex form back, validating length and
//     encoding
//
// Digests are BLAKE3 keyed hashes under a fixed domain key, so they are
// never confused with plain BLAKE3 sums of the same bytes computed by
// other tools.
//
// This package has no dependencies on other packages in this module.
package binhash
