// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package preference decides which animated-QR protocol to use for a
// wallet and persists the per-wallet choice.
//
// Some hardware signers only read BBQr; most read UR. Once a wallet has
// been seen to need BBQr, every later export for that wallet should use
// it without asking again. [Preferences] keeps that list under a single
// key in a [Store]:
//
//   - [Preferences.Resolve] -- picks the protocol for one export
//   - [Preferences.RequireBBQR] -- remembers that a wallet needs BBQr
//   - [Preferences.RequiresBBQR] -- reports whether a wallet is listed
//
// Two stores are provided: [MemoryStore] for tests and short-lived
// processes, and [FileStore], a single CBOR file rewritten atomically on
// every change.
package preference
