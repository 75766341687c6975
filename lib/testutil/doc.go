// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for this module's
// packages.
//
// [Shuffled] returns a seeded Fisher-Yates permutation of a slice, and
// [RandomBytes] a seeded pseudo-random buffer. Frame-reordering and
// round-trip tests use both so that a failure reproduces exactly from
// the seed printed in the test name.
//
// [RequireReceive] and [RequireSend] encapsulate the timeout safety
// valve pattern (select with time.After fallback) for tests that drive
// channel-based consumers such as a scan collector.
//
// [UniqueID] generates monotonically increasing identifiers for test
// disambiguation, for example wallet IDs in a shared preference store.
//
// The channel helpers call t.Fatalf on failure rather than returning
// errors, since test setup failures are not recoverable.
//
// This package has no dependencies on other packages in this module.
package testutil
