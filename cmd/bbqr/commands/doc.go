// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the bbqr command tree.
//
// Every command reads its input from a trailing file argument or stdin,
// writes results to stdout, and logs to stderr. [Root] takes an
// [Environment] so tests can run the whole tree against in-memory
// streams.
package commands
