// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable ticker source so that animated
// QR playback can be tested without waiting on the wall clock.
//
// Code that cycles frames on an interval takes a [Clock] instead of
// calling time.NewTicker. In production, [Real] provides the standard
// library behavior. In tests, [Fake] provides a clock that advances
// only when [FakeClock.Advance] is called.
//
// # FakeClock Synchronization
//
// A goroutine that calls NewTicker on a FakeClock registers a pending
// ticker. Use [FakeClock.WaitForTickers] to block until the expected
// number are registered before calling Advance. This removes the race
// between ticker creation and time advancement:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	go animate.Player{Clock: c}.Play(ctx, sequence, show)
//	c.WaitForTickers(1)
//	c.Advance(500 * time.Millisecond) // exactly one tick
package clock
