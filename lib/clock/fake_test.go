// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	clock.Advance(5 * time.Second)
	want := epoch.Add(5 * time.Second)
	if got := clock.Now(); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeClockNewTicker(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	// No tick yet.
	select {
	case <-ticker.C:
		t.Fatal("ticker fired before first interval")
	default:
	}

	// Half an interval is not enough.
	clock.Advance(250 * time.Millisecond)
	select {
	case <-ticker.C:
		t.Fatal("ticker fired before its deadline")
	default:
	}

	clock.Advance(250 * time.Millisecond)
	select {
	case tick := <-ticker.C:
		if want := epoch.Add(500 * time.Millisecond); !tick.Equal(want) {
			t.Errorf("tick time = %v, want %v", tick, want)
		}
	default:
		t.Fatal("ticker did not fire after first interval")
	}

	clock.Advance(500 * time.Millisecond)
	select {
	case <-ticker.C:
	default:
		t.Fatal("ticker did not fire after second interval")
	}
}

func TestFakeClockTickerStop(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(1 * time.Second)

	ticker.Stop()
	clock.Advance(5 * time.Second)

	select {
	case <-ticker.C:
		t.Fatal("ticker fired after Stop()")
	default:
	}
	if got := clock.ActiveTickers(); got != 0 {
		t.Errorf("ActiveTickers() after Stop = %d, want 0", got)
	}
}

func TestFakeClockTickerPanicsOnNonPositive(t *testing.T) {
	clock := Fake(epoch)
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("NewTicker(0) should panic")
		}
	}()
	clock.NewTicker(0)
}

func TestFakeClockTickerDropsTicks(t *testing.T) {
	clock := Fake(epoch)
	ticker := clock.NewTicker(1 * time.Second)
	defer ticker.Stop()

	// Advance past multiple intervals without reading from C.
	// Channel buffer is 1, so at most 1 tick is buffered.
	clock.Advance(5 * time.Second)

	select {
	case <-ticker.C:
	default:
		t.Fatal("expected one buffered tick")
	}

	// No more ticks buffered (the rest were dropped).
	select {
	case <-ticker.C:
		t.Fatal("expected no more ticks (should have been dropped)")
	default:
	}

	// The schedule is not shifted by dropped ticks.
	clock.Advance(1 * time.Second)
	select {
	case tick := <-ticker.C:
		if want := epoch.Add(6 * time.Second); !tick.Equal(want) {
			t.Errorf("tick time = %v, want %v", tick, want)
		}
	default:
		t.Fatal("ticker did not resume after dropping ticks")
	}
}

func TestFakeClockWaitForTickers(t *testing.T) {
	clock := Fake(epoch)
	ready := make(chan *Ticker)
	go func() {
		ready <- clock.NewTicker(time.Second)
	}()

	clock.WaitForTickers(1)
	ticker := <-ready
	defer ticker.Stop()

	clock.Advance(time.Second)
	select {
	case <-ticker.C:
	default:
		t.Fatal("ticker registered by another goroutine did not fire")
	}
}

func TestFakeClockImplementsClock(t *testing.T) {
	// Compile-time check that *FakeClock satisfies Clock.
	var _ Clock = (*FakeClock)(nil)
}

func TestRealClockImplementsClock(t *testing.T) {
	var _ Clock = Real()
}

func TestFakeClockConcurrentAccess(t *testing.T) {
	clock := Fake(epoch)
	const goroutines = 10

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			ticker := clock.NewTicker(time.Second)
			clock.Now()
			ticker.Stop()
		}()
	}
	clock.Advance(time.Second)
	wg.Wait()

	if got := clock.ActiveTickers(); got != 0 {
		t.Errorf("ActiveTickers() = %d, want 0", got)
	}
}
