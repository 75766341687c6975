// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package animate cycles a multi-part QR transfer for display.
//
// A phone screen shows one frame at a time and advances on a fixed
// interval, wrapping from the last part back to the first, until the
// receiving scanner has seen every part. [Sequence] is the cursor over
// the frames (with manual next and previous for step-through), and
// [Player] drives it from a [clock.Clock].
package animate

import (
	"context"
	"errors"
	"time"

	"github.com/BlueWallet/BlueWallet-sub014/lib/clock"
)

// DefaultInterval is how long each frame stays on screen.
const DefaultInterval = 500 * time.Millisecond

// ErrNoFrames is returned by NewSequence for an empty frame list.
var ErrNoFrames = errors.New("animate: no frames")

// Frame is one displayed part. Index is zero-based.
type Frame struct {
	Index int
	Total int
	Text  string
}

// Sequence is a wrap-around cursor over a transfer's frames. Not safe
// for concurrent use.
type Sequence struct {
	frames []string
	index  int
}

// NewSequence returns a Sequence positioned on the first frame.
func NewSequence(frames []string) (*Sequence, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	return &Sequence{frames: frames}, nil
}

// Len is the number of frames.
func (s *Sequence) Len() int { return len(s.frames) }

// Current returns the frame under the cursor.
func (s *Sequence) Current() Frame {
	return Frame{Index: s.index, Total: len(s.frames), Text: s.frames[s.index]}
}

// Next advances the cursor, wrapping to the first frame after the last.
func (s *Sequence) Next() Frame {
	s.index = (s.index + 1) % len(s.frames)
	return s.Current()
}

// Previous moves the cursor back, wrapping to the last frame before the
// first.
func (s *Sequence) Previous() Frame {
	s.index = (s.index - 1 + len(s.frames)) % len(s.frames)
	return s.Current()
}

// Player shows a Sequence on a fixed interval.
type Player struct {
	// Clock supplies the ticker. Nil means clock.Real().
	Clock clock.Clock

	// Interval between frames. Zero means DefaultInterval.
	Interval time.Duration

	// Loops is how many complete passes to show before Play returns.
	// Zero plays until the context is done.
	Loops int
}

// Play calls show with the current frame immediately and then with the
// next frame on every tick. It returns nil after Loops complete passes,
// ctx.Err() on cancellation, or the first error from show.
func (p Player) Play(ctx context.Context, sequence *Sequence, show func(Frame) error) error {
	source := p.Clock
	if source == nil {
		source = clock.Real()
	}
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	remaining := p.Loops * sequence.Len()

	if err := show(sequence.Current()); err != nil {
		return err
	}
	if p.Loops > 0 {
		remaining--
		if remaining == 0 {
			return nil
		}
	}

	ticker := source.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := show(sequence.Next()); err != nil {
			return err
		}
		if p.Loops > 0 {
			remaining--
			if remaining == 0 {
				return nil
			}
		}
	}
}
