// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/cli"
	"github.com/BlueWallet/BlueWallet-sub014/lib/animate"
	"github.com/BlueWallet/BlueWallet-sub014/lib/bbqr"
)

// clearScreen homes the cursor and erases the terminal.
const clearScreen = "\x1b[H\x1b[2J"

type animateParams struct {
	globalParams
	Interval time.Duration `flag:"interval,i" desc:"time each frame stays on screen" default:"500ms"`
	Loops    int           `flag:"loops" desc:"complete passes before exiting (0 = until interrupted)"`
	Clear    bool          `flag:"clear" desc:"clear the terminal before each frame and show the part position"`
}

func animateCommand(env *Environment) *cli.Command {
	var params animateParams

	return &cli.Command{
		Name:    "animate",
		Summary: "Cycle through frames for display",
		Description: `Print frames one at a time on a fixed interval, wrapping from the last
part back to the first, the way a wallet screen shows an animated QR
code. Pipe the output into a QR renderer, or use --clear to watch the
sequence in a terminal.

Every line of input must be a BBQr frame. Frames are shown in input
order, so "bbqr encode | bbqr animate" cycles through parts in
sequence. Without --loops the animation runs until interrupted.`,
		Usage: "bbqr animate [flags] [file]",
		Examples: []cli.Example{
			{Description: "Animate an encoded PSBT at the default rate", Command: "bbqr encode tx.psbt | bbqr animate --clear"},
			{Description: "Show every part twice, one per second", Command: "bbqr animate --loops 2 --interval 1s frames.txt"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("animate", &params)
		},
		Run: func(args []string) error {
			if params.Interval <= 0 {
				return cli.Validation("--interval must be positive, got %v", params.Interval)
			}
			if params.Loops < 0 {
				return cli.Validation("--loops must not be negative")
			}
			s, err := params.open(env, "animate")
			if err != nil {
				return err
			}
			frames, err := readFrames(env, args)
			if err != nil {
				return err
			}
			return runAnimate(s, &params, frames)
		},
	}
}

func runAnimate(s *session, params *animateParams, frames []string) error {
	for line, frame := range frames {
		if _, err := bbqr.ParseHeader(frame); err != nil {
			return cli.Validation("line %d: %w", line+1, err)
		}
	}
	sequence, err := animate.NewSequence(frames)
	if err != nil {
		return cli.Validation("%w", err)
	}

	s.logger.Info("animating",
		"parts", sequence.Len(),
		"interval", params.Interval,
		"loops", params.Loops,
	)

	player := animate.Player{
		Clock:    s.env.clock(),
		Interval: params.Interval,
		Loops:    params.Loops,
	}
	out := s.env.Stdout
	err = player.Play(s.env.Context, sequence, func(frame animate.Frame) error {
		s.logger.Debug("frame shown", "index", frame.Index, "total", frame.Total)
		var writeErr error
		if params.Clear {
			_, writeErr = fmt.Fprintf(out, "%s%s\n\n%d of %d\n", clearScreen, frame.Text, frame.Index+1, frame.Total)
		} else {
			_, writeErr = fmt.Fprintln(out, frame.Text)
		}
		return writeErr
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Interrupting an endless animation is how it normally ends.
		s.logger.Info("animation stopped")
		return nil
	default:
		return cli.Internal("writing frame: %w", err)
	}
}
