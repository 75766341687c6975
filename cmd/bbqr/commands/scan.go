// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"strings"

	"github.com/spf13/pflag"

	"github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/cli"
	"github.com/BlueWallet/BlueWallet-sub014/lib/bbqr"
)

type scanParams struct {
	globalParams
	payloadParams
}

func scanCommand(env *Environment) *cli.Command {
	var params scanParams

	return &cli.Command{
		Name:    "scan",
		Summary: "Reassemble frames as they arrive",
		Description: `Read frames line by line, as a scanner would deliver them, and stop as
soon as the transfer is complete.

Lines that are not BBQr frames, or that belong to a different transfer,
are logged and skipped. Progress is logged after every new part. If the
input ends first, the missing part indices are reported.`,
		Usage: "bbqr scan [flags] [file]",
		Examples: []cli.Example{
			{Description: "Decode from a scanner that prints one code per line", Command: "zbarcam --raw | bbqr scan --output tx.psbt"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("scan", &params)
		},
		Run: func(args []string) error {
			if err := params.payloadParams.validate(); err != nil {
				return err
			}
			s, err := params.open(env, "scan")
			if err != nil {
				return err
			}
			return runScan(s, &params, args)
		},
	}
}

func runScan(s *session, params *scanParams, args []string) error {
	input, err := openInput(s.env, args)
	if err != nil {
		return err
	}
	defer input.Close()

	ctx, cancel := context.WithCancel(s.env.Context)
	defer cancel()

	// The reader goroutine is the frame producer and Collect the single
	// consumer. Cancelling ctx releases the producer if Collect returns
	// before the input ends.
	frames := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(frames)
		scanner := newFrameScanner(input)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case frames <- line:
			case <-ctx.Done():
				readErr <- nil
				return
			}
		}
		readErr <- scanner.Err()
	}()

	decoder := bbqr.NewStreamDecoder()
	payload, err := decoder.Collect(ctx, frames, func(event bbqr.ScanEvent) {
		switch {
		case event.Err != nil:
			s.logger.Warn("frame rejected", "error", event.Err)
		case event.Accepted:
			s.logger.Info("part received", "received", event.Received, "total", event.Total)
		default:
			s.logger.Debug("duplicate frame", "received", event.Received, "total", event.Total)
		}
	})
	if err != nil {
		if s.env.Context.Err() != nil {
			return cli.Internal("scan interrupted: %w", err)
		}
		if decoder.Complete() {
			// Every part arrived but the payload text is corrupt.
			return classifyDecodeError(err)
		}
		// The channel closed, so the producer has already reported how
		// its input ended. A read failure explains the gap better than
		// the missing parts do.
		if readFailure := <-readErr; readFailure != nil {
			return cli.Internal("reading frames: %w", readFailure)
		}
		if decoder.State() == bbqr.StreamEmpty {
			return cli.Validation("no BBQr frames in input")
		}
		return classifyDecodeError(err)
	}
	return params.payloadParams.write(s, payload)
}
