// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/cli"
	"github.com/BlueWallet/BlueWallet-sub014/lib/bbqr"
	"github.com/BlueWallet/BlueWallet-sub014/lib/binhash"
	"github.com/BlueWallet/BlueWallet-sub014/lib/codec"
)

type inspectParams struct {
	globalParams
}

func inspectCommand(env *Environment) *cli.Command {
	var params inspectParams

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show frame headers and check the payload",
		Description: `Print the header of every frame, one row per line of input, without
requiring the set to be complete.

When every frame parses, inspect also tries a full decode and reports
the payload size and digest, or which parts are missing. CBOR payloads
are checked for well-formedness.

Exits non-zero when any frame is malformed or the set does not decode.`,
		Usage: "bbqr inspect [flags] [file]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
		},
		Run: func(args []string) error {
			s, err := params.open(env, "inspect")
			if err != nil {
				return err
			}
			frames, err := readFrames(env, args)
			if err != nil {
				return err
			}
			return runInspect(s, frames)
		},
	}
}

func runInspect(s *session, frames []string) error {
	out := s.env.Stdout
	table := tabwriter.NewWriter(out, 2, 0, 2, ' ', 0)
	fmt.Fprintln(table, "INDEX\tCOUNT\tENCODING\tTYPE\tCHARS")

	failed := false
	for line, frame := range frames {
		header, err := bbqr.ParseHeader(frame)
		if err != nil {
			failed = true
			fmt.Fprintf(table, "-\t-\t-\t-\t-\tline %d: %v\n", line+1, err)
			continue
		}
		formatHeaderRow(table, header, len(frame))
	}
	if err := table.Flush(); err != nil {
		return cli.Internal("writing table: %w", err)
	}
	if failed {
		return &cli.ExitError{Code: 2}
	}

	payload, err := bbqr.Decode(frames)
	if err != nil {
		fmt.Fprintf(out, "\npayload: %v\n", err)
		return &cli.ExitError{Code: cli.ExitCode(classifyDecodeError(err))}
	}

	fmt.Fprintf(out, "\npayload: %d bytes %s, digest %s\n",
		len(payload.Data), payload.FileType, binhash.HashBytes(payload.Data))
	if payload.FileType == bbqr.FileCBOR {
		if err := codec.Wellformed(payload.Data); err != nil {
			fmt.Fprintf(out, "cbor: malformed: %v\n", err)
			return &cli.ExitError{Code: 2}
		}
		fmt.Fprintln(out, "cbor: well-formed")
	}
	return nil
}
