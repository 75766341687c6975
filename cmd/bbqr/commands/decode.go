// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/spf13/pflag"

	"github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/cli"
	"github.com/BlueWallet/BlueWallet-sub014/lib/bbqr"
)

type decodeParams struct {
	globalParams
	payloadParams
}

func decodeCommand(env *Environment) *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Reassemble a complete set of frames",
		Description: `Reassemble a payload from BBQr frames, one per line, in any order.

Every part must be present. Exact duplicates are ignored; two different
frames for the same part, or frames that disagree on encoding, file type
or part count, are an error. Use "bbqr scan" to report progress on a
partial set instead.

The payload digest (BLAKE3) is logged so it can be compared with the one
logged by encode.`,
		Usage: "bbqr decode [flags] [file]",
		Examples: []cli.Example{
			{Description: "Decode frames to a file", Command: "bbqr decode --output signed.psbt frames.txt"},
			{Description: "Show a PSBT as base64", Command: "bbqr decode --display < frames.txt"},
			{Description: "Inspect a CBOR payload", Command: "bbqr decode --diag frames.txt"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decode", &params)
		},
		Run: func(args []string) error {
			if err := params.payloadParams.validate(); err != nil {
				return err
			}
			s, err := params.open(env, "decode")
			if err != nil {
				return err
			}

			frames, err := readFrames(env, args)
			if err != nil {
				return err
			}
			s.logger.Debug("read frames", "count", len(frames))

			payload, err := bbqr.Decode(frames)
			if err != nil {
				return classifyDecodeError(err)
			}
			return params.payloadParams.write(s, payload)
		},
	}
}
