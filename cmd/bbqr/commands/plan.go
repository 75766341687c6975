// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/cli"
	"github.com/BlueWallet/BlueWallet-sub014/lib/bbqr"
)

type planParams struct {
	globalParams
	Length     int    `flag:"length,n" desc:"payload size in bytes (after compression, for --encoding compressed)"`
	Encoding   string `flag:"encoding,e" desc:"hex, base32, or compressed (default from config; auto plans as compressed)"`
	MinVersion int    `flag:"min-version" desc:"smallest QR version to use (default from config)"`
	MaxVersion int    `flag:"max-version" desc:"largest QR version to use (default from config)"`
	MinSplit   int    `flag:"min-split" desc:"fewest parts to produce (default from config)"`
	MaxSplit   int    `flag:"max-split" desc:"most parts to produce (default from config)"`
}

func planCommand(env *Environment) *cli.Command {
	var params planParams

	return &cli.Command{
		Name:    "plan",
		Summary: "Preview how a payload would be split",
		Description: `Print the QR version, part count and characters per part the planner
would choose for a payload of the given size, without encoding anything.`,
		Usage: "bbqr plan --length N [flags]",
		Examples: []cli.Example{
			{Description: "Plan a 10 KB PSBT sent as hex", Command: "bbqr plan --length 10000 --encoding hex"},
			{Description: "Keep every code at version 15 or below", Command: "bbqr plan -n 10000 --max-version 15"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("plan", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected arguments: %v", args)
			}
			if params.Length < 0 {
				return cli.Validation("--length must not be negative")
			}
			s, err := params.open(env, "plan")
			if err != nil {
				return err
			}
			return runPlan(s, &params)
		},
	}
}

func runPlan(s *session, params *planParams) error {
	encodingName := s.config.Encode.Encoding
	if params.Encoding != "" {
		encodingName = params.Encoding
	}
	encoding, err := bbqr.ParseEncodingName(encodingName)
	if err != nil {
		return cli.Validation("--encoding: %w", err)
	}
	if encoding == bbqr.EncodingAuto {
		encoding = bbqr.EncodingCompressed
	}

	bounds := s.config.Encode.Bounds()
	if params.MinVersion != 0 {
		bounds.MinVersion = params.MinVersion
	}
	if params.MaxVersion != 0 {
		bounds.MaxVersion = params.MaxVersion
	}
	if params.MinSplit != 0 {
		bounds.MinSplit = params.MinSplit
	}
	if params.MaxSplit != 0 {
		bounds.MaxSplit = params.MaxSplit
	}

	textLength := encoding.TextLength(params.Length)
	plan, err := bbqr.Plan(textLength, encoding, bounds)
	if err != nil {
		return cli.Validation("%w", err)
	}
	capacity, _ := bbqr.CapacityFor(plan.Version)

	out := s.env.Stdout
	fmt.Fprintf(out, "encoding:       %s\n", encoding)
	fmt.Fprintf(out, "characters:     %d\n", textLength)
	fmt.Fprintf(out, "version:        %d (%dx%d modules)\n", plan.Version, capacity.Size, capacity.Size)
	fmt.Fprintf(out, "parts:          %d\n", plan.PartCount)
	fmt.Fprintf(out, "chars per part: %d\n", plan.CharsPerPart)
	return nil
}
