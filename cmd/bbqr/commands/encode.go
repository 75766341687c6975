// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"

	"github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/cli"
	"github.com/BlueWallet/BlueWallet-sub014/lib/bbqr"
	"github.com/BlueWallet/BlueWallet-sub014/lib/binhash"
	"github.com/BlueWallet/BlueWallet-sub014/lib/preference"
)

type encodeParams struct {
	globalParams
	Type             string `flag:"type,t" desc:"file type letter or name: psbt, transaction, json, cbor, unicode, binary (default: detect)"`
	Encoding         string `flag:"encoding,e" desc:"auto, hex, base32, or compressed (default from config)"`
	MinVersion       int    `flag:"min-version" desc:"smallest QR version to use (default from config)"`
	MaxVersion       int    `flag:"max-version" desc:"largest QR version to use (default from config)"`
	MinSplit         int    `flag:"min-split" desc:"fewest parts to produce (default from config)"`
	MaxSplit         int    `flag:"max-split" desc:"most parts to produce (default from config)"`
	FragmentCapacity int    `flag:"fragment-capacity" desc:"payload bytes per animated part; raises --min-split (default from config, -1 disables)"`
	Wallet           string `flag:"wallet,w" desc:"wallet ID whose stored protocol preference applies"`
	Protocol         string `flag:"protocol" desc:"auto, bbqr, or urv2 (default from config)"`
	Hex              bool   `flag:"hex,x" desc:"input is hex text; whitespace is ignored"`
	Text             bool   `flag:"text" desc:"input is text; an even-length hex string is decoded to bytes"`
}

func encodeCommand(env *Environment) *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    "encode",
		Summary: "Split a payload into BBQr frames",
		Description: `Split a payload into BBQr frames, one per line on stdout.

The file type is detected from the content unless --type is given: PSBT
magic, then a version-1 or version-2 transaction, then JSON, otherwise
binary. The default encoding compresses the payload and falls back to
base32 when compression does not make it smaller.

The planner picks the fewest parts, then the smallest QR version, that
the version and split limits allow. --fragment-capacity raises the
minimum split so each animated part carries at most that many payload
bytes; if that floor cannot be met, the floor is dropped.

With --wallet, the wallet's stored protocol preference is consulted. A
wallet that prefers UR is refused, since only BBQr output is produced.
Passing --protocol bbqr together with --wallet records that the wallet
needs BBQr.`,
		Usage: "bbqr encode [flags] [file]",
		Examples: []cli.Example{
			{Description: "Encode a PSBT file", Command: "bbqr encode unsigned.psbt"},
			{Description: "Encode hex from stdin as uncompressed hex frames", Command: "echo 70736274ff01... | bbqr encode --hex --encoding hex"},
			{Description: "Remember that a wallet needs BBQr", Command: "bbqr encode --wallet coldcard --protocol bbqr tx.psbt"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("encode", &params)
		},
		Run: func(args []string) error {
			s, err := params.open(env, "encode")
			if err != nil {
				return err
			}
			return runEncode(s, &params, args)
		},
	}
}

func runEncode(s *session, params *encodeParams, args []string) error {
	data, err := readInput(s.env, args)
	if err != nil {
		return err
	}
	switch {
	case params.Hex && params.Text:
		return cli.Validation("--hex and --text are mutually exclusive")
	case params.Hex:
		if data, err = decodeHexInput(data); err != nil {
			return cli.Validation("%w", err)
		}
	case params.Text:
		data = bbqr.NormalizeInput(strings.TrimSpace(string(data)))
	}

	if err := checkProtocol(s, params); err != nil {
		return err
	}

	options, err := encodeOptions(s, params)
	if err != nil {
		return err
	}

	bounds := options.Bounds
	capacity := s.config.Display.FragmentCapacity
	if params.FragmentCapacity != 0 {
		capacity = params.FragmentCapacity
	}
	if capacity > 0 {
		floor := bbqr.FragmentBounds(len(data), capacity).MinSplit
		if floor > options.Bounds.MinSplit {
			options.Bounds.MinSplit = min(floor, options.Bounds.MaxSplit)
		}
	}

	result, err := bbqr.Encode(data, options)
	if errors.Is(err, bbqr.ErrNoFeasibleSplit) && options.Bounds != bounds {
		s.logger.Debug("fragment floor infeasible, retrying without it",
			"min_split", options.Bounds.MinSplit)
		options.Bounds = bounds
		result, err = bbqr.Encode(data, options)
	}
	if err != nil {
		if errors.Is(err, bbqr.ErrNoFeasibleSplit) {
			return cli.Validation("%w", err).
				WithHint("Raise --max-version or --max-split, or lower --min-split.")
		}
		return cli.Validation("%w", err)
	}

	for _, frame := range result.Frames {
		if _, err := fmt.Fprintln(s.env.Stdout, frame); err != nil {
			return cli.Internal("writing frames: %w", err)
		}
	}

	s.logger.Info("encoded",
		"bytes", len(data),
		"file_type", result.FileType.String(),
		"encoding", result.Encoding.String(),
		"version", result.Version,
		"parts", result.PartCount,
		slog.String("digest", binhash.FormatDigest(binhash.HashBytes(data))),
	)
	return nil
}

// encodeOptions merges flags over config.
func encodeOptions(s *session, params *encodeParams) (bbqr.EncodeOptions, error) {
	var options bbqr.EncodeOptions

	if params.Type != "" {
		fileType, err := bbqr.ParseFileType(params.Type)
		if err != nil {
			return options, cli.Validation("--type: %w", err)
		}
		options.FileType = fileType
	}

	encodingName := s.config.Encode.Encoding
	if params.Encoding != "" {
		encodingName = params.Encoding
	}
	encoding, err := bbqr.ParseEncodingName(encodingName)
	if err != nil {
		return options, cli.Validation("--encoding: %w", err)
	}
	options.Encoding = encoding

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
	if err := bounds.Validate(); err != nil {
		return options, cli.Validation("%w", err)
	}
	options.Bounds = bounds.WithDefaults()
	return options, nil
}

// checkProtocol applies the per-wallet protocol preference. Without a
// wallet or an explicit protocol there is nothing to resolve.
func checkProtocol(s *session, params *encodeParams) error {
	protocolName := s.config.Preference.Protocol
	if params.Protocol != "" {
		protocolName = params.Protocol
	}
	protocol, err := preference.ParseProtocol(protocolName)
	if err != nil {
		return cli.Validation("--protocol: %w", err)
	}
	if params.Wallet == "" && protocol == preference.ProtocolAuto {
		return nil
	}

	preferences := s.preferences()
	resolved, err := preferences.Resolve(s.env.Context, params.Wallet, protocol)
	if err != nil {
		return cli.Internal("%w", err)
	}
	if resolved != preference.ProtocolBBQR {
		if params.Wallet == "" {
			return cli.Validation("protocol %s is not supported; only BBQr frames can be produced", resolved)
		}
		return cli.Validation("wallet %q uses %s; only BBQr frames can be produced", params.Wallet, resolved).
			WithHint("Pass --protocol bbqr to switch this wallet to BBQr.")
	}

	if protocol == preference.ProtocolBBQR && params.Wallet != "" {
		if err := preferences.RequireBBQR(s.env.Context, params.Wallet); err != nil {
			return cli.Internal("%w", err)
		}
		s.logger.Debug("wallet marked as requiring BBQr", "wallet", params.Wallet)
	}
	return nil
}
