// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import "github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/cli"

// Root returns the bbqr command tree.
func Root(env *Environment) *cli.Command {
	return &cli.Command{
		Name:    "bbqr",
		Summary: "Split and reassemble data as BBQr animated QR codes",
		Description: `Split and reassemble data as BBQr animated QR codes.

BBQr carries a payload too large for one QR code (typically a PSBT) as a
numbered sequence of QR strings. Each string starts with an 8-character
header naming the encoding, file type, part count and part index, so a
scanner can collect parts in any order.

Frames are exchanged as text, one per line: encode writes them, and
decode, scan, inspect and animate read them.`,
		HelpOutput: env.Stderr,
		Subcommands: []*cli.Command{
			encodeCommand(env),
			decodeCommand(env),
			scanCommand(env),
			inspectCommand(env),
			animateCommand(env),
			planCommand(env),
			prefsCommand(env),
		},
	}
}
