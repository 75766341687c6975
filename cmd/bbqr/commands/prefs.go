// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/cli"
	"github.com/BlueWallet/BlueWallet-sub014/lib/preference"
)

func prefsCommand(env *Environment) *cli.Command {
	return &cli.Command{
		Name:    "prefs",
		Aliases: []string{"preferences"},
		Summary: "Manage per-wallet protocol preferences",
		Description: `Manage which wallets must use BBQr for animated QR export.

Preferences are stored in the CBOR file named by preference.state_file
in the config.`,
		Subcommands: []*cli.Command{
			requireBBQRCommand(env),
			showPrefsCommand(env),
			resolveCommand(env),
		},
	}
}

type prefsParams struct {
	globalParams
}

func requireBBQRCommand(env *Environment) *cli.Command {
	var params prefsParams

	return &cli.Command{
		Name:    "require-bbqr",
		Summary: "Mark a wallet as needing BBQr",
		Usage:   "bbqr prefs require-bbqr [flags] <wallet-id>",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("require-bbqr", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("expected exactly one wallet ID, got %d arguments", len(args))
			}
			s, err := params.open(env, "prefs/require-bbqr")
			if err != nil {
				return err
			}
			if err := s.preferences().RequireBBQR(env.Context, args[0]); err != nil {
				return cli.Internal("%w", err)
			}
			s.logger.Info("wallet requires BBQr", "wallet", args[0])
			return nil
		},
	}
}

func showPrefsCommand(env *Environment) *cli.Command {
	var params prefsParams

	return &cli.Command{
		Name:    "show",
		Aliases: []string{"list"},
		Summary: "List wallets that need BBQr",
		Usage:   "bbqr prefs show [flags]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return cli.Validation("unexpected arguments: %v", args)
			}
			s, err := params.open(env, "prefs/show")
			if err != nil {
				return err
			}
			wallets, err := s.preferences().BBQRWallets(env.Context)
			if err != nil {
				return cli.Internal("%w", err)
			}
			for _, wallet := range wallets {
				fmt.Fprintln(env.Stdout, wallet)
			}
			return nil
		},
	}
}

type resolveParams struct {
	globalParams
	Protocol string `flag:"protocol" desc:"auto, bbqr, or urv2 (default from config)"`
}

func resolveCommand(env *Environment) *cli.Command {
	var params resolveParams

	return &cli.Command{
		Name:    "resolve",
		Summary: "Print the protocol a wallet's exports would use",
		Usage:   "bbqr prefs resolve [flags] [wallet-id]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("resolve", &params)
		},
		Run: func(args []string) error {
			if len(args) > 1 {
				return cli.Validation("expected at most one wallet ID, got %d arguments", len(args))
			}
			s, err := params.open(env, "prefs/resolve")
			if err != nil {
				return err
			}

			protocolName := s.config.Preference.Protocol
			if params.Protocol != "" {
				protocolName = params.Protocol
			}
			force, err := preference.ParseProtocol(protocolName)
			if err != nil {
				return cli.Validation("--protocol: %w", err)
			}

			var walletID string
			if len(args) == 1 {
				walletID = args[0]
			}
			protocol, err := s.preferences().Resolve(env.Context, walletID, force)
			if err != nil {
				return cli.Internal("%w", err)
			}
			fmt.Fprintln(env.Stdout, protocol)
			return nil
		},
	}
}
