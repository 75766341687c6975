// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Command bbqr splits payloads into BBQr animated QR frames and
// reassembles them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/cli"
	"github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/commands"
	"github.com/BlueWallet/BlueWallet-sub014/lib/clock"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output (like inspect) return an
		// ExitError with the desired exit code. Don't print a redundant
		// "error:" line for those.
		if _, ok := err.(*cli.ExitError); !ok {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(cli.ExitCode(err))
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := &commands.Environment{
		Context: ctx,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Clock:   clock.Real(),
	}
	return commands.Root(env).Execute(os.Args[1:])
}
