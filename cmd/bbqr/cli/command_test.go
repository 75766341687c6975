// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "bbqr",
		Subcommands: []*Command{
			{
				Name: "encode",
				Run: func(args []string) error {
					called = "encode"
					return nil
				},
			},
			{
				Name: "decode",
				Run: func(args []string) error {
					called = "decode"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"decode"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "decode" {
		t.Errorf("dispatched to %q, want %q", called, "decode")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "bbqr",
		Subcommands: []*Command{
			{
				Name: "prefs",
				Subcommands: []*Command{
					{
						Name: "require-bbqr",
						Run: func(args []string) error {
							called = "prefs require-bbqr"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"prefs", "require-bbqr", "coldcard"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "prefs require-bbqr" {
		t.Errorf("dispatched to %q, want %q", called, "prefs require-bbqr")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "coldcard" {
		t.Errorf("args = %v, want [coldcard]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var encoding string
	var input string

	command := &Command{
		Name: "encode",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("encode", pflag.ContinueOnError)
			flagSet.StringVar(&encoding, "encoding", "auto", "encoding")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				input = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--encoding", "hex", "payload.psbt"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if encoding != "hex" {
		t.Errorf("encoding = %q, want %q", encoding, "hex")
	}
	if input != "payload.psbt" {
		t.Errorf("input = %q, want %q", input, "payload.psbt")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "decode",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flagSet.Bool("display", false, "display mode")
			flagSet.String("output", "", "output file")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--dispaly"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --display?") {
		t.Errorf("error = %q, want suggestion for --display", err.Error())
	}

	var toolErr *ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != CategoryValidation {
		t.Errorf("unknown flag should be a validation error, got %v", err)
	}
}

func TestCommand_Execute_UnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "bbqr",
		Subcommands: []*Command{
			{Name: "encode", Run: func(args []string) error { return nil }},
			{Name: "inspect", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute([]string{"encdoe"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "encode"?`) {
		t.Errorf("error = %q, want suggestion for encode", err.Error())
	}
	if !strings.Contains(err.Error(), "Run 'bbqr --help' for usage.") {
		t.Errorf("error = %q, want help hint", err.Error())
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:       "bbqr",
		HelpOutput: &help,
		Subcommands: []*Command{
			{Name: "plan", Summary: "Preview a split", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute(nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Fatalf("Execute() error = %v, want subcommand required", err)
	}
	if !strings.Contains(help.String(), "Preview a split") {
		t.Errorf("help output missing subcommand summary:\n%s", help.String())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	var help bytes.Buffer
	ran := false
	root := &Command{
		Name:       "bbqr",
		HelpOutput: &help,
		Subcommands: []*Command{
			{
				Name:        "plan",
				Description: "Print the split a payload would get.",
				Examples: []Example{
					{Description: "Plan a 10 KB PSBT", Command: "bbqr plan --length 10000"},
				},
				Flags: func() *pflag.FlagSet {
					flagSet := pflag.NewFlagSet("plan", pflag.ContinueOnError)
					flagSet.Int("length", 0, "payload bytes")
					return flagSet
				},
				Run: func(args []string) error {
					ran = true
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"plan", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if ran {
		t.Error("Run should not be called for --help")
	}

	output := help.String()
	for _, want := range []string{
		"Print the split a payload would get.",
		"Usage:\n  bbqr plan [flags]",
		"--length",
		"# Plan a 10 KB PSBT",
		"bbqr plan --length 10000",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_Execute_RunFallbackForUnknownSubcommand(t *testing.T) {
	var receivedArgs []string
	command := &Command{
		Name: "prefs",
		Subcommands: []*Command{
			{Name: "show", Run: func(args []string) error { return nil }},
		},
		Run: func(args []string) error {
			receivedArgs = args
			return nil
		},
	}

	if err := command.Execute([]string{"other"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "other" {
		t.Errorf("Run args = %v, want [other]", receivedArgs)
	}
}

func TestCommand_Execute_Aliases(t *testing.T) {
	var help bytes.Buffer
	var called string
	root := &Command{
		Name:       "bbqr",
		HelpOutput: &help,
		Subcommands: []*Command{
			{
				Name:    "prefs",
				Aliases: []string{"preferences"},
				Summary: "Manage preferences",
				Run: func(args []string) error {
					called = "prefs"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"preferences"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "prefs" {
		t.Errorf("alias dispatched to %q, want prefs", called)
	}

	if err := root.Execute([]string{"--help"}); err != nil {
		t.Fatalf("Execute(--help) error: %v", err)
	}
	if !strings.Contains(help.String(), "(alias: preferences)") {
		t.Errorf("help should list aliases:\n%s", help.String())
	}
}

func TestCommand_Execute_HelpAfterFlags(t *testing.T) {
	var help bytes.Buffer
	ran := false
	command := &Command{
		Name:       "encode",
		HelpOutput: &help,
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("encode", pflag.ContinueOnError)
			flagSet.Bool("hex", false, "input is hex")
			return flagSet
		},
		Run: func(args []string) error {
			ran = true
			return nil
		},
	}

	if err := command.Execute([]string{"--hex", "--help"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if ran {
		t.Error("Run should not be called for --help")
	}
	if !strings.Contains(help.String(), "--hex") {
		t.Errorf("help output missing flags:\n%s", help.String())
	}
}
