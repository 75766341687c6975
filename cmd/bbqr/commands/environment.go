// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/BlueWallet/BlueWallet-sub014/cmd/bbqr/cli"
	"github.com/BlueWallet/BlueWallet-sub014/lib/clock"
	"github.com/BlueWallet/BlueWallet-sub014/lib/config"
	"github.com/BlueWallet/BlueWallet-sub014/lib/preference"
)

// Environment carries the process context and standard streams into
// commands.
type Environment struct {
	Context context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer

	// Clock paces animated output. Nil means clock.Real().
	Clock clock.Clock
}

func (e *Environment) clock() clock.Clock {
	if e.Clock == nil {
		return clock.Real()
	}
	return e.Clock
}

// globalParams are accepted by every leaf command.
type globalParams struct {
	Config   string `flag:"config" desc:"config file (default: $BBQR_CONFIG, else built-in defaults)"`
	LogLevel string `flag:"log-level" desc:"debug, info, warn, or error (default from config)"`
}

// session is the per-invocation state shared by command handlers.
type session struct {
	env    *Environment
	config *config.Config
	logger *slog.Logger
}

// open loads and validates configuration and builds the logger.
func (g globalParams) open(env *Environment, command string) (*session, error) {
	var cfg *config.Config
	var err error
	if g.Config != "" {
		cfg, err = config.LoadFile(g.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, cli.Validation("loading config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid config: %w", err)
	}

	level, _ := cfg.Log.SlogLevel()
	logger := cli.NewCommandLogger(env.Stderr, level).With("command", command)
	return &session{env: env, config: cfg, logger: logger}, nil
}

// preferences opens the configured preference file.
func (s *session) preferences() *preference.Preferences {
	return preference.New(preference.NewFileStore(s.config.Preference.StateFile))
}
