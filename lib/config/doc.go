// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the bbqr tool.
//
// Configuration comes from a single file named by either the --config
// flag (via [LoadFile]) or the BBQR_CONFIG environment variable (via
// [Load]). With neither, [Default] applies. There is no ~/.config
// discovery and no automatic file search.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No environment
// variable overrides a config value directly.
//
// Key exports:
//
//   - [Config] -- master struct with Encode, Display, Preference, Log
//   - [Default] -- returns a Config that allows every version and split
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [EncodeConfig.Bounds] -- the split planner limits as [bbqr.Bounds]
package config
