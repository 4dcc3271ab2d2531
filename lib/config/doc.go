// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the dcli tool.
//
// Configuration is loaded from a single file specified by either the
// DCLI_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no ~/.config discovery and no automatic
// file search. Without either, the tool runs on [Default] values and
// its flags.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. Command-line
// flags override config values; environment variables do not.
//
// Key exports:
//
//   - [Config] -- schema path, program name, front end, error file,
//     log level, color mode, chat history
//   - [Default] -- returns a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other dcli packages.
package config
