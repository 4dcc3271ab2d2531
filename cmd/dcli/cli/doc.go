// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the dcli tool.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in cmd/dcli/commands
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Parameter structs declare flags with struct tags ([FlagsFromParams]),
// embed [JSONOutput] for --json support, and report failures as
// categorized [ToolError] values or as [ExitError] when the command has
// already written its own output.
//
// This framework serves the tool itself. The schemas dcli interprets
// are handled by lib/clischema and the packages built on it.
package cli
