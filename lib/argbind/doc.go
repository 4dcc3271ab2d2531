// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package argbind binds the tokens left over after a keyword walk to
// the argument declarations of the node the walk reached.
//
// Binding follows a small argparse-like grammar:
//
//   - "--name value" or "--name=value" sets an option; a flag option is
//     a bare "--name".
//   - Any other token fills the next positional slot. A positional text
//     argument takes the token it starts on and everything after it.
//   - "--" on its own ends binding. It is dropped and the tokens after
//     it are returned in [Result.Remaining] for pass-through.
//   - When every positional slot is filled, binding stops at the next
//     non-option token and the rest is returned in Remaining.
//
// Values are coerced to the declared type through a pflag FlagSet, and
// every failure is an [*ArgParseError] naming the node, argument and
// offending token.
package argbind
