// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package frontend turns a token list into either a help request or a
// bound command, over one immutable command tree.
//
// Two resolvers share the tree:
//
//   - [Strict] behaves like a conventional command-line program: -h or
//     --help anywhere requests the detailed help page of the deepest
//     node reached.
//   - [Permissive] suits chat bots: "help" as the first word, or "?" or
//     "help" as the last word, requests the one-line usage of the node
//     reached. A "help" anywhere else is an ordinary token.
//
// Resolvers never print. [Run] is the boundary that writes help or
// parse errors and maps the outcome to an exit status.
package frontend
