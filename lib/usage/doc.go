// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package usage renders help text for a node of a command tree.
//
// [Compact] is the one-line convention used by the permissive (chat
// bot) front end:
//
//	<bot> venv [create | remove]
//	<bot> deploy [env ...] [replicas ...] [dry-run] [message ...]
//
// [Detailed] is the multi-section help page printed by the strict
// front end, in the same layout the dcli tool uses for its own
// commands.
package usage
