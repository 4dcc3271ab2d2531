// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package dispatch runs the handler for a resolved command.
//
// A schema names commands by identifier; a program maps those
// identifiers to Go handlers in a [Table]. [Execute] is the usual
// entry point after resolution: it runs the handler, turns a
// [UserFacingError] into its user message, turns anything else into a
// generic "unexpected error" notice, and records the full error in a
// last-error file for later inspection.
package dispatch
