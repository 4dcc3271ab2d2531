// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package chat is a conversational shell over the permissive resolver.
//
// A [Session] turns one line of text into a reply: the usage line for
// help requests ("deploy ?"), a parse error with usage, or a summary of
// the command the line resolves to. Three front ends drive a session:
//
//   - [Model], a bubbletea program with keyword completion hints.
//   - [RunPrompt], a readline-style prompt with history for terminals
//     where a full-screen program is unwanted.
//   - [RunLines], a plain loop over any reader, for pipes and tests.
package chat
