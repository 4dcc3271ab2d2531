// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frontend

import (
	"github.com/bureau-foundation/dcli/lib/clischema"
	"github.com/bureau-foundation/dcli/lib/usage"
)

// Permissive is the chat-bot resolver.
//
// Help is decided once, before any keyword matching: a first token of
// "help" or a last token of "?" or "help" requests help, and those
// marker tokens are removed. "help" in any other position is passed
// through like any other word. Option names must still be spelled
// with a leading "--".
type Permissive struct {
	root    *clischema.Node
	program string
}

var _ Resolver = (*Permissive)(nil)

// NewPermissive returns a permissive resolver over root.
func NewPermissive(root *clischema.Node, options Options) *Permissive {
	program := options.Program
	if program == "" {
		program = usage.DefaultBotProgram
	}
	return &Permissive{root: root, program: program}
}

func (p *Permissive) Resolve(tokens []string) (*Outcome, error) {
	rest := tokens
	help := false
	if len(rest) > 0 && rest[0] == "help" {
		help = true
		rest = rest[1:]
	}
	if len(rest) > 0 && (rest[len(rest)-1] == "?" || rest[len(rest)-1] == "help") {
		help = true
		rest = rest[:len(rest)-1]
	}

	walked := clischema.Walk(p.root, rest)
	outcome := &Outcome{
		Help:     help,
		Node:     walked.Node,
		Consumed: walked.Consumed,
		Usage:    p.Usage(walked.Node),
	}
	if help {
		return outcome, nil
	}

	result, err := bindInvocation(walked.Node, walked.Remaining)
	if err != nil {
		return nil, err
	}
	outcome.Result = result
	return outcome, nil
}

// Usage returns the one-line usage for node.
func (p *Permissive) Usage(node *clischema.Node) string {
	return usage.Compact(node, p.program)
}
