// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frontend

import (
	"strings"

	"github.com/bureau-foundation/dcli/lib/argbind"
	"github.com/bureau-foundation/dcli/lib/clischema"
	"github.com/bureau-foundation/dcli/lib/usage"
)

// Strict is the conventional command-line resolver.
//
// A -h or --help token met while keywords are still being matched is
// removed and matching continues, so "venv -h create" shows help for
// "venv create". Once matching stops, a help token before a "--"
// separator also requests help, unless a text argument has already
// started capturing; "test foo -h" passes -h through to the text
// argument. Help always applies to the last node reached.
type Strict struct {
	root    *clischema.Node
	program string
	style   usage.Style
}

var _ Resolver = (*Strict)(nil)

// NewStrict returns a strict resolver over root.
func NewStrict(root *clischema.Node, options Options) *Strict {
	program := options.Program
	if program == "" {
		program = defaultProgram()
	}
	return &Strict{root: root, program: program, style: options.Style}
}

func (s *Strict) Resolve(tokens []string) (*Outcome, error) {
	node := s.root
	var consumed []string
	rest := tokens
	help := false

	for {
		walked := clischema.Walk(node, rest)
		node = walked.Node
		consumed = append(consumed, walked.Consumed...)
		rest = walked.Remaining
		if len(rest) == 0 || !node.HasChildren() || !isHelpFlag(rest[0]) {
			break
		}
		help = true
		rest = rest[1:]
	}

	if !help {
		help = requestsHelp(node, rest)
	}

	outcome := &Outcome{
		Help:     help,
		Node:     node,
		Consumed: consumed,
		Usage:    s.Usage(node),
	}
	if help {
		return outcome, nil
	}

	result, err := bindInvocation(node, rest)
	if err != nil {
		return nil, err
	}
	outcome.Result = result
	return outcome, nil
}

// Usage returns the detailed help page for node.
func (s *Strict) Usage(node *clischema.Node) string {
	return usage.Detailed(node, s.program, s.style)
}

// requestsHelp reports whether a help token appears in the part of
// tokens that binds to node's declarations. The scan follows the
// binder: it ends at a separator and at the token that would fill a
// text argument, and it skips the value token of an option.
func requestsHelp(node *clischema.Node, tokens []string) bool {
	var slots []*clischema.Arg
	for _, arg := range node.Args() {
		if arg.Positional() {
			slots = append(slots, arg)
		}
	}
	filled := 0
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		switch {
		case token == argbind.Separator:
			return false
		case isHelpFlag(token):
			return true
		case strings.HasPrefix(token, "--"):
			name, _, hasValue := strings.Cut(token[2:], "=")
			arg := node.Arg(name)
			if !hasValue && arg != nil && !arg.Positional() && arg.Type() != clischema.Flag {
				i++
			}
		default:
			if filled < len(slots) && slots[filled].Type() == clischema.Text {
				return false
			}
			filled++
		}
	}
	return false
}

func isHelpFlag(token string) bool {
	return token == "-h" || token == "--help"
}
