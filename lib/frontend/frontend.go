// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frontend

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/dcli/lib/argbind"
	"github.com/bureau-foundation/dcli/lib/clischema"
	"github.com/bureau-foundation/dcli/lib/usage"
)

// Resolver resolves a token list against a command tree.
type Resolver interface {
	// Resolve walks tokens down the tree and either recognizes a help
	// request or binds the remaining tokens. Malformed input is
	// reported as *argbind.ArgParseError.
	Resolve(tokens []string) (*Outcome, error)

	// Usage renders the help text this resolver shows for node.
	Usage(node *clischema.Node) string
}

// Outcome is a successful resolution.
type Outcome struct {
	// Help is true when the tokens asked for help instead of an
	// invocation. Result is nil in that case.
	Help bool

	// Node is the node the keyword walk reached.
	Node *clischema.Node

	// Consumed are the keyword tokens that selected Node.
	Consumed []string

	// Usage is the rendered help text for Node. Always set, so callers
	// can show it alongside results as well as for help requests.
	Usage string

	// Result is the bound invocation when Help is false.
	Result *argbind.Result
}

// Options configures a resolver.
type Options struct {
	// Program is the name printed at the start of usage lines. Strict
	// resolvers default to the base name of os.Args[0]; permissive
	// resolvers default to "<bot>".
	Program string

	// Style decorates strict help pages. The zero value is plain text.
	Style usage.Style
}

// Kind selects one of the two resolver behaviors.
type Kind int

const (
	// Standard is the strict, conventional command-line behavior.
	Standard Kind = iota

	// Bot is the permissive chat-bot behavior.
	Bot
)

func (k Kind) String() string {
	switch k {
	case Standard:
		return "standard"
	case Bot:
		return "bot"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps "standard" or "bot" to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "standard":
		return Standard, nil
	case "bot":
		return Bot, nil
	default:
		return 0, fmt.Errorf("unknown frontend %q (expected standard or bot)", name)
	}
}

// Set parses name into k. With String and Type it lets a Kind be bound
// directly to a command-line flag.
func (k *Kind) Set(name string) error {
	kind, err := ParseKind(name)
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

func (k *Kind) Type() string { return "frontend" }

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// New returns the resolver for kind over root.
func New(kind Kind, root *clischema.Node, options Options) (Resolver, error) {
	switch kind {
	case Standard:
		return NewStrict(root, options), nil
	case Bot:
		return NewPermissive(root, options), nil
	default:
		return nil, fmt.Errorf("unknown frontend %v", kind)
	}
}

// Run resolves tokens and handles everything a program's entry point
// would otherwise repeat: help is written to stdout with status 0, a
// parse error is written to stderr with the usage of the node where it
// failed and status 2, and any other error is written to stderr with
// status 1. The result is non-nil only for a successful invocation.
func Run(resolver Resolver, tokens []string, stdout, stderr io.Writer) (*argbind.Result, int) {
	outcome, err := resolver.Resolve(tokens)
	if err != nil {
		var parseErr *argbind.ArgParseError
		if errors.As(err, &parseErr) {
			fmt.Fprintln(stderr, "Error parsing the command:", parseErr)
			if parseErr.Node != nil {
				fmt.Fprintln(stderr, strings.TrimRight(resolver.Usage(parseErr.Node), "\n"))
			}
			return nil, 2
		}
		fmt.Fprintln(stderr, "error:", err)
		return nil, 1
	}
	if outcome.Help {
		fmt.Fprintln(stdout, strings.TrimRight(outcome.Usage, "\n"))
		return nil, 0
	}
	return outcome.Result, 0
}

// bindInvocation binds rest to node, first rejecting nodes that only
// route to children.
func bindInvocation(node *clischema.Node, rest []string) (*argbind.Result, error) {
	if node.HasChildren() && !node.Invocable() {
		return nil, commandRequired(node, rest)
	}
	return argbind.Bind(node, rest)
}

func commandRequired(node *clischema.Node, rest []string) error {
	choices := quoteKeywords(node.Keywords())
	if len(rest) == 0 {
		return &argbind.ArgParseError{
			Node:   node,
			Reason: fmt.Sprintf("a command is required (choose from %s)", choices),
		}
	}
	reason := fmt.Sprintf("invalid choice: '%s' (choose from %s)", rest[0], choices)
	if suggestion := argbind.Closest(rest[0], node.Keywords()); suggestion != "" {
		reason += fmt.Sprintf(", did you mean '%s'?", suggestion)
	}
	return &argbind.ArgParseError{Node: node, Token: rest[0], Reason: reason}
}

func quoteKeywords(keywords []string) string {
	quoted := make([]string, len(keywords))
	for i, keyword := range keywords {
		quoted[i] = "'" + keyword + "'"
	}
	return strings.Join(quoted, ", ")
}

func defaultProgram() string {
	if len(os.Args) == 0 {
		return "dcli"
	}
	return filepath.Base(os.Args[0])
}
