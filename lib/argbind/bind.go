// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argbind

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/dcli/lib/clischema"
)

// Separator ends binding when it appears as a token on its own.
const Separator = "--"

// Bind matches tokens against the argument declarations of node and
// returns the bound values. node is normally the node reached by
// [clischema.Walk] and tokens its Remaining slice. tokens is not
// modified.
func Bind(node *clischema.Node, tokens []string) (*Result, error) {
	b := &binder{
		node:        node,
		options:     newFlagSet(node, false),
		positionals: newFlagSet(node, true),
	}
	for _, arg := range node.Args() {
		if arg.Positional() {
			b.slots = append(b.slots, arg)
		}
	}

	remaining, err := b.scan(tokens)
	if err != nil {
		return nil, err
	}
	if err := b.checkRequired(); err != nil {
		return nil, err
	}
	return &Result{
		Command:   node.Command(),
		Values:    b.values(),
		Remaining: remaining,
	}, nil
}

type binder struct {
	node        *clischema.Node
	options     *pflag.FlagSet
	positionals *pflag.FlagSet

	// slots are the positional declarations in order; next indexes
	// the first one not yet filled.
	slots []*clischema.Arg
	next  int
}

// scan walks tokens left to right and returns the unbound tail.
func (b *binder) scan(tokens []string) ([]string, error) {
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		switch {
		case token == Separator:
			return slices.Clone(tokens[i+1:]), nil

		case strings.HasPrefix(token, "--"):
			consumed, err := b.option(token, tokens[i+1:])
			if err != nil {
				return nil, err
			}
			i += consumed

		default:
			if b.next == len(b.slots) {
				return slices.Clone(tokens[i:]), nil
			}
			slot := b.slots[b.next]
			b.next++
			if slot.Type() == clischema.Text {
				for _, word := range tokens[i:] {
					if err := b.set(b.positionals, slot, word); err != nil {
						return nil, err
					}
				}
				return []string{}, nil
			}
			if err := b.set(b.positionals, slot, token); err != nil {
				return nil, err
			}
		}
	}
	return []string{}, nil
}

// option handles one "--name" or "--name=value" token. rest is the
// input after token; the return value is how many of those tokens were
// consumed as the option's value.
func (b *binder) option(token string, rest []string) (int, error) {
	name, value, hasValue := strings.Cut(strings.TrimPrefix(token, "--"), "=")
	arg := b.node.Arg(name)
	if arg == nil || arg.Positional() {
		return 0, b.unknownOption(token, name)
	}

	if arg.Type() == clischema.Flag {
		if hasValue {
			return 0, &ArgParseError{
				Node:   b.node,
				Arg:    name,
				Token:  token,
				Reason: fmt.Sprintf("ignored explicit argument '%s'", value),
			}
		}
		return 0, b.set(b.options, arg, "true")
	}

	if hasValue {
		return 0, b.set(b.options, arg, value)
	}
	if len(rest) == 0 || strings.HasPrefix(rest[0], "--") {
		return 0, &ArgParseError{
			Node:   b.node,
			Arg:    name,
			Token:  token,
			Reason: "expected one argument",
		}
	}
	return 1, b.set(b.options, arg, rest[0])
}

// set parses token into arg's storage and checks enum membership.
func (b *binder) set(flagSet *pflag.FlagSet, arg *clischema.Arg, token string) error {
	if err := flagSet.Set(arg.Name(), token); err != nil {
		return &ArgParseError{
			Node:   b.node,
			Arg:    arg.Name(),
			Token:  token,
			Reason: fmt.Sprintf("invalid %s value: '%s'", arg.Type(), token),
			Err:    err,
		}
	}

	switch arg.Type() {
	case clischema.String, clischema.Integer, clischema.Float:
		if !arg.Allows(typedValue(flagSet, arg)) {
			return &ArgParseError{
				Node:   b.node,
				Arg:    arg.Name(),
				Token:  token,
				Reason: fmt.Sprintf("invalid choice: '%s' (choose from %s)", token, quoteList(arg.Enum())),
			}
		}
	case clischema.Flag, clischema.Text:
	}
	return nil
}

func (b *binder) unknownOption(token, name string) error {
	reason := fmt.Sprintf("unrecognized option '%s'", token)
	if suggestion := b.suggestOption(name); suggestion != "" {
		reason += fmt.Sprintf(" (did you mean --%s?)", suggestion)
	}
	return &ArgParseError{Node: b.node, Token: token, Reason: reason}
}

func (b *binder) suggestOption(name string) string {
	var options []string
	for _, arg := range b.node.Args() {
		if !arg.Positional() {
			options = append(options, arg.Name())
		}
	}
	return Closest(name, options)
}

func (b *binder) checkRequired() error {
	var missing []string
	for _, slot := range b.slots[b.next:] {
		if slot.Required() {
			missing = append(missing, slot.Name())
		}
	}
	switch len(missing) {
	case 0:
		return nil
	case 1:
		return &ArgParseError{Node: b.node, Arg: missing[0], Reason: "missing required argument"}
	default:
		return &ArgParseError{
			Node:   b.node,
			Reason: "missing required arguments: " + strings.Join(missing, ", "),
		}
	}
}

// values assembles the result map: one entry per declaration.
func (b *binder) values() map[string]any {
	args := b.node.Args()
	values := make(map[string]any, len(args))
	for _, arg := range args {
		flagSet := b.options
		if arg.Positional() {
			flagSet = b.positionals
		}
		if flagSet.Changed(arg.Name()) {
			values[arg.Name()] = typedValue(flagSet, arg)
			continue
		}
		if value, ok := arg.Default(); ok {
			values[arg.Name()] = value
			continue
		}
		switch arg.Type() {
		case clischema.Flag:
			values[arg.Name()] = false
		case clischema.Text:
			values[arg.Name()] = []string{}
		case clischema.String, clischema.Integer, clischema.Float:
			values[arg.Name()] = nil
		}
	}
	return values
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, value := range values {
		quoted[i] = "'" + value + "'"
	}
	return strings.Join(quoted, ", ")
}
