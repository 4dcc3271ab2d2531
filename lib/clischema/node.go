// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clischema

import (
	"fmt"
	"slices"
	"strings"
)

// Node is one point in a command tree. The root node has no keyword;
// every other node is selected by its keyword during [Walk].
//
// Nodes are created only by [Build] and expose their contents through
// accessors, so a built tree cannot be modified.
type Node struct {
	keyword  string
	help     string
	command  string
	args     []*Arg
	children []*Node
	byName   map[string]*Node
	parent   *Node
}

// Keyword returns the token that selects this node, or "" for the root.
func (n *Node) Keyword() string { return n.keyword }

// Help returns the node's description.
func (n *Node) Help() string { return n.help }

// Command returns the command identifier invoked when resolution stops
// here, or "" when the node only routes to its children.
func (n *Node) Command() string { return n.command }

// Invocable reports whether resolution may terminate at this node.
func (n *Node) Invocable() bool { return n.command != "" }

// IsRoot reports whether n is the root of its tree.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Args returns the argument declarations in declaration order. The
// returned slice is a copy; the declarations themselves are immutable.
func (n *Node) Args() []*Arg { return slices.Clone(n.args) }

// Arg returns the declaration named name, or nil.
func (n *Node) Arg(name string) *Arg {
	for _, arg := range n.args {
		if arg.name == name {
			return arg
		}
	}
	return nil
}

// Children returns the child nodes in declaration order.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// HasChildren reports whether any keyword can follow this node.
func (n *Node) HasChildren() bool { return len(n.children) > 0 }

// Keywords returns the child keywords in declaration order.
func (n *Node) Keywords() []string {
	keywords := make([]string, len(n.children))
	for i, child := range n.children {
		keywords[i] = child.keyword
	}
	return keywords
}

// Child returns the child selected by keyword, or nil. Matching is
// exact and case-sensitive.
func (n *Node) Child(keyword string) *Node {
	return n.byName[keyword]
}

// Find follows a keyword path from n and returns the node it names, or
// nil if any keyword along the way does not match.
func (n *Node) Find(path ...string) *Node {
	node := n
	for _, keyword := range path {
		node = node.Child(keyword)
		if node == nil {
			return nil
		}
	}
	return node
}

// Path returns the keywords leading from the root to n. The root's
// path is empty.
func (n *Node) Path() []string {
	var path []string
	for node := n; node.parent != nil; node = node.parent {
		path = append(path, node.keyword)
	}
	slices.Reverse(path)
	return path
}

// Visit calls fn for n and every descendant in pre-order (a node
// before its children, children in declaration order). A non-nil
// error from fn stops the traversal and is returned.
func (n *Node) Visit(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, child := range n.children {
		if err := child.Visit(fn); err != nil {
			return err
		}
	}
	return nil
}

// Commands returns every distinct command identifier reachable from n,
// in pre-order of first appearance.
func (n *Node) Commands() []string {
	var commands []string
	seen := make(map[string]bool)
	n.Visit(func(node *Node) error {
		if node.command != "" && !seen[node.command] {
			seen[node.command] = true
			commands = append(commands, node.command)
		}
		return nil
	})
	return commands
}

func (n *Node) String() string {
	if n.parent == nil {
		return "<RootNode>"
	}
	return fmt.Sprintf("<SubNode(%s)>", strings.Join(n.Path(), "."))
}

// Raw converts the tree rooted at n back into its source form. Defaults
// are exported as their coerced Go values, so Build(n.Raw()) yields an
// equivalent tree.
func (n *Node) Raw() *RawNode {
	raw := &RawNode{
		Keyword: n.keyword,
		Help:    n.help,
		Command: n.command,
	}
	for _, arg := range n.args {
		raw.Args = append(raw.Args, arg.raw())
	}
	for _, child := range n.children {
		raw.Subtree = append(raw.Subtree, *child.Raw())
	}
	return raw
}

// Arg is one argument declaration on a node.
type Arg struct {
	name         string
	help         string
	command      string
	positional   bool
	argType      ArgType
	enum         []string
	choices      []any
	defaultValue any
	hasDefault   bool
}

// Name returns the argument name. Options are spelled --name.
func (a *Arg) Name() string { return a.name }

// Help returns the argument's description.
func (a *Arg) Help() string { return a.help }

// Command returns the declaration's command override. Schemas carry it
// for uniformity with nodes; nothing in the resolver reads it.
func (a *Arg) Command() string { return a.command }

// Positional reports whether the argument is supplied by position
// rather than as a --name option.
func (a *Arg) Positional() bool { return a.positional }

// Type returns the argument's value type.
func (a *Arg) Type() ArgType { return a.argType }

// Enum returns the accepted values, or nil when any value is accepted.
func (a *Arg) Enum() []string { return slices.Clone(a.enum) }

// Allows reports whether value is acceptable under the enum
// restriction. value has the Go type of the argument (int64, float64
// or string); enum entries are parsed with the same rules as defaults,
// so "1.0" and "1" name the same Float choice. Arguments without an
// enum allow everything.
func (a *Arg) Allows(value any) bool {
	return len(a.enum) == 0 || slices.Contains(a.choices, value)
}

// Default returns the coerced default value and whether one was
// declared. The dynamic type matches Type: int64, float64, string,
// bool, or []string.
func (a *Arg) Default() (any, bool) {
	if text, ok := a.defaultValue.([]string); ok {
		return slices.Clone(text), a.hasDefault
	}
	return a.defaultValue, a.hasDefault
}

// Required reports whether binding fails when the argument is absent.
// Only positional arguments without a default are required; Text
// arguments bind an empty list instead.
func (a *Arg) Required() bool {
	return a.positional && !a.hasDefault && a.argType != Text
}

// DisplayName is the name as it appears in usage and error text:
// "name" for positionals and "--name" for options.
func (a *Arg) DisplayName() string {
	if a.positional {
		return a.name
	}
	return "--" + a.name
}

func (a *Arg) raw() RawArg {
	raw := RawArg{
		Name:       a.name,
		Help:       a.help,
		Command:    a.command,
		Positional: a.positional,
		Type:       a.argType.String(),
		Enum:       slices.Clone(a.enum),
	}
	if a.hasDefault {
		raw.Default, _ = a.Default()
	}
	return raw
}
