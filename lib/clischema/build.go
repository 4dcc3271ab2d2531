// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clischema

import (
	"slices"
	"strings"
)

// Build validates raw and constructs the immutable tree it describes.
// raw is the root: it must not carry a keyword. Every problem is
// reported as a *SchemaError naming the node (and argument) at fault;
// the first problem found in pre-order stops the build.
func Build(raw *RawNode) (*Node, error) {
	if raw == nil {
		return nil, nodeError(nil, "schema is empty")
	}
	if raw.Keyword != "" {
		return nil, nodeError(nil, "root node must not have a keyword (got %q)", raw.Keyword)
	}
	return buildNode(raw, nil)
}

// buildNode constructs one node with its parent already known, then
// recurses into the subtree with the new node as parent.
func buildNode(raw *RawNode, parent *Node) (*Node, error) {
	node := &Node{
		keyword: raw.Keyword,
		help:    raw.Help,
		command: raw.Command,
		parent:  parent,
	}
	path := node.Path()

	if strings.TrimSpace(raw.Help) == "" {
		return nil, nodeError(path, "help is required")
	}

	if err := buildArgs(node, raw.Args, path); err != nil {
		return nil, err
	}

	node.byName = make(map[string]*Node, len(raw.Subtree))
	for i := range raw.Subtree {
		keyword := raw.Subtree[i].Keyword
		if keyword == "" {
			return nil, nodeError(path, "subtree entry %d has no keyword", i)
		}
		if node.byName[keyword] != nil {
			return nil, nodeError(path, "duplicate keyword %q", keyword)
		}
		child, err := buildNode(&raw.Subtree[i], node)
		if err != nil {
			return nil, err
		}
		node.children = append(node.children, child)
		node.byName[keyword] = child
	}

	return node, nil
}

func buildArgs(node *Node, rawArgs []RawArg, path []string) error {
	seen := make(map[string]bool, len(rawArgs))
	for i := range rawArgs {
		arg, err := buildArg(&rawArgs[i], path)
		if err != nil {
			return err
		}
		if seen[arg.name] {
			return argError(path, arg.name, "duplicate argument name")
		}
		seen[arg.name] = true
		node.args = append(node.args, arg)
	}

	var texts []*Arg
	for _, arg := range node.args {
		if arg.argType == Text {
			texts = append(texts, arg)
		}
	}
	switch {
	case len(texts) > 1:
		return argError(path, texts[1].name, "more than one text argument (first was %q)", texts[0].name)
	case len(texts) == 1 && !texts[0].positional:
		return argError(path, texts[0].name, "text argument must be positional")
	case len(texts) == 1 && node.args[len(node.args)-1] != texts[0]:
		return argError(path, texts[0].name, "text argument must be the last argument")
	}
	return nil
}

func buildArg(raw *RawArg, path []string) (*Arg, error) {
	if raw.Name == "" {
		return nil, nodeError(path, "argument with no name")
	}
	if strings.TrimSpace(raw.Help) == "" {
		return nil, argError(path, raw.Name, "help is required")
	}
	argType, err := ParseArgType(raw.Type)
	if err != nil {
		return nil, argError(path, raw.Name, "%v", err)
	}

	arg := &Arg{
		name:       raw.Name,
		help:       raw.Help,
		command:    raw.Command,
		positional: raw.Positional,
		argType:    argType,
		enum:       slices.Clone(raw.Enum),
	}

	if len(arg.enum) > 0 {
		switch argType {
		case Flag, Text:
			return nil, argError(path, raw.Name, "enum is not allowed on %s arguments", argType)
		case String, Integer, Float:
		}
		for _, entry := range arg.enum {
			choice, err := coerceDefault(argType, entry)
			if err != nil {
				return nil, argError(path, raw.Name, "enum value %q: %v", entry, err)
			}
			arg.choices = append(arg.choices, choice)
		}
	}

	if raw.Default != nil {
		value, err := coerceDefault(argType, raw.Default)
		if err != nil {
			return nil, argError(path, raw.Name, "default: %v", err)
		}
		if !arg.Allows(value) {
			return nil, argError(path, raw.Name, "default %q is not one of the enum values", FormatValue(value))
		}
		arg.defaultValue = value
		arg.hasDefault = true
	} else if argType == Flag {
		arg.defaultValue = false
	}

	return arg, nil
}
