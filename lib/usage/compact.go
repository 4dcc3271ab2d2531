// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package usage

import (
	"strings"

	"github.com/bureau-foundation/dcli/lib/clischema"
)

// DefaultBotProgram is the program name [Compact] uses when none is
// given.
const DefaultBotProgram = "<bot>"

// Compact returns the one-line usage of node: the program name, the
// keyword chain from the root, then either the child keywords or the
// node's arguments.
//
// Child keywords are shown as {a | b} when the node cannot be invoked
// by itself and [a | b] when it can. A leaf lists each argument as
// [name ...], or [name] for flags.
func Compact(node *clischema.Node, program string) string {
	if program == "" {
		program = DefaultBotProgram
	}
	parts := append([]string{program}, node.Path()...)

	if node.HasChildren() {
		left, right := "{", "}"
		if node.Invocable() {
			left, right = "[", "]"
		}
		parts = append(parts, left+strings.Join(node.Keywords(), " | ")+right)
	} else {
		for _, arg := range node.Args() {
			if arg.Type() == clischema.Flag {
				parts = append(parts, "["+arg.Name()+"]")
			} else {
				parts = append(parts, "["+arg.Name()+" ...]")
			}
		}
	}
	return strings.Join(parts, " ")
}
