// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clischema

import "slices"

// Walked is the result of [Walk]: the node reached and the split of
// the input tokens into matched keywords and everything after them.
// Consumed followed by Remaining always equals the walked tokens.
type Walked struct {
	Node      *Node
	Consumed  []string
	Remaining []string
}

// Walk descends from start by matching leading tokens against child
// keywords. At each step the next token is compared (exactly,
// case-sensitively) with the current node's child keywords; a match
// consumes the token and moves to that child. Walking stops at the
// first token that names no child, when the current node has no
// children, or when tokens run out. There is no lookahead and no
// backtracking.
//
// Walk never modifies tokens; the returned slices are copies.
func Walk(start *Node, tokens []string) Walked {
	node := start
	count := 0
	for count < len(tokens) && node.HasChildren() {
		child := node.Child(tokens[count])
		if child == nil {
			break
		}
		node = child
		count++
	}
	return Walked{
		Node:      node,
		Consumed:  slices.Clone(tokens[:count]),
		Remaining: slices.Clone(tokens[count:]),
	}
}
