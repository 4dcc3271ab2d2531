// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clischema is the in-memory model of a declarative CLI schema.
//
// A schema describes a command tree: a root [Node] with nested keyword
// nodes, each optionally naming a command identifier and declaring the
// [Arg] values that command accepts. Schemas are authored as data
// (YAML or JSONC, see lib/schemafile), decoded into a [RawNode], and
// turned into an immutable tree by [Build]:
//
//	root, err := clischema.Build(&raw)
//	walked := clischema.Walk(root, []string{"venv", "--check"})
//	// walked.Node is the "venv" node, walked.Remaining is ["--check"].
//
// Build validates the whole tree in one recursive pass and assigns each
// node's parent as the node is created. After Build returns, nothing in
// the tree changes, so a single root can be shared by any number of
// concurrent parsers without locking.
//
// [Walk] is the keyword-matching half of command resolution: it
// consumes leading tokens that name child keywords and stops at the
// first token that does not. Argument binding for the node it reaches
// lives in lib/argbind; help detection is a front-end concern handled
// in lib/frontend.
package clischema
