// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clischema

// RawNode is the decoded, unvalidated form of a schema node, exactly as
// it appears in a schema file. The root RawNode has no keyword; every
// node in Subtree must have one. Pass the root to [Build] to get a
// validated tree.
//
// The same struct tags serve YAML, JSON and (through fxamacker's json
// tag fallback) the CBOR compiled form.
type RawNode struct {
	Keyword string    `yaml:"keyword,omitempty" json:"keyword,omitempty"`
	Help    string    `yaml:"help"              json:"help"`
	Command string    `yaml:"command,omitempty" json:"command,omitempty"`
	Args    []RawArg  `yaml:"args,omitempty"    json:"args,omitempty"`
	Subtree []RawNode `yaml:"subtree,omitempty" json:"subtree,omitempty"`
}

// RawArg is the decoded form of one argument declaration.
//
// Default is left untyped because schema formats disagree on scalar
// types (YAML yields int, JSON yields float64, CBOR yields uint64).
// [Build] coerces it to the Go type matching Type.
type RawArg struct {
	Name       string   `yaml:"name"                 json:"name"`
	Help       string   `yaml:"help"                 json:"help"`
	Command    string   `yaml:"command,omitempty"    json:"command,omitempty"`
	Positional bool     `yaml:"positional,omitempty" json:"positional,omitempty"`
	Type       string   `yaml:"type,omitempty"       json:"type,omitempty"`
	Enum       []string `yaml:"enum,omitempty"       json:"enum,omitempty"`
	Default    any      `yaml:"default,omitempty"    json:"default,omitempty"`
}
