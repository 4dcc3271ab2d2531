// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argbind

import "slices"

// Result is a successfully bound invocation.
type Result struct {
	// Command is the command identifier of the bound node. It is empty
	// when the node only routes to children.
	Command string

	// Values holds one entry per declared argument: the parsed value,
	// the declared default, false for an absent flag, an empty list for
	// an absent text argument, or nil for an absent value-taking
	// argument without a default. Dynamic types are int64, float64,
	// string, bool and []string.
	Values map[string]any

	// Remaining holds the tokens that were not bound: everything after
	// a "--" separator, or everything from the first token that found
	// no free positional slot.
	Remaining []string
}

// Has reports whether name has a non-nil value.
func (r *Result) Has(name string) bool {
	return r.Values[name] != nil
}

// String returns the value of a string argument, or "".
func (r *Result) String(name string) string {
	value, _ := r.Values[name].(string)
	return value
}

// Int returns the value of an integer argument, or 0.
func (r *Result) Int(name string) int64 {
	value, _ := r.Values[name].(int64)
	return value
}

// Float returns the value of a float argument, or 0.
func (r *Result) Float(name string) float64 {
	value, _ := r.Values[name].(float64)
	return value
}

// Bool returns the value of a flag argument, or false.
func (r *Result) Bool(name string) bool {
	value, _ := r.Values[name].(bool)
	return value
}

// Text returns a copy of the value of a text argument, or nil.
func (r *Result) Text(name string) []string {
	value, _ := r.Values[name].([]string)
	return slices.Clone(value)
}
