// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clischema

import (
	"fmt"
	"strings"
)

// ArgType is the value type of an argument declaration. The set is
// closed: every switch over ArgType in this module handles all five
// values.
type ArgType uint8

const (
	// String accepts a single token verbatim. It is the type used when
	// a declaration omits "type".
	String ArgType = iota

	// Integer accepts a single token parsed as a base-10 int64.
	Integer

	// Float accepts a single token parsed as a float64.
	Float

	// Flag takes no value token. Presence of --name binds true.
	Flag

	// Text captures every remaining token as an ordered list. Only a
	// positional argument in the last position may be Text.
	Text
)

// argTypeNames lists the schema spellings in the order they are
// reported in error messages.
var argTypeNames = []struct {
	name    string
	argType ArgType
}{
	{"integer", Integer},
	{"string", String},
	{"float", Float},
	{"flag", Flag},
	{"text", Text},
}

// String returns the schema spelling of the type.
func (t ArgType) String() string {
	for _, entry := range argTypeNames {
		if entry.argType == t {
			return entry.name
		}
	}
	return fmt.Sprintf("ArgType(%d)", uint8(t))
}

// TakesValue reports whether an option of this type consumes a value
// token after its --name token.
func (t ArgType) TakesValue() bool {
	return t != Flag
}

// ParseArgType maps a schema "type" string to an ArgType. The empty
// string maps to String.
func ParseArgType(name string) (ArgType, error) {
	if name == "" {
		return String, nil
	}
	for _, entry := range argTypeNames {
		if entry.name == name {
			return entry.argType, nil
		}
	}
	accepted := make([]string, len(argTypeNames))
	for i, entry := range argTypeNames {
		accepted[i] = entry.name
	}
	return String, fmt.Errorf("unrecognised type %q, accepted types are: %s",
		name, strings.Join(accepted, ", "))
}
