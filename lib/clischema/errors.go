// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clischema

import (
	"fmt"
	"strings"
)

// SchemaError reports a malformed schema. It is returned by [Build]
// and is always fatal: a tree is never partially constructed.
type SchemaError struct {
	// Path is the keyword chain from the root to the offending node.
	// Empty for the root itself.
	Path []string

	// Arg is the argument name when the problem is in an argument
	// declaration, empty otherwise.
	Arg string

	// Reason describes what is wrong.
	Reason string
}

func (e *SchemaError) Error() string {
	location := "root"
	if len(e.Path) > 0 {
		location = strings.Join(e.Path, ".")
	}
	if e.Arg != "" {
		return fmt.Sprintf("schema error at %s: argument %q: %s", location, e.Arg, e.Reason)
	}
	return fmt.Sprintf("schema error at %s: %s", location, e.Reason)
}

func nodeError(path []string, format string, args ...any) *SchemaError {
	return &SchemaError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

func argError(path []string, arg string, format string, args ...any) *SchemaError {
	return &SchemaError{Path: path, Arg: arg, Reason: fmt.Sprintf(format, args...)}
}
