// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argbind

import (
	"fmt"

	"github.com/bureau-foundation/dcli/lib/clischema"
)

// ArgParseError reports tokens that do not fit the declarations of the
// node being bound. It is always recoverable: front ends turn it into
// an error message plus the usage text of Node.
type ArgParseError struct {
	// Node is the node whose arguments were being bound.
	Node *clischema.Node

	// Arg names the declaration at fault, or "" when the problem is not
	// tied to one argument (unknown options, several missing
	// positionals).
	Arg string

	// Token is the input token that caused the failure, if any.
	Token string

	// Reason is the human-readable description.
	Reason string

	// Err is the underlying coercion error, if any.
	Err error
}

func (e *ArgParseError) Error() string {
	if e.Arg == "" {
		return e.Reason
	}
	display := e.Arg
	if e.Node != nil {
		if arg := e.Node.Arg(e.Arg); arg != nil {
			display = arg.DisplayName()
		}
	}
	return fmt.Sprintf("argument %s: %s", display, e.Reason)
}

func (e *ArgParseError) Unwrap() error { return e.Err }
