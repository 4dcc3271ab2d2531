// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/bureau-foundation/dcli/lib/argbind"
	"github.com/bureau-foundation/dcli/lib/clischema"
)

// DefaultErrorFile is where [Execute] records the last failure when no
// other path is configured.
const DefaultErrorFile = ".last_error.txt"

// UnexpectedErrorMessage is printed for failures that are not a
// [UserFacingError].
const UnexpectedErrorMessage = "Unexpected error, please contact the maintainer to fix this!"

// Handler runs one command. The returned status becomes the process
// exit status when err is nil.
type Handler func(ctx context.Context, result *argbind.Result) (int, error)

// Table maps command identifiers to handlers.
type Table map[string]Handler

// Dispatch runs the handler for result.Command.
func (t Table) Dispatch(ctx context.Context, result *argbind.Result) (int, error) {
	if result.Command == "" {
		return 1, errors.New("resolved node has no command to run")
	}
	handler, ok := t[result.Command]
	if !ok {
		return 1, fmt.Errorf("no handler registered for command %q", result.Command)
	}
	return handler(ctx, result)
}

// Missing returns the command identifiers reachable from root that
// have no handler, in tree order.
func (t Table) Missing(root *clischema.Node) []string {
	var missing []string
	for _, command := range root.Commands() {
		if _, ok := t[command]; !ok {
			missing = append(missing, command)
		}
	}
	return missing
}

// Commands returns the registered identifiers, sorted.
func (t Table) Commands() []string {
	commands := make([]string, 0, len(t))
	for command := range t {
		commands = append(commands, command)
	}
	slices.Sort(commands)
	return commands
}

// UserFacingError is a failure whose UserMessage may be shown to the
// person running the program as is.
type UserFacingError struct {
	// Message is the detailed description recorded in the error file.
	// When empty, UserMessage is used.
	Message string

	// UserMessage is printed after "ERROR: ".
	UserMessage string

	// ExitCode is the process status. Zero means 1.
	ExitCode int

	// Err is the underlying cause, if any.
	Err error
}

func (e *UserFacingError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.UserMessage
}

func (e *UserFacingError) Unwrap() error { return e.Err }

// Status returns the exit status the error maps to.
func (e *UserFacingError) Status() int {
	if e.ExitCode == 0 {
		return 1
	}
	return e.ExitCode
}

// Execute dispatches result through table and returns the exit
// status. Failures are reported on stderr and recorded in errorFile;
// an empty errorFile disables recording.
func Execute(ctx context.Context, table Table, result *argbind.Result, stderr io.Writer, errorFile string) int {
	status, err := table.Dispatch(ctx, result)
	if err == nil {
		return status
	}

	var userErr *UserFacingError
	if errors.As(err, &userErr) {
		fmt.Fprintln(stderr, "ERROR:", userErr.UserMessage)
		status = userErr.Status()
	} else {
		fmt.Fprintln(stderr, "ERROR:", UnexpectedErrorMessage)
		status = 1
	}

	if errorFile != "" {
		if writeErr := WriteLastError(errorFile, result, err); writeErr != nil {
			fmt.Fprintf(stderr, "warning: could not record error: %v\n", writeErr)
		}
	}
	return status
}

// WriteLastError records err, with its chain of wrapped causes, in
// path. The file is replaced on every call.
func WriteLastError(path string, result *argbind.Result, err error) error {
	var b strings.Builder
	if result != nil {
		fmt.Fprintf(&b, "command: %s\n", result.Command)
	}
	fmt.Fprintf(&b, "error: %v\n", err)
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(&b, "caused by: %v\n", cause)
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// StripSeparator returns tokens without the first "--", for handlers
// that pass their remaining tokens on to another program.
func StripSeparator(tokens []string) []string {
	index := slices.Index(tokens, argbind.Separator)
	if index < 0 {
		return slices.Clone(tokens)
	}
	return slices.Delete(slices.Clone(tokens), index, index+1)
}
