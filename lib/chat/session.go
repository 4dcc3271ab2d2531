// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/bureau-foundation/dcli/lib/argbind"
	"github.com/bureau-foundation/dcli/lib/clischema"
	"github.com/bureau-foundation/dcli/lib/frontend"
)

// Session answers chat lines against one command tree. A Session holds
// no mutable state and may be shared.
type Session struct {
	root     *clischema.Node
	resolver *frontend.Permissive
}

// NewSession returns a session over root. options.Program names the
// bot in usage lines.
func NewSession(root *clischema.Node, options frontend.Options) *Session {
	return &Session{root: root, resolver: frontend.NewPermissive(root, options)}
}

// Reply returns the response to one line of input. Words are split
// shell-style, so quoted text stays one token.
func (s *Session) Reply(line string) string {
	tokens, err := shellwords.Parse(line)
	if err != nil {
		return fmt.Sprintf("Could not split that line: %v", err)
	}

	outcome, err := s.resolver.Resolve(tokens)
	if err != nil {
		var parseErr *argbind.ArgParseError
		if errors.As(err, &parseErr) && parseErr.Node != nil {
			return fmt.Sprintf("Error parsing the command: %v\n%s", parseErr, s.resolver.Usage(parseErr.Node))
		}
		return fmt.Sprintf("error: %v", err)
	}
	if outcome.Help {
		return outcome.Usage
	}
	return Describe(outcome.Result)
}

// Describe summarizes a bound result: the command identifier, then one
// "name = value" line per argument in name order, then any unbound
// tokens.
func Describe(result *argbind.Result) string {
	var b strings.Builder
	b.WriteString(result.Command)

	names := make([]string, 0, len(result.Values))
	for name := range result.Values {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		value := result.Values[name]
		text := clischema.FormatValue(value)
		if value == nil {
			text = "(unset)"
		}
		fmt.Fprintf(&b, "\n  %s = %s", name, text)
	}
	if len(result.Remaining) > 0 {
		fmt.Fprintf(&b, "\n  remaining: %s", strings.Join(result.Remaining, " "))
	}
	return b.String()
}
