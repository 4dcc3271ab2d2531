// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"slices"
	"strings"
	"sync"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/bureau-foundation/dcli/lib/clischema"
)

var algoInit sync.Once

// Complete returns candidates for the word being typed at the end of
// line, best match first. After keywords it offers the child keywords
// of the node reached; a word starting with "--" is matched against
// that node's option names, returned without the dashes. Matching is
// fuzzy, so "mgr" offers "migrate".
func (s *Session) Complete(line string) []string {
	words := strings.Fields(line)
	partial := ""
	if len(words) > 0 && !strings.HasSuffix(line, " ") {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}
	if len(words) > 0 && words[0] == "help" {
		words = words[1:]
	}

	walked := clischema.Walk(s.root, words)
	node := walked.Node

	var candidates []string
	switch {
	case strings.HasPrefix(partial, "--"):
		for _, arg := range node.Args() {
			if !arg.Positional() {
				candidates = append(candidates, arg.Name())
			}
		}
		partial = strings.TrimPrefix(partial, "--")
	case len(walked.Remaining) == 0:
		candidates = node.Keywords()
	}
	return rank(candidates, partial)
}

// rank orders candidates by fzf score against pattern, dropping those
// that do not match. Ties keep declaration order.
func rank(candidates []string, pattern string) []string {
	if pattern == "" {
		return candidates
	}
	algoInit.Do(func() { algo.Init("default") })

	type scored struct {
		candidate string
		score     int
	}
	runes := []rune(strings.ToLower(pattern))
	slab := util.MakeSlab(4096, 1024)
	var matches []scored
	for _, candidate := range candidates {
		chars := util.ToChars([]byte(candidate))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, runes, false, slab)
		if result.Start >= 0 {
			matches = append(matches, scored{candidate, result.Score})
		}
	}
	slices.SortStableFunc(matches, func(a, b scored) int { return b.score - a.score })

	ranked := make([]string, len(matches))
	for i, match := range matches {
		ranked[i] = match.candidate
	}
	return ranked
}
