// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clischema_test

import (
	"reflect"
	"slices"
	"sync"
	"testing"

	"github.com/bureau-foundation/dcli/lib/clischema"
	"github.com/bureau-foundation/dcli/lib/clischema/clischematest"
)

func TestWalk(t *testing.T) {
	root := clischematest.Ops()

	tests := []struct {
		name          string
		tokens        []string
		wantPath      []string
		wantConsumed  []string
		wantRemaining []string
	}{
		{"empty", nil, nil, nil, nil},
		{"one keyword", []string{"status"}, []string{"status"}, []string{"status"}, []string{}},
		{"keyword then option", []string{"status", "--verbose"}, []string{"status"}, []string{"status"}, []string{"--verbose"}},
		{"two levels", []string{"venv", "create", "env"}, []string{"venv", "create"}, []string{"venv", "create"}, []string{"env"}},
		{"unknown first token", []string{"nope", "status"}, nil, []string{}, []string{"nope", "status"}},
		{"case sensitive", []string{"Status"}, nil, []string{}, []string{"Status"}},
		{"leaf stops the walk", []string{"status", "status"}, []string{"status"}, []string{"status"}, []string{"status"}},
		{"option between keywords stops", []string{"venv", "--x", "create"}, []string{"venv"}, []string{"venv"}, []string{"--x", "create"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			walked := clischema.Walk(root, test.tokens)
			if got := walked.Node.Path(); !slices.Equal(got, test.wantPath) {
				t.Errorf("Node = %v, want path %v", walked.Node, test.wantPath)
			}
			if !slices.Equal(walked.Consumed, test.wantConsumed) {
				t.Errorf("Consumed = %q, want %q", walked.Consumed, test.wantConsumed)
			}
			if !slices.Equal(walked.Remaining, test.wantRemaining) {
				t.Errorf("Remaining = %q, want %q", walked.Remaining, test.wantRemaining)
			}
		})
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	root := clischematest.Nested()
	walked := clischema.Walk(root, []string{"A", "X"})
	if walked.Node != root.Child("A") {
		t.Fatalf("Node = %v, want <SubNode(A)>", walked.Node)
	}
	if !slices.Equal(walked.Consumed, []string{"A"}) || !slices.Equal(walked.Remaining, []string{"X"}) {
		t.Errorf("Consumed = %q, Remaining = %q", walked.Consumed, walked.Remaining)
	}
}

func TestWalk_PrefixInvariantAndPurity(t *testing.T) {
	root := clischematest.Ops()
	inputs := [][]string{
		{},
		{"deploy", "staging", "ship", "it"},
		{"db", "migrate", "--steps", "3"},
		{"venv", "venv", "create"},
		{"--", "status"},
		{"db", "db", "db"},
	}
	for _, tokens := range inputs {
		before := slices.Clone(tokens)
		first := clischema.Walk(root, tokens)
		second := clischema.Walk(root, tokens)

		if !slices.Equal(tokens, before) {
			t.Errorf("Walk modified its input: %q -> %q", before, tokens)
		}
		joined := append(slices.Clone(first.Consumed), first.Remaining...)
		if !slices.Equal(joined, tokens) {
			t.Errorf("Consumed ++ Remaining = %q, want %q", joined, tokens)
		}
		if first.Node != second.Node || !reflect.DeepEqual(first.Consumed, second.Consumed) ||
			!reflect.DeepEqual(first.Remaining, second.Remaining) {
			t.Errorf("Walk(%q) is not deterministic: %+v vs %+v", tokens, first, second)
		}
	}
}

func TestWalk_ResultDoesNotAliasInput(t *testing.T) {
	root := clischematest.Ops()
	tokens := []string{"status", "--verbose"}
	walked := clischema.Walk(root, tokens)
	walked.Consumed[0] = "changed"
	walked.Remaining[0] = "changed"
	if tokens[0] != "status" || tokens[1] != "--verbose" {
		t.Errorf("tokens = %q after mutating the result", tokens)
	}
}

func TestWalk_ConcurrentSharedTree(t *testing.T) {
	root := clischematest.Ops()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				walked := clischema.Walk(root, []string{"venv", "create", "here"})
				if walked.Node.Command() != "venv_create" {
					t.Errorf("Node.Command() = %q", walked.Node.Command())
					return
				}
			}
		}()
	}
	wg.Wait()
}
