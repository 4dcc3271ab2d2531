// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clischematest provides sample command trees for tests of
// packages built on lib/clischema.
package clischematest

import (
	"fmt"

	"github.com/bureau-foundation/dcli/lib/clischema"
)

// StatusRaw is the smallest useful schema: a single "status" keyword
// invoking show_status with one --verbose flag.
func StatusRaw() *clischema.RawNode {
	return &clischema.RawNode{
		Help: "Status tool.",
		Subtree: []clischema.RawNode{
			{
				Keyword: "status",
				Help:    "Show service status.",
				Command: "show_status",
				Args: []clischema.RawArg{
					{Name: "verbose", Help: "Include per-unit detail.", Type: "flag"},
				},
			},
		},
	}
}

// Status builds [StatusRaw].
func Status() *clischema.Node { return mustBuild(StatusRaw()) }

// NestedRaw is root -> A -> B where only B is invocable. B takes one
// positional string "name".
func NestedRaw() *clischema.RawNode {
	return &clischema.RawNode{
		Help: "Nested tool.",
		Subtree: []clischema.RawNode{
			{
				Keyword: "A",
				Help:    "Group A.",
				Subtree: []clischema.RawNode{
					{
						Keyword: "B",
						Help:    "Command B.",
						Command: "run_b",
						Args: []clischema.RawArg{
							{Name: "name", Help: "Target name.", Positional: true},
						},
					},
				},
			},
		},
	}
}

// Nested builds [NestedRaw].
func Nested() *clischema.Node { return mustBuild(NestedRaw()) }

// OpsRaw is a richer tree exercising every argument type:
//
//	status                      show_status   --verbose
//	deploy ENV [--replicas N] [--ratio F] [--dry-run] [--region R] MESSAGE...
//	venv                        venv_info     (invocable, with children)
//	venv create [PATH]          venv_create   PATH defaults to ".venv"
//	venv remove                 venv_remove
//	db                          (routing only)
//	db migrate [--steps N]      db_migrate
func OpsRaw() *clischema.RawNode {
	return &clischema.RawNode{
		Help: "Operations helper.\nRoutes day-to-day operational tasks.",
		Subtree: []clischema.RawNode{
			{
				Keyword: "status",
				Help:    "Show service status.",
				Command: "show_status",
				Args: []clischema.RawArg{
					{Name: "verbose", Help: "Include per-unit detail.", Type: "flag"},
				},
			},
			{
				Keyword: "deploy",
				Help:    "Deploy the current build.",
				Command: "deploy",
				Args: []clischema.RawArg{
					{Name: "env", Help: "Target environment.", Positional: true, Enum: []string{"staging", "production"}},
					{Name: "replicas", Help: "Replica count.", Type: "integer"},
					{Name: "ratio", Help: "Canary traffic ratio.", Type: "float", Default: 0.5},
					{Name: "dry-run", Help: "Print the plan only.", Type: "flag"},
					{Name: "region", Help: "Region to deploy to.", Enum: []string{"eu", "us"}, Default: "eu"},
					{Name: "message", Help: "Release note.", Positional: true, Type: "text"},
				},
			},
			{
				Keyword: "venv",
				Help:    "Inspect or manage the virtual environment.",
				Command: "venv_info",
				Subtree: []clischema.RawNode{
					{
						Keyword: "create",
						Help:    "Create a virtual environment.",
						Command: "venv_create",
						Args: []clischema.RawArg{
							{Name: "path", Help: "Where to create it.", Positional: true, Default: ".venv"},
						},
					},
					{
						Keyword: "remove",
						Help:    "Remove the virtual environment.",
						Command: "venv_remove",
					},
				},
			},
			{
				Keyword: "db",
				Help:    "Database tasks.",
				Subtree: []clischema.RawNode{
					{
						Keyword: "migrate",
						Help:    "Apply pending migrations.",
						Command: "db_migrate",
						Args: []clischema.RawArg{
							{Name: "steps", Help: "Number of migrations to apply.", Type: "integer", Default: 1},
						},
					},
				},
			},
		},
	}
}

// Ops builds [OpsRaw].
func Ops() *clischema.Node { return mustBuild(OpsRaw()) }

func mustBuild(raw *clischema.RawNode) *clischema.Node {
	root, err := clischema.Build(raw)
	if err != nil {
		panic(fmt.Sprintf("clischematest: fixture does not build: %v", err))
	}
	return root
}
