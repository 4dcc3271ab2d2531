// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/dcli/cmd/dcli/cli"
	"github.com/bureau-foundation/dcli/lib/argbind"
	"github.com/bureau-foundation/dcli/lib/chat"
	"github.com/bureau-foundation/dcli/lib/clischema"
	"github.com/bureau-foundation/dcli/lib/dispatch"
	"github.com/bureau-foundation/dcli/lib/frontend"
)

type resolveParams struct {
	cli.JSONOutput
	Schema    string        `json:"schema"     flag:"schema,s"   desc:"schema file (default: configured schema)"`
	Frontend  frontend.Kind `json:"frontend"   flag:"frontend"   desc:"front end: standard or bot"`
	Program   string        `json:"program"    flag:"program"    desc:"program name shown in usage lines"`
	ErrorFile string        `json:"error_file" flag:"error-file" desc:"file recording the last failure (default: configured error file)"`
}

// resolution is the --json form of a resolve outcome.
type resolution struct {
	Help      bool           `json:"help"`
	Path      []string       `json:"path"`
	Usage     string         `json:"usage,omitempty"`
	Command   string         `json:"command,omitempty"`
	Values    map[string]any `json:"values,omitempty"`
	Remaining []string       `json:"remaining,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func resolveCommand(env *Environment) *cli.Command {
	var params resolveParams

	return &cli.Command{
		Name:    "resolve",
		Summary: "Resolve tokens against a schema",
		Description: `Walk the tokens after "--" down the schema's keyword tree and bind
the rest to the reached command's arguments.

A help request prints the front end's help text. A bound invocation
is printed as the command identifier followed by its argument values.
Malformed input prints the error with usage and exits 2.`,
		Usage: "dcli resolve [flags] -- TOKENS...",
		Examples: []cli.Example{
			{
				Description: "Bind a deploy invocation",
				Command:     "dcli resolve --schema ops.yaml -- deploy staging --replicas 3",
			},
			{
				Description: "Ask the chat-bot front end for help",
				Command:     "dcli resolve --frontend bot -- deploy ?",
			},
		},
		Flags: func() *pflag.FlagSet {
			// The configured front end is validated at load time.
			params.Frontend, _ = frontend.ParseKind(env.Config.Frontend)
			return cli.FlagsFromParams("resolve", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			path, err := schemaPath(env, params.Schema)
			if err != nil {
				return err
			}
			root, err := loadSchema(path)
			if err != nil {
				return err
			}

			kind := params.Frontend
			program := params.Program
			if program == "" {
				program = env.Config.Program
			}
			resolver, err := frontend.New(kind, root, frontend.Options{
				Program: program,
				Style:   helpStyle(env, env.Stdout),
			})
			if err != nil {
				return cli.Internal("%w", err)
			}
			logger.Debug("resolving", "schema", path, "frontend", kind.String(), "tokens", len(args))

			if params.OutputJSON {
				return emitResolution(env.Stdout, resolver, args)
			}

			result, status := frontend.Run(resolver, args, env.Stdout, env.Stderr)
			if result == nil {
				if status != 0 {
					return &cli.ExitError{Code: status}
				}
				return nil
			}

			errorFile := params.ErrorFile
			if errorFile == "" {
				errorFile = env.Config.ErrorFile
			}
			status = dispatch.Execute(ctx, echoTable(root, env.Stdout), result, env.Stderr, errorFile)
			if status != 0 {
				return &cli.ExitError{Code: status}
			}
			return nil
		},
	}
}

// echoTable maps every command identifier in root to a handler that
// prints the bound result.
func echoTable(root *clischema.Node, w io.Writer) dispatch.Table {
	table := dispatch.Table{}
	for _, command := range root.Commands() {
		table[command] = func(_ context.Context, result *argbind.Result) (int, error) {
			if _, err := fmt.Fprintln(w, chat.Describe(result)); err != nil {
				return 1, fmt.Errorf("writing result: %w", err)
			}
			return 0, nil
		}
	}
	return table
}

// emitResolution writes the outcome as JSON. Parse errors are part of
// the document and still exit 2.
func emitResolution(w io.Writer, resolver frontend.Resolver, tokens []string) error {
	outcome, err := resolver.Resolve(tokens)
	if err != nil {
		var parseErr *argbind.ArgParseError
		if !errors.As(err, &parseErr) {
			return err
		}
		document := resolution{Path: []string{}, Error: parseErr.Error()}
		if parseErr.Node != nil {
			document.Path = append(document.Path, parseErr.Node.Path()...)
			document.Usage = resolver.Usage(parseErr.Node)
		}
		if err := cli.WriteJSON(w, document); err != nil {
			return err
		}
		return &cli.ExitError{Code: 2}
	}

	document := resolution{
		Help: outcome.Help,
		Path: outcome.Consumed,
	}
	if outcome.Help {
		document.Usage = outcome.Usage
	} else {
		document.Command = outcome.Result.Command
		document.Values = outcome.Result.Values
		document.Remaining = outcome.Result.Remaining
	}
	if document.Path == nil {
		document.Path = []string{}
	}
	return cli.WriteJSON(w, document)
}
