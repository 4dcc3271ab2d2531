// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/dcli/cmd/dcli/cli"
	"github.com/bureau-foundation/dcli/lib/refdoc"
)

type docParams struct {
	HTML     bool   `json:"html"     flag:"html"     desc:"write an HTML fragment"`
	Markdown bool   `json:"markdown" flag:"markdown" desc:"write Markdown source"`
	Program  string `json:"program"  flag:"program"  desc:"program name shown in usage lines"`
	Width    int    `json:"width"    flag:"width"    desc:"wrap width for terminal output (default: terminal width)"`
}

func docCommand(env *Environment) *cli.Command {
	var params docParams

	return &cli.Command{
		Name:    "doc",
		Summary: "Render reference documentation for a schema",
		Description: `Render one section per command node: its usage line, help text,
command identifier, subcommands, and an argument table.

Output is styled for the terminal by default, or Markdown / HTML with
--markdown / --html.`,
		Usage: "dcli doc [flags] [FILE]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("doc", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 0, 1, "schema file"); err != nil {
				return err
			}
			if params.HTML && params.Markdown {
				return cli.Validation("--html and --markdown are mutually exclusive")
			}
			explicit := ""
			if len(args) == 1 {
				explicit = args[0]
			}
			path, err := schemaPath(env, explicit)
			if err != nil {
				return err
			}
			root, err := loadSchema(path)
			if err != nil {
				return err
			}

			program := params.Program
			if program == "" {
				program = env.Config.Program
			}
			logger.Debug("rendering documentation", "schema", path, "html", params.HTML, "markdown", params.Markdown)

			switch {
			case params.HTML:
				html, err := refdoc.HTML(root, program)
				if err != nil {
					return cli.Internal("rendering HTML: %w", err)
				}
				_, err = env.Stdout.Write(html)
				return err

			case params.Markdown:
				_, err := fmt.Fprint(env.Stdout, refdoc.Markdown(root, program))
				return err

			default:
				width := params.Width
				if width <= 0 {
					width = terminalWidth(env.Stdout, 100)
				}
				_, err := fmt.Fprint(env.Stdout, refdoc.Terminal(env.Stdout, root, program, width))
				return err
			}
		},
	}
}
