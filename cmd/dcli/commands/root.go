// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the dcli command tree.
package commands

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/dcli/cmd/dcli/cli"
	"github.com/bureau-foundation/dcli/lib/config"
	"github.com/bureau-foundation/dcli/lib/usage"
)

// Environment is what every command runs against: the loaded
// configuration and the process streams.
type Environment struct {
	Config *config.Config
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Root returns the dcli command tree.
func Root(env *Environment) *cli.Command {
	style := helpStyle(env, env.Stderr)
	return &cli.Command{
		Name:    "dcli",
		Summary: "Interpret declarative command-line schemas",
		Description: `dcli loads a command schema (YAML, JSON, or compiled) and resolves
token lists against it with either the strict command-line front end
or the permissive chat-bot front end.`,
		Usage:      "dcli [--config FILE] <command> [flags]",
		HelpOutput: env.Stderr,
		HelpStyle:  &style,
		Subcommands: []*cli.Command{
			resolveCommand(env),
			schemaCommand(env),
			docCommand(env),
			chatCommand(env),
			versionCommand(env),
		},
	}
}

// SplitGlobalFlags parses the flags that precede the subcommand and
// returns the --config path and the remaining arguments. A leading
// -h or --help is passed through so the root command prints help.
func SplitGlobalFlags(args []string) (string, []string, error) {
	flagSet := pflag.NewFlagSet("dcli", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.SetInterspersed(false)
	configPath := flagSet.String("config", "", "configuration file")
	help := flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		return "", nil, cli.Validation("%v\n\nRun 'dcli --help' for usage.", err)
	}
	rest := flagSet.Args()
	if *help {
		rest = append([]string{"--help"}, rest...)
	}
	return *configPath, rest, nil
}

// LoadConfig loads path, or the file named by DCLI_CONFIG when path is
// empty, and validates it.
func LoadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, cli.NotFound("%w", err)
		}
		return nil, cli.Validation("%w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %w", err)
	}
	return cfg, nil
}

// colorEnabled applies the configured color mode to w.
func colorEnabled(mode config.ColorMode, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// helpStyle returns the style for strict help pages written to w.
func helpStyle(env *Environment, w io.Writer) usage.Style {
	if colorEnabled(env.Config.Color, w) {
		return usage.Colored(w)
	}
	return usage.Plain()
}

// terminalWidth returns the width of w when it is a terminal, or
// fallback.
func terminalWidth(w io.Writer, fallback int) int {
	if file, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return fallback
}

// requireArgs checks the positional argument count. most < 0 means
// no upper bound.
func requireArgs(args []string, least, most int, what string) error {
	if len(args) < least {
		return cli.Validation("%s required", what)
	}
	if most >= 0 && len(args) > most {
		return cli.Validation("unexpected argument %q", args[most])
	}
	return nil
}
