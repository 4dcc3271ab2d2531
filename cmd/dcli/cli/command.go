// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/dcli/lib/usage"
)

// Command is one node of the dcli command tree.
//
// Routing descends through Subcommands one argument at a time by exact
// name. The first argument that names no subcommand ends routing; the
// rest is parsed against the reached command's flags and handed to Run.
type Command struct {
	// Name is the word that selects this command (e.g. "compile").
	Name string

	// Summary is the one-liner shown in the parent's command listing.
	Summary string

	// Description is the longer text at the top of the command's help.
	Description string

	// Usage overrides the synthesized usage line.
	Usage string

	Examples []Example

	// Flags builds the command's flag set. It is called for every
	// invocation and every help rendering.
	Flags func() *pflag.FlagSet

	Subcommands []*Command

	// Run receives the arguments left after flag parsing and a logger
	// carrying the command path. A command with both Run and
	// Subcommands runs when the next argument names no subcommand.
	Run func(ctx context.Context, args []string, logger *slog.Logger) error

	// HelpOutput and HelpStyle apply to this command and everything
	// below it unless a descendant sets its own. The defaults are
	// os.Stderr and plain text.
	HelpOutput io.Writer
	HelpStyle  *usage.Style

	parent *Command
}

// Example is a usage example shown in help output.
type Example struct {
	Description string
	Command     string
}

// Execute routes args to a command and runs it.
func (c *Command) Execute(ctx context.Context, args []string, logger *slog.Logger) error {
	command, rest, err := c.route(args)
	if err != nil {
		return err
	}
	return command.invoke(ctx, rest, logger)
}

// route follows args down the subcommand tree, linking each command it
// enters to its parent for help and logging.
func (c *Command) route(args []string) (*Command, []string, error) {
	command := c
	for len(args) > 0 && len(command.Subcommands) > 0 {
		name := args[0]
		if isHelpFlag(name) || strings.HasPrefix(name, "-") {
			break
		}
		sub := command.subcommand(name)
		if sub == nil {
			if command.Run != nil {
				break
			}
			return nil, nil, command.unknownCommand(name)
		}
		sub.parent = command
		command = sub
		args = args[1:]
	}
	return command, args, nil
}

func (c *Command) subcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

func (c *Command) unknownCommand(name string) error {
	if suggestion := suggestCommand(name, c.Subcommands); suggestion != "" {
		return Validation("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
			name, suggestion, c.fullName())
	}
	return Validation("unknown command %q\n\nRun '%s --help' for usage.", name, c.fullName())
}

// invoke parses flags and runs c. A help request anywhere before a
// "--" separator prints help instead.
func (c *Command) invoke(ctx context.Context, args []string, logger *slog.Logger) error {
	if len(args) > 0 && isHelpFlag(args[0]) {
		c.PrintHelp(c.helpOutput())
		return nil
	}

	if c.Run == nil {
		c.PrintHelp(c.helpOutput())
		if len(c.Subcommands) == 0 {
			return Internal("no action defined for %q", c.fullName())
		}
		if len(args) == 0 {
			return Validation("subcommand required")
		}
		return Validation("subcommand required (got flag %q)", args[0])
	}

	if c.Flags != nil {
		flagSet := c.Flags()
		flagSet.SetOutput(io.Discard)
		if err := flagSet.Parse(args); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				c.PrintHelp(c.helpOutput())
				return nil
			}
			return c.flagError(err, args)
		}
		args = flagSet.Args()
	}

	return c.Run(ctx, args, logger.With("command", c.commandPath()))
}

func (c *Command) flagError(err error, args []string) error {
	message := err.Error()
	if strings.Contains(message, "unknown flag") || strings.Contains(message, "unknown shorthand flag") {
		// The failed parse may have left values behind; look the
		// names up in a fresh set.
		if suggestion := suggestFlag(args, c.Flags()); suggestion != "" {
			return Validation("%s (did you mean %s?)\n\nRun '%s --help' for usage.",
				message, suggestion, c.fullName())
		}
	}
	return Validation("%s\n\nRun '%s --help' for usage.", message, c.fullName())
}

// PrintHelp writes the command's help page to w: description, usage
// line, subcommand listing, flags and examples.
func (c *Command) PrintHelp(w io.Writer) {
	style := c.helpStyle()
	name := c.fullName()

	switch {
	case c.Description != "":
		fmt.Fprintf(w, "%s\n\n", c.Description)
	case c.Summary != "":
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	line := c.Usage
	if line == "" {
		line = name + " [flags]"
		if len(c.Subcommands) > 0 {
			line = name + " <command> [flags]"
		}
	}
	fmt.Fprintf(w, "%s\n  %s\n", style.Heading("Usage:"), line)

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\n%s\n", style.Heading("Commands:"))
		// Every keyword carries the same escape sequences, so the
		// columns still line up when the style is colored.
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", style.Keyword(sub.Name), sub.Summary)
		}
		tw.Flush()
	}

	if c.Flags != nil {
		if usages := c.Flags().FlagUsages(); usages != "" {
			fmt.Fprintf(w, "\n%s\n%s", style.Heading("Flags:"), usages)
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\n%s\n", style.Heading("Examples:"))
		for _, example := range c.Examples {
			if example.Description != "" {
				fmt.Fprintf(w, "  # %s\n  %s\n\n", example.Description, example.Command)
				continue
			}
			fmt.Fprintf(w, "  %s\n", example.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

func (c *Command) helpOutput() io.Writer {
	for command := c; command != nil; command = command.parent {
		if command.HelpOutput != nil {
			return command.HelpOutput
		}
	}
	return os.Stderr
}

func (c *Command) helpStyle() usage.Style {
	for command := c; command != nil; command = command.parent {
		if command.HelpStyle != nil {
			return *command.HelpStyle
		}
	}
	return usage.Plain()
}

// fullName is the command line that selects c (e.g. "dcli schema compile").
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

// commandPath is the path below the root joined with "/" (e.g.
// "schema/compile"), used to scope loggers.
func (c *Command) commandPath() string {
	if c.parent == nil || c.parent.parent == nil {
		return c.Name
	}
	return c.parent.commandPath() + "/" + c.Name
}

func isHelpFlag(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
