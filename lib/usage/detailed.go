// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package usage

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/bureau-foundation/dcli/lib/argbind"
	"github.com/bureau-foundation/dcli/lib/clischema"
)

// Detailed returns the full help page for node: its description, usage
// lines, subcommand listing, positional arguments and options. program
// is the executable name printed before the keyword chain.
func Detailed(node *clischema.Node, program string, style Style) string {
	var b strings.Builder
	name := strings.Join(append([]string{program}, node.Path()...), " ")

	fmt.Fprintf(&b, "%s\n\n", strings.TrimRight(node.Help(), "\n"))

	// Usage lines: one for invoking this node, one for descending.
	fmt.Fprintf(&b, "%s\n", style.Heading("Usage:"))
	if node.Invocable() || !node.HasChildren() {
		fmt.Fprintf(&b, "  %s\n", strings.Join(append([]string{name}, argSynopsis(node)...), " "))
	}
	if node.HasChildren() {
		fmt.Fprintf(&b, "  %s <command> ...\n", name)
	}

	if node.HasChildren() {
		title := "Commands:"
		if !node.Invocable() {
			title = "Commands (one is required):"
		}
		fmt.Fprintf(&b, "\n%s\n", style.Heading(title))
		tw := tabwriter.NewWriter(&b, 2, 0, 3, ' ', 0)
		for _, child := range node.Children() {
			fmt.Fprintf(tw, "  %s\t%s\n", style.Keyword(child.Keyword()), firstLine(child.Help()))
		}
		tw.Flush()
	}

	var positionals []*clischema.Arg
	for _, arg := range node.Args() {
		if arg.Positional() {
			positionals = append(positionals, arg)
		}
	}
	if len(positionals) > 0 {
		fmt.Fprintf(&b, "\n%s\n", style.Heading("Arguments:"))
		tw := tabwriter.NewWriter(&b, 2, 0, 3, ' ', 0)
		for _, arg := range positionals {
			fmt.Fprintf(tw, "  %s\t%s\n", arg.Name(), describe(arg))
		}
		tw.Flush()
	}

	options := argbind.NewOptionSet(node)
	if options.Lookup("help") == nil {
		if options.ShorthandLookup("h") == nil {
			options.BoolP("help", "h", false, "Show this help and exit.")
		} else {
			options.Bool("help", false, "Show this help and exit.")
		}
	}
	fmt.Fprintf(&b, "\n%s\n%s", style.Heading("Options:"), options.FlagUsages())

	if node.HasChildren() {
		fmt.Fprintf(&b, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
	return b.String()
}

// argSynopsis renders the node's arguments for the usage line: options
// first in brackets, then positionals in declaration order.
func argSynopsis(node *clischema.Node) []string {
	var options, positionals []string
	for _, arg := range node.Args() {
		if !arg.Positional() {
			if arg.Type() == clischema.Flag {
				options = append(options, fmt.Sprintf("[--%s]", arg.Name()))
			} else {
				options = append(options, fmt.Sprintf("[--%s %s]", arg.Name(), metavar(arg)))
			}
			continue
		}
		_, hasDefault := arg.Default()
		switch {
		case arg.Type() == clischema.Text:
			positionals = append(positionals, fmt.Sprintf("[%s ...]", arg.Name()))
		case hasDefault:
			positionals = append(positionals, fmt.Sprintf("[%s]", arg.Name()))
		default:
			positionals = append(positionals, arg.Name())
		}
	}
	return append(options, positionals...)
}

// metavar is the placeholder for an option's value: the enum choices
// when declared, otherwise the upper-cased type name.
func metavar(arg *clischema.Arg) string {
	if enum := arg.Enum(); len(enum) > 0 {
		return "{" + strings.Join(enum, ",") + "}"
	}
	return strings.ToUpper(arg.Type().String())
}

func describe(arg *clischema.Arg) string {
	description := firstLine(arg.Help())
	if enum := arg.Enum(); len(enum) > 0 {
		description += " (choices: " + strings.Join(enum, ", ") + ")"
	}
	if value, ok := arg.Default(); ok {
		description += " (default: " + clischema.FormatValue(value) + ")"
	}
	return description
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return strings.TrimSpace(line)
}
