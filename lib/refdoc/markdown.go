// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package refdoc

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/bureau-foundation/dcli/lib/clischema"
	"github.com/bureau-foundation/dcli/lib/usage"
)

// Markdown returns the reference documentation for the tree rooted at
// root. program is used in headings and usage lines.
func Markdown(root *clischema.Node, program string) string {
	if program == "" {
		program = usage.DefaultBotProgram
	}
	var b strings.Builder
	root.Visit(func(node *clischema.Node) error {
		writeSection(&b, node, program)
		return nil
	})
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeSection(b *strings.Builder, node *clischema.Node, program string) {
	title := strings.Join(append([]string{program}, node.Path()...), " ")
	if node.IsRoot() {
		fmt.Fprintf(b, "# %s\n\n", escape(title))
	} else {
		fmt.Fprintf(b, "## %s\n\n", escape(title))
	}

	fmt.Fprintf(b, "%s\n\n", strings.TrimSpace(node.Help()))
	fmt.Fprintf(b, "Usage: `%s`\n\n", usage.Compact(node, program))
	if node.Invocable() {
		fmt.Fprintf(b, "Command: `%s`\n\n", node.Command())
	}

	if node.HasChildren() {
		b.WriteString("Subcommands:\n\n")
		for _, child := range node.Children() {
			fmt.Fprintf(b, "- `%s`: %s\n", child.Keyword(), escape(firstLine(child.Help())))
		}
		b.WriteString("\n")
	}

	args := node.Args()
	if len(args) == 0 {
		return
	}
	b.WriteString("| Argument | Kind | Type | Default | Description |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, arg := range args {
		kind := "option"
		if arg.Positional() {
			kind = "positional"
			if arg.Required() {
				kind = "positional, required"
			}
		}
		defaultText := ""
		if value, ok := arg.Default(); ok {
			defaultText = "`" + clischema.FormatValue(value) + "`"
		}
		description := escape(firstLine(arg.Help()))
		if enum := arg.Enum(); len(enum) > 0 {
			description += " One of: " + escape(strings.Join(enum, ", ")) + "."
		}
		fmt.Fprintf(b, "| `%s` | %s | %s | %s | %s |\n",
			arg.DisplayName(), kind, arg.Type(), defaultText, description)
	}
	b.WriteString("\n")
}

// escape protects table and inline text from Markdown syntax in help
// strings.
func escape(text string) string {
	replacer := strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "<", "&lt;", ">", "&gt;")
	return replacer.Replace(text)
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return line
}

var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func markdownConverter() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownInstance
}

// HTML returns the reference documentation as an HTML fragment.
func HTML(root *clischema.Node, program string) ([]byte, error) {
	var buffer bytes.Buffer
	if err := markdownConverter().Convert([]byte(Markdown(root, program)), &buffer); err != nil {
		return nil, fmt.Errorf("rendering html: %w", err)
	}
	return buffer.Bytes(), nil
}

// Highlight writes source to w with 256-color terminal syntax
// highlighting for the named lexer ("yaml", "json", ...).
func Highlight(w io.Writer, source, lexer string) error {
	return quick.Highlight(w, source, lexer, "terminal256", "monokai")
}
