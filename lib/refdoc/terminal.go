// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package refdoc

import (
	"html"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/bureau-foundation/dcli/lib/clischema"
)

// Palette colors used by [Terminal], as ANSI 256-color codes.
var (
	headingColor = lipgloss.Color("255")
	codeColor    = lipgloss.Color("75")
	faintColor   = lipgloss.Color("245")
	borderColor  = lipgloss.Color("240")
)

// Terminal renders the reference documentation for reading in a
// terminal of the given width. Output is always styled with the
// 256-color ANSI palette; w only anchors the lipgloss renderer.
func Terminal(w io.Writer, root *clischema.Node, program string, width int) string {
	source := []byte(Markdown(root, program))
	document := markdownConverter().Parser().Parse(text.NewReader(source))

	lipRenderer := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &terminalRenderer{
		source:      source,
		width:       max(width, 20),
		lipRenderer: lipRenderer,
	}
	ast.Walk(document, renderer.walk)
	return strings.TrimRight(renderer.output.String(), "\n") + "\n"
}

// terminalRenderer walks the goldmark AST of generated documentation.
// It handles the block and inline kinds [Markdown] emits: headings,
// paragraphs, tight bullet lists, code spans and GFM tables.
type terminalRenderer struct {
	source      []byte
	width       int
	lipRenderer *lipgloss.Renderer

	output strings.Builder
	inline strings.Builder

	// bullet is written before the next flushed line inside a list
	// item; continuation lines are indented to match.
	bullet string
	inList bool
}

func (renderer *terminalRenderer) newStyle() lipgloss.Style {
	return renderer.lipRenderer.NewStyle()
}

func (renderer *terminalRenderer) blankLine() {
	current := renderer.output.String()
	if current == "" || strings.HasSuffix(current, "\n\n") {
		return
	}
	if strings.HasSuffix(current, "\n") {
		renderer.output.WriteString("\n")
		return
	}
	renderer.output.WriteString("\n\n")
}

// flush wraps the collected inline text and writes it as one block.
func (renderer *terminalRenderer) flush() {
	content := renderer.inline.String()
	renderer.inline.Reset()
	if content == "" {
		return
	}
	indent := ""
	if renderer.inList {
		indent = "  "
	}
	wrapped := ansi.Wrap(content, renderer.width-len(indent), " ,.;-+|")
	for index, line := range strings.Split(wrapped, "\n") {
		if index == 0 && renderer.bullet != "" {
			renderer.output.WriteString(renderer.bullet)
			renderer.bullet = ""
		} else {
			renderer.output.WriteString(indent)
		}
		renderer.output.WriteString(line)
		renderer.output.WriteString("\n")
	}
}

func (renderer *terminalRenderer) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node.Kind() {
	case ast.KindHeading:
		if entering {
			renderer.inline.Reset()
			return ast.WalkContinue, nil
		}
		content := ansi.Strip(renderer.inline.String())
		renderer.inline.Reset()
		style := renderer.newStyle().Bold(true).Foreground(headingColor)
		if node.(*ast.Heading).Level == 1 {
			style = style.Underline(true)
		}
		renderer.blankLine()
		renderer.output.WriteString(style.Render(content) + "\n\n")

	case ast.KindParagraph, ast.KindTextBlock:
		if entering {
			renderer.inline.Reset()
			return ast.WalkContinue, nil
		}
		renderer.flush()
		if !renderer.inList {
			renderer.blankLine()
		}

	case ast.KindList:
		renderer.inList = entering
		if !entering {
			renderer.blankLine()
		}

	case ast.KindListItem:
		if entering {
			renderer.bullet = renderer.newStyle().Foreground(faintColor).Render("•") + " "
		}

	case ast.KindText:
		if entering {
			textNode := node.(*ast.Text)
			renderer.inline.WriteString(html.UnescapeString(string(textNode.Segment.Value(renderer.source))))
			if textNode.SoftLineBreak() {
				renderer.inline.WriteString(" ")
			}
			if textNode.HardLineBreak() {
				renderer.inline.WriteString("\n")
			}
		}

	case ast.KindString:
		if entering {
			renderer.inline.Write(node.(*ast.String).Value)
		}

	case ast.KindCodeSpan:
		if entering {
			renderer.inline.WriteString(renderer.newStyle().Foreground(codeColor).Render(renderer.plainText(node)))
			return ast.WalkSkipChildren, nil
		}

	case extast.KindTable:
		if entering {
			renderer.renderTable(node)
			return ast.WalkSkipChildren, nil
		}
	}
	return ast.WalkContinue, nil
}

// plainText concatenates the text of node's children without styling.
func (renderer *terminalRenderer) plainText(node ast.Node) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			b.Write(child.Segment.Value(renderer.source))
		case *ast.String:
			b.Write(child.Value)
		default:
			b.WriteString(renderer.plainText(child))
		}
	}
	return b.String()
}

// cellText renders one table cell's inline content, keeping code span
// styling.
func (renderer *terminalRenderer) cellText(cell ast.Node) string {
	saved := renderer.inline.String()
	renderer.inline.Reset()
	for child := cell.FirstChild(); child != nil; child = child.NextSibling() {
		ast.Walk(child, renderer.walk)
	}
	content := renderer.inline.String()
	renderer.inline.Reset()
	renderer.inline.WriteString(saved)
	return content
}

func (renderer *terminalRenderer) renderTable(node ast.Node) {
	var rows [][]string
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Kind() != extast.KindTableHeader && child.Kind() != extast.KindTableRow {
			continue
		}
		var cells []string
		for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, renderer.cellText(cell))
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return
	}

	columnWidths := make([]int, len(rows[0]))
	for _, row := range rows {
		for index, cell := range row {
			if index < len(columnWidths) {
				columnWidths[index] = max(columnWidths[index], lipgloss.Width(cell))
			}
		}
	}

	const separator = "  "
	renderer.blankLine()
	for rowIndex, row := range rows {
		parts := make([]string, len(columnWidths))
		for index, width := range columnWidths {
			cell := ""
			if index < len(row) {
				cell = row[index]
			}
			if rowIndex == 0 {
				cell = renderer.newStyle().Bold(true).Render(ansi.Strip(cell))
			}
			parts[index] = cell + strings.Repeat(" ", max(width-lipgloss.Width(cell), 0))
		}
		line := strings.TrimRight(strings.Join(parts, separator), " ")
		renderer.output.WriteString(ansi.Truncate(line, renderer.width, "…") + "\n")

		if rowIndex == 0 {
			rules := make([]string, len(columnWidths))
			for index, width := range columnWidths {
				rules[index] = strings.Repeat("─", width)
			}
			rule := renderer.newStyle().Foreground(borderColor).Render(strings.Join(rules, separator))
			renderer.output.WriteString(ansi.Truncate(rule, renderer.width, "") + "\n")
		}
	}
	renderer.blankLine()
}
