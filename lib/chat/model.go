// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// maxHints bounds the completion hints shown under the input.
const maxHints = 6

// Exchange is one line sent and the reply it produced.
type Exchange struct {
	Line  string
	Reply string
}

// Model is the bubbletea model of the interactive chat.
type Model struct {
	session *Session
	keys    KeyMap
	input   textinput.Model

	transcript []Exchange
	hints      []string

	width  int
	height int

	lineStyle  lipgloss.Style
	replyStyle lipgloss.Style
	hintStyle  lipgloss.Style
	helpStyle  lipgloss.Style
}

// NewModel returns a chat model over session.
func NewModel(session *Session) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "type a command, or ? for help"
	input.Focus()

	return Model{
		session:    session,
		keys:       DefaultKeyMap(),
		input:      input,
		hints:      session.Complete(""),
		width:      80,
		height:     24,
		lineStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		replyStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		hintStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		helpStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
	}
}

// Transcript returns the exchanges so far, oldest first.
func (model Model) Transcript() []Exchange {
	return append([]Exchange(nil), model.transcript...)
}

// Hints returns the completion candidates for the current input.
func (model Model) Hints() []string {
	return append([]string(nil), model.hints...)
}

func (model Model) Init() tea.Cmd {
	return textinput.Blink
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.input.Width = max(message.Width-ansi.StringWidth(model.input.Prompt)-1, 10)
		return model, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit

		case key.Matches(message, model.keys.Submit):
			line := strings.TrimSpace(model.input.Value())
			if line == "" {
				return model, nil
			}
			if line == "exit" || line == "quit" {
				return model, tea.Quit
			}
			model.transcript = append(model.transcript, Exchange{Line: line, Reply: model.session.Reply(line)})
			model.input.Reset()
			model.hints = model.session.Complete("")
			return model, nil

		case key.Matches(message, model.keys.Complete):
			if len(model.hints) > 0 {
				model.input.SetValue(applyCompletion(model.input.Value(), model.hints[0]))
				model.input.CursorEnd()
				model.hints = model.session.Complete(model.input.Value())
			}
			return model, nil
		}
	}

	var command tea.Cmd
	model.input, command = model.input.Update(message)
	model.hints = model.session.Complete(model.input.Value())
	return model, command
}

func (model Model) View() string {
	var lines []string
	for _, exchange := range model.transcript {
		lines = append(lines, model.lineStyle.Render("> "+exchange.Line))
		wrapped := ansi.Wrap(exchange.Reply, model.width, " ,.;-+|")
		for _, line := range strings.Split(wrapped, "\n") {
			lines = append(lines, model.replyStyle.Render(line))
		}
		lines = append(lines, "")
	}

	// Keep the input, hints, and help footer on screen.
	if room := model.height - 3; room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}

	lines = append(lines, model.input.View())

	hints := model.hints
	if len(hints) > maxHints {
		hints = hints[:maxHints]
	}
	lines = append(lines, ansi.Truncate(model.hintStyle.Render(strings.Join(hints, "  ")), model.width, "…"))

	var help []string
	for _, binding := range model.keys.ShortHelp() {
		help = append(help, binding.Help().Key+" "+binding.Help().Desc)
	}
	lines = append(lines, model.helpStyle.Render(strings.Join(help, " · ")))
	return strings.Join(lines, "\n")
}

// applyCompletion replaces the word being typed at the end of line
// with candidate and appends a space. Option candidates keep their
// "--" prefix.
func applyCompletion(line, candidate string) string {
	head := line
	if !strings.HasSuffix(line, " ") && line != "" {
		index := strings.LastIndex(line, " ")
		word := line[index+1:]
		head = line[:index+1]
		if strings.HasPrefix(word, "--") {
			candidate = "--" + candidate
		}
	}
	return head + candidate + " "
}
