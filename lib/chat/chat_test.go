// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat_test

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/dcli/lib/chat"
	"github.com/bureau-foundation/dcli/lib/clischema/clischematest"
	"github.com/bureau-foundation/dcli/lib/frontend"
)

func newSession() *chat.Session {
	return chat.NewSession(clischematest.Ops(), frontend.Options{})
}

func TestReply(t *testing.T) {
	t.Parallel()
	session := newSession()

	tests := []struct {
		name string
		line string
		want string
	}{
		{
			name: "flag",
			line: "status --verbose",
			want: "show_status\n  verbose = true",
		},
		{
			name: "defaults and quoting",
			line: `deploy staging --replicas 3 "ship it now"`,
			want: "deploy\n  dry-run = false\n  env = staging\n  message = ship it now\n  ratio = 0.5\n  region = eu\n  replicas = 3",
		},
		{
			name: "unset option",
			line: "deploy production",
			want: "deploy\n  dry-run = false\n  env = production\n  message = \n  ratio = 0.5\n  region = eu\n  replicas = (unset)",
		},
		{
			name: "positional default",
			line: "venv create",
			want: "venv_create\n  path = .venv",
		},
		{
			name: "help suffix",
			line: "status ?",
			want: "<bot> status [verbose]",
		},
		{
			name: "help prefix",
			line: "help venv",
			want: "<bot> venv [create | remove]",
		},
		{
			name: "root help",
			line: "?",
			want: "<bot> {status | deploy | venv | db}",
		},
		{
			name: "missing positional",
			line: "deploy",
			want: "Error parsing the command: argument env: missing required argument\n" +
				"<bot> deploy [env ...] [replicas ...] [ratio ...] [dry-run] [region ...] [message ...]",
		},
		{
			name: "routing node",
			line: "db",
			want: "Error parsing the command: a command is required (choose from 'migrate')\n<bot> db {migrate}",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := session.Reply(test.line); got != test.want {
				t.Errorf("Reply(%q) =\n%s\nwant\n%s", test.line, got, test.want)
			}
		})
	}
}

func TestReply_UnbalancedQuote(t *testing.T) {
	t.Parallel()
	reply := newSession().Reply(`deploy staging "oops`)
	if !strings.HasPrefix(reply, "Could not split that line:") {
		t.Errorf("Reply() = %q, want a split error", reply)
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()
	session := newSession()

	tests := []struct {
		line string
		want []string
	}{
		{"", []string{"status", "deploy", "venv", "db"}},
		{"ve", []string{"venv"}},
		{"venv ", []string{"create", "remove"}},
		{"db mgr", []string{"migrate"}},
		{"help ven", []string{"venv"}},
		{"xyz", nil},
		{"status --verbose ", nil},
	}
	for _, test := range tests {
		got := session.Complete(test.line)
		if len(got) == 0 && len(test.want) == 0 {
			continue
		}
		if !slices.Equal(got, test.want) {
			t.Errorf("Complete(%q) = %q, want %q", test.line, got, test.want)
		}
	}
}

func TestComplete_Options(t *testing.T) {
	t.Parallel()
	got := newSession().Complete("deploy staging --re")
	slices.Sort(got)
	if want := []string{"region", "replicas"}; !slices.Equal(got, want) {
		t.Errorf("Complete() = %q, want %q", got, want)
	}
}

func TestRunLines(t *testing.T) {
	t.Parallel()
	input := strings.NewReader("status\n\n  ?  \nexit\nstatus --verbose\n")
	var output bytes.Buffer
	if err := chat.RunLines(newSession(), input, &output); err != nil {
		t.Fatalf("RunLines() error: %v", err)
	}
	want := "show_status\n  verbose = false\n\n<bot> {status | deploy | venv | db}\n\n"
	if output.String() != want {
		t.Errorf("output =\n%q\nwant\n%q", output.String(), want)
	}
}

func send(t *testing.T, model chat.Model, message tea.Msg) (chat.Model, tea.Cmd) {
	t.Helper()
	updated, command := model.Update(message)
	next, ok := updated.(chat.Model)
	if !ok {
		t.Fatalf("Update() returned %T, want chat.Model", updated)
	}
	return next, command
}

func TestModel_CompleteAndSubmit(t *testing.T) {
	t.Parallel()
	model := chat.NewModel(newSession())
	model, _ = send(t, model, tea.WindowSizeMsg{Width: 60, Height: 20})

	model, _ = send(t, model, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("stat")})
	if got := model.Hints(); !slices.Equal(got, []string{"status"}) {
		t.Fatalf("Hints() = %q, want [status]", got)
	}

	model, _ = send(t, model, tea.KeyMsg{Type: tea.KeyTab})
	model, _ = send(t, model, tea.KeyMsg{Type: tea.KeyEnter})

	transcript := model.Transcript()
	if len(transcript) != 1 {
		t.Fatalf("transcript has %d exchanges, want 1", len(transcript))
	}
	if transcript[0].Line != "status" || transcript[0].Reply != "show_status\n  verbose = false" {
		t.Errorf("exchange = %+v", transcript[0])
	}
	if view := model.View(); !strings.Contains(view, "show_status") {
		t.Errorf("View() does not show the reply:\n%s", view)
	}
}

func TestModel_EmptySubmitIgnored(t *testing.T) {
	t.Parallel()
	model := chat.NewModel(newSession())
	model, command := send(t, model, tea.KeyMsg{Type: tea.KeyEnter})
	if command != nil {
		t.Error("empty submit returned a command")
	}
	if len(model.Transcript()) != 0 {
		t.Error("empty submit added an exchange")
	}
}

func TestModel_Quit(t *testing.T) {
	t.Parallel()
	for _, message := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, command := send(t, chat.NewModel(newSession()), message)
		if command == nil {
			t.Fatalf("%s returned no command", message)
		}
		if _, ok := command().(tea.QuitMsg); !ok {
			t.Errorf("%s did not quit", message)
		}
	}
}
