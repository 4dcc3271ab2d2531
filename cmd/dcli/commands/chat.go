// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/dcli/cmd/dcli/cli"
	"github.com/bureau-foundation/dcli/lib/chat"
	"github.com/bureau-foundation/dcli/lib/frontend"
)

type chatParams struct {
	Plain   bool   `json:"plain"   flag:"plain"   desc:"read lines from stdin and print replies, without a terminal UI"`
	Prompt  bool   `json:"prompt"  flag:"prompt"  desc:"use a line-edited prompt with history instead of the full-screen UI"`
	Program string `json:"program" flag:"program" desc:"bot name shown in usage lines (default: <bot>)"`
	History string `json:"history" flag:"history" desc:"prompt history file (default: configured history)"`
}

func chatCommand(env *Environment) *cli.Command {
	var params chatParams

	return &cli.Command{
		Name:    "chat",
		Summary: "Talk to a schema through the chat-bot front end",
		Description: `Start a conversational shell over the permissive front end. Each
line is resolved the way a chat bot would: "help deploy" or
"deploy ?" shows usage, anything else is bound and summarized.

The full-screen interface completes keywords with tab. When stdin is
not a terminal, or with --plain, lines are read from stdin instead.`,
		Usage: "dcli chat [flags] [FILE]",
		Examples: []cli.Example{
			{
				Description: "Replay a transcript of bot messages",
				Command:     "dcli chat --plain ops.yaml < messages.txt",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("chat", &params)
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 0, 1, "schema file"); err != nil {
				return err
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
			if program == "" && env.Config.Frontend == frontend.Bot.String() {
				program = env.Config.Program
			}
			session := chat.NewSession(root, frontend.Options{Program: program})

			switch {
			case params.Plain || !isTerminal(env.Stdin):
				logger.Debug("chat in line mode", "schema", path)
				return chat.RunLines(session, env.Stdin, env.Stdout)

			case params.Prompt:
				history := params.History
				if history == "" {
					history = env.Config.History
				}
				logger.Debug("chat prompt", "schema", path, "history", history)
				return chat.RunPrompt(session, env.Stdout, history)

			default:
				ui := tea.NewProgram(chat.NewModel(session),
					tea.WithAltScreen(),
					tea.WithContext(ctx),
					tea.WithInput(env.Stdin),
					tea.WithOutput(env.Stdout),
				)
				if _, err := ui.Run(); err != nil {
					return cli.Internal("chat interface: %w", err)
				}
				return nil
			}
		},
	}
}

func isTerminal(r any) bool {
	file, ok := r.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
