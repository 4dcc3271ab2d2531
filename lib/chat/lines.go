// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package chat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// RunLines answers every line read from in, writing each reply to out
// followed by a blank line. Blank lines are skipped; "exit" or "quit"
// ends the loop.
func RunLines(session *Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if _, err := fmt.Fprintf(out, "%s\n\n", session.Reply(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// RunPrompt runs a line-edited prompt on the terminal with tab
// completion. History is loaded from and saved to historyPath when it
// is non-empty. Ctrl-C and Ctrl-D end the prompt without error.
func RunPrompt(session *Session, out io.Writer, historyPath string) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		candidates := session.Complete(input)
		completions := make([]string, len(candidates))
		for i, candidate := range candidates {
			completions[i] = applyCompletion(input, candidate)
		}
		return completions
	})

	if historyPath != "" {
		if file, err := os.Open(historyPath); err == nil {
			line.ReadHistory(file)
			file.Close()
		}
	}

	for {
		input, err := line.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading prompt: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}
		line.AppendHistory(input)
		fmt.Fprintf(out, "%s\n\n", session.Reply(input))
	}

	if historyPath != "" {
		file, err := os.Create(historyPath)
		if err != nil {
			return fmt.Errorf("saving history: %w", err)
		}
		defer file.Close()
		if _, err := line.WriteHistory(file); err != nil {
			return fmt.Errorf("saving history: %w", err)
		}
	}
	return nil
}
