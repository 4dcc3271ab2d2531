// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package frontend_test

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/bureau-foundation/dcli/lib/argbind"
	"github.com/bureau-foundation/dcli/lib/clischema/clischematest"
	"github.com/bureau-foundation/dcli/lib/frontend"
)

func TestStatusRoundTrip(t *testing.T) {
	root := clischematest.Status()
	for _, kind := range []frontend.Kind{frontend.Standard, frontend.Bot} {
		t.Run(kind.String(), func(t *testing.T) {
			resolver, err := frontend.New(kind, root, frontend.Options{Program: "tool"})
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			outcome, err := resolver.Resolve([]string{"status", "--verbose"})
			if err != nil {
				t.Fatalf("Resolve() error: %v", err)
			}
			if outcome.Help {
				t.Fatal("Resolve() returned a help outcome")
			}
			if outcome.Result.Command != "show_status" {
				t.Errorf("Command = %q, want show_status", outcome.Result.Command)
			}
			if !reflect.DeepEqual(outcome.Result.Values, map[string]any{"verbose": true}) {
				t.Errorf("Values = %v, want verbose=true", outcome.Result.Values)
			}
			if len(outcome.Result.Remaining) != 0 {
				t.Errorf("Remaining = %q, want empty", outcome.Result.Remaining)
			}
			if !reflect.DeepEqual(outcome.Consumed, []string{"status"}) {
				t.Errorf("Consumed = %q", outcome.Consumed)
			}
		})
	}
}

func TestPermissive_HelpPrecedence(t *testing.T) {
	resolver := frontend.NewPermissive(clischematest.Ops(), frontend.Options{})

	tests := []struct {
		name      string
		tokens    []string
		wantHelp  bool
		wantPath  []string
		wantUsage string
	}{
		{"help alone", []string{"help"}, true, nil, "<bot> {status | deploy | venv | db}"},
		{"question mark last", []string{"venv", "?"}, true, []string{"venv"}, "<bot> venv [create | remove]"},
		{"help last", []string{"db", "migrate", "help"}, true, []string{"db", "migrate"}, "<bot> db migrate [steps ...]"},
		{"help first", []string{"help", "deploy"}, true, []string{"deploy"}, ""},
		{"both markers", []string{"help", "status", "?"}, true, []string{"status"}, "<bot> status [verbose]"},
		{"help first and last", []string{"help", "venv", "help"}, true, []string{"venv"}, ""},
		{"help in the middle", []string{"venv", "help", "more"}, false, []string{"venv"}, ""},
		{"empty input", nil, false, nil, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			outcome, err := resolver.Resolve(test.tokens)
			if test.name == "empty input" {
				// The root only routes, so an empty line is a parse error.
				var parseErr *argbind.ArgParseError
				if !errors.As(err, &parseErr) {
					t.Fatalf("Resolve(nil) error = %v, want *ArgParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", test.tokens, err)
			}
			if outcome.Help != test.wantHelp {
				t.Errorf("Help = %v, want %v", outcome.Help, test.wantHelp)
			}
			if got := outcome.Node.Path(); !reflect.DeepEqual(got, test.wantPath) {
				t.Errorf("Node path = %q, want %q", got, test.wantPath)
			}
			if test.wantUsage != "" && outcome.Usage != test.wantUsage {
				t.Errorf("Usage = %q, want %q", outcome.Usage, test.wantUsage)
			}
			if outcome.Help && outcome.Result != nil {
				t.Error("help outcome carries a bind result")
			}
		})
	}
}

func TestPermissive_MidSequenceHelpIsLiteral(t *testing.T) {
	resolver := frontend.NewPermissive(clischematest.Ops(), frontend.Options{})
	outcome, err := resolver.Resolve([]string{"venv", "help", "more"})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if outcome.Result == nil {
		t.Fatal("Result is nil")
	}
	if outcome.Result.Command != "venv_info" {
		t.Errorf("Command = %q, want venv_info", outcome.Result.Command)
	}
	if want := []string{"help", "more"}; !reflect.DeepEqual(outcome.Result.Remaining, want) {
		t.Errorf("Remaining = %q, want %q", outcome.Result.Remaining, want)
	}
}

func TestPermissive_ZeroKeywordsAccepted(t *testing.T) {
	resolver := frontend.NewPermissive(clischematest.Ops().Child("deploy"), frontend.Options{})
	outcome, err := resolver.Resolve([]string{"staging", "hello"})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(outcome.Consumed) != 0 {
		t.Errorf("Consumed = %q, want none", outcome.Consumed)
	}
	if outcome.Result.String("env") != "staging" {
		t.Errorf("env = %q", outcome.Result.String("env"))
	}
}

func TestPermissive_NoBareWordOptions(t *testing.T) {
	resolver := frontend.NewPermissive(clischematest.Status(), frontend.Options{})
	outcome, err := resolver.Resolve([]string{"status", "verbose"})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if outcome.Result.Bool("verbose") {
		t.Error("bare word bound as an option")
	}
	if want := []string{"verbose"}; !reflect.DeepEqual(outcome.Result.Remaining, want) {
		t.Errorf("Remaining = %q, want %q", outcome.Result.Remaining, want)
	}
}

func TestStrict_HelpAnywhere(t *testing.T) {
	resolver := frontend.NewStrict(clischematest.Ops(), frontend.Options{Program: "ops"})

	tests := []struct {
		name     string
		tokens   []string
		wantHelp bool
		wantPath []string
	}{
		{"root", []string{"--help"}, true, nil},
		{"after keyword", []string{"db", "-h"}, true, []string{"db"}},
		{"between keywords", []string{"venv", "-h", "create"}, true, []string{"venv", "create"}},
		{"before keywords", []string{"-h", "db", "migrate"}, true, []string{"db", "migrate"}},
		{"binding region", []string{"deploy", "staging", "--help"}, true, []string{"deploy"}},
		{"after separator", []string{"deploy", "staging", "--", "--help"}, false, []string{"deploy"}},
		{"bare help word", []string{"status", "help"}, false, []string{"status"}},
		{"before text", []string{"deploy", "staging", "-h", "note"}, true, []string{"deploy"}},
		{"inside text", []string{"deploy", "staging", "pytest", "-h"}, false, []string{"deploy"}},
		{"option value before text", []string{"deploy", "staging", "--region", "us", "note", "--help"}, false, []string{"deploy"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			outcome, err := resolver.Resolve(test.tokens)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", test.tokens, err)
			}
			if outcome.Help != test.wantHelp {
				t.Errorf("Help = %v, want %v", outcome.Help, test.wantHelp)
			}
			if got := outcome.Node.Path(); !reflect.DeepEqual(got, test.wantPath) {
				t.Errorf("Node path = %q, want %q", got, test.wantPath)
			}
			if test.wantHelp && !strings.Contains(outcome.Usage, "Usage:") {
				t.Errorf("Usage is not a help page:\n%s", outcome.Usage)
			}
		})
	}
}

func TestStrict_TextCapturesHelpTokens(t *testing.T) {
	resolver := frontend.NewStrict(clischematest.Ops(), frontend.Options{Program: "ops"})
	outcome, err := resolver.Resolve([]string{"deploy", "staging", "pytest", "-h", "--help"})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if outcome.Help || outcome.Result == nil {
		t.Fatalf("Help = %v, Result = %v, want a bound result", outcome.Help, outcome.Result)
	}
	if got, want := outcome.Result.Text("message"), []string{"pytest", "-h", "--help"}; !reflect.DeepEqual(got, want) {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestStrict_CommandRequired(t *testing.T) {
	resolver := frontend.NewStrict(clischematest.Ops(), frontend.Options{Program: "ops"})

	_, err := resolver.Resolve([]string{"db"})
	var parseErr *argbind.ArgParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Resolve(db) error = %v, want *ArgParseError", err)
	}
	if !strings.Contains(parseErr.Error(), "a command is required (choose from 'migrate')") {
		t.Errorf("Error() = %q", parseErr.Error())
	}

	_, err = resolver.Resolve([]string{"db", "migrat"})
	if !errors.As(err, &parseErr) {
		t.Fatalf("Resolve(db migrat) error = %v, want *ArgParseError", err)
	}
	if parseErr.Token != "migrat" || !strings.Contains(parseErr.Error(), "did you mean 'migrate'?") {
		t.Errorf("Token = %q, Error() = %q", parseErr.Token, parseErr.Error())
	}
}

func TestRun(t *testing.T) {
	root := clischematest.Ops()
	bot := frontend.NewPermissive(root, frontend.Options{Program: "opsbot"})

	tests := []struct {
		name       string
		tokens     []string
		wantStatus int
		wantResult bool
		wantStdout string
		wantStderr []string
	}{
		{
			name:       "help",
			tokens:     []string{"venv", "?"},
			wantStatus: 0,
			wantStdout: "opsbot venv [create | remove]\n",
		},
		{
			name:       "invocation",
			tokens:     []string{"db", "migrate", "--steps", "4"},
			wantStatus: 0,
			wantResult: true,
		},
		{
			name:       "parse error",
			tokens:     []string{"db", "migrate", "--steps", "four"},
			wantStatus: 2,
			wantStderr: []string{
				"Error parsing the command: argument --steps: invalid integer value: 'four'\n",
				"opsbot db migrate [steps ...]\n",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			result, status := frontend.Run(bot, test.tokens, &stdout, &stderr)
			if status != test.wantStatus {
				t.Errorf("status = %d, want %d", status, test.wantStatus)
			}
			if (result != nil) != test.wantResult {
				t.Errorf("result = %+v, want present=%v", result, test.wantResult)
			}
			if stdout.String() != test.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout.String(), test.wantStdout)
			}
			for _, want := range test.wantStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr missing %q:\n%s", want, stderr.String())
				}
			}
		})
	}
}

type failingResolver struct{ frontend.Resolver }

func (failingResolver) Resolve([]string) (*frontend.Outcome, error) {
	return nil, errors.New("schema store unavailable")
}

func TestRun_UnexpectedErrorsPropagate(t *testing.T) {
	var stdout, stderr bytes.Buffer
	result, status := frontend.Run(failingResolver{}, nil, &stdout, &stderr)
	if result != nil || status != 1 {
		t.Errorf("Run() = (%v, %d), want (nil, 1)", result, status)
	}
	if !strings.Contains(stderr.String(), "schema store unavailable") {
		t.Errorf("stderr = %q, want the underlying error", stderr.String())
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range []frontend.Kind{frontend.Standard, frontend.Bot} {
		parsed, err := frontend.ParseKind(kind.String())
		if err != nil || parsed != kind {
			t.Errorf("ParseKind(%q) = %v, %v", kind.String(), parsed, err)
		}
	}
	if _, err := frontend.ParseKind("chat"); err == nil {
		t.Error("ParseKind(chat) succeeded")
	}
	if _, err := frontend.New(frontend.Kind(9), clischematest.Status(), frontend.Options{}); err == nil {
		t.Error("New(Kind(9)) succeeded")
	}
}

func TestResolversShareTreeConcurrently(t *testing.T) {
	root := clischematest.Ops()
	strict := frontend.NewStrict(root, frontend.Options{Program: "ops"})
	bot := frontend.NewPermissive(root, frontend.Options{})

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var resolver frontend.Resolver = strict
			if i%2 == 1 {
				resolver = bot
			}
			for range 100 {
				outcome, err := resolver.Resolve([]string{"deploy", "staging", "--replicas", "2", "go"})
				if err != nil {
					t.Errorf("Resolve() error: %v", err)
					return
				}
				if outcome.Result.Int("replicas") != 2 || outcome.Result.Text("message")[0] != "go" {
					t.Errorf("unexpected values %v", outcome.Result.Values)
					return
				}
			}
		}()
	}
	wg.Wait()
}
