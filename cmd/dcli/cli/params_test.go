// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/dcli/lib/frontend"
	"github.com/bureau-foundation/dcli/lib/schemafile"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	type params struct {
		Schema   string   `flag:"schema" desc:"schema file"`
		Plain    bool     `flag:"plain,p" desc:"line mode"`
		Width    int      `flag:"width" desc:"wrap width"`
		Handlers []string `flag:"handlers" desc:"handler identifiers"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{
		"--schema", "ops.yaml",
		"-p",
		"--width", "100",
		"--handlers", "deploy,show_status",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Schema != "ops.yaml" || !p.Plain || p.Width != 100 {
		t.Errorf("params = %+v", p)
	}
	if !slices.Equal(p.Handlers, []string{"deploy", "show_status"}) {
		t.Errorf("Handlers = %v", p.Handlers)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field registered a flag")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	type params struct {
		Output      string                 `flag:"output" default:"ops.dclic"`
		Width       int                    `flag:"width" default:"80"`
		Color       bool                   `flag:"color" default:"true"`
		Handlers    []string               `flag:"handlers" default:"a,b"`
		Compression schemafile.Compression `flag:"compression" default:"zstd"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if p.Output != "ops.dclic" || p.Width != 80 || !p.Color || p.Compression != schemafile.CompressionZstd {
		t.Errorf("defaults not applied: %+v", p)
	}
	if !slices.Equal(p.Handlers, []string{"a", "b"}) {
		t.Errorf("Handlers = %v, want [a b]", p.Handlers)
	}
}

func TestBindFlags_ValueFields(t *testing.T) {
	type params struct {
		Frontend    frontend.Kind          `flag:"frontend"`
		Compression schemafile.Compression `flag:"compression" default:"zstd"`
	}

	// A value field without a default tag keeps what the caller seeded.
	p := params{Frontend: frontend.Bot}
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Frontend != frontend.Bot {
		t.Errorf("Frontend = %v, want the seeded bot", p.Frontend)
	}
	if got := flagSet.Lookup("frontend").DefValue; got != "bot" {
		t.Errorf("--frontend default shown as %q, want bot", got)
	}

	flagSet = FlagsFromParams("test", &p)
	if err := flagSet.Parse([]string{"--frontend", "standard", "--compression=lz4"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Frontend != frontend.Standard || p.Compression != schemafile.CompressionLZ4 {
		t.Errorf("params = %+v", p)
	}

	flagSet = FlagsFromParams("test", &p)
	err := flagSet.Parse([]string{"--frontend", "irc"})
	if err == nil || !strings.Contains(err.Error(), "unknown frontend") {
		t.Errorf("Parse(--frontend irc) error = %v", err)
	}
}

func TestBindFlags_EmbeddedJSONOutput(t *testing.T) {
	type params struct {
		JSONOutput
		Schema string `flag:"schema"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse([]string{"--json", "--schema", "x.yaml"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.OutputJSON || p.Schema != "x.yaml" {
		t.Errorf("params = %+v", p)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	type badDefault struct {
		Width int `flag:"width" default:"wide"`
	}
	type badValueDefault struct {
		Compression schemafile.Compression `flag:"compression" default:"gzip"`
	}
	type unsupported struct {
		Timeout time.Duration `flag:"timeout"`
	}
	type named struct {
		Name string `flag:"name"`
	}
	notStruct := "text"

	tests := []struct {
		name   string
		params any
		want   string
	}{
		{"not a pointer", named{}, "params must be a pointer to a struct"},
		{"not a struct", &notStruct, "params must be a pointer to a struct"},
		{"bad default", &badDefault{}, "default for --width"},
		{"bad value default", &badValueDefault{}, "default for --compression"},
		{"unsupported type", &unsupported{}, "unsupported type time.Duration"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := BindFlags(test.params, pflag.NewFlagSet("test", pflag.ContinueOnError))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %q, want substring %q", err, test.want)
			}
		})
	}
}

func TestFlagsFromParams_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for nil input, got none")
		}
	}()
	FlagsFromParams("test", nil)
}
