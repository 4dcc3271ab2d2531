// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/dcli/cmd/dcli/cli"
	"github.com/bureau-foundation/dcli/lib/clischema"
	"github.com/bureau-foundation/dcli/lib/codec"
	"github.com/bureau-foundation/dcli/lib/dispatch"
	"github.com/bureau-foundation/dcli/lib/refdoc"
	"github.com/bureau-foundation/dcli/lib/schemafile"
)

func schemaCommand(env *Environment) *cli.Command {
	return &cli.Command{
		Name:    "schema",
		Summary: "Validate, inspect, and compile schema files",
		Subcommands: []*cli.Command{
			schemaValidateCommand(env),
			schemaShowCommand(env),
			schemaCompileCommand(env),
		},
	}
}

type validateParams struct {
	cli.JSONOutput
	Handlers []string `json:"handlers" flag:"handlers" desc:"command identifiers with handlers; report schema commands missing from this list"`
}

// validation is the per-file report of "schema validate".
type validation struct {
	File            string   `json:"file"`
	Valid           bool     `json:"valid"`
	Error           string   `json:"error,omitempty"`
	Category        string   `json:"category,omitempty"`
	Commands        int      `json:"commands"`
	Digest          string   `json:"digest,omitempty"`
	MissingHandlers []string `json:"missing_handlers,omitempty"`
}

func schemaValidateCommand(env *Environment) *cli.Command {
	var params validateParams

	return &cli.Command{
		Name:    "validate",
		Summary: "Check that schema files build",
		Description: `Load and build each schema file, reporting every failure. Files are
checked concurrently. With --handlers, also list command identifiers
the schema can reach that have no handler.

Exits 1 when any file is invalid or has missing handlers.`,
		Usage: "dcli schema validate [flags] FILE...",
		Examples: []cli.Example{
			{
				Description: "Check a schema against the handlers a program registers",
				Command:     "dcli schema validate --handlers show_status,deploy ops.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("validate", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 1, -1, "schema file"); err != nil {
				return err
			}

			var table dispatch.Table
			if len(params.Handlers) > 0 {
				table = dispatch.Table{}
				for _, command := range params.Handlers {
					table[command] = nil
				}
			}

			reports := make([]validation, len(args))
			var group errgroup.Group
			group.SetLimit(runtime.GOMAXPROCS(0))
			for i, path := range args {
				group.Go(func() error {
					reports[i] = validateFile(path, table)
					logger.Debug("validated", "file", path, "valid", reports[i].Valid)
					return nil
				})
			}
			group.Wait()

			failed := false
			for _, report := range reports {
				if !report.Valid {
					failed = true
				}
			}

			if done, err := params.EmitJSON(env.Stdout, reports); done {
				if err != nil {
					return err
				}
			} else {
				writeValidation(env.Stdout, reports)
			}
			if failed {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func validateFile(path string, table dispatch.Table) validation {
	report := validation{File: path}
	root, err := schemafile.Load(path)
	if err != nil {
		err = classifyLoadError(err)
		report.Error = err.Error()
		report.Category = string(cli.CategoryOf(err))
		return report
	}
	report.Commands = len(root.Commands())
	if digest, err := schemafile.Digest(root); err == nil {
		report.Digest = digest.String()
	}
	if table != nil {
		report.MissingHandlers = table.Missing(root)
	}
	report.Valid = len(report.MissingHandlers) == 0
	return report
}

func writeValidation(w io.Writer, reports []validation) {
	tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	for _, report := range reports {
		switch {
		case report.Error != "":
			fmt.Fprintf(tw, "FAIL\t%s\t%s\n", report.File, report.Error)
		case len(report.MissingHandlers) > 0:
			fmt.Fprintf(tw, "FAIL\t%s\tno handler for %v\n", report.File, report.MissingHandlers)
		default:
			fmt.Fprintf(tw, "ok\t%s\t%d commands, digest %.16s\n", report.File, report.Commands, report.Digest)
		}
	}
	tw.Flush()
}

type showParams struct {
	Color      bool `json:"color"      flag:"color"      desc:"highlight the YAML output"`
	Digest     bool `json:"digest"     flag:"digest"     desc:"print the schema fingerprint before the tree"`
	Diagnostic bool `json:"diagnostic" flag:"diagnostic" desc:"print a compiled schema's CBOR payload in diagnostic notation"`
}

func schemaShowCommand(env *Environment) *cli.Command {
	var params showParams

	return &cli.Command{
		Name:    "show",
		Summary: "Print a schema as YAML",
		Description: `Print the raw tree of a schema file (any format, including compiled
caches) as YAML. The schema is built first, so invalid schemas are
reported instead of printed.`,
		Usage: "dcli schema show [flags] [FILE]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
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

			raw, root, data, err := readSchema(path)
			if err != nil {
				return err
			}
			logger.Debug("loaded schema", "file", path, "bytes", len(data))

			if params.Digest {
				digest, err := schemafile.Digest(root)
				if err != nil {
					return cli.Internal("computing digest: %w", err)
				}
				fmt.Fprintf(env.Stdout, "# digest: %s\n", digest)
			}

			if params.Diagnostic {
				payload, err := schemafile.Payload(data)
				if err != nil {
					return cli.Validation("%s is not a compiled schema: %w", path, err)
				}
				notation, err := codec.Diagnose(payload)
				if err != nil {
					return cli.Internal("diagnosing payload: %w", err)
				}
				_, err = fmt.Fprintln(env.Stdout, notation)
				return err
			}

			var b bytes.Buffer
			encoder := yaml.NewEncoder(&b)
			encoder.SetIndent(2)
			if err := encoder.Encode(raw); err != nil {
				return cli.Internal("encoding YAML: %w", err)
			}
			encoder.Close()

			if params.Color || colorEnabled(env.Config.Color, env.Stdout) {
				if err := refdoc.Highlight(env.Stdout, b.String(), "yaml"); err != nil {
					return cli.Internal("highlighting: %w", err)
				}
				return nil
			}
			_, err = env.Stdout.Write(b.Bytes())
			return err
		},
	}
}

// readSchema reads path and returns its raw tree, the built tree, and
// the file contents.
func readSchema(path string) (*clischema.RawNode, *clischema.Node, []byte, error) {
	format, err := schemafile.FormatForPath(path)
	if err != nil {
		return nil, nil, nil, cli.Validation("%w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, classifyLoadError(err)
	}

	var raw *clischema.RawNode
	if format == schemafile.Compiled {
		raw, err = schemafile.DecompileRaw(data)
	} else {
		raw, err = schemafile.Decode(data, format)
	}
	if err != nil {
		return nil, nil, nil, classifyLoadError(fmt.Errorf("%s: %w", path, err))
	}
	root, err := clischema.Build(raw)
	if err != nil {
		return nil, nil, nil, classifyLoadError(fmt.Errorf("%s: %w", path, err))
	}
	return raw, root, data, nil
}

type compileParams struct {
	Output      string                 `json:"output"      flag:"output,o"    desc:"output file (default: input with a .dclic extension)"`
	Compression schemafile.Compression `json:"compression" flag:"compression" desc:"payload compression: none, lz4, or zstd" default:"zstd"`
}

func schemaCompileCommand(env *Environment) *cli.Command {
	var params compileParams

	return &cli.Command{
		Name:    "compile",
		Summary: "Compile a schema into the binary cache format",
		Description: `Build a schema and write it as a compiled cache: deterministic CBOR,
optionally compressed, with a BLAKE3 fingerprint that is verified on
load. Compiled files load without YAML or JSON parsing.`,
		Usage: "dcli schema compile [flags] FILE",
		Examples: []cli.Example{
			{
				Description: "Compile with lz4 for the fastest load",
				Command:     "dcli schema compile --compression lz4 -o ops.dclic ops.yaml",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("compile", &params)
		},
		Run: func(_ context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs(args, 1, 1, "schema file"); err != nil {
				return err
			}
			compression := params.Compression
			root, err := loadSchema(args[0])
			if err != nil {
				return err
			}

			data, err := schemafile.Compile(root, compression)
			if err != nil {
				return cli.Internal("compiling %s: %w", args[0], err)
			}
			output := params.Output
			if output == "" {
				output = compiledPath(args[0])
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return cli.Internal("writing %s: %w", output, err)
			}

			digest, err := schemafile.DigestOf(data)
			if err != nil {
				return cli.Internal("reading back %s: %w", output, err)
			}
			logger.Info("compiled schema",
				"input", args[0],
				"output", output,
				"compression", compression.String(),
				"bytes", len(data),
				"digest", digest.String(),
			)
			fmt.Fprintf(env.Stdout, "%s  %s\n", digest, output)
			return nil
		},
	}
}

// compiledPath replaces the extension of path with .dclic.
func compiledPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".dclic"
}
