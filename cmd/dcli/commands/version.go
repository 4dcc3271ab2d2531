// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/dcli/cmd/dcli/cli"
	"github.com/bureau-foundation/dcli/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

func versionCommand(env *Environment) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if err := requireArgs(args, 0, 0, ""); err != nil {
				return err
			}
			if done, err := params.EmitJSON(env.Stdout, version.Fields()); done {
				return err
			}
			_, err := fmt.Fprintf(env.Stdout, "dcli %s\n", version.Full())
			return err
		},
	}
}
