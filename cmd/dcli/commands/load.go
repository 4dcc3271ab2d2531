// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"os"

	"github.com/bureau-foundation/dcli/cmd/dcli/cli"
	"github.com/bureau-foundation/dcli/lib/clischema"
	"github.com/bureau-foundation/dcli/lib/schemafile"
)

var errNoSchema = errors.New("no schema file given and none configured")

// schemaPath picks the explicit path, falling back to the configured
// schema.
func schemaPath(env *Environment, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env.Config.Schema != "" {
		return env.Config.Schema, nil
	}
	return "", cli.Validation("%w", errNoSchema)
}

// loadSchema loads and builds the schema at path, classifying failures.
func loadSchema(path string) (*clischema.Node, error) {
	root, err := schemafile.Load(path)
	if err != nil {
		return nil, classifyLoadError(err)
	}
	return root, nil
}

// classifyLoadError reports a missing file as not_found. Everything
// else schemafile returns (unreadable syntax, unknown keys, schema
// errors, corrupt caches) is a problem with the input.
func classifyLoadError(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return cli.NotFound("%w", err)
	}
	return cli.Validation("%w", err)
}
