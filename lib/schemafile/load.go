// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/dcli/lib/clischema"
)

// Format identifies a schema file encoding.
type Format int

const (
	YAML Format = iota
	JSON
	Compiled
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	case Compiled:
		return "compiled"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatForPath returns the format implied by path's extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json", ".jsonc":
		return JSON, nil
	case ".dclic":
		return Compiled, nil
	default:
		return 0, fmt.Errorf("%s: unrecognized schema file extension (expected .yaml, .yml, .json, .jsonc or .dclic)", path)
	}
}

// Load reads, decodes and builds the schema at path.
func Load(path string) (*clischema.Node, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	root, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// Parse decodes and builds a schema held in memory.
func Parse(data []byte, format Format) (*clischema.Node, error) {
	if format == Compiled {
		return Decompile(data)
	}
	raw, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return clischema.Build(raw)
}

// Decode decodes a YAML or JSON schema source without building it.
func Decode(data []byte, format Format) (*clischema.RawNode, error) {
	var raw clischema.RawNode
	switch format {
	case YAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("parsing yaml schema: document is empty")
			}
			return nil, fmt.Errorf("parsing yaml schema: %w", err)
		}

	case JSON:
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		decoder.UseNumber()
		if err := decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("parsing json schema: document is empty")
			}
			return nil, fmt.Errorf("parsing json schema: %w", err)
		}

	default:
		return nil, fmt.Errorf("cannot decode %s schema as source", format)
	}
	return &raw, nil
}
