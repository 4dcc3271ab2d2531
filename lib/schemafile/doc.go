// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package schemafile reads command-tree schemas from disk.
//
// Three formats are accepted, chosen by file extension:
//
//   - .yaml / .yml: YAML, the usual authoring format.
//   - .json / .jsonc: JSON, optionally with // and /* */ comments and
//     trailing commas.
//   - .dclic: a compiled schema written by [Compile].
//
// Every format decodes to a [clischema.RawNode] and goes through
// [clischema.Build], so all formats are validated identically. Unknown
// keys are rejected rather than ignored: a misspelled "positonal" would
// otherwise silently turn a positional argument into an option.
//
// # Compiled format
//
// A compiled schema is a fixed 42-byte header followed by the payload:
//
//	offset  size  field
//	0       4     magic "DCLI"
//	4       1     format version (1)
//	5       1     compression (0 none, 1 lz4, 2 zstd)
//	6       4     uncompressed payload size, big-endian
//	10      32    BLAKE3 keyed digest of the uncompressed payload
//	42      ...   payload, compressed as recorded
//
// The uncompressed payload is the deterministic CBOR encoding of the
// schema's raw tree. The digest doubles as the schema fingerprint
// returned by [Digest].
package schemafile
