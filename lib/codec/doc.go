// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR encoding used for compiled schemas.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so the
// same schema always compiles to identical bytes and its digest is
// stable across runs and machines:
//
//	data, err := codec.Marshal(raw)
//	err = codec.Unmarshal(data, &raw)
//
// Schema source types carry `json` struct tags only. fxamacker/cbor v2
// reads `json` tags as a fallback when `cbor` tags are absent, so one
// tag set names fields identically in YAML-adjacent JSON tooling and
// in the compiled form.
package codec
