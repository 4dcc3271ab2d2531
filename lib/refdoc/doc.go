// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package refdoc generates reference documentation for a command tree.
//
// [Markdown] produces one section per node in tree order. [HTML]
// converts that Markdown with goldmark, and [Terminal] renders it with
// ANSI styling for reading in a terminal. [Highlight] colors schema
// source text.
package refdoc
