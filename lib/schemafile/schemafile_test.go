// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemafile

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/bureau-foundation/dcli/lib/clischema"
	"github.com/bureau-foundation/dcli/lib/clischema/clischematest"
)

func TestLoad_SourceFormatsMatchFixture(t *testing.T) {
	want := clischematest.Ops().Raw()
	for _, name := range []string{"ops.yaml", "ops.jsonc"} {
		t.Run(name, func(t *testing.T) {
			root, err := Load(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			if got := root.Raw(); !reflect.DeepEqual(got, want) {
				t.Errorf("Load(%s).Raw() differs from fixture:\n got  %+v\n want %+v", name, got, want)
			}
		})
	}
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		format Format
		source string
	}{
		{YAML, "help: root\nsubtree:\n  - keyword: a\n    help: a\n    args:\n      - name: x\n        help: x\n        positonal: true\n"},
		{JSON, `{"help": "root", "colour": "blue"}`},
	}
	for _, test := range tests {
		if _, err := Decode([]byte(test.source), test.format); err == nil {
			t.Errorf("Decode(%s) accepted an unknown key", test.format)
		}
	}
}

func TestDecode_Empty(t *testing.T) {
	for _, format := range []Format{YAML, JSON} {
		_, err := Decode(nil, format)
		if err == nil || !strings.Contains(err.Error(), "document is empty") {
			t.Errorf("Decode(empty %s) error = %v", format, err)
		}
	}
}

func TestParse_SchemaErrorsSurface(t *testing.T) {
	_, err := Parse([]byte("keyword: root\nhelp: root\n"), YAML)
	var schemaErr *clischema.SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Parse error = %v, want *SchemaError", err)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"cli.yaml": YAML, "cli.YML": YAML, "cli.json": JSON, "x/cli.jsonc": JSON, "cli.dclic": Compiled,
	}
	for path, want := range tests {
		got, err := FormatForPath(path)
		if err != nil || got != want {
			t.Errorf("FormatForPath(%q) = %v, %v; want %v", path, got, err, want)
		}
	}
	if _, err := FormatForPath("cli.toml"); err == nil {
		t.Error("FormatForPath(cli.toml) succeeded")
	}
}

func TestCompile_RoundTrip(t *testing.T) {
	root := clischematest.Ops()
	want, err := Digest(root)
	if err != nil {
		t.Fatalf("Digest error: %v", err)
	}

	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			data, err := Compile(root, compression)
			if err != nil {
				t.Fatalf("Compile error: %v", err)
			}
			if string(data[:4]) != "DCLI" {
				t.Errorf("magic = %q", data[:4])
			}
			decoded, err := Decompile(data)
			if err != nil {
				t.Fatalf("Decompile error: %v", err)
			}
			if !reflect.DeepEqual(decoded.Raw(), root.Raw()) {
				t.Errorf("round trip changed the schema:\n got  %+v\n want %+v", decoded.Raw(), root.Raw())
			}
			got, err := DigestOf(data)
			if err != nil || got != want {
				t.Errorf("DigestOf = %s, %v; want %s", got, err, want)
			}
		})
	}
}

func TestCompile_Deterministic(t *testing.T) {
	first, err := Compile(clischematest.Ops(), CompressionZstd)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	second, err := Compile(clischematest.Ops(), CompressionZstd)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if string(first) != string(second) {
		t.Error("Compile output differs between runs")
	}
}

func TestCompile_IncompressibleFallsBack(t *testing.T) {
	tiny, err := clischema.Build(&clischema.RawNode{Help: "x"})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	data, err := Compile(tiny, CompressionLZ4)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	// A schema this small does not shrink under LZ4.
	if Compression(data[5]) != CompressionNone {
		t.Errorf("compression tag = %s, want none", Compression(data[5]))
	}
	if _, err := Decompile(data); err != nil {
		t.Errorf("Decompile error: %v", err)
	}
}

func TestDecompile_DetectsCorruption(t *testing.T) {
	good, err := Compile(clischematest.Ops(), CompressionNone)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	corrupt := func(edit func([]byte) []byte) []byte {
		return edit(append([]byte(nil), good...))
	}
	tests := map[string][]byte{
		"truncated header": good[:10],
		"bad magic":        corrupt(func(b []byte) []byte { b[0] = 'X'; return b }),
		"bad version":      corrupt(func(b []byte) []byte { b[4] = 9; return b }),
		"unknown tag":      corrupt(func(b []byte) []byte { b[5] = 7; return b }),
		"flipped payload":  corrupt(func(b []byte) []byte { b[len(b)-1] ^= 0xff; return b }),
		"flipped digest":   corrupt(func(b []byte) []byte { b[20] ^= 0x01; return b }),
		"truncated body":   good[:len(good)-3],
	}
	for name, data := range tests {
		if _, err := Decompile(data); !errors.Is(err, ErrCorrupt) {
			t.Errorf("%s: Decompile error = %v, want ErrCorrupt", name, err)
		}
	}
}

func TestPayload_RejectsOversizedHeader(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			data, err := Compile(clischematest.Ops(), compression)
			if err != nil {
				t.Fatalf("Compile error: %v", err)
			}
			for _, size := range []uint32{0xffffffff, maxPayloadSize + 1} {
				edited := append([]byte(nil), data...)
				binary.BigEndian.PutUint32(edited[6:10], size)
				_, err := Payload(edited)
				if !errors.Is(err, ErrCorrupt) {
					t.Fatalf("Payload(size %d) error = %v, want ErrCorrupt", size, err)
				}
				if !strings.Contains(err.Error(), "exceeds") {
					t.Errorf("Payload(size %d) error = %v, want the size limit reported", size, err)
				}
			}
		})
	}
}

func TestDecompress_LZ4RatioBound(t *testing.T) {
	_, err := decompress(make([]byte, 4), CompressionLZ4, 4*lz4MaxRatio+1)
	if err == nil || !strings.Contains(err.Error(), "impossible") {
		t.Errorf("decompress error = %v, want ratio bound rejection", err)
	}
}

func TestLoad_Compiled(t *testing.T) {
	data, err := Compile(clischematest.Nested(), CompressionZstd)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "nested.dclic")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	root, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if root.Find("A", "B") == nil {
		t.Error("compiled schema lost A -> B")
	}
}

func TestParseCompression(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		parsed, err := ParseCompression(compression.String())
		if err != nil || parsed != compression {
			t.Errorf("ParseCompression(%q) = %v, %v", compression.String(), parsed, err)
		}
	}
	if _, err := ParseCompression("gzip"); err == nil {
		t.Error("ParseCompression(gzip) succeeded")
	}
}
