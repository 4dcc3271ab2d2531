// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package schemafile

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/dcli/lib/clischema"
	"github.com/bureau-foundation/dcli/lib/codec"
)

const (
	compiledVersion = 1
	headerSize      = 4 + 1 + 1 + 4 + 32
)

var compiledMagic = []byte("DCLI")

// schemaDomainKey is the BLAKE3 key for schema digests: the ASCII
// domain name, zero-padded to 32 bytes. Changing it changes every
// fingerprint.
var schemaDomainKey = [32]byte{
	'd', 'c', 'l', 'i', '.', 's', 'c', 'h', 'e', 'm', 'a', '.',
	'c', 'o', 'm', 'p', 'i', 'l', 'e', 'd',
}

// Fingerprint is the BLAKE3 keyed digest of a schema's canonical
// encoding. Two schemas with equal fingerprints resolve every token
// list identically.
type Fingerprint [32]byte

func (f Fingerprint) String() string { return hex.EncodeToString(f[:]) }

// ErrCorrupt is wrapped by every Decompile error caused by the data
// itself rather than by an invalid schema inside it.
var ErrCorrupt = errors.New("corrupt compiled schema")

// Digest returns the fingerprint of the tree rooted at root.
func Digest(root *clischema.Node) (Fingerprint, error) {
	payload, err := codec.Marshal(root.Raw())
	if err != nil {
		return Fingerprint{}, fmt.Errorf("encoding schema: %w", err)
	}
	return digest(payload), nil
}

// Compile encodes root into the compiled format. When compression
// would not shrink the payload, it is stored uncompressed and the
// header records that.
func Compile(root *clischema.Node, compression Compression) ([]byte, error) {
	payload, err := codec.Marshal(root.Raw())
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("encoded schema is %d bytes, larger than the format allows", len(payload))
	}

	stored, err := compress(payload, compression)
	if errors.Is(err, errIncompressible) {
		stored, compression = payload, CompressionNone
	} else if err != nil {
		return nil, err
	}

	sum := digest(payload)
	out := make([]byte, 0, headerSize+len(stored))
	out = append(out, compiledMagic...)
	out = append(out, compiledVersion, byte(compression))
	out = binary.BigEndian.AppendUint32(out, uint32(len(payload)))
	out = append(out, sum[:]...)
	out = append(out, stored...)
	return out, nil
}

// Decompile verifies and decodes data produced by [Compile] and builds
// the schema it holds.
func Decompile(data []byte) (*clischema.Node, error) {
	raw, err := DecompileRaw(data)
	if err != nil {
		return nil, err
	}
	return clischema.Build(raw)
}

// DecompileRaw verifies data and decodes the raw tree without
// building it.
func DecompileRaw(data []byte) (*clischema.RawNode, error) {
	payload, err := Payload(data)
	if err != nil {
		return nil, err
	}
	var raw clischema.RawNode
	if err := codec.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: decoding payload: %w", ErrCorrupt, err)
	}
	return &raw, nil
}

// Payload verifies the header and digest of a compiled schema and
// returns its uncompressed CBOR payload.
func Payload(data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(data))
	}
	if !bytes.Equal(data[:4], compiledMagic) {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, data[:4])
	}
	if version := data[4]; version != compiledVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrCorrupt, version)
	}
	compression := Compression(data[5])
	size := int(binary.BigEndian.Uint32(data[6:10]))
	var want Fingerprint
	copy(want[:], data[10:headerSize])

	payload, err := decompress(data[headerSize:], compression, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if got := digest(payload); got != want {
		return nil, fmt.Errorf("%w: digest mismatch (header %s, payload %s)", ErrCorrupt, want, got)
	}
	return payload, nil
}

// DigestOf returns the fingerprint recorded in a compiled schema's
// header without decoding the payload.
func DigestOf(data []byte) (Fingerprint, error) {
	if len(data) < headerSize || !bytes.Equal(data[:4], compiledMagic) {
		return Fingerprint{}, fmt.Errorf("%w: not a compiled schema", ErrCorrupt)
	}
	var sum Fingerprint
	copy(sum[:], data[10:headerSize])
	return sum, nil
}

func digest(payload []byte) Fingerprint {
	hasher, err := blake3.NewKeyed(schemaDomainKey[:])
	if err != nil {
		panic("schemafile: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(payload)
	var sum Fingerprint
	copy(sum[:], hasher.Sum(nil))
	return sum
}
