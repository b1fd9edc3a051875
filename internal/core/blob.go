// Copyright 2025 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Frame types.
const (
	HeaderType = "RBHeader"
	ConfigType = "RBConfig"
)

// BlobCompression selects how blob payloads are compressed.
type BlobCompression int

const (
	RAW BlobCompression = iota
	ZLIB
	LZMA
	LZ4
	ZSTD
)

var compressionNames = [...]string{"raw", "zlib", "lzma", "lz4", "zstd"}

func (c BlobCompression) String() string {
	if c >= 0 && int(c) < len(compressionNames) {
		return compressionNames[c]
	}

	return fmt.Sprintf("BlobCompression(%d)", int(c))
}

// ParseBlobCompression is the inverse of BlobCompression.String.
func ParseBlobCompression(s string) (BlobCompression, error) {
	for i, name := range compressionNames {
		if name == s {
			return BlobCompression(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCompressionType, s)
}

// Field numbers follow the OSM PBF file format so the envelope stays
// readable by generic protobuf tooling.
const (
	blobHeaderType      protowire.Number = 1
	blobHeaderIndexData protowire.Number = 2
	blobHeaderDataSize  protowire.Number = 3

	blobRaw     protowire.Number = 1
	blobRawSize protowire.Number = 2
	blobZlib    protowire.Number = 3
	blobLzma    protowire.Number = 4
	blobLz4     protowire.Number = 6
	blobZstd    protowire.Number = 7
)

var compressionFields = map[BlobCompression]protowire.Number{
	RAW:  blobRaw,
	ZLIB: blobZlib,
	LZMA: blobLzma,
	LZ4:  blobLz4,
	ZSTD: blobZstd,
}

// BlobHeader precedes every blob and names what it carries.
type BlobHeader struct {
	Type      string
	IndexData []byte
	DataSize  int32
}

// Blob is a possibly compressed payload.
type Blob struct {
	RawSize     int32
	Compression BlobCompression
	Data        []byte
}

// Marshal encodes the header as a protobuf message.
func (h *BlobHeader) Marshal() []byte {
	var b []byte

	b = protowire.AppendTag(b, blobHeaderType, protowire.BytesType)
	b = protowire.AppendString(b, h.Type)

	if len(h.IndexData) > 0 {
		b = protowire.AppendTag(b, blobHeaderIndexData, protowire.BytesType)
		b = protowire.AppendBytes(b, h.IndexData)
	}

	b = protowire.AppendTag(b, blobHeaderDataSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(h.DataSize))

	return b
}

// Unmarshal decodes a header encoded by Marshal.  Unknown fields are
// skipped.
func (h *BlobHeader) Unmarshal(b []byte) error {
	*h = BlobHeader{}

	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == blobHeaderType && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			h.Type = v

			return n, nil
		case num == blobHeaderIndexData && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			h.IndexData = append([]byte(nil), v...)

			return n, nil
		case num == blobHeaderDataSize && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			h.DataSize = int32(v)

			return n, nil
		default:
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
	})
}

// Marshal encodes the blob as a protobuf message.
func (bl *Blob) Marshal() ([]byte, error) {
	field, ok := compressionFields[bl.Compression]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompressionType, bl.Compression)
	}

	var b []byte

	b = protowire.AppendTag(b, field, protowire.BytesType)
	b = protowire.AppendBytes(b, bl.Data)

	if bl.Compression != RAW {
		b = protowire.AppendTag(b, blobRawSize, protowire.VarintType)
		b = protowire.AppendVarint(b, uint64(bl.RawSize))
	}

	return b, nil
}

// Unmarshal decodes a blob encoded by Marshal.  The data is copied.
func (bl *Blob) Unmarshal(b []byte) error {
	*bl = Blob{Compression: -1}

	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == blobRawSize && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(b)
			bl.RawSize = int32(v)

			return n, nil
		}

		if typ == protowire.BytesType {
			for c, field := range compressionFields {
				if field == num {
					v, n := protowire.ConsumeBytes(b)
					bl.Compression = c
					bl.Data = append([]byte(nil), v...)

					return n, nil
				}
			}
		}

		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return err
	}

	if bl.Compression < 0 {
		return ErrUnknownCompressionType
	}

	if bl.Compression == RAW {
		bl.RawSize = int32(len(bl.Data))
	}

	return nil
}

func walk(b []byte, field func(protowire.Number, protowire.Type, []byte) (int, error)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrCorruptRecord, protowire.ParseError(n))
		}

		b = b[n:]

		m, err := field(num, typ, b)
		if err != nil {
			return err
		}

		if m < 0 {
			return fmt.Errorf("%w: %w", ErrCorruptRecord, protowire.ParseError(m))
		}

		b = b[m:]
	}

	return nil
}
