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

package decoder

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"

	"m4o.io/roadbuilder/internal/core"
)

// Unpack decompresses a blob into buf and returns the record bytes.  The
// result aliases buf for compressed blobs and the blob for raw ones.
func Unpack(buf *core.PooledBuffer, blob *core.Blob) ([]byte, error) {
	var factory func(data []byte) (io.Reader, error)

	switch blob.Compression {
	case core.RAW:
		return blob.Data, nil
	case core.ZLIB:
		factory = func(data []byte) (io.Reader, error) {
			return zlib.NewReader(bytes.NewReader(data))
		}
	case core.LZMA:
		factory = func(data []byte) (io.Reader, error) {
			return lzma.NewReader(bytes.NewReader(data))
		}
	case core.LZ4:
		factory = func(data []byte) (io.Reader, error) {
			return lz4.NewReader(bytes.NewReader(data)), nil
		}
	case core.ZSTD:
		factory = func(data []byte) (io.Reader, error) {
			d, err := zstd.NewReader(bytes.NewReader(data))
			if err != nil {
				return nil, err
			}

			return d.IOReadCloser(), nil
		}
	default:
		return nil, core.ErrUnknownCompressionType
	}

	if blob.RawSize < 0 || blob.RawSize > MaxBlobSize {
		return nil, fmt.Errorf("%w: raw size %d", core.ErrCorruptRecord, blob.RawSize)
	}

	rawBufferSize := int(blob.RawSize) + bytes.MinRead
	if rawBufferSize > buf.Cap() {
		buf.Grow(rawBufferSize)
	}

	rdr, err := factory(blob.Data)
	if err != nil {
		return nil, fmt.Errorf("unpacker factory error: %w", err)
	}

	if c, ok := rdr.(io.Closer); ok {
		defer c.Close()
	}

	if n, err := buf.ReadFrom(io.LimitReader(rdr, int64(blob.RawSize)+1)); err != nil {
		return nil, fmt.Errorf("unpacker read error: %w", err)
	} else if n != int64(blob.RawSize) {
		return nil, fmt.Errorf("%w: raw blob data size %d but expected %d", core.ErrCorruptRecord, n, blob.RawSize)
	}

	return buf.Bytes(), nil
}
