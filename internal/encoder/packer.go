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

package encoder

import (
	"fmt"
	"io"

	"m4o.io/roadbuilder/internal/core"
	"m4o.io/roadbuilder/internal/encoder/packers"
)

// Packer compresses one record into a blob.
type Packer interface {
	// Close must be called before SaveTo so every written byte is packed.
	io.WriteCloser

	// SaveTo stores the packed contents and the compression used in the
	// blob.
	SaveTo(blob *core.Blob)
}

var packerFor = map[core.BlobCompression]func() (*packers.Packer, error){
	core.RAW:  packers.Raw,
	core.ZLIB: packers.Zlib,
	core.LZMA: packers.Lzma,
	core.LZ4:  packers.Lz4,
	core.ZSTD: packers.Zstd,
}

// Pack compresses b into a blob.
func Pack(b []byte, c core.BlobCompression) (*core.Blob, error) {
	p, err := newPacker(c)
	if err != nil {
		return nil, err
	}

	if _, err = p.Write(b); err != nil {
		return nil, fmt.Errorf("%s: compressing record: %w", c, err)
	}

	if err = p.Close(); err != nil {
		return nil, fmt.Errorf("%s: flushing record: %w", c, err)
	}

	blob := &core.Blob{RawSize: int32(len(b))}

	p.SaveTo(blob)

	return blob, nil
}

func newPacker(c core.BlobCompression) (Packer, error) {
	create, ok := packerFor[c]
	if !ok {
		return nil, fmt.Errorf("%w: %v", core.ErrUnknownCompressionType, c)
	}

	p, err := create()
	if err != nil {
		return nil, err
	}

	return p, nil
}
