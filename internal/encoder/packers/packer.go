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

// Package packers compresses configuration records into blobs, one
// constructor per supported compression.
package packers

import (
	"bytes"
	"fmt"
	"io"

	"m4o.io/roadbuilder/internal/core"
)

// Packer accumulates one compressed record.  Close must be called before
// SaveTo so the compressor flushes its tail.
type Packer struct {
	io.WriteCloser

	compression core.BlobCompression
	out         bytes.Buffer
}

// SaveTo fills in the blob's payload and compression.
func (p *Packer) SaveTo(blob *core.Blob) {
	blob.Compression = p.compression
	blob.Data = p.out.Bytes()
}

// compressor wraps the buffer a packer collects its output in.
type compressor func(io.Writer) (io.WriteCloser, error)

func newPacker(c core.BlobCompression, wrap compressor) (*Packer, error) {
	p := &Packer{compression: c}

	w, err := wrap(&p.out)
	if err != nil {
		return nil, fmt.Errorf("%s packer: %w", c, err)
	}

	p.WriteCloser = w

	return p, nil
}
