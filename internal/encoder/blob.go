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
	"encoding/binary"
	"fmt"
	"io"

	"m4o.io/roadbuilder/internal/core"
)

// Frame is a packed blob ready to be written, with the header data that
// identifies it.
type Frame struct {
	Type      string
	IndexData []byte
	Blob      *core.Blob
}

// PackFrame compresses a record into a frame.
func PackFrame(typ string, index []byte, record []byte, c core.BlobCompression) (Frame, error) {
	blob, err := Pack(record, c)
	if err != nil {
		return Frame{}, err
	}

	return Frame{Type: typ, IndexData: index, Blob: blob}, nil
}

// WriteFrame writes a frame as [u32 big-endian header size][BlobHeader][Blob].
func WriteFrame(wrtr io.Writer, f Frame) error {
	bb, err := f.Blob.Marshal()
	if err != nil {
		return fmt.Errorf("could not marshal blob data: %w", err)
	}

	hdr := core.BlobHeader{
		Type:      f.Type,
		IndexData: f.IndexData,
		DataSize:  int32(len(bb)),
	}

	hb := hdr.Marshal()

	if err = binary.Write(wrtr, binary.BigEndian, uint32(len(hb))); err != nil {
		return fmt.Errorf("could not write header size: %w", err)
	}

	if _, err = wrtr.Write(hb); err != nil {
		return fmt.Errorf("could not write blob header: %w", err)
	}

	if _, err = wrtr.Write(bb); err != nil {
		return fmt.Errorf("could not write blob data: %w", err)
	}

	return nil
}
