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
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"m4o.io/roadbuilder/internal/core"
)

const (
	// MaxBlobHeaderSize is the largest blob header accepted.
	MaxBlobHeaderSize = 64 * 1024

	// MaxBlobSize is the largest blob accepted.
	MaxBlobSize = 32 * 1024 * 1024
)

// Frame is one blob read from a bundle.
type Frame struct {
	Header core.BlobHeader
	Blob   *core.Blob
}

// GenerateFrameReader yields the frames of a bundle until the reader is
// exhausted, an error occurs or the context is cancelled.  A clean end of
// input is not reported as an error.
func GenerateFrameReader(ctx context.Context, reader io.Reader) iter.Seq2[Frame, error] {
	return func(yield func(Frame, error) bool) {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			f, err := ReadFrame(reader)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					slog.Error("unable to read blob", "error", err)
					yield(Frame{}, err)
				}

				return
			}

			if !yield(f, nil) {
				return
			}
		}
	}
}

// ReadFrame reads one frame.  It returns io.EOF only when the input ends
// exactly on a frame boundary.
func ReadFrame(rdr io.Reader) (Frame, error) {
	h, err := readBlobHeader(rdr)
	if err != nil {
		return Frame{}, err
	}

	b, err := readBlobData(rdr, h.DataSize)
	if err != nil {
		return Frame{}, fmt.Errorf("error reading blob: %w", err)
	}

	return Frame{Header: h, Blob: b}, nil
}

func readBlobHeader(rdr io.Reader) (header core.BlobHeader, err error) {
	var size uint32

	if err = binary.Read(rdr, binary.BigEndian, &size); err != nil {
		if errors.Is(err, io.EOF) {
			return header, io.EOF
		}

		return header, fmt.Errorf("error reading blob header size: %w", err)
	}

	if size > MaxBlobHeaderSize {
		return header, fmt.Errorf("%w: blob header size %d", core.ErrCorruptRecord, size)
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	if _, err := io.CopyN(buf, rdr, int64(size)); err != nil {
		return header, fmt.Errorf("error reading blob header: %w", unexpected(err))
	}

	if err := header.Unmarshal(buf.Bytes()); err != nil {
		return header, fmt.Errorf("error unmarshalling blob header: %w", err)
	}

	return header, nil
}

func readBlobData(rdr io.Reader, size int32) (*core.Blob, error) {
	if size < 0 || size > MaxBlobSize {
		return nil, fmt.Errorf("%w: blob size %d", core.ErrCorruptRecord, size)
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	if _, err := io.CopyN(buf, rdr, int64(size)); err != nil {
		return nil, unexpected(err)
	}

	blob := &core.Blob{}

	if err := blob.Unmarshal(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("error unmarshalling blob: %w", err)
	}

	return blob, nil
}

// unexpected turns an end of input in the middle of a frame into
// io.ErrUnexpectedEOF.
func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}

	return err
}
