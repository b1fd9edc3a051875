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

package roadbuilder

import (
	"time"

	"m4o.io/roadbuilder/internal/core"
)

// Compression selects how bundle blobs are compressed.
type Compression = core.BlobCompression

// Blob compressions.
const (
	RAW  = core.RAW
	ZLIB = core.ZLIB
	LZMA = core.LZMA
	LZ4  = core.LZ4
	ZSTD = core.ZSTD
)

// DefaultBlobCompression is used unless WithCompression says otherwise.
const DefaultBlobCompression = ZLIB

// ParseCompression parses a compression name such as "zstd".
func ParseCompression(s string) (Compression, error) {
	return core.ParseBlobCompression(s)
}

// codecOptions provides optional configuration parameters for Encoder and
// Decoder construction.
type codecOptions struct {
	compression    Compression
	writingProgram string
	timestamp      time.Time
	nCPU           uint16 // the number of CPUs to use for background processing
	bufferSize     int    // frames read ahead of decoding
}

// CodecOption configures an Encoder or a Decoder.
type CodecOption func(*codecOptions)

// EncoderOption configures how we set up the encoder.
type EncoderOption = CodecOption

// WithCompression specifies the compression algorithm to use when encoding
// blobs.  The default is ZLIB.
func WithCompression(compression Compression) EncoderOption {
	return func(o *codecOptions) {
		o.compression = compression
	}
}

// WithWritingProgram sets the writing program of the bundle header.
func WithWritingProgram(program string) EncoderOption {
	return func(o *codecOptions) {
		o.writingProgram = program
	}
}

// WithTimestamp sets the timestamp of the bundle header.  The default is the
// time the encoder is closed.
func WithTimestamp(ts time.Time) EncoderOption {
	return func(o *codecOptions) {
		o.timestamp = ts
	}
}

// defaultEncoderConfig provides a default configuration for encoders.
var defaultEncoderConfig = codecOptions{
	compression: DefaultBlobCompression,
	nCPU:        DefaultNCpu(),
}
