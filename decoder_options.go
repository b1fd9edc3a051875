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
	"runtime"
)

// DefaultBufferSize is the default number of frames read ahead of decoding.
const DefaultBufferSize = 16

// DefaultNCpu provides the default number of CPUs.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// DecoderOption configures how we set up the decoder.
type DecoderOption = CodecOption

// WithBufferSize lets you set how many frames are read ahead of decoding.
func WithBufferSize(n int) DecoderOption {
	return func(o *codecOptions) {
		o.bufferSize = n
	}
}

// WithNCpus lets you set the number of CPUs to use for background
// processing.
func WithNCpus(n uint16) CodecOption {
	return func(o *codecOptions) {
		o.nCPU = n
	}
}

// defaultDecoderConfig provides a default configuration for decoders.
var defaultDecoderConfig = codecOptions{
	bufferSize: DefaultBufferSize,
	nCPU:       DefaultNCpu(),
}
