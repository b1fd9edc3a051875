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

package packers

import (
	"io"

	"github.com/pierrec/lz4"

	"m4o.io/roadbuilder/internal/core"
)

// lz4BlockSize is the smallest block the frame format allows.  A
// configuration record rarely exceeds a few kilobytes.
const lz4BlockSize = 64 << 10

// Lz4 returns a packer producing an LZ4 frame.
func Lz4() (*Packer, error) {
	return newPacker(core.LZ4, func(w io.Writer) (io.WriteCloser, error) {
		zw := lz4.NewWriter(w)
		zw.Header.BlockMaxSize = lz4BlockSize

		return zw, nil
	})
}
