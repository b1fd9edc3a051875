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
	"compress/zlib"
	"io"

	"m4o.io/roadbuilder/internal/core"
)

// Zlib returns a packer producing a zlib stream at the best compression
// level.  Bundles are written once and read many times.
func Zlib() (*Packer, error) {
	return newPacker(core.ZLIB, func(w io.Writer) (io.WriteCloser, error) {
		return zlib.NewWriterLevel(w, zlib.BestCompression)
	})
}
