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
	"encoding/binary"
	"fmt"
	"math"

	"m4o.io/roadbuilder/internal/core"
)

// recordReader consumes little-endian primitives.  The first failure is
// sticky: later reads return zero values and err keeps the original cause.
type recordReader struct {
	buf []byte
	err error
}

func (r *recordReader) take(n int, what string) []byte {
	if r.err != nil {
		return nil
	}

	if n < 0 || n > len(r.buf) {
		r.err = fmt.Errorf("%w: %s needs %d bytes, %d left", core.ErrCorruptRecord, what, n, len(r.buf))

		return nil
	}

	b := r.buf[:n]
	r.buf = r.buf[n:]

	return b
}

func (r *recordReader) u16(what string) uint16 {
	if b := r.take(2, what); b != nil {
		return binary.LittleEndian.Uint16(b)
	}

	return 0
}

func (r *recordReader) u32(what string) uint32 {
	if b := r.take(4, what); b != nil {
		return binary.LittleEndian.Uint32(b)
	}

	return 0
}

func (r *recordReader) i32(what string) int32 { return int32(r.u32(what)) }

func (r *recordReader) u64(what string) uint64 {
	if b := r.take(8, what); b != nil {
		return binary.LittleEndian.Uint64(b)
	}

	return 0
}

func (r *recordReader) i64(what string) int64 { return int64(r.u64(what)) }

func (r *recordReader) f32(what string) float32 { return math.Float32frombits(r.u32(what)) }

func (r *recordReader) bool(what string) bool {
	if b := r.take(1, what); b != nil {
		return b[0] != 0
	}

	return false
}

func (r *recordReader) string(what string) string {
	n := r.u32(what)
	if r.err != nil {
		return ""
	}

	if uint64(n) > uint64(len(r.buf)) {
		r.err = fmt.Errorf("%w: %s length %d exceeds %d bytes left", core.ErrCorruptRecord, what, n, len(r.buf))

		return ""
	}

	return string(r.take(int(n), what))
}

// count reads an element count, rejecting values that cannot possibly fit
// in the rest of the record given each element takes at least minSize bytes.
func (r *recordReader) count(what string, minSize int) int {
	n := r.i32(what)
	if r.err != nil {
		return 0
	}

	if n < 0 || int64(n)*int64(minSize) > int64(len(r.buf)) {
		r.err = fmt.Errorf("%w: impossible %s %d", core.ErrCorruptRecord, what, n)

		return 0
	}

	return int(n)
}

func (r *recordReader) finish() error {
	if r.err != nil {
		return r.err
	}

	if len(r.buf) > 0 {
		return fmt.Errorf("%w: %d bytes", core.ErrTrailingData, len(r.buf))
	}

	return nil
}
