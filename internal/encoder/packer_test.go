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
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/roadbuilder/internal/core"
	"m4o.io/roadbuilder/internal/decoder"
	"m4o.io/roadbuilder/model"
)

func TestPack(t *testing.T) {
	record := bytes.Repeat([]byte("Sidewalk With Parking 5;"), 200)

	for _, c := range []core.BlobCompression{core.RAW, core.ZLIB, core.LZMA, core.LZ4, core.ZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			blob, err := Pack(record, c)
			require.NoError(t, err)

			assert.Equal(t, c, blob.Compression)
			assert.Equal(t, int32(len(record)), blob.RawSize)

			if c != core.RAW {
				assert.Less(t, len(blob.Data), len(record))
			}

			buf := core.NewPooledBuffer()
			defer buf.Close()

			actual, err := decoder.Unpack(buf, blob)
			require.NoError(t, err)
			assert.Equal(t, record, actual)
		})
	}

	_, err := Pack(record, core.BlobCompression(42))
	require.ErrorIs(t, err, core.ErrUnknownCompressionType)
}

func TestWriteFrame(t *testing.T) {
	f, err := PackFrame(core.ConfigType, []byte("road-1"), []byte("payload"), core.RAW)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, f))

	size := binary.BigEndian.Uint32(buf.Bytes())
	assert.Less(t, int(size), buf.Len())

	actual, err := decoder.ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, core.ConfigType, actual.Header.Type)
	assert.Equal(t, []byte("road-1"), actual.Header.IndexData)
	assert.Equal(t, []byte("payload"), actual.Blob.Data)
	assert.Zero(t, buf.Len())
}

func TestEncodeConfig_Layout(t *testing.T) {
	cfg := model.NewConfig(model.KindFence)
	cfg.Base().Identify("f")

	b, err := EncodeConfig(cfg)
	require.NoError(t, err)

	expected := []byte{
		5, 0, // version
		11, 0, 0, 0, 'F', 'e', 'n', 'c', 'e', 'C', 'o', 'n', 'f', 'i', 'g',
		0, 0, 0, 0, // lanes
		1, 0, 0, 0, 'f', // id
		0, 0, 0, 0, // name
		0, 0, 0, 0, // max slope
		0, 0, 0, 0, 0, 0, 0, 0, // category
		0, 0, 0, 0, 0, 0, 0, 0, // addons
		1, 0, 0, 0, // toolbar state
		0, 0, 0, 0, // playsets
		0, // uploaded
	}
	assert.Equal(t, expected, b)
}

func TestWriteLane_SortsOptions(t *testing.T) {
	l := model.NewGroupLane("Sidewalk")
	l.SetOption("Width", "5m")
	l.SetOption("Parking", "P")
	l.Invert = true

	w := &recordWriter{}
	writeLane(w, l)

	expected := &recordWriter{}
	expected.u16(model.CurrentVersion)
	expected.string("")
	expected.string("Sidewalk")
	expected.bool(true)
	expected.i32(2)
	expected.string("Parking")
	expected.string("P")
	expected.string("Width")
	expected.string("5m")

	assert.Equal(t, expected.buf, w.buf)
}

func TestEncodeConfig_UnknownKind(t *testing.T) {
	_, err := EncodeConfig(nil)
	require.ErrorIs(t, err, core.ErrUnknownKind)
}
