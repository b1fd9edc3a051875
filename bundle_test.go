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

package roadbuilder_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/roadbuilder"
	"m4o.io/roadbuilder/internal/core"
	"m4o.io/roadbuilder/internal/encoder"
	"m4o.io/roadbuilder/model"
)

var bundleTime = time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)

func writeBundle(t *testing.T, cfgs []model.Config, opts ...roadbuilder.EncoderOption) []byte {
	t.Helper()

	var buf bytes.Buffer

	opts = append([]roadbuilder.EncoderOption{
		roadbuilder.WithWritingProgram("roadbuilder-test"),
		roadbuilder.WithTimestamp(bundleTime),
	}, opts...)

	enc := roadbuilder.NewEncoder(&buf, opts...)
	require.NoError(t, enc.EncodeBatch(cfgs))
	require.NoError(t, enc.Close())

	return buf.Bytes()
}

func TestBundle_RoundTrip(t *testing.T) {
	for _, c := range []roadbuilder.Compression{roadbuilder.RAW, roadbuilder.ZLIB, roadbuilder.LZMA, roadbuilder.LZ4, roadbuilder.ZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			cfgs := sampleConfigs()
			data := writeBundle(t, cfgs, roadbuilder.WithCompression(c), roadbuilder.WithNCpus(3))

			dec, err := roadbuilder.NewDecoder(context.Background(), bytes.NewReader(data), roadbuilder.WithNCpus(2))
			require.NoError(t, err)
			defer dec.Close()

			assert.Equal(t, model.Header{
				Version:        model.CurrentVersion,
				Count:          int32(len(cfgs)),
				WritingProgram: "roadbuilder-test",
				Timestamp:      bundleTime,
			}, dec.Header)

			actual, err := dec.DecodeAll()
			require.NoError(t, err)
			assert.Equal(t, cfgs, actual)

			_, err = dec.Decode()
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestEncoder_CopiesConfigurations(t *testing.T) {
	var buf bytes.Buffer

	cfg := sampleConfigs()[0]
	enc := roadbuilder.NewEncoder(&buf)
	require.NoError(t, enc.Encode(cfg))

	cfg.Base().Name = "Edited"

	require.NoError(t, enc.Close())
	require.ErrorIs(t, enc.Encode(cfg), roadbuilder.ErrEncoderClosed)

	dec, err := roadbuilder.NewDecoder(context.Background(), &buf)
	require.NoError(t, err)
	defer dec.Close()

	actual, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, "Boulevard", actual.Base().Name)
	assert.False(t, dec.Header.Timestamp.IsZero())
}

func TestEncoder_RejectsUnknownKind(t *testing.T) {
	var buf bytes.Buffer

	enc := roadbuilder.NewEncoder(&buf)
	err := enc.EncodeBatch([]model.Config{sampleConfigs()[0], nil})
	require.ErrorIs(t, err, roadbuilder.ErrUnknownKind)
	require.NoError(t, enc.Close())

	dec, err := roadbuilder.NewDecoder(context.Background(), &buf)
	require.NoError(t, err)
	defer dec.Close()

	assert.Equal(t, int32(0), dec.Header.Count)

	_, err = dec.Decode()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecoder_SkipsBrokenConfigurations(t *testing.T) {
	cfgs := sampleConfigs()
	data := writeBundle(t, cfgs[:2], roadbuilder.WithCompression(roadbuilder.RAW))

	var buf bytes.Buffer
	buf.Write(data)

	writeRaw := func(typ, id string, rec []byte) {
		f, err := encoder.PackFrame(typ, []byte(id), rec, core.RAW)
		require.NoError(t, err)
		require.NoError(t, encoder.WriteFrame(&buf, f))
	}

	writeRaw(core.ConfigType, "bridge", record{}.u16(model.CurrentVersion).str("BridgeConfig"))
	writeRaw("RBThumbnail", "thumb", []byte{1, 2, 3})

	valid, err := roadbuilder.Serialize(cfgs[2])
	require.NoError(t, err)
	writeRaw(core.ConfigType, "truncated", valid[:len(valid)/2])
	writeRaw(core.ConfigType, "fence", valid)

	dec, err := roadbuilder.NewDecoder(context.Background(), &buf)
	require.NoError(t, err)
	defer dec.Close()

	actual, err := dec.DecodeAll()
	require.Error(t, err)
	assert.ErrorIs(t, err, roadbuilder.ErrUnknownKind)
	assert.ErrorIs(t, err, roadbuilder.ErrUnknownBlobType)
	assert.ErrorIs(t, err, roadbuilder.ErrCorruptRecord)

	var ids []string

	for _, e := range err.(interface{ Unwrap() []error }).Unwrap() {
		var ce *roadbuilder.ConfigError
		require.True(t, errors.As(e, &ce))
		ids = append(ids, ce.ID)
	}

	assert.Equal(t, []string{"bridge", "thumb", "truncated"}, ids)
	assert.Equal(t, []model.Config{cfgs[0], cfgs[1], cfgs[2]}, actual)
}

func TestDecoder_DamagedBundle(t *testing.T) {
	data := writeBundle(t, sampleConfigs(), roadbuilder.WithCompression(roadbuilder.RAW))

	t.Run("empty", func(t *testing.T) {
		_, err := roadbuilder.NewDecoder(context.Background(), bytes.NewReader(nil))
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("no header", func(t *testing.T) {
		var buf bytes.Buffer

		f, err := encoder.PackFrame(core.ConfigType, []byte("x"), []byte{}, core.RAW)
		require.NoError(t, err)
		require.NoError(t, encoder.WriteFrame(&buf, f))

		_, err = roadbuilder.NewDecoder(context.Background(), &buf)
		require.ErrorIs(t, err, roadbuilder.ErrUnknownBlobType)
	})

	t.Run("truncated frame", func(t *testing.T) {
		dec, err := roadbuilder.NewDecoder(context.Background(), bytes.NewReader(data[:len(data)-7]))
		require.NoError(t, err)
		defer dec.Close()

		cfgs, err := dec.DecodeAll()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.Len(t, cfgs, 3)

		_, err = dec.Decode()
		require.ErrorIs(t, err, io.ErrUnexpectedEOF, "framing errors are sticky")
	})
}

func TestDecoder_Close(t *testing.T) {
	data := writeBundle(t, sampleConfigs())

	dec, err := roadbuilder.NewDecoder(context.Background(), bytes.NewReader(data))
	require.NoError(t, err)

	_, err = dec.Decode()
	require.NoError(t, err)

	dec.Close()

	_, err = dec.Decode()
	assert.ErrorIs(t, err, io.EOF)
}
