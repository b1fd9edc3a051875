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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/destel/rill"

	"m4o.io/roadbuilder/internal/core"
	"m4o.io/roadbuilder/internal/decoder"
	"m4o.io/roadbuilder/model"
)

// Decoder reads a bundle of configurations.  Frames are read in the
// background and decoded concurrently; Decode returns them in bundle order.
type Decoder struct {
	Header model.Header

	ctx     context.Context
	cancel  context.CancelFunc
	results <-chan rill.Try[model.Config]
	err     error
}

// NewDecoder returns a new decoder, configured with options, that reads
// from reader.  The bundle header is read before NewDecoder returns.
func NewDecoder(ctx context.Context, reader io.Reader, opts ...DecoderOption) (*Decoder, error) {
	cfg := defaultDecoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := decoder.ReadFrame(reader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return nil, fmt.Errorf("error reading bundle header: %w", err)
	}

	if f.Header.Type != core.HeaderType {
		return nil, fmt.Errorf("%w: expected %q but got %q", ErrUnknownBlobType, core.HeaderType, f.Header.Type)
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	record, err := decoder.Unpack(buf, f.Blob)
	if err != nil {
		return nil, fmt.Errorf("error unpacking bundle header: %w", err)
	}

	hdr, err := decoder.DecodeHeader(record)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)

	frames := make(chan rill.Try[decoder.Frame], max(cfg.bufferSize, 0))

	go func() {
		defer close(frames)
		defer cancel()

		for frame, err := range decoder.GenerateFrameReader(ctx, reader) {
			select {
			case frames <- rill.Wrap(frame, err):
			case <-ctx.Done():
				return
			}
		}
	}()

	return &Decoder{
		Header:  hdr,
		ctx:     ctx,
		cancel:  cancel,
		results: rill.OrderedMap(frames, int(max(cfg.nCPU, 1)), decodeFrame),
	}, nil
}

// Decode returns the next configuration of the bundle.  The end of the
// bundle is reported by an io.EOF error.
//
// A configuration that cannot be decoded is reported as a *ConfigError and
// decoding may continue with the next one.  Any other error means the
// bundle itself is damaged; it is returned by every later call.
func (d *Decoder) Decode() (model.Config, error) {
	if d.err != nil {
		return nil, d.err
	}

	item, more := <-d.results
	if !more {
		d.err = io.EOF
		if err := d.ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
			d.err = err
		}

		return nil, d.err
	}

	if item.Error != nil {
		var ce *ConfigError
		if errors.As(item.Error, &ce) {
			slog.Warn("skipping configuration", "id", ce.ID, "error", ce.Err)
			decodedConfigs.WithLabelValues(outcomeFailed).Inc()

			return nil, ce
		}

		d.err = item.Error
		d.Close()

		return nil, d.err
	}

	decodedConfigs.WithLabelValues(outcomeOK).Inc()

	return item.Value, nil
}

// DecodeAll reads every remaining configuration.  Configurations that fail
// to decode are collected as *ConfigError values in the joined error
// without stopping the others.
func (d *Decoder) DecodeAll() ([]model.Config, error) {
	var (
		cfgs []model.Config
		errs []error
	)

	for {
		cfg, err := d.Decode()
		if errors.Is(err, io.EOF) {
			break
		}

		var ce *ConfigError
		if errors.As(err, &ce) {
			errs = append(errs, ce)

			continue
		} else if err != nil {
			errs = append(errs, err)

			break
		}

		cfgs = append(cfgs, cfg)
	}

	return cfgs, errors.Join(errs...)
}

// Close cancels the background decoding pipeline.
func (d *Decoder) Close() {
	d.cancel()

	if d.err == nil {
		d.err = io.EOF
	}

	rill.DrainNB(d.results)
}

func decodeFrame(f decoder.Frame) (model.Config, error) {
	id := string(f.Header.IndexData)

	if f.Header.Type != core.ConfigType {
		return nil, &ConfigError{ID: id, Err: fmt.Errorf("%w: %q", ErrUnknownBlobType, f.Header.Type)}
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	record, err := decoder.Unpack(buf, f.Blob)
	if err != nil {
		return nil, &ConfigError{ID: id, Err: err}
	}

	cfg, err := decoder.DecodeConfig(record)
	if err != nil {
		return nil, &ConfigError{ID: id, Err: err}
	}

	return cfg, nil
}
