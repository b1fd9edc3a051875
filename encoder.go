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
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/destel/rill"

	"m4o.io/roadbuilder/internal/core"
	"m4o.io/roadbuilder/internal/encoder"
	"m4o.io/roadbuilder/model"
)

// ErrEncoderClosed is returned when configurations are added to an encoder
// that has been closed.
var ErrEncoderClosed = errors.New("encoder closed")

// Encoder writes a bundle of configurations.  Configurations are copied when
// they are added, so the caller may keep editing them.  Nothing is written
// until Close, because the bundle header records how many configurations
// follow.
type Encoder struct {
	Header model.Header

	cfg     codecOptions
	wrtr    io.Writer
	pending []model.Config
	closed  bool
}

// NewEncoder returns a new encoder, configured with options, that writes to
// wrtr.
func NewEncoder(wrtr io.Writer, opts ...EncoderOption) *Encoder {
	cfg := defaultEncoderConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Encoder{
		Header: model.Header{
			Version:        model.CurrentVersion,
			WritingProgram: cfg.writingProgram,
			Timestamp:      cfg.timestamp,
		},
		cfg:  cfg,
		wrtr: wrtr,
	}
}

// Encode adds a configuration to the bundle.
func (e *Encoder) Encode(cfg model.Config) error {
	return e.EncodeBatch([]model.Config{cfg})
}

// EncodeBatch adds configurations to the bundle.  Either all of them are
// added or, if one cannot be encoded, none are.
func (e *Encoder) EncodeBatch(cfgs []model.Config) error {
	if e.closed {
		return ErrEncoderClosed
	}

	for i, cfg := range cfgs {
		if cfg == nil || model.NewConfig(cfg.Kind()) == nil {
			return fmt.Errorf("configuration %d: %w", i, ErrUnknownKind)
		}
	}

	for _, cfg := range cfgs {
		e.pending = append(e.pending, cfg.Clone())
	}

	return nil
}

// Close writes the header and every configuration added so far.  Records are
// packed concurrently but written in the order they were added.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}

	e.closed = true

	e.Header.Count = int32(len(e.pending))
	if e.Header.Timestamp.IsZero() {
		e.Header.Timestamp = time.Now().UTC().Truncate(time.Second)
	}

	hf, err := encoder.PackFrame(core.HeaderType, nil, encoder.EncodeHeader(e.Header), e.cfg.compression)
	if err != nil {
		return fmt.Errorf("could not pack bundle header: %w", err)
	}

	if err = encoder.WriteFrame(e.wrtr, hf); err != nil {
		return err
	}

	packed := rill.OrderedMap(rill.FromSlice(e.pending, nil), int(max(e.cfg.nCPU, 1)), e.packConfig)

	err = rill.ForEach(packed, 1, func(f encoder.Frame) error {
		return encoder.WriteFrame(e.wrtr, f)
	})

	e.pending = nil

	return err
}

func (e *Encoder) packConfig(cfg model.Config) (encoder.Frame, error) {
	id := cfg.Base().ID

	record, err := encoder.EncodeConfig(cfg)
	if err != nil {
		return encoder.Frame{}, &ConfigError{ID: id, Err: err}
	}

	f, err := encoder.PackFrame(core.ConfigType, []byte(id), record, e.cfg.compression)
	if err != nil {
		return encoder.Frame{}, &ConfigError{ID: id, Err: err}
	}

	return f, nil
}
