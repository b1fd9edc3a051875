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

// Package store persists configurations by identity.
//
// A Backend stores raw serialized bytes; Save, Load and LoadAll convert
// between those bytes and configurations.  Backends never interpret the
// bytes they hold.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/destel/rill"

	"m4o.io/roadbuilder"
	"m4o.io/roadbuilder/model"
)

var (
	// ErrNotFound is returned when no configuration is stored under an
	// identity.
	ErrNotFound = errors.New("configuration not found")

	// ErrInvalidID is returned for identities a backend cannot store.
	ErrInvalidID = errors.New("invalid configuration id")
)

// Backend stores serialized configurations keyed by identity.
type Backend interface {
	// Get returns the bytes stored under id, or ErrNotFound.
	Get(ctx context.Context, id string) ([]byte, error)

	// Put stores data under id, replacing what was there.
	Put(ctx context.Context, id string, data []byte) error

	// Delete removes id.  Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every stored id in ascending order.
	List(ctx context.Context) ([]string, error)

	Close() error
}

// loadConcurrency bounds how many configurations LoadAll decodes at once.
const loadConcurrency = 4

// checkID rejects identities that cannot name a file of their own.  A leading
// dot is reserved for the directory backend's temporary files.
func checkID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.HasPrefix(id, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	return nil
}

// Save serializes cfg and stores it under its current identity.
func Save(ctx context.Context, b Backend, cfg model.Config) error {
	data, err := roadbuilder.Serialize(cfg)
	if err != nil {
		return err
	}

	id := cfg.Base().ID
	if err = b.Put(ctx, id, data); err != nil {
		return &roadbuilder.ConfigError{ID: id, Err: err}
	}

	return nil
}

// Load reads the configuration stored under id.
func Load(ctx context.Context, b Backend, id string) (model.Config, error) {
	data, err := b.Get(ctx, id)
	if err != nil {
		return nil, &roadbuilder.ConfigError{ID: id, Err: err}
	}

	cfg, err := roadbuilder.Deserialize(data)
	if err != nil {
		return nil, &roadbuilder.ConfigError{ID: id, Err: err}
	}

	return cfg, nil
}

// LoadAll reads every stored configuration in identity order.  A
// configuration that cannot be read is reported in the joined error and
// does not prevent the others from loading.
func LoadAll(ctx context.Context, b Backend) ([]model.Config, error) {
	ids, err := b.List(ctx)
	if err != nil {
		return nil, err
	}

	loaded := rill.OrderedMap(rill.FromSlice(ids, nil), loadConcurrency, func(id string) (model.Config, error) {
		return Load(ctx, b, id)
	})

	var (
		cfgs []model.Config
		errs []error
	)

	for item := range loaded {
		if item.Error != nil {
			slog.Warn("could not load configuration", "error", item.Error)
			errs = append(errs, item.Error)

			continue
		}

		cfgs = append(cfgs, item.Value)
	}

	return cfgs, errors.Join(errs...)
}
