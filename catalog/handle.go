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

package catalog

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrAlreadyPopulated is returned when a Handle is populated twice.
var ErrAlreadyPopulated = errors.New("catalog already populated")

// Handle publishes a catalog that is populated once, possibly after readers
// have started using the handle.  Until population completes Get returns
// nil, and callers should treat every lookup as not found.
type Handle struct {
	catalog atomic.Pointer[Catalog]
	mu      sync.Mutex
	done    bool
}

// NewHandle returns a handle with no catalog yet.
func NewHandle() *Handle {
	return &Handle{}
}

// Ready wraps an already built catalog.
func Ready(c *Catalog) *Handle {
	h := &Handle{done: true}
	h.catalog.Store(c)

	return h
}

// Get returns the published catalog, or nil when it is not ready.
func (h *Handle) Get() *Catalog {
	return h.catalog.Load()
}

// Populate runs build and publishes its result.  Population happens at most
// once: a failed build leaves the handle empty and may be retried, a
// successful one is final.
func (h *Handle) Populate(build func() (*Catalog, error)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.done {
		return ErrAlreadyPopulated
	}

	c, err := build()
	if err != nil {
		return err
	}

	h.catalog.Store(c)
	h.done = true

	return nil
}
