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

	"m4o.io/roadbuilder/internal/core"
)

// Codec errors.
var (
	ErrUnknownKind            = core.ErrUnknownKind
	ErrUnsupportedVersion     = core.ErrUnsupportedVersion
	ErrCorruptRecord          = core.ErrCorruptRecord
	ErrTrailingData           = core.ErrTrailingData
	ErrUnknownCompressionType = core.ErrUnknownCompressionType
	ErrUnknownBlobType        = core.ErrUnknownBlobType
)

// Editing errors.
var (
	ErrLaneIndex      = errors.New("lane index out of range")
	ErrNotGroupLane   = errors.New("lane does not belong to a lane group")
	ErrUnknownOption  = errors.New("unknown lane option")
	ErrOptionValue    = errors.New("option value not allowed")
	ErrCatalogMissing = errors.New("catalog not ready")
)

// ConfigError reports a failure confined to one configuration of a batch.
// Other configurations of the batch are unaffected.
type ConfigError struct {
	ID  string
	Err error
}

func (e *ConfigError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("configuration: %v", e.Err)
	}

	return fmt.Sprintf("configuration %s: %v", e.ID, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
