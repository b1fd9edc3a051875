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

package core

import "errors"

var (
	// ErrUnknownKind is returned for a configuration discriminant that is
	// not one of the known variants.
	ErrUnknownKind = errors.New("unknown configuration kind")

	// ErrUnsupportedVersion is returned for schema versions newer than the
	// current one, or zero.
	ErrUnsupportedVersion = errors.New("unsupported schema version")

	// ErrCorruptRecord is returned when a record ends early or carries an
	// impossible length.
	ErrCorruptRecord = errors.New("corrupt record")

	// ErrTrailingData is returned when a record has bytes left over after
	// every field was read.
	ErrTrailingData = errors.New("trailing data after record")

	// ErrUnknownCompressionType is returned for a blob without a known
	// payload field.
	ErrUnknownCompressionType = errors.New("unknown blob compression type")

	// ErrUnknownBlobType is returned for a frame type other than the header
	// or configuration frames.
	ErrUnknownBlobType = errors.New("unknown blob type")
)
