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
	"github.com/google/uuid"
)

type editorOptions struct {
	advancedMode    bool
	leftHandTraffic bool
	noImitation     bool
	newID           func() string
}

// EditorOption configures an Editor.
type EditorOption func(*editorOptions)

// WithAdvancedMode stops SetCategory from removing lanes that no longer
// match the new category.
func WithAdvancedMode(enabled bool) EditorOption {
	return func(o *editorOptions) {
		o.advancedMode = enabled
	}
}

// WithLeftHandTraffic presents lanes to callers right to left.
func WithLeftHandTraffic(enabled bool) EditorOption {
	return func(o *editorOptions) {
		o.leftHandTraffic = enabled
	}
}

// WithoutLaneImitation makes new lanes start from their group defaults
// instead of copying the options of the nearest lane of the same group.
func WithoutLaneImitation() EditorOption {
	return func(o *editorOptions) {
		o.noImitation = true
	}
}

// WithIDGenerator sets the source of fresh configuration identities.
func WithIDGenerator(gen func() string) EditorOption {
	return func(o *editorOptions) {
		if gen != nil {
			o.newID = gen
		}
	}
}

var defaultEditorConfig = editorOptions{
	newID: uuid.NewString,
}
