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

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"m4o.io/roadbuilder/model"
)

func TestPlaysets(t *testing.T) {
	c := &model.Common{}
	assert.True(t, c.IsInPlayset(7, true))

	c.RemoveFromPlayset(7)
	assert.Equal(t, []int{-7}, c.Playsets)
	assert.False(t, c.IsInPlayset(7, true))
	assert.True(t, c.IsInPlayset(8, true))
	assert.True(t, c.IsInPlayset(7, false))

	c.AddToPlayset(7)
	assert.Equal(t, []int{7}, c.Playsets)
	assert.True(t, c.IsInPlayset(7, true))
	assert.False(t, c.IsInPlayset(8, true))

	c.AddToPlayset(8)
	c.RemoveFromPlayset(7)
	assert.Equal(t, []int{8}, c.Playsets)
	assert.False(t, c.IsInPlayset(7, true))

	c.AddToPlayset(0)
	assert.Equal(t, []int{8}, c.Playsets)
}
