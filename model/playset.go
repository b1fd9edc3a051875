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

package model

import "slices"

// IsInPlayset reports whether the configuration is visible in the playset.
// Configurations without any playset entry belong to every playset, as do
// all configurations when isolation is disabled.  A negative entry excludes
// a playset explicitly; positive entries restrict the configuration to the
// listed playsets.
func (c *Common) IsInPlayset(id int, isolated bool) bool {
	if !isolated || id <= 0 || len(c.Playsets) == 0 {
		return true
	}

	if slices.Contains(c.Playsets, -id) {
		return false
	}

	return slices.Contains(c.Playsets, id) || !c.hasPositivePlayset()
}

// AddToPlayset makes the configuration visible in the playset.  Playset ids
// must be positive.
func (c *Common) AddToPlayset(id int) {
	if id <= 0 || slices.Contains(c.Playsets, id) {
		return
	}

	c.Playsets = slices.DeleteFunc(c.Playsets, func(p int) bool { return p == -id })
	c.Playsets = append(c.Playsets, id)
}

// RemoveFromPlayset hides the configuration from the playset.
func (c *Common) RemoveFromPlayset(id int) {
	if id <= 0 {
		return
	}

	c.Playsets = slices.DeleteFunc(c.Playsets, func(p int) bool { return p == id })

	if !c.hasPositivePlayset() && !slices.Contains(c.Playsets, -id) {
		c.Playsets = append(c.Playsets, -id)
	}
}

func (c *Common) hasPositivePlayset() bool {
	return slices.ContainsFunc(c.Playsets, func(p int) bool { return p > 0 })
}
