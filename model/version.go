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

// Schema versions of persisted configurations.
const (
	VersionInitial             uint16 = 1
	VersionRemoveAggregateType uint16 = 2
	VersionAddToolbarState     uint16 = 3
	VersionAddLaneGroups       uint16 = 4
	VersionAddPlaysets         uint16 = 5

	CurrentVersion = VersionAddPlaysets
)

func (c *Common) migrate() {
	if c.Version < VersionAddToolbarState {
		c.ToolbarState = Inherit
	}

	if c.Version < VersionAddLaneGroups {
		middle := len(c.Lanes) / 2
		for i, l := range c.Lanes {
			l.Invert = i < middle
		}
	}

	c.Version = CurrentVersion
}
