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

import (
	"maps"
	"slices"
)

// LaneConfig is one lane of a configuration.  A lane either references a
// segment directly through SectionPrefabName, or a lane group through
// GroupPrefabName together with the options selected for it.
//
// A lane without selections has nil GroupOptions; records read back from
// storage follow the same convention.
type LaneConfig struct {
	SectionPrefabName string
	GroupPrefabName   string
	GroupOptions      map[string]string
	Invert            bool
}

// NewGroupLane creates a lane of the named group with no selections.
func NewGroupLane(group string) *LaneConfig {
	return &LaneConfig{GroupPrefabName: group}
}

// NewSegmentLane creates a lane referencing a segment directly.
func NewSegmentLane(segment string) *LaneConfig {
	return &LaneConfig{SectionPrefabName: segment}
}

// IsGroup reports whether the lane is resolved through a lane group.
func (l *LaneConfig) IsGroup() bool {
	return l.GroupPrefabName != ""
}

// Option returns the selection for name, falling back to def.
func (l *LaneConfig) Option(name, def string) string {
	if v, ok := l.GroupOptions[name]; ok {
		return v
	}

	return def
}

// SetOption records a selection, allocating the map when needed.
func (l *LaneConfig) SetOption(name, value string) {
	if l.GroupOptions == nil {
		l.GroupOptions = map[string]string{}
	}

	l.GroupOptions[name] = value
}

// Clone returns a deep copy; the option map is not shared.
func (l *LaneConfig) Clone() *LaneConfig {
	c := *l

	c.GroupOptions = maps.Clone(l.GroupOptions)
	if len(c.GroupOptions) == 0 {
		c.GroupOptions = nil
	}

	return &c
}

// Retain drops selections that are not declared by defs or whose value the
// declaration does not allow.  It returns the names that were dropped.
func (l *LaneConfig) Retain(defs []OptionDefinition) []string {
	var dropped []string

	for name, value := range l.GroupOptions {
		i := slices.IndexFunc(defs, func(d OptionDefinition) bool { return d.Name == name })
		if i < 0 || !defs[i].Allows(value) {
			dropped = append(dropped, name)
		}
	}

	for _, name := range dropped {
		delete(l.GroupOptions, name)
	}

	if len(l.GroupOptions) == 0 {
		l.GroupOptions = nil
	}

	slices.Sort(dropped)

	return dropped
}

// SortedOptions returns the selections ordered by option name.
func (l *LaneConfig) SortedOptions() []string {
	return slices.Sorted(maps.Keys(l.GroupOptions))
}
