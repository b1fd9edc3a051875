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
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"m4o.io/roadbuilder/model"
)

// LaneSlot is one position of a requested lane order.  Index refers to an
// existing lane in storage order; any other value, conventionally -1, asks
// for a new lane of the named group or segment.
type LaneSlot struct {
	Index             int
	SectionPrefabName string
	GroupPrefabName   string
}

// NewLaneSlot requests a new lane.
func NewLaneSlot(section, group string) LaneSlot {
	return LaneSlot{Index: -1, SectionPrefabName: section, GroupPrefabName: group}
}

// ExistingLaneSlot keeps the lane currently stored at index.
func ExistingLaneSlot(index int) LaneSlot {
	return LaneSlot{Index: index}
}

// FindSimilarLane returns the lane of group nearest to start.  The lane at
// start is checked first, then the search widens one step at a time looking
// left before right.  It returns nil when no lane of the group exists or
// start is out of range.
func FindSimilarLane(lanes []*model.LaneConfig, start int, group string) *model.LaneConfig {
	if start < 0 || start >= len(lanes) {
		return nil
	}

	if lanes[start].GroupPrefabName == group {
		return lanes[start]
	}

	for left, right := start-1, start+1; left >= 0 || right < len(lanes); left, right = left-1, right+1 {
		if left >= 0 && lanes[left].GroupPrefabName == group {
			return lanes[left]
		}

		if right < len(lanes) && lanes[right].GroupPrefabName == group {
			return lanes[right]
		}
	}

	return nil
}

// SetLaneOrder replaces the configuration's lanes with the requested order.
// Slots are given in the order the caller sees them, which is reversed under
// left-hand traffic.
//
// Existing lanes are kept as they are; a lane requested twice is copied the
// second time.  A new group lane imitates the options of the nearest lane of
// the same group in the previous list and is then fixed up against the
// group's definitions.  A new lane placed first is inverted; otherwise it
// takes the direction of the lane before it.
func (e *Editor) SetLaneOrder(cfg model.Config, slots []LaneSlot) Change {
	c := cfg.Base()
	old := c.Lanes

	if e.cfg.leftHandTraffic {
		slots = slices.Clone(slots)
		slices.Reverse(slots)
	}

	cat := e.catalog.Get()
	used := make(map[int]bool, len(old))
	lanes := make([]*model.LaneConfig, 0, len(slots))

	for _, s := range slots {
		if s.Index >= 0 && s.Index < len(old) {
			l := old[s.Index]
			if used[s.Index] {
				l = l.Clone()
			}

			used[s.Index] = true
			lanes = append(lanes, l)

			continue
		}

		l := &model.LaneConfig{
			SectionPrefabName: s.SectionPrefabName,
			GroupPrefabName:   s.GroupPrefabName,
		}

		if l.IsGroup() && cat != nil {
			if _, ok := cat.Group(l.GroupPrefabName); ok {
				if !e.cfg.noImitation {
					if similar := FindSimilarLane(old, len(lanes)-1, l.GroupPrefabName); similar != nil {
						l.GroupOptions = maps.Clone(similar.GroupOptions)
					}
				}

				e.FixGroupOptions(l)
			}
		}

		switch {
		case len(lanes) == 0:
			l.Invert = true
		case len(lanes) > 1:
			l.Invert = lanes[len(lanes)-1].Invert
		case len(old) > 1:
			l.Invert = old[1].Invert
		}

		lanes = append(lanes, l)
	}

	if slices.Equal(old, lanes) {
		return Change{ID: c.ID}
	}

	c.Lanes = lanes

	return Change{ID: c.ID, Kind: LanesChanged}
}

// DuplicateLane inserts a copy of the lane at index immediately before it.
// Nothing happens when index is out of range.
func (e *Editor) DuplicateLane(cfg model.Config, index int) Change {
	c := cfg.Base()
	if index < 0 || index >= len(c.Lanes) {
		return Change{ID: c.ID}
	}

	c.Lanes = slices.Insert(c.Lanes, index, c.Lanes[index].Clone())

	return Change{ID: c.ID, Kind: LanesChanged}
}

// RemoveLane deletes the lane at index.
func (e *Editor) RemoveLane(cfg model.Config, index int) (Change, error) {
	c := cfg.Base()
	if index < 0 || index >= len(c.Lanes) {
		return Change{ID: c.ID}, fmt.Errorf("%w: %d", ErrLaneIndex, index)
	}

	c.Lanes = slices.Delete(c.Lanes, index, index+1)

	return Change{ID: c.ID, Kind: LanesChanged}, nil
}

// SetLaneOption selects value for the named option of a group lane.  The
// option must be declared by the lane's group and allow the value.
func (e *Editor) SetLaneOption(cfg model.Config, index int, name, value string) (Change, error) {
	c := cfg.Base()
	if index < 0 || index >= len(c.Lanes) {
		return Change{ID: c.ID}, fmt.Errorf("%w: %d", ErrLaneIndex, index)
	}

	l := c.Lanes[index]
	if !l.IsGroup() {
		return Change{ID: c.ID}, fmt.Errorf("%w: lane %d", ErrNotGroupLane, index)
	}

	cat := e.catalog.Get()
	if cat == nil {
		return Change{ID: c.ID}, ErrCatalogMissing
	}

	g, ok := cat.Group(l.GroupPrefabName)
	if !ok {
		return Change{ID: c.ID}, fmt.Errorf("%w: group %q is not in the catalog", ErrNotGroupLane, l.GroupPrefabName)
	}

	def, ok := g.Option(name)
	if !ok {
		return Change{ID: c.ID}, fmt.Errorf("%w: %q in group %q", ErrUnknownOption, name, g.Name)
	}

	if !def.Allows(value) {
		return Change{ID: c.ID}, fmt.Errorf("%w: %q for %q", ErrOptionValue, value, name)
	}

	if cur, set := l.GroupOptions[name]; set && cur == value {
		return Change{ID: c.ID}, nil
	}

	l.SetOption(name, value)

	return Change{ID: c.ID, Kind: OptionsChanged}, nil
}

// FixGroupOptions removes selections the lane's group does not declare or
// does not allow, returning the names removed.  Lanes whose group is not in
// the catalog are left alone.
func (e *Editor) FixGroupOptions(lane *model.LaneConfig) []string {
	cat := e.catalog.Get()
	if cat == nil || !lane.IsGroup() {
		return nil
	}

	g, ok := cat.Group(lane.GroupPrefabName)
	if !ok {
		return nil
	}

	dropped := lane.Retain(g.Options)
	if len(dropped) > 0 {
		slog.Debug("dropped lane options", "group", g.Name, "options", dropped)
	}

	return dropped
}
