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

// Package catalog holds the read-only collection of lane segments and lane
// groups that configurations are resolved against.
//
// A Catalog is produced once by a Builder (directly, or through the YAML
// loader) and is never modified afterwards, so it may be shared freely
// between goroutines.
package catalog

import (
	"cmp"
	"maps"
	"slices"

	"m4o.io/roadbuilder/model"
)

// Segment is a concrete cross-section piece.
type Segment struct {
	Name        string
	DisplayName string
	Thumbnail   string

	Width        model.Meters
	TwoWay       bool
	Median       bool
	Parking      bool
	ParkingAngle model.Degrees

	// Rule limits the categories the segment may appear in.  Nil means
	// anywhere.
	Rule *model.Rule

	// SidePrefab is the piece placed outside the segment when it ends up as
	// an edge lane.
	SidePrefab string

	// Hidden segments can be resolved but are not offered for picking.
	Hidden bool
}

// Member is a segment belonging to a group together with the option values
// it stands for.
type Member struct {
	Segment     string
	Combination model.Combination
}

// Group is a family of segments that differ only by option values.
type Group struct {
	Name        string
	DisplayName string
	Thumbnail   string
	Options     []model.OptionDefinition
	Members     []Member
	Rule        *model.Rule
	SidePrefab  string
}

// Option returns the definition of the named option.
func (g *Group) Option(name string) (model.OptionDefinition, bool) {
	i := slices.IndexFunc(g.Options, func(d model.OptionDefinition) bool { return d.Name == name })
	if i < 0 {
		return model.OptionDefinition{}, false
	}

	return g.Options[i], true
}

// Matching returns every member whose combination equals the given
// assignment.
func (g *Group) Matching(c model.Combination) []Member {
	var out []Member

	for _, m := range g.Members {
		if m.Combination.Equal(c) {
			out = append(out, m)
		}
	}

	return out
}

// TemplateLane is one lane of a Template.
type TemplateLane struct {
	Group   string
	Segment string
	Options map[string]string
	Invert  bool
}

// Template is the starting point for a new configuration of a kind.
type Template struct {
	Kind              model.Kind
	Name              string
	Category          model.RoadCategory
	Addons            model.RoadAddons
	PillarPrefabName  string
	SpeedLimit        float32
	MaxSlopeSteepness float32
	Lanes             []TemplateLane
}

// Catalog is an immutable snapshot of segments, groups and templates.
// Values returned by its accessors must not be modified.
type Catalog struct {
	segments  map[string]*Segment
	groups    map[string]*Group
	owners    map[string]owner
	templates map[model.Kind]*Template

	ambiguities []Ambiguity
}

// Ambiguity names two members of a group that share an option combination
// and whose segments can both be valid for the same category.
type Ambiguity struct {
	Group  string
	First  string
	Second string
}

type owner struct {
	group       *Group
	combination model.Combination
}

// Ambiguities lists the member pairs found ambiguous while building, in
// registration order.
func (c *Catalog) Ambiguities() []Ambiguity {
	return slices.Clone(c.ambiguities)
}

// Segment looks up a segment by name.
func (c *Catalog) Segment(name string) (*Segment, bool) {
	s, ok := c.segments[name]

	return s, ok
}

// Group looks up a lane group by name.
func (c *Catalog) Group(name string) (*Group, bool) {
	g, ok := c.groups[name]

	return g, ok
}

// GroupOf returns the group a segment is a member of, with the combination
// the segment stands for.
func (c *Catalog) GroupOf(segment string) (*Group, model.Combination, bool) {
	o, ok := c.owners[segment]
	if !ok {
		return nil, nil, false
	}

	return o.group, o.combination, true
}

// Template returns the template for a configuration kind.
func (c *Catalog) Template(kind model.Kind) (*Template, bool) {
	t, ok := c.templates[kind]

	return t, ok
}

// Segments returns every segment ordered by name.
func (c *Catalog) Segments() []*Segment {
	return sortedValues(c.segments, func(s *Segment) string { return s.Name })
}

// Groups returns every group ordered by name.
func (c *Catalog) Groups() []*Group {
	return sortedValues(c.groups, func(g *Group) string { return g.Name })
}

// Templates returns every template ordered by kind.
func (c *Catalog) Templates() []*Template {
	out := slices.Collect(maps.Values(c.templates))
	slices.SortFunc(out, func(a, b *Template) int { return cmp.Compare(a.Kind, b.Kind) })

	return out
}

// Pickable returns the groups and loose segments applicable to the category,
// in name order, for building pick lists.  Segments that belong to a group
// are represented by their group.
func (c *Catalog) Pickable(category model.RoadCategory) ([]*Group, []*Segment) {
	var groups []*Group

	for _, g := range c.Groups() {
		if model.MatchCategories(g.Rule, category) {
			groups = append(groups, g)
		}
	}

	var segments []*Segment

	for _, s := range c.Segments() {
		if _, grouped := c.owners[s.Name]; grouped || s.Hidden {
			continue
		}

		if model.MatchCategories(s.Rule, category) {
			segments = append(segments, s)
		}
	}

	return groups, segments
}

func sortedValues[T any](m map[string]T, key func(T) string) []T {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(key(a), key(b)) })

	return out
}

// CategoryRule returns the segment's rule.
func (s *Segment) CategoryRule() *model.Rule {
	if s == nil {
		return nil
	}

	return s.Rule
}

// CategoryRule returns the group's rule.
func (g *Group) CategoryRule() *model.Rule {
	if g == nil {
		return nil
	}

	return g.Rule
}
