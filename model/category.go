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
	"fmt"
	"strings"
)

// RoadCategory is a set of flags describing what kind of corridor a
// configuration represents.  A zero value is a plain road.
type RoadCategory uint64

// Road categories.
const (
	Road                    RoadCategory = 0
	Highway                 RoadCategory = 1 << 0
	PublicTransport         RoadCategory = 1 << 1
	Gravel                  RoadCategory = 1 << 2
	Tiled                   RoadCategory = 1 << 3
	Pathway                 RoadCategory = 1 << 4
	Fence                   RoadCategory = 1 << 5
	Train                   RoadCategory = 1 << 6
	Tram                    RoadCategory = 1 << 7
	Subway                  RoadCategory = 1 << 8
	RaisedSidewalk          RoadCategory = 1 << 9
	NonAsphalt              RoadCategory = 1 << 10
	NoRaisedSidewalkSupport RoadCategory = 1 << 11
)

var categoryNames = []flagName[RoadCategory]{
	{Highway, "Highway"},
	{PublicTransport, "PublicTransport"},
	{Gravel, "Gravel"},
	{Tiled, "Tiled"},
	{Pathway, "Pathway"},
	{Fence, "Fence"},
	{Train, "Train"},
	{Tram, "Tram"},
	{Subway, "Subway"},
	{RaisedSidewalk, "RaisedSidewalk"},
	{NonAsphalt, "NonAsphalt"},
	{NoRaisedSidewalkSupport, "NoRaisedSidewalkSupport"},
}

// Has reports whether every flag of f is present in c.
func (c RoadCategory) Has(f RoadCategory) bool { return c&f == f }

func (c RoadCategory) String() string { return formatFlags(c, categoryNames, "Road") }

// ParseRoadCategory parses a "|" separated list of category names, e.g.
// "Highway|RaisedSidewalk".  An empty string or "Road" yields Road.
func ParseRoadCategory(s string) (RoadCategory, error) {
	return parseFlags(s, categoryNames, "Road")
}

// RoadAddons is a set of flags for side effects that do not change the shape
// of the lanes.
type RoadAddons uint64

// Road addons.
const (
	NoAddons                      RoadAddons = 0
	UndergroundWaterPipes         RoadAddons = 1 << 0
	UndergroundElectricity        RoadAddons = 1 << 1
	RequiresUpgradeForElectricity RoadAddons = 1 << 2
	GrassLeft                     RoadAddons = 1 << 3
	GrassRight                    RoadAddons = 1 << 4
	GrassCenter                   RoadAddons = 1 << 5
	TreesLeft                     RoadAddons = 1 << 6
	TreesRight                    RoadAddons = 1 << 7
	TreesCenter                   RoadAddons = 1 << 8
)

var addonNames = []flagName[RoadAddons]{
	{UndergroundWaterPipes, "UndergroundWaterPipes"},
	{UndergroundElectricity, "UndergroundElectricity"},
	{RequiresUpgradeForElectricity, "RequiresUpgradeForElectricity"},
	{GrassLeft, "GrassLeft"},
	{GrassRight, "GrassRight"},
	{GrassCenter, "GrassCenter"},
	{TreesLeft, "TreesLeft"},
	{TreesRight, "TreesRight"},
	{TreesCenter, "TreesCenter"},
}

// Has reports whether every flag of f is present in a.
func (a RoadAddons) Has(f RoadAddons) bool { return a&f == f }

func (a RoadAddons) String() string { return formatFlags(a, addonNames, "None") }

// ParseRoadAddons parses a "|" separated list of addon names.
func ParseRoadAddons(s string) (RoadAddons, error) {
	return parseFlags(s, addonNames, "None")
}

// Rule gates which categories a segment or lane group may appear in.
type Rule struct {
	RequireAll  RoadCategory
	RequireAny  RoadCategory
	RequireNone RoadCategory
}

// Matches reports whether candidate satisfies the rule: every RequireAll flag
// is present, at least one RequireAny flag is present (unless RequireAny is
// empty), and no RequireNone flag is present.
func (r Rule) Matches(candidate RoadCategory) bool {
	matchesRequired := candidate&r.RequireAll == r.RequireAll
	matchesAny := r.RequireAny == 0 || candidate&r.RequireAny != 0
	matchesExcluded := candidate&r.RequireNone == 0

	return matchesRequired && matchesAny && matchesExcluded
}

// Overlaps reports whether some category satisfies both r and o.
func (r Rule) Overlaps(o Rule) bool {
	all := r.RequireAll | o.RequireAll
	none := r.RequireNone | o.RequireNone

	if all&none != 0 {
		return false
	}

	if r.RequireAny != 0 && r.RequireAny&^none == 0 {
		return false
	}

	return o.RequireAny == 0 || o.RequireAny&^none != 0
}

// WithRequired adds flags to RequireAll.
func (r Rule) WithRequired(c RoadCategory) Rule {
	r.RequireAll |= c

	return r
}

// WithAny adds flags to RequireAny.
func (r Rule) WithAny(c RoadCategory) Rule {
	r.RequireAny |= c

	return r
}

// WithExcluded adds flags to RequireNone.
func (r Rule) WithExcluded(c RoadCategory) Rule {
	r.RequireNone |= c

	return r
}

func (r Rule) String() string {
	return fmt.Sprintf("all=%s any=%s none=%s", r.RequireAll, r.RequireAny, r.RequireNone)
}

// MatchCategories applies an optional rule to a category.  Anything without
// a rule is applicable everywhere.
func MatchCategories(rule *Rule, candidate RoadCategory) bool {
	if rule == nil {
		return true
	}

	return rule.Matches(candidate)
}

type flagName[T ~uint64] struct {
	flag T
	name string
}

func formatFlags[T ~uint64](v T, names []flagName[T], zero string) string {
	if v == 0 {
		return zero
	}

	parts := make([]string, 0, len(names))

	for _, n := range names {
		if v&n.flag != 0 {
			parts = append(parts, n.name)
			v &^= n.flag
		}
	}

	if v != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint64(v)))
	}

	return strings.Join(parts, "|")
}

func parseFlags[T ~uint64](s string, names []flagName[T], zero string) (T, error) {
	var v T

	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" || part == zero {
			continue
		}

		found := false

		for _, n := range names {
			if strings.EqualFold(n.name, part) {
				v |= n.flag
				found = true

				break
			}
		}

		if !found {
			return 0, fmt.Errorf("unknown flag %q", part)
		}
	}

	return v, nil
}
