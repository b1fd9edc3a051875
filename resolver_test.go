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

package roadbuilder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/roadbuilder"
	"m4o.io/roadbuilder/catalog"
	"m4o.io/roadbuilder/model"
)

func TestResolve(t *testing.T) {
	c := testCatalog(t)

	test_cases := []struct {
		name     string
		category model.RoadCategory
		lane     *model.LaneConfig
		segment  string
		group    string
		ok       bool
	}{
		{"both options", model.RaisedSidewalk, sidewalk(map[string]string{"Width": "5m", "Parking": "P"}), "Sidewalk With Parking 5", "Sidewalk", true},
		{"default parking", model.RaisedSidewalk, sidewalk(map[string]string{"Width": "5m"}), "Sidewalk 5", "Sidewalk", true},
		{"all defaults", model.RaisedSidewalk, sidewalk(nil), "Sidewalk 3.5", "Sidewalk", true},
		{"parking only", model.RaisedSidewalk, sidewalk(map[string]string{"Parking": "P"}), "Sidewalk With Parking 3.5", "Sidewalk", true},
		{"undeclared option ignored", model.RaisedSidewalk, sidewalk(map[string]string{"Colour": "red"}), "Sidewalk 3.5", "Sidewalk", true},
		{"value without member", model.RaisedSidewalk, sidewalk(map[string]string{"Width": "9m"}), "", "Sidewalk", false},
		{"direct segment", model.Road, model.NewSegmentLane("Median 2"), "Median 2", "", true},
		{"unknown segment", model.Road, model.NewSegmentLane("Ghost"), "", "", false},
		{"unknown group", model.Road, model.NewGroupLane("Ghost"), "", "", false},
		{"raised sidewalk car", model.RaisedSidewalk, model.NewGroupLane("Car"), "Car Drive Section 3", "Car", true},
		{"plain road car", model.Road, model.NewGroupLane("Car"), "Alley Drive Section 3", "Car", true},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			r, ok := roadbuilder.Resolve(c, tc.category, tc.lane)
			require.Equal(t, tc.ok, ok)

			if tc.ok {
				require.NotNil(t, r.Segment)
				assert.Equal(t, tc.segment, r.Segment.Name)
			} else {
				assert.Nil(t, r.Segment)
			}

			if tc.group == "" {
				assert.Nil(t, r.Group)
			} else {
				require.NotNil(t, r.Group)
				assert.Equal(t, tc.group, r.Group.Name)
			}
		})
	}
}

func TestResolve_NotReady(t *testing.T) {
	r, ok := roadbuilder.Resolve(nil, model.Road, model.NewSegmentLane("Median 2"))
	assert.False(t, ok)
	assert.Equal(t, roadbuilder.Resolution{}, r)

	e := roadbuilder.NewEditor(catalog.NewHandle())
	s, ok := e.ResolveSegment(road(model.Road), model.NewSegmentLane("Median 2"))
	assert.False(t, ok)
	assert.Nil(t, s)
}

func TestResolve_Ambiguous(t *testing.T) {
	c := buildCatalog(t,
		[]catalog.Segment{{Name: "A"}, {Name: "B"}},
		[]catalog.Group{{Name: "G", Members: []catalog.Member{{Segment: "A"}, {Segment: "B"}}}})

	r, ok := roadbuilder.Resolve(c, model.Road, model.NewGroupLane("G"))
	assert.False(t, ok)
	assert.Nil(t, r.Segment)
	require.NotNil(t, r.Group)
	assert.Equal(t, "G", r.Group.Name)
}

func TestResolve_Deterministic(t *testing.T) {
	forward := testCatalog(t)
	reversed := reversedCatalog(t)

	lanes := []*model.LaneConfig{
		sidewalk(map[string]string{"Width": "5m", "Parking": "P"}),
		sidewalk(map[string]string{"Width": "5m"}),
		sidewalk(nil),
		model.NewGroupLane("Car"),
		model.NewSegmentLane("Tram Track Section 3"),
		model.NewSegmentLane("Ghost"),
	}

	for _, category := range []model.RoadCategory{model.Road, model.RaisedSidewalk, model.Highway} {
		for _, l := range lanes {
			a, aok := roadbuilder.Resolve(forward, category, l)
			b, bok := roadbuilder.Resolve(reversed, category, l)
			again, againOK := roadbuilder.Resolve(forward, category, l)

			require.Equal(t, aok, bok)
			require.Equal(t, aok, againOK)

			if aok {
				assert.Equal(t, a.Segment.Name, b.Segment.Name)
				assert.Same(t, a.Segment, again.Segment)
			}
		}
	}
}

func TestEditor_ResolveSegment(t *testing.T) {
	e := testEditor(t)

	cfg := road(model.RaisedSidewalk)
	s, ok := e.ResolveSegment(cfg, sidewalk(map[string]string{"Width": "5m", "Parking": "P"}))
	require.True(t, ok)
	assert.Equal(t, "Sidewalk With Parking 5", s.Name)
	assert.True(t, s.Parking)
}

func TestMatchCategories(t *testing.T) {
	c := testCatalog(t)

	tram, _ := c.Segment("Tram Track Section 3")
	median, _ := c.Segment("Median 2")
	group, _ := c.Group("Sidewalk")

	var missing *catalog.Segment

	test_cases := []struct {
		name     string
		ruled    roadbuilder.Ruled
		category model.RoadCategory
		expected bool
	}{
		{"nil", nil, model.Highway, true},
		{"typed nil", missing, model.Highway, true},
		{"no rule", median, model.Highway, true},
		{"excluded flag absent", tram, model.Road, true},
		{"excluded flag present", tram, model.Highway | model.RaisedSidewalk, false},
		{"group required present", group, model.RaisedSidewalk | model.Tram, true},
		{"group required absent", group, model.Road, false},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, roadbuilder.MatchCategories(tc.ruled, road(tc.category)))
		})
	}
}
