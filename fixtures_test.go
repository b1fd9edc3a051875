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
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"m4o.io/roadbuilder"
	"m4o.io/roadbuilder/catalog"
	"m4o.io/roadbuilder/model"
)

func testSegments() []catalog.Segment {
	return []catalog.Segment{
		{Name: "Sidewalk 3.5", DisplayName: "Sidewalk", Width: 3.5},
		{Name: "Sidewalk 5", DisplayName: "Sidewalk", Width: 5},
		{Name: "Sidewalk With Parking 3.5", Width: 3.5, Parking: true},
		{Name: "Sidewalk With Parking 5", Width: 5, Parking: true, ParkingAngle: 45},
		{Name: "Car Drive Section 3", Width: 3, Rule: &model.Rule{RequireAll: model.RaisedSidewalk}},
		{Name: "Alley Drive Section 3", Width: 3, Rule: &model.Rule{RequireNone: model.RaisedSidewalk}},
		{Name: "Tram Track Section 3", DisplayName: "Tram Track", Width: 3, TwoWay: true, Rule: &model.Rule{RequireNone: model.Highway}},
		{Name: "Median 2", Width: 2, Median: true},
	}
}

func testGroups() []catalog.Group {
	return []catalog.Group{
		{
			Name:        "Sidewalk",
			DisplayName: "Sidewalk Group",
			Rule:        &model.Rule{RequireAll: model.RaisedSidewalk},
			Options: []model.OptionDefinition{
				{Name: "Width", DefaultValue: "3.5m", Values: []model.OptionValue{{Value: "3.5m"}, {Value: "5m"}}},
				{Name: "Parking", DefaultValue: "", Type: model.Toggle, Values: []model.OptionValue{{Value: ""}, {Value: "P"}}},
			},
			Members: []catalog.Member{
				{Segment: "Sidewalk 3.5", Combination: model.Combination{"Width": "3.5m", "Parking": ""}},
				{Segment: "Sidewalk 5", Combination: model.Combination{"Width": "5m", "Parking": ""}},
				{Segment: "Sidewalk With Parking 3.5", Combination: model.Combination{"Width": "3.5m", "Parking": "P"}},
				{Segment: "Sidewalk With Parking 5", Combination: model.Combination{"Width": "5m", "Parking": "P"}},
			},
		},
		{
			Name: "Car",
			Members: []catalog.Member{
				{Segment: "Car Drive Section 3"},
				{Segment: "Alley Drive Section 3"},
			},
		},
	}
}

func buildCatalog(t *testing.T, segments []catalog.Segment, groups []catalog.Group) *catalog.Catalog {
	t.Helper()

	c, err := catalog.NewBuilder().AddSegment(segments...).AddGroup(groups...).Build()
	require.NoError(t, err)

	return c
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	return buildCatalog(t, testSegments(), testGroups())
}

// reversedCatalog registers the same content as testCatalog in the
// opposite order.
func reversedCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	segments := testSegments()
	slices.Reverse(segments)

	groups := testGroups()
	slices.Reverse(groups)

	for i := range groups {
		slices.Reverse(groups[i].Members)
		slices.Reverse(groups[i].Options)
	}

	return buildCatalog(t, segments, groups)
}

func sequentialIDs() func() string {
	n := 0

	return func() string {
		n++

		return fmt.Sprintf("id-%d", n)
	}
}

func testEditor(t *testing.T, opts ...roadbuilder.EditorOption) *roadbuilder.Editor {
	t.Helper()

	opts = append([]roadbuilder.EditorOption{roadbuilder.WithIDGenerator(sequentialIDs())}, opts...)

	return roadbuilder.NewEditor(catalog.Ready(testCatalog(t)), opts...)
}

func sidewalk(opts map[string]string) *model.LaneConfig {
	l := model.NewGroupLane("Sidewalk")
	for k, v := range opts {
		l.SetOption(k, v)
	}

	return l
}

func road(category model.RoadCategory, lanes ...*model.LaneConfig) *model.RoadConfig {
	cfg, _ := model.NewConfig(model.KindRoad).(*model.RoadConfig)
	cfg.Identify("road-1")
	cfg.Name = "Test Road"
	cfg.Category = category
	cfg.Lanes = append(cfg.Lanes, lanes...)

	return cfg
}

func laneNames(lanes []*model.LaneConfig) []string {
	out := make([]string, len(lanes))

	for i, l := range lanes {
		if l.IsGroup() {
			out[i] = l.GroupPrefabName
		} else {
			out[i] = l.SectionPrefabName
		}
	}

	return out
}
