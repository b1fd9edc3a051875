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
	"github.com/stretchr/testify/require"

	"m4o.io/roadbuilder/model"
)

func TestRule_Matches(t *testing.T) {
	test_cases := []struct {
		name      string
		rule      model.Rule
		candidate model.RoadCategory
		expected  bool
	}{
		{"empty rule", model.Rule{}, model.Road, true},
		{"empty rule any category", model.Rule{}, model.Highway | model.Tram, true},
		{"required present", model.Rule{RequireAll: model.RaisedSidewalk}, model.RaisedSidewalk | model.Highway, true},
		{"required partially present", model.Rule{RequireAll: model.RaisedSidewalk | model.Tram}, model.RaisedSidewalk, false},
		{"any present", model.Rule{RequireAny: model.Train | model.Subway | model.Tram}, model.Subway, true},
		{"any absent", model.Rule{RequireAny: model.Train | model.Subway | model.Tram}, model.Highway, false},
		{"excluded absent", model.Rule{RequireNone: model.NonAsphalt}, model.Highway, true},
		{"excluded present", model.Rule{RequireNone: model.NonAsphalt}, model.NonAsphalt | model.Highway, false},
		{"one of many excluded present", model.Rule{RequireNone: model.Gravel | model.Pathway | model.Fence}, model.Fence, false},
		{
			"all three satisfied",
			model.Rule{RequireAll: model.PublicTransport, RequireAny: model.Tram | model.Train, RequireNone: model.Gravel},
			model.PublicTransport | model.Tram,
			true,
		},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.rule.Matches(tc.candidate))
			assert.Equal(t, tc.expected, model.MatchCategories(&tc.rule, tc.candidate))
		})
	}
}

func TestRule_Overlaps(t *testing.T) {
	test_cases := []struct {
		name     string
		a, b     model.Rule
		expected bool
	}{
		{"empty rules", model.Rule{}, model.Rule{}, true},
		{"same requirement", model.Rule{RequireAll: model.Tram}, model.Rule{RequireAll: model.Tram}, true},
		{"different requirements", model.Rule{RequireAll: model.Tram}, model.Rule{RequireAll: model.Highway}, true},
		{"required and excluded", model.Rule{RequireAll: model.Tram}, model.Rule{RequireNone: model.Tram}, false},
		{"excluded and required", model.Rule{RequireNone: model.Gravel}, model.Rule{RequireAll: model.Gravel | model.Road}, false},
		{"any partly excluded", model.Rule{RequireAny: model.Train | model.Subway}, model.Rule{RequireNone: model.Train}, true},
		{"any fully excluded", model.Rule{RequireAny: model.Train | model.Subway}, model.Rule{RequireNone: model.Train | model.Subway}, false},
		{
			"both any sets reachable",
			model.Rule{RequireAny: model.Train, RequireNone: model.Tram},
			model.Rule{RequireAny: model.Tram | model.Subway},
			true,
		},
	}

	for _, tc := range test_cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.expected, tc.b.Overlaps(tc.a))
		})
	}
}

func TestMatchCategories_NoRule(t *testing.T) {
	assert.True(t, model.MatchCategories(nil, model.Road))
	assert.True(t, model.MatchCategories(nil, model.Fence|model.NonAsphalt))
}

func TestRule_Builders(t *testing.T) {
	r := model.Rule{}.WithRequired(model.Tram).WithAny(model.Gravel).WithExcluded(model.Fence)

	assert.Equal(t, model.Rule{RequireAll: model.Tram, RequireAny: model.Gravel, RequireNone: model.Fence}, r)
	assert.Equal(t, "all=Tram any=Gravel none=Fence", r.String())
}

func TestRoadCategory_String(t *testing.T) {
	assert.Equal(t, "Road", model.Road.String())
	assert.Equal(t, "Highway|RaisedSidewalk", (model.RaisedSidewalk | model.Highway).String())
	assert.Equal(t, "Tram|0x100000", (model.Tram | 1<<20).String())
}

func TestParseRoadCategory(t *testing.T) {
	c, err := model.ParseRoadCategory("Highway | raisedsidewalk")
	require.NoError(t, err)
	assert.Equal(t, model.Highway|model.RaisedSidewalk, c)

	c, err = model.ParseRoadCategory("")
	require.NoError(t, err)
	assert.Equal(t, model.Road, c)

	_, err = model.ParseRoadCategory("Highway|Hovercraft")
	assert.Error(t, err)
}

func TestRoadAddons(t *testing.T) {
	a, err := model.ParseRoadAddons("UndergroundWaterPipes|TreesCenter")
	require.NoError(t, err)

	assert.True(t, a.Has(model.TreesCenter))
	assert.False(t, a.Has(model.GrassLeft))
	assert.Equal(t, "UndergroundWaterPipes|TreesCenter", a.String())
	assert.Equal(t, "None", model.NoAddons.String())
}
