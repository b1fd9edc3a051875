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

func TestNewConfig(t *testing.T) {
	for _, kind := range model.Kinds {
		cfg := model.NewConfig(kind)
		require.NotNil(t, cfg, kind.String())

		assert.Equal(t, kind, cfg.Kind())
		assert.Equal(t, model.CurrentVersion, cfg.Base().Version)
		assert.Equal(t, model.Inherit, cfg.Base().ToolbarState)
	}

	assert.Nil(t, model.NewConfig(model.Kind(42)))
}

func TestParseKind(t *testing.T) {
	k, ok := model.ParseKind("FenceConfig")
	assert.True(t, ok)
	assert.Equal(t, model.KindFence, k)

	_, ok = model.ParseKind("BridgeConfig")
	assert.False(t, ok)
}

func TestCommon_Identify(t *testing.T) {
	cfg := model.NewConfig(model.KindRoad).Base()
	cfg.Identify("a")
	assert.False(t, cfg.NeedsLocalCopy())

	cfg.Identify("b")
	assert.Equal(t, "b", cfg.ID)
	assert.Equal(t, "a", cfg.OriginalID())
	assert.True(t, cfg.NeedsLocalCopy())
}

func TestConfig_Clone(t *testing.T) {
	road := model.NewConfig(model.KindRoad).(*model.RoadConfig)
	road.Identify("a")
	road.SpeedLimit = 80
	road.Lanes = append(road.Lanes, model.NewGroupLane("Sidewalk"))
	road.Playsets = []int{3}

	c := road.Clone().(*model.RoadConfig)
	c.Lanes[0].SetOption("Parking", "P")
	c.Lanes = append(c.Lanes, model.NewSegmentLane("Tram Track"))
	c.Playsets[0] = 4

	assert.Equal(t, float32(80), c.SpeedLimit)
	assert.Equal(t, "a", c.OriginalID())
	assert.Len(t, road.Lanes, 1)
	assert.Empty(t, road.Lanes[0].GroupOptions)
	assert.Equal(t, []int{3}, road.Playsets)
}

func TestConfig_Clamp(t *testing.T) {
	road := model.NewConfig(model.KindRoad).(*model.RoadConfig)
	road.SetSpeedLimit(-5)
	road.SetMaxSlopeSteepness(3)

	assert.Equal(t, float32(0), road.SpeedLimit)
	assert.Equal(t, model.MaxSlopeSteepness, road.MaxSlopeSteepness)

	fence := model.NewConfig(model.KindFence).(*model.FenceConfig)
	fence.SetMaxSlopeSteepness(0.25)
	assert.Equal(t, float32(0.25), fence.MaxSlopeSteepness)
}

func TestCommon_IsOneWay(t *testing.T) {
	lanes := func(inverts ...bool) *model.Common {
		c := &model.Common{}
		for _, i := range inverts {
			c.Lanes = append(c.Lanes, &model.LaneConfig{Invert: i})
		}

		return c
	}

	assert.True(t, lanes().IsOneWay())
	assert.True(t, lanes(true).IsOneWay())
	assert.True(t, lanes(true, false, false, true).IsOneWay())
	assert.False(t, lanes(true, true, false, false).IsOneWay())
}

func TestApplyVersionChanges(t *testing.T) {
	track := model.NewConfig(model.KindTrack).(*model.TrackConfig)
	track.Version = model.VersionRemoveAggregateType
	track.ToolbarState = model.Hide

	for range 4 {
		track.Lanes = append(track.Lanes, model.NewSegmentLane("Train Track"))
	}

	track.ApplyVersionChanges()

	assert.Equal(t, model.CurrentVersion, track.Version)
	assert.Equal(t, model.Inherit, track.ToolbarState)
	assert.Equal(t, []bool{true, true, false, false}, inverts(track.Lanes))

	// applying again must not disturb anything
	track.Lanes[3].Invert = true
	track.ToolbarState = model.Show
	track.ApplyVersionChanges()

	assert.Equal(t, model.Show, track.ToolbarState)
	assert.Equal(t, []bool{true, true, false, true}, inverts(track.Lanes))
}

func inverts(lanes []*model.LaneConfig) []bool {
	out := make([]bool, len(lanes))
	for i, l := range lanes {
		out[i] = l.Invert
	}

	return out
}
