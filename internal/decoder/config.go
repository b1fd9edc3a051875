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

package decoder

import (
	"fmt"
	"time"

	"m4o.io/roadbuilder/internal/core"
	"m4o.io/roadbuilder/model"
)

const (
	minLaneSize   = 2 + 4
	minOptionSize = 4 + 4
)

// DecodeConfig reads a configuration record written at any known schema
// version and migrates it to the current one.
func DecodeConfig(b []byte) (model.Config, error) {
	r := &recordReader{buf: b}

	version := r.u16("version")
	if r.err != nil {
		return nil, r.err
	}

	if err := checkVersion(version); err != nil {
		return nil, err
	}

	kindName := r.string("kind")
	if r.err != nil {
		return nil, r.err
	}

	kind, ok := model.ParseKind(kindName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownKind, kindName)
	}

	cfg := model.NewConfig(kind)
	c := cfg.Base()
	c.Version = version

	n := r.count("lane count", minLaneSize)

	c.Lanes = make([]*model.LaneConfig, 0, n)
	for range n {
		l, err := readLane(r)
		if err != nil {
			return nil, err
		}

		c.Lanes = append(c.Lanes, l)
	}

	id := r.string("id")
	c.Name = r.string("name")

	if version < model.VersionRemoveAggregateType {
		_ = r.string("aggregate type")
	}

	switch v := cfg.(type) {
	case *model.RoadConfig:
		v.PillarPrefabName = r.string("pillar")
		v.SpeedLimit = r.f32("speed limit")
		v.MaxSlopeSteepness = r.f32("max slope")
		v.GeneratesTrafficLights = r.bool("traffic lights")
		v.GeneratesZoningBlocks = r.bool("zoning blocks")
	case *model.TrackConfig:
		v.PillarPrefabName = r.string("pillar")
		v.SpeedLimit = r.f32("speed limit")
		v.MaxSlopeSteepness = r.f32("max slope")
	case *model.PathConfig:
		v.PillarPrefabName = r.string("pillar")
		v.SpeedLimit = r.f32("speed limit")
		v.MaxSlopeSteepness = r.f32("max slope")
	case *model.FenceConfig:
		v.MaxSlopeSteepness = r.f32("max slope")
	}

	c.Category = model.RoadCategory(r.u64("category"))
	c.Addons = model.RoadAddons(r.u64("addons"))

	c.ToolbarState = model.Hide
	if version >= model.VersionAddToolbarState {
		c.ToolbarState = model.ToolbarState(r.i32("toolbar state"))
	}

	if version >= model.VersionAddPlaysets {
		n := r.count("playset count", 4)
		if n > 0 {
			c.Playsets = make([]int, n)
			for i := range c.Playsets {
				c.Playsets[i] = int(r.i32("playset"))
			}
		}

		c.Uploaded = r.bool("uploaded")
	}

	if err := r.finish(); err != nil {
		return nil, err
	}

	c.Identify(id)
	cfg.ApplyVersionChanges()

	return cfg, nil
}

func readLane(r *recordReader) (*model.LaneConfig, error) {
	version := r.u16("lane version")
	if r.err != nil {
		return nil, r.err
	}

	if err := checkVersion(version); err != nil {
		return nil, fmt.Errorf("lane: %w", err)
	}

	l := &model.LaneConfig{SectionPrefabName: r.string("section")}

	if version >= model.VersionAddLaneGroups {
		l.GroupPrefabName = r.string("group")
		l.Invert = r.bool("invert")

		n := r.count("option count", minOptionSize)
		for range n {
			name := r.string("option name")
			l.SetOption(name, r.string("option value"))
		}
	}

	return l, r.err
}

func checkVersion(v uint16) error {
	if v == 0 || v > model.CurrentVersion {
		return fmt.Errorf("%w: %d", core.ErrUnsupportedVersion, v)
	}

	return nil
}

// DecodeHeader reads a bundle header record.
func DecodeHeader(b []byte) (model.Header, error) {
	r := &recordReader{buf: b}

	hdr := model.Header{
		Version:        r.u16("version"),
		Count:          r.i32("count"),
		WritingProgram: r.string("writing program"),
	}

	if ts := r.i64("timestamp"); ts != 0 {
		hdr.Timestamp = time.Unix(ts, 0).UTC()
	}

	if err := r.finish(); err != nil {
		return model.Header{}, fmt.Errorf("bundle header: %w", err)
	}

	if err := checkVersion(hdr.Version); err != nil {
		return model.Header{}, fmt.Errorf("bundle header: %w", err)
	}

	return hdr, nil
}
