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

package encoder

import (
	"fmt"

	"m4o.io/roadbuilder/internal/core"
	"m4o.io/roadbuilder/model"
)

// EncodeConfig writes a configuration record at model.CurrentVersion.  The
// configuration is not modified.
func EncodeConfig(cfg model.Config) ([]byte, error) {
	w := &recordWriter{buf: make([]byte, 0, 256)}

	if err := writeConfig(w, cfg); err != nil {
		return nil, err
	}

	return w.buf, nil
}

func writeConfig(w *recordWriter, cfg model.Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: nil configuration", core.ErrUnknownKind)
	}

	kind := cfg.Kind()
	if model.NewConfig(kind) == nil {
		return fmt.Errorf("%w: %d", core.ErrUnknownKind, kind)
	}

	c := cfg.Base()

	w.u16(model.CurrentVersion)
	w.string(kind.String())

	w.i32(int32(len(c.Lanes)))

	for _, l := range c.Lanes {
		writeLane(w, l)
	}

	w.string(c.ID)
	w.string(c.Name)

	switch v := cfg.(type) {
	case *model.RoadConfig:
		w.string(v.PillarPrefabName)
		w.f32(v.SpeedLimit)
		w.f32(v.MaxSlopeSteepness)
		w.bool(v.GeneratesTrafficLights)
		w.bool(v.GeneratesZoningBlocks)
	case *model.TrackConfig:
		w.string(v.PillarPrefabName)
		w.f32(v.SpeedLimit)
		w.f32(v.MaxSlopeSteepness)
	case *model.PathConfig:
		w.string(v.PillarPrefabName)
		w.f32(v.SpeedLimit)
		w.f32(v.MaxSlopeSteepness)
	case *model.FenceConfig:
		w.f32(v.MaxSlopeSteepness)
	}

	w.u64(uint64(c.Category))
	w.u64(uint64(c.Addons))
	w.i32(int32(c.ToolbarState))

	w.i32(int32(len(c.Playsets)))

	for _, p := range c.Playsets {
		w.i32(int32(p))
	}

	w.bool(c.Uploaded)

	return nil
}

// writeLane writes a nested lane record.  Options are written in name order
// so equal lanes always produce equal bytes.
func writeLane(w *recordWriter, l *model.LaneConfig) {
	w.u16(model.CurrentVersion)
	w.string(l.SectionPrefabName)
	w.string(l.GroupPrefabName)
	w.bool(l.Invert)

	names := l.SortedOptions()
	w.i32(int32(len(names)))

	for _, name := range names {
		w.string(name)
		w.string(l.GroupOptions[name])
	}
}

// EncodeHeader writes a bundle header record.
func EncodeHeader(hdr model.Header) []byte {
	w := &recordWriter{buf: make([]byte, 0, 64)}

	w.u16(hdr.Version)
	w.i32(hdr.Count)
	w.string(hdr.WritingProgram)

	var ts int64
	if !hdr.Timestamp.IsZero() {
		ts = hdr.Timestamp.Unix()
	}

	w.i64(ts)

	return w.buf
}
