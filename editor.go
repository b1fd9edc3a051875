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

// Package roadbuilder turns road configurations into concrete lane segment
// lists and back.
//
// An Editor resolves each lane of a configuration against a catalog of lane
// groups and segments, applies the lane editing heuristics used when lanes
// are added, moved or duplicated, and prunes lanes that no longer fit the
// configuration's category.  Serialize and Deserialize persist a single
// configuration; Encoder and Decoder stream bundles of them.
//
// Configurations are not safe for concurrent mutation.  Callers must not
// edit a configuration while it is being serialized.
package roadbuilder

import (
	"fmt"
	"log/slog"

	"m4o.io/roadbuilder/catalog"
	"m4o.io/roadbuilder/model"
)

// CatalogSource provides the catalog lanes are resolved against.  Get
// returns nil until the catalog is ready.
type CatalogSource interface {
	Get() *catalog.Catalog
}

// Editor resolves and edits configurations.  It holds no per-configuration
// state, so one Editor may serve many configurations.
type Editor struct {
	catalog CatalogSource
	cfg     editorOptions
}

// NewEditor creates an editor over the given catalog source.
func NewEditor(source CatalogSource, opts ...EditorOption) *Editor {
	cfg := defaultEditorConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	return &Editor{catalog: source, cfg: cfg}
}

// ChangeKind describes what a mutation touched.
type ChangeKind uint8

const (
	LanesChanged ChangeKind = 1 << iota
	OptionsChanged
	CategoryChanged
	IdentityChanged
)

// Change is returned by every mutating operation so the caller can decide
// what to regenerate.  A zero Change means nothing was modified.
type Change struct {
	ID     string
	Kind   ChangeKind
	Pruned []*model.LaneConfig
}

// Changed reports whether anything was modified.
func (c Change) Changed() bool { return c.Kind != 0 }

// Has reports whether the change includes k.
func (c Change) Has(k ChangeKind) bool { return c.Kind&k != 0 }

// CreateConfiguration creates a configuration of the given kind from the
// catalog's template for it.  Without a template, or before the catalog is
// ready, the configuration has no lanes.
func (e *Editor) CreateConfiguration(kind model.Kind) (model.Config, error) {
	cfg := model.NewConfig(kind)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}

	c := cfg.Base()
	c.Identify(e.cfg.newID())
	c.Name = "New " + kind.String()

	cat := e.catalog.Get()
	if cat == nil {
		return cfg, nil
	}

	t, ok := cat.Template(kind)
	if !ok {
		return cfg, nil
	}

	if t.Name != "" {
		c.Name = t.Name
	}

	c.Category = t.Category
	c.Addons = t.Addons

	switch v := cfg.(type) {
	case *model.RoadConfig:
		v.PillarPrefabName = t.PillarPrefabName
		v.SetSpeedLimit(t.SpeedLimit)
		v.SetMaxSlopeSteepness(t.MaxSlopeSteepness)
		v.GeneratesTrafficLights = true
		v.GeneratesZoningBlocks = true
	case *model.TrackConfig:
		v.PillarPrefabName = t.PillarPrefabName
		v.SetSpeedLimit(t.SpeedLimit)
		v.SetMaxSlopeSteepness(t.MaxSlopeSteepness)
	case *model.PathConfig:
		v.PillarPrefabName = t.PillarPrefabName
		v.SetSpeedLimit(t.SpeedLimit)
		v.SetMaxSlopeSteepness(t.MaxSlopeSteepness)
	case *model.FenceConfig:
		v.SetMaxSlopeSteepness(t.MaxSlopeSteepness)
	}

	for _, tl := range t.Lanes {
		var l *model.LaneConfig

		if tl.Group != "" {
			l = model.NewGroupLane(tl.Group)
			for name, value := range tl.Options {
				l.SetOption(name, value)
			}
		} else {
			l = model.NewSegmentLane(tl.Segment)
		}

		l.Invert = tl.Invert
		c.Lanes = append(c.Lanes, l)
	}

	return cfg, nil
}

// SegmentRef names one piece of an existing road's cross-section.
type SegmentRef struct {
	Name   string
	Invert bool
}

// FromSegments rebuilds a configuration from an existing road's segment
// list.  Segments that belong to a lane group become group lanes carrying
// the options the segment stands for; others are referenced directly.  The
// configuration is named like a freshly created one of the same kind.
func (e *Editor) FromSegments(kind model.Kind, category model.RoadCategory, segments []SegmentRef) (model.Config, error) {
	cfg := model.NewConfig(kind)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}

	cat := e.catalog.Get()
	if cat == nil {
		return nil, ErrCatalogMissing
	}

	c := cfg.Base()
	c.Identify(e.cfg.newID())
	c.Name = "New " + kind.String()
	c.Category = category

	if t, ok := cat.Template(kind); ok && t.Name != "" {
		c.Name = t.Name
	}

	for _, ref := range segments {
		var l *model.LaneConfig

		if g, combination, ok := cat.GroupOf(ref.Name); ok {
			l = model.NewGroupLane(g.Name)
			for name, value := range combination {
				l.SetOption(name, value)
			}
		} else {
			if _, ok := cat.Segment(ref.Name); !ok {
				slog.Warn("segment not in catalog", "id", c.ID, "segment", ref.Name)
			}

			l = model.NewSegmentLane(ref.Name)
		}

		l.Invert = ref.Invert
		c.Lanes = append(c.Lanes, l)
	}

	return cfg, nil
}

// SetCategory changes the configuration's category.  Unless the editor is
// in advanced mode, lanes whose resolved segment or group no longer matches
// the category are removed and reported in the returned Change.
func (e *Editor) SetCategory(cfg model.Config, category model.RoadCategory) Change {
	c := cfg.Base()
	if c.Category == category {
		return Change{ID: c.ID}
	}

	c.Category = category
	change := Change{ID: c.ID, Kind: CategoryChanged}

	if e.cfg.advancedMode {
		return change
	}

	kept := c.Lanes[:0:0]

	for i, l := range c.Lanes {
		if e.applicable(cfg, l) {
			kept = append(kept, l)

			continue
		}

		slog.Debug("pruning lane", "id", c.ID, "lane", i, "group", l.GroupPrefabName, "segment", l.SectionPrefabName)
		change.Pruned = append(change.Pruned, l)
	}

	if len(change.Pruned) > 0 {
		c.Lanes = kept
		change.Kind |= LanesChanged

		prunedLanes.Add(float64(len(change.Pruned)))
	}

	return change
}

// applicable reports whether a lane's resolved segment and group both match
// the configuration.  Lanes that cannot be resolved are kept.
func (e *Editor) applicable(cfg model.Config, l *model.LaneConfig) bool {
	cat := e.catalog.Get()
	if cat == nil {
		return true
	}

	if l.IsGroup() {
		g, ok := cat.Group(l.GroupPrefabName)
		if ok && !MatchCategories(g, cfg) {
			return false
		}
	}

	r, ok := Resolve(cat, cfg.Base().Category, l)

	return !ok || MatchCategories(r.Segment, cfg)
}

// SaveAsNew gives the configuration a fresh identity.  Its original identity
// is kept, so NeedsLocalCopy reports true afterwards.
func (e *Editor) SaveAsNew(cfg model.Config) Change {
	c := cfg.Base()
	c.Identify(e.cfg.newID())

	return Change{ID: c.ID, Kind: IdentityChanged}
}

// Duplicate returns an independent deep copy of the configuration with a
// fresh identity.
func (e *Editor) Duplicate(cfg model.Config) model.Config {
	dup := cfg.Clone()
	dup.Base().Identify(e.cfg.newID())

	return dup
}
