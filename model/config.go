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

// Package model contains the shared model for road builder configurations:
// the category flags and rules that gate lane groups, the lane list and the
// configuration variants that are persisted.
package model

import "slices"

// Kind discriminates the configuration variants.
type Kind uint8

const (
	// KindRoad is a configuration for cars and public transport.
	KindRoad Kind = iota + 1

	// KindTrack is a configuration for trains, trams and subways.
	KindTrack

	// KindFence is a configuration for fences and walls.
	KindFence

	// KindPath is a configuration for pedestrian and bicycle paths.
	KindPath
)

var kindNames = map[Kind]string{
	KindRoad:  "RoadConfig",
	KindTrack: "TrackConfig",
	KindFence: "FenceConfig",
	KindPath:  "PathConfig",
}

// Kinds lists every configuration variant.
var Kinds = []Kind{KindRoad, KindTrack, KindFence, KindPath}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return "UnknownConfig"
}

// ParseKind maps a discriminant as written in persisted records back to its
// Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}

	return 0, false
}

// ToolbarState controls whether a configuration shows up in the toolbar.
type ToolbarState int32

const (
	Hide ToolbarState = iota
	Inherit
	Show
)

func (s ToolbarState) String() string {
	switch s {
	case Hide:
		return "Hide"
	case Inherit:
		return "Inherit"
	case Show:
		return "Show"
	default:
		return "ToolbarState(?)"
	}
}

// Config is a road, track, fence or path configuration.  The set of variants
// is closed.
type Config interface {
	isConfig() // prevents extensions

	// Kind returns the variant discriminant.
	Kind() Kind

	// Base returns the fields common to every variant.
	Base() *Common

	// Clone returns a deep copy.
	Clone() Config

	// ApplyVersionChanges backfills fields introduced after the version the
	// configuration was read at, then marks it as current.
	ApplyVersionChanges()
}

// Common holds the fields shared by every configuration variant.
type Common struct {
	Version      uint16
	ID           string
	Name         string
	Category     RoadCategory
	Addons       RoadAddons
	Lanes        []*LaneConfig
	ToolbarState ToolbarState
	Playsets     []int
	Uploaded     bool

	originalID string
}

// Identify sets the configuration's identity.  The first identity given is
// remembered as the original one and never changes afterwards.
func (c *Common) Identify(id string) {
	c.ID = id

	if c.originalID == "" {
		c.originalID = id
	}
}

// OriginalID returns the identity the configuration was created or loaded
// with.
func (c *Common) OriginalID() string { return c.originalID }

// NeedsLocalCopy reports whether the configuration was saved under a new
// identity and must be persisted separately from its origin.
func (c *Common) NeedsLocalCopy() bool { return c.ID != c.originalID }

// IsOneWay reports whether every interior lane runs in the same direction
// as the first interior lane.  The outermost lanes are not considered.
func (c *Common) IsOneWay() bool {
	if len(c.Lanes) < 2 {
		return true
	}

	first := c.Lanes[1].Invert

	for i := 2; i < len(c.Lanes)-1; i++ {
		if c.Lanes[i].Invert != first {
			return false
		}
	}

	return true
}

func (c *Common) clone() Common {
	n := *c

	n.Lanes = make([]*LaneConfig, len(c.Lanes))
	for i, l := range c.Lanes {
		n.Lanes[i] = l.Clone()
	}

	n.Playsets = slices.Clone(c.Playsets)

	return n
}

// RoadConfig is a configuration for roads.
type RoadConfig struct {
	Common

	PillarPrefabName       string
	SpeedLimit             float32
	MaxSlopeSteepness      float32
	GeneratesTrafficLights bool
	GeneratesZoningBlocks  bool
}

var _ Config = (*RoadConfig)(nil)

func (r *RoadConfig) isConfig() {}

func (r *RoadConfig) Kind() Kind {
	return KindRoad
}

func (r *RoadConfig) Base() *Common {
	return &r.Common
}

func (r *RoadConfig) ApplyVersionChanges() {
	r.migrate()
}

func (r *RoadConfig) Clone() Config {
	c := *r
	c.Common = r.clone()

	return &c
}

// SetSpeedLimit sets the speed limit, clamped to [0, MaxSpeedLimit].
func (r *RoadConfig) SetSpeedLimit(v float32) { r.SpeedLimit = Clamp(v, 0, MaxSpeedLimit) }

// SetMaxSlopeSteepness sets the slope, clamped to [0, MaxSlopeSteepness].
func (r *RoadConfig) SetMaxSlopeSteepness(v float32) {
	r.MaxSlopeSteepness = Clamp(v, 0, MaxSlopeSteepness)
}

// TrackConfig is a configuration for rail tracks.
type TrackConfig struct {
	Common

	PillarPrefabName  string
	SpeedLimit        float32
	MaxSlopeSteepness float32
}

var _ Config = (*TrackConfig)(nil)

func (t *TrackConfig) isConfig() {}

func (t *TrackConfig) Kind() Kind {
	return KindTrack
}

func (t *TrackConfig) Base() *Common {
	return &t.Common
}

func (t *TrackConfig) ApplyVersionChanges() {
	t.migrate()
}

func (t *TrackConfig) Clone() Config {
	c := *t
	c.Common = t.clone()

	return &c
}

// SetSpeedLimit sets the speed limit, clamped to [0, MaxSpeedLimit].
func (t *TrackConfig) SetSpeedLimit(v float32) { t.SpeedLimit = Clamp(v, 0, MaxSpeedLimit) }

// SetMaxSlopeSteepness sets the slope, clamped to [0, MaxSlopeSteepness].
func (t *TrackConfig) SetMaxSlopeSteepness(v float32) {
	t.MaxSlopeSteepness = Clamp(v, 0, MaxSlopeSteepness)
}

// PathConfig is a configuration for pedestrian paths.
type PathConfig struct {
	Common

	PillarPrefabName  string
	SpeedLimit        float32
	MaxSlopeSteepness float32
}

var _ Config = (*PathConfig)(nil)

func (p *PathConfig) isConfig() {}

func (p *PathConfig) Kind() Kind {
	return KindPath
}

func (p *PathConfig) Base() *Common {
	return &p.Common
}

func (p *PathConfig) ApplyVersionChanges() {
	p.migrate()
}

func (p *PathConfig) Clone() Config {
	c := *p
	c.Common = p.clone()

	return &c
}

// SetSpeedLimit sets the speed limit, clamped to [0, MaxSpeedLimit].
func (p *PathConfig) SetSpeedLimit(v float32) { p.SpeedLimit = Clamp(v, 0, MaxSpeedLimit) }

// SetMaxSlopeSteepness sets the slope, clamped to [0, MaxSlopeSteepness].
func (p *PathConfig) SetMaxSlopeSteepness(v float32) {
	p.MaxSlopeSteepness = Clamp(v, 0, MaxSlopeSteepness)
}

// FenceConfig is a configuration for fences.
type FenceConfig struct {
	Common

	MaxSlopeSteepness float32
}

var _ Config = (*FenceConfig)(nil)

func (f *FenceConfig) isConfig() {}

func (f *FenceConfig) Kind() Kind {
	return KindFence
}

func (f *FenceConfig) Base() *Common {
	return &f.Common
}

func (f *FenceConfig) ApplyVersionChanges() {
	f.migrate()
}

func (f *FenceConfig) Clone() Config {
	c := *f
	c.Common = f.clone()

	return &c
}

// SetMaxSlopeSteepness sets the slope, clamped to [0, MaxSlopeSteepness].
func (f *FenceConfig) SetMaxSlopeSteepness(v float32) {
	f.MaxSlopeSteepness = Clamp(v, 0, MaxSlopeSteepness)
}

// NewConfig returns an empty configuration of the given kind at the current
// schema version, or nil for an unknown kind.
func NewConfig(kind Kind) Config {
	common := Common{
		Version:      CurrentVersion,
		Lanes:        []*LaneConfig{},
		ToolbarState: Inherit,
	}

	switch kind {
	case KindRoad:
		return &RoadConfig{Common: common}
	case KindTrack:
		return &TrackConfig{Common: common}
	case KindFence:
		return &FenceConfig{Common: common}
	case KindPath:
		return &PathConfig{Common: common}
	default:
		return nil
	}
}
