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

package roadbuilder

import (
	"github.com/golang/geo/s1"

	"m4o.io/roadbuilder/catalog"
	"m4o.io/roadbuilder/model"
)

// UnknownLane is the display name of a lane that cannot be resolved.
const UnknownLane = "Unknown Lane"

// OptionView is the display state of one option of a group lane.
type OptionView struct {
	Name     string
	Type     model.OptionType
	Selected string
	Default  string
	Values   []string
}

// LaneView is the display state of one lane.
type LaneView struct {
	// Index is the lane's position in storage order, which is what the
	// editing operations take.
	Index int

	DisplayName string
	SegmentName string
	GroupName   string
	Thumbnail   string
	IsGroup     bool
	Width       model.Meters
	TwoWay      bool
	Invert      bool

	// Parking is set for segments with parking slots, which are slanted
	// by ParkingAngle.
	Parking      bool
	ParkingAngle s1.Angle

	// InvertImage is the direction the lane is drawn in.  Under left-hand
	// traffic the outermost lanes are drawn flipped.
	InvertImage bool

	Options []OptionView
	Valid   bool
}

// Describe returns the display state of every lane in caller-visible order.
// Lanes that cannot be resolved are described as UnknownLane with a width of
// one meter.
func (e *Editor) Describe(cfg model.Config) []LaneView {
	c := cfg.Base()
	cat := e.catalog.Get()
	views := make([]LaneView, len(c.Lanes))

	for i, l := range c.Lanes {
		r, ok := Resolve(cat, c.Category, l)

		v := LaneView{
			Index:       i,
			SegmentName: l.SectionPrefabName,
			GroupName:   l.GroupPrefabName,
			IsGroup:     l.IsGroup(),
			Invert:      l.Invert,
			InvertImage: l.Invert,
			Width:       1,
			Valid:       ok,
			DisplayName: UnknownLane,
		}

		if e.cfg.leftHandTraffic && (i == 0 || i == len(c.Lanes)-1) {
			v.InvertImage = !l.Invert
		}

		if ok {
			v.SegmentName = r.Segment.Name
			v.Width = r.Segment.Width
			v.TwoWay = r.Segment.TwoWay
			v.Thumbnail = r.Segment.Thumbnail

			if r.Segment.Parking {
				v.Parking = true
				v.ParkingAngle = s1.Angle(r.Segment.ParkingAngle.Angle())
			}
		}

		switch {
		case r.Group != nil:
			v.DisplayName = displayName(r.Group.DisplayName, r.Group.Name)
			v.Options = optionViews(r.Group, l)

			if v.Thumbnail == "" {
				v.Thumbnail = r.Group.Thumbnail
			}
		case r.Segment != nil:
			v.DisplayName = displayName(r.Segment.DisplayName, r.Segment.Name)
		}

		if e.cfg.leftHandTraffic {
			views[len(views)-i-1] = v
		} else {
			views[i] = v
		}
	}

	return views
}

func optionViews(g *catalog.Group, l *model.LaneConfig) []OptionView {
	out := make([]OptionView, 0, len(g.Options))

	for _, d := range g.Options {
		values := make([]string, len(d.Values))
		for i, ov := range d.Values {
			values[i] = ov.Value
		}

		out = append(out, OptionView{
			Name:     d.Name,
			Type:     d.Type,
			Selected: l.Option(d.Name, d.DefaultValue),
			Default:  d.DefaultValue,
			Values:   values,
		})
	}

	return out
}

func displayName(display, name string) string {
	if display != "" {
		return display
	}

	return name
}
