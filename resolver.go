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
	"log/slog"

	"m4o.io/roadbuilder/catalog"
	"m4o.io/roadbuilder/model"
)

// Resolution is the outcome of resolving a lane.  Group is nil for lanes
// that reference a segment directly.
type Resolution struct {
	Segment *catalog.Segment
	Group   *catalog.Group
}

// Resolve determines the concrete segment a lane stands for.
//
// A segment lane resolves to its segment.  A group lane's selections are
// completed with the group's defaults and matched against the group's
// members; when several members share the combination, the one whose rule
// admits category wins.  Resolution fails when the catalog is nil, the
// named group or segment is unknown, or no single member remains.
func Resolve(c *catalog.Catalog, category model.RoadCategory, lane *model.LaneConfig) (Resolution, bool) {
	if c == nil {
		resolutions.WithLabelValues(outcomeNotReady).Inc()

		return Resolution{}, false
	}

	if !lane.IsGroup() {
		s, ok := c.Segment(lane.SectionPrefabName)
		if !ok {
			resolutions.WithLabelValues(outcomeNotFound).Inc()

			return Resolution{}, false
		}

		resolutions.WithLabelValues(outcomeResolved).Inc()

		return Resolution{Segment: s}, true
	}

	g, ok := c.Group(lane.GroupPrefabName)
	if !ok {
		resolutions.WithLabelValues(outcomeNotFound).Inc()

		return Resolution{}, false
	}

	full := model.Complete(g.Options, lane.GroupOptions)
	candidates := g.Matching(full)

	if len(candidates) > 1 {
		var applicable []catalog.Member

		for _, m := range candidates {
			if s, ok := c.Segment(m.Segment); ok && model.MatchCategories(s.Rule, category) {
				applicable = append(applicable, m)
			}
		}

		if len(applicable) != 1 {
			slog.Warn("ambiguous lane group combination",
				"group", g.Name, "combination", full, "category", category, "candidates", len(candidates))
			resolutions.WithLabelValues(outcomeAmbiguous).Inc()

			return Resolution{Group: g}, false
		}

		candidates = applicable
	}

	if len(candidates) == 0 {
		slog.Debug("no lane group member for combination", "group", g.Name, "combination", full)
		resolutions.WithLabelValues(outcomeNotFound).Inc()

		return Resolution{Group: g}, false
	}

	s, ok := c.Segment(candidates[0].Segment)
	if !ok {
		resolutions.WithLabelValues(outcomeNotFound).Inc()

		return Resolution{Group: g}, false
	}

	resolutions.WithLabelValues(outcomeResolved).Inc()

	return Resolution{Segment: s, Group: g}, true
}

// ResolveSegment resolves a lane of cfg against the editor's catalog.
func (e *Editor) ResolveSegment(cfg model.Config, lane *model.LaneConfig) (*catalog.Segment, bool) {
	r, ok := Resolve(e.catalog.Get(), cfg.Base().Category, lane)

	return r.Segment, ok
}

// Ruled is anything carrying an optional category rule.
type Ruled interface {
	CategoryRule() *model.Rule
}

// MatchCategories reports whether r is applicable to the configuration's
// category.  A nil r, or one without a rule, is applicable everywhere.
func MatchCategories(r Ruled, cfg model.Config) bool {
	if r == nil {
		return true
	}

	return model.MatchCategories(r.CategoryRule(), cfg.Base().Category)
}
