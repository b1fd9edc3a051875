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

package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"m4o.io/roadbuilder/model"
)

// ErrInvalid is wrapped by every error reported by Builder.Build.
var ErrInvalid = errors.New("invalid catalog")

// Builder collects segments, groups and templates and produces an immutable
// Catalog.  A Builder is not safe for concurrent use and may only be built
// once.
type Builder struct {
	segments  []Segment
	groups    []Group
	templates []Template
	blacklist []string
	built     bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddSegment registers a segment.
func (b *Builder) AddSegment(segments ...Segment) *Builder {
	b.segments = append(b.segments, segments...)

	return b
}

// AddGroup registers a lane group.  Its members must refer to segments
// registered with AddSegment.
func (b *Builder) AddGroup(groups ...Group) *Builder {
	b.groups = append(b.groups, groups...)

	return b
}

// AddTemplate registers the template used for new configurations of a kind.
func (b *Builder) AddTemplate(templates ...Template) *Builder {
	b.templates = append(b.templates, templates...)

	return b
}

// Blacklist hides segments from pick lists.
func (b *Builder) Blacklist(names ...string) *Builder {
	b.blacklist = append(b.blacklist, names...)

	return b
}

// Build validates everything registered so far and returns the catalog.
// Either the whole catalog is valid and returned, or nothing is.
func (b *Builder) Build() (*Catalog, error) {
	if b.built {
		return nil, fmt.Errorf("%w: builder already used", ErrInvalid)
	}

	b.built = true

	c := &Catalog{
		segments:  make(map[string]*Segment, len(b.segments)),
		groups:    make(map[string]*Group, len(b.groups)),
		owners:    make(map[string]owner),
		templates: make(map[model.Kind]*Template, len(b.templates)),
	}

	var errs []error

	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	for _, s := range b.segments {
		switch {
		case s.Name == "":
			invalid("segment without a name")
		case c.segments[s.Name] != nil:
			invalid("duplicate segment %q", s.Name)
		default:
			c.segments[s.Name] = cloneSegment(s)
		}
	}

	for _, name := range b.blacklist {
		if s, ok := c.segments[name]; ok {
			s.Hidden = true
		} else {
			slog.Warn("blacklisted segment not in catalog", "segment", name)
		}
	}

	for _, g := range b.groups {
		if g.Name == "" {
			invalid("group without a name")

			continue
		}

		if c.groups[g.Name] != nil {
			invalid("duplicate group %q", g.Name)

			continue
		}

		group := cloneGroup(g)
		before := len(errs)

		for _, err := range validateGroup(group, c.segments) {
			invalid("group %q: %v", g.Name, err)
		}

		for _, m := range group.Members {
			if o, taken := c.owners[m.Segment]; taken {
				invalid("segment %q is a member of both %q and %q", m.Segment, o.group.Name, g.Name)
			}
		}

		if len(errs) > before {
			continue
		}

		c.groups[group.Name] = group

		for _, m := range group.Members {
			c.owners[m.Segment] = owner{group: group, combination: m.Combination}
		}

		c.ambiguities = append(c.ambiguities, overlaps(group, c.segments)...)
	}

	for _, t := range b.templates {
		if _, dup := c.templates[t.Kind]; dup {
			invalid("duplicate template for %s", t.Kind)

			continue
		}

		if err := validateTemplate(t, c); err != nil {
			invalid("template %s: %v", t.Kind, err)

			continue
		}

		c.templates[t.Kind] = cloneTemplate(t)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return c, nil
}

func validateGroup(g *Group, segments map[string]*Segment) []error {
	var errs []error

	names := make(map[string]bool, len(g.Options))

	for _, o := range g.Options {
		if o.Name == "" {
			errs = append(errs, errors.New("option without a name"))
		} else if names[o.Name] {
			errs = append(errs, fmt.Errorf("duplicate option %q", o.Name))
		}

		names[o.Name] = true

		if !o.Allows(o.DefaultValue) {
			errs = append(errs, fmt.Errorf("option %q: default %q is not an allowed value", o.Name, o.DefaultValue))
		}
	}

	if len(g.Members) == 0 {
		errs = append(errs, errors.New("no member segments"))
	}

	for _, m := range g.Members {
		if _, ok := segments[m.Segment]; !ok {
			errs = append(errs, fmt.Errorf("unknown member segment %q", m.Segment))

			continue
		}

		if len(m.Combination) != len(g.Options) {
			errs = append(errs, fmt.Errorf("member %q: combination covers %d of %d options",
				m.Segment, len(m.Combination), len(g.Options)))

			continue
		}

		for name, value := range m.Combination {
			def, ok := g.Option(name)
			if !ok {
				errs = append(errs, fmt.Errorf("member %q: unknown option %q", m.Segment, name))
			} else if !def.Allows(value) {
				errs = append(errs, fmt.Errorf("member %q: option %q does not allow %q", m.Segment, name, value))
			}
		}
	}

	return errs
}

// overlaps finds members sharing a combination whose segment rules do not
// tell them apart, and logs each pair.  Such lanes resolve to nothing in the
// categories where both rules pass.  A segment without a rule passes
// everywhere.
func overlaps(g *Group, segments map[string]*Segment) []Ambiguity {
	var found []Ambiguity

	for i, a := range g.Members {
		for _, b := range g.Members[i+1:] {
			if !a.Combination.Equal(b.Combination) {
				continue
			}

			if !ruleOf(segments[a.Segment]).Overlaps(ruleOf(segments[b.Segment])) {
				continue
			}

			slog.Warn("ambiguous group members", "group", g.Name, "first", a.Segment, "second", b.Segment)

			found = append(found, Ambiguity{Group: g.Name, First: a.Segment, Second: b.Segment})
		}
	}

	return found
}

func ruleOf(s *Segment) model.Rule {
	if s.Rule == nil {
		return model.Rule{}
	}

	return *s.Rule
}

func validateTemplate(t Template, c *Catalog) error {
	if model.NewConfig(t.Kind) == nil {
		return fmt.Errorf("unknown kind %d", t.Kind)
	}

	for i, l := range t.Lanes {
		if l.Group == "" {
			if _, ok := c.segments[l.Segment]; !ok {
				return fmt.Errorf("lane %d: unknown segment %q", i, l.Segment)
			}

			continue
		}

		g, ok := c.groups[l.Group]
		if !ok {
			return fmt.Errorf("lane %d: unknown group %q", i, l.Group)
		}

		for name, value := range l.Options {
			if def, ok := g.Option(name); !ok || !def.Allows(value) {
				return fmt.Errorf("lane %d: invalid option %s=%q", i, name, value)
			}
		}
	}

	return nil
}

func cloneRule(r *model.Rule) *model.Rule {
	if r == nil {
		return nil
	}

	c := *r

	return &c
}

func cloneSegment(s Segment) *Segment {
	s.Rule = cloneRule(s.Rule)

	return &s
}

func cloneGroup(g Group) *Group {
	g.Rule = cloneRule(g.Rule)

	g.Options = slices.Clone(g.Options)
	for i := range g.Options {
		g.Options[i].Values = slices.Clone(g.Options[i].Values)
	}

	g.Members = slices.Clone(g.Members)
	for i := range g.Members {
		g.Members[i].Combination = maps.Clone(g.Members[i].Combination)
		if g.Members[i].Combination == nil {
			g.Members[i].Combination = model.Combination{}
		}
	}

	return &g
}

func cloneTemplate(t Template) *Template {
	t.Lanes = slices.Clone(t.Lanes)
	for i := range t.Lanes {
		t.Lanes[i].Options = maps.Clone(t.Lanes[i].Options)
	}

	return &t
}
