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
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"m4o.io/roadbuilder/model"
)

//go:embed default.yaml
var defaultCatalogYAML []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

type document struct {
	Segments  []segmentDoc  `yaml:"segments" validate:"required,min=1,dive"`
	Groups    []groupDoc    `yaml:"groups" validate:"dive"`
	Templates []templateDoc `yaml:"templates" validate:"dive"`
	Blacklist []string      `yaml:"blacklist" validate:"dive,required"`
}

type ruleDoc struct {
	All  string `yaml:"all"`
	Any  string `yaml:"any"`
	None string `yaml:"none"`
}

type segmentDoc struct {
	Name         string    `yaml:"name" validate:"required"`
	DisplayName  string    `yaml:"display_name"`
	Thumbnail    string    `yaml:"thumbnail"`
	Width        string    `yaml:"width" validate:"omitempty,endswith=m"`
	TwoWay       bool      `yaml:"two_way"`
	Median       bool      `yaml:"median"`
	ParkingAngle *angleDoc `yaml:"parking_angle"`
	Rule         *ruleDoc  `yaml:"rule"`
	SidePrefab   string    `yaml:"side_prefab"`
}

// angleDoc is a slot angle in degrees, e.g. 45 or "45°", below a full turn.
type angleDoc model.Degrees

// UnmarshalYAML folds the angle into a half turn, slots being symmetric.
func (a *angleDoc) UnmarshalYAML(node *yaml.Node) error {
	d, err := model.ParseDegrees(node.Value)
	if err != nil {
		return fmt.Errorf("%w: line %d: parking angle %q: %w", ErrInvalid, node.Line, node.Value, err)
	}

	if d < 0 || d >= 360*model.Degree {
		return fmt.Errorf("%w: line %d: parking angle %s out of range", ErrInvalid, node.Line, d)
	}

	*a = angleDoc(d.Normalized())

	return nil
}

type valueDoc struct {
	Value     string `yaml:"value"`
	Thumbnail string `yaml:"thumbnail"`
}

// UnmarshalYAML accepts either a bare scalar or a mapping.
func (v *valueDoc) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		v.Value = node.Value

		return nil
	}

	type plain valueDoc

	return node.Decode((*plain)(v))
}

type optionDoc struct {
	Name    string     `yaml:"name" validate:"required"`
	Type    string     `yaml:"type" validate:"omitempty,oneof=ValuePicker Toggle SingleSelectionButtons Decoration"`
	Default string     `yaml:"default"`
	Values  []valueDoc `yaml:"values"`
}

type memberDoc struct {
	Segment     string            `yaml:"segment" validate:"required"`
	Combination map[string]string `yaml:"combination"`
}

type groupDoc struct {
	Name        string      `yaml:"name" validate:"required"`
	DisplayName string      `yaml:"display_name"`
	Thumbnail   string      `yaml:"thumbnail"`
	Options     []optionDoc `yaml:"options" validate:"dive"`
	Members     []memberDoc `yaml:"members" validate:"required,min=1,dive"`
	Rule        *ruleDoc    `yaml:"rule"`
	SidePrefab  string      `yaml:"side_prefab"`
}

type laneDoc struct {
	Group   string            `yaml:"group" validate:"required_without=Segment"`
	Segment string            `yaml:"segment" validate:"required_without=Group"`
	Options map[string]string `yaml:"options"`
	Invert  bool              `yaml:"invert"`
}

type templateDoc struct {
	Kind              string    `yaml:"kind" validate:"required,oneof=RoadConfig TrackConfig FenceConfig PathConfig"`
	Name              string    `yaml:"name"`
	Category          string    `yaml:"category"`
	Addons            string    `yaml:"addons"`
	Pillar            string    `yaml:"pillar"`
	SpeedLimit        float32   `yaml:"speed_limit" validate:"gte=0,lte=200"`
	MaxSlopeSteepness float32   `yaml:"max_slope_steepness" validate:"gte=0,lte=1"`
	Lanes             []laneDoc `yaml:"lanes" validate:"required,min=1,dive"`
}

// Default builds the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// LoadFile builds a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	return Parse(data)
}

// Load builds a catalog from YAML read from r.
func Load(r io.Reader) (*Catalog, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	return Parse(buf.Bytes())
}

// Parse builds a catalog from YAML data.
func Parse(data []byte) (*Catalog, error) {
	var doc document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	b, err := doc.builder()
	if err != nil {
		return nil, err
	}

	return b.Build()
}

func (d *document) builder() (*Builder, error) {
	b := NewBuilder().Blacklist(d.Blacklist...)

	for _, sd := range d.Segments {
		s, err := sd.segment()
		if err != nil {
			return nil, fmt.Errorf("%w: segment %q: %w", ErrInvalid, sd.Name, err)
		}

		b.AddSegment(s)
	}

	for _, gd := range d.Groups {
		g, err := gd.group()
		if err != nil {
			return nil, fmt.Errorf("%w: group %q: %w", ErrInvalid, gd.Name, err)
		}

		b.AddGroup(g)
	}

	for _, td := range d.Templates {
		t, err := td.template()
		if err != nil {
			return nil, fmt.Errorf("%w: template %s: %w", ErrInvalid, td.Kind, err)
		}

		b.AddTemplate(t)
	}

	return b, nil
}

func (r *ruleDoc) rule() (*model.Rule, error) {
	if r == nil {
		return nil, nil
	}

	var (
		rule model.Rule
		err  error
	)

	if rule.RequireAll, err = model.ParseRoadCategory(r.All); err != nil {
		return nil, fmt.Errorf("rule all: %w", err)
	}

	if rule.RequireAny, err = model.ParseRoadCategory(r.Any); err != nil {
		return nil, fmt.Errorf("rule any: %w", err)
	}

	if rule.RequireNone, err = model.ParseRoadCategory(r.None); err != nil {
		return nil, fmt.Errorf("rule none: %w", err)
	}

	return &rule, nil
}

func (sd segmentDoc) segment() (Segment, error) {
	s := Segment{
		Name:        sd.Name,
		DisplayName: sd.DisplayName,
		Thumbnail:   sd.Thumbnail,
		TwoWay:      sd.TwoWay,
		Median:      sd.Median,
		SidePrefab:  sd.SidePrefab,
	}

	if s.DisplayName == "" {
		s.DisplayName = s.Name
	}

	if sd.Width != "" {
		w, err := model.ParseMeters(sd.Width)
		if err != nil {
			return Segment{}, err
		}

		s.Width = w
	}

	if sd.ParkingAngle != nil {
		s.Parking = true
		s.ParkingAngle = model.Degrees(*sd.ParkingAngle)
	}

	rule, err := sd.Rule.rule()
	if err != nil {
		return Segment{}, err
	}

	s.Rule = rule

	return s, nil
}

func (gd groupDoc) group() (Group, error) {
	g := Group{
		Name:        gd.Name,
		DisplayName: gd.DisplayName,
		Thumbnail:   gd.Thumbnail,
		SidePrefab:  gd.SidePrefab,
	}

	if g.DisplayName == "" {
		g.DisplayName = g.Name
	}

	for _, od := range gd.Options {
		def := model.OptionDefinition{Name: od.Name, DefaultValue: od.Default}

		if od.Type != "" {
			def.Type, _ = model.ParseOptionType(od.Type)
		}

		for _, v := range od.Values {
			def.Values = append(def.Values, model.OptionValue{Value: v.Value, Thumbnail: v.Thumbnail})
		}

		g.Options = append(g.Options, def)
	}

	for _, md := range gd.Members {
		g.Members = append(g.Members, Member{Segment: md.Segment, Combination: md.Combination})
	}

	rule, err := gd.Rule.rule()
	if err != nil {
		return Group{}, err
	}

	g.Rule = rule

	return g, nil
}

func (td templateDoc) template() (Template, error) {
	kind, _ := model.ParseKind(td.Kind)

	category, err := model.ParseRoadCategory(td.Category)
	if err != nil {
		return Template{}, err
	}

	addons, err := model.ParseRoadAddons(td.Addons)
	if err != nil {
		return Template{}, err
	}

	t := Template{
		Kind:              kind,
		Name:              td.Name,
		Category:          category,
		Addons:            addons,
		PillarPrefabName:  td.Pillar,
		SpeedLimit:        td.SpeedLimit,
		MaxSlopeSteepness: td.MaxSlopeSteepness,
	}

	for _, ld := range td.Lanes {
		t.Lanes = append(t.Lanes, TemplateLane{
			Group:   ld.Group,
			Segment: ld.Segment,
			Options: ld.Options,
			Invert:  ld.Invert,
		})
	}

	return t, nil
}
