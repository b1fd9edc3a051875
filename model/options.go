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

package model

import "slices"

// OptionType describes how an option is presented to the user.  Decoration
// options only take part in combination matching.
type OptionType uint8

const (
	// ValuePicker lets the user step through the allowed values.
	ValuePicker OptionType = iota

	// Toggle switches between the default value and one alternate value.
	Toggle

	// SingleSelectionButtons shows every allowed value as a button.
	SingleSelectionButtons

	// Decoration is a marker with no physical meaning.
	Decoration
)

var optionTypeNames = [...]string{"ValuePicker", "Toggle", "SingleSelectionButtons", "Decoration"}

func (t OptionType) String() string {
	if int(t) < len(optionTypeNames) {
		return optionTypeNames[t]
	}

	return "OptionType(?)"
}

// ParseOptionType is the inverse of OptionType.String.
func ParseOptionType(s string) (OptionType, bool) {
	i := slices.Index(optionTypeNames[:], s)
	if i < 0 {
		return 0, false
	}

	return OptionType(i), true
}

// OptionValue is one selectable value of an option.
type OptionValue struct {
	Value     string
	Thumbnail string
}

// OptionDefinition is a selectable option of a lane group.
type OptionDefinition struct {
	Name         string
	Type         OptionType
	DefaultValue string
	Values       []OptionValue
}

// Allows reports whether v is one of the definition's values.  A definition
// without values only allows its default.
func (d OptionDefinition) Allows(v string) bool {
	if len(d.Values) == 0 {
		return v == d.DefaultValue
	}

	return slices.ContainsFunc(d.Values, func(ov OptionValue) bool { return ov.Value == v })
}

// Index returns the position of v within Values, or -1.
func (d OptionDefinition) Index(v string) int {
	return slices.IndexFunc(d.Values, func(ov OptionValue) bool { return ov.Value == v })
}

// Combination is a full assignment of option values.
type Combination map[string]string

// Equal reports whether c and o assign the same values to the same names.
func (c Combination) Equal(o Combination) bool {
	if len(c) != len(o) {
		return false
	}

	for k, v := range c {
		if ov, ok := o[k]; !ok || ov != v {
			return false
		}
	}

	return true
}

// Complete overlays selections onto the definitions' defaults.  Selections
// for names not in defs are ignored.
func Complete(defs []OptionDefinition, selections map[string]string) Combination {
	c := make(Combination, len(defs))

	for _, d := range defs {
		if v, ok := selections[d.Name]; ok {
			c[d.Name] = v
		} else {
			c[d.Name] = d.DefaultValue
		}
	}

	return c
}
