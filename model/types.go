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

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/s1"
	"golang.org/x/exp/constraints"
)

// Degrees is an angle expressed in degrees, e.g. the slant of parking slots
// on a segment.
type Degrees float64

// Angle is an angle expressed in radians.
type Angle s1.Angle

// Epsilon is the precision used when comparing measurements.
type Epsilon float64

// Meters is a cross-section width.
type Meters float32

const (
	// Degree is the base unit of Degrees.
	Degree Degrees = 1

	E2 Epsilon = 1e-2
	E5 Epsilon = 1e-5
	E7 Epsilon = 1e-7

	Half = 0.5

	// MaxSpeedLimit is the fastest speed, in game units, a configuration may
	// declare.
	MaxSpeedLimit float32 = 200

	// MaxSlopeSteepness is the steepest slope, as a fraction, a configuration
	// may declare.
	MaxSlopeSteepness float32 = 1
)

// Angle returns the radian form of d.
func (d Degrees) Angle() Angle { return Angle(float64(d) * float64(s1.Degree)) }

// Degrees returns the degree form of a.
func (a Angle) Degrees() Degrees { return Degrees(s1.Angle(a).Degrees()) }

// Normalized returns the angle folded into [0, 180), parking slots being
// symmetric under a half turn.
func (d Degrees) Normalized() Degrees {
	n := math.Mod(float64(d), 180)
	if n < 0 {
		n += 180
	}

	return Degrees(n)
}

func (d Degrees) String() string {
	return ftoa(float64(d)) + "°"
}

// EqualWithin reports whether d and o agree to the given precision.
func (d Degrees) EqualWithin(o Degrees, eps Epsilon) bool {
	return round(float64(d)/float64(eps))-round(float64(o)/float64(eps)) == 0
}

// EqualWithin reports whether d and o agree to the given precision.
func (a Angle) EqualWithin(o Angle, eps Epsilon) bool {
	return round(float64(a)/float64(eps))-round(float64(o)/float64(eps)) == 0
}

// ParseDegrees parses a decimal angle, with or without a trailing degree
// sign.
func ParseDegrees(s string) (Degrees, error) {
	u, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "°"), 64)
	if err != nil {
		return 0, err
	}

	return Degrees(u), nil
}

func (m Meters) String() string {
	return strconv.FormatFloat(float64(m), 'f', -1, 32) + "m"
}

// ParseMeters parses widths as they appear in option values, e.g. "3.5m".
func ParseMeters(s string) (Meters, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "m"), 32)
	if err != nil {
		return 0, fmt.Errorf("invalid width %q: %w", s, err)
	}

	if v < 0 {
		return 0, fmt.Errorf("invalid width %q: negative", s)
	}

	return Meters(v), nil
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}

func round(val float64) int64 {
	if val < 0 {
		return int64(val - Half)
	}

	return int64(val + Half)
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
