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

// Package inventory implements the catalog command, which lists the lane
// groups and segments a catalog offers.
package inventory

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"m4o.io/roadbuilder/catalog"
	"m4o.io/roadbuilder/cmd/roadbuilder/cli"
	"m4o.io/roadbuilder/model"
)

var (
	out         io.Writer = os.Stdout
	catalogFile *os.File
)

type groupEntry struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name,omitempty"`
	Options     []string `json:"options,omitempty"`
	Members     []string `json:"members"`
}

type segmentEntry struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name,omitempty"`
	Width       model.Meters `json:"width"`
	TwoWay      bool         `json:"two_way,omitempty"`

	// ParkingAngle is in degrees, present only for segments with parking.
	ParkingAngle *model.Degrees `json:"parking_angle,omitempty"`
}

type listing struct {
	Category string         `json:"category"`
	Groups   []groupEntry   `json:"groups"`
	Segments []segmentEntry `json:"segments"`
}

func init() {
	cli.RootCmd.AddCommand(catalogCmd)

	flags := catalogCmd.Flags()
	flags.VarP(cli.NewReaderValue(nil, &catalogFile, "file"), "catalog", "f", "YAML catalog to list instead of the built-in one")
	flags.StringP("category", "t", "", `only list entries applicable to the category, e.g. "Highway|RaisedSidewalk"`)
	flags.BoolP("json", "j", false, "format the listing in JSON")
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the lane groups and segments of a catalog",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		flags := cmd.Flags()

		c, err := loadCatalog(catalogFile)
		if err != nil {
			log.Fatal(err)
		}

		var category model.RoadCategory

		if flags.Changed("category") {
			s, err := flags.GetString("category")
			if err != nil {
				log.Fatal(err)
			}

			if category, err = model.ParseRoadCategory(s); err != nil {
				log.Fatal(err)
			}
		}

		l := list(c, category, flags.Changed("category"))

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(l)
		} else {
			renderTxt(l)
		}
	},
}

func loadCatalog(f *os.File) (*catalog.Catalog, error) {
	if f == nil {
		return catalog.Default()
	}
	defer f.Close()

	return catalog.Load(f)
}

// list collects the catalog entries.  Without a category filter every group
// and every segment outside a group is listed; hidden segments are never
// listed.
func list(c *catalog.Catalog, category model.RoadCategory, filter bool) *listing {
	l := &listing{Category: category.String()}

	var (
		groups   []*catalog.Group
		segments []*catalog.Segment
	)

	if filter {
		groups, segments = c.Pickable(category)
	} else {
		groups = c.Groups()

		for _, s := range c.Segments() {
			if _, _, grouped := c.GroupOf(s.Name); !grouped && !s.Hidden {
				segments = append(segments, s)
			}
		}

		l.Category = ""
	}

	for _, g := range groups {
		e := groupEntry{Name: g.Name, DisplayName: g.DisplayName}

		for _, o := range g.Options {
			e.Options = append(e.Options, o.Name)
		}

		for _, m := range g.Members {
			e.Members = append(e.Members, m.Segment)
		}

		l.Groups = append(l.Groups, e)
	}

	for _, s := range segments {
		e := segmentEntry{
			Name:        s.Name,
			DisplayName: s.DisplayName,
			Width:       s.Width,
			TwoWay:      s.TwoWay,
		}

		if s.Parking {
			angle := s.ParkingAngle.Normalized()
			e.ParkingAngle = &angle
		}

		l.Segments = append(l.Segments, e)
	}

	return l
}

func renderJSON(l *listing) {
	b, err := json.Marshal(l)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprint(out, string(b))
}

func renderTxt(l *listing) {
	if l.Category != "" {
		fmt.Fprintf(out, "Category: %s\n", l.Category)
	}

	fmt.Fprintf(out, "Groups: %d\n", len(l.Groups))

	for _, g := range l.Groups {
		fmt.Fprintf(out, "  %s", g.Name)

		if g.DisplayName != "" && g.DisplayName != g.Name {
			fmt.Fprintf(out, " (%s)", g.DisplayName)
		}

		if len(g.Options) > 0 {
			fmt.Fprintf(out, " options=%s", strings.Join(g.Options, ","))
		}

		fmt.Fprintf(out, " members=%d\n", len(g.Members))
	}

	fmt.Fprintf(out, "Segments: %d\n", len(l.Segments))

	for _, s := range l.Segments {
		fmt.Fprintf(out, "  %s", s.Name)

		if s.DisplayName != "" && s.DisplayName != s.Name {
			fmt.Fprintf(out, " (%s)", s.DisplayName)
		}

		fmt.Fprintf(out, " width=%s", s.Width)

		if s.TwoWay {
			fmt.Fprint(out, " two-way")
		}

		if s.ParkingAngle != nil {
			fmt.Fprintf(out, " parking=%s", *s.ParkingAngle)
		}

		fmt.Fprintln(out)
	}
}
