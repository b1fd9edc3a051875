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

// Package info implements the info command, which summarizes a bundle.
package info

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"m4o.io/roadbuilder"
	"m4o.io/roadbuilder/cmd/roadbuilder/cli"
	"m4o.io/roadbuilder/model"
)

var out io.Writer = os.Stdout

type bundleInfo struct {
	model.Header

	Kinds  map[string]int64 `json:"kinds,omitempty"`
	Lanes  int64            `json:"lanes,omitempty"`
	Failed int64            `json:"failed,omitempty"`
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.BoolP("extended", "e", false, "provide extended information (scans entire bundle)")
	cli.AddCPUFlag(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info [<bundle>]",
	Short: "Print information about a configuration bundle",
	Long:  "Print information about a configuration bundle",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			log.Fatal(err)
		}

		extended, err := flags.GetBool("extended")
		if err != nil {
			log.Fatal(err)
		}

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			log.Fatal(err)
		}

		in, err := cli.OpenInput(args, extended && !jsonfmt)
		if err != nil {
			log.Fatal(err)
		}

		info, err := runInfo(cmd.Context(), in, ncpu, extended)
		if err != nil {
			log.Fatal(err)
		}

		if err := in.Close(); err != nil {
			log.Fatal(err)
		}

		if jsonfmt {
			renderJSON(info, extended)
		} else {
			renderTxt(info, extended)
		}
	},
}

func runInfo(ctx context.Context, in io.Reader, ncpu uint16, extended bool) (*bundleInfo, error) {
	d, err := roadbuilder.NewDecoder(ctx, in, roadbuilder.WithNCpus(ncpu))
	if err != nil {
		return nil, err
	}
	defer d.Close()

	info := &bundleInfo{Header: d.Header}

	if !extended {
		return info, nil
	}

	info.Kinds = make(map[string]int64)

	for {
		cfg, err := d.Decode()
		if errors.Is(err, io.EOF) {
			break
		}

		var cerr *roadbuilder.ConfigError
		if errors.As(err, &cerr) {
			info.Failed++

			continue
		} else if err != nil {
			return nil, err
		}

		info.Kinds[cfg.Kind().String()]++
		info.Lanes += int64(len(cfg.Base().Lanes))
	}

	return info, nil
}

func renderJSON(info *bundleInfo, extended bool) {
	// marshal the smallest struct needed
	var v any
	if extended {
		v = info
	} else {
		v = info.Header
	}

	b, err := json.Marshal(v)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Fprint(out, string(b))
}

func renderTxt(info *bundleInfo, extended bool) {
	fmt.Fprintf(out, "Version: %d\n", info.Version)
	fmt.Fprintf(out, "Count: %s\n", humanize.Comma(int64(info.Count)))
	fmt.Fprintf(out, "WritingProgram: %s\n", info.WritingProgram)
	fmt.Fprintf(out, "Timestamp: %s\n", info.Timestamp.UTC().Format(time.RFC3339))

	if extended {
		for _, k := range model.Kinds {
			fmt.Fprintf(out, "%s: %s\n", k, humanize.Comma(info.Kinds[k.String()]))
		}

		fmt.Fprintf(out, "Lanes: %s\n", humanize.Comma(info.Lanes))
		fmt.Fprintf(out, "Failed: %s\n", humanize.Comma(info.Failed))
	}
}
