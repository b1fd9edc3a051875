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

// Package migrate implements the migrate command, which rewrites a bundle
// at the current schema version.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"m4o.io/roadbuilder"
	"m4o.io/roadbuilder/cmd/roadbuilder/cli"
)

const writingProgram = "roadbuilder migrate"

var out io.Writer = os.Stderr

func init() {
	cli.RootCmd.AddCommand(migrateCmd)

	flags := migrateCmd.Flags()
	flags.StringP("compression", "z", roadbuilder.DefaultBlobCompression.String(), "blob compression: RAW, ZLIB, LZMA, LZ4 or ZSTD")
	flags.Bool("strict", false, "fail instead of dropping configurations that cannot be decoded")
	cli.AddCPUFlag(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate <in bundle> <out bundle>",
	Short: "Rewrite a bundle at the current schema version",
	Long: `Rewrite a bundle at the current schema version.

Configurations written by older versions are migrated as they are read.
Use "-" for standard input or output.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		s, err := flags.GetString("compression")
		if err != nil {
			log.Fatal(err)
		}

		compression, err := roadbuilder.ParseCompression(s)
		if err != nil {
			log.Fatal(err)
		}

		strict, err := flags.GetBool("strict")
		if err != nil {
			log.Fatal(err)
		}

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			log.Fatal(err)
		}

		in, err := cli.OpenInput(args[:1], true)
		if err != nil {
			log.Fatal(err)
		}
		defer in.Close()

		w, err := cli.CreateOutput(args[1])
		if err != nil {
			log.Fatal(err)
		}

		n, dropped, err := runMigrate(cmd.Context(), in, w, compression, ncpu, strict)
		if err != nil {
			log.Fatal(err)
		}

		if err := w.Close(); err != nil {
			log.Fatal(err)
		}

		fmt.Fprintf(out, "migrated %d configurations, dropped %d\n", n, dropped)
	},
}

// runMigrate copies every configuration from in to w.  Configurations that
// fail to decode are dropped unless strict is set.
func runMigrate(ctx context.Context, in io.Reader, w io.Writer, compression roadbuilder.Compression, ncpu uint16, strict bool) (int, int, error) {
	d, err := roadbuilder.NewDecoder(ctx, in, roadbuilder.WithNCpus(ncpu))
	if err != nil {
		return 0, 0, err
	}
	defer d.Close()

	enc := roadbuilder.NewEncoder(w,
		roadbuilder.WithCompression(compression),
		roadbuilder.WithWritingProgram(writingProgram),
		roadbuilder.WithNCpus(ncpu))

	dropped := 0

	for {
		cfg, err := d.Decode()
		if errors.Is(err, io.EOF) {
			break
		}

		var cerr *roadbuilder.ConfigError
		if errors.As(err, &cerr) && !strict {
			slog.Warn("dropping configuration", "id", cerr.ID, "error", cerr.Err)

			dropped++

			continue
		} else if err != nil {
			return 0, dropped, err
		}

		if err = enc.Encode(cfg); err != nil {
			return 0, dropped, err
		}
	}

	if err = enc.Close(); err != nil {
		return 0, dropped, err
	}

	return int(enc.Header.Count), dropped, nil
}
