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

// Package library implements the save and load commands, which copy
// configurations between bundles and a configuration store.
package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"m4o.io/roadbuilder"
	"m4o.io/roadbuilder/cmd/roadbuilder/cli"
	"m4o.io/roadbuilder/model"
	"m4o.io/roadbuilder/store"
)

var out io.Writer = os.Stderr

func init() {
	for _, cmd := range []*cobra.Command{saveCmd, loadCmd} {
		cli.RootCmd.AddCommand(cmd)

		flags := cmd.Flags()
		flags.String("db", "", "BadgerDB store directory")
		flags.String("dir", "", "directory store with one file per configuration")
		cmd.MarkFlagsOneRequired("db", "dir")
		cmd.MarkFlagsMutuallyExclusive("db", "dir")
	}

	cli.AddCPUFlag(saveCmd)
	loadCmd.Flags().StringP("compression", "z", roadbuilder.DefaultBlobCompression.String(), "blob compression: RAW, ZLIB, LZMA, LZ4 or ZSTD")
}

func openBackend(flags *pflag.FlagSet) (store.Backend, error) {
	if dir, _ := flags.GetString("dir"); dir != "" {
		return store.OpenDir(dir)
	}

	db, err := flags.GetString("db")
	if err != nil {
		return nil, err
	}

	cfg := store.DefaultConfig()
	cfg.Path = db
	cfg.Logger = slog.Default().With("component", "badger")

	return store.OpenBadger(cfg)
}

var saveCmd = &cobra.Command{
	Use:   "save [<bundle>]",
	Short: "Save the configurations of a bundle to a store",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.Flags()

		ncpu, err := flags.GetUint16("cpu")
		if err != nil {
			log.Fatal(err)
		}

		b, err := openBackend(flags)
		if err != nil {
			log.Fatal(err)
		}
		defer b.Close()

		in, err := cli.OpenInput(args, true)
		if err != nil {
			log.Fatal(err)
		}
		defer in.Close()

		saved, skipped, err := runSave(cmd.Context(), in, b, ncpu)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Fprintf(out, "saved %d configurations, skipped %d\n", saved, skipped)
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <out bundle> [<id>...]",
	Short: "Write configurations from a store to a bundle",
	Long: `Write configurations from a store to a bundle.

Without ids every stored configuration is written.  Use "-" for standard
output.`,
	Args: cobra.MinimumNArgs(1),
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

		b, err := openBackend(flags)
		if err != nil {
			log.Fatal(err)
		}
		defer b.Close()

		w, err := cli.CreateOutput(args[0])
		if err != nil {
			log.Fatal(err)
		}

		n, err := runLoad(cmd.Context(), b, w, args[1:], compression)
		if err != nil {
			log.Fatal(err)
		}

		if err := w.Close(); err != nil {
			log.Fatal(err)
		}

		fmt.Fprintf(out, "loaded %d configurations\n", n)
	},
}

// runSave stores every configuration of the bundle read from in.
// Configurations that cannot be decoded are skipped.
func runSave(ctx context.Context, in io.Reader, b store.Backend, ncpu uint16) (int, int, error) {
	d, err := roadbuilder.NewDecoder(ctx, in, roadbuilder.WithNCpus(ncpu))
	if err != nil {
		return 0, 0, err
	}
	defer d.Close()

	saved, skipped := 0, 0

	for {
		cfg, err := d.Decode()
		if errors.Is(err, io.EOF) {
			return saved, skipped, nil
		}

		var cerr *roadbuilder.ConfigError
		if errors.As(err, &cerr) {
			skipped++

			continue
		} else if err != nil {
			return saved, skipped, err
		}

		if err = store.Save(ctx, b, cfg); err != nil {
			return saved, skipped, err
		}

		saved++
	}
}

// runLoad writes the configurations named by ids, or every stored one when
// ids is empty, to w.  A missing id is an error; when loading everything,
// unreadable configurations are logged and left out.
func runLoad(ctx context.Context, b store.Backend, w io.Writer, ids []string, compression roadbuilder.Compression) (int, error) {
	var cfgs []model.Config

	if len(ids) == 0 {
		all, err := store.LoadAll(ctx, b)
		if err != nil {
			slog.Warn("some configurations could not be loaded", "error", err)
		}

		cfgs = all
	} else {
		for _, id := range ids {
			cfg, err := store.Load(ctx, b, id)
			if err != nil {
				return 0, err
			}

			cfgs = append(cfgs, cfg)
		}
	}

	enc := roadbuilder.NewEncoder(w, roadbuilder.WithCompression(compression), roadbuilder.WithWritingProgram("roadbuilder load"))
	if err := enc.EncodeBatch(cfgs); err != nil {
		return 0, err
	}

	if err := enc.Close(); err != nil {
		return 0, err
	}

	return len(cfgs), nil
}
