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

// Package cli holds the root command and helpers shared by the roadbuilder
// subcommands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

// RootCmd is the command every subcommand registers with.
var RootCmd = &cobra.Command{
	Use:          "roadbuilder",
	Short:        "Inspect and convert road configuration bundles",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return err
		}

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}

		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		return nil
	},
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "log debug output to stderr")
}

// AddCPUFlag registers the --cpu flag used by commands that decode bundles.
func AddCPUFlag(cmd *cobra.Command) {
	cmd.Flags().Uint16P("cpu", "c", uint16(runtime.GOMAXPROCS(-1)), "number of CPUs to use for decoding")
}

// OpenInput opens the file named by the first argument, or standard input
// when there is none or it is "-".  Files get a progress bar on stderr when
// progress is true.
func OpenInput(args []string, progress bool) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", args[0], err)
	}

	if !progress {
		return f, nil
	}

	in, err := trackProgress(f)
	if err != nil {
		f.Close()

		return nil, err
	}

	return in, nil
}

// CreateOutput creates the named file, or returns standard output for "-".
func CreateOutput(name string) (io.WriteCloser, error) {
	if name == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}

	f, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", name, err)
	}

	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
