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

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// inputFlag is a flag naming a file that is opened as soon as the flag is
// parsed, so a missing file is reported as a usage error.  "-" selects
// standard input.
type inputFlag struct {
	file     **os.File
	typename string
}

// NewReaderValue returns a flag value storing the opened file in p, which
// starts out as def.
func NewReaderValue(def *os.File, p **os.File, typename string) pflag.Value {
	*p = def

	return &inputFlag{file: p, typename: typename}
}

func (f *inputFlag) Set(name string) error {
	if name == "-" {
		*f.file = os.Stdin

		return nil
	}

	file, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}

	if fi, err := file.Stat(); err == nil && fi.IsDir() {
		file.Close()

		return fmt.Errorf("open %s: is a directory", name)
	}

	*f.file = file

	return nil
}

func (f *inputFlag) Type() string { return f.typename }

func (f *inputFlag) String() string {
	if *f.file == nil {
		return ""
	}

	return (*f.file).Name()
}
