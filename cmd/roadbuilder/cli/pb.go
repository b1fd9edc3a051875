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
	"io"
	"os"
	"path/filepath"

	pb "gopkg.in/cheggaaa/pb.v1"
)

// progressOutput receives the progress bar; tests replace it.
var progressOutput io.Writer = os.Stderr

// bundleProgress reports how much of a bundle file has been read.  Closing
// it erases the bar and closes the file.
type bundleProgress struct {
	io.Reader

	file *os.File
	bar  *pb.ProgressBar
}

// trackProgress starts a progress bar, labelled with the file's base name,
// measuring reads from f against its size.
func trackProgress(f *os.File) (io.ReadCloser, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", f.Name(), err)
	}

	bar := pb.New64(fi.Size()).
		SetUnits(pb.U_BYTES_DEC).
		SetWidth(79).
		Prefix(filepath.Base(f.Name()) + " ")
	bar.Output = progressOutput
	bar.ShowSpeed = true
	bar.ShowTimeLeft = false
	bar.Start()

	return &bundleProgress{Reader: bar.NewProxyReader(f), file: f, bar: bar}, nil
}

func (p *bundleProgress) Close() error {
	// suppress the newline Finish would print
	p.bar.Output = nil
	p.bar.NotPrint = true
	p.bar.Finish()

	fmt.Fprint(progressOutput, "\033[2K\r")

	if err := p.file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", p.file.Name(), err)
	}

	return nil
}
