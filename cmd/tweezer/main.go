// This file is part of tweezer.
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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/tweezer"
	"github.com/db47h/tweezer/config"
	"github.com/db47h/tweezer/internal/diag"
	"github.com/db47h/tweezer/internal/errw"
	"github.com/pkg/errors"
)

var (
	outFileName string
	overwrite   bool
	verbose     bool
	quiet       bool
	logFileName string
	force       bool
	bright      bool
	noFormat    bool
)

// atExit reports err (if any) on stderr and sets the process exit
// code, mirroring cmd/retro/main.go's debug/non-debug reporting split:
// plain %v normally, the full pkg/errors stack under -v.
func atExit(sink *diag.Sink, err error) {
	if err == nil {
		return
	}
	if sink.Verbose() {
		fmt.Fprintf(os.Stderr, "tweezer: %+v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "tweezer: %v\n", err)
	}
	os.Exit(1)
}

func outputName(inputName string) string {
	ext := filepath.Ext(inputName)
	return strings.TrimSuffix(inputName, ext) + ".z8"
}

func main() {
	var err error

	flag.StringVar(&outFileName, "o", "", "output story file `name` (default: input name with .z8)")
	flag.BoolVar(&overwrite, "w", false, "allow overwriting an existing output file")
	flag.BoolVar(&verbose, "v", false, "verbose diagnostics (full error chain)")
	flag.BoolVar(&quiet, "q", false, "suppress non-fatal diagnostics")
	flag.StringVar(&logFileName, "l", "", "tee diagnostics to log `file`")
	flag.BoolVar(&force, "force", false, "log recoverable errors and keep compiling instead of aborting")
	flag.BoolVar(&bright, "bright", false, "use the light-terminal colour palette")
	flag.BoolVar(&noFormat, "no-native-formatting", false, "fall back to textual markers for styles the Z-Machine can't render natively")
	flag.Parse()

	var logFile io.Writer
	if logFileName != "" {
		f, ferr := os.Create(logFileName)
		if ferr != nil {
			fmt.Fprintf(os.Stderr, "tweezer: %v\n", ferr)
			os.Exit(1)
		}
		defer f.Close()
		// Wrapped so a failing log file (disk full, file removed out from
		// under us) sticks its first error instead of being retried on
		// every subsequent diagnostic write.
		logFile = errw.New(f)
	}

	level := diag.Normal
	switch {
	case quiet:
		level = diag.Quiet
	case verbose:
		level = diag.Verbose
	}
	sink := diag.New(os.Stderr, logFile, level)
	defer func() { atExit(sink, err) }()

	var inputName string
	var in io.Reader = os.Stdin
	inputName = "<stdin>"
	if flag.NArg() > 0 {
		inputName = flag.Arg(0)
		f, ferr := os.Open(inputName)
		if ferr != nil {
			err = errors.Wrap(ferr, "opening input")
			return
		}
		defer f.Close()
		in = f
	}

	if outFileName == "" {
		if inputName == "<stdin>" {
			outFileName = "story.z8"
		} else {
			outFileName = outputName(inputName)
		}
	}

	if !overwrite {
		if _, statErr := os.Stat(outFileName); statErr == nil {
			err = errors.Errorf("output file %q already exists (use -w to overwrite)", outFileName)
			return
		}
	}

	out, ferr := os.Create(outFileName)
	if ferr != nil {
		err = errors.Wrap(ferr, "creating output")
		return
	}
	defer out.Close()

	cfg := config.New(
		config.Force(force),
		config.BrightMode(bright),
		config.UnsupportedFormatting(noFormat),
		config.Diagnostics(sink),
	)

	err = tweezer.Compile(inputName, in, out, cfg)
}
