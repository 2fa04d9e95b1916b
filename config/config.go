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

// Package config holds the flat set of options that steer the compiler,
// and the force-mode error sink described by the error handling design.
package config

import (
	"fmt"
	"io"
)

// Config is the flat option record consulted by every pipeline stage.
type Config struct {
	// Force makes recoverable errors log and continue instead of aborting
	// the compile.
	Force bool

	// BrightMode swaps the foreground/background palette, for light
	// terminals.
	BrightMode bool

	// UnsupportedFormatting emits a textual fallback (____, ====, _{, ^{)
	// for under/strike/sub/sup instead of native Z-Machine styling.
	UnsupportedFormatting bool

	// TestCases is recorded on the Config only: Compile and the
	// lex/parse/codegen/zmachine stages do not read it, so setting it
	// does not change the pipeline.
	TestCases bool

	// Diag receives non-fatal diagnostics. Defaults to io.Discard when nil.
	Diag io.Writer
}

// Option configures a Config. Construction cannot fail, unlike the
// teacher's vm.Option, so Option is a plain func(*Config) rather than
// func(*Config) error.
type Option func(*Config)

// Force enables force mode: errors are logged through Diag and compilation
// continues with a best-effort default instead of aborting.
func Force(v bool) Option { return func(c *Config) { c.Force = v } }

// BrightMode enables the light-terminal palette swap.
func BrightMode(v bool) Option { return func(c *Config) { c.BrightMode = v } }

// UnsupportedFormatting enables the textual-fallback formatting path.
func UnsupportedFormatting(v bool) Option { return func(c *Config) { c.UnsupportedFormatting = v } }

// TestCases sets Config.TestCases, which no compile stage reads.
func TestCases(v bool) Option { return func(c *Config) { c.TestCases = v } }

// Diagnostics sets the writer that receives non-fatal diagnostic output.
func Diagnostics(w io.Writer) Option { return func(c *Config) { c.Diag = w } }

// New builds a Config from the given options.
func New(opts ...Option) *Config {
	c := &Config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Config) diag() io.Writer {
	if c.Diag == nil {
		return io.Discard
	}
	return c.Diag
}

// Report writes msg (with an optional source location prefix produced by
// the caller) to the diagnostic sink and, in Force mode, returns nil so the
// caller can proceed with a best-effort default. Outside Force mode it
// returns err unchanged so the caller aborts.
func (c *Config) Report(err error, msg string) error {
	fmt.Fprintln(c.diag(), msg)
	if c.Force {
		return nil
	}
	return err
}
