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

// Package diag is cmd/tweezer's small dual-sink diagnostic writer: it
// always writes to a terminal stream and, when a log file is given,
// tees the same output to it, the way the original compiler's
// combinator logger fanned out to a terminal sink and an optional
// file sink.
package diag

import "io"

// Level controls how much detail Sink prints: Quiet suppresses
// everything but fatal errors, Normal prints source-located
// diagnostics, Verbose also prints the full wrapped-error chain.
type Level int

const (
	Quiet Level = iota
	Normal
	Verbose
)

// Sink is cmd/tweezer's diagnostic writer: term always receives
// output (unless Level is Quiet), and file, if set, receives a copy
// regardless of Level so a complete log survives a quiet run.
type Sink struct {
	term  io.Writer
	file  io.Writer
	level Level
}

// New creates a Sink writing to term at level, optionally teeing to
// file (pass nil to skip the file sink).
func New(term io.Writer, file io.Writer, level Level) *Sink {
	return &Sink{term: term, file: file, level: level}
}

// Write implements io.Writer, satisfying config.Config's Diag field;
// it always tees to the file sink and only reaches the terminal sink
// above Quiet.
func (s *Sink) Write(p []byte) (int, error) {
	if s.file != nil {
		if _, err := s.file.Write(p); err != nil {
			return 0, err
		}
	}
	if s.level == Quiet {
		return len(p), nil
	}
	return s.term.Write(p)
}

// Verbose reports whether diagnostics should include the full
// wrapped-error chain (printed with %+v) rather than just the
// top-level message.
func (s *Sink) Verbose() bool {
	return s.level == Verbose
}
