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

package parse

import (
	"fmt"
	"strings"

	"github.com/db47h/tweezer/internal/srcpos"
	"github.com/db47h/tweezer/lex"
)

const maxErrors = 10

// ErrParse encapsulates the errors produced by a single parse; the driver
// keeps going after a syntax error (skipping tokens until the next
// recognizable construct) so a single run reports more than one mistake.
type ErrParse []struct {
	Pos srcpos.Location
	Msg string
}

func (e ErrParse) Error() string {
	l := make([]string, 0, len(e))
	for _, err := range e {
		l = append(l, fmt.Sprintf("%s: %s", err.Pos, err.Msg))
	}
	return strings.Join(l, "\n")
}

func parseError(pos srcpos.Location, msg string) struct {
	Pos srcpos.Location
	Msg string
} {
	return struct {
		Pos srcpos.Location
		Msg string
	}{pos, msg}
}

// errNoProjection: the LL(1) table has no entry for (non-terminal, lookahead).
func errNoProjection(pos srcpos.Location, nt string, tok lex.Token) error {
	return fmt.Errorf("%s: no projection for %s on lookahead %s", pos, nt, tok)
}

// errStackIsEmpty: the parser's symbol stack emptied before the token
// stream did, or vice-versa — a malformed table entry or a grammar bug.
func errStackIsEmpty(pos srcpos.Location) error {
	return fmt.Errorf("%s: parser stack exhausted", pos)
}

// errTokenDoNotMatch: a terminal on top of the stack didn't match the
// lookahead token.
func errTokenDoNotMatch(pos srcpos.Location, want lex.Kind, got lex.Token) error {
	return fmt.Errorf("%s: expected %s, got %s", pos, want, got)
}

// errNonTerminalEnd: input ended while a non-terminal was still open.
func errNonTerminalEnd(nt string) error {
	return fmt.Errorf("unexpected end of input while parsing %s", nt)
}
