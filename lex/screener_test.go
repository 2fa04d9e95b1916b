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

package lex_test

import (
	"io"
	"strings"
	"testing"

	"github.com/db47h/tweezer/lex"
)

func screen(t *testing.T, src string) string {
	t.Helper()
	s := lex.NewScreener(strings.NewReader(src))
	b, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return string(b)
}

func TestScreenerPassthrough(t *testing.T) {
	in := "plain text with / a slash and no comments\n"
	if got := screen(t, in); got != in {
		t.Errorf("got %q, want %q", got, in)
	}
}

func TestScreenerStripsComment(t *testing.T) {
	in := "before /% this is a comment %/ after"
	want := "before  after"
	if got := screen(t, in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScreenerMultilineComment(t *testing.T) {
	in := "a/%\nmultiline\ncomment\n%/b"
	want := "ab"
	if got := screen(t, in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScreenerUnterminatedCommentDiscarded(t *testing.T) {
	in := "before /% never closed"
	want := "before "
	if got := screen(t, in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScreenerLoneSlashNotAComment(t *testing.T) {
	in := "1/2 is a half, not /%comment%/ a comment"
	want := "1/2 is a half, not  a comment"
	if got := screen(t, in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScreenerPercentInsideComment(t *testing.T) {
	in := "a /% 100%% done %/ b"
	want := "a  b"
	if got := screen(t, in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
