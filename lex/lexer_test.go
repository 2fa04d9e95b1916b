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
	"strings"
	"testing"

	"github.com/db47h/tweezer/lex"
)

func tokenize(src string) []lex.Token {
	l := lex.New("test", lex.NewScreener(strings.NewReader(src)))
	var toks []lex.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == lex.TokEOF {
			return toks
		}
	}
}

func kinds(toks []lex.Token) []lex.Kind {
	k := make([]lex.Kind, len(toks))
	for i, t := range toks {
		k[i] = t.Kind
	}
	return k
}

func assertKinds(t *testing.T, got []lex.Kind, want ...lex.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestPassageHeader(t *testing.T) {
	toks := tokenize(":: Start\nhello\n")
	assertKinds(t, kinds(toks),
		lex.TokPassageName, lex.TokNewLine, lex.TokText, lex.TokNewLine, lex.TokEOF)
	if toks[0].Text != "Start" {
		t.Errorf("passage name = %q, want Start", toks[0].Text)
	}
}

func TestPassageWithTags(t *testing.T) {
	toks := tokenize(":: Start [tagA tagB]\ntext\n")
	assertKinds(t, kinds(toks),
		lex.TokPassageName, lex.TokTagStart, lex.TokTag, lex.TokTag, lex.TokTagEnd,
		lex.TokNewLine, lex.TokText, lex.TokNewLine, lex.TokEOF)
}

func TestBoldItalicToggle(t *testing.T) {
	toks := tokenize(":: S\n''bold'' //italic//\n")
	assertKinds(t, kinds(toks),
		lex.TokPassageName, lex.TokNewLine,
		lex.TokFormatBoldStart, lex.TokText, lex.TokFormatBoldEnd,
		lex.TokText,
		lex.TokFormatItalicStart, lex.TokText, lex.TokFormatItalicEnd,
		lex.TokNewLine, lex.TokEOF)
}

func TestSimpleLink(t *testing.T) {
	toks := tokenize(":: S\n[[Go North|North Room]]\n")
	assertKinds(t, kinds(toks),
		lex.TokPassageName, lex.TokNewLine, lex.TokPassageLink, lex.TokNewLine, lex.TokEOF)
	if toks[2].Text != "Go North" || toks[2].Text2 != "North Room" {
		t.Errorf("link = %q -> %q, want \"Go North\" -> \"North Room\"", toks[2].Text, toks[2].Text2)
	}
}

func TestLinkWithVarSet(t *testing.T) {
	toks := tokenize(":: S\n[[Door|Hall][$opened=true]]\n")
	assertKinds(t, kinds(toks),
		lex.TokPassageName, lex.TokNewLine, lex.TokPassageLink,
		lex.TokVarSetStart, lex.TokAssign, lex.TokBoolean, lex.TokVarSetEnd,
		lex.TokNewLine, lex.TokEOF)
}

func TestSetMacro(t *testing.T) {
	toks := tokenize(":: S\n<<set $x = 5>>\n")
	assertKinds(t, kinds(toks),
		lex.TokPassageName, lex.TokNewLine, lex.TokMacroStart, lex.TokSet, lex.TokAssign, lex.TokInt, lex.TokMacroEnd,
		lex.TokNewLine, lex.TokEOF)
}

func TestIfMacro(t *testing.T) {
	toks := tokenize(":: S\n<<if $x == 1>>a<<else>>b<<endif>>\n")
	assertKinds(t, kinds(toks),
		lex.TokPassageName, lex.TokNewLine,
		lex.TokMacroStart, lex.TokIf, lex.TokVariable, lex.TokCompOp, lex.TokInt, lex.TokMacroEnd,
		lex.TokText,
		lex.TokMacroStart, lex.TokElse, lex.TokMacroEnd,
		lex.TokText,
		lex.TokMacroStart, lex.TokEndIf, lex.TokMacroEnd,
		lex.TokNewLine, lex.TokEOF)
}

func TestShorthandDisplayAndPrint(t *testing.T) {
	toks := tokenize(":: S\n<<Other>> <<$x>>\n")
	assertKinds(t, kinds(toks),
		lex.TokPassageName, lex.TokNewLine,
		lex.TokMacroStart, lex.TokDisplay, lex.TokText, lex.TokMacroEnd,
		lex.TokText,
		lex.TokMacroStart, lex.TokMacroVar, lex.TokMacroEnd,
		lex.TokNewLine, lex.TokEOF)
}

func TestFunctionCall(t *testing.T) {
	toks := tokenize(":: S\n<<set $x = random(1,10)>>\n")
	assertKinds(t, kinds(toks),
		lex.TokPassageName, lex.TokNewLine, lex.TokMacroStart, lex.TokSet, lex.TokAssign,
		lex.TokFunction, lex.TokBracketOpen, lex.TokInt, lex.TokComma, lex.TokInt, lex.TokBracketClose,
		lex.TokMacroEnd, lex.TokNewLine, lex.TokEOF)
}

func TestCommentsStrippedBeforeLexing(t *testing.T) {
	toks := tokenize(":: S\nhello /% drop me %/world\n")
	assertKinds(t, kinds(toks), lex.TokPassageName, lex.TokNewLine, lex.TokText, lex.TokNewLine, lex.TokEOF)
	if toks[2].Text != "hello world" {
		t.Errorf("text = %q, want %q", toks[2].Text, "hello world")
	}
}
