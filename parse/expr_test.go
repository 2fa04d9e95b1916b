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

package parse_test

import (
	"testing"

	"github.com/db47h/tweezer/parse"
)

func parseExprSrc(t *testing.T, body string) *parse.Expr {
	t.Helper()
	story := parseSrc(t, ":: S\n<<print "+body+">>\n")
	for _, n := range story.Passages[0].Body {
		if n.Kind == parse.NodePrint {
			return n.Expr
		}
	}
	t.Fatal("no print node found")
	return nil
}

func TestExprPrecedence(t *testing.T) {
	// 1 + 2 * 3 must bind as 1 + (2 * 3).
	e := parseExprSrc(t, "1 + 2 * 3")
	if e.Kind != parse.ExprBinary || e.Op != "+" {
		t.Fatalf("top = %+v, want '+' at top", e)
	}
	if e.Right.Kind != parse.ExprBinary || e.Right.Op != "*" {
		t.Fatalf("right = %+v, want '*' subtree", e.Right)
	}
}

func TestExprParens(t *testing.T) {
	e := parseExprSrc(t, "(1 + 2) * 3")
	if e.Kind != parse.ExprBinary || e.Op != "*" {
		t.Fatalf("top = %+v, want '*' at top", e)
	}
	if e.Left.Kind != parse.ExprBinary || e.Left.Op != "+" {
		t.Fatalf("left = %+v, want '+' subtree", e.Left)
	}
}

func TestExprFunctionCall(t *testing.T) {
	e := parseExprSrc(t, "random(1,10)")
	if e.Kind != parse.ExprCall || e.Text != "random" {
		t.Fatalf("e = %+v, want call to random", e)
	}
	if len(e.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(e.Args))
	}
}

func TestExprUnaryNot(t *testing.T) {
	e := parseExprSrc(t, "not $x")
	if e.Kind != parse.ExprUnary || e.Op != "not" {
		t.Fatalf("e = %+v, want unary not", e)
	}
}
