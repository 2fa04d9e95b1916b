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
	"strings"
	"testing"

	"github.com/db47h/tweezer/lex"
	"github.com/db47h/tweezer/parse"
)

func parseSrc(t *testing.T, src string) *parse.Story {
	t.Helper()
	l := lex.New("test", lex.NewScreener(strings.NewReader(src)))
	p := parse.New(l)
	story, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return story
}

func TestParseTwoPassages(t *testing.T) {
	story := parseSrc(t, ":: Start\nhello\n\n:: Next\nworld\n")
	if len(story.Passages) != 2 {
		t.Fatalf("got %d passages, want 2", len(story.Passages))
	}
	if story.Passages[0].Name != "Start" || story.Passages[1].Name != "Next" {
		t.Errorf("passage names = %q, %q", story.Passages[0].Name, story.Passages[1].Name)
	}
}

func TestParseLink(t *testing.T) {
	story := parseSrc(t, ":: Start\n[[Go|Next]]\n\n:: Next\nend\n")
	body := story.Passages[0].Body
	var link *parse.Node
	for _, n := range body {
		if n.Kind == parse.NodeLink {
			link = n
		}
	}
	if link == nil {
		t.Fatal("no link node found")
	}
	if link.Text != "Go" || link.Target != "Next" {
		t.Errorf("link = %q -> %q", link.Text, link.Target)
	}
}

func TestParseIfElse(t *testing.T) {
	story := parseSrc(t, ":: S\n<<if $x == 1>>a<<else>>b<<endif>>\n")
	body := story.Passages[0].Body
	var ifNode *parse.Node
	for _, n := range body {
		if n.Kind == parse.NodeIf {
			ifNode = n
		}
	}
	if ifNode == nil {
		t.Fatal("no if node found")
	}
	if len(ifNode.Branches) != 2 {
		t.Fatalf("got %d branches, want 2", len(ifNode.Branches))
	}
	if ifNode.Branches[0].Expr == nil {
		t.Error("first branch should have a condition")
	}
	if ifNode.Branches[1].Expr != nil {
		t.Error("else branch should have a nil condition")
	}
}

func TestParseSetAssignment(t *testing.T) {
	story := parseSrc(t, ":: S\n<<set $x = 5>>\n")
	body := story.Passages[0].Body
	var set *parse.Node
	for _, n := range body {
		if n.Kind == parse.NodeSet {
			set = n
		}
	}
	if set == nil {
		t.Fatal("no set node found")
	}
	if set.Text != "x" {
		t.Errorf("set target = %q, want x", set.Text)
	}
	if set.Expr == nil || set.Expr.Kind != parse.ExprLiteralInt || set.Expr.Int != 5 {
		t.Errorf("set.Expr = %+v, want literal int 5", set.Expr)
	}
}
