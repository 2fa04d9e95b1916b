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

package codegen_test

import (
	"strings"
	"testing"

	"github.com/db47h/tweezer/codegen"
	"github.com/db47h/tweezer/lex"
	"github.com/db47h/tweezer/parse"
	"github.com/db47h/tweezer/symtab"
)

func generate(t *testing.T, src string) *codegen.Result {
	t.Helper()
	l := lex.New("test", lex.NewScreener(strings.NewReader(src)))
	p := parse.New(l)
	story, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := codegen.Generate(story, symtab.New(), nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return res
}

func findOp(ops []codegen.ZOp, kind codegen.OpKind) (codegen.ZOp, bool) {
	for _, op := range ops {
		if op.Kind == kind {
			return op, true
		}
	}
	return codegen.ZOp{}, false
}

func TestHelloWorld(t *testing.T) {
	res := generate(t, ":: Start\nHello, world!\n")
	if res.Start != "Start" {
		t.Fatalf("Start = %q, want Start", res.Start)
	}
	if len(res.Routines) != 1 {
		t.Fatalf("got %d routines, want 1", len(res.Routines))
	}
	op, ok := findOp(res.Routines[0].Ops, codegen.OpPrintText)
	if !ok || op.Text != "Hello, world!" {
		t.Fatalf("ops = %+v, want a PrintText for the greeting", res.Routines[0].Ops)
	}
}

func TestBranchEmitsIfLabels(t *testing.T) {
	res := generate(t, ":: Start\n<<if $x == 1>>a<<else>>b<<endif>>\n")
	ops := res.Routines[0].Ops
	if _, ok := findOp(ops, codegen.OpBranchIfZero); !ok {
		t.Error("expected a BranchIfZero op")
	}
	labels := 0
	for _, op := range ops {
		if op.Kind == codegen.OpLabel {
			labels++
		}
	}
	if labels != 2 {
		t.Errorf("got %d labels, want 2 (after_if_0_1, after_else_0)", labels)
	}
}

func TestLinkRegistersTarget(t *testing.T) {
	res := generate(t, ":: Start\n[[Go|Next]]\n\n:: Next\nend\n")
	op, ok := findOp(res.Routines[0].Ops, codegen.OpLink)
	if !ok {
		t.Fatal("expected an OpLink")
	}
	if op.Target != "Next" || op.Text != "Go" {
		t.Errorf("link = %+v, want Go -> Next", op)
	}
}

func TestVariableSetAndPrint(t *testing.T) {
	res := generate(t, ":: Start\n<<set $x = 5>><<print $x>>\n")
	ops := res.Routines[0].Ops
	if _, ok := findOp(ops, codegen.OpStore); !ok {
		t.Error("expected a Store op for the set")
	}
	if _, ok := findOp(ops, codegen.OpPrintVar); !ok {
		t.Error("expected a PrintVar op for the print")
	}
}

func TestRandomWithEqualBoundsFoldsToConstant(t *testing.T) {
	res := generate(t, ":: Start\n<<print random(1, 1)>>\n")
	ops := res.Routines[0].Ops
	if _, ok := findOp(ops, codegen.OpRandom); ok {
		t.Error("random(1, 1) should fold to a constant at parse time, not emit OpRandom")
	}
	op, ok := findOp(ops, codegen.OpLoadConstInt)
	if !ok || op.Int != 1 {
		t.Errorf("ops = %+v, want a LoadConstInt of 1", ops)
	}
}

func TestRandomWithDifferingBoundsExpandsToRangeArithmetic(t *testing.T) {
	res := generate(t, ":: Start\n<<print random(1, 6)>>\n")
	ops := res.Routines[0].Ops
	if _, ok := findOp(ops, codegen.OpRandom); !ok {
		t.Error("expected an OpRandom")
	}
}

func TestNoStartPassageOnEmptyStory(t *testing.T) {
	l := lex.New("test", lex.NewScreener(strings.NewReader("")))
	p := parse.New(l)
	story, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = codegen.Generate(story, symtab.New(), nil)
	if _, ok := err.(codegen.ErrNoStartPassage); !ok {
		t.Fatalf("err = %v, want ErrNoStartPassage", err)
	}
}

func TestMissingLinkTargetIsReported(t *testing.T) {
	l := lex.New("test", lex.NewScreener(strings.NewReader(":: Start\n[[Go|Nowhere]]\n")))
	p := parse.New(l)
	story, _ := p.Parse()
	_, err := codegen.Generate(story, symtab.New(), nil)
	pnf, ok := err.(codegen.ErrPassageNotFound)
	if !ok {
		t.Fatalf("err = %v, want ErrPassageNotFound", err)
	}
	if pnf.Name != "Nowhere" {
		t.Errorf("missing passage = %q, want Nowhere", pnf.Name)
	}
}
