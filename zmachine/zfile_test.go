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

package zmachine

import (
	"testing"

	"github.com/db47h/tweezer/codegen"
	"github.com/db47h/tweezer/config"
)

func assembleStory(t *testing.T, res *codegen.Result) []byte {
	t.Helper()
	data, err := Assemble(res, config.New())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	return data
}

func helloWorldResult() *codegen.Result {
	return &codegen.Result{
		Start: "Start",
		Routines: []codegen.Routine{{
			Name: "Start",
			Ops: []codegen.ZOp{
				{Kind: codegen.OpRoutineStart, Text: "Start"},
				{Kind: codegen.OpPrintText, Text: "Hello, world!"},
				{Kind: codegen.OpCallRoutine, Text: "system_check_links"},
				{Kind: codegen.OpReturn},
			},
		}},
	}
}

func TestAssembleProducesValidV8Header(t *testing.T) {
	data := assembleStory(t, helloWorldResult())
	if len(data) < 0x40 {
		t.Fatalf("story too short for a header: %d bytes", len(data))
	}
	if data[0] != 8 {
		t.Errorf("version byte = %d, want 8", data[0])
	}
	if data[1] != 0x1d {
		t.Errorf("flags1 = %#x, want 0x1d", data[1])
	}
}

func TestWriteJumpsLeavesNoPlaceholders(t *testing.T) {
	// A pending jump's 2-byte placeholder is always 0x0000 before
	// patching, and every jump kind resolves to a nonzero patched value
	// for this story (Start is never at address 0, nor is any label).
	z := New(config.New())
	if err := z.start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, r := range helloWorldResult().Routines {
		if err := z.emitRoutine(r); err != nil {
			t.Fatalf("emitRoutine: %v", err)
		}
	}
	if err := z.end(); err != nil {
		t.Fatalf("end: %v", err)
	}
	for _, j := range z.jumps {
		hi, lo := z.data[j.fromAddr], z.data[j.fromAddr+1]
		if hi == 0 && lo == 0 {
			t.Errorf("jump to %q at %#x was never patched", j.name, j.fromAddr)
		}
	}
}

func TestPrintTextWithoutDestIsNotInterned(t *testing.T) {
	res := &codegen.Result{
		Start: "Start",
		Routines: []codegen.Routine{{
			Name: "Start",
			Ops: []codegen.ZOp{
				{Kind: codegen.OpRoutineStart, Text: "Start"},
				{Kind: codegen.OpPrintText, Text: "same"},
				{Kind: codegen.OpPrintText, Text: "same"},
				{Kind: codegen.OpCallRoutine, Text: "system_check_links"},
				{Kind: codegen.OpReturn},
			},
		}},
	}
	z := New(config.New())
	if err := z.start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, r := range res.Routines {
		if err := z.emitRoutine(r); err != nil {
			t.Fatalf("emitRoutine: %v", err)
		}
	}
	if err := z.end(); err != nil {
		t.Fatalf("end: %v", err)
	}
	if len(z.strings) != 0 {
		t.Fatalf("OpPrintText with Dest==0 should print inline, not intern; got %d interned strings", len(z.strings))
	}
}

func TestRoutineAddressesAreEightByteAligned(t *testing.T) {
	z := New(config.New())
	if err := z.start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	z.data = append(z.data, 0x01, 0x02, 0x03) // desync alignment
	if err := z.routine("Foo", 0); err != nil {
		t.Fatalf("routine: %v", err)
	}
	var addr uint32
	for _, l := range z.labels {
		if l.name == "Foo" {
			addr = l.toAddr
		}
	}
	if addr%8 != 0 {
		t.Errorf("routine address %#x not 8-byte aligned", addr)
	}
}

func TestDuplicateLabelIsAnError(t *testing.T) {
	z := New(config.New())
	if err := z.label("dup"); err != nil {
		t.Fatalf("label: %v", err)
	}
	if err := z.label("dup"); err == nil {
		t.Fatal("expected an error for a duplicate label")
	}
}

func TestCompareWithLessEqualMaterializesBooleanResult(t *testing.T) {
	z := New(config.New())
	if err := z.start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := z.routine("Start", 0); err != nil {
		t.Fatalf("routine: %v", err)
	}
	if err := z.emitCompare("<=", globalOperand(2), globalOperand(3), globalOperand(2)); err != nil {
		t.Fatalf("emitCompare: %v", err)
	}
	z.data = append(z.data, opRet(0)...)
	if err := z.end(); err != nil {
		t.Fatalf("end: %v", err)
	}
	for _, j := range z.jumps {
		hi, lo := z.data[j.fromAddr], z.data[j.fromAddr+1]
		if hi == 0 && lo == 0 {
			t.Errorf("synthesized jump to %q was never patched", j.name)
		}
	}
}
