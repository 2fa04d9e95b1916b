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

package symtab_test

import (
	"testing"

	"github.com/db47h/tweezer/symtab"
)

func TestSlotAllocationIsStableAndOrdered(t *testing.T) {
	tab := symtab.New()
	a, err := tab.Slot("a")
	if err != nil {
		t.Fatal(err)
	}
	b, _ := tab.Slot("b")
	a2, _ := tab.Slot("a")
	if a != a2 {
		t.Errorf("re-requesting $a slot changed: %d != %d", a, a2)
	}
	if b != a+1 {
		t.Errorf("slots not allocated contiguously: a=%d b=%d", a, b)
	}
	if a < symtab.FirstUserSlot {
		t.Errorf("slot %d below FirstUserSlot %d", a, symtab.FirstUserSlot)
	}
	if got := tab.Names(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Names() = %v, want [a b]", got)
	}
}

func TestDeclared(t *testing.T) {
	tab := symtab.New()
	if tab.Declared("x") {
		t.Error("x should not be declared yet")
	}
	tab.Slot("x")
	if !tab.Declared("x") {
		t.Error("x should be declared after Slot")
	}
}

func TestTypeOfDefaultsToInt(t *testing.T) {
	tab := symtab.New()
	if got := tab.TypeOf("x"); got != symtab.TypeInt {
		t.Errorf("TypeOf(unassigned) = %v, want TypeInt", got)
	}
	tab.SetType("x", symtab.TypeString)
	if got := tab.TypeOf("x"); got != symtab.TypeString {
		t.Errorf("TypeOf(x) = %v, want TypeString", got)
	}
}

func TestPassageTracking(t *testing.T) {
	tab := symtab.New()
	if tab.HasPassage("Start") {
		t.Error("Start should not be known yet")
	}
	tab.AddPassage("Start")
	if !tab.HasPassage("Start") {
		t.Error("Start should be known after AddPassage")
	}
}
