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

// Package symtab allocates Z-Machine global variable slots for Twee
// story variables and tracks passage names for link resolution.
package symtab

import "github.com/pkg/errors"

// Slot numbering follows the Z-Machine global variable layout: slots
// 0-15 are reserved for local-like scratch use by generated code (2-15
// are temporaries the code generator spends freely; 16
// (TurnCounterSlot) holds the runtime link count and 17
// (LinkCounterSlot) the <<display>> flag that tells system_check_links
// to return at once), and user story variables start at 25 so there's headroom
// for a handful of additional engine-reserved globals without
// renumbering every story variable.
const (
	FirstTempSlot     = 2
	LastTempSlot      = 15
	TurnCounterSlot   = 16
	LinkCounterSlot   = 17
	FirstUserSlot     = 25
	MaxGlobalSlot     = 255
)

// VarType is a variable's statically-tracked type: which of Integer,
// Bool or String its most recent textual assignment gave it. codegen
// consults this to decide whether "+" means numeric addition or
// string concatenation; like the original compiler's own per-symbol
// type table, tracking is branch-insensitive, so a variable assigned
// different types down different if-branches carries whichever type
// its last-seen assignment recorded.
type VarType int

const (
	// TypeInt is the zero value, matching the original's Integer default
	// for variables that are read before ever being assigned.
	TypeInt VarType = iota
	TypeBool
	TypeString
)

// Table allocates global variable slots for story ($-prefixed) variables
// on first reference, in source order, and records every known passage
// for link resolution and reachability checking.
type Table struct {
	vars     map[string]int
	order    []string
	nextSlot int
	types    map[string]VarType

	passages map[string]bool
}

// New creates an empty Table.
func New() *Table {
	return &Table{
		vars:     make(map[string]int),
		nextSlot: FirstUserSlot,
		types:    make(map[string]VarType),
		passages: make(map[string]bool),
	}
}

// Slot returns the global variable slot for name, allocating one if this
// is the first time name has been seen.
func (t *Table) Slot(name string) (int, error) {
	if slot, ok := t.vars[name]; ok {
		return slot, nil
	}
	if t.nextSlot > MaxGlobalSlot {
		return 0, errors.Errorf("too many story variables: $%s exceeds the %d global slot limit", name, MaxGlobalSlot-FirstUserSlot+1)
	}
	slot := t.nextSlot
	t.nextSlot++
	t.vars[name] = slot
	t.order = append(t.order, name)
	return slot, nil
}

// Declared reports whether name has already been allocated a slot.
func (t *Table) Declared(name string) bool {
	_, ok := t.vars[name]
	return ok
}

// Names returns every declared variable name, in first-reference order.
func (t *Table) Names() []string {
	return t.order
}

// SetType records name's statically-tracked type, overwriting any
// earlier type recorded for it.
func (t *Table) SetType(name string, vt VarType) {
	t.types[name] = vt
}

// TypeOf returns name's statically-tracked type, or TypeInt if it was
// never assigned one.
func (t *Table) TypeOf(name string) VarType {
	return t.types[name]
}

// AddPassage records name as a known passage.
func (t *Table) AddPassage(name string) {
	t.passages[name] = true
}

// HasPassage reports whether name was recorded with AddPassage.
func (t *Table) HasPassage(name string) bool {
	return t.passages[name]
}
