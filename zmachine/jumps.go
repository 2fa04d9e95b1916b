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

import "fmt"

// JumpKind tags how a pending jump's placeholder bytes get patched
// once the target label's address is known.
type JumpKind int

const (
	// Routine patches a packed routine address (to_addr / 8).
	Routine JumpKind = iota
	// Branch patches a signed Z-Machine branch offset.
	Branch
	// Jump patches a signed relative jump offset.
	Jump
)

type pendingJump struct {
	fromAddr uint32
	name     string
	kind     JumpKind
}

type label struct {
	toAddr uint32
	name   string
}

// addJump reserves a 2-byte placeholder at the buffer's current end
// and records that, once name's address is known, this placeholder
// must be patched per kind's encoding.
func (z *Zfile) addJump(name string, kind JumpKind) {
	from := uint32(len(z.data))
	z.jumps = append(z.jumps, pendingJump{fromAddr: from, name: name, kind: kind})
	z.data = append(z.data, jumpPlaceholder()...)
}

// addLabel records name as resolving to the buffer's current end (or
// an explicit address, for routine headers which live one byte before
// their body). Label names must be unique; a duplicate almost always
// means two passages share a name, which codegen should never allow
// through but is still checked here defensively, matching the
// original assembler's label-uniqueness panic.
func (z *Zfile) addLabel(name string, addr uint32) error {
	for _, l := range z.labels {
		if l.name == name {
			return fmt.Errorf("zmachine: label %q already defined at %#x", name, l.toAddr)
		}
	}
	z.labels = append(z.labels, label{toAddr: addr, name: name})
	return nil
}

// writeJumps patches every pending jump's placeholder bytes now that
// every label's address is known. It must run after every routine and
// runtime helper has been emitted.
func (z *Zfile) writeJumps() error {
	for _, j := range z.jumps {
		var lbl *label
		for i := range z.labels {
			if z.labels[i].name == j.name {
				lbl = &z.labels[i]
				break
			}
		}
		if lbl == nil {
			return fmt.Errorf("zmachine: jump to undefined label %q", j.name)
		}
		var patch uint16
		switch j.kind {
		case Routine:
			patch = uint16(lbl.toAddr / 8)
		case Branch:
			offset := (int32(lbl.toAddr) - int32(j.fromAddr)) & 0x3fff
			patch = uint16(offset) | 0x8000
		case Jump:
			patch = uint16(int32(lbl.toAddr) - int32(j.fromAddr))
		}
		z.data[j.fromAddr] = byte(patch >> 8)
		z.data[j.fromAddr+1] = byte(patch)
	}
	return nil
}
