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

// Package zmachine assembles lowered ZOp instruction streams into a
// version-8 Z-Machine story file: header, global variables, object
// table stub, routines, interned strings, and the handful of fixed
// runtime routines every compiled story needs.
package zmachine

import (
	"fmt"

	"github.com/db47h/tweezer/codegen"
	"github.com/db47h/tweezer/config"
)

// Zfile holds everything needed to assemble a complete story file:
// the growing byte buffer, bookkeeping for labels/jumps/strings not
// yet resolved, and the handful of addresses fixed by createHeader.
type Zfile struct {
	data []byte

	unicodeTable []uint16
	jumps        []pendingJump
	labels       []label
	strings      []pendingString

	programAddr       uint16
	unicodeTableAddr  uint16
	globalAddr        uint16
	objectAddr        uint16
	lastStaticWritten uint16

	// concatBufAddrs are the 3 fixed scratch buffers "+" string
	// concatenation captures its result into, and stringSlotBuf tracks
	// which buffer (if any) currently backs a given global slot's
	// string value; see strconcat.go.
	concatBufAddrs [concatBufCount]uint16
	stringSlotBuf  map[byte]int

	cfg *config.Config

	synthCounter int
}

// New creates an empty Zfile ready for start().
func New(cfg *config.Config) *Zfile {
	return &Zfile{
		programAddr:       0xfff8,
		lastStaticWritten: 0x800,
		cfg:               cfg,
	}
}

func (z *Zfile) writeByteAt(addr int, v byte) {
	z.growTo(addr + 1)
	z.data[addr] = v
}

func (z *Zfile) writeU16At(addr int, v uint16) {
	z.growTo(addr + 2)
	z.data[addr] = byte(v >> 8)
	z.data[addr+1] = byte(v)
}

func (z *Zfile) writeBytesAt(addr int, b []byte) {
	z.growTo(addr + len(b))
	copy(z.data[addr:], b)
}

func (z *Zfile) writeAt(addr uint32, b []byte) error {
	z.writeBytesAt(int(addr), b)
	return nil
}

func (z *Zfile) growTo(n int) {
	if n <= len(z.data) {
		return
	}
	z.data = append(z.data, make([]byte, n-len(z.data))...)
}

func (z *Zfile) writeZeroUntil(addr int) {
	z.growTo(addr)
}

// routine starts a new routine at the next 8-byte-aligned address,
// writing its local-variable count byte and registering name as a
// label resolving to that address (matching the original: a routine's
// "address" for call purposes is where its local-count byte lives).
func (z *Zfile) routine(name string, localVars byte) error {
	if localVars > 15 {
		return fmt.Errorf("zmachine: routine %q wants %d locals, only 15 allowed", name, localVars)
	}
	addr := alignAddress(uint32(len(z.data)), 8)
	z.writeZeroUntil(int(addr))
	if err := z.addLabel(name, addr); err != nil {
		return err
	}
	z.writeByteAt(int(addr), localVars)
	return nil
}

// label registers name as resolving to the buffer's current end.
func (z *Zfile) label(name string) error {
	return z.addLabel(name, uint32(len(z.data)))
}

// start writes the header and the fixed startup sequence: default
// colour theme, clear the screen, call the story's Start routine.
func (z *Zfile) start() error {
	if err := z.createHeader(); err != nil {
		return err
	}
	z.writeZeroUntil(int(z.programAddr))

	fg, bg := byte(9), byte(2)
	if z.cfg != nil && z.cfg.BrightMode {
		fg, bg = bg, fg
	}
	z.data = append(z.data, opSetColor(fg, bg)...)
	z.data = append(z.data, opEraseWindow(-1)...)
	z.data = append(z.data, op1(0x0f, LargeConst)...)
	z.addJump("Start", Routine)
	return nil
}

// end writes everything that can only be placed once every routine
// and string is known: the Unicode table, the fixed runtime routines,
// then resolves every pending jump and interned string.
func (z *Zfile) end() error {
	z.writeUnicodeTable()
	if err := z.routineCheckLinks(); err != nil {
		return err
	}
	if err := z.routineAddLink(); err != nil {
		return err
	}
	if err := z.routinePrintUnicode(); err != nil {
		return err
	}
	for i := 0; i < concatBufCount; i++ {
		if err := z.routinePrintBuffer(z.printBufRoutineName(i), z.concatBufAddrs[i]); err != nil {
			return err
		}
	}
	if err := z.writeJumps(); err != nil {
		return err
	}
	if err := z.writeStrings(); err != nil {
		return err
	}
	return nil
}

// Assemble lowers a codegen.Result to a complete story file image.
func Assemble(res *codegen.Result, cfg *config.Config) ([]byte, error) {
	z := New(cfg)
	if err := z.start(); err != nil {
		return nil, err
	}
	for _, r := range res.Routines {
		if err := z.emitRoutine(r); err != nil {
			return nil, err
		}
	}
	if err := z.end(); err != nil {
		return nil, err
	}
	return z.data, nil
}
