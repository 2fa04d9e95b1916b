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

// pendingString is a print string whose bytes haven't been placed in
// high memory yet: codegen emits a print op with a placeholder
// operand, and writeStrings (run once, at end()) interns identical
// strings so they share one copy of the encoded text.
type pendingString struct {
	fromAddr    uint32 // where the packed/plain address operand lives
	orig        string
	unicode     bool
	writtenAddr uint32
}

// internString queues text for later placement and reserves a 2-byte
// operand placeholder at the buffer's current end, to be patched by
// writeStrings with text's eventual (possibly packed) address.
func (z *Zfile) internString(text string, unicode bool) {
	from := uint32(len(z.data))
	z.strings = append(z.strings, pendingString{fromAddr: from, orig: text, unicode: unicode})
	z.data = append(z.data, 0x00, 0x00)
}

// writeStrings places every interned string's encoded bytes in high
// (non-unicode) or static (UTF-16) memory, deduplicating identical
// (orig, unicode) pairs so repeated literal text is only stored once,
// then patches every operand placeholder with the resulting address.
func (z *Zfile) writeStrings() error {
	type key struct {
		orig    string
		unicode bool
	}
	placed := make(map[key]uint32)

	for i := range z.strings {
		s := &z.strings[i]
		k := key{s.orig, s.unicode}
		if addr, ok := placed[k]; ok {
			s.writtenAddr = addr
			if err := z.patchStringOperand(s); err != nil {
				return err
			}
			continue
		}

		var addr uint32
		if s.unicode {
			addr = uint32(z.lastStaticWritten)
			utf16 := utf16BEWithLength(s.orig)
			if err := z.writeAt(addr, utf16); err != nil {
				return err
			}
			z.lastStaticWritten += uint16(len(utf16))
		} else {
			addr = alignAddress(uint32(len(z.data)), 8)
			z.writeZeroUntil(int(addr))
			z.data = append(z.data, Encode(s.orig)...)
		}
		s.writtenAddr = addr
		placed[k] = addr
		if err := z.patchStringOperand(s); err != nil {
			return err
		}
	}
	return nil
}

func (z *Zfile) patchStringOperand(s *pendingString) error {
	addr := s.writtenAddr
	if !s.unicode {
		addr /= 8
	}
	if int(s.fromAddr)+2 > len(z.data) {
		return fmt.Errorf("zmachine: string operand at %#x out of range", s.fromAddr)
	}
	z.data[s.fromAddr] = byte(addr >> 8)
	z.data[s.fromAddr+1] = byte(addr)
	return nil
}

func utf16BEWithLength(s string) []byte {
	runes := []rune(s)
	out := make([]byte, 0, 2+2*len(runes))
	out = append(out, byte(len(runes)>>8), byte(len(runes)))
	for _, r := range runes {
		if r > 0xFFFF {
			r = '?'
		}
		out = append(out, byte(uint16(r)>>8), byte(uint16(r)))
	}
	return out
}

func alignAddress(addr uint32, align uint32) uint32 {
	if addr%align == 0 {
		return addr
	}
	return addr + (align - addr%align)
}
