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

// maxUnicodeTableEntries is the Z-Machine's hard cap on custom Unicode
// translation table entries: the header reserves a fixed 195 bytes
// for it (1 count byte + up to 97 two-byte codes), matching
// createHeader's layout.
const maxUnicodeTableEntries = 97

// emitUnicodeRun prints a run of non-ASCII text, rune by rune. Each
// rune that fits in the Unicode translation table (already interned,
// or there's still room to intern it) is woven inline into the
// surrounding Z-string as a raw-ZSCII escape; runs of runes that don't
// fit, because the table filled up, are captured as a UTF-16
// string and printed through the runtime print_unicode routine
// instead, exactly like the single string literal case in strings.go.
func (z *Zfile) emitUnicodeRun(text string) {
	var inlineZ []byte
	var overflow []rune

	flushInline := func() {
		if len(inlineZ) == 0 {
			return
		}
		idx := len(z.data)
		z.data = append(z.data, op0(0x02)...)
		z.writeBytesAt(idx+1, EncodeZChars(inlineZ))
		inlineZ = nil
	}
	flushOverflow := func() {
		switch len(overflow) {
		case 0:
		case 1:
			z.data = append(z.data, opPrintUnicodeChar(uint16(overflow[0]))...)
		default:
			z.data = append(z.data, op2(0x1a, []ArgType{LargeConst, LargeConst})...)
			z.addJump("print_unicode", Routine)
			z.internString(string(overflow), true)
		}
		overflow = nil
	}

	for _, r := range text {
		code := r
		if code > 0xFFFF {
			// print_unicode and the translation table both traffic in
			// 16-bit code points; anything wider renders as '?', the
			// same fallback strings.go's utf16BEWithLength uses.
			code = '?'
		}
		if zc := z.inlineZChars(code); zc != nil {
			flushOverflow()
			inlineZ = append(inlineZ, zc...)
			continue
		}
		flushInline()
		overflow = append(overflow, code)
	}
	flushInline()
	flushOverflow()
}

// inlineZChars returns r's Z-character encoding when it can be woven
// directly into a Z-string: plain alphabet characters via toZChars,
// or a table-indexed rune via the raw-ZSCII escape (5, 6, top5, low5)
// with code 155+index, the standard Unicode-table reference encoding.
// It returns nil when r is non-ASCII and the table has no room left
// for it, signalling the caller to fall back to the runtime path.
func (z *Zfile) inlineZChars(r rune) []byte {
	if r <= 126 {
		return toZChars(string(r))
	}
	idx := z.unicodeTableIndex(r)
	if idx < 0 {
		return nil
	}
	code := 155 + idx
	return []byte{0x05, 0x06, byte(code >> 5), byte(code & 0x1f)}
}

// unicodeTableIndex returns r's 0-based slot in the story's Unicode
// translation table, interning it if there's room, or -1 if the table
// is already full and r isn't already in it.
func (z *Zfile) unicodeTableIndex(r rune) int {
	code := uint16(r)
	for i, c := range z.unicodeTable {
		if c == code {
			return i
		}
	}
	if len(z.unicodeTable) >= maxUnicodeTableEntries {
		return -1
	}
	z.unicodeTable = append(z.unicodeTable, code)
	return len(z.unicodeTable) - 1
}
