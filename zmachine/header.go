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

const (
	headerAlphabetAddr   uint16 = 0x40
	headerAlphabetSize   uint16 = 78 // A0/A1/A2 x 26 chars
	headerExtensionWords uint16 = 4  // word count + mouse x/y + unicode table pointer
)

// createHeader lays out the fixed-size regions of the v8 memory map
// and writes the 64-byte header, following the original's
// create_header: alphabet table right after the header, then the
// header extension table, then the Unicode translation table, then the
// string-concatenation scratch buffers, then 480 bytes of global
// variables, then the object table.
func (z *Zfile) createHeader() error {
	if len(z.data) != 0 {
		return fmt.Errorf("zmachine: createHeader must run before any other emission")
	}

	extensionAddr := headerAlphabetAddr + headerAlphabetSize
	z.unicodeTableAddr = extensionAddr + headerExtensionWords
	// 1 count byte + up to 97 chars x 2 bytes each.
	concatAddr := z.unicodeTableAddr + 195
	for i := 0; i < concatBufCount; i++ {
		z.concatBufAddrs[i] = concatAddr + uint16(i)*concatBufSize
	}
	z.globalAddr = concatAddr + concatBufCount*concatBufSize
	// 240 global variables x 2 bytes each.
	z.objectAddr = z.globalAddr + 480

	staticAddr := z.lastStaticWritten

	z.data = make([]byte, 0x40)
	z.writeByteAt(0x00, 8) // version 8
	// flags1: colours available(0), bold(2), italic(3), fixed-pitch(4)
	z.writeByteAt(0x01, 0x1d)
	z.writeU16At(0x02, 0) // release number
	z.writeU16At(0x04, z.programAddr)
	z.writeU16At(0x06, z.programAddr) // initial PC
	z.writeU16At(0x08, staticAddr)    // dictionary address: aliased to static base, see DESIGN.md
	z.writeU16At(0x0a, z.objectAddr)
	z.writeU16At(0x0c, z.globalAddr)
	z.writeU16At(0x0e, staticAddr)
	// flags2 bit 6: game wants to use colours.
	z.writeU16At(0x10, 0x0040)
	z.writeU16At(0x34, headerAlphabetAddr)
	z.writeU16At(0x36, extensionAddr)

	z.writeBytesAt(int(headerAlphabetAddr), alphabet[:])

	z.writeU16At(int(extensionAddr), 3) // words following in the extension table
	z.writeU16At(int(extensionAddr)+2, 0)
	z.writeU16At(int(extensionAddr)+4, 0)
	z.writeU16At(int(extensionAddr)+6, z.unicodeTableAddr) // unicode translation table

	z.writeZeroUntil(int(z.objectAddr) + 480)
	return nil
}

// writeUnicodeTable fills in the translation table once every
// non-ASCII character that appeared in the story is known.
func (z *Zfile) writeUnicodeTable() {
	z.writeByteAt(int(z.unicodeTableAddr), byte(len(z.unicodeTable)))
	for i, c := range z.unicodeTable {
		z.writeU16At(int(z.unicodeTableAddr)+1+2*i, c)
	}
}
