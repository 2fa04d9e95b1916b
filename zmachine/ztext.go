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

// alphabet holds the three 26-char Z-Machine alphabets back to back:
// A0 (lowercase), A1 (uppercase), A2 (punctuation/digits), exactly the
// layout the header's alphabet table at 0x40 expects.
var alphabet = [78]byte{
	'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm',
	'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z',

	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
	'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',

	0, '\n', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '.',
	',', '!', '?', '_', '#', '\'', '"', '/', '\\', '-', ':', '(', ')',
}

// posInAlphabet returns the index of b in alphabet, or -1 if b isn't
// one of the 78 characters the Z-Machine alphabet table covers.
func posInAlphabet(b byte) int {
	for i, c := range alphabet {
		if c == b {
			return i
		}
	}
	return -1
}

// toZChars lowers an ASCII string to a stream of 5-bit Z-characters,
// using shift codes 4 (A1) and 5 (A2) for the non-default alphabets
// and the A2 "escape" sequence (5, 6, top5(b), bottom5(b)) for any
// printable ASCII byte outside the three alphabets.
func toZChars(s string) []byte {
	var z []byte
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b == '\n':
			z = append(z, 0x05, 0x07)
		case b == ' ':
			z = append(z, 0x00)
		default:
			idx := posInAlphabet(b)
			switch {
			case idx < 0:
				z = append(z, 0x05, 0x06, b>>5, b&0x1f)
			case idx < 26:
				z = append(z, byte(idx%26)+6)
			case idx <= 51:
				z = append(z, 0x04, byte(idx%26)+6)
			default:
				z = append(z, 0x05, byte(idx%26)+6)
			}
		}
	}
	return z
}

// shift packs a 5-bit z-character into its 10/5/0-bit position within
// a 16-bit word, position counting 0,1,2 within each 3-char group.
func shift(zchar uint16, position int) uint16 {
	shiftLen := uint(10 - (position%3)*5)
	return zchar << shiftLen
}

// Encode packs s into Z-Machine text bytes: z-characters in groups of
// three per 16-bit word, padded with the 0x05 shift-lock filler and
// terminated by setting the high bit of the last word.
func Encode(s string) []byte {
	return EncodeZChars(toZChars(s))
}

// EncodeZChars packs an already-lowered Z-character stream into
// Z-Machine text bytes. Split out from Encode so callers that mix
// alphabet characters with raw-ZSCII Unicode-table escapes (which
// toZChars alone can't produce) can still share the packing logic.
func EncodeZChars(zchars []byte) []byte {
	var out []byte
	n := len(zchars)
	if n == 0 {
		zchars = []byte{0x05, 0x05, 0x05}
		n = 3
	}
	var word uint16
	for i := 0; i < n; i++ {
		word |= shift(uint16(zchars[i]), i)
		if i%3 == 2 {
			out = append(out, byte(word>>8), byte(word))
			word = 0
		}
		if i == n-1 && i%3 != 2 {
			for j := (i % 3) + 1; j < 3; j++ {
				word |= shift(0x05, j)
			}
			out = append(out, byte(word>>8), byte(word))
		}
	}
	out[len(out)-2] |= 0x80
	return out
}
