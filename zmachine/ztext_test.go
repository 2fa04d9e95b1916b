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

import "testing"

func TestEncodeEndsWithHighBitSet(t *testing.T) {
	b := Encode("hello")
	if len(b)%2 != 0 {
		t.Fatalf("encoded length %d not a multiple of 2", len(b))
	}
	if b[len(b)-2]&0x80 == 0 {
		t.Fatal("end-of-string bit not set on the last word's high byte")
	}
}

func TestEncodeEmptyString(t *testing.T) {
	b := Encode("")
	if len(b) != 2 {
		t.Fatalf("len = %d, want 2", len(b))
	}
	if b[0]&0x80 == 0 {
		t.Fatal("end-of-string bit not set")
	}
}

func TestEncodeASCIISetsEndBitOnlyOnLastWord(t *testing.T) {
	for _, s := range []string{"a", "ab", "abc", "abcd", "hello world", "HELLO", "123.456"} {
		b := Encode(s)
		if len(b) == 0 || len(b)%2 != 0 {
			t.Fatalf("Encode(%q) produced malformed bytes %v", s, b)
		}
		// Every word but the last must have its high bit clear.
		for i := 0; i+2 < len(b); i += 2 {
			if b[i]&0x80 != 0 {
				t.Errorf("Encode(%q): non-terminal word %d has end bit set", s, i/2)
			}
		}
	}
}

func TestPosInAlphabetCoversLettersAndDigits(t *testing.T) {
	if posInAlphabet('c') != 2 {
		t.Errorf("posInAlphabet('c') = %d, want 2", posInAlphabet('c'))
	}
	if posInAlphabet('A') != 26 {
		t.Errorf("posInAlphabet('A') = %d, want 26", posInAlphabet('A'))
	}
	if posInAlphabet('0') != 54 {
		t.Errorf("posInAlphabet('0') = %d, want 54", posInAlphabet('0'))
	}
	if posInAlphabet('~') != -1 {
		t.Errorf("posInAlphabet('~') = %d, want -1", posInAlphabet('~'))
	}
}
