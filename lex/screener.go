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

package lex

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// screenState is the screener's four-state machine.
type screenState int

const (
	screenNormal screenState = iota
	screenSawSlash
	screenInsideComment
	screenSawPercent
)

// Screener strips /%...%/ comments from the underlying reader, passing
// every other character through verbatim (including newlines, so line
// counting downstream stays correct). Nesting is not supported; an EOF
// reached inside a comment silently discards the unterminated comment,
// including any "/%" characters already consumed.
type Screener struct {
	r       *bufio.Reader
	state   screenState
	pending []rune // at most one rune, held back from a tentative '/%'
}

// NewScreener wraps r.
func NewScreener(r io.Reader) *Screener {
	return &Screener{r: bufio.NewReader(r)}
}

// ReadRune returns the next rune of screened (comment-free) input.
func (s *Screener) ReadRune() (rune, int, error) {
	if len(s.pending) > 0 {
		ch := s.pending[0]
		s.pending = s.pending[1:]
		return ch, utf8.RuneLen(ch), nil
	}
	for {
		ch, n, err := s.r.ReadRune()
		if err != nil {
			// A '/' held back as a possible comment opener is plain text
			// when the input ends right after it. EOF while inside a
			// comment (or a tentative '%/') discards the pending comment
			// silently, per spec.
			if s.state == screenSawSlash {
				s.state = screenNormal
				return '/', 1, nil
			}
			return 0, 0, err
		}
		switch s.state {
		case screenNormal:
			if ch == '/' {
				s.state = screenSawSlash
				continue
			}
			return ch, n, nil
		case screenSawSlash:
			s.state = screenNormal
			if ch == '%' {
				s.state = screenInsideComment
				continue
			}
			// Not a comment start after all: emit the held '/' now and
			// queue ch for the next call.
			s.pending = append(s.pending, ch)
			return '/', 1, nil
		case screenInsideComment:
			if ch == '%' {
				s.state = screenSawPercent
			}
			continue
		case screenSawPercent:
			if ch == '/' {
				s.state = screenNormal
			} else if ch != '%' {
				s.state = screenInsideComment
			}
			continue
		}
	}
}

// Read implements io.Reader over the screened rune stream, so Screener can
// be used anywhere an io.Reader is expected.
func (s *Screener) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		ch, _, err := s.ReadRune()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		var buf [utf8.UTFMax]byte
		w := utf8.EncodeRune(buf[:], ch)
		if n+w > len(p) {
			// rune doesn't fit this call; queue it back.
			s.pending = append([]rune{ch}, s.pending...)
			return n, nil
		}
		n += copy(p[n:], buf[:w])
	}
	return n, nil
}
