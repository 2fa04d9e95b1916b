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

// Stream is anything producing a Token sequence; both Lexer and Merger
// satisfy it, so a Merger can wrap either a raw Lexer or another Stream.
type Stream interface {
	Next() Token
}

// Merger is the one-token-of-lookahead adapter sitting between the lexer
// and the parser. It folds two adjacent raw token patterns that the
// lexer emits separately but that the grammar treats as one terminal:
//
//   - runs of consecutive TokText tokens collapse into a single TokText
//     with concatenated Text, so the parser never has to special-case
//     lexer-level text fragmentation (the lexer splits text wherever a
//     candidate markup sequence interrupts a run).
//   - a TokVariable immediately followed by a TokAssign-shaped "="
//     folds into a single TokAssign (the lexer emits TokAssign itself
//     when it sees "$name" followed by an assignment operator; the fold
//     drops a TokVariable that precedes a TokAssign for the same name).
type Merger struct {
	src  Stream
	peek *Token
}

// NewMerger wraps src.
func NewMerger(src Stream) *Merger {
	return &Merger{src: src}
}

func (m *Merger) next() Token {
	if m.peek != nil {
		t := *m.peek
		m.peek = nil
		return t
	}
	return m.src.Next()
}

func (m *Merger) lookahead() Token {
	if m.peek == nil {
		t := m.src.Next()
		m.peek = &t
	}
	return *m.peek
}

// Next returns the next merged token.
func (m *Merger) Next() Token {
	tok := m.next()

	switch tok.Kind {
	case TokText:
		for m.lookahead().Kind == TokText {
			n := m.next()
			tok.Text += n.Text
		}
		return tok
	case TokVariable:
		if n := m.lookahead(); n.Kind == TokAssign && n.Text == tok.Text {
			return m.next()
		}
		return tok
	default:
		return tok
	}
}
