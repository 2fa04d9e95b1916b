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

package codegen

// FormattingState tracks which inline style markers are currently
// open. SetTextStyle ops always carry the full vector, so entering or
// leaving any one marker re-emits all four flags.
type FormattingState struct {
	Bold      bool
	Italic    bool
	Mono      bool
	Inverted  bool // used for sub/sup/strike, which render as inverse text
}

// styleOp builds the OpSetTextStyle that reflects the current state.
func (f FormattingState) styleOp() ZOp {
	return ZOp{Kind: OpSetTextStyle, Style: [4]bool{f.Bold, f.Inverted, f.Mono, f.Italic}}
}

// formatStack is a push/pop stack of FormattingState snapshots, one
// per open inline marker, so leaving a marker restores exactly the
// state that was active before it opened.
type formatStack struct {
	states []FormattingState
}

func newFormatStack() *formatStack {
	return &formatStack{states: []FormattingState{{}}}
}

func (s *formatStack) current() FormattingState {
	return s.states[len(s.states)-1]
}

func (s *formatStack) push(f FormattingState) {
	s.states = append(s.states, f)
}

func (s *formatStack) pop() FormattingState {
	f := s.states[len(s.states)-1]
	s.states = s.states[:len(s.states)-1]
	return f
}
