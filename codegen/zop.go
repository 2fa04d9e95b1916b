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

// Package codegen walks a parsed Twee story and lowers it to ZOp, a
// flat tagged-variant intermediate op shared with package zmachine:
// one small closed set of op kinds carrying whatever operands each
// kind needs, never a type-per-kind hierarchy.
package codegen

// OpKind tags the variant held by a ZOp.
type OpKind int

const (
	// OpLabel marks a jump/branch target; Text holds the label name.
	OpLabel OpKind = iota
	// OpPrintText emits a literal string (ZSCII-encoded at assembly time).
	OpPrintText
	// OpPrintVar emits the numeric value of a global variable.
	OpPrintVar
	// OpPrintNum emits a signed literal number.
	OpPrintNum
	// OpNewline emits a single line break.
	OpNewline
	// OpSetColor sets foreground/background text colour.
	OpSetColor
	// OpSetTextStyle sets bold/reverse/monospace/italic style bits.
	OpSetTextStyle
	// OpStore assigns an expression's value (pushed via OpEval*) to a
	// global variable slot.
	OpStore
	// OpEvalBinary evaluates a binary operator, consuming two operand
	// slots (Left, Right may themselves be temp slots or literals) and
	// leaving the result in Dest.
	OpEvalBinary
	// OpEvalUnary is OpEvalBinary's one-operand counterpart.
	OpEvalUnary
	// OpLoadConstInt loads an integer literal into Dest.
	OpLoadConstInt
	// OpLoadVar loads a global variable's value into Dest.
	OpLoadVar
	// OpRandom stores a random number in 1..n into Dest, where n is the
	// value held in slot Left.
	OpRandom
	// OpJump is an unconditional jump to Text (a label name).
	OpJump
	// OpBranchIfZero jumps to Text if the value in Dest (a temp slot
	// holding a condition's result) is zero/false.
	OpBranchIfZero
	// OpCallRoutine calls the routine labelled Text (a runtime routine
	// such as "system_check_links", or a passage) with no arguments.
	OpCallRoutine
	// OpLink compiles a passage link: prints Text, registers Target as
	// a link destination, and runs Args (var-set assignments) when the
	// link is followed.
	OpLink
	// OpIncVar increments the global in Dest by one. codegen does not
	// emit it; the runtime routines update their counters themselves.
	OpIncVar
	// OpRoutineStart marks the start of a passage's routine body; Text
	// is the passage name.
	OpRoutineStart
	// OpReturn ends the current routine.
	OpReturn
	// OpPrintUnicodeText emits a run of non-ASCII text; the assembler
	// resolves each rune against the story's Unicode translation table
	// (interning it if there's room) or falls back to the runtime
	// print_unicode routine once the table is full.
	OpPrintUnicodeText
	// OpConcatStrings runtime-concatenates the string values held in
	// Left and Right, via output_stream capture, leaving the result in
	// one of the assembler's scratch buffers tagged onto Dest.
	OpConcatStrings
	// OpPrintString prints the string value held in Dest: a
	// concatenation result if Dest is tagged with a scratch buffer,
	// otherwise a plain packed-string global.
	OpPrintString
)

// ZOp is a single lowered operation. As with lex.Token and parse.Node,
// a flat struct keeps the variant set closed and avoids a
// type-per-kind hierarchy; not every field is meaningful for every
// Kind.
type ZOp struct {
	Kind OpKind

	Text   string // label/passage/routine name, literal string, operator text
	Target string // link target passage name

	Dest  int // destination global slot
	Left  int // left operand: global slot, or literal when LeftIsConst
	Right int // right operand: global slot, or literal when RightIsConst

	LeftIsConst  bool
	RightIsConst bool

	Int   int  // literal integer operand (OpLoadConstInt, OpPrintNum)
	Bool  bool // style/colour flag operand
	Style [4]bool // bold, reverse, monospace, italic (OpSetTextStyle)

	Args []ZOp // nested ops, e.g. a link's var-set assignments
}
