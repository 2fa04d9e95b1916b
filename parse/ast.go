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

// Package parse turns a merged token stream into an AST, using a
// hand-written recursive-descent parser with one token of lookahead for
// the structural grammar and a precedence-climbing sub-parser for
// expressions.
package parse

import (
	"github.com/db47h/tweezer/internal/srcpos"
	"github.com/db47h/tweezer/lex"
)

// NodeKind tags the variant held by a Node.
type NodeKind int

const (
	NodeStory NodeKind = iota
	NodePassage
	NodeText
	NodeFormatBold
	NodeFormatItalic
	NodeFormatUnder
	NodeFormatStrike
	NodeFormatSub
	NodeFormatSup
	NodeFormatMono
	NodeFormatBulList
	NodeFormatNumbList
	NodeFormatIndentBlock
	NodeFormatHorizontalLine
	NodeFormatHeading
	NodeLink
	NodeSet
	NodeIf
	NodePrint
	NodeDisplay
	NodeSilently
	NodeNobr
	NodeExpr
)

// Node is a single AST element. As with lex.Token, a flat tagged-variant
// struct avoids a type-per-kind hierarchy; Children holds nested nodes
// for block-structured constructs (formatted runs, list items and
// headings, silently/nobr bodies, a link's var-set assignments).
type Node struct {
	Kind NodeKind
	Pos  srcpos.Location

	Text     string // passage name, tag, text run, variable/function name
	Target   string // link target passage
	Rank     int    // heading rank
	Children []*Node

	// if/elseif/else chains: one Expr+Children pair per branch, the last
	// branch with a nil Expr is the else arm (if present).
	Branches []IfBranch

	// set/print's right-hand side, or a bare expression.
	Expr *Expr

	Tags []string // passage tags
}

// IfBranch is one arm of an if/elseif/else chain.
type IfBranch struct {
	Expr *Expr // nil for the else arm
	Body []*Node
}

// Story is the root of a parsed Twee document: an ordered list of
// passages, in source order.
type Story struct {
	Passages []*Passage
}

// Passage is one "::Name [tags]" section with its parsed body.
type Passage struct {
	Name string
	Tags []string
	Pos  srcpos.Location
	Body []*Node
}

// Expr is an expression AST node, built by the precedence-climbing
// sub-parser.
type Expr struct {
	Kind     ExprKind
	Pos      srcpos.Location
	Op       string // operator text for ExprBinary/ExprUnary
	Text     string // variable/function name, or literal text
	Int      int
	Float    float64
	Bool     bool
	IsFloat  bool
	Left     *Expr
	Right    *Expr
	Args     []*Expr // function call arguments
}

// ExprKind tags the variant held by an Expr.
type ExprKind int

const (
	ExprLiteralInt ExprKind = iota
	ExprLiteralFloat
	ExprLiteralString
	ExprLiteralBool
	ExprVariable
	ExprBinary
	ExprUnary
	ExprCall
)

// tokenKind is a local alias for lex.Kind, usable without a lex.
// prefix.
type tokenKind = lex.Kind
