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

package parse

import "github.com/db47h/tweezer/lex"

// binding power table for infix operators, highest binds tightest. This
// is the same precedence climbing a shunting-yard parser encodes as a
// table of operator priorities; recursion replaces the explicit operand
// and operator stacks.
var precedence = map[string]int{
	"or": 1, "and": 2,
	"==": 3, "!=": 3, "<": 3, "<=": 3, ">": 3, ">=": 3,
	"+": 4, "-": 4,
	"*": 5, "/": 5, "%": 5,
}

// parseExpr parses a full expression at the lowest precedence level.
func (p *Parser) parseExpr() *Expr {
	return p.parseBinary(0)
}

func (p *Parser) parseBinary(minPrec int) *Expr {
	left := p.parseUnary()
	for {
		op, prec, ok := p.peekBinaryOp()
		if !ok || prec < minPrec {
			return left
		}
		pos := p.tok.Pos
		p.advance()
		right := p.parseBinary(prec + 1)
		left = &Expr{Kind: ExprBinary, Pos: pos, Op: op, Left: left, Right: right}
	}
}

func (p *Parser) peekBinaryOp() (string, int, bool) {
	switch p.tok.Kind {
	case lex.TokNumOp, lex.TokCompOp, lex.TokLogOp:
		if prec, ok := precedence[p.tok.Text]; ok {
			return p.tok.Text, prec, true
		}
	}
	return "", 0, false
}

func (p *Parser) parseUnary() *Expr {
	if p.tok.Kind == lex.TokUnaryOp || (p.tok.Kind == lex.TokNumOp && p.tok.Text == "-") {
		op := p.tok.Text
		pos := p.tok.Pos
		p.advance()
		operand := p.parseUnary()
		return &Expr{Kind: ExprUnary, Pos: pos, Op: op, Left: operand}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() *Expr {
	tok := p.tok
	switch tok.Kind {
	case lex.TokInt:
		p.advance()
		return &Expr{Kind: ExprLiteralInt, Pos: tok.Pos, Int: tok.Int}
	case lex.TokFloat:
		p.advance()
		return &Expr{Kind: ExprLiteralFloat, Pos: tok.Pos, Float: tok.Float, IsFloat: true}
	case lex.TokString:
		p.advance()
		return &Expr{Kind: ExprLiteralString, Pos: tok.Pos, Text: tok.Text}
	case lex.TokBoolean:
		p.advance()
		return &Expr{Kind: ExprLiteralBool, Pos: tok.Pos, Bool: tok.Bool}
	case lex.TokVariable:
		p.advance()
		return &Expr{Kind: ExprVariable, Pos: tok.Pos, Text: tok.Text}
	case lex.TokFunction:
		p.advance()
		p.expect(lex.TokBracketOpen)
		call := &Expr{Kind: ExprCall, Pos: tok.Pos, Text: tok.Text}
		if p.tok.Kind != lex.TokBracketClose {
			call.Args = append(call.Args, p.parseExpr())
			for p.tok.Kind == lex.TokComma {
				p.advance()
				call.Args = append(call.Args, p.parseExpr())
			}
		}
		p.expect(lex.TokBracketClose)
		return call
	case lex.TokBracketOpen:
		p.advance()
		inner := p.parseExpr()
		p.expect(lex.TokBracketClose)
		return inner
	default:
		p.error("expected expression, got " + tok.String())
		p.advance()
		return &Expr{Kind: ExprLiteralBool, Pos: tok.Pos, Bool: false}
	}
}
