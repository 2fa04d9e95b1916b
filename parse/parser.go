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

import (
	"github.com/db47h/tweezer/lex"
)

// Parser drives the grammar one merged token of lookahead at a time: at
// every choice point the current token kind picks the production to
// expand, exactly as a table-driven LL(1) engine would look up
// (non-terminal, lookahead) in a projection table — here the table is
// folded into Go's switch statements instead of held as data, which
// keeps each production's recovery behavior next to its recognition
// logic.
type Parser struct {
	m    *lex.Merger
	tok  lex.Token
	errs ErrParse
}

// New creates a Parser over src (normally a *lex.Merger wrapping a
// *lex.Lexer).
func New(src lex.Stream) *Parser {
	p := &Parser{m: lex.NewMerger(src)}
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.tok = p.m.Next()
}

func (p *Parser) error(msg string) {
	if len(p.errs) < maxErrors {
		p.errs = append(p.errs, parseError(p.tok.Pos, msg))
	}
}

func (p *Parser) expect(k lex.Kind) lex.Token {
	tok := p.tok
	if tok.Kind != k {
		p.error(errTokenDoNotMatch(tok.Pos, k, tok).Error())
	} else {
		p.advance()
	}
	return tok
}

// Parse consumes the whole token stream and returns the resulting Story.
// A non-nil error is always an ErrParse; parsing continues past the
// first mistake (skipping to the next "::" passage header) so a single
// run can report more than one syntax error.
func (p *Parser) Parse() (*Story, error) {
	story := &Story{}
	for p.tok.Kind != lex.TokEOF {
		if p.tok.Kind != lex.TokPassageName {
			p.error("expected passage header")
			p.skipToNextPassage()
			continue
		}
		story.Passages = append(story.Passages, p.parsePassage())
	}
	for _, ps := range story.Passages {
		foldConstants(ps.Body)
	}
	if len(p.errs) > 0 {
		return story, p.errs
	}
	return story, nil
}

func (p *Parser) skipToNextPassage() {
	for p.tok.Kind != lex.TokEOF && p.tok.Kind != lex.TokPassageName {
		p.advance()
	}
}

func (p *Parser) parsePassage() *Passage {
	tok := p.expect(lex.TokPassageName)
	pas := &Passage{Name: tok.Text, Pos: tok.Pos}
	if p.tok.Kind == lex.TokTagStart {
		p.advance()
		for p.tok.Kind == lex.TokTag {
			pas.Tags = append(pas.Tags, p.tok.Text)
			p.advance()
		}
		p.expect(lex.TokTagEnd)
	}
	pas.Body = p.parseBody(lex.TokPassageName)
	return pas
}

// parseBody parses passage/branch content up to (but not consuming) a
// token of stop kind or TokEOF, or a closing macro keyword (TokElseIf,
// TokElse, TokEndIf, TokEndSilently, TokEndNobr) whose "<<" parseMacro
// has already consumed.
func (p *Parser) parseBody(stop lex.Kind) []*Node {
	var nodes []*Node
	for {
		switch p.tok.Kind {
		case lex.TokEOF, stop, lex.TokElseIf, lex.TokElse, lex.TokEndIf, lex.TokEndSilently, lex.TokEndNobr:
			return nodes
		}
		n := p.parseNode()
		if n != nil {
			nodes = append(nodes, n)
		}
	}
}

func (p *Parser) parseNode() *Node {
	tok := p.tok
	switch tok.Kind {
	case lex.TokText:
		p.advance()
		return &Node{Kind: NodeText, Pos: tok.Pos, Text: tok.Text}
	case lex.TokNewLine:
		p.advance()
		return &Node{Kind: NodeText, Pos: tok.Pos, Text: "\n"}
	case lex.TokFormatBoldStart, lex.TokFormatItalicStart, lex.TokFormatUnderStart,
		lex.TokFormatStrikeStart, lex.TokFormatSubStart, lex.TokFormatSupStart:
		return p.parseFormatPair(tok)
	case lex.TokFormatMonoStart:
		p.advance()
		n := &Node{Kind: NodeFormatMono, Pos: tok.Pos}
		for p.tok.Kind != lex.TokFormatMonoEnd && p.tok.Kind != lex.TokEOF {
			n.Children = append(n.Children, p.parseNode())
		}
		p.expect(lex.TokFormatMonoEnd)
		return n
	case lex.TokFormatBulList:
		p.advance()
		return &Node{Kind: NodeFormatBulList, Pos: tok.Pos, Children: p.parseLineBody()}
	case lex.TokFormatNumbList:
		p.advance()
		return &Node{Kind: NodeFormatNumbList, Pos: tok.Pos, Children: p.parseLineBody()}
	case lex.TokFormatIndentBlock:
		p.advance()
		return &Node{Kind: NodeFormatIndentBlock, Pos: tok.Pos, Children: p.parseLineBody()}
	case lex.TokFormatHorizontalLine:
		p.advance()
		return &Node{Kind: NodeFormatHorizontalLine, Pos: tok.Pos}
	case lex.TokFormatHeading:
		p.advance()
		return &Node{Kind: NodeFormatHeading, Pos: tok.Pos, Rank: tok.Int, Children: p.parseLineBody()}
	case lex.TokPassageLink:
		return p.parseLink(tok)
	case lex.TokMacroStart:
		return p.parseMacro()
	default:
		p.error("unexpected token " + tok.String())
		p.advance()
		return nil
	}
}

// parseLineBody collects the rest of the current line as children of a
// block-level marker (bullet, numbered item, indent, heading).
func (p *Parser) parseLineBody() []*Node {
	var nodes []*Node
	for p.tok.Kind != lex.TokNewLine && p.tok.Kind != lex.TokEOF {
		n := p.parseNode()
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (p *Parser) parseFormatPair(start lex.Token) *Node {
	var kind NodeKind
	var end lex.Kind
	switch start.Kind {
	case lex.TokFormatBoldStart:
		kind, end = NodeFormatBold, lex.TokFormatBoldEnd
	case lex.TokFormatItalicStart:
		kind, end = NodeFormatItalic, lex.TokFormatItalicEnd
	case lex.TokFormatUnderStart:
		kind, end = NodeFormatUnder, lex.TokFormatUnderEnd
	case lex.TokFormatStrikeStart:
		kind, end = NodeFormatStrike, lex.TokFormatStrikeEnd
	case lex.TokFormatSubStart:
		kind, end = NodeFormatSub, lex.TokFormatSubEnd
	case lex.TokFormatSupStart:
		kind, end = NodeFormatSup, lex.TokFormatSupEnd
	}
	p.advance()
	n := &Node{Kind: kind, Pos: start.Pos}
	for p.tok.Kind != end && p.tok.Kind != lex.TokEOF && p.tok.Kind != lex.TokNewLine {
		n.Children = append(n.Children, p.parseNode())
	}
	if p.tok.Kind == end {
		p.advance()
	} else {
		p.error("unterminated format marker")
	}
	return n
}

func (p *Parser) parseLink(tok lex.Token) *Node {
	n := &Node{Kind: NodeLink, Pos: tok.Pos, Text: tok.Text, Target: tok.Text2}
	p.advance()
	if p.tok.Kind == lex.TokVarSetStart {
		p.advance()
		for p.tok.Kind != lex.TokVarSetEnd && p.tok.Kind != lex.TokEOF {
			if p.tok.Kind == lex.TokSemiColon {
				p.advance()
				continue
			}
			n.Children = append(n.Children, p.parseSetAssignment())
		}
		p.expect(lex.TokVarSetEnd)
	}
	return n
}

func (p *Parser) parseSetAssignment() *Node {
	tok := p.expect(lex.TokAssign)
	expr := p.parseExpr()
	return &Node{Kind: NodeSet, Pos: tok.Pos, Text: tok.Text, Expr: expr}
}

func (p *Parser) parseMacro() *Node {
	start := p.tok
	p.advance() // consume TokMacroStart
	var n *Node
	switch p.tok.Kind {
	case lex.TokSet:
		p.advance()
		n = p.parseSetAssignment()
	case lex.TokIf:
		n = p.parseIf(start)
		return n // parseIf consumes its own closing >>
	case lex.TokPrint:
		p.advance()
		n = &Node{Kind: NodePrint, Pos: start.Pos, Expr: p.parseExpr()}
	case lex.TokDisplay:
		p.advance()
		nameTok := p.expect(lex.TokText)
		n = &Node{Kind: NodeDisplay, Pos: start.Pos, Text: nameTok.Text}
	case lex.TokMacroVar:
		tok := p.tok
		p.advance()
		n = &Node{Kind: NodePrint, Pos: start.Pos, Expr: &Expr{Kind: ExprVariable, Pos: tok.Pos, Text: tok.Text}}
	case lex.TokSilently:
		p.advance()
		p.expect(lex.TokMacroEnd)
		body := p.parseBody(lex.TokEOF)
		n = &Node{Kind: NodeSilently, Pos: start.Pos, Children: body}
		p.expect(lex.TokEndSilently)
		p.expect(lex.TokMacroEnd)
		return n
	case lex.TokNobr:
		p.advance()
		p.expect(lex.TokMacroEnd)
		body := p.parseBody(lex.TokEOF)
		n = &Node{Kind: NodeNobr, Pos: start.Pos, Children: body}
		p.expect(lex.TokEndNobr)
		p.expect(lex.TokMacroEnd)
		return n
	case lex.TokElseIf, lex.TokElse, lex.TokEndIf, lex.TokEndSilently, lex.TokEndNobr:
		// A closing keyword ends the enclosing if/silently/nobr body: its
		// "<<" is consumed here and the keyword stays the current token
		// for parseBody to stop on and the enclosing construct to match.
		return nil
	default:
		p.error("unexpected macro keyword " + p.tok.String())
		for p.tok.Kind != lex.TokMacroEnd && p.tok.Kind != lex.TokEOF {
			p.advance()
		}
	}
	p.expect(lex.TokMacroEnd)
	return n
}

// parseIf parses "<<if c>> body (<<elseif c>> body)* (<<else>> body)? <<endif>>".
func (p *Parser) parseIf(start lex.Token) *Node {
	p.advance() // consume TokIf
	n := &Node{Kind: NodeIf, Pos: start.Pos}
	cond := p.parseExpr()
	p.expect(lex.TokMacroEnd)
	body := p.parseBody(lex.TokEOF)
	n.Branches = append(n.Branches, IfBranch{Expr: cond, Body: body})

	for p.tok.Kind == lex.TokElseIf {
		p.advance()
		cond := p.parseExpr()
		p.expect(lex.TokMacroEnd)
		body := p.parseBody(lex.TokEOF)
		n.Branches = append(n.Branches, IfBranch{Expr: cond, Body: body})
	}
	if p.tok.Kind == lex.TokElse {
		p.advance()
		p.expect(lex.TokMacroEnd)
		body := p.parseBody(lex.TokEOF)
		n.Branches = append(n.Branches, IfBranch{Expr: nil, Body: body})
	}
	p.expect(lex.TokEndIf)
	p.expect(lex.TokMacroEnd)
	return n
}
