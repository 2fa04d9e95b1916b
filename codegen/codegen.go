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

import (
	"strconv"

	"github.com/db47h/tweezer/config"
	"github.com/db47h/tweezer/parse"
	"github.com/db47h/tweezer/symtab"
)

// Routine is one passage's lowered instruction list.
type Routine struct {
	Name string
	Ops  []ZOp
}

// Result is the output of Generate: one routine per passage, plus the
// story's designated start passage.
type Result struct {
	Routines []Routine
	Start    string
}

// Generate walks every passage in story and lowers it to ZOp routines.
// It records every passage name in syms (for link/display resolution)
// before walking any body, so forward references to passages later in
// the source compile correctly. cfg may be nil, in which case every
// option defaults to off.
func Generate(story *parse.Story, syms *symtab.Table, cfg *config.Config) (*Result, error) {
	for _, p := range story.Passages {
		syms.AddPassage(p.Name)
	}

	ctx := NewContext(syms, cfg)
	res := &Result{Start: "Start"}

	for _, p := range story.Passages {
		ops := []ZOp{{Kind: OpRoutineStart, Text: p.Name}}
		ops = append(ops, genBody(ctx, p.Body)...)
		// Every passage's body ends with a chance to follow one of the
		// links it registered; system_check_links returns immediately if
		// this routine was entered via <<display>>, and ends the story
		// if no links are registered at all.
		ops = append(ops, ZOp{Kind: OpCallRoutine, Text: "system_check_links"})
		ops = append(ops, ZOp{Kind: OpReturn})
		res.Routines = append(res.Routines, Routine{Name: p.Name, Ops: ops})
	}

	if err := checkReachability(story, ctx, cfg); err != nil {
		return res, err
	}
	return res, nil
}

// genBody lowers a sequence of sibling nodes, e.g. a passage body or
// an if-branch's body.
func genBody(ctx *Context, nodes []*parse.Node) []ZOp {
	var ops []ZOp
	for _, n := range nodes {
		ops = append(ops, genNode(ctx, n)...)
	}
	return ops
}

func genNode(ctx *Context, n *parse.Node) []ZOp {
	switch n.Kind {
	case parse.NodeText:
		return genText(ctx, n.Text)

	case parse.NodeFormatBold:
		return genFormatted(ctx, n.Children, func(f *FormattingState) { f.Bold = !f.Bold })
	case parse.NodeFormatItalic:
		return genFormatted(ctx, n.Children, func(f *FormattingState) { f.Italic = !f.Italic })
	case parse.NodeFormatUnder, parse.NodeFormatStrike, parse.NodeFormatSub, parse.NodeFormatSup:
		// No dedicated underline/strike/sub/sup style bit exists in the
		// Z-Machine's four-flag text style word. The default fallback
		// reuses the nearest available style bit (inverse video); with
		// UnsupportedFormatting set, a plain textual marker is printed
		// around the content instead, for interpreters whose screen
		// model doesn't show inverse video distinctly either.
		if ctx.Cfg != nil && ctx.Cfg.UnsupportedFormatting {
			open, close := formatMarkers(n.Kind)
			return genDelimited(ctx, open, close, n.Children)
		}
		return genFormatted(ctx, n.Children, func(f *FormattingState) { f.Inverted = !f.Inverted })
	case parse.NodeFormatMono:
		return genFormatted(ctx, n.Children, func(f *FormattingState) { f.Mono = !f.Mono })

	case parse.NodeFormatBulList:
		return genLinePrefixed(ctx, "* ", n.Children)
	case parse.NodeFormatNumbList:
		return genLinePrefixed(ctx, "# ", n.Children)
	case parse.NodeFormatIndentBlock:
		return genLinePrefixed(ctx, "\t", n.Children)
	case parse.NodeFormatHorizontalLine:
		if ctx.isSilent() {
			return nil
		}
		return []ZOp{{Kind: OpNewline}, {Kind: OpPrintText, Text: "----------------------------------------"}, {Kind: OpNewline}}
	case parse.NodeFormatHeading:
		return genHeading(ctx, n)

	case parse.NodeLink:
		return genLink(ctx, n)

	case parse.NodeSet:
		return genSet(ctx, n)

	case parse.NodeIf:
		return genIf(ctx, n)

	case parse.NodePrint:
		return genPrint(ctx, n.Expr)

	case parse.NodeDisplay:
		return genDisplay(ctx, n.Text)

	case parse.NodeSilently:
		ctx.silentDepth++
		ops := genBody(ctx, n.Children)
		ctx.silentDepth--
		return ops

	case parse.NodeNobr:
		ctx.nobrDepth++
		ops := genBody(ctx, n.Children)
		ctx.nobrDepth--
		return ops
	}
	return nil
}

func genText(ctx *Context, text string) []ZOp {
	if ctx.isSilent() {
		return nil
	}
	if text == "\n" {
		if ctx.isNobr() {
			return []ZOp{{Kind: OpPrintText, Text: " "}}
		}
		return []ZOp{{Kind: OpNewline}}
	}
	return splitUnicodeRuns(text)
}

// splitUnicodeRuns breaks text into maximal ASCII and non-ASCII runs,
// since the two print through entirely different paths at assembly
// time: the native 3-alphabet Z-character encoding versus the Unicode
// translation table and its runtime fallback.
func splitUnicodeRuns(text string) []ZOp {
	var ops []ZOp
	runes := []rune(text)
	for i := 0; i < len(runes); {
		ascii := runes[i] <= 126
		j := i + 1
		for j < len(runes) && (runes[j] <= 126) == ascii {
			j++
		}
		s := string(runes[i:j])
		if ascii {
			ops = append(ops, ZOp{Kind: OpPrintText, Text: s})
		} else {
			ops = append(ops, ZOp{Kind: OpPrintUnicodeText, Text: s})
		}
		i = j
	}
	return ops
}

func genFormatted(ctx *Context, children []*parse.Node, toggle func(*FormattingState)) []ZOp {
	cur := ctx.format.current()
	toggle(&cur)
	ctx.format.push(cur)
	var ops []ZOp
	if !ctx.isSilent() {
		ops = append(ops, cur.styleOp())
	}
	ops = append(ops, genBody(ctx, children)...)
	ctx.format.pop()
	if !ctx.isSilent() {
		ops = append(ops, ctx.format.current().styleOp())
	}
	return ops
}

func genLinePrefixed(ctx *Context, prefix string, children []*parse.Node) []ZOp {
	if ctx.isSilent() {
		return genBody(ctx, children)
	}
	ops := []ZOp{{Kind: OpPrintText, Text: prefix}}
	ops = append(ops, genBody(ctx, children)...)
	ops = append(ops, ZOp{Kind: OpNewline})
	return ops
}

// formatMarkers returns the open/close textual fallback markers for a
// style the Z-Machine can't render natively.
func formatMarkers(kind parse.NodeKind) (open, close string) {
	switch kind {
	case parse.NodeFormatUnder:
		return "____", "____"
	case parse.NodeFormatStrike:
		return "====", "===="
	case parse.NodeFormatSub:
		return "_{", "}"
	case parse.NodeFormatSup:
		return "^{", "}"
	}
	return "", ""
}

// genDelimited wraps children's output in a pair of literal text
// markers instead of a native style bit.
func genDelimited(ctx *Context, open, close string, children []*parse.Node) []ZOp {
	if ctx.isSilent() {
		return genBody(ctx, children)
	}
	ops := []ZOp{{Kind: OpPrintText, Text: open}}
	ops = append(ops, genBody(ctx, children)...)
	ops = append(ops, ZOp{Kind: OpPrintText, Text: close})
	return ops
}

func genHeading(ctx *Context, n *parse.Node) []ZOp {
	if n.Rank >= 3 {
		prefix := ""
		for i := 0; i < n.Rank; i++ {
			prefix += "#"
		}
		return genLinePrefixed(ctx, prefix+" ", n.Children)
	}
	if ctx.isSilent() {
		return nil
	}
	bold := ctx.format.current()
	bold.Bold = true
	rule := "="
	if n.Rank == 2 {
		rule = "-"
	}
	var ops []ZOp
	ops = append(ops, ZOp{Kind: OpNewline}, bold.styleOp())
	ops = append(ops, genBody(ctx, n.Children)...)
	ops = append(ops, ZOp{Kind: OpNewline}, ZOp{Kind: OpPrintText, Text: rule}, ZOp{Kind: OpNewline}, ctx.format.current().styleOp())
	return ops
}

// genLink compiles "[[display|target]]" (optionally with a var-set
// block) into a system_add_link call; the link's numeric index is
// assigned and printed by the runtime at story-play time, so codegen
// only needs to register the target and stash the var-set assignments
// as an anonymous setter routine's body.
func genLink(ctx *Context, n *parse.Node) []ZOp {
	ctx.markReferenced(n.Target)
	var setter []ZOp
	for _, child := range n.Children {
		setter = append(setter, genSet(ctx, child)...)
	}
	op := ZOp{Kind: OpLink, Text: n.Text, Target: n.Target, Args: setter}
	if ctx.isSilent() {
		return nil
	}
	return []ZOp{op}
}

func genSet(ctx *Context, n *parse.Node) []ZOp {
	slot, _ := ctx.Syms.Slot(n.Text)
	dest, ops := evalExpr(ctx, n.Expr)
	ops = append(ops, ZOp{Kind: OpStore, Dest: slot, Left: dest, LeftIsConst: false})
	ctx.freeTemp(dest)
	ctx.Syms.SetType(n.Text, staticType(ctx, n.Expr))
	return ops
}

func genPrint(ctx *Context, e *parse.Expr) []ZOp {
	if ctx.isSilent() {
		return nil
	}
	if e.Kind == parse.ExprLiteralString {
		return splitUnicodeRuns(e.Text)
	}
	dest, ops := evalExpr(ctx, e)
	if staticType(ctx, e) == symtab.TypeString {
		ops = append(ops, ZOp{Kind: OpPrintString, Dest: dest})
	} else {
		ops = append(ops, ZOp{Kind: OpPrintVar, Dest: dest})
	}
	ctx.freeTemp(dest)
	return ops
}

func genDisplay(ctx *Context, passage string) []ZOp {
	ctx.markReferenced(passage)
	return []ZOp{
		{Kind: OpStore, Dest: symtab.LinkCounterSlot, Left: 1, LeftIsConst: true},
		{Kind: OpCallRoutine, Text: passage},
		{Kind: OpStore, Dest: symtab.LinkCounterSlot, Left: 0, LeftIsConst: true},
	}
}

// genIf lowers an if/elseif/else chain to the branch/jump/label
// pattern: each branch's condition is evaluated into a temp, a
// branch-if-zero skips straight to the next branch's label, and a
// trailing jump after a taken branch's body skips to the label past
// the whole chain.
func genIf(ctx *Context, n *parse.Node) []ZOp {
	id := ctx.Ids.Next()
	afterAll := "after_else_" + strconv.Itoa(id)
	branchLabel := func(i int) string {
		if i == 0 {
			return "if_" + strconv.Itoa(id)
		}
		return "after_if_" + strconv.Itoa(id) + "_" + strconv.Itoa(i)
	}

	var ops []ZOp
	for i, br := range n.Branches {
		isLast := i == len(n.Branches)-1
		nextLabel := afterAll
		if !isLast {
			nextLabel = branchLabel(i + 1)
		}
		if i > 0 {
			ops = append(ops, ZOp{Kind: OpLabel, Text: branchLabel(i)})
		}
		if br.Expr != nil {
			dest, condOps := evalExpr(ctx, br.Expr)
			ops = append(ops, condOps...)
			ops = append(ops, ZOp{Kind: OpBranchIfZero, Dest: dest, Text: nextLabel})
			ctx.freeTemp(dest)
		}
		ops = append(ops, genBody(ctx, br.Body)...)
		if !isLast {
			ops = append(ops, ZOp{Kind: OpJump, Text: afterAll})
		}
	}
	ops = append(ops, ZOp{Kind: OpLabel, Text: afterAll})
	return ops
}
