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
	"github.com/db47h/tweezer/parse"
	"github.com/db47h/tweezer/symtab"
)

// evalExpr lowers e to a sequence of ops that leaves its value in the
// returned temp slot. Every evalExpr caller is responsible for
// freeing that slot once it has consumed the value.
func evalExpr(ctx *Context, e *parse.Expr) (int, []ZOp) {
	switch e.Kind {
	case parse.ExprLiteralInt:
		dest := ctx.allocTemp()
		return dest, []ZOp{{Kind: OpLoadConstInt, Dest: dest, Int: e.Int}}

	case parse.ExprLiteralBool:
		dest := ctx.allocTemp()
		v := 0
		if e.Bool {
			v = 1
		}
		return dest, []ZOp{{Kind: OpLoadConstInt, Dest: dest, Int: v}}

	case parse.ExprLiteralFloat:
		// The Z-Machine's word-sized globals have no native float type;
		// Twee story variables that reach codegen as floats are always
		// the result of a literal like "1.0" used in an integer
		// context, so truncating here matches the original's
		// IntegerTarget coercion for arithmetic contexts.
		dest := ctx.allocTemp()
		return dest, []ZOp{{Kind: OpLoadConstInt, Dest: dest, Int: int(e.Float)}}

	case parse.ExprLiteralString:
		dest := ctx.allocTemp()
		return dest, []ZOp{{Kind: OpPrintText, Text: e.Text, Dest: dest}}

	case parse.ExprVariable:
		slot, _ := ctx.Syms.Slot(e.Text)
		dest := ctx.allocTemp()
		return dest, []ZOp{{Kind: OpLoadVar, Dest: dest, Left: slot}}

	case parse.ExprUnary:
		return evalUnary(ctx, e)

	case parse.ExprBinary:
		return evalBinary(ctx, e)

	case parse.ExprCall:
		return evalCall(ctx, e)
	}
	dest := ctx.allocTemp()
	return dest, []ZOp{{Kind: OpLoadConstInt, Dest: dest, Int: 0}}
}

func evalUnary(ctx *Context, e *parse.Expr) (int, []ZOp) {
	operand, ops := evalExpr(ctx, e.Left)
	dest := ctx.allocTemp()
	ops = append(ops, ZOp{Kind: OpEvalUnary, Text: e.Op, Dest: dest, Left: operand})
	ctx.freeTemp(operand)
	return dest, ops
}

func evalBinary(ctx *Context, e *parse.Expr) (int, []ZOp) {
	left, ops := evalExpr(ctx, e.Left)
	right, rightOps := evalExpr(ctx, e.Right)
	ops = append(ops, rightOps...)

	// "+" between two statically string-typed operands concatenates at
	// runtime instead of adding; every other operator, and every other
	// "+" operand combination, assembles to an integer op.
	if e.Op == "+" && staticType(ctx, e.Left) == symtab.TypeString && staticType(ctx, e.Right) == symtab.TypeString {
		ops = append(ops, ZOp{Kind: OpConcatStrings, Dest: left, Left: left, Right: right})
		ctx.freeTemp(right)
		return left, ops
	}

	ops = append(ops, ZOp{Kind: OpEvalBinary, Text: e.Op, Dest: left, Left: left, Right: right})
	ctx.freeTemp(right)
	return left, ops
}

// evalCall compiles a function call. random(from, to) is the only
// supported builtin, expanding to (random_in_1..range) + from - 1
// where range = to - from + 1.
func evalCall(ctx *Context, e *parse.Expr) (int, []ZOp) {
	if e.Text == "random" && len(e.Args) == 2 {
		from, ops := evalExpr(ctx, e.Args[0])
		to, toOps := evalExpr(ctx, e.Args[1])
		ops = append(ops, toOps...)

		rangeSlot := ctx.allocTemp()
		ops = append(ops, ZOp{Kind: OpEvalBinary, Text: "-", Dest: rangeSlot, Left: to, Right: from})
		ops = append(ops, ZOp{Kind: OpEvalBinary, Text: "+", Dest: rangeSlot, Left: rangeSlot, Right: 1, RightIsConst: true})

		rnd := ctx.allocTemp()
		ops = append(ops, ZOp{Kind: OpRandom, Dest: rnd, Left: rangeSlot})
		ctx.freeTemp(rangeSlot)
		ctx.freeTemp(to)

		ops = append(ops, ZOp{Kind: OpEvalBinary, Text: "+", Dest: rnd, Left: rnd, Right: from})
		ops = append(ops, ZOp{Kind: OpEvalBinary, Text: "-", Dest: rnd, Left: rnd, Right: 1, RightIsConst: true})
		ctx.freeTemp(from)
		return rnd, ops
	}

	// Unknown functions fold to 0. random(from, to) with from == to is
	// folded to a literal by the parser before codegen ever sees it
	// (see parse.foldConstants); any other unsupported builtin reaching
	// here has no defined behavior to lower.
	dest := ctx.allocTemp()
	return dest, []ZOp{{Kind: OpLoadConstInt, Dest: dest, Int: 0}}
}
