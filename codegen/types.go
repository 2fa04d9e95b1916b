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

// staticType infers e's compile-time type the way the original
// compiler's per-symbol type table does: literals carry their obvious
// type, a variable carries whatever type its most recent textual
// assignment gave it, and "+" only propagates String when both sides
// are themselves String — every other operator, and every other "+"
// operand combination, is integer arithmetic.
func staticType(ctx *Context, e *parse.Expr) symtab.VarType {
	if e == nil {
		return symtab.TypeInt
	}
	switch e.Kind {
	case parse.ExprLiteralString:
		return symtab.TypeString
	case parse.ExprLiteralBool:
		return symtab.TypeBool
	case parse.ExprVariable:
		return ctx.Syms.TypeOf(e.Text)
	case parse.ExprBinary:
		if e.Op == "+" && staticType(ctx, e.Left) == symtab.TypeString && staticType(ctx, e.Right) == symtab.TypeString {
			return symtab.TypeString
		}
		return symtab.TypeInt
	case parse.ExprUnary:
		if e.Op == "not" || e.Op == "!" {
			return symtab.TypeBool
		}
		return symtab.TypeInt
	default:
		return symtab.TypeInt
	}
}
