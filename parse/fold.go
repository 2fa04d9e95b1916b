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

// foldConstants walks a passage body looking for literal-only function
// calls codegen has no sound way to simplify once an expression has
// lost track of which operands were literal. random(from, to) with
// from == to is the only such case: every seed produces the same
// value, so it folds to that value outright.
func foldConstants(body []*Node) {
	for _, n := range body {
		foldNode(n)
	}
}

func foldNode(n *Node) {
	n.Expr = foldExpr(n.Expr)
	for i := range n.Branches {
		n.Branches[i].Expr = foldExpr(n.Branches[i].Expr)
		foldConstants(n.Branches[i].Body)
	}
	foldConstants(n.Children)
}

// foldExpr folds e's subexpressions bottom-up, then tries to fold e
// itself.
func foldExpr(e *Expr) *Expr {
	if e == nil {
		return nil
	}
	e.Left = foldExpr(e.Left)
	e.Right = foldExpr(e.Right)
	for i, a := range e.Args {
		e.Args[i] = foldExpr(a)
	}

	if e.Kind != ExprCall || e.Text != "random" || len(e.Args) != 2 {
		return e
	}
	from, to := e.Args[0], e.Args[1]
	if from.Kind != ExprLiteralInt || to.Kind != ExprLiteralInt || from.Int != to.Int {
		return e
	}
	return &Expr{Kind: ExprLiteralInt, Pos: e.Pos, Int: from.Int}
}
