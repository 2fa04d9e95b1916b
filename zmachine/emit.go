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

package zmachine

import (
	"fmt"

	"github.com/db47h/tweezer/codegen"
	"github.com/db47h/tweezer/symtab"
)

// globalOperand converts a symtab global-variable slot into the
// operand byte that refers to it: Z-Machine variable operands 1-15
// name routine locals (tweezer's generated routines never use them),
// 16-255 name globals 0-239, so slot N is addressed as byte 16+N.
func globalOperand(slot int) byte {
	return byte(16 + slot)
}

// emitRoutine lowers one codegen.Routine's ZOp stream to bytes.
func (z *Zfile) emitRoutine(r codegen.Routine) error {
	for _, op := range r.Ops {
		if err := z.emitOp(op); err != nil {
			return fmt.Errorf("routine %q: %w", r.Name, err)
		}
	}
	return nil
}

func (z *Zfile) emitOp(op codegen.ZOp) error {
	switch op.Kind {
	case codegen.OpRoutineStart:
		return z.routine(op.Text, 15)

	case codegen.OpReturn:
		z.data = append(z.data, opRet(0)...)

	case codegen.OpLabel:
		return z.label(op.Text)

	case codegen.OpPrintText:
		if op.Dest == 0 {
			idx := len(z.data)
			z.data = append(z.data, op0(0x02)...)
			z.writeBytesAt(idx+1, Encode(op.Text))
		} else {
			// A string literal in a non-print expression context: store
			// its packed address into Dest instead of printing it, so
			// later code can print_paddr it or pass it to a runtime
			// routine expecting a string reference.
			b := op2(0x0d, []ArgType{Reference, LargeConst})
			b = append(b, globalOperand(op.Dest))
			z.data = append(z.data, b...)
			z.internString(op.Text, false)
		}

	case codegen.OpPrintVar:
		z.data = append(z.data, opPrintNumVar(globalOperand(op.Dest))...)

	case codegen.OpPrintNum:
		idx := len(z.data)
		z.data = append(z.data, op0(0x02)...)
		z.writeBytesAt(idx+1, Encode(fmt.Sprintf("%d", op.Int)))

	case codegen.OpNewline:
		z.data = append(z.data, opNewline()...)

	case codegen.OpSetColor:
		fg, bg := byte(9), byte(2)
		if z.cfg != nil && z.cfg.BrightMode {
			fg, bg = bg, fg
		}
		z.data = append(z.data, opSetColor(fg, bg)...)

	case codegen.OpSetTextStyle:
		z.data = append(z.data, opSetTextStyle(op.Style[0], op.Style[1], op.Style[2], op.Style[3])...)

	case codegen.OpStore:
		if op.LeftIsConst {
			z.data = append(z.data, opStoreU16(globalOperand(op.Dest), uint16(op.Left))...)
			delete(z.stringSlotBuf, globalOperand(op.Dest))
		} else {
			z.data = append(z.data, opStoreVar(globalOperand(op.Dest), globalOperand(op.Left))...)
			z.copyStringTag(globalOperand(op.Left), globalOperand(op.Dest))
		}

	case codegen.OpLoadConstInt:
		z.data = append(z.data, opStoreU16(globalOperand(op.Dest), uint16(op.Int))...)
		delete(z.stringSlotBuf, globalOperand(op.Dest))

	case codegen.OpLoadVar:
		z.data = append(z.data, opStoreVar(globalOperand(op.Dest), globalOperand(op.Left))...)
		z.copyStringTag(globalOperand(op.Left), globalOperand(op.Dest))

	case codegen.OpEvalUnary:
		return z.emitUnary(op)

	case codegen.OpEvalBinary:
		return z.emitBinary(op)

	case codegen.OpRandom:
		z.data = append(z.data, opRandom(globalOperand(op.Left), globalOperand(op.Dest), false)...)

	case codegen.OpJump:
		z.data = append(z.data, op1(0x0c, LargeConst)...)
		z.addJump(op.Text, Jump)

	case codegen.OpBranchIfZero:
		z.data = append(z.data, opCompareConst(0x01, globalOperand(op.Dest), 0)...)
		z.addJump(op.Text, Branch)

	case codegen.OpCallRoutine:
		z.data = append(z.data, op1(0x0f, LargeConst)...)
		z.addJump(op.Text, Routine)

	case codegen.OpIncVar:
		z.data = append(z.data, opInc(globalOperand(op.Dest))...)

	case codegen.OpLink:
		return z.emitLink(op)

	case codegen.OpPrintUnicodeText:
		z.emitUnicodeRun(op.Text)

	case codegen.OpConcatStrings:
		return z.emitConcat(op)

	case codegen.OpPrintString:
		return z.emitPrintString(op)

	default:
		return fmt.Errorf("zmachine: unsupported op kind %v", op.Kind)
	}
	return nil
}

func (z *Zfile) emitUnary(op codegen.ZOp) error {
	dest := globalOperand(op.Dest)
	left := globalOperand(op.Left)
	switch op.Text {
	case "-":
		z.data = append(z.data, opStoreU16(dest, 0)...)
		z.data = append(z.data, opSubVar(dest, left, dest)...)
	case "not", "!":
		z.data = append(z.data, opStoreU16(dest, 1)...)
		z.data = append(z.data, opSubVar(dest, left, dest)...)
	default:
		return fmt.Errorf("zmachine: unsupported unary operator %q", op.Text)
	}
	return nil
}

func (z *Zfile) emitBinary(op codegen.ZOp) error {
	dest := globalOperand(op.Dest)
	left := globalOperand(op.Left)

	switch op.Text {
	case "+":
		// String concatenation never reaches here: codegen's staticType
		// check routes it to OpConcatStrings instead (see emitConcat).
		// Op "+" only reaches emitBinary when neither operand is
		// statically string-typed, so a plain integer add is correct.
		if op.RightIsConst {
			z.data = append(z.data, opAdd(left, int16(op.Right), dest)...)
		} else {
			z.data = append(z.data, opAddVar(left, globalOperand(op.Right), dest)...)
		}
		return nil
	case "-":
		if op.RightIsConst {
			z.data = append(z.data, opSub(left, int16(op.Right), dest)...)
		} else {
			z.data = append(z.data, opSubVar(left, globalOperand(op.Right), dest)...)
		}
		return nil
	case "*":
		z.data = append(z.data, opMulVar(left, globalOperand(op.Right), dest)...)
		return nil
	case "/":
		z.data = append(z.data, opDivVar(left, globalOperand(op.Right), dest)...)
		return nil
	case "%":
		z.data = append(z.data, opModVar(left, globalOperand(op.Right), dest)...)
		return nil
	case "and", "&&":
		z.data = append(z.data, opAndVar(left, globalOperand(op.Right), dest)...)
		return nil
	case "or", "||":
		z.data = append(z.data, opOrVar(left, globalOperand(op.Right), dest)...)
		return nil
	}
	return z.emitCompare(op.Text, left, globalOperand(op.Right), dest)
}

// emitCompare materializes a comparison's 0/1 result in dest, since
// codegen treats every operator uniformly as value-producing and
// decides what to do with the result (branch, store, combine)
// afterwards, unlike the Z-Machine's native je/jl/jg which branch
// directly. <= and >= are synthesized as a two-way OR of jl/jg with
// je, matching how the original compiler built them from je+jl/jg.
func (z *Zfile) emitCompare(op string, arg1, arg2, dest byte) error {
	var primary byte
	var secondary byte
	hasSecondary := false
	invert := false

	switch op {
	case "==", "is", "eq":
		primary = 0x01
	case "!=", "neq":
		primary = 0x01
		invert = true
	case "<", "lt":
		primary = 0x02
	case ">", "gt":
		primary = 0x03
	case "<=", "lte":
		primary, secondary, hasSecondary = 0x02, 0x01, true
	case ">=", "gte":
		primary, secondary, hasSecondary = 0x03, 0x01, true
	default:
		return fmt.Errorf("zmachine: unsupported comparison operator %q", op)
	}

	trueLbl := z.synthLabel("true")
	endLbl := z.synthLabel("end")

	z.data = append(z.data, opCompareVar(primary, arg1, arg2)...)
	z.addJump(trueLbl, Branch)
	if hasSecondary {
		z.data = append(z.data, opCompareVar(secondary, arg1, arg2)...)
		z.addJump(trueLbl, Branch)
	}

	falseVal, trueVal := uint16(0), uint16(1)
	if invert {
		falseVal, trueVal = 1, 0
	}
	z.data = append(z.data, opStoreU16(dest, falseVal)...)
	z.data = append(z.data, op1(0x0c, LargeConst)...)
	z.addJump(endLbl, Jump)
	if err := z.label(trueLbl); err != nil {
		return err
	}
	z.data = append(z.data, opStoreU16(dest, trueVal)...)
	return z.label(endLbl)
}

// synthLabel returns a fresh, globally-unique label name for
// assembler-internal control flow (boolean materialization) that
// never needs to be referenced from codegen.
func (z *Zfile) synthLabel(tag string) string {
	z.synthCounter++
	return fmt.Sprintf("__synth_%s_%d", tag, z.synthCounter)
}

// emitLink compiles a passage link: its routine address (either the
// target passage directly, or an anonymous setter routine, when the
// link carries a var-set block, that assigns the variables and then
// calls the target; it is laid out inline and the passage's own code
// jumps over it) is registered with system_add_link first,
// which stashes it and bumps the link counter, then the displayed
// text prints inline followed by the link's bracketed 1-based index
// (the counter's post-increment value, i.e. exactly what
// system_add_link just assigned this link), so the player sees which
// digit to press. system_check_links reads that digit later and calls
// the registered routine. A link's target is never called directly
// from here — that would fire it immediately instead of offering it
// as a choice.
func (z *Zfile) emitLink(op codegen.ZOp) error {
	callee := op.Target
	if len(op.Args) > 0 {
		skip := z.synthLabel("linkskip")
		z.data = append(z.data, op1(0x0c, LargeConst)...)
		z.addJump(skip, Jump)
		callee = z.synthLabel("linksetter_" + op.Target)
		if err := z.routine(callee, 0); err != nil {
			return err
		}
		for _, setOp := range op.Args {
			if err := z.emitOp(setOp); err != nil {
				return err
			}
		}
		z.data = append(z.data, op1(0x0f, LargeConst)...)
		z.addJump(op.Target, Routine)
		z.data = append(z.data, opRet(0)...)
		if err := z.label(skip); err != nil {
			return err
		}
	}

	z.data = append(z.data, op2(0x1a, []ArgType{LargeConst, LargeConst})...)
	z.addJump("system_add_link", Routine)
	z.addJump(callee, Routine)

	idx := len(z.data)
	z.data = append(z.data, op0(0x02)...)
	z.writeBytesAt(idx+1, Encode(op.Text+"["))
	z.data = append(z.data, opPrintNumVar(globalOperand(symtab.TurnCounterSlot))...)
	idx = len(z.data)
	z.data = append(z.data, op0(0x02)...)
	z.writeBytesAt(idx+1, Encode("]"))
	return nil
}
