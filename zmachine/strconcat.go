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
)

// concatBufCount fixed scratch buffers let any single "+" string
// concatenation write its result somewhere distinct from both of its
// operands: an expression tree evaluates depth-first, so at most two
// buffer-backed strings are ever live as one concatenation's source
// operands, and pigeonholing at most 2 sources into 3 buffers always
// leaves one free for the destination.
const concatBufCount = 3

// concatBufSize is a 2-byte length prefix plus up to 128 data bytes,
// the same length-prefixed layout routinePrintBuffer reads back and
// output_stream 3 writes.
const concatBufSize = 130

// emitConcat runtime-concatenates two string operands, each either a
// plain packed literal address or itself a previous concatenation's
// scratch buffer, into a free scratch buffer. It redirects printing
// to that buffer with output_stream 3, prints both operands in order, then stops the redirect and tags Dest's slot
// with the buffer it used.
func (z *Zfile) emitConcat(op codegen.ZOp) error {
	leftOperand := globalOperand(op.Left)
	rightOperand := globalOperand(op.Right)
	leftBuf, leftIsBuf := z.stringSlotBuf[leftOperand]
	rightBuf, rightIsBuf := z.stringSlotBuf[rightOperand]

	destBuf := 0
	for (leftIsBuf && destBuf == leftBuf) || (rightIsBuf && destBuf == rightBuf) {
		destBuf++
		if destBuf >= concatBufCount {
			panic("zmachine: concat buffer pool exhausted")
		}
	}

	z.data = append(z.data, opOutputStreamTable(3, z.concatBufAddrs[destBuf])...)
	z.emitConcatSource(leftOperand, leftBuf, leftIsBuf)
	z.emitConcatSource(rightOperand, rightBuf, rightIsBuf)
	z.data = append(z.data, opOutputStreamStop(-3)...)

	if z.stringSlotBuf == nil {
		z.stringSlotBuf = make(map[byte]int)
	}
	z.stringSlotBuf[globalOperand(op.Dest)] = destBuf
	return nil
}

// emitConcatSource prints one concatenation operand while stream 3 is
// redirected: a buffer-backed operand is reprinted through its
// dedicated print routine (capturing its raw bytes into the new
// destination buffer), a plain packed-string operand through
// print_paddr.
func (z *Zfile) emitConcatSource(operand byte, buf int, isBuf bool) {
	if isBuf {
		z.data = append(z.data, op1(0x0f, LargeConst)...)
		z.addJump(z.printBufRoutineName(buf), Routine)
		return
	}
	z.data = append(z.data, opPrintPaddr(operand)...)
}

// emitPrintString prints the string value held in op.Dest's slot: a
// concatenation result via its buffer's print routine if the slot is
// tagged, otherwise a plain packed-string global via print_paddr,
// exactly as OpPrintText{Dest} stored it.
func (z *Zfile) emitPrintString(op codegen.ZOp) error {
	operand := globalOperand(op.Dest)
	if buf, ok := z.stringSlotBuf[operand]; ok {
		z.data = append(z.data, op1(0x0f, LargeConst)...)
		z.addJump(z.printBufRoutineName(buf), Routine)
		return nil
	}
	z.data = append(z.data, opPrintPaddr(operand)...)
	return nil
}

func (z *Zfile) printBufRoutineName(i int) string {
	return fmt.Sprintf("system_print_buf%d", i)
}

// copyStringTag propagates a buffer tag across a plain variable copy
// (OpStore/OpLoadVar both lower to a raw word copy): if from's slot
// currently holds a concatenation result, to's slot now aliases the
// same buffer; otherwise to reverts to meaning a plain packed-string
// address (or a non-string value), so any stale tag on it is dropped.
func (z *Zfile) copyStringTag(from, to byte) {
	if buf, ok := z.stringSlotBuf[from]; ok {
		if z.stringSlotBuf == nil {
			z.stringSlotBuf = make(map[byte]int)
		}
		z.stringSlotBuf[to] = buf
		return
	}
	delete(z.stringSlotBuf, to)
}
