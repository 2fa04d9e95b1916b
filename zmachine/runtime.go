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

import "github.com/db47h/tweezer/symtab"

// Every compiled story needs a handful of fixed routines that codegen
// never emits itself: accumulating link targets as they're displayed,
// letting the player pick one by number, printing a Unicode string
// once its address and length are known, and printing back one of the
// fixed string-concatenation scratch buffers. The link-count global
// doubles as the array index/counter the original assembler kept in
// its own "var 16"; tweezer has no turn-counting feature, so
// symtab.TurnCounterSlot is repurposed for it (see DESIGN.md).

const linkArrayIndex = 1

// routineAddLink compiles system_add_link(target): append target (the
// routine's single argument, Z-Machine local 1) to the link array and
// bump the link count.
func (z *Zfile) routineAddLink() error {
	if err := z.routine("system_add_link", 1); err != nil {
		return err
	}
	arrayAddr := z.objectAddr + linkArrayIndex
	z.data = append(z.data, opStoreW(arrayAddr, 0, globalOperand(symtab.TurnCounterSlot), 1)...)
	z.data = append(z.data, opInc(globalOperand(symtab.TurnCounterSlot))...)
	z.data = append(z.data, opRet(0)...)
	return nil
}

// routineCheckLinks compiles system_check_links: if the passage was
// entered via <<display>> (LinkCounterSlot is set), or no links were
// registered, return/quit immediately. Otherwise prompt for a digit
// 1-9, validate it against the link count, and call the chosen
// passage's routine.
func (z *Zfile) routineCheckLinks() error {
	if err := z.routine("system_check_links", 2); err != nil {
		return err
	}

	z.data = append(z.data, opCompareConst(0x01, globalOperand(symtab.LinkCounterSlot), 1)...)
	z.addJump("system_check_links_end_ret", Branch)

	z.data = append(z.data, opCompareConst(0x01, globalOperand(symtab.TurnCounterSlot), 0)...)
	z.addJump("system_check_links_end_quit", Branch)

	idx := len(z.data)
	z.data = append(z.data, op0(0x02)...)
	z.writeBytesAt(idx+1, Encode("--------------------"))
	z.data = append(z.data, opNewline()...)
	idx = len(z.data)
	z.data = append(z.data, op0(0x02)...)
	z.writeBytesAt(idx+1, Encode("press a key... "))
	z.data = append(z.data, opNewline()...)

	if err := z.label("system_check_links_loop"); err != nil {
		return err
	}
	z.data = append(z.data, opReadChar(1)...)
	z.data = append(z.data, opSub(1, 48, 1)...)

	z.data = append(z.data, opCompareVar(0x02, globalOperand(symtab.TurnCounterSlot), 1)...)
	z.addJump("system_check_links_loop", Branch)

	z.data = append(z.data, opStoreU16(2, 1)...)
	z.data = append(z.data, opCompareVar(0x02, 1, 2)...)
	z.addJump("system_check_links_loop", Branch)

	z.data = append(z.data, opDec(1)...)

	arrayAddr := z.objectAddr + linkArrayIndex
	z.data = append(z.data, opLoadW(arrayAddr, 0, 1, 2)...)

	z.data = append(z.data, opStoreU16(globalOperand(symtab.TurnCounterSlot), 0)...)
	z.data = append(z.data, opNewline()...)
	z.data = append(z.data, opEraseWindow(-1)...)
	z.data = append(z.data, opCall1NVar(2)...)

	if err := z.label("system_check_links_end_ret"); err != nil {
		return err
	}
	z.data = append(z.data, opRet(0)...)

	if err := z.label("system_check_links_end_quit"); err != nil {
		return err
	}
	z.data = append(z.data, opQuit()...)
	return nil
}

// routinePrintUnicode compiles print_unicode(addr): addr (local 1)
// points at a length-prefixed UTF-16BE string (see
// utf16BEWithLength); local 4 stays at its default value of 0 and
// serves as loadw's index operand, since the address operand is
// advanced directly rather than indexed.
func (z *Zfile) routinePrintUnicode() error {
	if err := z.routine("print_unicode", 4); err != nil {
		return err
	}
	z.data = append(z.data, opLoadWVar(1, 4, 2)...) // var2 = char count
	z.data = append(z.data, opAddVar(2, 2, 2)...)    // var2 = byte length
	z.data = append(z.data, opAddVar(1, 2, 2)...)    // var2 = addr + byte length
	z.data = append(z.data, opAdd(2, 2, 2)...)        // var2 = one past the last char
	z.data = append(z.data, opAdd(1, 2, 1)...)        // var1 = first char's address

	if err := z.label("print_unicode_inter_char"); err != nil {
		return err
	}
	z.data = append(z.data, opLoadWVar(1, 4, 3)...) // var3 = current char code
	z.data = append(z.data, opPrintUnicodeVar(3)...)
	z.data = append(z.data, opAdd(1, 2, 1)...)
	z.data = append(z.data, opCompareVar(0x02, 1, 2)...)
	z.addJump("print_unicode_inter_char", Branch)
	z.data = append(z.data, opRet(0)...)
	return nil
}

// routinePrintBuffer compiles one of the 3 fixed system_print_bufN()
// routines: print every ZSCII byte held in one concatenation scratch
// buffer, whose first word holds the byte count, the same
// length-prefixed layout output_stream 3 writes and print_unicode's
// UTF-16 buffers use. bufAddr is baked in as a compile-time constant,
// since each of the 3 buffers has a fixed address.
func (z *Zfile) routinePrintBuffer(name string, bufAddr uint16) error {
	if err := z.routine(name, 3); err != nil {
		return err
	}
	z.data = append(z.data, opLoadWImm(bufAddr, 0, 1)...) // local1 = length
	z.data = append(z.data, opStoreU16(2, 0)...)           // local2 = i

	loopLbl := z.synthLabel("printbuf_loop")
	doneLbl := z.synthLabel("printbuf_done")
	if err := z.label(loopLbl); err != nil {
		return err
	}
	z.data = append(z.data, opCompareVar(0x01, 2, 1)...) // je i, len -> done
	z.addJump(doneLbl, Branch)
	z.data = append(z.data, opLoadBImm(bufAddr+2, 2, 3)...) // local3 = buf[2+i]
	z.data = append(z.data, opPrintCharVar(3)...)
	z.data = append(z.data, opInc(2)...)
	z.data = append(z.data, op1(0x0c, LargeConst)...)
	z.addJump(loopLbl, Jump)
	if err := z.label(doneLbl); err != nil {
		return err
	}
	z.data = append(z.data, opRet(0)...)
	return nil
}
