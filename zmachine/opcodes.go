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

// ArgType tags how an operand is encoded: inline in the instruction
// (SmallConst/LargeConst), as a variable reference, or absent.
type ArgType int

const (
	LargeConst ArgType = iota
	SmallConst
	Variable
	Nothing
	// Reference is a SmallConst that names a variable number rather
	// than carrying a value, used by store/inc/dec.
	Reference
)

// op0 encodes a 0OP instruction.
func op0(value byte) []byte {
	return []byte{value | 0xb0}
}

// op1 encodes a 1OP instruction.
func op1(value byte, t ArgType) []byte {
	byt := 0x80 | value
	switch t {
	case LargeConst:
		byt |= 0x00 << 4
	case SmallConst, Reference:
		byt |= 0x01 << 4
	case Variable:
		byt |= 0x02 << 4
	default:
		panic("zmachine: no possible 1OP arg type")
	}
	return []byte{byt}
}

// op2 encodes a 2OP instruction. When any operand is a LargeConst, the
// long form can't express it (its two operand slots are 1 bit each,
// small-const-or-variable only), so the instruction is emitted in its
// "variable" form instead: the opcode byte gets the VAR-form high
// bits and a following byte carries one 2-bit ArgType nibble per
// operand, same as a true VAR instruction.
func op2(value byte, argTypes []ArgType) []byte {
	var byt byte
	variableForm := false
	for i, t := range argTypes {
		shift := uint(6 - i)
		switch t {
		case SmallConst, Reference:
			byt |= 0x00 << shift
		case Variable:
			byt |= 0x01 << shift
		case LargeConst:
			variableForm = true
		default:
			panic("zmachine: no possible 2OP arg type")
		}
	}
	if variableForm {
		return []byte{0xc0 | value, encodeVariableArgs(argTypes) | 0x0f}
	}
	return []byte{byt | value}
}

// opVar encodes a VAR-form instruction (0-4 operands).
func opVar(value byte, argTypes []ArgType) []byte {
	return []byte{value | 0xe0, encodeVariableArgs(argTypes)}
}

func encodeVariableArgs(argTypes []ArgType) byte {
	var byt byte
	for i, t := range argTypes {
		shift := uint(6 - 2*i)
		switch t {
		case LargeConst:
			byt |= 0x00 << shift
		case SmallConst, Reference:
			byt |= 0x01 << shift
		case Variable:
			byt |= 0x02 << shift
		case Nothing:
			byt |= 0x03 << shift
		}
	}
	return byt
}

func writeU16(v uint16, b []byte) []byte {
	return append(b, byte(v>>8), byte(v))
}

func writeI16(v int16, b []byte) []byte {
	return writeU16(uint16(v), b)
}

// -- instruction builders, one per ZOp the assembler emits --

func opPrintNumVar(variable byte) []byte {
	b := opVar(0x06, []ArgType{Variable, Nothing, Nothing, Nothing})
	return append(b, variable)
}

func opRandom(rangeVar, dest byte, rangeIsConst bool) []byte {
	t := Variable
	if rangeIsConst {
		t = SmallConst
	}
	b := opVar(0x07, []ArgType{t, Nothing, Nothing, Nothing})
	return append(b, rangeVar, dest)
}

func opPushU16(value uint16) []byte {
	b := opVar(0x08, []ArgType{LargeConst, Nothing, Nothing, Nothing})
	return writeU16(value, b)
}

func opSetTextStyle(bold, reverse, mono, italic bool) []byte {
	b := opVar(0x11, []ArgType{SmallConst, Nothing, Nothing, Nothing})
	var style byte
	if reverse {
		style |= 0x01
	}
	if bold {
		style |= 0x02
	}
	if italic {
		style |= 0x04
	}
	if mono {
		style |= 0x08
	}
	return append(b, style)
}

func opEraseWindow(value int8) []byte {
	b := opVar(0x0d, []ArgType{LargeConst, Nothing, Nothing, Nothing})
	return writeU16(uint16(value), b)
}

func opReadChar(localVar byte) []byte {
	b := opVar(0x16, []ArgType{SmallConst, Nothing, Nothing, Nothing})
	b = append(b, 0x00)
	return append(b, localVar)
}

func opReadCharTimer(localVar, timer byte) []byte {
	b := opVar(0x16, []ArgType{SmallConst, SmallConst, LargeConst, Nothing})
	b = append(b, 0x00, timer)
	b = writeU16(0x0000, b) // patched by addJump(Routine) to the timer-routine's packed address
	return append(b, localVar)
}

func opStoreW(objectAddr, arrayAddr uint16, index, variable byte) []byte {
	b := opVar(0x01, []ArgType{LargeConst, Variable, Variable, Nothing})
	b = writeU16(objectAddr+arrayAddr, b)
	return append(b, index, variable)
}

func opLoadW(objectAddr, arrayAddr uint16, index, variable byte) []byte {
	b := op2(0x0f, []ArgType{LargeConst, Variable})
	b = writeU16(objectAddr+arrayAddr, b)
	return append(b, index, variable)
}

// opLoadWVar is loadw with both the array and index operands read
// from variables rather than one being a constant address.
func opLoadWVar(arrayVar, indexVar, dest byte) []byte {
	b := op2(0x0f, []ArgType{Variable, Variable})
	return append(b, arrayVar, indexVar, dest)
}

// opPrintUnicodeVar and opPrintUnicodeChar print a single Unicode code
// point held in a variable, or given as an immediate value. Unlike
// every other instruction in this file, print_unicode is an EXTENDED
// opcode: it's prefixed with the 0xbe lead byte and an extended
// opcode number (0x0b) instead of being packed into the normal
// short/long/variable opcode space, so it needs its own encoding
// rather than reusing opVar.
func opPrintUnicodeVar(variable byte) []byte {
	b := []byte{0xbe, 0x0b, extArgTypeByte(Variable)}
	return append(b, variable)
}

func opPrintUnicodeChar(code uint16) []byte {
	b := []byte{0xbe, 0x0b, extArgTypeByte(LargeConst)}
	return writeU16(code, b)
}

// extArgTypeByte packs a single operand's ArgType into an extended
// instruction's argument-type byte, with the remaining three (unused)
// slots set to Nothing.
func extArgTypeByte(t ArgType) byte {
	return encodeVariableArgs([]ArgType{t, Nothing, Nothing, Nothing})
}

// opLoadWImm reads the word at the fixed address arrayAddr + 2*wordIndex
// into dest (loadw with a constant array address and a constant
// word index).
func opLoadWImm(arrayAddr uint16, wordIndex byte, dest byte) []byte {
	b := op2(0x0f, []ArgType{LargeConst, SmallConst})
	b = writeU16(arrayAddr, b)
	return append(b, wordIndex, dest)
}

// opLoadBImm reads the byte at arrayAddr + indexVar into dest (loadb
// with a constant array address and the index held in a variable,
// since the index is a runtime loop counter).
func opLoadBImm(arrayAddr uint16, indexVar byte, dest byte) []byte {
	b := op2(0x10, []ArgType{LargeConst, Variable})
	b = writeU16(arrayAddr, b)
	return append(b, indexVar, dest)
}

// opPrintCharVar prints a single ZSCII character held in a variable
// (VAR:0x05, "print_char").
func opPrintCharVar(variable byte) []byte {
	b := opVar(0x05, []ArgType{Variable, Nothing, Nothing, Nothing})
	return append(b, variable)
}

// opOutputStreamTable redirects printed output into table, in the
// length-prefixed format read back by routinePrintBuffer
// (VAR:0x13, "output_stream", selecting stream 3 with its table
// argument).
func opOutputStreamTable(stream int16, table uint16) []byte {
	b := opVar(0x13, []ArgType{LargeConst, LargeConst, Nothing, Nothing})
	b = writeI16(stream, b)
	return writeU16(table, b)
}

// opOutputStreamStop stops redirection to a selectable stream (stream
// given negative, per the Z-Machine spec's output_stream convention).
func opOutputStreamStop(stream int16) []byte {
	b := opVar(0x13, []ArgType{LargeConst, Nothing, Nothing, Nothing})
	return writeI16(stream, b)
}

func opSetColor(foreground, background byte) []byte {
	return append(op2(0x1b, []ArgType{SmallConst, SmallConst}), foreground, background)
}

func opPrintPaddr(variable byte) []byte {
	return append(op1(0x0d, Variable), variable)
}

func opRet(value byte) []byte {
	return append(op1(0x0b, SmallConst), value)
}

func opStoreU16(variable byte, value uint16) []byte {
	b := op2(0x0d, []ArgType{Reference, LargeConst})
	b = append(b, variable)
	return writeU16(value, b)
}

func opSub(variable1 byte, constant int16, variable2 byte) []byte {
	b := op2(0x15, []ArgType{Variable, LargeConst})
	b = append(b, variable1)
	b = writeI16(constant, b)
	return append(b, variable2)
}

func opSubVar(variable1, variable2, dest byte) []byte {
	b := op2(0x15, []ArgType{Variable, Variable})
	return append(b, variable1, variable2, dest)
}

func opAddVar(variable1, variable2, dest byte) []byte {
	b := op2(0x14, []ArgType{Variable, Variable})
	return append(b, variable1, variable2, dest)
}

func opAdd(variable1 byte, constant int16, variable2 byte) []byte {
	b := op2(0x14, []ArgType{Variable, LargeConst})
	b = append(b, variable1)
	b = writeI16(constant, b)
	return append(b, variable2)
}

func opMulVar(variable1, variable2, dest byte) []byte {
	b := op2(0x16, []ArgType{Variable, Variable})
	return append(b, variable1, variable2, dest)
}

func opDivVar(variable1, variable2, dest byte) []byte {
	b := op2(0x17, []ArgType{Variable, Variable})
	return append(b, variable1, variable2, dest)
}

func opModVar(variable1, variable2, dest byte) []byte {
	b := op2(0x18, []ArgType{Variable, Variable})
	return append(b, variable1, variable2, dest)
}

func opAndVar(variable1, variable2, dest byte) []byte {
	b := op2(0x09, []ArgType{Variable, Variable})
	return append(b, variable1, variable2, dest)
}

func opOrVar(variable1, variable2, dest byte) []byte {
	b := op2(0x08, []ArgType{Variable, Variable})
	return append(b, variable1, variable2, dest)
}

func opInc(variable byte) []byte {
	return append(op1(0x05, Reference), variable)
}

func opDec(variable byte) []byte {
	return append(op1(0x06, Reference), variable)
}

func opNewline() []byte {
	return op0(0x0b)
}

func opQuit() []byte {
	return op0(0x0a)
}

// opCompareVar/opCompareConst encode a conditional branch's opcode and
// operands (je/jl/jg by value); the caller appends the 2-byte branch
// placeholder with addJump(Branch), which writeJumps patches (see
// jumps.go).
func opCompareVar(value byte, variable1, variable2 byte) []byte {
	return append(op2(value, []ArgType{Variable, Variable}), variable1, variable2)
}

func opCompareConst(value byte, variable1 byte, constant byte) []byte {
	return append(op2(value, []ArgType{Variable, SmallConst}), variable1, constant)
}

func opCall1NVar(variable byte) []byte {
	return append(op1(0x0f, Variable), variable)
}

// opStoreVar copies the value of src into dest (2OP "store" with both
// operands referencing variables).
func opStoreVar(dest, src byte) []byte {
	b := op2(0x0d, []ArgType{Reference, Variable})
	return append(b, dest, src)
}

// jumpPlaceholder reserves the 2-byte routine/jump/branch address
// field that writeJumps patches.
func jumpPlaceholder() []byte {
	return []byte{0x00, 0x00}
}
