package cpu

import (
	"fmt"
)

// Opcode is the 4-bit instruction class selector.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_HLT = Opcode(0) // hlt
	OP_NOP = Opcode(1) // nop
	OP_ADD = Opcode(2) // add
	OP_SUB = Opcode(3) // sub
	OP_LDA = Opcode(4) // lda
	OP_OUT = Opcode(5) // out
	OP_STA = Opcode(6) // sta
	OP_JMP = Opcode(7) // jmp
)

const (
	OPCODE_DEFINED = 8  // Opcodes 0..7 are defined.
	OPCODE_COUNT   = 16 // Size of the 4-bit opcode space.
	ADDR_MASK      = 0xf
)

// Defined returns true for opcodes with a defined microcode sequence.
func (op Opcode) Defined() bool {
	return op >= 0 && op < OPCODE_DEFINED
}

// HasOperand returns true if the operand field is used as a memory address.
func (op Opcode) HasOperand() bool {
	switch op {
	case OP_ADD, OP_SUB, OP_LDA, OP_STA, OP_JMP:
		return true
	}
	return false
}

// Code is a single 8-bit instruction word: opcode in the high nibble and
// operand in the low nibble.
type Code uint8

// MakeCode creates an instruction word.
func MakeCode(op Opcode, operand uint8) Code {
	return Code((uint8(op)&0xf)<<4 | (operand & ADDR_MASK))
}

// Opcode returns the instruction class.
func (code Code) Opcode() Opcode {
	return Opcode(code >> 4)
}

// Operand returns the 4-bit address field.
func (code Code) Operand() uint8 {
	return uint8(code) & ADDR_MASK
}

// Defined returns true if the opcode field is one of the eight defined opcodes.
func (code Code) Defined() bool {
	return code.Opcode().Defined()
}

// String returns the assembly language representation of the word.
func (code Code) String() string {
	op := code.Opcode()
	switch {
	case !op.Defined():
		return fmt.Sprintf("??? 0x%02x", uint8(code))
	case op.HasOperand():
		return fmt.Sprintf("%v 0x%x", op, code.Operand())
	default:
		return op.String()
	}
}
