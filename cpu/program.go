package cpu

import (
	"iter"
)

// Line is a line of assembled source with the bytes it generated.
type Line struct {
	LineNo    int      // Source line number.
	Addr      int      // Address of the first byte.
	Words     []string // Source words after equate substitution.
	Bytes     []byte   // Generated bytes.
	LinkLabel string   // Label to resolve into the operand of Bytes[0].
}

// Program is an assembled listing.
type Program struct {
	Lines []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug finds the listing line that generated an address.
func (prog *Program) Debug(addr uint8) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(addr) >= line.Addr && int(addr) < line.Addr+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(addr) - line.Addr,
			}
			break
		}
	}

	return
}

// Binary returns the full memory image. Unassembled words are zero.
func (prog *Program) Binary() (image []byte) {
	image = make([]byte, MEMORY_SIZE)
	for addr, code := range prog.Codes() {
		image[addr&ADDR_MASK] = byte(code)
	}

	return
}

// Codes iterates over every assembled word.
func (prog *Program) Codes() iter.Seq2[uint8, Code] {
	return func(yield func(addr uint8, code Code) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(uint8(line.Addr+n), Code(value)) {
					return
				}
			}
		}
	}
}

// Disassemble iterates over a memory image as instruction words.
func Disassemble(image []byte) iter.Seq2[uint8, Code] {
	return func(yield func(addr uint8, code Code) bool) {
		for n, value := range image {
			if !yield(uint8(n), Code(value)) {
				return
			}
		}
	}
}
