// Package cpu implements the microsequenced 8-bit accumulator machine and its
// assembler.
//
// The machine has a 4-bit program counter, an 8-bit instruction register split
// into a 4-bit opcode and a 4-bit operand, a memory address register, an
// accumulator, a B register feeding the adder/subtractor, and an output
// register, all latching from a single shared 8-bit bus. A seven phase ring
// counter (T0..T6) indexes a microcode table by opcode to produce the control
// signals asserted on every clock edge.
//
// Memory is sixteen bytes and is dual mode: in program-load mode it is filled
// one byte at a time through a ready/done handshake, and in execute mode it is
// a plain synchronous RAM addressed through the memory address register.
//
// The assembler provides a small assembly language for the eight defined
// instructions, supporting labels, equates, origin and data directives, and
// compile-time expression evaluation.
package cpu
