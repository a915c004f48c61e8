package cpu

const (
	PHASES       = 7 // T0..T6
	PHASE_FETCH  = 0 // PC -> MAR
	PHASE_LOAD   = 1 // Memory[MAR] -> IR, PC++
	PHASE_DECODE = 2 // decoder settle
	PHASE_EXEC   = 3 // first opcode specific phase
)

// microcode is indexed by [opcode][phase]. Phases 0..2 are shared by every
// opcode; undefined opcodes 8..15 execute the NOP sequence.
var microcode = func() (table [OPCODE_COUNT][PHASES]Signal) {
	fetch := [PHASE_EXEC]Signal{
		SIG_EP | SIG_LMA,
		SIG_CE | SIG_LI | SIG_CP,
		SIG_NONE,
	}

	execute := [OPCODE_DEFINED][PHASES - PHASE_EXEC]Signal{
		OP_HLT: {SIG_HLT},
		OP_NOP: {},
		OP_ADD: {SIG_NONE, SIG_EI | SIG_LMA, SIG_CE | SIG_LB, SIG_EU | SIG_LA},
		OP_SUB: {SIG_NONE, SIG_EI | SIG_LMA, SIG_CE | SIG_LB, SIG_EU | SIG_SUB | SIG_LA},
		OP_LDA: {SIG_NONE, SIG_EI | SIG_LMA, SIG_CE | SIG_LA},
		OP_OUT: {SIG_EA | SIG_LO},
		OP_STA: {SIG_EI | SIG_LMA, SIG_EA | SIG_LMD, SIG_LR},
		OP_JMP: {SIG_EI | SIG_LP},
	}

	for op := range table {
		row := execute[OP_NOP]
		if Opcode(op).Defined() {
			row = execute[op]
		}
		copy(table[op][:PHASE_EXEC], fetch[:])
		copy(table[op][PHASE_EXEC:], row[:])
	}

	return
}()

// Microcode returns the control vector for an opcode at a phase.
func Microcode(op Opcode, phase int) Signal {
	return microcode[int(op)&ADDR_MASK][phase%PHASES]
}
