// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
	"PHASES":      fmt.Sprintf("%v", PHASES),
	"ADDR_MASK":   fmt.Sprintf("0x%x", ADDR_MASK),
}

// Status bits of the external status port.
const (
	STATUS_READY = uint8(1 << 1) // Ready for next program byte.
	STATUS_DONE  = uint8(1 << 2) // Program byte latched.
	STATUS_CF    = uint8(1 << 3) // Carry flag.
	STATUS_ZF    = uint8(1 << 4) // Zero flag.
	STATUS_HF    = uint8(1 << 5) // Halt indicator.
)

// Step records what happened on a single clock edge.
type Step struct {
	Mode      Mode   // Mode the edge executed in.
	Reset     bool   // Reset was asserted on this edge.
	Phase     int    // Phase executed.
	Code      Code   // Instruction register contents during the phase.
	Signal    Signal // Control vector asserted.
	Bus       byte   // Value on the shared bus.
	Driver    Signal // Bus driver, or SIG_NONE.
	Undefined bool   // An undefined opcode reached its first execute phase.
	Output    bool   // The output register was loaded.
}

// Cpu is the sequencer and register file of the machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Mode   Mode        // Memory subsystem mode.
	Memory Memory      // Program and data memory.
	Loader LoadHandler // Program-load handshake.

	Phase   int   // Ring counter, 0..6.
	Halted  bool  // Sticky halt latch.
	Pc      uint8 // Program counter.
	Ir      Code  // Instruction register.
	IrAddr  uint8 // Address the instruction register was loaded from.
	Mar     uint8 // Memory address register, address view.
	MarData byte  // Memory address register, data-to-write view.
	A       byte  // Accumulator.
	B       byte  // B register.
	Out     byte  // Output register.
	Carry   bool  // Carry flag.
	Zero    bool  // Zero flag.

	Ticks int // Clock edges since reset.

	program bool
	reset   bool
}

// NewCpu creates a CPU in execute mode with all-zero memory.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.applyReset()

	return
}

// Defines for the cpu.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// SetProgram drives the "enter program-load mode" input.
// It is sampled when reset is applied.
func (cpu *Cpu) SetProgram(level bool) {
	cpu.program = level
}

// SetReset drives the level sensitive reset input.
func (cpu *Cpu) SetReset(level bool) {
	cpu.reset = level
}

// Reset pulses reset for one full tick.
func (cpu *Cpu) Reset() {
	cpu.SetReset(true)
	_, _ = cpu.Tick()
	cpu.SetReset(false)
}

// applyReset returns the machine to its initial state. Memory is preserved.
func (cpu *Cpu) applyReset() {
	cpu.Phase = 0
	cpu.Halted = false
	cpu.Pc = 0
	cpu.Ir = 0
	cpu.IrAddr = 0
	cpu.Mar = 0
	cpu.MarData = 0
	cpu.A = 0
	cpu.B = 0
	cpu.Out = 0
	cpu.Carry = false
	cpu.Zero = false
	cpu.Ticks = 0
	cpu.Loader.Reset()

	if cpu.program {
		cpu.Mode = MODE_PROGRAM
	} else {
		cpu.Mode = MODE_EXECUTE
	}

	if cpu.Verbose {
		log.Printf("cpu: reset, %v mode", cpu.Mode)
	}
}

// Present offers a program byte to the load handler.
// Bytes presented outside program-load mode are ignored.
func (cpu *Cpu) Present(value byte) (ok bool) {
	if cpu.Mode != MODE_PROGRAM {
		cpu.Loader.Violations++
		return
	}

	return cpu.Loader.Present(value)
}

// Ready reports the "ready for next byte" status.
func (cpu *Cpu) Ready() bool {
	return cpu.Mode == MODE_PROGRAM && cpu.Loader.Ready()
}

// Done reports the "byte latched" status.
func (cpu *Cpu) Done() bool {
	return cpu.Mode == MODE_PROGRAM && cpu.Loader.Done()
}

// fetching returns the opcode the decoder sees at the current phase:
// the word on its way into IR during the load phase, IR otherwise.
func (cpu *Cpu) fetching() Opcode {
	if cpu.Phase == PHASE_LOAD {
		return Code(cpu.Memory.Read(cpu.Mar)).Opcode()
	}
	return cpu.Ir.Opcode()
}

// HaltFlag reports the halt indicator. Besides the latch it is raised from
// the load phase through the first execute phase of an HLT instruction.
func (cpu *Cpu) HaltFlag() bool {
	if cpu.Halted {
		return true
	}

	if cpu.Mode != MODE_EXECUTE {
		return false
	}

	return cpu.Phase >= PHASE_LOAD && cpu.Phase <= PHASE_EXEC && cpu.fetching() == OP_HLT
}

// Status returns the external status port.
func (cpu *Cpu) Status() (status uint8) {
	if cpu.Ready() {
		status |= STATUS_READY
	}
	if cpu.Done() {
		status |= STATUS_DONE
	}
	if cpu.Carry {
		status |= STATUS_CF
	}
	if cpu.Zero {
		status |= STATUS_ZF
	}
	if cpu.HaltFlag() {
		status |= STATUS_HF
	}

	return
}

// Control returns the control vector for the current phase.
func (cpu *Cpu) Control() (sig Signal) {
	if cpu.Mode != MODE_EXECUTE {
		return
	}

	sig = Microcode(cpu.Ir.Opcode(), cpu.Phase)

	if sig.Has(SIG_CP) && (cpu.Halted || cpu.fetching() == OP_HLT) {
		sig &^= SIG_CP
	}

	if cpu.Halted {
		sig &^= SIG_LP
	}

	return
}

// Tick applies a single clock edge.
func (cpu *Cpu) Tick() (step Step, err error) {
	step.Mode = cpu.Mode
	step.Phase = cpu.Phase

	if cpu.reset {
		step.Reset = true
		cpu.applyReset()
		return
	}

	cpu.Ticks++

	if cpu.Mode == MODE_PROGRAM {
		cpu.Loader.Edge(&cpu.Memory)
		if cpu.Verbose && cpu.Loader.Done() {
			log.Printf("cpu: loaded 0x%02x at %x", cpu.Memory.Read(cpu.Loader.Cursor-1), (cpu.Loader.Cursor-1)&ADDR_MASK)
		}
		return
	}

	sig := cpu.Control()
	step.Code = cpu.Ir
	step.Signal = sig
	step.Undefined = cpu.Phase == PHASE_EXEC && !cpu.Ir.Defined()

	result, carry, zero := Alu(cpu.A, cpu.B, sig.Has(SIG_SUB))

	src := BusSources{
		Pc:          cpu.Pc,
		Memory:      cpu.Memory.Read(cpu.Mar),
		Operand:     cpu.Ir.Operand(),
		Accumulator: cpu.A,
		Alu:         result,
	}

	bus, driver, err := ResolveBus(sig, src)
	if err != nil {
		err = errors.Join(ErrOpcode(cpu.Ir), err)
		return
	}
	step.Bus = bus
	step.Driver = driver

	if cpu.Verbose {
		log.Printf("%x.T%d: %-8v %-12v bus=0x%02x", cpu.IrAddr, cpu.Phase, cpu.Ir, sig, bus)
	}

	// Every latch samples the bus as it was before the edge.
	if sig.Has(SIG_LR) {
		cpu.Memory.Write(cpu.Mar, cpu.MarData)
	}
	if sig.Has(SIG_LMA) {
		cpu.Mar = bus & ADDR_MASK
	}
	if sig.Has(SIG_LMD) {
		cpu.MarData = bus
	}
	if sig.Has(SIG_LI) {
		cpu.Ir = Code(bus)
		cpu.IrAddr = cpu.Mar
	}
	if sig.Has(SIG_LA) {
		cpu.A = bus
		if sig.Has(SIG_EU) {
			cpu.Carry = carry
			cpu.Zero = zero
		}
	}
	if sig.Has(SIG_LB) {
		cpu.B = bus
	}
	if sig.Has(SIG_LO) {
		cpu.Out = bus
		step.Output = true
	}
	if sig.Has(SIG_LP) {
		cpu.Pc = bus & ADDR_MASK
	}
	if sig.Has(SIG_CP) {
		cpu.Pc = (cpu.Pc + 1) & ADDR_MASK
	}
	if sig.Has(SIG_HLT) {
		if cpu.Verbose && !cpu.Halted {
			log.Printf("cpu: halted at %x", cpu.IrAddr)
		}
		cpu.Halted = true
	}

	cpu.Phase = (cpu.Phase + 1) % PHASES

	return
}

// Cycle ticks until the ring counter returns to phase 0.
func (cpu *Cpu) Cycle() (steps []Step, err error) {
	for {
		var step Step
		step, err = cpu.Tick()
		steps = append(steps, step)
		if err != nil || step.Reset || cpu.Mode != MODE_EXECUTE || cpu.Phase == 0 {
			return
		}
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	flag := func(set bool) string {
		if set {
			return "1"
		}
		return "0"
	}

	text += fmt.Sprintf("%5s: %v\n", "mode", cpu.Mode)
	text += fmt.Sprintf("%5s: T%d\n", "phase", cpu.Phase)
	text += fmt.Sprintf("%5s: %x\n", "pc", cpu.Pc)
	text += fmt.Sprintf("%5s: %02X (%v)\n", "ir", uint8(cpu.Ir), cpu.Ir)
	text += fmt.Sprintf("%5s: %x/%02X\n", "mar", cpu.Mar, cpu.MarData)
	text += fmt.Sprintf("%5s: %02X\n", "a", cpu.A)
	text += fmt.Sprintf("%5s: %02X\n", "b", cpu.B)
	text += fmt.Sprintf("%5s: %02X\n", "out", cpu.Out)
	text += fmt.Sprintf("%5s: c=%v z=%v h=%v\n", "flags", flag(cpu.Carry), flag(cpu.Zero), flag(cpu.Halted))
	text += fmt.Sprintf("%5s: % X\n", "mem", cpu.Memory[:])

	return
}
