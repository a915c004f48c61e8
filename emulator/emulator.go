// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/sap1/cpu"
	"github.com/ezrec/sap1/internal"
	"github.com/ezrec/sap1/io"
)

const (
	LOAD_TIMEOUT = 100 // Ticks to wait on each load handshake edge.
)

var _emulator_defines = map[string]string{
	"LOAD_TIMEOUT": fmt.Sprintf("%v", LOAD_TIMEOUT),
}

func init() {
	for op := cpu.OP_HLT; op < cpu.OPCODE_DEFINED; op++ {
		_emulator_defines["OP_"+strings.ToUpper(op.String())] = fmt.Sprintf("%d", int(op))
	}
}

// Emulator state. CPU + program loader + output tape.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	Strict   bool         // If set, undefined opcodes are runtime errors.
	MaxTicks int          // If non-zero, Run fails after this many ticks.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Tape io.Tape // Output port tape.
	Rom  io.Rom  // Image of the current program.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// waitFor ticks the CPU until cond is met, or the load timeout expires.
func (emu *Emulator) waitFor(what string, cond func() bool) (err error) {
	for range LOAD_TIMEOUT {
		if cond() {
			return
		}
		_, err = emu.Cpu.Tick()
		if err != nil {
			return
		}
	}

	if cond() {
		return
	}

	err = &ErrLoadTimeout{Address: emu.Cpu.Loader.Cursor, Signal: what}
	return
}

// Load streams a memory image from a channel into the CPU using the
// program-load handshake, then resets the CPU into execute mode.
func (emu *Emulator) Load(ch io.Channel) (err error) {
	ch.Rewind()
	image, err := io.ReceiveImage(ch, cpu.MEMORY_SIZE)
	if err != nil {
		return
	}

	emu.Cpu.Verbose = emu.Verbose

	emu.Cpu.SetProgram(true)
	emu.Cpu.Reset()

	defer func() {
		emu.Cpu.SetProgram(false)
		emu.Cpu.Reset()
	}()

	for addr, value := range image {
		err = emu.waitFor("ready", emu.Cpu.Ready)
		if err != nil {
			return
		}

		if !emu.Cpu.Present(value) {
			err = &ErrLoadTimeout{Address: uint8(addr), Signal: "present"}
			return
		}

		err = emu.waitFor("done", emu.Cpu.Done)
		if err != nil {
			return
		}
	}

	if emu.Verbose {
		log.Printf("emulator: loaded %d bytes", len(image))
	}

	return
}

// Reset loads the current program's binary image and restarts execution.
func (emu *Emulator) Reset() (err error) {
	emu.Rom.Data = emu.Program.Binary()

	err = emu.Load(&emu.Rom)

	return
}

// LineNo returns the source line number of the current instruction.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.IrAddr)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single clock edge of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	addr := emu.Cpu.IrAddr
	defer func() {
		if err != nil {
			err = &ErrRuntime{Address: addr, Err: err}
		}
	}()

	if emu.Cpu.Halted {
		done = true
		return
	}

	step, err := emu.Cpu.Tick()
	if err != nil {
		return
	}

	if step.Undefined && emu.Strict {
		err = errors.Join(cpu.ErrOpcodeUndefined, cpu.ErrOpcode(step.Code))
		return
	}

	if step.Output {
		err = emu.Tape.Send(emu.Cpu.Out)
		if err != nil {
			return
		}
	}

	done = emu.Cpu.Halted

	return
}

// Run ticks the emulator until the program halts.
func (emu *Emulator) Run() (err error) {
	for {
		if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
			err = &ErrRuntime{Address: emu.Cpu.IrAddr, Err: ErrTickLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
