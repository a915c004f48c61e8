// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/ezrec/sap1/cpu"
	"github.com/ezrec/sap1/emulator"
	"github.com/ezrec/sap1/io"
)

func main() {
	var compile string
	var binary string
	var save bool
	var output string
	var maxTicks int
	var verbose bool
	var strict bool
	var hex bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&binary, "b", "", "Raw memory image to load")
	flag.BoolVar(&save, "s", false, "Save memory image to output, do not execute")
	flag.StringVar(&output, "o", "-", "Output")
	flag.IntVar(&maxTicks, "n", 0, "Maximum clock ticks (0 for no limit)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&strict, "strict", false, "Undefined opcodes are errors")
	flag.BoolVar(&hex, "x", false, "Write output as hex lines")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(binary) != 0 {
		log.Fatalf("%v: -c and -b are exclusive", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Strict = strict
	emu.MaxTicks = maxTicks

	var image io.Channel

	// Assemble a new program.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		emu.Rom.Data = emu.Program.Binary()
		image = &emu.Rom
	}

	if len(binary) != 0 {
		inf, err := os.Open(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		defer inf.Close()
		image = &io.Tape{Input: inf}
	}

	if output == "-" {
		emu.Tape.Output = os.Stdout
		if term.IsTerminal(int(os.Stdout.Fd())) {
			hex = true
		}
	} else {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()
		emu.Tape.Output = ouf
	}
	emu.Tape.Hex = hex

	if image == nil {
		image = &io.Rom{}
	}

	if save {
		data, err := io.ReceiveImage(image, cpu.MEMORY_SIZE)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		if verbose {
			for addr, code := range cpu.Disassemble(data) {
				log.Printf("%x: %02x %v", addr, uint8(code), code)
			}
		}
		err = io.SendImage(&emu.Tape, data)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	err := emu.Load(image)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	err = emu.Run()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if verbose {
		log.Printf("halted after %d ticks\n%v", emu.Cpu.Ticks, emu.Cpu)
	}
}
