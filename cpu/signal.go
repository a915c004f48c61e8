package cpu

import (
	"strings"
)

// Signal is a set of control lines asserted during one clock tick.
//
// Bits 0 through 14 are in hardware control word order. Bit 15 is the
// internal halt strobe and has no pin.
type Signal uint16

const (
	SIG_LO  = Signal(1 << 0)  // Output <- bus
	SIG_LB  = Signal(1 << 1)  // B <- bus
	SIG_EU  = Signal(1 << 2)  // ALU -> bus
	SIG_SUB = Signal(1 << 3)  // ALU subtract
	SIG_EA  = Signal(1 << 4)  // Accumulator -> bus
	SIG_LA  = Signal(1 << 5)  // Accumulator <- bus
	SIG_EI  = Signal(1 << 6)  // IR operand -> bus
	SIG_LI  = Signal(1 << 7)  // IR <- bus
	SIG_LR  = Signal(1 << 8)  // Memory[MAR] <- MAR data
	SIG_CE  = Signal(1 << 9)  // Memory[MAR] -> bus
	SIG_LMD = Signal(1 << 10) // MAR data <- bus
	SIG_LMA = Signal(1 << 11) // MAR address <- bus
	SIG_LP  = Signal(1 << 12) // PC <- bus
	SIG_EP  = Signal(1 << 13) // PC -> bus
	SIG_CP  = Signal(1 << 14) // PC <- PC + 1
	SIG_HLT = Signal(1 << 15) // Set halt latch
)

const (
	SIG_NONE = Signal(0)

	// SIG_DRIVERS are the signals that place a value on the bus.
	SIG_DRIVERS = SIG_EP | SIG_CE | SIG_EI | SIG_EA | SIG_EU

	// SIG_ACTIVE_LOW are the lines driven low when asserted on the pins.
	SIG_ACTIVE_LOW = SIG_LO | SIG_LB | SIG_LA | SIG_EI | SIG_LI | SIG_LR | SIG_CE | SIG_LMD | SIG_LMA

	PIN_MASK = uint16(0x7fff) // 15 control pins.
)

var _signal_names = [16]string{
	"Lo", "Lb", "Eu", "Sub", "Ea", "La", "Ei", "Li",
	"Lr", "CE", "Lmd", "Lma", "Lp", "Ep", "Cp", "Hlt",
}

// Has returns true if every signal in want is asserted.
func (sig Signal) Has(want Signal) bool {
	return sig&want == want
}

// Drivers returns the asserted bus driver signals.
func (sig Signal) Drivers() Signal {
	return sig & SIG_DRIVERS
}

// Pins returns the 15-bit control word as seen on the hardware lines,
// with active-low lines inverted. An idle tick is 0x0fe3.
func (sig Signal) Pins() uint16 {
	return uint16(sig^SIG_ACTIVE_LOW) & PIN_MASK
}

// SignalFromPins decodes a hardware control word.
func SignalFromPins(pins uint16) Signal {
	return (Signal(pins&PIN_MASK) ^ SIG_ACTIVE_LOW) & Signal(PIN_MASK)
}

// String lists the asserted signals, or "-" when none are.
func (sig Signal) String() string {
	if sig == SIG_NONE {
		return "-"
	}

	var names []string
	for n, name := range _signal_names {
		if sig&(1<<n) != 0 {
			names = append(names, name)
		}
	}

	return strings.Join(names, "|")
}
