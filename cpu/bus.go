package cpu

import (
	"errors"
)

// BusSources are the values each driver would place on the bus.
type BusSources struct {
	Pc          uint8 // Ep
	Memory      byte  // CE
	Operand     uint8 // Ei
	Accumulator byte  // Ea
	Alu         byte  // Eu
}

// ResolveBus returns the value on the shared bus for a control vector.
// At most one driver may be asserted; with none the bus floats to zero.
func ResolveBus(sig Signal, src BusSources) (value byte, driver Signal, err error) {
	driver = sig.Drivers()

	switch driver {
	case SIG_NONE:
		value = 0
	case SIG_EP:
		value = src.Pc & ADDR_MASK
	case SIG_CE:
		value = src.Memory
	case SIG_EI:
		value = src.Operand & ADDR_MASK
	case SIG_EA:
		value = src.Accumulator
	case SIG_EU:
		value = src.Alu
	default:
		err = errors.Join(ErrBusContention, ErrBusDrivers(driver))
		driver = SIG_NONE
	}

	return
}
