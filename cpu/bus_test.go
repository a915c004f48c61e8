package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBus(t *testing.T) {
	assert := assert.New(t)

	src := BusSources{
		Pc:          0x13,
		Memory:      0xa5,
		Operand:     0x0e,
		Accumulator: 0x42,
		Alu:         0x99,
	}

	table := [...]struct {
		sig   Signal
		value byte
	}{
		{SIG_NONE, 0x00},
		{SIG_LA | SIG_LB, 0x00},
		{SIG_EP | SIG_LMA, 0x03},
		{SIG_CE | SIG_LI, 0xa5},
		{SIG_EI | SIG_LP, 0x0e},
		{SIG_EA | SIG_LO, 0x42},
		{SIG_EU | SIG_LA, 0x99},
	}

	for _, entry := range table {
		value, driver, err := ResolveBus(entry.sig, src)
		assert.NoError(err, entry.sig.String())
		assert.Equal(entry.value, value, entry.sig.String())
		assert.Equal(entry.sig.Drivers(), driver, entry.sig.String())
	}
}

func TestResolveBusContention(t *testing.T) {
	assert := assert.New(t)

	_, driver, err := ResolveBus(SIG_EA|SIG_EU|SIG_LA, BusSources{})
	assert.ErrorIs(err, ErrBusContention)
	assert.Equal(SIG_NONE, driver)

	var drivers ErrBusDrivers
	if assert.True(errors.As(err, &drivers)) {
		assert.Equal(SIG_EA|SIG_EU, Signal(drivers))
	}
}
