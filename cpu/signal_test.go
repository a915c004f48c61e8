package cpu

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

// pins parses a hardware control word written most significant pin first.
func pins(t *testing.T, text string) uint16 {
	value, err := strconv.ParseUint(text, 2, 16)
	if err != nil {
		t.Fatalf("%v: %v", text, err)
	}
	return uint16(value)
}

func TestSignalPins(t *testing.T) {
	assert := assert.New(t)

	table := [...]struct {
		sig  Signal
		pins string
	}{
		{SIG_NONE, "000111111100011"},
		{SIG_HLT, "000111111100011"},
		{SIG_EP | SIG_LMA, "010011111100011"},
		{SIG_EI | SIG_LMA, "000011110100011"},
		{SIG_CE | SIG_LB, "000110111100001"},
		{SIG_EU | SIG_LA, "000111111000111"},
		{SIG_EU | SIG_SUB | SIG_LA, "000111111001111"},
		{SIG_CE | SIG_LA, "000110111000011"},
		{SIG_EA | SIG_LO, "000111111110010"},
		{SIG_EA | SIG_LMD, "000101111110011"},
		{SIG_LR, "000111011100011"},
		{SIG_EI | SIG_LP, "001111110100011"},
	}

	for _, entry := range table {
		expect := pins(t, entry.pins)
		assert.Equal(expect, entry.sig.Pins(), entry.sig.String())
		assert.Equal(entry.sig&^SIG_HLT, SignalFromPins(expect), entry.pins)
	}

	assert.Equal(uint16(0x0fe3), SIG_NONE.Pins())
}

func TestSignalString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("-", SIG_NONE.String())
	assert.Equal("Lma|Ep", (SIG_EP | SIG_LMA).String())
	assert.Equal("Eu|Sub|La", (SIG_EU | SIG_SUB | SIG_LA).String())
	assert.Equal("Hlt", SIG_HLT.String())
}

func TestSignalHas(t *testing.T) {
	assert := assert.New(t)

	sig := SIG_CE | SIG_LI | SIG_CP
	assert.True(sig.Has(SIG_CE))
	assert.True(sig.Has(SIG_CE | SIG_CP))
	assert.False(sig.Has(SIG_CE | SIG_LA))
	assert.Equal(SIG_CE, sig.Drivers())
}
