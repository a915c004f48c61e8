package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	var mem Memory

	mem.Write(0x3, 0x42)
	assert.Equal(byte(0x42), mem.Read(0x3))
	// Addresses wrap at four bits.
	assert.Equal(byte(0x42), mem.Read(0x13))
	mem.Write(0xff, 0x99)
	assert.Equal(byte(0x99), mem[15])
}

func TestLoadHandler(t *testing.T) {
	assert := assert.New(t)

	var mem Memory
	var lh LoadHandler

	assert.True(lh.Ready())
	assert.False(lh.Done())

	// Nothing happens without a presented byte.
	lh.Edge(&mem)
	assert.True(lh.Ready())
	assert.Equal(0, lh.Count)

	assert.True(lh.Present(0x11))
	assert.False(lh.Ready())
	assert.False(lh.Present(0x22))
	assert.Equal(1, lh.Violations)

	lh.Edge(&mem)
	assert.Equal(byte(0x11), mem[0])
	assert.True(lh.Done())
	assert.False(lh.Ready())
	assert.Equal(uint8(1), lh.Cursor)
	assert.Equal(1, lh.Count)

	// Presents while done are ignored.
	assert.False(lh.Present(0x33))
	assert.Equal(2, lh.Violations)

	lh.Edge(&mem)
	assert.True(lh.Ready())
	assert.False(lh.Done())

	for n := 1; n < MEMORY_SIZE; n++ {
		assert.True(lh.Present(byte(0x11 * (n + 1))))
		lh.Edge(&mem)
		assert.True(lh.Done())
		lh.Edge(&mem)
	}

	assert.Equal(LOAD_FULL, lh.State)
	assert.False(lh.Ready())
	assert.False(lh.Done())
	for n := range MEMORY_SIZE {
		assert.Equal(byte(0x11*(n+1)), mem[n], n)
	}

	// A seventeenth byte is ignored.
	assert.False(lh.Present(0xee))
	lh.Edge(&mem)
	assert.Equal(byte(0x11), mem[0])
	assert.Equal(LOAD_FULL, lh.State)
	assert.Equal(3, lh.Violations)
}

func TestLoadHandlerShort(t *testing.T) {
	assert := assert.New(t)

	var mem Memory
	for n := range mem {
		mem[n] = 0xee
	}

	var lh LoadHandler
	for _, value := range []byte{1, 2, 3} {
		assert.True(lh.Present(value))
		lh.Edge(&mem)
		lh.Edge(&mem)
	}

	assert.Equal(byte(3), mem[2])
	for n := 3; n < MEMORY_SIZE; n++ {
		assert.Equal(byte(0xee), mem[n], n)
	}

	// Reset aborts the session and restarts at address zero.
	assert.True(lh.Present(4))
	lh.Reset()
	assert.True(lh.Ready())
	assert.Equal(uint8(0), lh.Cursor)
	lh.Edge(&mem)
	assert.Equal(byte(0xee), mem[3])

	assert.True(lh.Present(9))
	lh.Edge(&mem)
	assert.Equal(byte(9), mem[0])
}

func TestLoadState(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("ready", LOAD_READY.String())
	assert.Equal("done", LOAD_DONE.String())
	assert.Equal("full", LOAD_FULL.String())
	assert.Equal("execute", MODE_EXECUTE.String())
	assert.Equal("program", MODE_PROGRAM.String())
}
