package cpu

const (
	MEMORY_SIZE = 16 // Words of memory.
)

// Mode is the memory subsystem operating mode.
type Mode int

const (
	MODE_EXECUTE = Mode(0) // Random access from the sequencer.
	MODE_PROGRAM = Mode(1) // Serial byte injection via the load handshake.
)

func (mode Mode) String() string {
	switch mode {
	case MODE_EXECUTE:
		return "execute"
	case MODE_PROGRAM:
		return "program"
	}
	return "mode?"
}

// Memory is sixteen bytes, indexed by a 4-bit address.
type Memory [MEMORY_SIZE]byte

// Read returns the addressed word.
func (mem *Memory) Read(addr uint8) byte {
	return mem[addr&ADDR_MASK]
}

// Write commits a value to the addressed word.
func (mem *Memory) Write(addr uint8, value byte) {
	mem[addr&ADDR_MASK] = value
}

// LoadState is the program-load handshake state.
type LoadState int

const (
	LOAD_READY = LoadState(0) // Waiting for the next byte.
	LOAD_DONE  = LoadState(1) // Byte latched, done asserted for one tick.
	LOAD_FULL  = LoadState(2) // All sixteen bytes received.
)

func (state LoadState) String() string {
	switch state {
	case LOAD_READY:
		return "ready"
	case LOAD_DONE:
		return "done"
	case LOAD_FULL:
		return "full"
	}
	return "state?"
}

// LoadHandler streams bytes into Memory during program-load mode.
type LoadHandler struct {
	State      LoadState // Handshake state.
	Cursor     uint8     // Next address to be written.
	Count      int       // Bytes written this session.
	Violations int       // Out of protocol presents that were ignored.

	pending bool
	value   byte
}

// Reset aborts any session in progress.
func (lh *LoadHandler) Reset() {
	lh.State = LOAD_READY
	lh.Cursor = 0
	lh.Count = 0
	lh.Violations = 0
	lh.pending = false
	lh.value = 0
}

// Ready reports the "ready for next byte" status.
func (lh *LoadHandler) Ready() bool {
	return lh.State == LOAD_READY && !lh.pending
}

// Done reports the "byte latched" status.
func (lh *LoadHandler) Done() bool {
	return lh.State == LOAD_DONE
}

// Present offers a byte to the handler. It is accepted only while Ready()
// is asserted; anything else is ignored and counted as a violation.
func (lh *LoadHandler) Present(value byte) (ok bool) {
	if !lh.Ready() {
		lh.Violations++
		return
	}

	lh.pending = true
	lh.value = value
	ok = true

	return
}

// Edge advances the handshake by one clock edge.
func (lh *LoadHandler) Edge(mem *Memory) {
	switch lh.State {
	case LOAD_READY:
		if !lh.pending {
			return
		}
		mem.Write(lh.Cursor, lh.value)
		lh.pending = false
		lh.Cursor = (lh.Cursor + 1) & ADDR_MASK
		lh.Count++
		lh.State = LOAD_DONE
	case LOAD_DONE:
		if lh.Count >= MEMORY_SIZE {
			lh.State = LOAD_FULL
		} else {
			lh.State = LOAD_READY
		}
	case LOAD_FULL:
		// Ignore everything until reset.
	}
}
