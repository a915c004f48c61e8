package io

import (
	"fmt"
	"io"
	"iter"
)

// Tape provides sequential byte I/O over an io.Reader and io.Writer.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Hex    bool // Write each byte as a hex line instead of raw.
}

var _ Channel = (*Tape)(nil)

// Rewind seeks the input back to the start when it supports seeking.
func (tc *Tape) Rewind() {
	seeker, ok := tc.Input.(io.Seeker)
	if ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}
}

// Receive returns an iterator that yields bytes from the input stream
// until it is exhausted.
func (tc *Tape) Receive() iter.Seq[byte] {
	return func(yield func(value byte) bool) {
		if tc.Input == nil {
			return
		}
		var one [1]byte
		for {
			n, err := tc.Input.Read(one[:])
			if n == 1 {
				if !yield(one[0]) {
					return
				}
			}
			if err != nil {
				return
			}
		}
	}
}

// Send writes a byte to the output stream.
func (tc *Tape) Send(value byte) (err error) {
	if tc.Output == nil {
		return
	}

	if tc.Hex {
		_, err = fmt.Fprintf(tc.Output, "%02x\n", value)
	} else {
		_, err = tc.Output.Write([]byte{value})
	}

	return
}
