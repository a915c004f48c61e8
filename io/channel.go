// Package io provides byte stream channels for the machine's program input
// and output ports: Tape for external readers and writers, and Rom for an
// in-memory image.
package io

import (
	"iter"
)

// Channel defines the interface for all byte channels.
type Channel interface {
	// Rewind resets the channel to its initial state, if possible.
	Rewind()
	// Receive returns an iterator that yields bytes from the channel.
	Receive() iter.Seq[byte]
	// Send writes a single byte to the channel.
	Send(value byte) error
}
