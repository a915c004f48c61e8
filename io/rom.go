package io

import (
	"iter"
	"slices"
)

// Rom is a read-only in-memory byte image.
type Rom struct {
	Data []byte
}

var _ Channel = (*Rom)(nil)

func (rc *Rom) Rewind() {
}

func (rc *Rom) Receive() iter.Seq[byte] {
	return slices.Values(rc.Data)
}

func (rc *Rom) Send(value byte) error {
	return ErrChannelFull
}
