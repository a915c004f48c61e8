package io

import (
	"github.com/ezrec/sap1/internal"
)

// ReceiveImage reads a memory image of exactly size bytes from a channel.
// Short inputs are padded with zeros; longer inputs are an error.
func ReceiveImage(ch Channel, size int) (image []byte, err error) {
	image = make([]byte, 0, size)

	for value := range ch.Receive() {
		if len(image) == size {
			err = ErrImageSize
			image = nil
			return
		}
		image = append(image, value)
	}

	for value := range internal.IterSeqRepeat(byte(0), size-len(image)) {
		image = append(image, value)
	}

	return
}

// SendImage writes every byte of an image to a channel.
func SendImage(ch Channel, image []byte) (err error) {
	for _, value := range image {
		err = ch.Send(value)
		if err != nil {
			return
		}
	}
	return
}
