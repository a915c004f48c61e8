package io

import (
	"errors"

	"github.com/ezrec/sap1/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull = errors.New(f("channel full"))
	ErrImageSize   = errors.New(f("image too large"))
)
