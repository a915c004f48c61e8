package emulator

import (
	"errors"

	"github.com/ezrec/sap1/translate"
)

var f = translate.From

var (
	ErrTickLimit = errors.New(f("tick limit exceeded"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address uint8
	Err     error
}

func (err *ErrRuntime) Error() string {
	return f("address 0x%x %v", err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrLoadTimeout indicates the load handshake stalled.
type ErrLoadTimeout struct {
	Address uint8
	Signal  string
}

func (err *ErrLoadTimeout) Error() string {
	return f("load timeout at 0x%x waiting for %v", err.Address, err.Signal)
}
