package cpu

import (
	"errors"

	"github.com/ezrec/sap1/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrBusContention   = errors.New(f("bus contention"))
	ErrOpcodeUndefined = errors.New(f("opcode undefined"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrOriginSyntax       = errors.New(f(".org syntax"))
	ErrByteSyntax         = errors.New(f(".byte syntax"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrOperandExtra       = errors.New(f("excessive operands"))
	ErrOperandMissing     = errors.New(f("operand missing"))
	ErrOperandRange       = errors.New(f("operand out of range"))
	ErrValueRange         = errors.New(f("value out of range"))
	ErrAddressDuplicate   = errors.New(f("address already assembled"))
	ErrImageFull          = errors.New(f("memory image full"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

type ErrBusDrivers Signal

func (eb ErrBusDrivers) Error() string {
	return f("drivers %v", Signal(eb).String())
}

type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%02x %v", uint8(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
