// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":      "0",
	"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
	"ADDR_MASK":   fmt.Sprintf("0x%x", ADDR_MASK),
}

// opcodeMap maps mnemonics to opcodes.
var opcodeMap = map[string]Opcode{
	"hlt": OP_HLT,
	"nop": OP_NOP,
	"add": OP_ADD,
	"sub": OP_SUB,
	"lda": OP_LDA,
	"out": OP_OUT,
	"sta": OP_STA,
	"jmp": OP_JMP,
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Assembler is a single pass assembler for the sixteen byte memory image.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of assembled lines.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	addr int
	used [MEMORY_SIZE]bool
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple numeric word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	if len(word) > 2 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(word[1 : len(word)-1])
		return
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int64
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine expands a single line into words, handling character
// constants, expressions, equates and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "0":
				str = "\000"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = slices.DeleteFunc(strings.Split(line, " "), func(a string) bool { return len(a) == 0 })
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if strings.ToLower(words[0]) == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.addr
		words = words[1:]
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Label = make(map[string]int, MEMORY_SIZE)
	asm.Lines = asm.Lines[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	asm.addr = 0
	clear(asm.used[:])

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(strings.ReplaceAll(strings.Split(text, ";")[0], "\t", " "))

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of operand labels.
	for n := range asm.Lines {
		op := &asm.Lines[n]
		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		addr, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		if addr < 0 || addr > ADDR_MASK {
			err = ErrOperandRange
			return
		}
		op.Bytes[0] |= byte(addr)
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// operand evaluates an address operand. Identifiers that are not yet known
// are returned as a label to be linked after the final line.
func (asm *Assembler) operand(word string) (addr uint8, label string, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		if !reIdentifier.MatchString(word) {
			return
		}
		err = nil
		label = word
		return
	}

	if value < 0 || value > ADDR_MASK {
		err = ErrOperandRange
		return
	}

	addr = uint8(value)
	return
}

// emit appends assembled bytes at the current address.
func (asm *Assembler) emit(lineno int, words []string, bytes []byte, label string) (err error) {
	if asm.addr+len(bytes) > MEMORY_SIZE {
		err = ErrImageFull
		return
	}

	for n := range bytes {
		if asm.used[asm.addr+n] {
			err = ErrAddressDuplicate
			return
		}
	}

	for n := range bytes {
		asm.used[asm.addr+n] = true
	}

	asm.Lines = append(asm.Lines, Line{
		LineNo:    lineno,
		Addr:      asm.addr,
		Words:     words,
		Bytes:     bytes,
		LinkLabel: label,
	})
	asm.addr += len(bytes)

	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	directive := strings.ToLower(words[0])
	args := words[1:]

	switch directive {
	case ".org":
		if len(args) != 1 {
			err = ErrOriginSyntax
			return
		}
		var value int64
		value, err = asm.valueOf(args[0])
		if err != nil {
			return
		}
		if value < 0 || value >= MEMORY_SIZE {
			err = ErrValueRange
			return
		}
		asm.addr = int(value)
		return
	case ".byte":
		if len(args) == 0 {
			err = ErrByteSyntax
			return
		}
		bytes := make([]byte, 0, len(args))
		for _, arg := range args {
			var value int64
			value, err = asm.valueOf(arg)
			if err != nil {
				return
			}
			if value < -0x80 || value > 0xff {
				err = ErrValueRange
				return
			}
			bytes = append(bytes, byte(value))
		}
		err = asm.emit(lineno, words, bytes, "")
		return
	}

	op, ok := opcodeMap[directive]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	if len(args) > 1 {
		err = ErrOperandExtra
		return
	}

	if op.HasOperand() && len(args) == 0 {
		err = ErrOperandMissing
		return
	}

	var addr uint8
	var label string
	if len(args) == 1 {
		addr, label, err = asm.operand(args[0])
		if err != nil {
			return
		}
	}

	err = asm.emit(lineno, words, []byte{byte(MakeCode(op, addr))}, label)

	return
}
