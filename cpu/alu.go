package cpu

// Alu is the combinational adder/subtractor.
//
// Subtraction adds the two's complement of b, so carry is set when no borrow
// occurred. Results wrap modulo 256.
func Alu(a, b byte, subtract bool) (result byte, carry, zero bool) {
	rhs := uint16(b)
	if subtract {
		rhs = uint16(b^0xff) + 1
	}

	sum := uint16(a) + rhs
	result = byte(sum)
	carry = (sum>>8)&1 == 1
	zero = result == 0

	return
}
