package escrow

import (
	"github.com/iov-one/escrowswap/errors"
)

// Status codes of the escrow program
// escrow takes 1000-1099
var (
	// ErrInvalidInstruction is returned when the instruction payload has an
	// unknown tag or is truncated.
	ErrInvalidInstruction = errors.Register(1000, "invalid instruction")

	// ErrNotRentExempt is returned when the escrow account balance is
	// insufficient to persist the escrow record.
	ErrNotRentExempt = errors.Register(1001, "not rent exempt")

	// ErrExpectedAmountMismatch is returned when the amount declared by the
	// taker differs from the amount held in custody.
	ErrExpectedAmountMismatch = errors.Register(1002, "expected amount mismatch")

	// ErrAmountOverflow is returned when balance arithmetic overflows
	// while reclaiming the escrow account.
	ErrAmountOverflow = errors.Register(1003, "amount overflow")
)
