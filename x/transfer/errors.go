package transfer

import (
	"github.com/iov-one/escrowswap/errors"
)

// transfer takes 1200-1299
var (
	ErrInvalidInstructionData = errors.Register(1200, "invalid instruction data")
)
