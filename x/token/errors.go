package token

import (
	"github.com/iov-one/escrowswap/errors"
)

// token takes 1100-1199
var (
	ErrMintMismatch   = errors.Register(1100, "mint mismatch")
	ErrNonZeroBalance = errors.Register(1101, "non zero balance")
)
