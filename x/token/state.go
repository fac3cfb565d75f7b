package token

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap/errors"
)

// AccountLen is the fixed size of an encoded token account.
const AccountLen = 32 + 32 + 8 + 1

const (
	offMint      = 0
	offAuthority = 32
	offAmount    = 64
	offState     = 72
)

// Account is the state of a token account.
type Account struct {
	Mint        solana.PublicKey
	Authority   solana.PublicKey
	Amount      uint64
	Initialized bool
}

// Pack writes the account into the first AccountLen bytes of dst.
func Pack(a *Account, dst []byte) error {
	if len(dst) < AccountLen {
		return errors.Wrapf(errors.ErrInvalidAccountData, "token account needs %d bytes, got %d", AccountLen, len(dst))
	}
	copy(dst[offMint:offAuthority], a.Mint[:])
	copy(dst[offAuthority:offAmount], a.Authority[:])
	binary.LittleEndian.PutUint64(dst[offAmount:offState], a.Amount)
	dst[offState] = 0
	if a.Initialized {
		dst[offState] = 1
	}
	return nil
}

// Unpack reads a token account.
func Unpack(src []byte) (*Account, error) {
	if len(src) < AccountLen {
		return nil, errors.Wrapf(errors.ErrInvalidAccountData, "token account needs %d bytes, got %d", AccountLen, len(src))
	}
	var a Account
	switch src[offState] {
	case 0:
	case 1:
		a.Initialized = true
	default:
		return nil, errors.Wrapf(errors.ErrInvalidAccountData, "state %d", src[offState])
	}
	copy(a.Mint[:], src[offMint:offAuthority])
	copy(a.Authority[:], src[offAuthority:offAmount])
	a.Amount = binary.LittleEndian.Uint64(src[offAmount:offState])
	return &a, nil
}
