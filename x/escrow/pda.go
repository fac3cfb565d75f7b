package escrow

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap/errors"
)

// custodySeed is the label the custody address is derived from.
const custodySeed = "escrow"

// Derive returns the custody address of the escrow program together with
// the bump seed that pushes it off the ed25519 curve. The address has no
// private key; only the program can sign for it by providing SignerSeeds.
func Derive(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress([][]byte{[]byte(custodySeed)}, programID)
	if err != nil {
		return solana.PublicKey{}, 0, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return addr, bump, nil
}

// SignerSeeds returns the seeds that authorize an invocation as the custody
// address. Every call returns a fresh copy.
func SignerSeeds(bump uint8) [][]byte {
	return [][]byte{[]byte(custodySeed), {bump}}
}
