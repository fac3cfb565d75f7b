package weavetest

import (
	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap"
)

// Signer returns a writable system account with given balance that signed
// the instruction.
func Signer(lamports uint64) *escrowswap.AccountInfo {
	return escrowswap.NewAccountInfo(NewPubkey(), &escrowswap.Account{
		Lamports: lamports,
		Owner:    solana.SystemProgramID,
	}, true, true)
}

// Writable returns a writable account with a random key.
func Writable(owner solana.PublicKey, lamports uint64, data []byte) *escrowswap.AccountInfo {
	return escrowswap.NewAccountInfo(NewPubkey(), &escrowswap.Account{
		Lamports: lamports,
		Owner:    owner,
		Data:     data,
	}, false, true)
}

// Readonly returns a read only account with a random key.
func Readonly(owner solana.PublicKey, data []byte) *escrowswap.AccountInfo {
	return escrowswap.NewAccountInfo(NewPubkey(), &escrowswap.Account{
		Owner: owner,
		Data:  data,
	}, false, false)
}

// Key returns a read only view of an unfunded account that holds nothing
// but its identity, such as a program or a derived address.
func Key(key solana.PublicKey) *escrowswap.AccountInfo {
	return escrowswap.NewAccountInfo(key, nil, false, false)
}

// RentExempt returns a writable account holding size bytes of zeroed data
// and exactly the balance required to be exempt from rent.
func RentExempt(owner solana.PublicKey, size int) *escrowswap.AccountInfo {
	rent := escrowswap.DefaultRent()
	return Writable(owner, rent.MinimumBalance(size), make([]byte, size))
}
