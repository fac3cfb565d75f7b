package escrowswap

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// Program is the deterministic logic a runtime invokes once per
// instruction. A program returns the first failing check as an error; the
// runtime discards every mutation of a failed instruction.
type Program interface {
	Process(ctx context.Context, programID solana.PublicKey, accounts []*AccountInfo, data []byte) error
}

// ProgramFunc is a function adapter for the Program interface.
type ProgramFunc func(ctx context.Context, programID solana.PublicKey, accounts []*AccountInfo, data []byte) error

// Process calls fn.
func (fn ProgramFunc) Process(ctx context.Context, programID solana.PublicKey, accounts []*AccountInfo, data []byte) error {
	return fn(ctx, programID, accounts, data)
}

// TokenService is the asset-transfer service a program invokes to move
// tokens and change custody. It owns all token accounts.
//
// Every mutating call is authorized either by the authority account having
// signed the transaction, or, when signerSeeds are provided, by the
// authority being the address derived from those seeds and the invoking
// program identity.
type TokenService interface {
	// ID returns the identity of the service. It owns every token account.
	ID() solana.PublicKey

	// Balance returns the amount of tokens held by a token account.
	Balance(account *AccountInfo) (uint64, error)

	// SetAuthority transfers control over account from authority to
	// newAuthority.
	SetAuthority(ctx context.Context, account, authority *AccountInfo, newAuthority solana.PublicKey, signerSeeds ...[]byte) error

	// Transfer moves amount of tokens from source to destination.
	Transfer(ctx context.Context, source, destination, authority *AccountInfo, amount uint64, signerSeeds ...[]byte) error

	// CloseAccount releases an empty token account, moving its native
	// balance to destination.
	CloseAccount(ctx context.Context, account, destination, authority *AccountInfo, signerSeeds ...[]byte) error
}

// Instruction is a single program invocation as submitted to a runtime.
type Instruction struct {
	Program solana.PublicKey
	Metas   []*solana.AccountMeta
	Payload []byte
}

var _ solana.Instruction = (*Instruction)(nil)

// NewInstruction returns an instruction calling program with given
// positional accounts and payload.
func NewInstruction(program solana.PublicKey, metas []*solana.AccountMeta, payload []byte) *Instruction {
	return &Instruction{
		Program: program,
		Metas:   metas,
		Payload: payload,
	}
}

// ProgramID implements solana.Instruction.
func (i *Instruction) ProgramID() solana.PublicKey {
	return i.Program
}

// Accounts implements solana.Instruction.
func (i *Instruction) Accounts() []*solana.AccountMeta {
	return i.Metas
}

// Data implements solana.Instruction.
func (i *Instruction) Data() ([]byte, error) {
	return i.Payload, nil
}
