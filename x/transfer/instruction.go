package transfer

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap"
	"github.com/iov-one/escrowswap/errors"
)

// InstructionLen is the size of an encoded instruction: a little endian
// u64 amount.
const InstructionLen = 8

// Instruction moves Amount lamports. Accounts expected:
//
//  0. [writable] source, owned by the program
//  1. [writable] destination
type Instruction struct {
	Amount uint64
}

// Decode reads an instruction. Bytes past the amount are ignored.
func Decode(raw []byte) (Instruction, error) {
	if len(raw) < InstructionLen {
		return Instruction{}, errors.Wrapf(ErrInvalidInstructionData, "amount needs %d bytes, got %d", InstructionLen, len(raw))
	}
	return Instruction{Amount: binary.LittleEndian.Uint64(raw)}, nil
}

// Encode returns the wire format of an instruction.
func Encode(i Instruction) []byte {
	raw := make([]byte, InstructionLen)
	binary.LittleEndian.PutUint64(raw, i.Amount)
	return raw
}

// NewTransferInstruction builds a Transfer instruction ready to be
// submitted to the runtime.
func NewTransferInstruction(programID, source, destination solana.PublicKey, amount uint64) *escrowswap.Instruction {
	return escrowswap.NewInstruction(programID, []*solana.AccountMeta{
		{PublicKey: source, IsWritable: true},
		{PublicKey: destination, IsWritable: true},
	}, Encode(Instruction{Amount: amount}))
}
