package escrow

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap"
	"github.com/iov-one/escrowswap/errors"
)

// Tag selects the instruction variant. It is the first byte of the payload.
type Tag uint8

const (
	// TagInit starts a trade. Accounts expected:
	//
	//   0. [signer]   initializer
	//   1. [writable] temporary token account holding the offered tokens
	//   2. []         initializer's token account to receive the payment
	//   3. [writable] escrow account, the record is written here
	//   4. []         token program
	TagInit Tag = 0

	// TagExchange takes a trade. Accounts expected:
	//
	//   0. [signer]   taker
	//   1. [writable] taker's token account to pay from
	//   2. [writable] taker's token account to receive into
	//   3. [writable] temporary token account held in custody
	//   4. [writable] initializer's main account, receives the reclaimed balances
	//   5. [writable] initializer's token account to receive the payment
	//   6. [writable] escrow account
	//   7. []         token program
	//   8. []         derived custody address
	TagExchange Tag = 1
)

// InstructionLen is the size of an encoded instruction: a tag followed by
// a little endian u64 amount.
const InstructionLen = 1 + 8

func (t Tag) String() string {
	switch t {
	case TagInit:
		return "Init"
	case TagExchange:
		return "Exchange"
	default:
		return fmt.Sprintf("Tag(%d)", uint8(t))
	}
}

// Instruction is a decoded escrow instruction. For Init the amount is what
// the initializer expects in return; for Exchange it is what the taker
// expects to receive from custody.
type Instruction struct {
	Tag    Tag
	Amount uint64
}

// Init returns an Init instruction.
func Init(amount uint64) Instruction {
	return Instruction{Tag: TagInit, Amount: amount}
}

// Exchange returns an Exchange instruction.
func Exchange(amount uint64) Instruction {
	return Instruction{Tag: TagExchange, Amount: amount}
}

func (i Instruction) String() string {
	return fmt.Sprintf("%s{amount: %d}", i.Tag, i.Amount)
}

// Decode reads an instruction from its wire format. Bytes past the amount
// field are ignored.
func Decode(raw []byte) (Instruction, error) {
	if len(raw) < 1 {
		return Instruction{}, errors.Wrap(ErrInvalidInstruction, "empty payload")
	}
	tag := Tag(raw[0])
	switch tag {
	case TagInit, TagExchange:
	default:
		return Instruction{}, errors.Wrapf(ErrInvalidInstruction, "unknown tag %d", raw[0])
	}
	if len(raw) < InstructionLen {
		return Instruction{}, errors.Wrapf(ErrInvalidInstruction, "amount truncated to %d bytes", len(raw)-1)
	}
	return Instruction{
		Tag:    tag,
		Amount: binary.LittleEndian.Uint64(raw[1:InstructionLen]),
	}, nil
}

// Encode returns the wire format of an instruction.
func Encode(i Instruction) []byte {
	raw := make([]byte, InstructionLen)
	raw[0] = uint8(i.Tag)
	binary.LittleEndian.PutUint64(raw[1:], i.Amount)
	return raw
}

// InitAccounts are the accounts of an Init instruction.
type InitAccounts struct {
	Initializer  solana.PublicKey
	TempToken    solana.PublicKey
	ReceiveToken solana.PublicKey
	Escrow       solana.PublicKey
	TokenProgram solana.PublicKey
}

// NewInitInstruction builds an Init instruction ready to be submitted to
// the runtime.
func NewInitInstruction(programID solana.PublicKey, accounts InitAccounts, amount uint64) *escrowswap.Instruction {
	return escrowswap.NewInstruction(programID, []*solana.AccountMeta{
		meta(accounts.Initializer, false, true),
		meta(accounts.TempToken, true, false),
		meta(accounts.ReceiveToken, false, false),
		meta(accounts.Escrow, true, false),
		meta(accounts.TokenProgram, false, false),
	}, Encode(Init(amount)))
}

// ExchangeAccounts are the accounts of an Exchange instruction.
type ExchangeAccounts struct {
	Taker              solana.PublicKey
	TakerPayToken      solana.PublicKey
	TakerReceiveToken  solana.PublicKey
	TempToken          solana.PublicKey
	Initializer        solana.PublicKey
	InitializerReceive solana.PublicKey
	Escrow             solana.PublicKey
	TokenProgram       solana.PublicKey
	Custody            solana.PublicKey
}

// NewExchangeInstruction builds an Exchange instruction ready to be
// submitted to the runtime.
func NewExchangeInstruction(programID solana.PublicKey, accounts ExchangeAccounts, amount uint64) *escrowswap.Instruction {
	return escrowswap.NewInstruction(programID, []*solana.AccountMeta{
		meta(accounts.Taker, false, true),
		meta(accounts.TakerPayToken, true, false),
		meta(accounts.TakerReceiveToken, true, false),
		meta(accounts.TempToken, true, false),
		meta(accounts.Initializer, true, false),
		meta(accounts.InitializerReceive, true, false),
		meta(accounts.Escrow, true, false),
		meta(accounts.TokenProgram, false, false),
		meta(accounts.Custody, false, false),
	}, Encode(Exchange(amount)))
}

func meta(key solana.PublicKey, writable, signer bool) *solana.AccountMeta {
	return &solana.AccountMeta{
		PublicKey:  key,
		IsWritable: writable,
		IsSigner:   signer,
	}
}
