package ledger

import (
	"math"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap"
	"github.com/iov-one/escrowswap/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// storedAccount is the persisted form of an account.
type storedAccount struct {
	Lamports   uint64
	Owner      []byte
	Data       []byte
	Executable bool
}

var accountPrefix = []byte("acct:")

func accountKey(key solana.PublicKey) []byte {
	return append(append([]byte{}, accountPrefix...), key[:]...)
}

func marshalAccount(a *escrowswap.Account) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(storedAccount{
		Lamports:   a.Lamports,
		Owner:      a.Owner[:],
		Data:       a.Data,
		Executable: a.Executable,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return raw, nil
}

func unmarshalAccount(raw []byte) (*escrowswap.Account, error) {
	var s storedAccount
	if err := cdc.UnmarshalBinaryBare(raw, &s); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	a := &escrowswap.Account{
		Lamports:   s.Lamports,
		Data:       s.Data,
		Executable: s.Executable,
	}
	if len(s.Owner) != 0 {
		if len(s.Owner) != len(a.Owner) {
			return nil, errors.Wrapf(errors.ErrDatabase, "owner of %d bytes", len(s.Owner))
		}
		copy(a.Owner[:], s.Owner)
	}
	return a, nil
}

// storedConfig is the persisted form of Config. Amino has no safe float
// encoding so the threshold is kept as its IEEE 754 bits.
type storedConfig struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  uint64
}

func (c *Config) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(storedConfig{
		LamportsPerByteYear: c.Rent.LamportsPerByteYear,
		ExemptionThreshold:  math.Float64bits(c.Rent.ExemptionThreshold),
	})
}

func (c *Config) Unmarshal(raw []byte) error {
	var s storedConfig
	if err := cdc.UnmarshalBinaryBare(raw, &s); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	c.Rent = escrowswap.Rent{
		LamportsPerByteYear: s.LamportsPerByteYear,
		ExemptionThreshold:  math.Float64frombits(s.ExemptionThreshold),
	}
	return nil
}
