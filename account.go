package escrowswap

import (
	"bytes"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap/errors"
)

// Account is the state a ledger runtime keeps for every address.
type Account struct {
	// Lamports is the native balance held by the account.
	Lamports uint64
	// Owner is the program that is allowed to modify the account data
	// and debit its balance.
	Owner solana.PublicKey
	// Data is program specific state.
	Data []byte
	// Executable is set for accounts holding a program.
	Executable bool
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.Data != nil {
		c.Data = append([]byte(nil), a.Data...)
	}
	return &c
}

// Equals returns true if both accounts hold the same state.
func (a *Account) Equals(b *Account) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Lamports == b.Lamports &&
		a.Owner.Equals(b.Owner) &&
		a.Executable == b.Executable &&
		bytes.Equal(a.Data, b.Data)
}

// AccountInfo is the view of an account handed to a program for the
// duration of a single instruction. All programs and services invoked by
// that instruction share the same instance, so mutations are visible to
// every participant and to the runtime once the program returns.
type AccountInfo struct {
	*Account

	Key        solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// NewAccountInfo returns an account view. A nil account is treated as an
// empty, unfunded account.
func NewAccountInfo(key solana.PublicKey, acct *Account, signer, writable bool) *AccountInfo {
	if acct == nil {
		acct = &Account{}
	}
	return &AccountInfo{
		Account:    acct,
		Key:        key,
		IsSigner:   signer,
		IsWritable: writable,
	}
}

// DataLen returns the size of the account data.
func (a *AccountInfo) DataLen() int {
	return len(a.Data)
}

// AccountIter walks positional instruction accounts in order.
type AccountIter struct {
	accounts []*AccountInfo
	pos      int
}

// NewAccountIter returns an iterator over given accounts.
func NewAccountIter(accounts []*AccountInfo) *AccountIter {
	return &AccountIter{accounts: accounts}
}

// Next returns the next account, or ErrNotEnoughAccountKeys when all
// accounts were consumed.
func (it *AccountIter) Next() (*AccountInfo, error) {
	if it.pos >= len(it.accounts) {
		return nil, errors.Wrapf(errors.ErrNotEnoughAccountKeys, "account %d", it.pos)
	}
	a := it.accounts[it.pos]
	it.pos++
	return a, nil
}
