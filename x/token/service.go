package token

import (
	"context"
	"math/bits"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap"
	"github.com/iov-one/escrowswap/errors"
)

// Service implements escrowswap.TokenService over token accounts it owns.
type Service struct {
	id solana.PublicKey
}

var _ escrowswap.TokenService = (*Service)(nil)

// NewService returns a token service identified by the well known token
// program address.
func NewService() *Service {
	return NewServiceWithID(solana.TokenProgramID)
}

// NewServiceWithID returns a token service using a custom identity.
func NewServiceWithID(id solana.PublicKey) *Service {
	return &Service{id: id}
}

// ID implements escrowswap.TokenService.
func (s *Service) ID() solana.PublicKey {
	return s.id
}

// Balance implements escrowswap.TokenService.
func (s *Service) Balance(account *escrowswap.AccountInfo) (uint64, error) {
	ta, err := s.load(account)
	if err != nil {
		return 0, err
	}
	return ta.Amount, nil
}

// SetAuthority implements escrowswap.TokenService.
func (s *Service) SetAuthority(
	ctx context.Context,
	account, authority *escrowswap.AccountInfo,
	newAuthority solana.PublicKey,
	signerSeeds ...[]byte,
) error {
	if err := writable(account); err != nil {
		return err
	}
	ta, err := s.load(account)
	if err != nil {
		return err
	}
	if err := authorize(ctx, ta, authority, signerSeeds); err != nil {
		return err
	}
	ta.Authority = newAuthority
	return Pack(ta, account.Data)
}

// Transfer implements escrowswap.TokenService.
func (s *Service) Transfer(
	ctx context.Context,
	source, destination, authority *escrowswap.AccountInfo,
	amount uint64,
	signerSeeds ...[]byte,
) error {
	if err := writable(source); err != nil {
		return err
	}
	if err := writable(destination); err != nil {
		return err
	}
	src, err := s.load(source)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	dst, err := s.load(destination)
	if err != nil {
		return errors.Wrap(err, "destination")
	}
	if !src.Mint.Equals(dst.Mint) {
		return errors.Wrapf(ErrMintMismatch, "%s to %s", src.Mint, dst.Mint)
	}
	if err := authorize(ctx, src, authority, signerSeeds); err != nil {
		return err
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "holds %d, requested %d", src.Amount, amount)
	}
	// Both views share the same storage.
	if source.Key.Equals(destination.Key) {
		return nil
	}
	total, carry := bits.Add64(dst.Amount, amount, 0)
	if carry != 0 {
		return errors.Wrapf(errors.ErrOverflow, "%d + %d", dst.Amount, amount)
	}
	src.Amount -= amount
	dst.Amount = total
	if err := Pack(src, source.Data); err != nil {
		return err
	}
	return Pack(dst, destination.Data)
}

// CloseAccount implements escrowswap.TokenService.
func (s *Service) CloseAccount(
	ctx context.Context,
	account, destination, authority *escrowswap.AccountInfo,
	signerSeeds ...[]byte,
) error {
	if err := writable(account); err != nil {
		return err
	}
	if err := writable(destination); err != nil {
		return err
	}
	ta, err := s.load(account)
	if err != nil {
		return err
	}
	if err := authorize(ctx, ta, authority, signerSeeds); err != nil {
		return err
	}
	if ta.Amount != 0 {
		return errors.Wrapf(ErrNonZeroBalance, "holds %d", ta.Amount)
	}
	if account.Key.Equals(destination.Key) {
		return errors.Wrap(errors.ErrInvalidInput, "cannot close into itself")
	}
	total, carry := bits.Add64(destination.Lamports, account.Lamports, 0)
	if carry != 0 {
		return errors.Wrapf(errors.ErrOverflow, "%d + %d", destination.Lamports, account.Lamports)
	}
	destination.Lamports = total
	account.Lamports = 0
	for i := range account.Data {
		account.Data[i] = 0
	}
	return nil
}

// load returns the initialized token account state held by given account.
func (s *Service) load(account *escrowswap.AccountInfo) (*Account, error) {
	if !account.Owner.Equals(s.id) {
		return nil, errors.Wrapf(errors.ErrIncorrectProgramID, "account %s owned by %s", account.Key, account.Owner)
	}
	ta, err := Unpack(account.Data)
	if err != nil {
		return nil, err
	}
	if !ta.Initialized {
		return nil, errors.Wrapf(errors.ErrInvalidAccountData, "account %s not initialized", account.Key)
	}
	return ta, nil
}

func writable(account *escrowswap.AccountInfo) error {
	if !account.IsWritable {
		return errors.Wrapf(errors.ErrReadonlyAccount, "account %s", account.Key)
	}
	return nil
}

// authorize returns nil if the authority given is in control of the token
// account and approved the operation.
func authorize(ctx context.Context, ta *Account, authority *escrowswap.AccountInfo, signerSeeds [][]byte) error {
	if !ta.Authority.Equals(authority.Key) {
		return errors.Wrapf(errors.ErrMissingSignature, "%s is not the authority", authority.Key)
	}
	if authority.IsSigner {
		return nil
	}
	if len(signerSeeds) == 0 {
		return errors.Wrapf(errors.ErrMissingSignature, "authority %s", authority.Key)
	}
	program, ok := escrowswap.GetProgramID(ctx)
	if !ok {
		return errors.Wrap(errors.ErrMissingSignature, "no invoking program")
	}
	addr, err := solana.CreateProgramAddress(signerSeeds, program)
	if err != nil || !addr.Equals(authority.Key) {
		return errors.Wrapf(errors.ErrMissingSignature, "seeds do not derive %s", authority.Key)
	}
	return nil
}

// InitializeAccount turns acct into an empty token account of given mint,
// controlled by authority and owned by the service.
func (s *Service) InitializeAccount(acct *escrowswap.Account, mint, authority solana.PublicKey) error {
	if len(acct.Data) < AccountLen {
		acct.Data = make([]byte, AccountLen)
	}
	if prev, err := Unpack(acct.Data); err == nil && prev.Initialized {
		return errors.Wrap(errors.ErrAlreadyInitialized, "token account")
	}
	acct.Owner = s.id
	return Pack(&Account{
		Mint:        mint,
		Authority:   authority,
		Initialized: true,
	}, acct.Data)
}

// MintTo creates amount of new tokens in given token account.
func (s *Service) MintTo(acct *escrowswap.Account, amount uint64) error {
	if !acct.Owner.Equals(s.id) {
		return errors.Wrapf(errors.ErrIncorrectProgramID, "owned by %s", acct.Owner)
	}
	ta, err := Unpack(acct.Data)
	if err != nil {
		return err
	}
	if !ta.Initialized {
		return errors.Wrap(errors.ErrInvalidAccountData, "not initialized")
	}
	total, carry := bits.Add64(ta.Amount, amount, 0)
	if carry != 0 {
		return errors.Wrapf(errors.ErrOverflow, "%d + %d", ta.Amount, amount)
	}
	ta.Amount = total
	return Pack(ta, acct.Data)
}

// NewAccount returns a funded token account ready to be stored by a
// runtime.
func (s *Service) NewAccount(mint, authority solana.PublicKey, amount, lamports uint64) (*escrowswap.Account, error) {
	acct := &escrowswap.Account{Lamports: lamports}
	if err := s.InitializeAccount(acct, mint, authority); err != nil {
		return nil, err
	}
	if err := s.MintTo(acct, amount); err != nil {
		return nil, err
	}
	return acct, nil
}
