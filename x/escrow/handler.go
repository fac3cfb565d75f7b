package escrow

import (
	"context"
	"math/bits"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap"
	"github.com/iov-one/escrowswap/errors"
)

// Processor is the escrow program. It is invoked by the runtime once per
// instruction and moves tokens only through the token service.
type Processor struct {
	tokens escrowswap.TokenService
}

var _ escrowswap.Program = (*Processor)(nil)

// NewProcessor returns the escrow program using given token service to
// move tokens and change custody.
func NewProcessor(tokens escrowswap.TokenService) *Processor {
	return &Processor{tokens: tokens}
}

// Process decodes the instruction payload and dispatches it to the
// matching handler.
func (p *Processor) Process(ctx context.Context, programID solana.PublicKey, accounts []*escrowswap.AccountInfo, data []byte) error {
	ix, err := Decode(data)
	if err != nil {
		return err
	}
	ctx = escrowswap.WithLogInfo(ctx, "instruction", ix.Tag.String())
	escrowswap.GetLogger(ctx).Info("processing", "amount", ix.Amount)
	defer escrowswap.TraceSection(ctx, "process instruction")()

	switch ix.Tag {
	case TagInit:
		return p.processInit(ctx, programID, accounts, ix.Amount)
	case TagExchange:
		return p.processExchange(ctx, programID, accounts, ix.Amount)
	}
	return errors.Wrapf(ErrInvalidInstruction, "unknown tag %d", ix.Tag)
}

// processInit stores the trade terms in the escrow account and gives
// custody of the temporary token account to the derived address.
func (p *Processor) processInit(ctx context.Context, programID solana.PublicKey, accounts []*escrowswap.AccountInfo, amount uint64) error {
	it := escrowswap.NewAccountIter(accounts)
	initializer, err := it.Next()
	if err != nil {
		return err
	}
	// Ownership of the temporary account is verified by the token
	// service when the authority is transferred.
	tempToken, err := it.Next()
	if err != nil {
		return err
	}
	receive, err := it.Next()
	if err != nil {
		return err
	}
	escrowAcct, err := it.Next()
	if err != nil {
		return err
	}
	tokenProgram, err := it.Next()
	if err != nil {
		return err
	}

	if !initializer.IsSigner {
		return errors.Wrap(errors.ErrMissingSignature, "initializer")
	}
	if !receive.Owner.Equals(p.tokens.ID()) {
		return errors.Wrapf(errors.ErrIncorrectProgramID, "receive account owned by %s", receive.Owner)
	}
	rent := escrowswap.GetRent(ctx)
	if !rent.IsExempt(escrowAcct.Lamports, escrowAcct.DataLen()) {
		return errors.Wrapf(ErrNotRentExempt, "escrow account holds %d, requires %d",
			escrowAcct.Lamports, rent.MinimumBalance(escrowAcct.DataLen()))
	}
	if !tokenProgram.Key.Equals(p.tokens.ID()) {
		return errors.Wrapf(errors.ErrIncorrectProgramID, "token program %s", tokenProgram.Key)
	}

	record, err := UnpackUnchecked(escrowAcct.Data)
	if err != nil {
		return errors.Wrap(err, "escrow account")
	}
	if record.IsInitialized() {
		return errors.Wrapf(errors.ErrAlreadyInitialized, "escrow %s", escrowAcct.Key)
	}

	record.Initialized = true
	record.Initializer = initializer.Key
	record.TempToken = tempToken.Key
	record.InitializerReceive = receive.Key
	record.ExpectedAmount = amount
	if err := Pack(record, escrowAcct.Data); err != nil {
		return errors.Wrap(err, "cannot store escrow")
	}

	custody, _, err := Derive(programID)
	if err != nil {
		return err
	}

	escrowswap.GetLogger(ctx).Debug("calling the token program to transfer token account ownership",
		"account", tempToken.Key, "custody", custody)
	if err := p.tokens.SetAuthority(ctx, tempToken, initializer, custody); err != nil {
		return err
	}
	return nil
}

// processExchange pays the initializer, releases the tokens held in custody
// to the taker and closes the trade.
func (p *Processor) processExchange(ctx context.Context, programID solana.PublicKey, accounts []*escrowswap.AccountInfo, amount uint64) error {
	it := escrowswap.NewAccountIter(accounts)
	taker, err := it.Next()
	if err != nil {
		return err
	}
	takerPay, err := it.Next()
	if err != nil {
		return err
	}
	takerReceive, err := it.Next()
	if err != nil {
		return err
	}
	tempToken, err := it.Next()
	if err != nil {
		return err
	}
	initializer, err := it.Next()
	if err != nil {
		return err
	}
	initializerReceive, err := it.Next()
	if err != nil {
		return err
	}
	escrowAcct, err := it.Next()
	if err != nil {
		return err
	}
	tokenProgram, err := it.Next()
	if err != nil {
		return err
	}
	custody, err := it.Next()
	if err != nil {
		return err
	}

	if !taker.IsSigner {
		return errors.Wrap(errors.ErrMissingSignature, "taker")
	}

	held, err := p.tokens.Balance(tempToken)
	if err != nil {
		return errors.Wrap(err, "temporary token account")
	}
	if held != amount {
		return errors.Wrapf(ErrExpectedAmountMismatch, "taker expects %d, custody holds %d", amount, held)
	}

	custodyAddr, bump, err := Derive(programID)
	if err != nil {
		return err
	}

	record, err := Unpack(escrowAcct.Data)
	if err != nil {
		return errors.Wrap(err, "escrow account")
	}
	if !record.IsInitialized() {
		return errors.Wrapf(errors.ErrInvalidAccountData, "escrow %s not initialized", escrowAcct.Key)
	}
	if !record.TempToken.Equals(tempToken.Key) {
		return errors.Wrap(errors.ErrInvalidAccountData, "temporary token account does not match escrow")
	}
	if !record.Initializer.Equals(initializer.Key) {
		return errors.Wrap(errors.ErrInvalidAccountData, "initializer does not match escrow")
	}
	if !record.InitializerReceive.Equals(initializerReceive.Key) {
		return errors.Wrap(errors.ErrInvalidAccountData, "initializer receive account does not match escrow")
	}
	if !tokenProgram.Key.Equals(p.tokens.ID()) {
		return errors.Wrapf(errors.ErrIncorrectProgramID, "token program %s", tokenProgram.Key)
	}
	if !custody.Key.Equals(custodyAddr) {
		return errors.Wrapf(errors.ErrInvalidAccountData, "custody address %s", custody.Key)
	}

	seeds := SignerSeeds(bump)
	logger := escrowswap.GetLogger(ctx)

	logger.Debug("calling the token program to transfer tokens to the escrow's initializer",
		"amount", record.ExpectedAmount)
	if err := p.tokens.Transfer(ctx, takerPay, initializerReceive, taker, record.ExpectedAmount); err != nil {
		return err
	}

	logger.Debug("calling the token program to transfer tokens to the taker", "amount", held)
	if err := p.tokens.Transfer(ctx, tempToken, takerReceive, custody, held, seeds...); err != nil {
		return err
	}

	logger.Debug("calling the token program to close the temporary token account")
	if err := p.tokens.CloseAccount(ctx, tempToken, initializer, custody, seeds...); err != nil {
		return err
	}

	logger.Debug("closing the escrow account")
	total, carry := bits.Add64(initializer.Lamports, escrowAcct.Lamports, 0)
	if carry != 0 {
		return errors.Wrapf(ErrAmountOverflow, "%d + %d", initializer.Lamports, escrowAcct.Lamports)
	}
	initializer.Lamports = total
	escrowAcct.Lamports = 0
	for i := range escrowAcct.Data {
		escrowAcct.Data[i] = 0
	}
	escrowAcct.Data = escrowAcct.Data[:0]
	return nil
}
