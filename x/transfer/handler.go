package transfer

import (
	"context"
	"math/bits"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap"
	"github.com/iov-one/escrowswap/errors"
)

// Processor is the lamport transfer program.
type Processor struct{}

var _ escrowswap.Program = (*Processor)(nil)

// NewProcessor returns the transfer program.
func NewProcessor() *Processor {
	return &Processor{}
}

// Process implements escrowswap.Program.
func (p *Processor) Process(ctx context.Context, programID solana.PublicKey, accounts []*escrowswap.AccountInfo, data []byte) error {
	defer escrowswap.TraceSection(ctx, "process instruction")()

	done := escrowswap.TraceSection(ctx, "deserialize instruction")
	ix, err := Decode(data)
	done()
	if err != nil {
		return err
	}

	done = escrowswap.TraceSection(ctx, "get account infos")
	it := escrowswap.NewAccountIter(accounts)
	source, err := it.Next()
	if err != nil {
		done()
		return err
	}
	destination, err := it.Next()
	done()
	if err != nil {
		return err
	}

	defer escrowswap.TraceSection(ctx, "execute transfer")()
	return move(programID, source, destination, ix.Amount)
}

func move(programID solana.PublicKey, source, destination *escrowswap.AccountInfo, amount uint64) error {
	if !source.IsWritable {
		return errors.Wrapf(errors.ErrReadonlyAccount, "source %s", source.Key)
	}
	if !destination.IsWritable {
		return errors.Wrapf(errors.ErrReadonlyAccount, "destination %s", destination.Key)
	}
	if !source.Owner.Equals(programID) {
		return errors.Wrapf(errors.ErrIncorrectProgramID, "source owned by %s", source.Owner)
	}
	if source.Lamports < amount {
		return errors.Wrapf(errors.ErrInsufficientFunds, "source account has less than %d lamports", amount)
	}
	// Both views share the same account.
	if source.Key.Equals(destination.Key) {
		return nil
	}
	total, carry := bits.Add64(destination.Lamports, amount, 0)
	if carry != 0 {
		return errors.Wrapf(errors.ErrOverflow, "%d + %d", destination.Lamports, amount)
	}
	source.Lamports -= amount
	destination.Lamports = total
	return nil
}
