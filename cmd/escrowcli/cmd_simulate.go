package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap"
	"github.com/iov-one/escrowswap/errors"
	"github.com/iov-one/escrowswap/gconf"
	"github.com/iov-one/escrowswap/ledger"
	"github.com/iov-one/escrowswap/store"
	"github.com/iov-one/escrowswap/store/iavl"
	"github.com/iov-one/escrowswap/x/escrow"
	"github.com/iov-one/escrowswap/x/token"
	"github.com/iov-one/escrowswap/x/transfer"
	"github.com/tendermint/tendermint/libs/log"
)

func cmdSimulate(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), `
Run a complete trade on a local ledger and print the resulting balances.
The initializer deposits X tokens in custody and expects Y tokens in
return. The taker pays the expected amount of Y and receives the deposit.
		`)
		fl.PrintDefaults()
	}
	var (
		homeFl     = fl.String("home", "", "Directory to persist the ledger in. An in-memory ledger is used if not provided.")
		depositFl  = fl.Uint64("deposit", 10, "Amount of X tokens the initializer puts in custody.")
		expectedFl = fl.Uint64("expected", 10, "Amount of Y tokens the initializer expects in return.")
		genesisFl  = fl.String("genesis", "", "Optional genesis file with the ledger configuration.")
		logLevelFl = fl.String("log-level", "error", "Log level: debug, info, error or none.")
	)
	fl.Parse(args)

	logger, err := newLogger(*logLevelFl)
	if err != nil {
		return err
	}
	ctx := escrowswap.WithLogger(context.Background(), logger)

	db, err := openStore(*homeFl)
	if err != nil {
		return err
	}
	defer db.Close()

	if *genesisFl != "" {
		opts, err := gconf.LoadGenesis(*genesisFl)
		if err != nil {
			return err
		}
		if err := ledger.InitGenesis(db, opts); err != nil {
			return errors.Wrap(err, "genesis")
		}
	}

	balances, err := simulate(ctx, db, *depositFl, *expectedFl)
	if err != nil {
		return err
	}
	id, err := db.Commit()
	if err != nil {
		return err
	}

	for _, b := range balances {
		fmt.Fprintf(output, "%s\tX=%d\tY=%d\tlamports=%d\n", b.name, b.x, b.y, b.lamports)
	}
	_, err = fmt.Fprintf(output, "version=%d\thash=%X\n", id.Version, id.Hash)
	return err
}

func newLogger(level string) (log.Logger, error) {
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	return log.NewFilter(logger, opt), nil
}

func openStore(home string) (store.CommitKVStore, error) {
	if home == "" {
		return iavl.MockCommitStore(), nil
	}
	if err := os.MkdirAll(home, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	db, err := iavl.NewCommitStore(home, "escrow")
	if err != nil {
		return nil, err
	}
	return db, nil
}

// partyLamports is the native balance each party starts with.
const partyLamports = 1000000000

// partyBalance is the state of a trade participant after the simulation.
type partyBalance struct {
	name     string
	x, y     uint64
	lamports uint64
}

// simulate runs a trade between two freshly created parties.
func simulate(ctx context.Context, db store.CacheableKVStore, deposit, expected uint64) ([]partyBalance, error) {
	l, err := ledger.New(db)
	if err != nil {
		return nil, err
	}
	l.SetDebug(*debugFl)
	tokens := token.NewService()
	programID := newKey()
	l.Register(programID, escrow.NewProcessor(tokens))
	custody, _, err := escrow.Derive(programID)
	if err != nil {
		return nil, err
	}

	// Both parties are funded from a faucet owned by the transfer program.
	transferID := newKey()
	l.Register(transferID, transfer.NewProcessor())
	faucet := newKey()
	err = l.SetAccount(faucet, &escrowswap.Account{Lamports: 2 * partyLamports, Owner: transferID})
	if err != nil {
		return nil, err
	}

	mintX, mintY := newKey(), newKey()
	alice, bob := newKey(), newKey()
	for _, k := range []solana.PublicKey{alice, bob} {
		if err := l.Execute(ctx, transfer.NewTransferInstruction(transferID, faucet, k, partyLamports)); err != nil {
			return nil, errors.Wrap(err, "fund")
		}
	}

	rent := l.Rent()
	newTokenAccount := func(mint, authority solana.PublicKey, amount uint64) (solana.PublicKey, error) {
		acct, err := tokens.NewAccount(mint, authority, amount, rent.MinimumBalance(token.AccountLen))
		if err != nil {
			return solana.PublicKey{}, err
		}
		key := newKey()
		return key, l.SetAccount(key, acct)
	}
	aliceX, err := newTokenAccount(mintX, alice, deposit)
	if err != nil {
		return nil, err
	}
	aliceY, err := newTokenAccount(mintY, alice, 0)
	if err != nil {
		return nil, err
	}
	bobX, err := newTokenAccount(mintX, bob, 0)
	if err != nil {
		return nil, err
	}
	bobY, err := newTokenAccount(mintY, bob, expected)
	if err != nil {
		return nil, err
	}

	escrowKey := newKey()
	err = l.SetAccount(escrowKey, &escrowswap.Account{
		Lamports: rent.MinimumBalance(escrow.RecordLen),
		Owner:    programID,
		Data:     make([]byte, escrow.RecordLen),
	})
	if err != nil {
		return nil, err
	}

	initIx := escrow.NewInitInstruction(programID, escrow.InitAccounts{
		Initializer:  alice,
		TempToken:    aliceX,
		ReceiveToken: aliceY,
		Escrow:       escrowKey,
		TokenProgram: tokens.ID(),
	}, expected)
	if err := l.Execute(ctx, initIx, alice); err != nil {
		return nil, errors.Wrap(err, "init")
	}

	exchangeIx := escrow.NewExchangeInstruction(programID, escrow.ExchangeAccounts{
		Taker:              bob,
		TakerPayToken:      bobY,
		TakerReceiveToken:  bobX,
		TempToken:          aliceX,
		Initializer:        alice,
		InitializerReceive: aliceY,
		Escrow:             escrowKey,
		TokenProgram:       tokens.ID(),
		Custody:            custody,
	}, deposit)
	if err := l.Execute(ctx, exchangeIx, bob); err != nil {
		return nil, errors.Wrap(err, "exchange")
	}

	report := func(name string, main, x, y solana.PublicKey) (partyBalance, error) {
		b := partyBalance{name: name}
		var err error
		if b.lamports, err = lamportsOf(l, main); err != nil {
			return b, err
		}
		if b.x, err = tokenBalance(l, tokens, x); err != nil {
			return b, err
		}
		b.y, err = tokenBalance(l, tokens, y)
		return b, err
	}
	a, err := report("initializer", alice, aliceX, aliceY)
	if err != nil {
		return nil, err
	}
	b, err := report("taker", bob, bobX, bobY)
	if err != nil {
		return nil, err
	}
	return []partyBalance{a, b}, nil
}

func newKey() solana.PublicKey {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		panic(err)
	}
	return key.PublicKey()
}

func lamportsOf(l *ledger.Ledger, key solana.PublicKey) (uint64, error) {
	acct, err := l.Account(key)
	if err != nil || acct == nil {
		return 0, err
	}
	return acct.Lamports, nil
}

// tokenBalance returns the balance of a token account. A closed account
// holds nothing.
func tokenBalance(l *ledger.Ledger, tokens *token.Service, key solana.PublicKey) (uint64, error) {
	acct, err := l.Account(key)
	if err != nil || acct == nil {
		return 0, err
	}
	return tokens.Balance(escrowswap.NewAccountInfo(key, acct, false, false))
}
