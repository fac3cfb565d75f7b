package ledger

import (
	"context"
	"math/bits"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap"
	"github.com/iov-one/escrowswap/errors"
	"github.com/iov-one/escrowswap/store"
)

// Ledger is an in-process account runtime. It executes one instruction at
// a time and either applies all of its effects or none.
type Ledger struct {
	// mu serializes executions.
	mu     sync.Mutex
	db     store.CacheableKVStore
	router *Router
	rent   escrowswap.Rent
	debug  bool
}

// New returns a ledger keeping its accounts in db. Configuration is read
// from db, defaults are used when none was saved.
func New(db store.CacheableKVStore) (*Ledger, error) {
	conf, err := LoadConfig(db)
	if err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return &Ledger{
		db:     db,
		router: NewRouter(),
		rent:   conf.Rent,
	}, nil
}

// Register adds a program the ledger can execute.
func (l *Ledger) Register(id solana.PublicKey, p escrowswap.Program) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.router.Register(id, p)
}

// SetDebug controls how much of a failure is revealed. In debug mode
// execution logs carry full error details with stack traces and errors
// are returned as they are. Otherwise unregistered errors and panics are
// replaced with a generic internal error.
func (l *Ledger) SetDebug(debug bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.debug = debug
}

// Rent returns the storage economics rules of this ledger.
func (l *Ledger) Rent() escrowswap.Rent {
	return l.rent
}

// Account returns the state of an account. A nil account is returned if
// the account does not exist.
func (l *Ledger) Account(key solana.PublicKey) (*escrowswap.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return loadAccount(l.db, key)
}

// SetAccount stores the state of an account, bypassing any program. It
// is meant to seed genesis state and test fixtures.
func (l *Ledger) SetAccount(key solana.PublicKey, acct *escrowswap.Account) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return saveAccount(l.db, key, acct)
}

// Execute runs a single instruction. Every account listed by the
// instruction is loaded once and shared by all positions it appears at.
// When the program fails, or its effects violate the runtime rules, all
// changes are discarded.
func (l *Ledger) Execute(ctx context.Context, ix solana.Instruction, signers ...solana.PublicKey) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	programID := ix.ProgramID()
	ctx = escrowswap.WithLogInfo(ctx, "program", programID.String())
	logger := escrowswap.GetLogger(ctx)

	cache := l.db.CacheWrap()
	err := l.execute(ctx, cache, ix, signers)
	if err != nil {
		cache.Discard()
		code, log := errors.Info(err, l.debug)
		logger.Error("instruction failed", "code", code, "log", log)
		return errors.Redact(err, l.debug)
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "write")
	}
	logger.Info("instruction executed", "code", errors.SuccessCode)
	return nil
}

func (l *Ledger) execute(ctx context.Context, db store.KVStore, ix solana.Instruction, signers []solana.PublicKey) error {
	programID := ix.ProgramID()
	program := l.router.Route(programID)
	if program == nil {
		return errors.Wrapf(errors.ErrUnknownProgram, "program %s", programID)
	}
	data, err := ix.Data()
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}

	signed := make(map[solana.PublicKey]bool, len(signers))
	for _, s := range signers {
		signed[s] = true
	}

	var (
		accounts  []*escrowswap.AccountInfo
		distinct  []*escrowswap.AccountInfo
		originals = make(map[solana.PublicKey]*escrowswap.Account)
		views     = make(map[solana.PublicKey]*escrowswap.AccountInfo)
	)
	for _, meta := range ix.Accounts() {
		if meta.IsSigner && !signed[meta.PublicKey] {
			return errors.Wrapf(errors.ErrMissingSignature, "account %s", meta.PublicKey)
		}
		info, ok := views[meta.PublicKey]
		if !ok {
			acct, err := loadAccount(db, meta.PublicKey)
			if err != nil {
				return err
			}
			info = escrowswap.NewAccountInfo(meta.PublicKey, acct, meta.IsSigner, meta.IsWritable)
			views[meta.PublicKey] = info
			originals[meta.PublicKey] = info.Account.Clone()
			distinct = append(distinct, info)
		} else {
			info.IsSigner = info.IsSigner || meta.IsSigner
			info.IsWritable = info.IsWritable || meta.IsWritable
		}
		accounts = append(accounts, info)
	}

	ctx = escrowswap.WithProgramID(ctx, programID)
	ctx = escrowswap.WithRent(ctx, l.rent)
	if err := invoke(ctx, program, programID, accounts, data); err != nil {
		return err
	}

	var before, after balance
	for _, info := range distinct {
		orig := originals[info.Key]
		if !info.IsWritable && !orig.Equals(info.Account) {
			return errors.Wrapf(errors.ErrReadonlyModified, "account %s", info.Key)
		}
		before.add(orig.Lamports)
		after.add(info.Lamports)
	}
	if before != after {
		return errors.Wrap(errors.ErrUnbalancedInstruction, "lamports were created or destroyed")
	}

	for _, info := range distinct {
		if !info.IsWritable {
			continue
		}
		if info.Lamports == 0 {
			if err := db.Delete(accountKey(info.Key)); err != nil {
				return errors.Wrap(errors.ErrDatabase, err.Error())
			}
			continue
		}
		if err := saveAccount(db, info.Key, info.Account); err != nil {
			return err
		}
	}
	return nil
}

// invoke calls the program, converting a panic into an error.
func invoke(ctx context.Context, p escrowswap.Program, programID solana.PublicKey, accounts []*escrowswap.AccountInfo, data []byte) (err error) {
	defer errors.Recover(&err)
	return p.Process(ctx, programID, accounts, data)
}

// balance is a 128 bit sum of lamports.
type balance struct {
	hi, lo uint64
}

func (b *balance) add(v uint64) {
	var carry uint64
	b.lo, carry = bits.Add64(b.lo, v, 0)
	b.hi += carry
}

func loadAccount(db store.ReadOnlyKVStore, key solana.PublicKey) (*escrowswap.Account, error) {
	raw, err := db.Get(accountKey(key))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return nil, nil
	}
	return unmarshalAccount(raw)
}

func saveAccount(db store.SetDeleter, key solana.PublicKey, acct *escrowswap.Account) error {
	raw, err := marshalAccount(acct)
	if err != nil {
		return err
	}
	if err := db.Set(accountKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
