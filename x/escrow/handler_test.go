package escrow

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap"
	"github.com/iov-one/escrowswap/errors"
	"github.com/iov-one/escrowswap/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// tokenMock records calls made to the token service. Accounts are
// identified by their keys.
type tokenMock struct {
	mock.Mock
	id solana.PublicKey
}

var _ escrowswap.TokenService = (*tokenMock)(nil)

func (m *tokenMock) ID() solana.PublicKey {
	return m.id
}

func (m *tokenMock) Balance(account *escrowswap.AccountInfo) (uint64, error) {
	args := m.Called(account.Key)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *tokenMock) SetAuthority(ctx context.Context, account, authority *escrowswap.AccountInfo, newAuthority solana.PublicKey, signerSeeds ...[]byte) error {
	return m.Called(account.Key, authority.Key, newAuthority, len(signerSeeds)).Error(0)
}

func (m *tokenMock) Transfer(ctx context.Context, source, destination, authority *escrowswap.AccountInfo, amount uint64, signerSeeds ...[]byte) error {
	return m.Called(source.Key, destination.Key, authority.Key, amount, len(signerSeeds)).Error(0)
}

func (m *tokenMock) CloseAccount(ctx context.Context, account, destination, authority *escrowswap.AccountInfo, signerSeeds ...[]byte) error {
	return m.Called(account.Key, destination.Key, authority.Key, len(signerSeeds)).Error(0)
}

type initFixture struct {
	initializer  *escrowswap.AccountInfo
	temp         *escrowswap.AccountInfo
	receive      *escrowswap.AccountInfo
	escrow       *escrowswap.AccountInfo
	tokenProgram *escrowswap.AccountInfo
}

func newInitFixture(tokenID, programID solana.PublicKey) *initFixture {
	return &initFixture{
		initializer:  weavetest.Signer(5000000),
		temp:         weavetest.Writable(tokenID, 2039280, nil),
		receive:      weavetest.Readonly(tokenID, nil),
		escrow:       weavetest.RentExempt(programID, RecordLen),
		tokenProgram: weavetest.Key(tokenID),
	}
}

func (f *initFixture) accounts() []*escrowswap.AccountInfo {
	return []*escrowswap.AccountInfo{f.initializer, f.temp, f.receive, f.escrow, f.tokenProgram}
}

func TestProcessInit(t *testing.T) {
	programID := weavetest.NewPubkey()
	tokenID := solana.TokenProgramID
	custody, _, err := Derive(programID)
	require.NoError(t, err)

	cases := map[string]struct {
		prepare  func(f *initFixture)
		accounts func(f *initFixture) []*escrowswap.AccountInfo
		// custodyErr is returned by the token service, if called
		callToken  bool
		custodyErr error
		wantErr    *errors.Error
	}{
		"success": {
			callToken: true,
		},
		"initializer did not sign": {
			prepare: func(f *initFixture) { f.initializer.IsSigner = false },
			wantErr: errors.ErrMissingSignature,
		},
		"receive account not owned by the token service": {
			prepare: func(f *initFixture) { f.receive.Owner = weavetest.NewPubkey() },
			wantErr: errors.ErrIncorrectProgramID,
		},
		"escrow account below rent exemption": {
			prepare: func(f *initFixture) { f.escrow.Lamports-- },
			wantErr: ErrNotRentExempt,
		},
		"wrong token program": {
			prepare: func(f *initFixture) { f.tokenProgram = weavetest.Key(weavetest.NewPubkey()) },
			wantErr: errors.ErrIncorrectProgramID,
		},
		"already initialized": {
			prepare: func(f *initFixture) { f.escrow.Data[0] = 1 },
			wantErr: errors.ErrAlreadyInitialized,
		},
		"garbage flag reads as uninitialized": {
			prepare:   func(f *initFixture) { f.escrow.Data[0] = 2 },
			callToken: true,
		},
		"escrow account too small": {
			prepare: func(f *initFixture) {
				f.escrow = weavetest.RentExempt(programID, RecordLen-1)
			},
			wantErr: errors.ErrInvalidAccountData,
		},
		"missing token program account": {
			accounts: func(f *initFixture) []*escrowswap.AccountInfo {
				return f.accounts()[:4]
			},
			wantErr: errors.ErrNotEnoughAccountKeys,
		},
		"custody transfer rejected": {
			callToken:  true,
			custodyErr: errors.ErrMissingSignature,
			wantErr:    errors.ErrMissingSignature,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newInitFixture(tokenID, programID)
			if tc.prepare != nil {
				tc.prepare(f)
			}
			accounts := f.accounts()
			if tc.accounts != nil {
				accounts = tc.accounts(f)
			}

			tokens := &tokenMock{id: tokenID}
			if tc.callToken {
				tokens.On("SetAuthority", f.temp.Key, f.initializer.Key, custody, 0).Return(tc.custodyErr).Once()
			}

			p := NewProcessor(tokens)
			err := p.Process(context.Background(), programID, accounts, Encode(Init(10)))
			tokens.AssertExpectations(t)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				return
			}
			require.NoError(t, err)

			record, err := Unpack(f.escrow.Data)
			require.NoError(t, err)
			assert.Equal(t, &Record{
				Initialized:        true,
				Initializer:        f.initializer.Key,
				TempToken:          f.temp.Key,
				InitializerReceive: f.receive.Key,
				ExpectedAmount:     10,
			}, record)
		})
	}
}

type exchangeFixture struct {
	taker              *escrowswap.AccountInfo
	takerPay           *escrowswap.AccountInfo
	takerReceive       *escrowswap.AccountInfo
	temp               *escrowswap.AccountInfo
	initializer        *escrowswap.AccountInfo
	initializerReceive *escrowswap.AccountInfo
	escrow             *escrowswap.AccountInfo
	tokenProgram       *escrowswap.AccountInfo
	custody            *escrowswap.AccountInfo
	record             *Record
}

func newExchangeFixture(tokenID, programID, custody solana.PublicKey) *exchangeFixture {
	f := &exchangeFixture{
		taker:              weavetest.Signer(5000000),
		takerPay:           weavetest.Writable(tokenID, 2039280, nil),
		takerReceive:       weavetest.Writable(tokenID, 2039280, nil),
		temp:               weavetest.Writable(tokenID, 2039280, nil),
		initializer:        weavetest.Writable(solana.SystemProgramID, 1000, nil),
		initializerReceive: weavetest.Writable(tokenID, 2039280, nil),
		escrow:             weavetest.RentExempt(programID, RecordLen),
		tokenProgram:       weavetest.Key(tokenID),
		custody:            weavetest.Key(custody),
	}
	f.record = &Record{
		Initialized:        true,
		Initializer:        f.initializer.Key,
		TempToken:          f.temp.Key,
		InitializerReceive: f.initializerReceive.Key,
		ExpectedAmount:     10,
	}
	return f
}

func (f *exchangeFixture) accounts() []*escrowswap.AccountInfo {
	return []*escrowswap.AccountInfo{
		f.taker, f.takerPay, f.takerReceive, f.temp, f.initializer,
		f.initializerReceive, f.escrow, f.tokenProgram, f.custody,
	}
}

func TestProcessExchange(t *testing.T) {
	programID := weavetest.NewPubkey()
	tokenID := solana.TokenProgramID
	custody, _, err := Derive(programID)
	require.NoError(t, err)

	cases := map[string]struct {
		prepare func(f *exchangeFixture)
		// held is the balance of the temporary token account
		held uint64
		// calls is the number of token service mutations expected
		calls   int
		failAt  int
		wantErr *errors.Error
	}{
		"success": {
			held:  10,
			calls: 3,
		},
		"taker did not sign": {
			prepare: func(f *exchangeFixture) { f.taker.IsSigner = false },
			held:    10,
			wantErr: errors.ErrMissingSignature,
		},
		"custody holds less than declared": {
			held:    7,
			wantErr: ErrExpectedAmountMismatch,
		},
		"temporary token account mismatch": {
			prepare: func(f *exchangeFixture) { f.record.TempToken = weavetest.NewPubkey() },
			held:    10,
			wantErr: errors.ErrInvalidAccountData,
		},
		"initializer mismatch": {
			prepare: func(f *exchangeFixture) { f.record.Initializer = weavetest.NewPubkey() },
			held:    10,
			wantErr: errors.ErrInvalidAccountData,
		},
		"initializer receive account mismatch": {
			prepare: func(f *exchangeFixture) { f.record.InitializerReceive = weavetest.NewPubkey() },
			held:    10,
			wantErr: errors.ErrInvalidAccountData,
		},
		"escrow not initialized": {
			prepare: func(f *exchangeFixture) { f.record.Initialized = false },
			held:    10,
			wantErr: errors.ErrInvalidAccountData,
		},
		"wrong custody account": {
			prepare: func(f *exchangeFixture) { f.custody = weavetest.Key(weavetest.NewPubkey()) },
			held:    10,
			wantErr: errors.ErrInvalidAccountData,
		},
		"wrong token program": {
			prepare: func(f *exchangeFixture) { f.tokenProgram = weavetest.Key(weavetest.NewPubkey()) },
			held:    10,
			wantErr: errors.ErrIncorrectProgramID,
		},
		"taker cannot pay": {
			held:    10,
			calls:   1,
			failAt:  1,
			wantErr: errors.ErrInsufficientFunds,
		},
		"reclaimed balance overflows": {
			prepare: func(f *exchangeFixture) { f.initializer.Lamports = ^uint64(0) },
			held:    10,
			calls:   3,
			wantErr: ErrAmountOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newExchangeFixture(tokenID, programID, custody)
			if tc.prepare != nil {
				tc.prepare(f)
			}
			require.NoError(t, Pack(f.record, f.escrow.Data))

			tokens := &tokenMock{id: tokenID}
			tokens.On("Balance", f.temp.Key).Return(tc.held, nil).Maybe()
			results := make([]error, 3)
			if tc.failAt > 0 {
				results[tc.failAt-1] = errors.ErrInsufficientFunds
			}
			if tc.calls >= 1 {
				tokens.On("Transfer", f.takerPay.Key, f.initializerReceive.Key, f.taker.Key, uint64(10), 0).Return(results[0]).Once()
			}
			if tc.calls >= 2 {
				tokens.On("Transfer", f.temp.Key, f.takerReceive.Key, custody, tc.held, 2).Return(results[1]).Once()
			}
			if tc.calls >= 3 {
				tokens.On("CloseAccount", f.temp.Key, f.initializer.Key, custody, 2).Return(results[2]).Once()
			}

			initializerLamports := f.initializer.Lamports
			escrowLamports := f.escrow.Lamports

			p := NewProcessor(tokens)
			err := p.Process(context.Background(), programID, f.accounts(), Encode(Exchange(10)))
			tokens.AssertExpectations(t)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
				assert.Equal(t, escrowLamports, f.escrow.Lamports)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, initializerLamports+escrowLamports, f.initializer.Lamports)
			assert.Equal(t, uint64(0), f.escrow.Lamports)
			assert.Empty(t, f.escrow.Data)

			// the record is gone, a second exchange cannot succeed
			err = p.Process(context.Background(), programID, f.accounts(), Encode(Exchange(10)))
			assert.True(t, errors.ErrInvalidAccountData.Is(err), "got %+v", err)
		})
	}
}

func TestProcessInvalidInstruction(t *testing.T) {
	tokens := &tokenMock{id: solana.TokenProgramID}
	p := NewProcessor(tokens)

	err := p.Process(context.Background(), weavetest.NewPubkey(), nil, []byte{3, 0, 0, 0, 0, 0, 0, 0, 0})
	assert.True(t, ErrInvalidInstruction.Is(err))
	assert.Equal(t, uint32(1000), errors.Code(err))

	err = p.Process(context.Background(), weavetest.NewPubkey(), nil, Encode(Init(1)))
	assert.True(t, errors.ErrNotEnoughAccountKeys.Is(err))
	tokens.AssertExpectations(t)
}
