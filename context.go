/*
We pass context through context.Context between the runtime, programs and
services they invoke. There should exist two functions for every XYZ of
type T that we want to support in Context:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)
*/

package escrowswap

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/tendermint/tendermint/libs/log"
)

type contextKey int // local to the escrowswap module

const (
	contextKeyLogger contextKey = iota
	contextKeyProgramID
	contextKeyRent
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()
)

// WithLogger sets the logger for this context
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx context.Context, keyvals ...interface{}) context.Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx context.Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithProgramID sets the identity of the program that is currently being
// executed by the runtime. Services invoked by a program use it to verify
// derived address signatures.
func WithProgramID(ctx context.Context, id solana.PublicKey) context.Context {
	return context.WithValue(ctx, contextKeyProgramID, id)
}

// GetProgramID returns the identity of the program currently executed.
func GetProgramID(ctx context.Context) (solana.PublicKey, bool) {
	val, ok := ctx.Value(contextKeyProgramID).(solana.PublicKey)
	return val, ok
}

// WithRent sets the storage economics rules of the runtime.
func WithRent(ctx context.Context, rent Rent) context.Context {
	return context.WithValue(ctx, contextKeyRent, rent)
}

// GetRent returns the rent rules provided by the runtime, or DefaultRent
// if none was set.
func GetRent(ctx context.Context) Rent {
	val, ok := ctx.Value(contextKeyRent).(Rent)
	if !ok {
		return DefaultRent()
	}
	return val
}
