package escrow

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowswap/errors"
)

// RecordLen is the fixed size of an encoded escrow record.
//
//	[0:1]    initialized flag
//	[1:33]   initializer
//	[33:65]  temporary token account held in custody
//	[65:97]  initializer's token account receiving the payment
//	[97:105] expected amount, little endian u64
const RecordLen = 1 + 32 + 32 + 32 + 8

const (
	offInitialized = 0
	offInitializer = 1
	offTempToken   = 33
	offReceive     = 65
	offAmount      = 97
)

// Record is the state of a single trade, kept in the escrow account.
type Record struct {
	// Initialized is false for blank storage and true while the trade is
	// active.
	Initialized bool
	// Initializer created the trade and reclaims the escrow account
	// balance when it is taken.
	Initializer solana.PublicKey
	// TempToken is the token account put in custody of the derived
	// address. The taker must pass this account to receive from.
	TempToken solana.PublicKey
	// InitializerReceive is the token account the taker must pay into.
	InitializerReceive solana.PublicKey
	// ExpectedAmount is what the initializer wants in return.
	ExpectedAmount uint64
}

// IsInitialized returns true if the record is active.
func (r *Record) IsInitialized() bool {
	return r.Initialized
}

// Marshal returns the RecordLen bytes long encoding of the record.
func (r *Record) Marshal() ([]byte, error) {
	raw := make([]byte, RecordLen)
	if err := Pack(r, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Pack writes the record into the first RecordLen bytes of dst.
func Pack(r *Record, dst []byte) error {
	if len(dst) < RecordLen {
		return errors.Wrapf(errors.ErrInvalidAccountData, "record needs %d bytes, got %d", RecordLen, len(dst))
	}
	if r.Initialized {
		dst[offInitialized] = 1
	} else {
		dst[offInitialized] = 0
	}
	copy(dst[offInitializer:offTempToken], r.Initializer[:])
	copy(dst[offTempToken:offReceive], r.TempToken[:])
	copy(dst[offReceive:offAmount], r.InitializerReceive[:])
	binary.LittleEndian.PutUint64(dst[offAmount:RecordLen], r.ExpectedAmount)
	return nil
}

// Unpack reads a record. The initialized flag must be either 0 or 1.
func Unpack(src []byte) (*Record, error) {
	if len(src) < RecordLen {
		return nil, errors.Wrapf(errors.ErrInvalidAccountData, "record needs %d bytes, got %d", RecordLen, len(src))
	}
	var initialized bool
	switch src[offInitialized] {
	case 0:
		initialized = false
	case 1:
		initialized = true
	default:
		return nil, errors.Wrapf(errors.ErrInvalidAccountData, "initialized flag %d", src[offInitialized])
	}
	r := unpack(src)
	r.Initialized = initialized
	return r, nil
}

// UnpackUnchecked reads a record without validating the initialized flag.
// Any flag value other than 1 reads as uninitialized, so blank storage can
// be inspected before initialization.
func UnpackUnchecked(src []byte) (*Record, error) {
	if len(src) < RecordLen {
		return nil, errors.Wrapf(errors.ErrInvalidAccountData, "record needs %d bytes, got %d", RecordLen, len(src))
	}
	r := unpack(src)
	r.Initialized = src[offInitialized] == 1
	return r, nil
}

func unpack(src []byte) *Record {
	var r Record
	copy(r.Initializer[:], src[offInitializer:offTempToken])
	copy(r.TempToken[:], src[offTempToken:offReceive])
	copy(r.InitializerReceive[:], src[offReceive:offAmount])
	r.ExpectedAmount = binary.LittleEndian.Uint64(src[offAmount:RecordLen])
	return &r
}
