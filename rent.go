package escrowswap

import (
	"math"

	"github.com/iov-one/escrowswap/errors"
)

const (
	// AccountStorageOverhead is the number of bytes accounted for every
	// account on top of its data.
	AccountStorageOverhead = 128

	// DefaultLamportsPerByteYear is the default rental rate.
	DefaultLamportsPerByteYear uint64 = 3480

	// DefaultExemptionThreshold is the default amount of years of rent an
	// account must hold to be exempt.
	DefaultExemptionThreshold = 2.0
)

// Rent describes the storage economics of the runtime. An account whose
// balance covers ExemptionThreshold years of rent for its size is exempt
// and can persist its data indefinitely.
type Rent struct {
	LamportsPerByteYear uint64  `json:"lamports_per_byte_year"`
	ExemptionThreshold  float64 `json:"exemption_threshold"`
}

// DefaultRent returns the rent rules used when the runtime does not
// provide any.
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: DefaultLamportsPerByteYear,
		ExemptionThreshold:  DefaultExemptionThreshold,
	}
}

// Validate returns an error if the rent rules cannot be applied.
func (r Rent) Validate() error {
	if r.LamportsPerByteYear == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "lamports per byte year is required")
	}
	if r.ExemptionThreshold <= 0 || math.IsNaN(r.ExemptionThreshold) || math.IsInf(r.ExemptionThreshold, 0) {
		return errors.Wrapf(errors.ErrInvalidInput, "exemption threshold %v", r.ExemptionThreshold)
	}
	return nil
}

// MinimumBalance returns the balance an account of given data size must
// hold to be rent exempt.
func (r Rent) MinimumBalance(dataLen int) uint64 {
	bytes := uint64(AccountStorageOverhead + dataLen)
	return uint64(float64(bytes*r.LamportsPerByteYear) * r.ExemptionThreshold)
}

// IsExempt returns true if given balance is enough for an account of given
// data size to be rent exempt.
func (r Rent) IsExempt(balance uint64, dataLen int) bool {
	return balance >= r.MinimumBalance(dataLen)
}
