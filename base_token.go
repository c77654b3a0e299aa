package iotago

import (
	"github.com/iotaledger/hive.go/core/safemath"
	"github.com/iotaledger/hive.go/ierrors"
)

// BaseToken is the amount of IOTA base tokens an output carries.
type BaseToken uint64

// Add adds in to this amount, returning an error on overflow.
func (b BaseToken) Add(in BaseToken) (BaseToken, error) {
	result, err := safemath.SafeAdd(b, in)
	if err != nil {
		return 0, ierrors.Wrap(err, "failed to add BaseToken")
	}

	return result, nil
}

// Sub subtracts in from this amount, returning an error on underflow.
func (b BaseToken) Sub(in BaseToken) (BaseToken, error) {
	if in > b {
		return 0, ierrors.Errorf("BaseToken underflow: %d - %d", b, in)
	}

	return b - in, nil
}
