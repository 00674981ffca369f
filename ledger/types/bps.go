package types

import (
	"math"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/clawnch/ledger/ledger/types/result"
)

const (
	// BpsDenominator is 100% expressed in basis points.
	BpsDenominator uint16 = 10000

	// SecondsPerYear is the reward period: staking pays 100% of the principal
	// per 365 days, linearly and without compounding.
	SecondsPerYear int64 = 365 * 24 * 3600
)

// Split returns floor(amount * bps / 10000). The product is taken in 256 bits so
// the full uint64 range is accepted. Splitting one amount over several buckets
// leaves the floor remainder (dust) unassigned.
func Split(amount uint64, bps uint16) (uint64, error) {
	if bps > BpsDenominator {
		return 0, errors.Wrapf(result.ErrInvalidFeeConfig, "%v bps exceeds %v", bps, BpsDenominator)
	}
	return MulDiv(amount, uint64(bps), uint64(BpsDenominator))
}

// MulDiv returns floor(x * y / d), failing with ErrOverflow when the quotient
// does not fit in a uint64.
func MulDiv(x, y, d uint64) (uint64, error) {
	if d == 0 {
		return 0, errors.Wrap(result.ErrOverflow, "division by zero")
	}
	z, overflow := new(uint256.Int).MulDivOverflow(uint256.NewInt(x), uint256.NewInt(y), uint256.NewInt(d))
	if overflow || !z.IsUint64() {
		return 0, errors.Wrapf(result.ErrOverflow, "%v * %v / %v", x, y, d)
	}
	return z.Uint64(), nil
}

// Reward returns the linear reward earned by principal over duration seconds.
// Non-positive durations (including clock regression) earn nothing.
func Reward(principal uint64, duration int64) (uint64, error) {
	if duration <= 0 || principal == 0 {
		return 0, nil
	}
	return MulDiv(principal, uint64(duration), uint64(SecondsPerYear))
}

// CheckedAdd returns a + b or ErrOverflow.
func CheckedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, errors.Wrapf(result.ErrOverflow, "%v + %v", a, b)
	}
	return a + b, nil
}

// CheckedSub returns a - b or ErrInsufficientBalance.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, errors.Wrapf(result.ErrInsufficientBalance, "%v - %v", a, b)
	}
	return a - b, nil
}
