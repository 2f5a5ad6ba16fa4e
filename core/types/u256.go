package types

import (
	"github.com/holiman/uint256"
)

// U256 is a 256-bit unsigned integer, used throughout the account-state
// engine for balances and storage slot values. The type's own Add/Sub
// wrap around the 256-bit ring; balance transfers go through CheckedAdd
// and CheckedSub instead, so they fail on overflow/underflow rather than
// wrapping.
type U256 = uint256.Int

// ZeroU256 returns a fresh zero-valued U256.
func ZeroU256() *U256 {
	return new(uint256.Int)
}

// NewU256 constructs a U256 from a uint64.
func NewU256(v uint64) *U256 {
	return new(uint256.Int).SetUint64(v)
}

// CheckedAdd returns a+b and true, or (nil, false) if the addition overflows
// 256 bits. The original operands are left untouched.
func CheckedAdd(a, b *U256) (*U256, bool) {
	result := new(uint256.Int)
	overflow := result.AddOverflow(a, b)
	if overflow {
		return nil, false
	}
	return result, true
}

// CheckedSub returns a-b and true, or (nil, false) if the subtraction
// underflows (a < b). The original operands are left untouched.
func CheckedSub(a, b *U256) (*U256, bool) {
	if a.Lt(b) {
		return nil, false
	}
	result := new(uint256.Int).Sub(a, b)
	return result, true
}
