package sqrt

import (
	"math"
	"math/big"

	apperrors "github.com/rputra/rootcalc/internal/errors"
)

// DigitsToBits converts a count of desired correct decimal digits into the
// minimum significand width in bits. The result is always rounded up:
// under-rounding would silently degrade the guaranteed digit count, so the
// conversion is monotonic and never returns fewer than digits*log2(10) bits.
//
// Parameters:
//   - digits: The number of correct decimal digits requested (must be >= 1).
//
// Returns:
//   - uint: The bit width b such that b >= digits * log2(10).
func DigitsToBits(digits uint) uint {
	return uint(math.Ceil(float64(digits) * Log2Of10))
}

// ParseDecimal parses a decimal numeral string into a big.Float carrying
// exactly bits significand bits. Parsing and rounding happen in one step, so
// the returned value is directly comparable with any other value created at
// the same precision.
//
// Parameters:
//   - s: The decimal numeral (plain or scientific notation).
//   - bits: The working precision in bits (must be >= 1).
//
// Returns:
//   - *big.Float: The parsed value at the requested precision.
//   - error: A ParseError if s is not a valid decimal numeral.
func ParseDecimal(s string, bits uint) (*big.Float, error) {
	f, ok := new(big.Float).SetPrec(bits).SetString(s)
	if !ok {
		return nil, apperrors.ParseError{Input: s}
	}
	return f, nil
}
