package sqrt

import (
	"math/big"

	apperrors "github.com/rputra/rootcalc/internal/errors"
)

// AutoInitialGuess produces a Newton starting point from the binary exponent
// of the radicand. For a = 2^e the true root is 2^(e/2); seeding with
// 2^floorDiv(e+2, 2) keeps the guess within a factor of 2 of sqrt(a) for
// every e, which guarantees quadratic convergence from the first step
// without bracketing.
//
// The binary exponent is read from the value's mantissa/exponent
// decomposition rather than recomputed through logarithms, which is exact
// and cannot lose the floor to rounding. Exponent magnitudes beyond
// MaxGuessExponent are rejected explicitly instead of wrapping in the seed
// arithmetic; big.Float cannot represent exponents anywhere near that bound
// in practice, so the guard is a hard invariant rather than a live limit.
//
// Parameters:
//   - a: The non-negative radicand at the caller's working precision.
//
// Returns:
//   - *big.Float: The initial guess x0, at a's precision. Zero if a is zero.
//   - error: A DomainError if a is negative or its exponent is out of range.
func AutoInitialGuess(a *big.Float) (*big.Float, error) {
	prec := a.Prec()
	if prec == 0 {
		prec = DigitsToBits(DefaultDigits)
	}

	if a.Sign() == 0 {
		return new(big.Float).SetPrec(prec), nil
	}
	if a.Sign() < 0 {
		return nil, apperrors.NewDomainError("auto_initial_guess", "negative input")
	}

	// MantExp yields a = mant * 2^exp with mant in [0.5, 1), so
	// floor(log2(a)) is exactly exp-1 for every positive a.
	exp := a.MantExp(nil)
	if exp > MaxGuessExponent || exp < -MaxGuessExponent {
		return nil, apperrors.NewDomainError("auto_initial_guess",
			"binary exponent %d outside supported range ±%d", exp, MaxGuessExponent)
	}
	e := exp - 1

	seedExp := floorDiv(e+2, 2)

	one := new(big.Float).SetPrec(prec).SetInt64(1)
	return new(big.Float).SetPrec(prec).SetMantExp(one, seedExp), nil
}

// floorDiv returns the floor of a/b for b > 0. Go's integer division
// truncates toward zero, which differs from floor for negative dividends.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
