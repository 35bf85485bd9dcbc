//go:build gmp

// This file provides a GMP-backed verification of the reference value,
// conditionally compiled with the "gmp" build tag. The build tag architecture
// ensures that:
//   - The project builds without GMP by default (pure Go, math/big only)
//   - GMP support is opt-in, requiring: go build -tags=gmp
//   - The codebase remains portable across systems without libgmp installed
//
// System Requirements for GMP:
//   - Linux: sudo apt-get install libgmp-dev (Debian/Ubuntu)
//   - macOS: brew install gmp
//   - Windows: Requires MinGW or WSL with libgmp

package sqrt

import (
	"fmt"
	"math/big"

	"github.com/ncw/gmp"
)

// VerifyReferenceGMP checks the reference square root against GMP integer
// arithmetic. The radicand and the reference are both scaled to integers by
// 10^(2*digits) and 10^digits respectively; the reference r is then a
// correctly rounded-down root iff r^2 <= n < (r+1)^2 in the scaled integer
// domain, give or take one unit in the last scaled digit for round-to-nearest
// references. The squarings run through GMP's assembly-optimized
// multiplication, making this an arithmetic path fully independent of
// math/big.
//
// Parameters:
//   - number: The original decimal input string.
//   - reference: The reference value at the working precision.
//   - digits: The requested decimal digit precision.
//
// Returns:
//   - error: nil if the reference lies within one scaled unit of the true
//     integer root; a descriptive error otherwise.
func VerifyReferenceGMP(number string, reference *big.Float, digits uint) error {
	bits := DigitsToBits(digits)
	// Generous precision so the scaling itself cannot disturb the digits
	// under test.
	scalePrec := bits + uint(float64(2*digits)*Log2Of10) + ReferenceGuardBits

	a, err := ParseDecimal(number, scalePrec)
	if err != nil {
		return err
	}

	scaleRoot := pow10Float(digits, scalePrec)
	scaleRadicand := new(big.Float).SetPrec(scalePrec).Mul(scaleRoot, scaleRoot)

	nInt, _ := new(big.Float).SetPrec(scalePrec).Mul(a, scaleRadicand).Int(nil)
	rInt, _ := new(big.Float).SetPrec(scalePrec).Mul(
		new(big.Float).SetPrec(scalePrec).Set(reference), scaleRoot).Int(nil)

	if nInt.Sign() < 0 {
		return fmt.Errorf("gmp crosscheck: negative radicand")
	}

	n := new(gmp.Int).SetBytes(nInt.Bytes())
	r := new(gmp.Int).SetBytes(rInt.Bytes())
	one := gmp.NewInt(1)

	// Allow one unit of slack on each side: the reference is rounded to
	// nearest, the integer root rounds down.
	low := new(gmp.Int).Sub(r, one)
	if low.Sign() < 0 {
		low.SetInt64(0)
	}
	lowSq := new(gmp.Int).Mul(low, low)
	if lowSq.Cmp(n) > 0 {
		return fmt.Errorf("gmp crosscheck: reference too large (r-1)^2 > n")
	}

	high := new(gmp.Int).Add(r, one)
	high.Add(high, one)
	highSq := new(gmp.Int).Mul(high, high)
	if highSq.Cmp(n) <= 0 {
		return fmt.Errorf("gmp crosscheck: reference too small (r+2)^2 <= n")
	}

	return nil
}

// pow10Float returns 10^digits as a big.Float at the given precision.
func pow10Float(digits, prec uint) *big.Float {
	p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	return new(big.Float).SetPrec(prec).SetInt(p)
}
