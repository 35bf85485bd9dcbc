package sqrt

import (
	"math/big"

	apperrors "github.com/rputra/rootcalc/internal/errors"
)

// Reference computes the trusted square root of the decimal input at the
// given working precision. The input is re-parsed at bits+ReferenceGuardBits,
// the root is taken with the library square-root primitive (never one of the
// engines under test), and the guarded result is re-rounded down to the
// working precision so that every later comparison happens at one precision.
//
// The re-rounding uses the library's direct round-to-N-bits operation.
// ReferenceViaString provides the portable decimal round-trip alternative
// for arithmetic types without a cheap re-rounding primitive.
//
// Parameters:
//   - number: The original decimal input string.
//   - bits: The working precision in bits.
//
// Returns:
//   - *big.Float: The reference value at the working precision.
//   - error: A ParseError for malformed input, a DomainError for negative input.
func Reference(number string, bits uint) (*big.Float, error) {
	high, err := ParseDecimal(number, bits+ReferenceGuardBits)
	if err != nil {
		return nil, err
	}
	if high.Sign() < 0 {
		return nil, apperrors.NewDomainError("reference", "negative radicand")
	}

	root := new(big.Float).SetPrec(bits + ReferenceGuardBits).Sqrt(high)
	return root.SetPrec(bits), nil
}

// ReferenceViaString computes the reference through the portable decimal
// round-trip: the guarded root is rendered with digits+ReferenceGuardDigits
// significant decimal digits and that string is re-parsed at the working
// precision. If the rendered string fails to re-parse (which correct
// formatting never produces), the function falls back to computing the
// trusted square root directly at the working precision, accepting the loss
// of the guard digits rather than aborting the run.
//
// Parameters:
//   - number: The original decimal input string.
//   - digits: The requested decimal digit precision.
//
// Returns:
//   - *big.Float: The reference value at DigitsToBits(digits) bits.
//   - error: A ParseError or DomainError for invalid input.
func ReferenceViaString(number string, digits uint) (*big.Float, error) {
	bits := DigitsToBits(digits)

	high, err := ParseDecimal(number, bits+ReferenceGuardBits)
	if err != nil {
		return nil, err
	}
	if high.Sign() < 0 {
		return nil, apperrors.NewDomainError("reference", "negative radicand")
	}

	root := new(big.Float).SetPrec(bits + ReferenceGuardBits).Sqrt(high)

	// Text('e', n) renders n+1 significant digits.
	rendered := root.Text('e', int(digits+ReferenceGuardDigits-1))

	ref, err := ParseDecimal(rendered, bits)
	if err != nil {
		// Fallback: trusted primitive at working precision.
		a, perr := ParseDecimal(number, bits)
		if perr != nil {
			return nil, perr
		}
		return new(big.Float).SetPrec(bits).Sqrt(a), nil
	}
	return ref, nil
}

// TrustedSqrt returns the library square root of a at a's own precision.
// This is the "builtin" value the report prints beside the reference, showing
// what the trusted primitive produces without guard bits.
func TrustedSqrt(a *big.Float) *big.Float {
	return new(big.Float).SetPrec(a.Prec()).Sqrt(a)
}
