package sqrt

import (
	"github.com/db47h/decimal"

	apperrors "github.com/rputra/rootcalc/internal/errors"
)

// AlternateSqrt computes the square root of the decimal input with an
// independent arbitrary-precision library working in decimal radix, and
// returns it rendered in scientific notation at the requested digit count.
//
// This is the optional cross-check printed beside the binary-float results:
// a decimal-radix implementation shares none of the binary rounding
// machinery, so agreement in the leading digits is strong evidence that
// neither library is misrounding.
//
// Parameters:
//   - number: The original decimal input string.
//   - digits: The requested decimal digit precision.
//
// Returns:
//   - string: The alternate square root in scientific notation.
//   - error: A ParseError for malformed input, a DomainError for negative input.
func AlternateSqrt(number string, digits uint) (string, error) {
	// A couple of guard digits keep the final rendered digit honest.
	d, ok := new(decimal.Decimal).SetPrec(uint(digits) + 2).SetString(number)
	if !ok {
		return "", apperrors.ParseError{Input: number}
	}
	if d.Sign() < 0 {
		return "", apperrors.NewDomainError("alternate_sqrt", "negative radicand")
	}

	root := new(decimal.Decimal).SetPrec(uint(digits) + 2).Sqrt(d)
	return root.Text('e', int(digits-1)), nil
}
