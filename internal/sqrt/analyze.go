package sqrt

import "math/big"

// ErrorRecord holds the deviation of one iterate from the reference value.
// Both fields are non-negative and carry the working precision.
type ErrorRecord struct {
	// Abs is |iterate - reference|.
	Abs *big.Float
	// Rel is Abs / |reference|, or zero when the reference is exactly zero.
	Rel *big.Float
}

// Analyze computes the absolute and relative error of a single iterate
// against the reference. Pure function, no side effects.
//
// Parameters:
//   - iterate: The approximation to measure.
//   - reference: The trusted value at the same working precision.
//
// Returns:
//   - ErrorRecord: The absolute and relative error.
func Analyze(iterate, reference *big.Float) ErrorRecord {
	prec := reference.Prec()
	if p := iterate.Prec(); p > prec {
		prec = p
	}

	abs := new(big.Float).SetPrec(prec).Sub(iterate, reference)
	abs.Abs(abs)

	rel := new(big.Float).SetPrec(prec)
	if reference.Sign() != 0 {
		refAbs := new(big.Float).SetPrec(prec).Abs(reference)
		rel.Quo(abs, refAbs)
	}

	return ErrorRecord{Abs: abs, Rel: rel}
}

// AnalyzeSequence computes an ErrorRecord for every iterate in order.
// Recomputed per report; the input sequence is never mutated.
func AnalyzeSequence(iterates []*big.Float, reference *big.Float) []ErrorRecord {
	records := make([]ErrorRecord, len(iterates))
	for i, it := range iterates {
		records[i] = Analyze(it, reference)
	}
	return records
}
