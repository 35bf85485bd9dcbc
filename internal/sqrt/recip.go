package sqrt

import (
	"context"
	"math/big"

	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/progress"
)

// ReciprocalEngine implements Newton's method applied to 1/sqrt(a):
//
//	y_{k+1} = y_k * (1.5 - 0.5 * a * y_k^2)
//
// The loop performs multiplications only; the division-free formulation is
// the point of the method, of value when division is the expensive
// arbitrary-precision primitive. The square root is recovered once after
// the loop as a * y_n.
//
// Unlike the Heron engine there is no zero guard: a zero iterate is a fixed
// point of the recurrence and the run rides it to a zero result. The
// asymmetry between the two engines is deliberate and preserved.
type ReciprocalEngine struct{}

// Name returns the human-readable name of the method.
func (e *ReciprocalEngine) Name() string { return "Reciprocal-Sqrt" }

// Key returns the selection identifier of the method.
func (e *ReciprocalEngine) Key() string { return MethodRecip }

// Compute runs the reciprocal iteration. See Engine.Compute for the
// contract. The returned sequence holds the reciprocal iterates y_k;
// callers deriving per-iterate square roots multiply by a themselves
// (the analyzer does this via DeriveRoots).
func (e *ReciprocalEngine) Compute(ctx context.Context, a, y0 *big.Float, iterations int, report progress.Callback) (*big.Float, []*big.Float, error) {
	prec := a.Prec()
	iterates := make([]*big.Float, 0, iterations+1)

	y := new(big.Float).SetPrec(prec).Set(y0)
	iterates = append(iterates, new(big.Float).SetPrec(prec).Set(y))

	threeHalves := new(big.Float).SetPrec(prec).SetFloat64(1.5)
	half := new(big.Float).SetPrec(prec).SetFloat64(0.5)
	y2 := new(big.Float).SetPrec(prec)
	t := new(big.Float).SetPrec(prec)

	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, apperrors.ComputationError{Cause: err}
		}

		y2.Mul(y, y)
		t.Mul(a, y2)
		t.Mul(t, half)
		t.Sub(threeHalves, t)
		y.Mul(y, t)
		iterates = append(iterates, new(big.Float).SetPrec(prec).Set(y))
		report(float64(i+1) / float64(iterations))
	}

	approx := new(big.Float).SetPrec(prec).Mul(a, y)
	return approx, iterates, nil
}

// DeriveRoots maps a reciprocal iterate sequence y_k to the square-root
// domain as a*y_k. Reporting and error analysis use this so every row the
// user sees is a square-root approximation, regardless of engine.
func DeriveRoots(a *big.Float, reciprocals []*big.Float) []*big.Float {
	roots := make([]*big.Float, len(reciprocals))
	for i, y := range reciprocals {
		roots[i] = new(big.Float).SetPrec(a.Prec()).Mul(a, y)
	}
	return roots
}
