package sqrt

import (
	"context"
	"math/big"

	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/progress"
)

// HeronEngine implements the classical Newton-Heron square-root recurrence
//
//	x_{k+1} = 0.5 * (x_k + a / x_k)
//
// Each step performs one division, one addition and one halving at the
// working precision. Convergence is quadratic once the iterate is within a
// constant factor of the root, which the automatic initial guess guarantees.
type HeronEngine struct{}

// Name returns the human-readable name of the method.
func (e *HeronEngine) Name() string { return "Newton-Heron" }

// Key returns the selection identifier of the method.
func (e *HeronEngine) Key() string { return MethodHeron }

// Compute runs the Heron iteration. See Engine.Compute for the contract.
//
// Zero-guard policy: if an iterate reaches exactly zero, or the radicand is
// zero, the division is skipped and zero is emitted for the remainder of the
// run. This is a defined degenerate output, not an error; a zero iterate
// never recovers because 0.5*(0 + a/0) is not evaluated, and a zero radicand
// pins every step to its exact root.
func (e *HeronEngine) Compute(ctx context.Context, a, x0 *big.Float, iterations int, report progress.Callback) (*big.Float, []*big.Float, error) {
	prec := a.Prec()
	iterates := make([]*big.Float, 0, iterations+1)

	x := new(big.Float).SetPrec(prec).Set(x0)
	iterates = append(iterates, new(big.Float).SetPrec(prec).Set(x))

	half := new(big.Float).SetPrec(prec).SetFloat64(0.5)
	quot := new(big.Float).SetPrec(prec)
	sum := new(big.Float).SetPrec(prec)

	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, apperrors.ComputationError{Cause: err}
		}

		if x.Sign() == 0 || a.Sign() == 0 {
			x.SetInt64(0)
			iterates = append(iterates, new(big.Float).SetPrec(prec))
			report(float64(i+1) / float64(iterations))
			continue
		}

		quot.Quo(a, x)
		sum.Add(x, quot)
		x.Mul(sum, half)
		iterates = append(iterates, new(big.Float).SetPrec(prec).Set(x))
		report(float64(i+1) / float64(iterations))
	}

	return x, iterates, nil
}
