package orchestration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/progress"
	"github.com/rputra/rootcalc/internal/sqrt"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of dropped
// updates when the UI is slow to consume them.
const ProgressBufferMultiplier = 5

// agreementGuardBits is how many low-order bits of the working precision the
// agreement check forgives. Two correct engines differ only in final
// rounding, far below this margin.
const agreementGuardBits = 16

// ExecuteEngines runs one or more iteration engines against the same
// radicand and collects their results.
//
// Each engine runs in its own goroutine; the engines themselves stay
// sequential internally. Progress updates are funneled through a buffered
// channel to the reporter.
//
// Parameters:
//   - ctx: The context bounding all engine runs.
//   - engines: The engines to execute.
//   - seeds: The initial guesses, parallel to engines (engine-space: x0 for
//     Heron, y0 for reciprocal).
//   - a: The radicand at the working precision.
//   - iterations: The number of iteration steps per engine.
//   - progressReporter: Consumer of progress updates (NullProgressReporter
//     for quiet mode).
//   - out: The writer the reporter displays on.
//
// Returns:
//   - []ComputationResult: One result per engine, in input order.
func ExecuteEngines(ctx context.Context, engines []sqrt.Engine, seeds []*big.Float, a *big.Float, iterations uint, progressReporter ProgressReporter, out io.Writer) []ComputationResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]ComputationResult, len(engines))
	progressChan := make(chan progress.Update, len(engines)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(engines), out)

	for i, eng := range engines {
		idx, engine, seed := i, eng, seeds[i]
		g.Go(func() error {
			startTime := time.Now()
			approx, seq, err := engine.Compute(ctx, a, seed, int(iterations), progress.ChannelCallback(progressChan, idx))
			results[idx] = ComputationResult{
				Name:         engine.Name(),
				Key:          engine.Key(),
				InitialGuess: seed,
				Approx:       approx,
				Sequence:     seq,
				Roots:        rootSpace(engine.Key(), a, seq),
				Duration:     time.Since(startTime),
				Err:          err,
			}
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

// rootSpace maps an engine-space iterate sequence into root space.
// The reciprocal engine iterates on approximations of 1/sqrt(a), so its
// error table is computed on the derived products a*y_k.
func rootSpace(engineKey string, a *big.Float, seq []*big.Float) []*big.Float {
	if seq == nil {
		return nil
	}
	if engineKey == sqrt.MethodRecip {
		return sqrt.DeriveRoots(a, seq)
	}
	return seq
}

// Analyze computes the per-iterate and final deviations of a result from
// the reference value. Returns a zero analysis when the result carries an
// error.
func Analyze(result ComputationResult, reference *big.Float) ErrorAnalysis {
	if result.Err != nil || result.Approx == nil {
		return ErrorAnalysis{}
	}
	return ErrorAnalysis{
		Records: sqrt.AnalyzeSequence(result.Roots, reference),
		Final:   sqrt.Analyze(result.Approx, reference),
	}
}

// AnalyzeComparisonResults processes the results of a multi-engine run and
// generates the comparison summary.
//
// It sorts the results by execution time, checks the final approximations
// against each other within a few ulps of the working precision, and
// reports global success or failure.
//
// Parameters:
//   - results: The results to analyze; sorted in place.
//   - reference: The high-precision reference root.
//   - presenter: The result presenter for display formatting.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []ComputationResult, reference *big.Float, presenter ResultPresenter, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *ComputationResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValid == nil {
				firstValid = &results[i]
			}
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No method could complete the computation.\n")
		return presenter.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && !Agree(res.Approx, firstValid.Approx, reference) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The iteration methods disagree on the result.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	return apperrors.ExitSuccess
}

// Agree reports whether two approximations of the same root match within
// the agreement margin: their difference must be below the reference
// magnitude scaled down to a few ulps short of the working precision.
// A zero reference requires both approximations to be exactly zero.
func Agree(x, y, reference *big.Float) bool {
	diff := new(big.Float).SetPrec(reference.Prec()).Sub(x, y)
	if diff.Sign() < 0 {
		diff.Neg(diff)
	}
	if reference.Sign() == 0 {
		return diff.Sign() == 0
	}

	// SetMantExp scales by a power of two: tol = |ref| * 2^(guard-prec).
	tol := new(big.Float).Abs(reference)
	tol.SetMantExp(tol, agreementGuardBits-int(reference.Prec()))
	return diff.Cmp(tol) <= 0
}
