package orchestration

import (
	"io"
	"math/big"
	"sync"
	"time"

	"github.com/rputra/rootcalc/internal/progress"
	"github.com/rputra/rootcalc/internal/sqrt"
)

// ComputationResult encapsulates the outcome of a single engine run.
// It is the shared domain type between the orchestration and presentation
// layers.
type ComputationResult struct {
	// Name is the human-readable name of the iteration method.
	Name string
	// Key is the stable engine identifier ("heron", "recip").
	Key string
	// InitialGuess is the seed the engine actually iterated from: x0 for
	// the Heron engine, y0 for the reciprocal engine.
	InitialGuess *big.Float
	// Approx is the final square-root approximation. Nil if Err is set.
	Approx *big.Float
	// Sequence holds the engine-space iterates (length iterations+1).
	// For the reciprocal engine these are the y_k, not roots.
	Sequence []*big.Float
	// Roots holds the root-space view of Sequence: identical to Sequence
	// for the Heron engine, the derived products a*y_k for the reciprocal
	// engine. Error analysis runs against this slice.
	Roots []*big.Float
	// Duration is the time taken by the engine call alone.
	Duration time.Duration
	// Err contains any error that occurred during the computation.
	Err error
}

// ErrorAnalysis pairs a result with its per-iterate deviations from the
// reference value.
type ErrorAnalysis struct {
	// Records holds one entry per root-space iterate, index 0 first.
	Records []sqrt.ErrorRecord
	// Final is the deviation of the final approximation.
	Final sqrt.ErrorRecord
}

// ProgressReporter defines the interface for displaying engine progress.
// Implementations handle the visual representation (spinner, TUI) while the
// orchestration layer focuses on running the engines.
type ProgressReporter interface {
	// DisplayProgress consumes progress updates until progressChan is
	// closed, then signals wg. It is started in its own goroutine.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numEngines int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.Update, numEngines int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numEngines int, out io.Writer) {
	f(wg, progressChan, numEngines, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting computation results.
// It decouples orchestration from output formatting, so the comparison logic
// stays identical across the CLI and the HTTP API.
type ResultPresenter interface {
	// PresentComparisonTable displays the comparison summary table for a
	// multi-engine run.
	PresentComparisonTable(results []ComputationResult, out io.Writer)

	// HandleError reports a failed run and returns the matching exit code.
	HandleError(err error, duration time.Duration, out io.Writer) int
}
