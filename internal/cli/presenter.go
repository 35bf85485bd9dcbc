package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/format"
	"github.com/rputra/rootcalc/internal/orchestration"
	"github.com/rputra/rootcalc/internal/progress"
	"github.com/rputra/rootcalc/internal/ui"
)

// CLIColorProvider supplies theme colors to the error handler.
type CLIColorProvider struct{}

// Verify that CLIColorProvider satisfies the error handler's contract.
var _ apperrors.ColorProvider = CLIColorProvider{}

// Red returns the error color code.
func (CLIColorProvider) Red() string { return ui.ColorRed() }

// Yellow returns the warning color code.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the reset escape code.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// CLIProgressReporter implements orchestration.ProgressReporter for CLI
// output. It wraps DisplayProgress to provide a spinner and progress bar
// during computations.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing computations.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numEngines int, out io.Writer) {
	DisplayProgress(wg, progressChan, numEngines, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for comparison runs.
type CLIResultPresenter struct{}

// Verify interface compliance.
var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable displays the comparison summary table with method
// names, durations, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.ComputationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	// Find column widths for proper alignment
	maxNameLen := len("Method")
	maxDurationLen := len("Duration")
	for _, res := range results {
		if len(res.Name) > maxNameLen {
			maxNameLen = len(res.Name)
		}
		duration := comparisonDuration(res.Duration)
		if len(duration) > maxDurationLen {
			maxDurationLen = len(duration)
		}
	}

	fmt.Fprintf(out, "%sMethod%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorBold(), ui.ColorReset(), pad(maxNameLen-len("Method")),
		ui.ColorBold(), ui.ColorReset(), pad(maxDurationLen-len("Duration")),
		ui.ColorBold(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := comparisonDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), pad(maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), pad(maxDurationLen-len(duration)),
			status)
	}
}

// comparisonDuration renders a duration for the comparison table.
func comparisonDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.ExecutionDuration(d)
}

// HandleError handles computation errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleComputationError(err, duration, out, CLIColorProvider{})
}
