package app

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rputra/rootcalc/internal/cli"
	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/metrics"
	"github.com/rputra/rootcalc/internal/orchestration"
	"github.com/rputra/rootcalc/internal/sqrt"
)

// runCalculate orchestrates the execution of the CLI computation command.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	// Lifecycle: timeout + signals
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	enginesToRun := orchestration.EnginesToRun(a.Config.Method, a.Factory)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(enginesToRun, out)
	}

	start := time.Now()
	bits := sqrt.DigitsToBits(a.Config.PrecDigits)

	radicand, err := sqrt.ParseDecimal(a.Config.Number, bits)
	if err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, time.Since(start), out)
	}
	seeds, err := orchestration.Seeds(enginesToRun, radicand, a.Config.InitMode, a.Config.InitValue)
	if err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, time.Since(start), out)
	}
	reference, err := sqrt.Reference(a.Config.Number, bits)
	if err != nil {
		return cli.CLIResultPresenter{}.HandleError(err, time.Since(start), out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	var collector *metrics.MemoryCollector
	var before metrics.MemorySnapshot
	if a.Config.Verbose {
		collector = metrics.NewMemoryCollector()
		before = collector.Snapshot()
	}

	results := orchestration.ExecuteEngines(ctx, enginesToRun, seeds, radicand, a.Config.Iterations, progressReporter, progressOut)

	exitCode := a.presentResults(results, reference, radicand, out)

	if a.Config.Verbose && collector != nil {
		after := collector.Snapshot()
		cli.DisplayMemoryStats(after, metrics.Between(before, after), out)
	}

	return exitCode
}

// presentResults renders the outcome of the run: the quiet value, the full
// single-engine report, or the two-engine comparison table.
func (a *Application) presentResults(results []orchestration.ComputationResult, reference *big.Float, radicand *big.Float, out io.Writer) int {
	if a.Config.Quiet {
		return a.presentQuiet(results, reference, out)
	}

	if len(results) > 1 {
		return orchestration.AnalyzeComparisonResults(results, reference, cli.CLIResultPresenter{}, out)
	}

	result := results[0]
	if result.Err != nil {
		return cli.CLIResultPresenter{}.HandleError(result.Err, result.Duration, out)
	}

	rep := cli.Report{
		Number:    a.Config.Number,
		Digits:    a.Config.PrecDigits,
		Bits:      sqrt.DigitsToBits(a.Config.PrecDigits),
		Result:    result,
		Analysis:  orchestration.Analyze(result, reference),
		Reference: reference,
		Trusted:   sqrt.TrustedSqrt(radicand),
	}
	if a.Config.AltCheck {
		alt, err := sqrt.AlternateSqrt(a.Config.Number, a.Config.PrecDigits)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Alternate check failed: %v\n", err)
		} else {
			rep.AltCheck = alt
		}
	}

	cli.DisplayReport(rep, out)
	a.saveCSVIfNeeded(rep)
	return apperrors.ExitSuccess
}

// presentQuiet prints only the fastest successful approximation.
func (a *Application) presentQuiet(results []orchestration.ComputationResult, reference *big.Float, out io.Writer) int {
	best := findBestResult(results)
	if best == nil {
		return cli.CLIResultPresenter{}.HandleError(results[0].Err, results[0].Duration, a.ErrWriter)
	}

	cli.DisplayQuietResult(out, best.Approx, a.Config.PrecDigits)

	if a.Config.SaveCSV != "" {
		rep := cli.Report{
			Number:   a.Config.Number,
			Digits:   a.Config.PrecDigits,
			Bits:     sqrt.DigitsToBits(a.Config.PrecDigits),
			Result:   *best,
			Analysis: orchestration.Analyze(*best, reference),
		}
		a.saveCSVIfNeeded(rep)
	}
	return apperrors.ExitSuccess
}

// saveCSVIfNeeded exports the per-iterate table. A failed export is reported
// on stderr but never changes the exit code; the computation itself succeeded.
func (a *Application) saveCSVIfNeeded(rep cli.Report) {
	if a.Config.SaveCSV == "" {
		return
	}
	if err := cli.WriteIterationsCSV(a.Config.SaveCSV, rep); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving iteration table: %v\n", err)
	}
}

func findBestResult(results []orchestration.ComputationResult) *orchestration.ComputationResult {
	var best *orchestration.ComputationResult
	for i := range results {
		if results[i].Err == nil {
			if best == nil || results[i].Duration < best.Duration {
				best = &results[i]
			}
		}
	}
	return best
}
