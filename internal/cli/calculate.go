package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/rputra/rootcalc/internal/config"
	"github.com/rputra/rootcalc/internal/format"
	"github.com/rputra/rootcalc/internal/sqrt"
	"github.com/rputra/rootcalc/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration: the
// radicand, the requested precision with its bit equivalent, the iteration
// budget and the environment.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Computing %ssqrt(%s)%s at %s%s%s with %s%d%s iterations, timeout %s%s%s.\n",
		ui.ColorBlue(), cfg.Number, ui.ColorReset(),
		ui.ColorBlue(), format.Bits(sqrt.DigitsToBits(cfg.PrecDigits), cfg.PrecDigits), ui.ColorReset(),
		ui.ColorBlue(), cfg.Iterations, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorGrey(), runtime.NumCPU(), ui.ColorReset(), ui.ColorGrey(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single method vs comparison).
//
// Parameters:
//   - engines: The engines that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(engines []sqrt.Engine, out io.Writer) {
	var modeDesc string
	if len(engines) > 1 {
		modeDesc = "Parallel comparison of both iteration methods"
	} else {
		modeDesc = fmt.Sprintf("Single computation with the %s%s%s method",
			ui.ColorGreen(), engines[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
