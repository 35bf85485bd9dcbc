// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayReport], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteIterationsCSV].

package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rputra/rootcalc/internal/format"
	"github.com/rputra/rootcalc/internal/metrics"
	"github.com/rputra/rootcalc/internal/orchestration"
	"github.com/rputra/rootcalc/internal/ui"
)

// Report bundles everything the console report for a single engine run needs.
type Report struct {
	// Number is the original decimal input string.
	Number string
	// Digits is the requested decimal precision.
	Digits uint
	// Bits is the derived working precision.
	Bits uint
	// Result is the engine outcome.
	Result orchestration.ComputationResult
	// Analysis holds the per-iterate deviations from the reference.
	Analysis orchestration.ErrorAnalysis
	// Reference is the guarded high-precision reference root.
	Reference *big.Float
	// Trusted is the library square root at the working precision.
	Trusted *big.Float
	// AltCheck is the alternate-library rendering; empty when disabled.
	AltCheck string
}

// DisplayReport writes the full computation report: the run parameters, the
// reference and final values with their deviations, and the 0-indexed
// per-iterate error table.
func DisplayReport(rep Report, out io.Writer) {
	res := rep.Result

	fmt.Fprintf(out, "\n--- Result: %s%s%s ---\n", ui.ColorBold(), res.Name, ui.ColorReset())
	fmt.Fprintf(out, "Input:          %s\n", rep.Number)
	fmt.Fprintf(out, "Precision:      %s\n", format.Bits(rep.Bits, rep.Digits))
	fmt.Fprintf(out, "Iterations:     %d\n", len(res.Sequence)-1)
	fmt.Fprintf(out, "Initial guess:  %s\n", format.Scientific(res.InitialGuess, rep.Digits))
	fmt.Fprintf(out, "Elapsed:        %s%s%s (%d ns)\n",
		ui.ColorYellow(), format.ExecutionDuration(res.Duration), ui.ColorReset(), res.Duration.Nanoseconds())

	fmt.Fprintf(out, "\nReference:      %s\n", format.Scientific(rep.Reference, rep.Digits))
	fmt.Fprintf(out, "Library sqrt:   %s\n", format.Scientific(rep.Trusted, rep.Digits))
	if machine, ok := machineSqrt(rep.Number); ok {
		fmt.Fprintf(out, "Machine sqrt:   %s\n", machine)
	}
	fmt.Fprintf(out, "Final iterate:  %s%s%s\n",
		ui.ColorGreen(), format.Scientific(res.Approx, rep.Digits), ui.ColorReset())
	fmt.Fprintf(out, "Final abs err:  %s\n", format.Scientific(rep.Analysis.Final.Abs, errDigits))
	fmt.Fprintf(out, "Final rel err:  %s\n", format.Scientific(rep.Analysis.Final.Rel, errDigits))

	if rep.AltCheck != "" {
		fmt.Fprintf(out, "Alt library:    %s\n", rep.AltCheck)
	}

	DisplayIterationTable(rep, out)
}

// errDigits is how many significant digits the error columns carry. Errors
// only need their magnitude, not the full working precision.
const errDigits = 6

// iterateDisplayDigits caps the per-iterate value column so wide precisions
// keep the table readable; the CSV export carries the full digit count.
const iterateDisplayDigits = 30

// DisplayIterationTable writes the 0-indexed per-iterate error table.
func DisplayIterationTable(rep Report, out io.Writer) {
	digits := rep.Digits
	if digits > iterateDisplayDigits {
		digits = iterateDisplayDigits
	}

	fmt.Fprintf(out, "\n%sIter   Value%s%s   %sAbs error     Rel error%s\n",
		ui.ColorGrey(), ui.ColorReset(), pad(int(digits)+1), ui.ColorGrey(), ui.ColorReset())
	for i, root := range rep.Result.Roots {
		rec := rep.Analysis.Records[i]
		fmt.Fprintf(out, "%4d   %-*s   %-12s  %-12s\n",
			i, int(digits)+6, format.Scientific(root, digits),
			format.Scientific(rec.Abs, errDigits), format.Scientific(rec.Rel, errDigits))
	}
}

// machineSqrt renders math.Sqrt of the input at full float64 precision, as a
// last cross-check independent of the arbitrary-precision stack. Inputs a
// float64 cannot hold (overflow, negative, unparsable) yield ok == false.
func machineSqrt(number string) (string, bool) {
	f, err := strconv.ParseFloat(number, 64)
	if err != nil || f < 0 || math.IsInf(f, 1) {
		return "", false
	}
	return strconv.FormatFloat(math.Sqrt(f), 'e', 16, 64), true
}

// pad returns length spaces, clamped at zero.
func pad(length int) string {
	if length <= 0 {
		return ""
	}
	return fmt.Sprintf("%*s", length, "")
}

// DisplayQuietResult outputs only the final approximation, one value per
// line, suitable for scripting.
func DisplayQuietResult(out io.Writer, approx *big.Float, digits uint) {
	fmt.Fprintln(out, format.Scientific(approx, digits))
}

// WriteIterationsCSV exports the per-iterate table to a CSV file with the
// header iteration,value,abs_error,rel_error. Values are rendered in
// scientific notation at the requested digit count.
//
// Parameters:
//   - path: The destination file; parent directories are created.
//   - rep: The report whose root-space iterates are exported.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteIterationsCSV(path string, rep Report) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	if err := writeIterationRecords(file, rep); err != nil {
		return err
	}
	return nil
}

// writeIterationRecords streams the CSV rows to w. Shared by the file export
// and the HTTP API's text/csv responses.
func writeIterationRecords(w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"iteration", "value", "abs_error", "rel_error"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i, root := range rep.Result.Roots {
		rec := rep.Analysis.Records[i]
		row := []string{
			strconv.Itoa(i),
			format.Scientific(root, rep.Digits),
			format.Scientific(rec.Abs, rep.Digits),
			format.Scientific(rec.Rel, rep.Digits),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// RenderIterationsCSV renders the per-iterate table as CSV into w.
func RenderIterationsCSV(w io.Writer, rep Report) error {
	return writeIterationRecords(w, rep)
}

// DisplayMemoryStats shows memory statistics after a computation.
func DisplayMemoryStats(snap metrics.MemorySnapshot, delta metrics.Delta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  Heap growth:     %s\n", format.FormatBytes(delta.HeapGrowth))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.GCCycles)
	if delta.PauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.PauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
}
