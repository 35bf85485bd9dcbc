// Package format holds the small presentation helpers shared by the CLI,
// the CSV export and the HTTP API.
package format

import (
	"fmt"
	"math/big"
	"time"
)

// ExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func ExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// Scientific renders an arbitrary-precision float in scientific notation
// with the requested number of significant decimal digits.
//
// Parameters:
//   - x: The value to render; nil renders as an empty string.
//   - digits: The number of significant digits (minimum 1).
//
// Returns:
//   - string: The value in the form d.ddd...e±dd.
func Scientific(x *big.Float, digits uint) string {
	if x == nil {
		return ""
	}
	if digits < 1 {
		digits = 1
	}
	return x.Text('e', int(digits-1))
}

// Bits annotates a bit count with its decimal-digit request, e.g.
// "333 bits (100 digits)". Used in the report header.
func Bits(bits, digits uint) string {
	return fmt.Sprintf("%d bits (%d digits)", bits, digits)
}

// FormatBytes renders a byte count using binary units (KiB, MiB, ...).
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
