package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies ANSI color codes for diagnostic output. It decouples
// the error handler from the presentation layer so that the same mapping can
// serve colored terminals and plain writers.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleComputationError maps a failed run to its exit code and writes a
// diagnostic to out. The mapping follows the application error taxonomy:
// context errors distinguish timeouts from user cancellation, configuration
// and validation errors report misuse, and everything else is generic.
//
// Parameters:
//   - err: The error that terminated the run (may be wrapped).
//   - duration: How long the run had been executing, for the diagnostic.
//   - out: The writer for the diagnostic message.
//   - colors: The ANSI color provider.
//
// Returns:
//   - int: The process exit code corresponding to the error class.
func HandleComputationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	var timeoutErr TimeoutError
	var configErr ConfigError
	var validationErr ValidationError

	switch {
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sComputation timed out after %s.%s\n", colors.Red(), duration, colors.Reset())
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sComputation canceled by user.%s\n", colors.Yellow(), colors.Reset())
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorGeneric
	}
}
