// Package config defines the application configuration and the CLI/env
// parsing that produces it.
//
// Priority order is: CLI flags > environment variables > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/sqrt"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "ROOTCALC_"

// Initial-guess modes accepted by --init-mode.
const (
	InitModeAuto   = "auto"
	InitModeManual = "manual"
)

// MethodBoth selects both iteration engines for a comparison run.
const MethodBoth = "both"

// Default values for the tunable parameters.
const (
	DefaultTimeout = 1 * time.Minute
	DefaultNumber  = "2"
	DefaultAddr    = ":8080"
)

// ─────────────────────────────────────────────────────────────────────────────
// Application Configuration
// ─────────────────────────────────────────────────────────────────────────────

// AppConfig holds the full application configuration.
type AppConfig struct {
	// Number is the decimal radicand to take the square root of.
	Number string
	// PrecDigits is the requested precision in decimal digits.
	PrecDigits uint
	// Iterations is the number of iterations each engine performs.
	Iterations uint
	// Method selects the iteration engine: "heron", "recip" or "both".
	Method string
	// InitMode selects how the initial guess is obtained: "auto" or "manual".
	InitMode string
	// InitValue is the manual initial guess (decimal string); only
	// consulted when InitMode is "manual".
	InitValue string
	// SaveCSV is the path the per-iterate table is exported to; empty
	// disables the export.
	SaveCSV string
	// Timeout bounds the whole computation.
	Timeout time.Duration
	// Quiet suppresses everything except the final values.
	Quiet bool
	// Verbose adds memory statistics to the report.
	Verbose bool
	// AltCheck enables the alternate-library cross-check.
	AltCheck bool
	// TUI launches the interactive dashboard instead of the plain report.
	TUI bool
	// Serve starts the HTTP API instead of a one-shot computation.
	Serve bool
	// Addr is the listen address for --serve.
	Addr string
}

// DefaultConfig returns the configuration used when no flag or environment
// variable says otherwise.
func DefaultConfig() AppConfig {
	return AppConfig{
		Number:     DefaultNumber,
		PrecDigits: sqrt.DefaultDigits,
		Iterations: sqrt.DefaultIterations,
		Method:     sqrt.MethodHeron,
		InitMode:   InitModeAuto,
		Timeout:    DefaultTimeout,
		Addr:       DefaultAddr,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Parsing
// ─────────────────────────────────────────────────────────────────────────────

// ParseConfig parses command-line arguments into an AppConfig, applies
// environment variable overrides for flags that were not set explicitly,
// and validates the result.
//
// Parameters:
//   - programName: The name used in the usage text.
//   - args: The command-line arguments, without the program name.
//   - errWriter: Destination for usage and error output.
//   - availableMethods: The engine keys the factory can serve.
//
// Returns:
//   - AppConfig: The parsed configuration.
//   - error: flag.ErrHelp when help was requested, a ConfigError otherwise.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableMethods []string) (AppConfig, error) {
	cfg := DefaultConfig()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.Number, "number", cfg.Number, "decimal radicand to take the square root of")
	fs.UintVar(&cfg.PrecDigits, "prec-digits", cfg.PrecDigits, "precision in decimal digits")
	fs.UintVar(&cfg.Iterations, "iterations", cfg.Iterations, "number of iterations per engine")
	fs.StringVar(&cfg.Method, "method", cfg.Method,
		fmt.Sprintf("iteration engine: %s or %q", strings.Join(availableMethods, ", "), MethodBoth))
	fs.StringVar(&cfg.InitMode, "init-mode", cfg.InitMode, "initial guess mode: auto or manual")
	fs.StringVar(&cfg.InitValue, "init-value", cfg.InitValue, "manual initial guess (requires -init-mode manual)")
	fs.StringVar(&cfg.SaveCSV, "save-csv", cfg.SaveCSV, "export the per-iterate table to this CSV file")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "maximum computation time (e.g. 30s, 2m)")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "only print the final values")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "shorthand for -quiet")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "add memory statistics to the report")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "shorthand for -verbose")
	fs.BoolVar(&cfg.AltCheck, "alt-check", cfg.AltCheck, "cross-check the reference with an independent decimal library")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "interactive dashboard")
	fs.BoolVar(&cfg.Serve, "serve", cfg.Serve, "start the HTTP API instead of a one-shot run")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address for -serve")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg, availableMethods); err != nil {
		fmt.Fprintln(errWriter, err)
		fs.Usage()
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate rejects configurations the engines cannot serve.
func validate(cfg AppConfig, availableMethods []string) error {
	if cfg.PrecDigits < 2 {
		return apperrors.NewConfigError("prec-digits must be at least 2")
	}
	if !isKnownMethod(cfg.Method, availableMethods) {
		return apperrors.NewConfigError("unknown method %q (available: %s, %s)",
			cfg.Method, strings.Join(availableMethods, ", "), MethodBoth)
	}
	switch cfg.InitMode {
	case InitModeAuto:
	case InitModeManual:
		if cfg.InitValue == "" {
			return apperrors.NewConfigError("init-mode manual requires -init-value")
		}
	default:
		return apperrors.NewConfigError("unknown init-mode %q (auto or manual)", cfg.InitMode)
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive")
	}
	return nil
}

func isKnownMethod(method string, availableMethods []string) bool {
	if method == MethodBoth {
		return true
	}
	for _, m := range availableMethods {
		if method == m {
			return true
		}
	}
	return false
}
