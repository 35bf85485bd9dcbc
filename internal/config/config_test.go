package config

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/sqrt"
)

var testMethods = []string{sqrt.MethodHeron, sqrt.MethodRecip}

func parse(t *testing.T, args ...string) (AppConfig, error) {
	t.Helper()
	var errBuf bytes.Buffer
	return ParseConfig("rootcalc", args, &errBuf, testMethods)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}

	if cfg.Number != DefaultNumber {
		t.Errorf("Number = %q, want %q", cfg.Number, DefaultNumber)
	}
	if cfg.PrecDigits != sqrt.DefaultDigits {
		t.Errorf("PrecDigits = %d, want %d", cfg.PrecDigits, sqrt.DefaultDigits)
	}
	if cfg.Iterations != sqrt.DefaultIterations {
		t.Errorf("Iterations = %d, want %d", cfg.Iterations, sqrt.DefaultIterations)
	}
	if cfg.Method != sqrt.MethodHeron {
		t.Errorf("Method = %q, want %q", cfg.Method, sqrt.MethodHeron)
	}
	if cfg.InitMode != InitModeAuto {
		t.Errorf("InitMode = %q, want %q", cfg.InitMode, InitModeAuto)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Addr != DefaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, DefaultAddr)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := parse(t,
		"-number", "3.5",
		"-prec-digits", "250",
		"-iterations", "40",
		"-method", "recip",
		"-init-mode", "manual",
		"-init-value", "1.8",
		"-save-csv", "out.csv",
		"-timeout", "30s",
		"-quiet",
		"-alt-check",
	)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}

	if cfg.Number != "3.5" {
		t.Errorf("Number = %q, want 3.5", cfg.Number)
	}
	if cfg.PrecDigits != 250 {
		t.Errorf("PrecDigits = %d, want 250", cfg.PrecDigits)
	}
	if cfg.Iterations != 40 {
		t.Errorf("Iterations = %d, want 40", cfg.Iterations)
	}
	if cfg.Method != sqrt.MethodRecip {
		t.Errorf("Method = %q, want recip", cfg.Method)
	}
	if cfg.InitMode != InitModeManual || cfg.InitValue != "1.8" {
		t.Errorf("InitMode/InitValue = %q/%q, want manual/1.8", cfg.InitMode, cfg.InitValue)
	}
	if cfg.SaveCSV != "out.csv" {
		t.Errorf("SaveCSV = %q, want out.csv", cfg.SaveCSV)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if !cfg.Quiet || !cfg.AltCheck {
		t.Errorf("Quiet/AltCheck = %v/%v, want true/true", cfg.Quiet, cfg.AltCheck)
	}
}

func TestParseConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"precision below minimum", []string{"-prec-digits", "1"}, "prec-digits"},
		{"unknown method", []string{"-method", "bisect"}, `unknown method "bisect"`},
		{"unknown init mode", []string{"-init-mode", "guess"}, `unknown init-mode "guess"`},
		{"manual mode without value", []string{"-init-mode", "manual"}, "requires -init-value"},
		{"non-positive timeout", []string{"-timeout", "0s"}, "timeout must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			_, err := ParseConfig("rootcalc", tt.args, &errBuf, testMethods)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("expected ConfigError, got %v", err)
			}
			// The diagnostic must reach the user, not just the caller.
			if !strings.Contains(errBuf.String(), tt.wantMsg) {
				t.Errorf("error output %q does not mention %q", errBuf.String(), tt.wantMsg)
			}
		})
	}
}

func TestParseConfig_MethodBoth(t *testing.T) {
	cfg, err := parse(t, "-method", "both")
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Method != MethodBoth {
		t.Errorf("Method = %q, want both", cfg.Method)
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := parse(t, "-h")
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"NUMBER", "7")
	t.Setenv(EnvPrefix+"PREC_DIGITS", "42")
	t.Setenv(EnvPrefix+"METHOD", "recip")
	t.Setenv(EnvPrefix+"TIMEOUT", "90s")
	t.Setenv(EnvPrefix+"QUIET", "yes")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}

	if cfg.Number != "7" {
		t.Errorf("Number = %q, want 7", cfg.Number)
	}
	if cfg.PrecDigits != 42 {
		t.Errorf("PrecDigits = %d, want 42", cfg.PrecDigits)
	}
	if cfg.Method != sqrt.MethodRecip {
		t.Errorf("Method = %q, want recip", cfg.Method)
	}
	if cfg.Timeout != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Timeout)
	}
	if !cfg.Quiet {
		t.Error("Quiet = false, want true")
	}
}

func TestEnvOverrides_FlagWins(t *testing.T) {
	t.Setenv(EnvPrefix+"PREC_DIGITS", "42")
	t.Setenv(EnvPrefix+"METHOD", "recip")

	cfg, err := parse(t, "-prec-digits", "300", "-method", "heron")
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}

	if cfg.PrecDigits != 300 {
		t.Errorf("PrecDigits = %d, want 300 (flag must beat env)", cfg.PrecDigits)
	}
	if cfg.Method != sqrt.MethodHeron {
		t.Errorf("Method = %q, want heron (flag must beat env)", cfg.Method)
	}
}

func TestEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv(EnvPrefix+"PREC_DIGITS", "many")
	t.Setenv(EnvPrefix+"TIMEOUT", "soon")
	t.Setenv(EnvPrefix+"VERBOSE", "maybe")

	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}

	if cfg.PrecDigits != sqrt.DefaultDigits {
		t.Errorf("PrecDigits = %d, want default %d", cfg.PrecDigits, sqrt.DefaultDigits)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want default %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Verbose {
		t.Error("Verbose = true, want default false")
	}
}
