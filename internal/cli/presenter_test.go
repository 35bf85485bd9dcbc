package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/orchestration"
)

func TestPresentComparisonTable(t *testing.T) {
	noColor(t)
	var buf bytes.Buffer

	results := []orchestration.ComputationResult{
		{Name: "Heron (Newton)", Duration: time.Millisecond},
		{Name: "Reciprocal sqrt", Duration: 0, Err: errors.New("boom")},
	}
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	out := buf.String()

	for _, want := range []string{
		"Comparison Summary",
		"Method", "Duration", "Status",
		"Heron (Newton)", "1ms", "Success",
		"Reciprocal sqrt", "< 1µs", "Failure (boom)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("comparison table missing %q:\n%s", want, out)
		}
	}
}

func TestHandleError_ExitCodes(t *testing.T) {
	noColor(t)
	presenter := CLIResultPresenter{}

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"timeout", apperrors.TimeoutError{Operation: "sqrt", Limit: time.Second}, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"config", apperrors.NewConfigError("bad flag"), apperrors.ExitErrorConfig},
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := presenter.HandleError(tt.err, time.Second, &buf); got != tt.expected {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.expected)
			}
			if buf.Len() == 0 {
				t.Error("expected a diagnostic message")
			}
		})
	}
}
