package cli

import (
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/rputra/rootcalc/internal/progress"
)

// MockSpinner for testing
type MockSpinner struct {
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() { m.started = true }

func (m *MockSpinner) Stop() { m.stopped = true }

func (m *MockSpinner) UpdateSuffix(suffix string) { m.suffix = suffix }

func TestProgressState(t *testing.T) {
	ps := NewProgressState(2)

	ps.Update(0, 0.5)
	if got := ps.CalculateAverage(); got != 0.25 {
		t.Errorf("average = %f, want 0.25", got)
	}

	ps.Update(1, 1.0)
	if got := ps.CalculateAverage(); got != 0.75 {
		t.Errorf("average = %f, want 0.75", got)
	}

	// Out-of-range updates are ignored.
	ps.Update(5, 1.0)
	ps.Update(-1, 1.0)
	if got := ps.CalculateAverage(); got != 0.75 {
		t.Errorf("average after bad updates = %f, want 0.75", got)
	}
}

func TestProgressState_ZeroEngines(t *testing.T) {
	ps := NewProgressState(0)
	if got := ps.CalculateAverage(); got != 0.0 {
		t.Errorf("average = %f, want 0", got)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		filled   int
	}{
		{"Empty", 0.0, 0},
		{"Half", 0.5, 5},
		{"Full", 1.0, 10},
		{"Over", 1.5, 10},
		{"Negative", -0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := progressBar(tt.progress, 10)
			if got := strings.Count(bar, "█"); got != tt.filled {
				t.Errorf("progressBar(%f) has %d filled cells, want %d", tt.progress, got, tt.filled)
			}
			if runes := []rune(bar); len(runes) != 10 {
				t.Errorf("progressBar length = %d, want 10", len(runes))
			}
		})
	}
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)

	progressChan := make(chan progress.Update)

	go func() {
		progressChan <- progress.Update{EngineIndex: 0, Value: 0.5}
		time.Sleep(10 * time.Millisecond)
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 1, io.Discard)
	wg.Wait()

	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !mockS.stopped {
		t.Error("Spinner should have stopped")
	}
	if !strings.Contains(mockS.suffix, "%") {
		t.Errorf("suffix %q should contain a percentage", mockS.suffix)
	}
}

func TestDisplayProgress_ZeroEngines(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.Update)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
	// Must return immediately without a spinner.
}
