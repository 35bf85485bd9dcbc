//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/rputra/rootcalc/internal/progress"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows the decoupling of DisplayProgress from a specific spinner
// implementation, facilitating easier testing and maintenance.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	// Same interval as ProgressRefreshRate to synchronize redraws.
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// ProgressState tracks the per-engine progress of a run and computes the
// average, which gives a single consolidated progress view when several
// iteration methods run in parallel.
type ProgressState struct {
	progresses []float64
	numEngines int
}

// NewProgressState creates a ProgressState tracking numEngines engines.
func NewProgressState(numEngines int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, numEngines),
		numEngines: numEngines,
	}
}

// Update records a new progress value for a specific engine.
// Updates for out-of-range indices are ignored.
func (ps *ProgressState) Update(index int, value float64) {
	if index >= 0 && index < len(ps.progresses) {
		ps.progresses[index] = value
	}
}

// CalculateAverage computes the average progress across all tracked engines.
//
// Returns:
//   - float64: The average progress (0.0 to 1.0).
func (ps *ProgressState) CalculateAverage() float64 {
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	if ps.numEngines == 0 {
		return 0.0
	}
	return total / float64(ps.numEngines)
}

// progressBar generates a string representing a textual progress bar.
func progressBar(p float64, length int) string {
	if p > 1.0 {
		p = 1.0
	}
	if p < 0.0 {
		p = 0.0
	}
	count := int(p * float64(length))
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress consumes progress updates and animates a spinner with a
// consolidated progress bar until the channel is closed. It is the CLI
// implementation of orchestration.ProgressReporter and runs in its own
// goroutine.
//
// Parameters:
//   - wg: Signaled when the display has fully stopped.
//   - progressChan: Channel receiving updates from the engines.
//   - numEngines: The number of engines being tracked.
//   - out: The writer the spinner animates on.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numEngines int, out io.Writer) {
	defer wg.Done()

	if numEngines <= 0 {
		for range progressChan {
		}
		return
	}

	state := NewProgressState(numEngines)
	spin := newSpinner(spinner.WithWriter(out))
	spin.Start()
	defer spin.Stop()

	refresh := func() {
		avg := state.CalculateAverage()
		spin.UpdateSuffix(fmt.Sprintf(" %s %5.1f%%", progressBar(avg, ProgressBarWidth), avg*100))
	}
	refresh()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				refresh()
				return
			}
			state.Update(update.EngineIndex, update.Value)
		case <-ticker.C:
			refresh()
		}
	}
}
