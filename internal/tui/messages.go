package tui

import (
	"time"

	"github.com/rputra/rootcalc/internal/cli"
	"github.com/rputra/rootcalc/internal/orchestration"
)

// ProgressMsg carries a progress update from a running engine.
type ProgressMsg struct {
	EngineIndex     int
	Value           float64
	AverageProgress float64
}

// ProgressDoneMsg signals that the progress channel has been closed.
type ProgressDoneMsg struct{}

// ReportMsg carries the final single-engine report, including the
// per-iterate error records.
type ReportMsg struct {
	Report cli.Report
}

// ComparisonResultsMsg carries the per-engine results of a "both" run.
type ComparisonResultsMsg struct {
	Results []orchestration.ComputationResult
}

// ErrorMsg signals a failed computation.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// ComputationCompleteMsg signals that the orchestration has finished.
// Generation guards against messages from a superseded run after a reset.
type ComputationCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the parent context was cancelled.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

// TickMsg drives the periodic refresh of the elapsed timer and the
// system gauges.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
