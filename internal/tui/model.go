package tui

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rputra/rootcalc/internal/cli"
	"github.com/rputra/rootcalc/internal/config"
	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/orchestration"
	"github.com/rputra/rootcalc/internal/sqrt"
	"github.com/rputra/rootcalc/internal/sysmon"
)

// Layout constants for the TUI dashboard.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 4
	IteratesPanelWidthPct = 60
)

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	engines    []sqrt.Engine
	generation uint64
	done       bool
	exitCode   int
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - footerHeight
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// iteratesWidth returns the width allocated to the iterates panel.
func (l LayoutManager) iteratesWidth() int {
	return l.width * IteratesPanelWidthPct / 100
}

// chartWidth returns the width allocated to the chart panel.
func (l LayoutManager) chartWidth() int {
	return l.width - l.iteratesWidth()
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header   HeaderModel
	iterates IteratesModel
	chart    ChartModel
	footer   FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	ref       *programRef
}

// NewModel creates a new TUI model.
func NewModel(parentCtx context.Context, engines []sqrt.Engine, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	number := cfg.Number
	if len(number) > 24 {
		number = number[:21] + "..."
	}
	subtitle := fmt.Sprintf("sqrt(%s) @ %d digits [%s]", number, cfg.PrecDigits, cfg.Method)

	return Model{
		header:   NewHeaderModel(version, subtitle),
		iterates: NewIteratesModel(),
		chart:    NewChartModel(),
		footer:   NewFooterModel(),
		keymap:   DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			engines:  engines,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		ref:       &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startComputationCmd(m.ref, m.ctx, m.engines, m.config, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		m.iterates.UpdateProgress(msg.AverageProgress)
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ReportMsg:
		m.iterates.SetReport(msg.Report)
		m.chart.SetReport(msg.Report)
		return m, nil

	case ComparisonResultsMsg:
		m.iterates.SetComparison(msg.Results)
		return m, nil

	case ErrorMsg:
		m.footer.SetError(true)
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.chart.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case ComputationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a superseded run
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.footer.SetDone(true)
		if msg.ExitCode != apperrors.ExitSuccess {
			m.footer.SetError(true)
		}
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a superseded run
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Reset):
		if m.cancel != nil {
			m.cancel()
		}

		m.generation++
		ctx, cancel := context.WithCancel(m.parentCtx)
		m.ctx = ctx
		m.cancel = cancel

		m.header.Reset()
		m.iterates.Reset()
		m.chart.Reset()
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.done = false
		m.exitCode = apperrors.ExitSuccess

		return m, tea.Batch(
			tickCmd(),
			startComputationCmd(m.ref, m.ctx, m.engines, m.config, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up):
		m.iterates.ScrollUp()
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		m.iterates.ScrollDown()
		return m, nil
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.header.View()
	footer := m.footer.View()
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.iterates.View(), m.chart.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.iterates.SetSize(m.iteratesWidth(), m.bodyHeight())
	m.chart.SetSize(m.chartWidth(), m.bodyHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, engines []sqrt.Engine, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, engines, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startComputationCmd returns a tea.Cmd that launches the orchestration.
func startComputationCmd(ref *programRef, ctx context.Context, engines []sqrt.Engine, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		presenter := &TUIResultPresenter{ref: ref}

		exitCode := runComputation(ref, ctx, engines, cfg, presenter)
		return ComputationCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// runComputation performs one full computation and reports through the
// bridge. It mirrors the plain CLI flow with the terminal output replaced
// by messages.
func runComputation(ref *programRef, ctx context.Context, engines []sqrt.Engine, cfg config.AppConfig, presenter *TUIResultPresenter) int {
	bits := sqrt.DigitsToBits(cfg.PrecDigits)
	start := time.Now()

	a, err := sqrt.ParseDecimal(cfg.Number, bits)
	if err != nil {
		return presenter.HandleError(err, time.Since(start), io.Discard)
	}
	seeds, err := orchestration.Seeds(engines, a, cfg.InitMode, cfg.InitValue)
	if err != nil {
		return presenter.HandleError(err, time.Since(start), io.Discard)
	}
	reference, err := sqrt.Reference(cfg.Number, bits)
	if err != nil {
		return presenter.HandleError(err, time.Since(start), io.Discard)
	}

	progressReporter := &TUIProgressReporter{ref: ref}
	results := orchestration.ExecuteEngines(ctx, engines, seeds, a, cfg.Iterations, progressReporter, io.Discard)

	if len(engines) > 1 {
		return orchestration.AnalyzeComparisonResults(results, reference, presenter, io.Discard)
	}

	result := results[0]
	if result.Err != nil {
		return presenter.HandleError(result.Err, result.Duration, io.Discard)
	}

	ref.Send(ReportMsg{Report: cli.Report{
		Number:    cfg.Number,
		Digits:    cfg.PrecDigits,
		Bits:      bits,
		Result:    result,
		Analysis:  orchestration.Analyze(result, reference),
		Reference: reference,
		Trusted:   sqrt.TrustedSqrt(a),
	}})
	return apperrors.ExitSuccess
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
