package tui

import (
	"fmt"
	"strings"

	"github.com/rputra/rootcalc/internal/cli"
	"github.com/rputra/rootcalc/internal/format"
	"github.com/rputra/rootcalc/internal/orchestration"
)

// panelDisplayDigits caps the scientific rendering inside the table panel;
// full precision belongs to the plain report and the CSV export.
const panelDisplayDigits = 12

// IteratesModel renders the per-iterate error table with a scrollable
// window, plus the final summary once a report is available.
type IteratesModel struct {
	width  int
	height int

	rows    []string
	summary []string
	offset  int

	progress float64
	running  bool
}

// NewIteratesModel creates an empty iterates panel.
func NewIteratesModel() IteratesModel {
	return IteratesModel{running: true}
}

// SetSize updates the panel dimensions.
func (m *IteratesModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.clampOffset()
}

// Reset clears the panel for a restarted run.
func (m *IteratesModel) Reset() {
	m.rows = nil
	m.summary = nil
	m.offset = 0
	m.progress = 0
	m.running = true
}

// UpdateProgress records the latest average progress for the running view.
func (m *IteratesModel) UpdateProgress(avg float64) {
	m.progress = avg
}

// SetReport fills the table and summary from a finished single-engine run.
func (m *IteratesModel) SetReport(rep cli.Report) {
	m.running = false
	m.rows = make([]string, 0, len(rep.Result.Roots)+1)
	m.rows = append(m.rows, tableHeaderStyle.Render(
		fmt.Sprintf("%4s  %-*s  %-12s  %-12s", "iter", panelDisplayDigits+7, "value", "abs err", "rel err")))

	for i, root := range rep.Result.Roots {
		rec := rep.Analysis.Records[i]
		m.rows = append(m.rows, tableRowStyle.Render(
			fmt.Sprintf("%4d  %-*s  %-12s  %-12s",
				i,
				panelDisplayDigits+7, format.Scientific(root, panelDisplayDigits),
				format.Scientific(rec.Abs, 6),
				format.Scientific(rec.Rel, 6))))
	}

	m.summary = []string{
		summaryLabelStyle.Render("Method        ") + summaryValueStyle.Render(rep.Result.Name),
		summaryLabelStyle.Render("Precision     ") + summaryValueStyle.Render(format.Bits(rep.Bits, rep.Digits)),
		summaryLabelStyle.Render("Final iterate ") + summaryValueStyle.Render(format.Scientific(rep.Result.Approx, panelDisplayDigits)),
		summaryLabelStyle.Render("Reference     ") + summaryValueStyle.Render(format.Scientific(rep.Reference, panelDisplayDigits)),
		summaryLabelStyle.Render("Final rel err ") + summaryValueStyle.Render(format.Scientific(rep.Analysis.Final.Rel, 6)),
		summaryLabelStyle.Render("Elapsed       ") + summaryValueStyle.Render(format.ExecutionDuration(rep.Result.Duration)),
	}
	m.clampOffset()
}

// SetComparison fills the summary from a finished two-engine run.
func (m *IteratesModel) SetComparison(results []orchestration.ComputationResult) {
	m.running = false
	m.summary = m.summary[:0]
	for _, r := range results {
		status := statusDoneStyle.Render("OK")
		detail := format.ExecutionDuration(r.Duration)
		if r.Err != nil {
			status = statusErrorStyle.Render("FAILED")
			detail = r.Err.Error()
		}
		m.summary = append(m.summary,
			summaryLabelStyle.Render(fmt.Sprintf("%-32s", r.Name))+status+summaryValueStyle.Render("  "+detail))
	}
	m.clampOffset()
}

// ScrollUp moves the table window one row up.
func (m *IteratesModel) ScrollUp() {
	if m.offset > 0 {
		m.offset--
	}
}

// ScrollDown moves the table window one row down.
func (m *IteratesModel) ScrollDown() {
	m.offset++
	m.clampOffset()
}

func (m *IteratesModel) clampOffset() {
	max := len(m.rows) - m.bodyRows()
	if max < 0 {
		max = 0
	}
	if m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// bodyRows returns how many table rows fit above the summary.
func (m *IteratesModel) bodyRows() int {
	h := m.height - 2 - len(m.summary) // panel border
	if len(m.summary) > 0 {
		h-- // separator line
	}
	if h < 1 {
		h = 1
	}
	return h
}

// View renders the panel.
func (m IteratesModel) View() string {
	var b strings.Builder

	if m.running {
		b.WriteString(tableHeaderStyle.Render("Computing..."))
		b.WriteString("\n")
		b.WriteString(chartBarStyle.Render(fmt.Sprintf("%.1f %%", m.progress)))
	} else {
		visible := m.rows
		body := m.bodyRows()
		if len(visible) > body {
			end := m.offset + body
			if end > len(visible) {
				end = len(visible)
			}
			visible = visible[m.offset:end]
		}
		b.WriteString(strings.Join(visible, "\n"))
		if len(m.summary) > 0 {
			b.WriteString("\n")
			b.WriteString(versionStyle.Render(strings.Repeat("─", max(m.width-4, 1))))
			b.WriteString("\n")
			b.WriteString(strings.Join(m.summary, "\n"))
		}
	}

	return panelStyle.Width(max(m.width-2, 0)).Height(max(m.height-2, 1)).Render(b.String())
}
