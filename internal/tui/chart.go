package tui

import (
	"fmt"
	"strings"

	"github.com/rputra/rootcalc/internal/cli"
	"github.com/rputra/rootcalc/internal/format"
)

// gaugeHistory is the sample capacity of the CPU and memory sparklines.
const gaugeHistory = 60

// ChartModel renders the convergence sparkline (per-iterate relative
// error, log scale) and the live system gauges.
type ChartModel struct {
	width  int
	height int

	errScale []float64

	cpu *RingBuffer
	mem *RingBuffer

	alloc      uint64
	goroutines int
	gcCycles   uint32
}

// NewChartModel creates an empty chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		cpu: NewRingBuffer(gaugeHistory),
		mem: NewRingBuffer(gaugeHistory),
	}
}

// SetSize updates the panel dimensions.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	inner := max(w-4, 1)
	c.cpu.Resize(inner)
	c.mem.Resize(inner)
}

// Reset clears the convergence data; system gauges keep their history.
func (c *ChartModel) Reset() {
	c.errScale = nil
}

// SetReport derives the convergence sparkline from the finished run's
// per-iterate relative errors.
func (c *ChartModel) SetReport(rep cli.Report) {
	c.errScale = c.errScale[:0]
	for _, rec := range rep.Analysis.Records {
		rel, _ := rec.Rel.Float64()
		c.errScale = append(c.errScale, ErrorToScale(rel, rep.Digits))
	}
}

// UpdateSysStats appends a CPU/memory sample.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpu.Push(cpuPercent)
	c.mem.Push(memPercent)
}

// UpdateMemStats records the latest runtime memory sample.
func (c *ChartModel) UpdateMemStats(msg MemStatsMsg) {
	c.alloc = msg.Alloc
	c.goroutines = msg.NumGoroutine
	c.gcCycles = msg.NumGC
}

// View renders the panel.
func (c ChartModel) View() string {
	var b strings.Builder

	b.WriteString(tableHeaderStyle.Render("Convergence (rel err, log scale)"))
	b.WriteString("\n")
	if len(c.errScale) > 0 {
		b.WriteString(errSparklineStyle.Render(RenderSparkline(c.errScale)))
	} else {
		b.WriteString(chartEmptyStyle.Render("waiting for results"))
	}
	b.WriteString("\n\n")

	b.WriteString(summaryLabelStyle.Render(fmt.Sprintf("CPU %5.1f%% ", c.cpu.Last())))
	b.WriteString(cpuSparklineStyle.Render(RenderSparkline(c.cpu.Slice())))
	b.WriteString("\n")
	b.WriteString(summaryLabelStyle.Render(fmt.Sprintf("Mem %5.1f%% ", c.mem.Last())))
	b.WriteString(memSparklineStyle.Render(RenderSparkline(c.mem.Slice())))
	b.WriteString("\n")
	b.WriteString(summaryLabelStyle.Render(
		fmt.Sprintf("Heap %s  Goroutines %d  GC %d",
			format.FormatBytes(c.alloc), c.goroutines, c.gcCycles)))

	return panelStyle.Width(max(c.width-2, 0)).Height(max(c.height-2, 1)).Render(b.String())
}
