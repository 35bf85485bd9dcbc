package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the bottom bar: key hints and run status.
type FooterModel struct {
	width int
	done  bool
	err   bool
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel {
	return FooterModel{}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
}

// SetDone marks the run as finished.
func (f *FooterModel) SetDone(done bool) {
	f.done = done
}

// SetError marks the run as failed.
func (f *FooterModel) SetError(failed bool) {
	f.err = failed
}

// View renders the footer.
func (f FooterModel) View() string {
	hints := []struct {
		key  string
		desc string
	}{
		{"q", "quit"},
		{"r", "restart"},
		{"↑/↓", "scroll"},
	}

	var b strings.Builder
	for i, h := range hints {
		if i > 0 {
			b.WriteString(footerDescStyle.Render("  "))
		}
		b.WriteString(footerKeyStyle.Render(h.key))
		b.WriteString(footerDescStyle.Render(" " + h.desc))
	}

	var status string
	switch {
	case f.err:
		status = statusErrorStyle.Render("FAILED")
	case f.done:
		status = statusDoneStyle.Render("DONE")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}

	left := b.String()
	gap := f.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	return left + spaces(gap) + status
}
