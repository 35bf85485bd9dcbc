// Package tui implements the interactive dashboard. It runs the same
// orchestration as the plain CLI but renders the per-iterate error table,
// a log-scale convergence sparkline and live system gauges in a bubbletea
// program. Bridge types forward orchestration callbacks as messages so the
// computation never touches the terminal directly.
package tui
