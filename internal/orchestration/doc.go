// Package orchestration coordinates execution of the square-root iteration
// engines and aggregates their results for comparison. It decouples the
// numeric core from presentation via the ProgressReporter and ResultPresenter
// interfaces.
package orchestration
