// Package progress defines the progress reporting types shared by the
// iteration engines and the presentation layers (CLI spinner, TUI).
package progress

// Update carries a single progress notification from an engine.
type Update struct {
	// EngineIndex identifies which engine sent the update when several run
	// concurrently (0-based, matches the orchestration slice order).
	EngineIndex int
	// Value is the normalized progress, 0.0 to 1.0.
	Value float64
}

// Callback receives normalized progress values (0.0 to 1.0) from an engine.
// Engines call it once per completed iteration step.
type Callback func(value float64)

// NopCallback discards progress values. Engines accept it when the caller
// has no interest in progress reporting.
func NopCallback(float64) {}

// ChannelCallback returns a Callback that forwards updates for the given
// engine index to ch without blocking: if the channel buffer is full the
// update is dropped, never stalling the arithmetic loop.
func ChannelCallback(ch chan<- Update, engineIndex int) Callback {
	return func(value float64) {
		select {
		case ch <- Update{EngineIndex: engineIndex, Value: value}:
		default:
		}
	}
}
