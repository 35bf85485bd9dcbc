// Package metrics reads process memory statistics for the verbose report.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// Delta summarizes what a computation cost between two snapshots: how much
// the heap grew, how many GC cycles ran and how much pause time they added.
// Counters that can only grow are clamped at zero if the runtime reports a
// smaller value after than before.
type Delta struct {
	HeapGrowth   uint64
	GCCycles     uint32
	PauseTotalNs uint64
}

// Between computes the Delta from before to after.
func Between(before, after MemorySnapshot) Delta {
	var d Delta
	if after.HeapAlloc > before.HeapAlloc {
		d.HeapGrowth = after.HeapAlloc - before.HeapAlloc
	}
	if after.NumGC > before.NumGC {
		d.GCCycles = after.NumGC - before.NumGC
	}
	if after.PauseTotalNs > before.PauseTotalNs {
		d.PauseTotalNs = after.PauseTotalNs - before.PauseTotalNs
	}
	return d
}
