// Package sqrt implements the high-precision square-root iteration engines
// and their supporting numerics: decimal-digit to bit conversion, the
// automatic initial-guess heuristic, construction of a guarded high-precision
// reference value, and per-iterate error analysis.
//
// All values are big.Float instances carrying their own precision in bits.
// There is no process-wide precision state: callers choose a precision via
// DigitsToBits and thread it explicitly through ParseDecimal and the engine
// calls. Values created at different precisions are never mixed silently;
// the reference builder re-rounds its guarded computation down to the
// working precision before any comparison takes place.
package sqrt
