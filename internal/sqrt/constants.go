package sqrt

// ─────────────────────────────────────────────────────────────────────────────
// Precision Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// Log2Of10 is log2(10), the conversion factor between decimal digits and
	// binary significand bits. One decimal digit of precision requires
	// slightly more than 3.32 bits.
	Log2Of10 = 3.321928094887362

	// ReferenceGuardBits is the number of extra significand bits used while
	// computing the reference square root. The guard ensures the reference
	// is not itself limited by the precision under test; 64 bits buys
	// roughly 19 decimal digits of headroom.
	ReferenceGuardBits = 64

	// ReferenceGuardDigits is the number of extra significant decimal digits
	// used when the reference is rendered through the portable decimal
	// round-trip (see ReferenceViaString).
	ReferenceGuardDigits = 20

	// DefaultDigits is the default number of correct decimal digits
	// requested when the user does not specify a precision.
	DefaultDigits = 100

	// DefaultIterations is the default number of Newton steps. Quadratic
	// convergence doubles the number of correct digits per step, so 20
	// steps saturate any practical precision from a one-order-of-magnitude
	// initial guess.
	DefaultIterations = 20

	// MaxGuessExponent bounds the binary exponent magnitude accepted by the
	// automatic initial-guess heuristic. big.Float exponents are library
	// bounded near ±(1<<31 - 1); radicands beyond ±MaxGuessExponent are
	// rejected explicitly rather than risking silent wraparound in the
	// seed-exponent arithmetic.
	MaxGuessExponent = 1 << 30
)

// ─────────────────────────────────────────────────────────────────────────────
// Engine Identifiers
// ─────────────────────────────────────────────────────────────────────────────

const (
	// MethodHeron selects the Newton-Heron division-based iteration.
	MethodHeron = "heron"

	// MethodRecip selects the reciprocal square-root iteration.
	MethodRecip = "recip"
)
