package sqrt

import (
	"math/big"
	"testing"

	apperrors "github.com/rputra/rootcalc/internal/errors"
)

// mustParse parses a decimal numeral at the given precision or fails the test.
func mustParse(t *testing.T, s string, bits uint) *big.Float {
	t.Helper()
	f, err := ParseDecimal(s, bits)
	if err != nil {
		t.Fatalf("ParseDecimal(%q): %v", s, err)
	}
	return f
}

// TestAutoInitialGuess verifies the seed-exponent formula on exact powers of
// two and general values.
func TestAutoInitialGuess(t *testing.T) {
	const bits = 167 // 50 digits

	tests := []struct {
		input string
		want  string // expected 2^floorDiv(floor(log2 a)+2, 2)
	}{
		{"2", "2"},     // e=1, s=1
		{"4", "4"},     // e=2, s=2
		{"9", "4"},     // e=3, s=2
		{"16", "8"},    // e=4, s=3
		{"1", "2"},     // e=0, s=1
		{"0.5", "1"},   // e=-1, s=0
		{"0.2", "0.5"}, // e=-3, s=-1 (floor division, not truncation)
		{"1e6", "1024"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			a := mustParse(t, tt.input, bits)
			got, err := AutoInitialGuess(a)
			if err != nil {
				t.Fatalf("AutoInitialGuess(%s): %v", tt.input, err)
			}
			want := mustParse(t, tt.want, bits)
			if got.Cmp(want) != 0 {
				t.Errorf("AutoInitialGuess(%s) = %s, want %s", tt.input, got.Text('g', 10), tt.want)
			}
		})
	}
}

// TestAutoInitialGuessZero checks the zero radicand short-circuit.
func TestAutoInitialGuessZero(t *testing.T) {
	a := mustParse(t, "0", 64)
	got, err := AutoInitialGuess(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Sign() != 0 {
		t.Errorf("AutoInitialGuess(0) = %s, want 0", got.Text('g', 5))
	}
}

// TestAutoInitialGuessNegative checks the domain rejection.
func TestAutoInitialGuessNegative(t *testing.T) {
	a := mustParse(t, "-1", 64)
	_, err := AutoInitialGuess(a)
	if err == nil {
		t.Fatal("expected DomainError for negative input")
	}
	if !apperrors.IsDomainError(err) {
		t.Errorf("error = %T (%v), want DomainError", err, err)
	}
}

// TestAutoInitialGuessBracketsRoot verifies the heuristic's core promise:
// the guess is within a factor of two of the true root, and never below it.
func TestAutoInitialGuessBracketsRoot(t *testing.T) {
	const bits = 200

	for _, s := range []string{"2", "3", "5", "7.25", "0.3", "0.0017", "123456789", "1e-30", "1e30", "9.99e99"} {
		a := mustParse(t, s, bits)
		x0, err := AutoInitialGuess(a)
		if err != nil {
			t.Fatalf("AutoInitialGuess(%s): %v", s, err)
		}

		root := TrustedSqrt(a)
		if x0.Cmp(root) < 0 {
			t.Errorf("guess for %s is below the root: %s < %s", s, x0.Text('g', 10), root.Text('g', 10))
		}

		twice := new(big.Float).SetPrec(bits).Add(root, root)
		if x0.Cmp(twice) > 0 {
			t.Errorf("guess for %s exceeds twice the root: %s > %s", s, x0.Text('g', 10), twice.Text('g', 10))
		}
	}
}
