package sqrt

import (
	"context"
	"math/big"
	"testing"

	"github.com/rputra/rootcalc/internal/progress"
)

// runRecip runs the reciprocal engine with y0 derived from the auto guess.
func runRecip(t *testing.T, number string, digits uint, iterations int) (*big.Float, []*big.Float, *big.Float, *big.Float) {
	t.Helper()
	bits := DigitsToBits(digits)
	a := mustParse(t, number, bits)
	x0, err := AutoInitialGuess(a)
	if err != nil {
		t.Fatalf("AutoInitialGuess: %v", err)
	}
	one := new(big.Float).SetPrec(bits).SetInt64(1)
	y0 := new(big.Float).SetPrec(bits).Quo(one, x0)

	approx, seq, err := (&ReciprocalEngine{}).Compute(context.Background(), a, y0, iterations, progress.NopCallback)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	ref, err := Reference(number, bits)
	if err != nil {
		t.Fatalf("Reference: %v", err)
	}
	return approx, seq, ref, a
}

// TestRecipSequenceHoldsReciprocals verifies the documented convention: the
// stored sequence contains y_k, and a*y_k recovers the root domain.
func TestRecipSequenceHoldsReciprocals(t *testing.T) {
	approx, seq, ref, a := runRecip(t, "2", 50, 20)

	if len(seq) != 21 {
		t.Fatalf("sequence length = %d, want 21", len(seq))
	}

	// The converged reciprocal iterate approximates 1/sqrt(2) ≈ 0.7071,
	// not sqrt(2) ≈ 1.4142.
	last := seq[len(seq)-1]
	lowBound := mustParse(t, "0.70", last.Prec())
	highBound := mustParse(t, "0.71", last.Prec())
	if last.Cmp(lowBound) < 0 || last.Cmp(highBound) > 0 {
		t.Errorf("final reciprocal iterate = %s, expected ~0.7071", last.Text('g', 10))
	}

	// approx must equal a * y_n exactly (one post-loop multiplication).
	derived := new(big.Float).SetPrec(a.Prec()).Mul(a, last)
	if approx.Cmp(derived) != 0 {
		t.Errorf("approx = %s, want a*y_n = %s", approx.Text('e', 20), derived.Text('e', 20))
	}

	// DeriveRoots maps the whole sequence into the root domain.
	roots := DeriveRoots(a, seq)
	if len(roots) != len(seq) {
		t.Fatalf("DeriveRoots length = %d, want %d", len(roots), len(seq))
	}
	rec := Analyze(roots[len(roots)-1], ref)
	bound := mustParse(t, "1e-45", ref.Prec())
	if rec.Rel.Cmp(bound) > 0 {
		t.Errorf("derived final root rel error = %s, want <= 1e-45", rec.Rel.Text('e', 5))
	}
}

// TestRecipHeronAgreement pins the two-method agreement property: for a=2 at
// 100 digits with 30 iterations, both finals agree with the reference to
// within 10^-(digits-5) relative error.
func TestRecipHeronAgreement(t *testing.T) {
	const digits = 100
	heronApprox, _, ref := runHeron(t, "2", digits, 30)
	recipApprox, _, _, _ := runRecip(t, "2", digits, 30)

	bound := mustParse(t, "1e-95", ref.Prec())
	for name, approx := range map[string]*big.Float{
		"heron": heronApprox,
		"recip": recipApprox,
	} {
		rec := Analyze(approx, ref)
		if rec.Rel.Cmp(bound) > 0 {
			t.Errorf("%s rel error = %s, want <= 1e-95", name, rec.Rel.Text('e', 5))
		}
	}
}

// TestRecipZeroFixedPoint verifies the absent zero guard: y0=0 is a fixed
// point and the run produces zeros throughout, ending at a zero root.
func TestRecipZeroFixedPoint(t *testing.T) {
	const bits = 167
	a := mustParse(t, "2", bits)
	y0 := mustParse(t, "0", bits)

	approx, seq, err := (&ReciprocalEngine{}).Compute(context.Background(), a, y0, 6, progress.NopCallback)
	if err != nil {
		t.Fatal(err)
	}
	for i, y := range seq {
		if y.Sign() != 0 {
			t.Errorf("iterate %d = %s, want 0", i, y.Text('g', 5))
		}
	}
	if approx.Sign() != 0 {
		t.Errorf("approx = %s, want 0 (a * 0)", approx.Text('g', 5))
	}
}

// TestRecipNoDivision is a structural companion to the recurrence contract:
// the engine must behave identically for radicands whose reciprocal is not
// exactly representable, which it can only do by never dividing.
func TestRecipConvergesOnAwkwardRadicand(t *testing.T) {
	approx, _, ref, _ := runRecip(t, "3", 60, 25)
	rec := Analyze(approx, ref)
	bound := mustParse(t, "1e-55", ref.Prec())
	if rec.Rel.Cmp(bound) > 0 {
		t.Errorf("rel error = %s, want <= 1e-55", rec.Rel.Text('e', 5))
	}
}

// TestRecipProgressReporting verifies one callback per step.
func TestRecipProgressReporting(t *testing.T) {
	const bits = 167
	a := mustParse(t, "2", bits)
	y0 := mustParse(t, "0.7", bits)

	count := 0
	_, _, err := (&ReciprocalEngine{}).Compute(context.Background(), a, y0, 12, func(float64) { count++ })
	if err != nil {
		t.Fatal(err)
	}
	if count != 12 {
		t.Errorf("progress callbacks = %d, want 12", count)
	}
}
