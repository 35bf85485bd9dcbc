package tui

import (
	"math"
	"testing"
)

func TestRingBuffer_PushAndSlice(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Push(1)
	rb.Push(2)
	rb.Push(3)

	got := rb.Slice()
	want := []float64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestRingBuffer_Overflow(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Push(1)
	rb.Push(2)
	rb.Push(3)
	rb.Push(4) // overwrites 1

	got := rb.Slice()
	want := []float64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %f, want %f", i, got[i], want[i])
		}
	}
}

func TestRingBuffer_Last(t *testing.T) {
	rb := NewRingBuffer(5)
	if rb.Last() != 0 {
		t.Error("expected 0 for empty buffer")
	}
	rb.Push(10)
	rb.Push(20)
	rb.Push(30)
	if rb.Last() != 30 {
		t.Errorf("expected 30, got %f", rb.Last())
	}
}

func TestRingBuffer_Reset(t *testing.T) {
	rb := NewRingBuffer(5)
	rb.Push(1)
	rb.Push(2)
	rb.Reset()

	if rb.Len() != 0 {
		t.Errorf("expected len 0, got %d", rb.Len())
	}
	if rb.Slice() != nil {
		t.Error("expected nil slice after reset")
	}
}

func TestRingBuffer_Resize(t *testing.T) {
	t.Run("grow preserves samples", func(t *testing.T) {
		rb := NewRingBuffer(3)
		rb.Push(1)
		rb.Push(2)
		rb.Push(3)
		rb.Resize(5)

		if rb.Cap() != 5 {
			t.Errorf("cap = %d, want 5", rb.Cap())
		}
		if got := rb.Slice(); len(got) != 3 || got[0] != 1 || got[2] != 3 {
			t.Errorf("slice = %v, want [1 2 3]", got)
		}
	})

	t.Run("shrink keeps most recent", func(t *testing.T) {
		rb := NewRingBuffer(5)
		for v := 1.0; v <= 5; v++ {
			rb.Push(v)
		}
		rb.Resize(3)

		if got := rb.Slice(); len(got) != 3 || got[0] != 3 || got[2] != 5 {
			t.Errorf("slice = %v, want [3 4 5]", got)
		}
	})
}

func TestRingBuffer_ZeroCapacity(t *testing.T) {
	rb := NewRingBuffer(0)
	if rb.Cap() != 1 {
		t.Errorf("expected min cap 1, got %d", rb.Cap())
	}
	rb.Push(42)
	if rb.Last() != 42 {
		t.Errorf("expected 42, got %f", rb.Last())
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline(nil); got != "" {
		t.Errorf("expected empty, got %q", got)
	}

	runes := []rune(RenderSparkline([]float64{-10, 0, 50, 100, 150}))
	if runes[0] != '▁' || runes[1] != '▁' {
		t.Error("low values not rendered as minimum block")
	}
	if runes[2] != '▄' {
		t.Errorf("expected '▄' for 50%%, got %c", runes[2])
	}
	if runes[3] != '█' || runes[4] != '█' {
		t.Error("high values not rendered as maximum block")
	}
}

func TestErrorToScale(t *testing.T) {
	tests := []struct {
		name        string
		rel         float64
		floorDigits uint
		want        float64
	}{
		{"error of one", 1.0, 10, 100},
		{"diverged", 42.0, 10, 100},
		{"converged past floor", 1e-12, 10, 0},
		{"exact", 0, 10, 0},
		{"NaN", math.NaN(), 10, 0},
		{"halfway", 1e-5, 10, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ErrorToScale(tt.rel, tt.floorDigits)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ErrorToScale(%g, %d) = %f, want %f", tt.rel, tt.floorDigits, got, tt.want)
			}
		})
	}
}

func TestErrorToScale_Monotone(t *testing.T) {
	prev := 101.0
	for _, rel := range []float64{1, 1e-1, 1e-3, 1e-6, 1e-9} {
		got := ErrorToScale(rel, 10)
		if got >= prev {
			t.Errorf("scale not decreasing: ErrorToScale(%g) = %f, previous %f", rel, got, prev)
		}
		prev = got
	}
}
