package orchestration

import (
	"errors"
	"math/big"
	"testing"

	"github.com/rputra/rootcalc/internal/config"
	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/sqrt"
)

func TestEnginesToRun(t *testing.T) {
	t.Parallel()
	factory := sqrt.NewDefaultFactory()

	t.Run("single method", func(t *testing.T) {
		t.Parallel()
		engines := EnginesToRun(sqrt.MethodHeron, factory)
		if len(engines) != 1 || engines[0].Key() != sqrt.MethodHeron {
			t.Errorf("got %v, want the single heron engine", engines)
		}
	})

	t.Run("both methods sorted", func(t *testing.T) {
		t.Parallel()
		engines := EnginesToRun(config.MethodBoth, factory)
		if len(engines) != 2 {
			t.Fatalf("got %d engines, want 2", len(engines))
		}
		if engines[0].Key() != sqrt.MethodHeron || engines[1].Key() != sqrt.MethodRecip {
			t.Errorf("engines out of order: %s, %s", engines[0].Key(), engines[1].Key())
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		t.Parallel()
		if engines := EnginesToRun("bisect", factory); engines != nil {
			t.Errorf("got %v, want nil", engines)
		}
	})
}

func TestSeeds_Auto(t *testing.T) {
	t.Parallel()
	factory := sqrt.NewDefaultFactory()
	engines := factory.GetAll()
	a := new(big.Float).SetPrec(100).SetInt64(9)

	seeds, err := Seeds(engines, a, config.InitModeAuto, "")
	if err != nil {
		t.Fatalf("Seeds returned error: %v", err)
	}
	if len(seeds) != 2 {
		t.Fatalf("got %d seeds, want 2", len(seeds))
	}

	// Heron seeds with the power-of-two bracket 4, reciprocal with 1/4.
	if seeds[0].Cmp(big.NewFloat(4)) != 0 {
		t.Errorf("heron seed = %v, want 4", seeds[0])
	}
	if seeds[1].Cmp(big.NewFloat(0.25)) != 0 {
		t.Errorf("reciprocal seed = %v, want 0.25", seeds[1])
	}
}

func TestSeeds_AutoZeroRadicand(t *testing.T) {
	t.Parallel()
	factory := sqrt.NewDefaultFactory()
	engines := factory.GetAll()
	a := new(big.Float).SetPrec(100)

	seeds, err := Seeds(engines, a, config.InitModeAuto, "")
	if err != nil {
		t.Fatalf("Seeds returned error: %v", err)
	}
	for i, seed := range seeds {
		if seed.Sign() != 0 {
			t.Errorf("seed[%d] = %v, want 0 for a zero radicand", i, seed)
		}
	}
}

func TestSeeds_Manual(t *testing.T) {
	t.Parallel()
	factory := sqrt.NewDefaultFactory()
	a := new(big.Float).SetPrec(100).SetInt64(2)

	heron, _ := factory.Get(sqrt.MethodHeron)
	seeds, err := Seeds([]sqrt.Engine{heron}, a, config.InitModeManual, "1.5")
	if err != nil {
		t.Fatalf("Seeds returned error: %v", err)
	}
	if seeds[0].Cmp(big.NewFloat(1.5)) != 0 {
		t.Errorf("manual seed = %v, want 1.5", seeds[0])
	}
}

func TestSeeds_ManualErrors(t *testing.T) {
	t.Parallel()
	factory := sqrt.NewDefaultFactory()
	a := new(big.Float).SetPrec(100).SetInt64(2)
	recip, _ := factory.Get(sqrt.MethodRecip)

	t.Run("malformed value", func(t *testing.T) {
		t.Parallel()
		_, err := Seeds([]sqrt.Engine{recip}, a, config.InitModeManual, "abc")
		if !apperrors.IsParseError(err) {
			t.Errorf("expected ParseError, got %v", err)
		}
	})

	t.Run("zero guess under reciprocal", func(t *testing.T) {
		t.Parallel()
		_, err := Seeds([]sqrt.Engine{recip}, a, config.InitModeManual, "0")
		var valErr apperrors.ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("expected ValidationError, got %v", err)
		}
	})
}

func TestSeeds_NegativeRadicand(t *testing.T) {
	t.Parallel()
	factory := sqrt.NewDefaultFactory()
	engines := factory.GetAll()
	a := new(big.Float).SetPrec(100).SetInt64(-4)

	_, err := Seeds(engines, a, config.InitModeAuto, "")
	if !apperrors.IsDomainError(err) {
		t.Errorf("expected DomainError, got %v", err)
	}
}
