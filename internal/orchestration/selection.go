package orchestration

import (
	"math/big"

	"github.com/rputra/rootcalc/internal/config"
	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/sqrt"
)

// EnginesToRun determines which engines a run executes based on the method
// selection. "both" returns every registered engine in sorted key order for
// reproducible comparison runs.
//
// Parameters:
//   - method: The selected method key, or "both".
//   - factory: The engine factory to retrieve implementations from.
//
// Returns:
//   - []sqrt.Engine: The engines to execute; nil for an unknown method.
func EnginesToRun(method string, factory sqrt.EngineFactory) []sqrt.Engine {
	if method == config.MethodBoth {
		return factory.GetAll()
	}
	if engine, err := factory.Get(method); err == nil {
		return []sqrt.Engine{engine}
	}
	return nil
}

// Seeds derives the engine-space initial guesses for the given engines.
//
// In auto mode the Heron engine seeds with the power-of-two bracket of
// sqrt(a) and the reciprocal engine with its inverse (zero for a zero
// radicand, whose reciprocal iteration correctly fixes at zero). In manual
// mode the given decimal value is used directly in engine space, so under
// the reciprocal engine it is an estimate of 1/sqrt(a), and zero is
// rejected because the iteration could never leave it.
//
// Parameters:
//   - engines: The engines the seeds are for.
//   - a: The radicand at the working precision.
//   - initMode: "auto" or "manual".
//   - initValue: The manual decimal seed; ignored in auto mode.
//
// Returns:
//   - []*big.Float: The seeds, parallel to engines.
//   - error: A ParseError, DomainError or ValidationError.
func Seeds(engines []sqrt.Engine, a *big.Float, initMode, initValue string) ([]*big.Float, error) {
	seeds := make([]*big.Float, len(engines))
	for i, engine := range engines {
		seed, err := seedFor(engine.Key(), a, initMode, initValue)
		if err != nil {
			return nil, err
		}
		seeds[i] = seed
	}
	return seeds, nil
}

func seedFor(engineKey string, a *big.Float, initMode, initValue string) (*big.Float, error) {
	if initMode == config.InitModeManual {
		seed, err := sqrt.ParseDecimal(initValue, a.Prec())
		if err != nil {
			return nil, err
		}
		if engineKey == sqrt.MethodRecip && seed.Sign() == 0 {
			return nil, apperrors.ValidationError{
				Field:   "init-value",
				Message: "a zero guess is a fixed point of the reciprocal iteration",
			}
		}
		return seed, nil
	}

	x0, err := sqrt.AutoInitialGuess(a)
	if err != nil {
		return nil, err
	}
	if engineKey != sqrt.MethodRecip {
		return x0, nil
	}
	if x0.Sign() == 0 {
		return x0, nil
	}
	one := new(big.Float).SetPrec(a.Prec()).SetInt64(1)
	return new(big.Float).SetPrec(a.Prec()).Quo(one, x0), nil
}
