package sqrt

import (
	"context"
	"math/big"
	"sort"

	apperrors "github.com/rputra/rootcalc/internal/errors"
	"github.com/rputra/rootcalc/internal/progress"
)

// Engine is a square-root iteration method. Implementations run a fixed
// number of steps and return both the final approximation and the complete
// iterate sequence for convergence analysis.
type Engine interface {
	// Name returns the human-readable name of the iteration method.
	Name() string

	// Key returns the stable identifier used for method selection
	// ("heron", "recip").
	Key() string

	// Compute runs the iteration for the given radicand.
	//
	// Parameters:
	//   - ctx: Context checked between iteration steps.
	//   - a: The non-negative radicand at the working precision.
	//   - x0: The initial guess. For the Heron engine this approximates
	//     sqrt(a); for the reciprocal engine it approximates 1/sqrt(a).
	//   - iterations: The number of steps to run (>= 0).
	//   - report: Progress callback, invoked once per completed step.
	//
	// Returns:
	//   - *big.Float: The square-root approximation after all steps.
	//   - []*big.Float: The iterate sequence of length iterations+1,
	//     index 0 holding x0. The reciprocal engine stores the reciprocal
	//     iterates y_k, not the derived roots.
	//   - error: A ComputationError wrapping ctx.Err() on cancellation.
	Compute(ctx context.Context, a, x0 *big.Float, iterations int, report progress.Callback) (*big.Float, []*big.Float, error)
}

// EngineFactory provides access to the registered iteration engines.
type EngineFactory interface {
	// Get returns the engine registered under the given key.
	Get(key string) (Engine, error)
	// List returns the sorted keys of all registered engines.
	List() []string
	// GetAll returns all registered engines in List() order.
	GetAll() []Engine
}

// defaultFactory is the standard EngineFactory backed by a registry map.
type defaultFactory struct {
	registry map[string]func() Engine
}

// NewDefaultFactory creates an EngineFactory with both iteration methods
// registered.
func NewDefaultFactory() EngineFactory {
	return &defaultFactory{
		registry: map[string]func() Engine{
			MethodHeron: func() Engine { return &HeronEngine{} },
			MethodRecip: func() Engine { return &ReciprocalEngine{} },
		},
	}
}

// Get returns the engine registered under key, or a ConfigError listing the
// available methods.
func (f *defaultFactory) Get(key string) (Engine, error) {
	ctor, ok := f.registry[key]
	if !ok {
		return nil, apperrors.NewConfigError("unknown method %q (available: %v)", key, f.List())
	}
	return ctor(), nil
}

// List returns the sorted engine keys for reproducible selection order.
func (f *defaultFactory) List() []string {
	keys := make([]string, 0, len(f.registry))
	for k := range f.registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetAll returns every registered engine in List() order.
func (f *defaultFactory) GetAll() []Engine {
	keys := f.List()
	engines := make([]Engine, 0, len(keys))
	for _, k := range keys {
		engines = append(engines, f.registry[k]())
	}
	return engines
}
