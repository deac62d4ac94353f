package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/integrators"
	"github.com/san-kum/seiqr/internal/metrics"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DiagnosticMetrics are attached only when a run asks for diagnostics.
func (r *Registry) DiagnosticMetrics() []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewConservation(1),
		metrics.NewBounds(),
	}
}
