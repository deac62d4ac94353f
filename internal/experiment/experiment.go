package experiment

import (
	"fmt"

	"github.com/san-kum/seiqr/internal/config"
	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/epidemic"
)

type Experiment struct {
	cfg       *config.Config
	simulator *dynamo.Simulator
	params    epidemic.Params
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup validates the inputs and builds the simulator. Diagnostics attach the
// registry's metrics; they only observe the run.
func (e *Experiment) Setup(r *Registry, diagnostics bool) error {
	inputs := e.cfg.GetInputs()
	if err := inputs.Validate(); err != nil {
		return err
	}

	integ, err := r.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}

	e.params = inputs.Params()
	e.simulator = dynamo.New(epidemic.NewSEIQR(e.params), integ)
	if diagnostics {
		for _, m := range r.DiagnosticMetrics() {
			e.simulator.AddMetric(m)
		}
	}
	return nil
}

func (e *Experiment) Params() epidemic.Params { return e.params }

func (e *Experiment) Run() (*dynamo.Trajectory, epidemic.Peak, error) {
	if e.simulator == nil {
		return nil, epidemic.Peak{}, fmt.Errorf("experiment not setup")
	}

	grid, err := e.cfg.Grid()
	if err != nil {
		return nil, epidemic.Peak{}, err
	}

	traj, err := e.simulator.Run(e.cfg.InitialState(), grid)
	if err != nil {
		return nil, epidemic.Peak{}, err
	}

	peak, err := epidemic.Summarize(traj)
	if err != nil {
		return nil, epidemic.Peak{}, err
	}
	return traj, peak, nil
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *dynamo.Simulator {
	return e.simulator
}
