package dynamo

type Simulator struct {
	dyn        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(dyn System, integrator Integrator) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances x0 across every point of grid and returns a fresh trajectory
// with grid.Len() states. The step size is grid.Dt(). Each step derives the
// next state from the previous one only; values are never validated or
// corrected, so unstable step sizes propagate as computed.
func (s *Simulator) Run(x0 State, grid TimeGrid) (*Trajectory, error) {
	if grid.Len() < 2 {
		return nil, ErrShortGrid
	}
	if len(x0) != s.dyn.StateDim() {
		return nil, &SimulationError{Step: 0, Time: grid.At(0), Wrapped: ErrDimensionMismatch}
	}

	n := grid.Len()
	result := &Trajectory{
		Times:   grid.Points(),
		States:  make([]State, 0, n),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	dt := grid.Dt()

	result.States = append(result.States, x)
	s.observe(x, result.Times[0])

	for i := 1; i < n; i++ {
		t := result.Times[i-1]
		newX := s.integrator.Step(s.dyn, x, t, dt)
		if len(newX) != len(x) {
			return nil, &SimulationError{Step: i, Time: t, Wrapped: ErrDimensionMismatch}
		}

		x = newX
		result.StepsTaken++
		result.States = append(result.States, x)
		s.observe(x, result.Times[i])
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) observe(x State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
}
