package epidemic

import "github.com/san-kum/seiqr/internal/dynamo"

// Compartment indices within a state vector.
const (
	S = iota
	E
	I
	Q
	R

	NumCompartments
)

var CompartmentNames = [NumCompartments]string{"S", "E", "I", "Q", "R"}

var CompartmentLabels = [NumCompartments]string{"Susceptible", "Exposed", "Infective", "Quarantined", "Recovered"}

type SEIQR struct {
	params Params
}

func NewSEIQR(p Params) *SEIQR {
	return &SEIQR{params: p}
}

func (m *SEIQR) StateDim() int { return NumCompartments }

func (m *SEIQR) Params() Params { return m.params }

// Derive returns the flows between compartments. Every product is rounded
// on its own so results do not depend on FMA availability.
func (m *SEIQR) Derive(x dynamo.State, _ float64) dynamo.State {
	p := m.params

	infection := float64(p.Rho * p.Beta * x[S] * x[I])
	incubation := float64(p.Alpha * x[E])
	quarantine := float64(p.Phi * p.Gamma * x[I])
	recoveryI := float64(p.LambdaI * (1 - p.Phi) * x[I])
	recoveryQ := float64(p.LambdaQ * x[Q])

	return dynamo.State{
		-infection,
		infection - incubation,
		incubation - (quarantine + recoveryI),
		quarantine - recoveryQ,
		recoveryQ + recoveryI,
	}
}
