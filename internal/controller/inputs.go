package controller

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/seiqr/internal/epidemic"
)

var (
	ErrUnknownInput = errors.New("controller: unknown input")
	ErrOutOfRange   = errors.New("controller: input out of range")
)

// Slider names.
const (
	Incubation = "incubation"
	Beta       = "beta"
	Quarantine = "quarantine"
	Recovery   = "recovery"
	RecoveryQ  = "recovery_q"
	Phi        = "phi"
)

// Slider is a user-adjustable input. Inverse sliders hold a mean duration in
// days and feed the model its reciprocal rate.
type Slider struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Param   string  `json:"param"`
	Default float64 `json:"default"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Inverse bool    `json:"inverse"`
}

func (s Slider) Rate(v float64) float64 {
	if s.Inverse {
		return 1 / v
	}
	return v
}

func (s Slider) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// Clamp limits v to the slider range.
func (s Slider) Clamp(v float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Sliders lists every input in display order. The contact reduction rho is
// not an input; it is pinned to 1.
var Sliders = []Slider{
	{Name: Incubation, Label: "Mean Incubation Days (1/α)", Param: epidemic.ParamAlpha, Default: 3, Min: 1, Max: 10, Step: 1, Inverse: true},
	{Name: Beta, Label: "Interaction Factor (β)", Param: epidemic.ParamBeta, Default: 1.8, Min: 0.1, Max: 10, Step: 0.1},
	{Name: Quarantine, Label: "Mean Days before Quarantine (1/γ)", Param: epidemic.ParamGamma, Default: 2, Min: 1, Max: 10, Step: 1, Inverse: true},
	{Name: Recovery, Label: "Mean Days to Recover (1/λ)", Param: epidemic.ParamLambdaI, Default: 4, Min: 1, Max: 10, Step: 1, Inverse: true},
	{Name: RecoveryQ, Label: "Mean Days to Recover post-Quarantine (1/δ)", Param: epidemic.ParamLambdaQ, Default: 2, Min: 1, Max: 10, Step: 1, Inverse: true},
	{Name: Phi, Label: "Fraction of Infective Quarantined (φ)", Param: epidemic.ParamPhi, Default: 0, Min: 0, Max: 1, Step: 0.1},
}

// PinnedRho is the contact reduction used for every run.
const PinnedRho = 1.0

func SliderByName(name string) (Slider, bool) {
	for _, s := range Sliders {
		if s.Name == name {
			return s, true
		}
	}
	return Slider{}, false
}

// Inputs maps slider names to their current values.
type Inputs map[string]float64

func DefaultInputs() Inputs {
	in := make(Inputs, len(Sliders))
	for _, s := range Sliders {
		in[s.Name] = s.Default
	}
	return in
}

func (in Inputs) Clone() Inputs {
	c := make(Inputs, len(in))
	for k, v := range in {
		c[k] = v
	}
	return c
}

// Validate rejects unknown names and values outside a slider's range, then
// checks the derived rates against epidemic.Params.Validate.
func (in Inputs) Validate() error {
	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s, ok := SliderByName(name)
		if !ok {
			return fmt.Errorf("%q: %w", name, ErrUnknownInput)
		}
		if v := in[name]; !s.Contains(v) {
			return fmt.Errorf("%s=%g not in [%g, %g]: %w", name, v, s.Min, s.Max, ErrOutOfRange)
		}
	}
	return in.Params().Validate()
}

// Params converts the inputs to model rates. Missing sliders take their
// default value and rho is always PinnedRho.
func (in Inputs) Params() epidemic.Params {
	var p epidemic.Params
	for _, s := range Sliders {
		v, ok := in[s.Name]
		if !ok {
			v = s.Default
		}
		// slider params are always known names
		_ = p.Set(s.Param, s.Rate(v))
	}
	p.Rho = PinnedRho
	return p
}
