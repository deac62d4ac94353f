package epidemic

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownParam    = errors.New("epidemic: unknown parameter")
	ErrMissingParam    = errors.New("epidemic: missing parameter")
	ErrParameterBounds = errors.New("epidemic: parameter out of valid bounds")
)

// Parameter names used by Params.Map, Params.Set and ParamsFromMap.
const (
	ParamAlpha   = "alpha"
	ParamBeta    = "beta"
	ParamGamma   = "gamma"
	ParamLambdaI = "lambda_i"
	ParamLambdaQ = "lambda_q"
	ParamPhi     = "phi"
	ParamRho     = "rho"
)

var ParamNames = []string{ParamAlpha, ParamBeta, ParamGamma, ParamLambdaI, ParamLambdaQ, ParamPhi, ParamRho}

const (
	DefaultHorizon    = 150.0
	DefaultDt         = 0.1
	DefaultPopulation = 10000.0
)

// Params are the model rates. Rates are inverse mean durations in days⁻¹.
type Params struct {
	Alpha   float64 // incubation rate, E -> I
	Beta    float64 // transmission factor
	Gamma   float64 // progression rate, I -> Q
	LambdaI float64 // recovery rate from infection, I -> R
	LambdaQ float64 // recovery rate from quarantine, Q -> R
	Phi     float64 // quarantined fraction of infectives
	Rho     float64 // contact reduction multiplier
}

func DefaultParams() Params {
	return Params{
		Alpha:   1.0 / 3,
		Beta:    1.8,
		Gamma:   1.0 / 2,
		LambdaI: 1.0 / 4,
		LambdaQ: 1.0 / 2,
		Phi:     0,
		Rho:     1,
	}
}

// Validate checks the documented ranges. Integration never calls it.
func (p Params) Validate() error {
	rates := []struct {
		name  string
		value float64
	}{
		{ParamAlpha, p.Alpha},
		{ParamGamma, p.Gamma},
		{ParamLambdaI, p.LambdaI},
		{ParamLambdaQ, p.LambdaQ},
	}
	for _, r := range rates {
		if !(r.value > 0) || math.IsInf(r.value, 0) {
			return fmt.Errorf("%s=%g must be positive: %w", r.name, r.value, ErrParameterBounds)
		}
	}
	if !(p.Beta >= 0) || math.IsInf(p.Beta, 0) {
		return fmt.Errorf("%s=%g must be non-negative: %w", ParamBeta, p.Beta, ErrParameterBounds)
	}
	if !(p.Phi >= 0 && p.Phi <= 1) {
		return fmt.Errorf("%s=%g must be in [0,1]: %w", ParamPhi, p.Phi, ErrParameterBounds)
	}
	if !(p.Rho > 0 && p.Rho <= 1) {
		return fmt.Errorf("%s=%g must be in (0,1]: %w", ParamRho, p.Rho, ErrParameterBounds)
	}
	return nil
}

func (p Params) Map() map[string]float64 {
	return map[string]float64{
		ParamAlpha:   p.Alpha,
		ParamBeta:    p.Beta,
		ParamGamma:   p.Gamma,
		ParamLambdaI: p.LambdaI,
		ParamLambdaQ: p.LambdaQ,
		ParamPhi:     p.Phi,
		ParamRho:     p.Rho,
	}
}

// Set assigns one rate by name.
func (p *Params) Set(name string, v float64) error {
	switch name {
	case ParamAlpha:
		p.Alpha = v
	case ParamBeta:
		p.Beta = v
	case ParamGamma:
		p.Gamma = v
	case ParamLambdaI:
		p.LambdaI = v
	case ParamLambdaQ:
		p.LambdaQ = v
	case ParamPhi:
		p.Phi = v
	case ParamRho:
		p.Rho = v
	default:
		return fmt.Errorf("%q: %w", name, ErrUnknownParam)
	}
	return nil
}

// ParamsFromMap assembles a full parameter set. Every name in ParamNames
// must be present and no other name may appear. Values are not range checked.
func ParamsFromMap(m map[string]float64) (Params, error) {
	var p Params
	for _, name := range ParamNames {
		v, ok := m[name]
		if !ok {
			return Params{}, fmt.Errorf("%q: %w", name, ErrMissingParam)
		}
		_ = p.Set(name, v)
	}
	if len(m) != len(ParamNames) {
		for name := range m {
			if err := (&Params{}).Set(name, 0); err != nil {
				return Params{}, err
			}
		}
	}
	return p, nil
}

func (p Params) String() string {
	return fmt.Sprintf("alpha=%.4g beta=%.4g gamma=%.4g lambda_i=%.4g lambda_q=%.4g phi=%.4g rho=%.4g",
		p.Alpha, p.Beta, p.Gamma, p.LambdaI, p.LambdaQ, p.Phi, p.Rho)
}
