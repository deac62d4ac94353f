package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/seiqr/internal/controller"
	"github.com/san-kum/seiqr/internal/dynamo"
	"github.com/san-kum/seiqr/internal/epidemic"
)

const (
	DefaultIntegrator = "euler"
	DefaultAddr       = "localhost:5006"
)

type Config struct {
	Horizon    float64      `yaml:"t_max"`
	Dt         float64      `yaml:"dt"`
	Population float64      `yaml:"population"`
	Integrator string       `yaml:"integrator"`
	Inputs     InputsConfig `yaml:"inputs"`
	HeaderFile string       `yaml:"header_file,omitempty"`
	Server     ServerConfig `yaml:"server"`
}

// InputsConfig mirrors the controller sliders; durations are in days.
type InputsConfig struct {
	Incubation float64 `yaml:"incubation"`
	Beta       float64 `yaml:"beta"`
	Quarantine float64 `yaml:"quarantine"`
	Recovery   float64 `yaml:"recovery"`
	RecoveryQ  float64 `yaml:"recovery_q"`
	Phi        float64 `yaml:"phi"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func DefaultConfig() *Config {
	in := controller.DefaultInputs()
	return &Config{
		Horizon:    epidemic.DefaultHorizon,
		Dt:         epidemic.DefaultDt,
		Population: epidemic.DefaultPopulation,
		Integrator: DefaultIntegrator,
		Inputs: InputsConfig{
			Incubation: in[controller.Incubation],
			Beta:       in[controller.Beta],
			Quarantine: in[controller.Quarantine],
			Recovery:   in[controller.Recovery],
			RecoveryQ:  in[controller.RecoveryQ],
			Phi:        in[controller.Phi],
		},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) GetInputs() controller.Inputs {
	return controller.Inputs{
		controller.Incubation: c.Inputs.Incubation,
		controller.Beta:       c.Inputs.Beta,
		controller.Quarantine: c.Inputs.Quarantine,
		controller.Recovery:   c.Inputs.Recovery,
		controller.RecoveryQ:  c.Inputs.RecoveryQ,
		controller.Phi:        c.Inputs.Phi,
	}
}

func (c *Config) SetInput(name string, value float64) {
	switch name {
	case controller.Incubation:
		c.Inputs.Incubation = value
	case controller.Beta:
		c.Inputs.Beta = value
	case controller.Quarantine:
		c.Inputs.Quarantine = value
	case controller.Recovery:
		c.Inputs.Recovery = value
	case controller.RecoveryQ:
		c.Inputs.RecoveryQ = value
	case controller.Phi:
		c.Inputs.Phi = value
	}
}

func (c *Config) Grid() (dynamo.TimeGrid, error) {
	return dynamo.NewTimeGrid(c.Horizon, c.Dt)
}

func (c *Config) InitialState() dynamo.State {
	return epidemic.InitialState(c.Population)
}

// Header reads the optional HTML header shown above the dashboard.
func (c *Config) Header() (string, error) {
	if c.HeaderFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.HeaderFile)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
