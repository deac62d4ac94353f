package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by the CLI.
const (
	EnvConfig = "SEIQR_CONFIG"
	EnvAddr   = "SEIQR_ADDR"
)

// LoadEnv loads variables from the given .env files without overriding the
// process environment. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// FromEnv loads the file named by SEIQR_CONFIG, or the defaults, and applies
// SEIQR_ADDR on top.
func FromEnv() (*Config, error) {
	cfg := DefaultConfig()
	if path := os.Getenv(EnvConfig); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if addr := os.Getenv(EnvAddr); addr != "" {
		cfg.Server.Addr = addr
	}
	return cfg, nil
}
