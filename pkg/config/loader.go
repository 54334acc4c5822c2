package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenv reads the given .env files (".env" when none are given) into the
// process environment once per process. Variables that are already set win.
// Missing files are ignored; a malformed file is reported.
func LoadDotenv(files ...string) error {
	var err error
	dotenvOnce.Do(func() {
		if len(files) == 0 {
			files = []string{".env"}
		}
		existing := make([]string, 0, len(files))
		for _, f := range files {
			if _, statErr := os.Stat(f); statErr == nil {
				existing = append(existing, f)
			}
		}
		if len(existing) == 0 {
			return
		}
		if loadErr := godotenv.Load(existing...); loadErr != nil {
			err = errors.Join(ErrLoadingDotenv, loadErr)
		}
	})
	return err
}

// Load parses environment variables into a new T according to its env tags.
//
// Example:
//
//	type RoutingConfig struct {
//		Environment string   `env:"APP_ENV"`
//		Aliases     []string `env:"ROUTING_ALIAS_PREFIXES" envSeparator:"," envDefault:"direct-access-"`
//	}
//
//	cfg, err := config.Load[RoutingConfig]()
func Load[T any]() (T, error) {
	cfg, err := env.ParseAs[T]()
	if err != nil {
		var zero T
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// Into parses environment variables into an existing struct, keeping values
// already set where no variable or default applies.
func Into[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// This is useful for configurations that are required for the application to start.
func MustLoad[T any]() T {
	cfg, err := Load[T]()
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
