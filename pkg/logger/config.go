package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrInvalidConfig is returned by Config.Options for an unknown level or format.
var ErrInvalidConfig = errors.New("logger.invalid_config")

// Config overrides the environment preset. Empty fields keep it.
type Config struct {
	Level  string `env:"LOG_LEVEL"`
	Format string `env:"LOG_FORMAT"`
}

// Options converts the configured overrides into options for New.
// Place them after WithEnvironment.
func (c Config) Options() ([]Option, error) {
	var opts []Option
	if c.Level != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(c.Level)); err != nil {
			return nil, fmt.Errorf("%w: level %q", ErrInvalidConfig, c.Level)
		}
		opts = append(opts, WithLevel(l))
	}
	if c.Format != "" {
		f := Format(strings.ToLower(c.Format))
		if f != FormatJSON && f != FormatText {
			return nil, fmt.Errorf("%w: format %q", ErrInvalidConfig, c.Format)
		}
		opts = append(opts, WithFormat(f))
	}
	return opts, nil
}
