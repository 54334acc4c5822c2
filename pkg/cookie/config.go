package cookie

import "strings"

// Config holds cookie manager configuration.
type Config struct {
	// Secrets is a comma separated list. The first one signs new cookies.
	Secrets string `env:"COOKIE_SECRETS,required"`
	Domain  string `env:"COOKIE_DOMAIN" envDefault:""`
	Secure  bool   `env:"COOKIE_SECURE" envDefault:"false"`
}

func (c Config) secrets() []string {
	var out []string
	for s := range strings.SplitSeq(c.Secrets, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NewFromConfig creates a Manager from loaded configuration.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	base := []Option{WithSecure(cfg.Secure)}
	if cfg.Domain != "" {
		base = append(base, WithDomain(cfg.Domain))
	}
	return New(cfg.secrets(), append(base, opts...)...)
}
