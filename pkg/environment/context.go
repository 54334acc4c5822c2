package environment

import "context"

// Environment represents application environment.
type Environment string

const (
	// Development for development environment.
	Development Environment = "development"
	// Production for production environment.
	Production Environment = "production"
	// Staging for staging environment.
	Staging Environment = "staging"
)

// Parse maps a configured value, including the short aliases dev, stage and
// prod, to an Environment. The empty string and unknown values return "" and false.
func Parse(s string) (Environment, bool) {
	switch s {
	case "development", "dev":
		return Development, true
	case "staging", "stage":
		return Staging, true
	case "production", "prod":
		return Production, true
	default:
		return "", false
	}
}

// IsDevelopment reports whether e uses development routing and cookie rules.
func (e Environment) IsDevelopment() bool {
	return e == Development
}

type contextKey struct{}

// WithContext adds environment to context
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves environment from context
func FromContext(ctx context.Context) Environment {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(Environment)
	return env
}

// IsProduction checks if the environment from context is production
func IsProduction(ctx context.Context) bool {
	return FromContext(ctx) == Production
}

// IsDevelopment checks if the environment from context is development
func IsDevelopment(ctx context.Context) bool {
	return FromContext(ctx) == Development
}

// IsStaging checks if the environment from context is staging
func IsStaging(ctx context.Context) bool {
	return FromContext(ctx) == Staging
}
