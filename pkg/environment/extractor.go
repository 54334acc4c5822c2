package environment

import (
	"context"
	"log/slog"
)

// LoggerExtractor adds the per-request environment as "env". It yields
// nothing before the middleware has run, so the static env attribute set at
// startup is not duplicated on background records.
func LoggerExtractor() func(context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		env := FromContext(ctx)
		return slog.String("env", string(env)), env != ""
	}
}
