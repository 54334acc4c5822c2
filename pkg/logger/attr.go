package logger

import "log/slog"

// Error records err under "error". A nil err yields an empty Attr, which
// slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records a principal id under "user_id". Nil yields an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// Role records a principal role under "role". Nil yields an empty Attr.
func Role(role any) slog.Attr {
	if role == nil {
		return slog.Attr{}
	}
	return slog.Any("role", role)
}

// TenantID records a tenant id under "tenant_id". Empty yields an empty Attr.
func TenantID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("tenant_id", id)
}

// Tenant records a canonical subdomain under "tenant".
func Tenant(subdomain string) slog.Attr { return slog.String("tenant", subdomain) }

// Scope records a session scope key under "scope".
func Scope(key string) slog.Attr { return slog.String("scope", key) }

// Host records the request host under "host".
func Host(host string) slog.Attr { return slog.String("host", host) }

// Path records a request path under "path".
func Path(path string) slog.Attr { return slog.String("path", path) }

// Decision records a routing outcome under "decision".
func Decision(kind string) slog.Attr { return slog.String("decision", kind) }

// Component records the emitting package under "component".
func Component(name string) slog.Attr { return slog.String("component", name) }

// Event records a named lifecycle event under "event".
func Event(name string) slog.Attr { return slog.String("event", name) }
