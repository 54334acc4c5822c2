package main

import (
	"time"

	"github.com/dmitrymomot/tenantgate/pkg/cookie"
	"github.com/dmitrymomot/tenantgate/pkg/httpserver"
	"github.com/dmitrymomot/tenantgate/pkg/logger"
	"github.com/dmitrymomot/tenantgate/pkg/pg"
	"github.com/dmitrymomot/tenantgate/pkg/ratelimiter"
	"github.com/dmitrymomot/tenantgate/pkg/redis"
	"github.com/dmitrymomot/tenantgate/pkg/routing"
	"github.com/dmitrymomot/tenantgate/pkg/session"
	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

type appConfig struct {
	// Env is development, staging or production. Empty means the
	// environment is detected per request from the Host header.
	Env         string `env:"APP_ENV"`
	ServiceName string `env:"APP_NAME" envDefault:"tenantgate"`
	// SeedFile replaces the built-in data set.
	SeedFile string `env:"APP_SEED_FILE"`
	// DebugRoutes exposes /api/debug.
	DebugRoutes      bool          `env:"APP_DEBUG_ROUTES" envDefault:"true"`
	ReadinessTimeout time.Duration `env:"HTTP_READINESS_TIMEOUT" envDefault:"2s"`
	PasswordCost     int           `env:"ACCOUNT_BCRYPT_COST" envDefault:"10"`

	Log      logger.Config
	HTTP     httpserver.Config
	Cookie   cookie.Config
	Session  session.Config
	Routing  routing.Config
	Postgres pg.Config
	Redis    redis.Config
	Cache    tenant.CacheConfig
	Login    ratelimiter.Config
}
