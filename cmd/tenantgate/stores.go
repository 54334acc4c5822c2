package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/tenantgate/db"
	"github.com/dmitrymomot/tenantgate/pkg/httpserver"
	"github.com/dmitrymomot/tenantgate/pkg/logger"
	"github.com/dmitrymomot/tenantgate/pkg/pg"
	"github.com/dmitrymomot/tenantgate/pkg/redis"
	"github.com/dmitrymomot/tenantgate/pkg/session"
	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

var errUnknownSessionStore = errors.New("SESSION_STORE must be memory or redis")

// stores holds the backends selected by configuration.
type stores struct {
	tenants  tenant.Repository
	sessions session.Store
	checks   []httpserver.Check
	closers  []func()

	// sharedTenants is set when other processes write the same tenants.
	sharedTenants bool
}

// openStores connects to postgres and redis when configured and falls back
// to in-memory backends otherwise. Migrations run on every connect.
func openStores(ctx context.Context, cfg appConfig, log *slog.Logger) (*stores, error) {
	st := &stores{}

	if cfg.Postgres.Enabled() {
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		st.closers = append(st.closers, pool.Close)
		if err := pg.Migrate(ctx, pool, db.Migrations, db.MigrationsDir, cfg.Postgres, log); err != nil {
			st.close()
			return nil, err
		}
		st.tenants = tenant.NewPostgresDirectory(pool)
		st.sharedTenants = true
		st.checks = append(st.checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})
		log.InfoContext(ctx, "tenant directory", logger.Component("postgres"))
	} else {
		st.tenants = tenant.NewMemoryDirectory()
		log.InfoContext(ctx, "tenant directory", logger.Component("memory"))
	}

	switch cfg.Session.Store {
	case "redis":
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			st.close()
			return nil, err
		}
		st.closers = append(st.closers, func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close redis client", logger.Error(err))
			}
		})
		st.sessions = session.NewRedisStore(client, cfg.Session.RedisPrefix)
		st.checks = append(st.checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(client)})
	case "", "memory":
		mem := session.NewMemoryStore(cfg.Session.CleanupInterval)
		st.closers = append(st.closers, func() { _ = mem.Close() })
		st.sessions = mem
	default:
		st.close()
		return nil, fmt.Errorf("%w: got %q", errUnknownSessionStore, cfg.Session.Store)
	}
	log.InfoContext(ctx, "session store", logger.Component(cfg.Session.Store))

	return st, nil
}

// close releases backends in reverse order of opening.
func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
