package main

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/dmitrymomot/tenantgate/pkg/account"
	"github.com/dmitrymomot/tenantgate/pkg/clientip"
	"github.com/dmitrymomot/tenantgate/pkg/config"
	"github.com/dmitrymomot/tenantgate/pkg/environment"
	"github.com/dmitrymomot/tenantgate/pkg/httpserver"
	"github.com/dmitrymomot/tenantgate/pkg/logger"
	"github.com/dmitrymomot/tenantgate/pkg/requestid"
	"github.com/dmitrymomot/tenantgate/pkg/routing"
	"github.com/dmitrymomot/tenantgate/pkg/session"
	"github.com/dmitrymomot/tenantgate/pkg/tenant"
)

//go:embed seed.yaml
var defaultSeed []byte

var (
	errInvalidEnvironment = errors.New("APP_ENV must be development, staging or production")
	errMigrateWithoutDB   = errors.New("--migrate-only needs PG_CONN_URL")
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("tenantgate stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("tenantgate", pflag.ContinueOnError)
	seedFile := flags.String("seed", "", "YAML file with tenants and users to seed (defaults to the built-in data set)")
	migrateOnly := flags.Bool("migrate-only", false, "apply database migrations and exit")
	addr := flags.String("addr", "", "listen address, overrides HTTP_ADDR")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := config.LoadDotenv(); err != nil {
		return err
	}
	cfg, err := config.Load[appConfig]()
	if err != nil {
		return err
	}
	if *seedFile != "" {
		cfg.SeedFile = *seedFile
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}

	var env environment.Environment
	if cfg.Env != "" {
		var ok bool
		if env, ok = environment.Parse(cfg.Env); !ok {
			return fmt.Errorf("%w: got %q", errInvalidEnvironment, cfg.Env)
		}
	}

	logOpts, err := cfg.Log.Options()
	if err != nil {
		return err
	}
	log := logger.New(append([]logger.Option{
		logger.WithEnvironment(env, cfg.ServiceName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			environment.LoggerExtractor(),
			routing.LoggerExtractor(),
			tenant.LoggerExtractor(),
			session.LoggerExtractor(),
		),
	}, logOpts...)...)
	logger.SetAsDefault(log)

	ctx := context.Background()

	if *migrateOnly {
		if !cfg.Postgres.Enabled() {
			return errMigrateWithoutDB
		}
		st, err := openStores(ctx, cfg, log)
		if err != nil {
			return err
		}
		st.close()
		log.InfoContext(ctx, "migrations applied")
		return nil
	}

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	a, err := newApp(cfg, env, st, log)
	if err != nil {
		return err
	}
	defer a.close()

	data := defaultSeed
	if cfg.SeedFile != "" {
		if data, err = os.ReadFile(cfg.SeedFile); err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
	}
	if err := seed(ctx, data, a.tenants, a.users, log); err != nil {
		return err
	}

	server := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return server.Run(ctx, a.handler)
}

// seed applies the tenants of data first so user entries can reference them.
func seed(ctx context.Context, data []byte, tenants tenant.Repository, users account.Repository, log *slog.Logger) error {
	nt, err := tenant.Seed(ctx, tenants, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("seed tenants: %w", err)
	}
	nu, err := account.Seed(ctx, users, tenants, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	log.InfoContext(ctx, "seed applied", slog.Int("tenants", nt), slog.Int("users", nu))
	return nil
}
