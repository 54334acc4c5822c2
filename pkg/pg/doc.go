// Package pg opens pgx connection pools, applies goose migrations from an
// embedded filesystem and classifies driver errors.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, db.Migrations, db.MigrationsDir, cfg, log); err != nil {
//		return err
//	}
//
// Healthcheck returns a probe suitable for a readiness endpoint.
package pg
