package tenant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/tenantgate/pkg/pg"
)

// Querier is the subset of pgxpool.Pool used by PostgresDirectory.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const tenantColumns = `id, subdomain, name, primary_color, secondary_color, logo_url, created_at, updated_at`

// PostgresDirectory is a Repository backed by the tenants table.
type PostgresDirectory struct {
	db  Querier
	now func() time.Time
}

// NewPostgresDirectory creates a repository on top of a pgx pool.
func NewPostgresDirectory(db Querier) *PostgresDirectory {
	return &PostgresDirectory{db: db, now: time.Now}
}

func (d *PostgresDirectory) FindBySubdomain(ctx context.Context, subdomain string) (*Tenant, error) {
	row := d.db.QueryRow(ctx,
		`SELECT `+tenantColumns+` FROM tenants WHERE subdomain = $1`,
		NormalizeSubdomain(subdomain),
	)
	return scanTenant(row)
}

func (d *PostgresDirectory) FindByID(ctx context.Context, id string) (*Tenant, error) {
	row := d.db.QueryRow(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
	return scanTenant(row)
}

func (d *PostgresDirectory) List(ctx context.Context) ([]Tenant, error) {
	rows, err := d.db.Query(ctx, `SELECT `+tenantColumns+` FROM tenants ORDER BY created_at, id`)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	defer rows.Close()

	var out []Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrUnavailable, err)
	}
	return out, nil
}

func (d *PostgresDirectory) Create(ctx context.Context, in CreateInput) (*Tenant, error) {
	id := in.ID
	if id == "" {
		id = uuid.NewString()
	}
	t, err := in.build(id, d.now().UTC())
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(ctx,
		`INSERT INTO tenants (`+tenantColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+tenantColumns,
		t.ID, t.Subdomain, t.Name, t.PrimaryColor, t.SecondaryColor, t.LogoURL, t.CreatedAt, t.UpdatedAt,
	)
	return scanTenant(row)
}

// Update locks the row and applies in inside one statement, so concurrent
// renames are serialized and before always names the replaced record.
func (d *PostgresDirectory) Update(ctx context.Context, id string, in UpdateInput) (*Tenant, *Tenant, error) {
	in, err := in.check()
	if err != nil {
		return nil, nil, err
	}

	row := d.db.QueryRow(ctx,
		`WITH old AS (
			SELECT `+tenantColumns+` FROM tenants WHERE id = $1 FOR UPDATE
		)
		UPDATE tenants AS t
		SET subdomain = COALESCE($2, t.subdomain),
			name = COALESCE($3, t.name),
			primary_color = COALESCE($4, t.primary_color),
			secondary_color = COALESCE($5, t.secondary_color),
			logo_url = COALESCE($6, t.logo_url),
			updated_at = $7
		FROM old
		WHERE t.id = old.id
		RETURNING `+qualified("old")+`, `+qualified("t"),
		id, in.Subdomain, in.Name, in.PrimaryColor, in.SecondaryColor, in.LogoURL, d.now().UTC(),
	)
	var before Tenant
	after, err := scanTenant(row, before.columns()...)
	if err != nil {
		return nil, nil, err
	}
	return &before, after, nil
}

func (d *PostgresDirectory) Delete(ctx context.Context, id string) (*Tenant, error) {
	row := d.db.QueryRow(ctx, `DELETE FROM tenants WHERE id = $1 RETURNING `+tenantColumns, id)
	return scanTenant(row)
}

// scanTenant scans one tenant after any leading destinations.
func scanTenant(row pgx.Row, leading ...any) (*Tenant, error) {
	var t Tenant
	err := row.Scan(append(leading, t.columns()...)...)
	switch {
	case err == nil:
		return &t, nil
	case pg.IsNotFoundError(err):
		return nil, ErrTenantNotFound
	case pg.IsDuplicateKeyError(err):
		if pg.ViolatedConstraint(err) == "tenants_pkey" {
			return nil, ErrTenantIDTaken
		}
		return nil, ErrSubdomainTaken
	default:
		return nil, errors.Join(ErrUnavailable, err)
	}
}

func (t *Tenant) columns() []any {
	return []any{
		&t.ID, &t.Subdomain, &t.Name, &t.PrimaryColor, &t.SecondaryColor,
		&t.LogoURL, &t.CreatedAt, &t.UpdatedAt,
	}
}

func qualified(table string) string {
	cols := strings.Split(tenantColumns, ", ")
	for i, c := range cols {
		cols[i] = table + "." + c
	}
	return strings.Join(cols, ", ")
}
