package tenant

import (
	"context"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

type seedDocument struct {
	Tenants []CreateInput `yaml:"tenants"`
}

// Seed creates the tenants listed under the "tenants" key of a YAML document.
// Tenants whose subdomain already exists are skipped, so seeding is repeatable.
// It returns the number of tenants created.
func Seed(ctx context.Context, repo Repository, r io.Reader) (int, error) {
	var doc seedDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return 0, errors.Join(ErrInvalidSeed, err)
	}

	created := 0
	for _, in := range doc.Tenants {
		_, err := repo.FindBySubdomain(ctx, in.Subdomain)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrTenantNotFound) {
			return created, err
		}
		if _, err := repo.Create(ctx, in); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
