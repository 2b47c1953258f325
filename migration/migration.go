package migration

import (
	"context"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/xcontext"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

// Migrate brings the schema up to date. Postgres runs the versioned sql files,
// other drivers rely on gorm auto migration.
func Migrate(ctx context.Context) error {
	if xcontext.Configs(ctx).Database.Driver != "postgres" {
		return entity.MigrateTable(ctx)
	}

	db, err := xcontext.DB(ctx).DB()
	if err != nil {
		return err
	}

	source, err := iofs.New(postgresFS, "postgres")
	if err != nil {
		return err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, xcontext.Configs(ctx).Database.Database, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}

	xcontext.Logger(ctx).Infof("Database schema is at version %d (dirty=%t)", version, dirty)
	return nil
}
