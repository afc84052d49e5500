package sqlstore

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"fmgimport/internal/repository/sqlstore/migrations"
)

// NewMigrator returns a migrate instance over the embedded migrations for db.
// Closing the returned instance also closes db.
func NewMigrator(db *sqlx.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("sqlstore.NewMigrator: source: %w", err)
	}

	var (
		driver database.Driver
		name   string
	)
	switch db.DriverName() {
	case "sqlite":
		name = "sqlite"
		driver, err = sqlitemigrate.WithInstance(db.DB, &sqlitemigrate.Config{})
	default:
		name = "pgx5"
		driver, err = pgxmigrate.WithInstance(db.DB, &pgxmigrate.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore.NewMigrator: %s driver: %w", name, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, name, driver)
	if err != nil {
		return nil, fmt.Errorf("sqlstore.NewMigrator: %w", err)
	}
	return m, nil
}

// Migrate applies every pending migration to db. db stays open.
func Migrate(db *sqlx.DB) error {
	m, err := NewMigrator(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("sqlstore.Migrate: %w", err)
	}
	return nil
}
