package db

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrateUp applies all pending migrations. Already being up to date is not an error.
func MigrateUp(dbURL string) error {
	m, err := newMigrate(dbURL)
	if err != nil {
		return fmt.Errorf("newMigrate: %w", err)
	}
	defer closeMigrate(m)

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("no change in migration", "method", "db.MigrateUp")
			return nil
		}
		return fmt.Errorf("m.Up: %w", err)
	}

	return nil
}

// MigrateDown rolls back steps migrations, or all of them when steps is 0.
func MigrateDown(dbURL string, steps int) error {
	m, err := newMigrate(dbURL)
	if err != nil {
		return fmt.Errorf("newMigrate: %w", err)
	}
	defer closeMigrate(m)

	if steps > 0 {
		err = m.Steps(-steps)
	} else {
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Down: %w", err)
	}

	return nil
}

func newMigrate(dbURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("iofs.New: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(dbURL))
	if err != nil {
		return nil, fmt.Errorf("migrate.NewWithSourceInstance: %w", err)
	}

	return m, nil
}

func closeMigrate(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if err := errors.Join(srcErr, dbErr); err != nil {
		slog.Warn("failed to close migrate", "method", "db.closeMigrate", "error", err)
	}
}

// migrateURL switches a postgres URL to the pgx/v5 migrate driver scheme.
func migrateURL(dbURL string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dbURL, scheme) {
			return "pgx5://" + strings.TrimPrefix(dbURL, scheme)
		}
	}
	return dbURL
}
