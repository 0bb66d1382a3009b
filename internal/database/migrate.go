package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

func init() {
	goose.SetBaseFS(migrationsFS)
}

// Migrate applies all pending migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return db.withSQL(func(sqlDB *sql.DB) error {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		if err := goose.UpContext(runCtx, sqlDB, migrationsDir); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		return nil
	})
}

// MigrateDown rolls back the latest migration, or down to version when it
// is positive.
func (db *DB) MigrateDown(ctx context.Context, version int64) error {
	return db.withSQL(func(sqlDB *sql.DB) error {
		runCtx, cancel := context.WithTimeout(ctx, time.Minute)
		defer cancel()

		if version > 0 {
			if err := goose.DownToContext(runCtx, sqlDB, migrationsDir, version); err != nil {
				return fmt.Errorf("failed to roll back to version %d: %w", version, err)
			}
			return nil
		}
		if err := goose.DownContext(runCtx, sqlDB, migrationsDir); err != nil {
			return fmt.Errorf("failed to roll back migration: %w", err)
		}
		return nil
	})
}

// MigrationStatus prints applied and pending migrations through goose's logger.
func (db *DB) MigrationStatus(ctx context.Context) error {
	return db.withSQL(func(sqlDB *sql.DB) error {
		if err := sqlDB.PingContext(ctx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}
		if err := goose.Status(sqlDB, migrationsDir); err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		return nil
	})
}

func (db *DB) withSQL(fn func(*sql.DB) error) error {
	if db.dsn == "" {
		return errors.New("database dsn not set")
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to configure goose: %w", err)
	}

	sqlDB, err := sql.Open("pgx", db.dsn)
	if err != nil {
		return fmt.Errorf("failed to open sql connection: %w", err)
	}
	defer sqlDB.Close()

	return fn(sqlDB)
}
