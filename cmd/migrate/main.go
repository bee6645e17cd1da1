package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/masterchef/backend/config"
	"github.com/pageza/masterchef/backend/internal/logger"
	"github.com/pageza/masterchef/backend/migrations"
)

const createSchemaMigrations = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

func main() {
	// Parse command line flags
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	flag.Parse()

	if err := logger.Init(config.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			logger.L().Fatal("DATABASE_URL is not set and configuration failed to load", zap.Error(err))
		}
		if cfg.DBDriver != config.DriverPostgres {
			logger.L().Fatal("SQL migrations only apply to postgres; sqlite is migrated on startup",
				zap.String("driver", cfg.DBDriver))
		}
		dsn = cfg.DSN()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	all, err := migrations.All()
	if err != nil {
		logger.L().Fatal("failed to read migrations", zap.Error(err))
	}

	if _, err := db.Exec(createSchemaMigrations); err != nil {
		logger.L().Fatal("failed to create schema_migrations table", zap.Error(err))
	}

	if *rollback {
		version, err := rollbackLast(db, all)
		if err != nil {
			logger.L().Fatal("rollback failed", zap.Error(err))
		}
		fmt.Printf("Successfully rolled back migration: %s\n", version)
		return
	}

	applied, err := applyPending(db, all)
	if err != nil {
		logger.L().Fatal("migration failed", zap.Error(err))
	}
	for _, v := range applied {
		fmt.Printf("Successfully applied migration: %s\n", v)
	}
	fmt.Println("All migrations applied successfully.")
}

func applyPending(db *sql.DB, all []migrations.Migration) ([]string, error) {
	var applied []string
	for _, m := range all {
		var exists bool
		if err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", m.Version).Scan(&exists); err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			logger.Debug("migration already applied", zap.String("version", m.Version))
			continue
		}

		if err := inTx(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.Up); err != nil {
				return err
			}
			_, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", m.Version)
			return err
		}); err != nil {
			return applied, fmt.Errorf("failed to apply migration %s: %w", m.Version, err)
		}
		applied = append(applied, m.Version)
	}
	return applied, nil
}

func rollbackLast(db *sql.DB, all []migrations.Migration) (string, error) {
	var version string
	err := db.QueryRow("SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.New("no migrations to rollback")
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last migration: %w", err)
	}

	var down string
	for _, m := range all {
		if m.Version == version {
			down = m.Down
		}
	}
	if down == "" {
		return "", fmt.Errorf("no rollback file for migration %s", version)
	}

	err = inTx(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(down); err != nil {
			return err
		}
		_, err := tx.Exec("DELETE FROM schema_migrations WHERE version = $1", version)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to roll back %s: %w", version, err)
	}
	return version, nil
}

func inTx(db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
