package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"go.uber.org/zap"

	"github.com/dancepractice/practice-api/pkg/config"
)

const versionTable = "schema_version"

//go:embed migrations/*.sql
var migrations embed.FS

// Migrations exposes the embedded migration files.
func Migrations() (fs.FS, error) {
	return fs.Sub(migrations, "migrations")
}

// Migrate applies pending migrations over a dedicated pgx connection.
// A target of 0 migrates to the latest version.
func Migrate(ctx context.Context, cfg config.DatabaseConfig, target int32, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	conn, err := pgx.Connect(ctx, URL(cfg))
	if err != nil {
		return fmt.Errorf("connect for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return fmt.Errorf("construct migrator: %w", err)
	}

	subtree, err := Migrations()
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	latest := int32(len(m.Migrations))
	if target <= 0 || target > latest {
		target = latest
	}
	if err := m.MigrateTo(ctx, target); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	if from == target {
		logger.Info("database schema up to date", zap.Int32("version", target))
	} else {
		logger.Info("migrated database schema", zap.Int32("from", from), zap.Int32("to", target))
	}
	return nil
}
