package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLite wraps a single-connection SQLite database file.
type SQLite struct {
	DB   *sql.DB
	path string
	log  *slog.Logger
}

// OpenSQLite opens (creating if needed) the database file at path.
func OpenSQLite(ctx context.Context, path string, log *slog.Logger) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("empty sqlite path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := initPragmas(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	log.Info("sqlite database opened", "path", path)
	return &SQLite{DB: sqlDB, path: path, log: log}, nil
}

func initPragmas(ctx context.Context, sqlDB *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("failed to apply %s: %w", p, err)
		}
	}
	return nil
}

// Migrate applies the embedded migrations.
func (s *SQLite) Migrate(ctx context.Context) error {
	return migrate(ctx, s.DB, goose.DialectSQLite3, s.log)
}

// Close closes the database.
func (s *SQLite) Close() {
	if s.DB != nil {
		_ = s.DB.Close()
		s.log.Info("sqlite database closed", "path", s.path)
	}
}

// Health checks if the database is reachable.
func (s *SQLite) Health(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}
