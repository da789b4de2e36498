// Package db provides database connections and schema migrations.
//
// This package is responsible for:
//   - PostgreSQL connection pool initialization (pgx)
//   - SQLite file databases (modernc.org/sqlite, pure Go)
//   - Connection health checks
//   - Embedded goose migrations shared by both engines
//
// Example usage:
//
//	pg, err := db.New(ctx, cfg.Database, log)
//	if err != nil {
//	    return err
//	}
//	defer pg.Close()
//	if err := pg.Migrate(ctx); err != nil {
//	    return err
//	}
package db
