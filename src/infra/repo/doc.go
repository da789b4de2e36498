// Package repo contains the world-state store implementations.
//
// This package implements ports.WorldStateRepository three ways:
//   - PostgresRepository: pgx pool, bulk writes with COPY
//   - SQLiteRepository: modernc.org/sqlite through database/sql
//   - MemoryRepository: process-local, for tests and throwaway runs
//
// The SQL stores share one schema (see src/infra/db/migrations) and the row
// shapes in rows.go. SaveDomain replaces every row belonging to a domain in
// one transaction.
package repo
