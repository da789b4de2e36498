// Package main is the entry point for the isiledger API server.
// It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"isiledger/src/app/server"
	"isiledger/src/app/stream"
	"isiledger/src/core/ports"
	"isiledger/src/core/usecase"
	"isiledger/src/infra/codec"
	"isiledger/src/infra/config"
	"isiledger/src/infra/db"
	"isiledger/src/infra/genesis"
	"isiledger/src/infra/journal"
	"isiledger/src/infra/logger"
	"isiledger/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Driver,
		"log_level", cfg.Log.Level,
	)

	// Initialize storage
	store, closeStore, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	c, err := codec.New()
	if err != nil {
		return err
	}

	var jr ports.Journal
	if cfg.Ledger.JournalDir != "" {
		w := journal.NewWriter(cfg.Ledger.JournalDir)
		defer func() {
			if err := w.Close(); err != nil {
				log.Error("failed to close journal", "error", err)
			}
		}()
		jr = w
	}

	hub := stream.NewHub(logger.WithComponent(log, "stream"))

	ledger := usecase.NewLedgerService(store, c, jr, hub, logger.WithComponent(log, "ledger"))

	var gen *ports.Genesis
	if cfg.Ledger.GenesisPath != "" {
		if gen, err = genesis.Load(cfg.Ledger.GenesisPath); err != nil {
			return err
		}
	}
	if err := ledger.Bootstrap(ctx, gen); err != nil {
		return err
	}

	health := usecase.NewHealthService(store, log)

	// Create and run HTTP server
	srv := server.New(cfg, log, ledger, health, c, hub)

	// Run blocks until shutdown signal is received
	return srv.Run()
}

// openStorage selects the world-state store for cfg.Storage.Driver and runs
// migrations where the store has a schema.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (ports.WorldStateRepository, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pg, err := db.New(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		return repo.NewPostgresRepository(pg, log), pg.Close, nil

	case config.DriverSQLite:
		s, err := db.OpenSQLite(ctx, cfg.Storage.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, nil, err
		}
		return repo.NewSQLiteRepository(s, log), s.Close, nil

	case config.DriverMemory:
		log.Warn("using in-memory storage; state is lost on exit")
		return repo.NewMemoryRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
