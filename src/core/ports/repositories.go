// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"isiledger/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// WorldStateRepository persists domains between restarts.
type WorldStateRepository interface {
	Repository

	// LoadDomains returns every persisted domain.
	LoadDomains(ctx context.Context) ([]*domain.Domain, error)

	// SaveDomain replaces the persisted state of d.
	//
	// Implementation detail: must be atomic (single DB transaction).
	SaveDomain(ctx context.Context, d *domain.Domain) error
}
