package repo

import (
	"context"
	"slices"
	"sync"

	"isiledger/src/core/domain"
	"isiledger/src/core/ports"
)

// MemoryRepository keeps domains in process memory.
type MemoryRepository struct {
	mu      sync.Mutex
	domains map[domain.Name]*domain.Domain
}

var _ ports.WorldStateRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{domains: make(map[domain.Name]*domain.Domain)}
}

func (r *MemoryRepository) Health(context.Context) error { return nil }

func (r *MemoryRepository) LoadDomains(context.Context) ([]*domain.Domain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]domain.Name, 0, len(r.domains))
	for name := range r.domains {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]*domain.Domain, 0, len(names))
	for _, name := range names {
		out = append(out, r.domains[name].Clone())
	}
	return out, nil
}

func (r *MemoryRepository) SaveDomain(_ context.Context, d *domain.Domain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.domains[d.Name()] = d.Clone()
	return nil
}
