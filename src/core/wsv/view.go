// Package wsv holds the in-memory world state view that instructions execute
// against.
//
// A View is not safe for concurrent use. Callers serialize access; in this
// service that is usecase.LedgerService.
package wsv

import (
	"slices"

	"isiledger/src/core/domain"
)

// View is a name-keyed set of live domains.
type View struct {
	domains map[domain.Name]*domain.Domain
}

var _ domain.WorldState = (*View)(nil)

// New creates a view over the given domains. Later duplicates replace
// earlier ones.
func New(domains ...*domain.Domain) *View {
	v := &View{domains: make(map[domain.Name]*domain.Domain, len(domains))}
	for _, d := range domains {
		v.domains[d.Name()] = d
	}
	return v
}

// Domain implements domain.WorldState.
func (v *View) Domain(name domain.Name) (*domain.Domain, bool) {
	d, ok := v.domains[name]
	return d, ok
}

// AddDomain inserts an empty domain. It fails if the name is taken.
func (v *View) AddDomain(name domain.Name) (*domain.Domain, error) {
	if _, ok := v.domains[name]; ok {
		return nil, domain.NewAlreadyExistsError("domain " + name.String())
	}
	d := domain.NewDomain(name)
	v.domains[name] = d
	return d, nil
}

// Put stores d under its name, replacing any previous domain.
func (v *View) Put(d *domain.Domain) {
	v.domains[d.Name()] = d
}

// Names returns the domain names in sorted order.
func (v *View) Names() []domain.Name {
	names := make([]domain.Name, 0, len(v.domains))
	for name := range v.domains {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of domains.
func (v *View) Len() int { return len(v.domains) }

// Remove deletes the domain stored under name.
func (v *View) Remove(name domain.Name) {
	delete(v.domains, name)
}
