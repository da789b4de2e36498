package domain

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// Identifiable is satisfied by entities that carry their own identifier.
type Identifiable[I comparable] interface {
	Identifier() I
}

// ============================================================================
// Asset
// ============================================================================

// Asset is a quantity of one asset definition held by one account.
type Asset struct {
	ID       AssetID `json:"id"`
	Quantity uint32  `json:"quantity"`
}

// NewAsset creates an asset holding.
func NewAsset(id AssetID, quantity uint32) Asset {
	return Asset{ID: id, Quantity: quantity}
}

// Identifier implements Identifiable.
func (a Asset) Identifier() AssetID { return a.ID }

// ============================================================================
// Account
// ============================================================================

// Account is a named holder inside a domain.
type Account struct {
	ID     AccountID         `json:"id"`
	Assets map[AssetID]Asset `json:"assets"`
}

// NewAccount creates an account with no holdings.
func NewAccount(id AccountID) Account {
	return Account{ID: id, Assets: make(map[AssetID]Asset)}
}

// Identifier implements Identifiable.
func (a Account) Identifier() AccountID { return a.ID }

// Clone returns a copy that shares no map with a.
func (a Account) Clone() Account {
	out := Account{ID: a.ID, Assets: make(map[AssetID]Asset, len(a.Assets))}
	maps.Copy(out.Assets, a.Assets)
	return out
}

// AssetList returns the holdings ordered by asset id.
func (a Account) AssetList() []Asset {
	return sortedAssets(a.Assets)
}

// ============================================================================
// Domain
// ============================================================================

// Domain is a named container of accounts and domain-level assets. It has no
// exported mutators; instructions are the only way to change it.
type Domain struct {
	name     Name
	accounts map[AccountID]*Account
	assets   map[AssetID]Asset
}

// NewDomain creates an empty domain.
func NewDomain(name Name) *Domain {
	return &Domain{
		name:     name,
		accounts: make(map[AccountID]*Account),
		assets:   make(map[AssetID]Asset),
	}
}

// RestoreDomain rebuilds a domain from persisted rows. Duplicate ids are
// rejected.
func RestoreDomain(name Name, accounts []Account, assets []Asset) (*Domain, error) {
	d := NewDomain(name)
	for _, acc := range accounts {
		if _, ok := d.accounts[acc.ID]; ok {
			return nil, NewAlreadyExistsError(fmt.Sprintf("domain %s restores account %s twice", name, acc.ID))
		}
		c := acc.Clone()
		d.accounts[c.ID] = &c
	}
	for _, a := range assets {
		if _, ok := d.assets[a.ID]; ok {
			return nil, NewAlreadyExistsError(fmt.Sprintf("domain %s restores asset %s twice", name, a.ID))
		}
		d.assets[a.ID] = a
	}
	return d, nil
}

// Identifier implements Identifiable.
func (d Domain) Identifier() Name { return d.name }

// Name returns the domain name.
func (d *Domain) Name() Name { return d.name }

// Account returns a copy of the account registered under id.
func (d *Domain) Account(id AccountID) (Account, bool) {
	acc, ok := d.accounts[id]
	if !ok {
		return Account{}, false
	}
	return acc.Clone(), true
}

// HasAccount reports whether id is registered.
func (d *Domain) HasAccount(id AccountID) bool {
	_, ok := d.accounts[id]
	return ok
}

// AccountCount returns the number of registered accounts.
func (d *Domain) AccountCount() int { return len(d.accounts) }

// Accounts returns copies of every account ordered by id.
func (d *Domain) Accounts() []Account {
	out := make([]Account, 0, len(d.accounts))
	for _, acc := range d.accounts {
		out = append(out, acc.Clone())
	}
	slices.SortFunc(out, func(a, b Account) int {
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out
}

// Asset returns the domain-level asset registered under id.
func (d *Domain) Asset(id AssetID) (Asset, bool) {
	a, ok := d.assets[id]
	return a, ok
}

// Assets returns the domain-level assets ordered by id.
func (d *Domain) Assets() []Asset {
	return sortedAssets(d.assets)
}

// Clone returns a deep copy of d.
func (d *Domain) Clone() *Domain {
	out := &Domain{
		name:     d.name,
		accounts: make(map[AccountID]*Account, len(d.accounts)),
		assets:   maps.Clone(d.assets),
	}
	if out.assets == nil {
		out.assets = make(map[AssetID]Asset)
	}
	for id, acc := range d.accounts {
		c := acc.Clone()
		out.accounts[id] = &c
	}
	return out
}

func sortedAssets(m map[AssetID]Asset) []Asset {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, func(a, b Asset) int {
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	if out == nil {
		out = []Asset{}
	}
	return out
}
