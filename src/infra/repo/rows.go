package repo

import (
	"fmt"
	"math"

	"isiledger/src/core/domain"
)

// AccountRow is one row of the accounts table.
type AccountRow struct {
	DomainName string
	AccountID  string
}

// HoldingRow is one row of the account_assets table.
type HoldingRow struct {
	DomainName string
	AccountID  string
	AssetID    string
	Quantity   int64
}

// DomainAssetRow is one row of the domain_assets table.
type DomainAssetRow struct {
	DomainName string
	AssetID    string
	Quantity   int64
}

type domainRows struct {
	accounts     []AccountRow
	holdings     []HoldingRow
	domainAssets []DomainAssetRow
}

func flatten(d *domain.Domain) domainRows {
	name := d.Name().String()
	var out domainRows
	for _, acc := range d.Accounts() {
		out.accounts = append(out.accounts, AccountRow{DomainName: name, AccountID: acc.ID.String()})
		for _, a := range acc.AssetList() {
			out.holdings = append(out.holdings, HoldingRow{
				DomainName: name,
				AccountID:  acc.ID.String(),
				AssetID:    a.ID.String(),
				Quantity:   int64(a.Quantity),
			})
		}
	}
	for _, a := range d.Assets() {
		out.domainAssets = append(out.domainAssets, DomainAssetRow{
			DomainName: name,
			AssetID:    a.ID.String(),
			Quantity:   int64(a.Quantity),
		})
	}
	return out
}

// assembler rebuilds domains from rows read in any order.
type assembler struct {
	names    []domain.Name
	accounts map[domain.Name]map[domain.AccountID]*domain.Account
	order    map[domain.Name][]domain.AccountID
	assets   map[domain.Name][]domain.Asset
}

func newAssembler() *assembler {
	return &assembler{
		accounts: make(map[domain.Name]map[domain.AccountID]*domain.Account),
		order:    make(map[domain.Name][]domain.AccountID),
		assets:   make(map[domain.Name][]domain.Asset),
	}
}

func (a *assembler) addDomain(name string) error {
	n, err := domain.ParseName(name)
	if err != nil {
		return fmt.Errorf("stored domain %q: %w", name, err)
	}
	if _, ok := a.accounts[n]; ok {
		return fmt.Errorf("stored domain %q appears twice", name)
	}
	a.names = append(a.names, n)
	a.accounts[n] = make(map[domain.AccountID]*domain.Account)
	return nil
}

func (a *assembler) addAccount(row AccountRow) error {
	accounts, ok := a.accounts[domain.Name(row.DomainName)]
	if !ok {
		return fmt.Errorf("stored account %s references unknown domain %s", row.AccountID, row.DomainName)
	}
	id, err := domain.ParseAccountID(row.AccountID)
	if err != nil {
		return fmt.Errorf("stored account %q: %w", row.AccountID, err)
	}
	acc := domain.NewAccount(id)
	accounts[id] = &acc
	a.order[domain.Name(row.DomainName)] = append(a.order[domain.Name(row.DomainName)], id)
	return nil
}

func (a *assembler) addHolding(row HoldingRow) error {
	accID, err := domain.ParseAccountID(row.AccountID)
	if err != nil {
		return fmt.Errorf("stored holding account %q: %w", row.AccountID, err)
	}
	acc, ok := a.accounts[domain.Name(row.DomainName)][accID]
	if !ok {
		return fmt.Errorf("stored holding %s references unknown account %s", row.AssetID, row.AccountID)
	}
	asset, err := parseAsset(row.AssetID, row.Quantity)
	if err != nil {
		return err
	}
	acc.Assets[asset.ID] = asset
	return nil
}

func (a *assembler) addDomainAsset(row DomainAssetRow) error {
	n := domain.Name(row.DomainName)
	if _, ok := a.accounts[n]; !ok {
		return fmt.Errorf("stored asset %s references unknown domain %s", row.AssetID, row.DomainName)
	}
	asset, err := parseAsset(row.AssetID, row.Quantity)
	if err != nil {
		return err
	}
	a.assets[n] = append(a.assets[n], asset)
	return nil
}

func (a *assembler) build() ([]*domain.Domain, error) {
	out := make([]*domain.Domain, 0, len(a.names))
	for _, n := range a.names {
		accounts := make([]domain.Account, 0, len(a.order[n]))
		for _, id := range a.order[n] {
			accounts = append(accounts, *a.accounts[n][id])
		}
		d, err := domain.RestoreDomain(n, accounts, a.assets[n])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func parseAsset(id string, quantity int64) (domain.Asset, error) {
	assetID, err := domain.ParseAssetID(id)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("stored asset %q: %w", id, err)
	}
	if quantity < 0 || quantity > math.MaxUint32 {
		return domain.Asset{}, fmt.Errorf("stored asset %s has out of range quantity %d", id, quantity)
	}
	return domain.NewAsset(assetID, uint32(quantity)), nil
}
