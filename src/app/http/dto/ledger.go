package dto

import "isiledger/src/core/domain"

// CreateDomainRequest is the payload for POST /v1/domains.
type CreateDomainRequest struct {
	Name string `json:"name" binding:"required"`
}

// DomainSummary is one entry of GET /v1/domains.
type DomainSummary struct {
	Name         string `json:"name"`
	AccountCount int    `json:"account_count"`
}

// DomainResponse is the full view of one domain.
type DomainResponse struct {
	Name     string            `json:"name"`
	Accounts []AccountResponse `json:"accounts"`
	Assets   []AssetResponse   `json:"assets"`
}

// AccountResponse lists an account and its holdings.
type AccountResponse struct {
	ID     string          `json:"id"`
	Assets []AssetResponse `json:"assets"`
}

// AssetResponse is one holding.
type AssetResponse struct {
	ID         string `json:"id"`
	Definition string `json:"definition"`
	Quantity   uint32 `json:"quantity"`
}

// ReceiptResponse acknowledges an applied instruction.
type ReceiptResponse struct {
	Hash        string `json:"hash"`
	Kind        string `json:"kind"`
	Destination string `json:"destination"`
}

func (DomainSummary) FromDomain(d *domain.Domain) DomainSummary {
	return DomainSummary{Name: d.Name().String(), AccountCount: d.AccountCount()}
}

func (DomainResponse) FromDomain(d *domain.Domain) DomainResponse {
	out := DomainResponse{
		Name:     d.Name().String(),
		Accounts: make([]AccountResponse, 0, d.AccountCount()),
		Assets:   assets(d.Assets()),
	}
	for _, acc := range d.Accounts() {
		out.Accounts = append(out.Accounts, AccountResponse{}.FromDomain(acc))
	}
	return out
}

func (AccountResponse) FromDomain(acc domain.Account) AccountResponse {
	return AccountResponse{ID: acc.ID.String(), Assets: assets(acc.AssetList())}
}

func (ReceiptResponse) FromDomain(hash string, kind domain.Kind, dest domain.Name) ReceiptResponse {
	return ReceiptResponse{Hash: hash, Kind: kind.String(), Destination: dest.String()}
}

func assets(in []domain.Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(in))
	for _, a := range in {
		out = append(out, AssetResponse{
			ID:         a.ID.String(),
			Definition: a.ID.Definition.String(),
			Quantity:   a.Quantity,
		})
	}
	return out
}
