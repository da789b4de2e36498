// Package genesis loads the YAML file that seeds an empty ledger.
//
//	domains:
//	  - wonderland
//	instructions:
//	  - register_account:
//	      domain: wonderland
//	      account: alice@wonderland
//	  - register_asset:
//	      domain: wonderland
//	      asset: rose##alice@wonderland
//	      quantity: 13
package genesis

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"isiledger/src/core/domain"
	"isiledger/src/core/ports"
)

type file struct {
	Domains      []string      `yaml:"domains"`
	Instructions []instruction `yaml:"instructions"`
}

type instruction struct {
	RegisterAccount *registerAccount `yaml:"register_account"`
	RegisterAsset   *registerAsset   `yaml:"register_asset"`
}

type registerAccount struct {
	Domain  string    `yaml:"domain"`
	Account string    `yaml:"account"`
	Assets  []holding `yaml:"assets"`
}

type registerAsset struct {
	Domain   string `yaml:"domain"`
	Asset    string `yaml:"asset"`
	Quantity uint32 `yaml:"quantity"`
}

type holding struct {
	ID       string `yaml:"id"`
	Quantity uint32 `yaml:"quantity"`
}

// Load reads and parses the genesis file at path.
func Load(path string) (*ports.Genesis, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Parse decodes a genesis document. Unknown keys are rejected.
func Parse(raw []byte) (*ports.Genesis, error) {
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("genesis: %w", err)
	}

	g := &ports.Genesis{}
	for _, d := range f.Domains {
		name, err := domain.ParseName(d)
		if err != nil {
			return nil, fmt.Errorf("genesis domain %q: %w", d, err)
		}
		g.Domains = append(g.Domains, name)
	}
	for i, in := range f.Instructions {
		ins, err := in.toDomain()
		if err != nil {
			return nil, fmt.Errorf("genesis instruction %d: %w", i, err)
		}
		g.Instructions = append(g.Instructions, ins)
	}
	return g, nil
}

func (in instruction) toDomain() (domain.Instruction, error) {
	switch {
	case in.RegisterAccount != nil && in.RegisterAsset != nil:
		return nil, domain.NewValidationError("instruction", "more than one variant")
	case in.RegisterAccount != nil:
		return in.RegisterAccount.toDomain()
	case in.RegisterAsset != nil:
		return in.RegisterAsset.toDomain()
	default:
		return nil, domain.NewValidationError("instruction", "no variant")
	}
}

func (r registerAccount) toDomain() (domain.Instruction, error) {
	dest, err := domain.ParseName(r.Domain)
	if err != nil {
		return nil, err
	}
	id, err := domain.ParseAccountID(r.Account)
	if err != nil {
		return nil, err
	}
	acc := domain.NewAccount(id)
	for _, h := range r.Assets {
		assetID, err := domain.ParseAssetID(h.ID)
		if err != nil {
			return nil, err
		}
		if _, dup := acc.Assets[assetID]; dup {
			return nil, domain.NewValidationError("assets", fmt.Sprintf("account %s holds %s twice", id, assetID))
		}
		acc.Assets[assetID] = domain.NewAsset(assetID, h.Quantity)
	}
	return domain.NewRegister[domain.Domain](acc, dest).Into()
}

func (r registerAsset) toDomain() (domain.Instruction, error) {
	dest, err := domain.ParseName(r.Domain)
	if err != nil {
		return nil, err
	}
	id, err := domain.ParseAssetID(r.Asset)
	if err != nil {
		return nil, err
	}
	return domain.NewRegister[domain.Domain](domain.NewAsset(id, r.Quantity), dest).Into()
}
