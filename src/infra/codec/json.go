package codec

import (
	"encoding/json"
	"fmt"

	"isiledger/src/core/domain"
)

type jsonRegister[O any] struct {
	DestinationID string `json:"destination_id"`
	Object        O      `json:"object"`
}

// jsonInstruction is externally tagged: exactly one field is set.
type jsonInstruction struct {
	RegisterAccount *jsonRegister[domain.Account] `json:"RegisterAccount,omitempty"`
	RegisterAsset   *jsonRegister[domain.Asset]   `json:"RegisterAsset,omitempty"`
}

// EncodeInstructionJSON renders ins as {"<Variant>": {"destination_id", "object"}}.
func EncodeInstructionJSON(ins domain.Instruction) ([]byte, error) {
	var out jsonInstruction
	switch v := ins.(type) {
	case domain.RegisterAccount:
		acc := v.Account.Clone()
		out.RegisterAccount = &jsonRegister[domain.Account]{DestinationID: v.DomainName.String(), Object: acc}
	case domain.RegisterAsset:
		out.RegisterAsset = &jsonRegister[domain.Asset]{DestinationID: v.DomainName.String(), Object: v.Asset}
	default:
		return nil, domain.NewValidationError("instruction", fmt.Sprintf("cannot encode %T", ins))
	}
	return json.Marshal(out)
}

// DecodeInstructionJSON validates data against the instruction schema and
// decodes it.
func (c *Codec) DecodeInstructionJSON(data []byte) (domain.Instruction, error) {
	if err := validate(c.instruction, data); err != nil {
		return nil, err
	}
	var in jsonInstruction
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, domain.NewValidationError("body", err.Error())
	}

	switch {
	case in.RegisterAccount != nil:
		dest, err := domain.ParseName(in.RegisterAccount.DestinationID)
		if err != nil {
			return nil, err
		}
		acc, err := normalizeAccount(in.RegisterAccount.Object)
		if err != nil {
			return nil, err
		}
		return domain.RegisterAccount{DomainName: dest, Account: acc}, nil
	case in.RegisterAsset != nil:
		dest, err := domain.ParseName(in.RegisterAsset.DestinationID)
		if err != nil {
			return nil, err
		}
		return domain.RegisterAsset{DomainName: dest, Asset: in.RegisterAsset.Object}, nil
	}
	return nil, domain.NewValidationError("body", "no instruction variant")
}

// EncodeAccountJSON renders an account.
func EncodeAccountJSON(acc domain.Account) ([]byte, error) {
	return json.Marshal(acc.Clone())
}

// DecodeAccountJSON validates and decodes an account.
func (c *Codec) DecodeAccountJSON(data []byte) (domain.Account, error) {
	if err := validate(c.account, data); err != nil {
		return domain.Account{}, err
	}
	var acc domain.Account
	if err := json.Unmarshal(data, &acc); err != nil {
		return domain.Account{}, domain.NewValidationError("body", err.Error())
	}
	return normalizeAccount(acc)
}

// EncodeAssetJSON renders an asset.
func EncodeAssetJSON(a domain.Asset) ([]byte, error) {
	return json.Marshal(a)
}

// DecodeAssetJSON validates and decodes an asset.
func (c *Codec) DecodeAssetJSON(data []byte) (domain.Asset, error) {
	if err := validate(c.asset, data); err != nil {
		return domain.Asset{}, err
	}
	var a domain.Asset
	if err := json.Unmarshal(data, &a); err != nil {
		return domain.Asset{}, domain.NewValidationError("body", err.Error())
	}
	return a, nil
}

// normalizeAccount fills a nil holdings map and checks that every holding is
// keyed by its own id.
func normalizeAccount(acc domain.Account) (domain.Account, error) {
	if acc.Assets == nil {
		acc.Assets = make(map[domain.AssetID]domain.Asset)
	}
	for key, a := range acc.Assets {
		if key != a.ID {
			return domain.Account{}, domain.NewValidationError("assets",
				fmt.Sprintf("holding keyed %s carries id %s", key, a.ID))
		}
	}
	return acc, nil
}
