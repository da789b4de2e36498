package codec

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"isiledger/src/core/domain"
)

// Binary layout, protobuf wire format without generated messages:
//
//	Instruction       { 1: DomainInstruction }
//	DomainInstruction { 1: kind varint, 2: destination string, 3: object bytes }
//	Account           { 1: id string, 2: repeated Asset }
//	Asset             { 1: id string, 2: quantity varint }
//
// Holdings are written in asset id order so equal values encode equally.
const (
	fieldInstructionDomain protowire.Number = 1

	fieldDomainKind        protowire.Number = 1
	fieldDomainDestination protowire.Number = 2
	fieldDomainObject      protowire.Number = 3

	fieldAccountID     protowire.Number = 1
	fieldAccountAssets protowire.Number = 2

	fieldAssetID       protowire.Number = 1
	fieldAssetQuantity protowire.Number = 2
)

// EncodeInstruction encodes ins in the binary form.
func EncodeInstruction(ins domain.Instruction) ([]byte, error) {
	var (
		dest   domain.Name
		object []byte
	)
	switch v := ins.(type) {
	case domain.RegisterAccount:
		dest, object = v.DomainName, EncodeAccount(v.Account)
	case domain.RegisterAsset:
		dest, object = v.DomainName, EncodeAsset(v.Asset)
	default:
		return nil, domain.NewValidationError("instruction", fmt.Sprintf("cannot encode %T", ins))
	}

	var inner []byte
	inner = protowire.AppendTag(inner, fieldDomainKind, protowire.VarintType)
	inner = protowire.AppendVarint(inner, uint64(ins.Kind()))
	inner = protowire.AppendTag(inner, fieldDomainDestination, protowire.BytesType)
	inner = protowire.AppendString(inner, dest.String())
	inner = protowire.AppendTag(inner, fieldDomainObject, protowire.BytesType)
	inner = protowire.AppendBytes(inner, object)

	var out []byte
	out = protowire.AppendTag(out, fieldInstructionDomain, protowire.BytesType)
	out = protowire.AppendBytes(out, inner)
	return out, nil
}

// DecodeInstruction parses the binary form.
func DecodeInstruction(b []byte) (domain.Instruction, error) {
	var inner []byte
	found := false
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		if num == fieldInstructionDomain && typ == protowire.BytesType {
			inner, found = v, true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, binaryError("instruction has no variant")
	}

	var (
		kind     domain.Kind
		dest     string
		object   []byte
		hasKind  bool
		hasDest  bool
		hasValue bool
	)
	err = walk(inner, func(num protowire.Number, typ protowire.Type, v []byte, n uint64) error {
		switch {
		case num == fieldDomainKind && typ == protowire.VarintType:
			if n > 255 {
				return binaryError(fmt.Sprintf("instruction kind %d out of range", n))
			}
			kind, hasKind = domain.Kind(n), true
		case num == fieldDomainDestination && typ == protowire.BytesType:
			dest, hasDest = string(v), true
		case num == fieldDomainObject && typ == protowire.BytesType:
			object, hasValue = v, true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !hasKind || !hasDest || !hasValue {
		return nil, binaryError("instruction is missing kind, destination or object")
	}

	name, err := domain.ParseName(dest)
	if err != nil {
		return nil, err
	}
	switch kind {
	case domain.KindRegisterAccount:
		acc, err := DecodeAccount(object)
		if err != nil {
			return nil, err
		}
		return domain.RegisterAccount{DomainName: name, Account: acc}, nil
	case domain.KindRegisterAsset:
		asset, err := DecodeAsset(object)
		if err != nil {
			return nil, err
		}
		return domain.RegisterAsset{DomainName: name, Asset: asset}, nil
	default:
		return nil, binaryError(fmt.Sprintf("unknown instruction kind %d", kind))
	}
}

// EncodeAccount encodes an account in the binary form.
func EncodeAccount(acc domain.Account) []byte {
	var out []byte
	out = protowire.AppendTag(out, fieldAccountID, protowire.BytesType)
	out = protowire.AppendString(out, acc.ID.String())
	for _, a := range acc.AssetList() {
		out = protowire.AppendTag(out, fieldAccountAssets, protowire.BytesType)
		out = protowire.AppendBytes(out, EncodeAsset(a))
	}
	return out
}

// DecodeAccount parses an account.
func DecodeAccount(b []byte) (domain.Account, error) {
	var (
		id    string
		hasID bool
		raw   [][]byte
	)
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte, _ uint64) error {
		switch {
		case num == fieldAccountID && typ == protowire.BytesType:
			id, hasID = string(v), true
		case num == fieldAccountAssets && typ == protowire.BytesType:
			raw = append(raw, v)
		}
		return nil
	})
	if err != nil {
		return domain.Account{}, err
	}
	if !hasID {
		return domain.Account{}, binaryError("account has no id")
	}

	accID, err := domain.ParseAccountID(id)
	if err != nil {
		return domain.Account{}, err
	}
	acc := domain.NewAccount(accID)
	for _, r := range raw {
		a, err := DecodeAsset(r)
		if err != nil {
			return domain.Account{}, err
		}
		if _, dup := acc.Assets[a.ID]; dup {
			return domain.Account{}, binaryError(fmt.Sprintf("account %s holds %s twice", accID, a.ID))
		}
		acc.Assets[a.ID] = a
	}
	return acc, nil
}

// EncodeAsset encodes an asset in the binary form.
func EncodeAsset(a domain.Asset) []byte {
	var out []byte
	out = protowire.AppendTag(out, fieldAssetID, protowire.BytesType)
	out = protowire.AppendString(out, a.ID.String())
	out = protowire.AppendTag(out, fieldAssetQuantity, protowire.VarintType)
	out = protowire.AppendVarint(out, uint64(a.Quantity))
	return out
}

// DecodeAsset parses an asset. A missing quantity decodes as zero.
func DecodeAsset(b []byte) (domain.Asset, error) {
	var (
		id       string
		hasID    bool
		quantity uint64
	)
	err := walk(b, func(num protowire.Number, typ protowire.Type, v []byte, n uint64) error {
		switch {
		case num == fieldAssetID && typ == protowire.BytesType:
			id, hasID = string(v), true
		case num == fieldAssetQuantity && typ == protowire.VarintType:
			if n > 1<<32-1 {
				return binaryError(fmt.Sprintf("asset quantity %d overflows uint32", n))
			}
			quantity = n
		}
		return nil
	})
	if err != nil {
		return domain.Asset{}, err
	}
	if !hasID {
		return domain.Asset{}, binaryError("asset has no id")
	}
	assetID, err := domain.ParseAssetID(id)
	if err != nil {
		return domain.Asset{}, err
	}
	return domain.NewAsset(assetID, uint32(quantity)), nil
}

// walk visits every field of a message. Bytes fields arrive in v, varints
// in n; unknown fields are skipped.
func walk(b []byte, visit func(num protowire.Number, typ protowire.Type, v []byte, n uint64) error) error {
	for len(b) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(b)
		if tagLen < 0 {
			return binaryError(protowire.ParseError(tagLen).Error())
		}
		b = b[tagLen:]

		var (
			v      []byte
			n      uint64
			valLen int
		)
		switch typ {
		case protowire.VarintType:
			n, valLen = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			v, valLen = protowire.ConsumeBytes(b)
		default:
			valLen = protowire.ConsumeFieldValue(num, typ, b)
		}
		if valLen < 0 {
			return binaryError(protowire.ParseError(valLen).Error())
		}
		b = b[valLen:]

		if err := visit(num, typ, v, n); err != nil {
			return err
		}
	}
	return nil
}

func binaryError(msg string) error {
	return domain.NewValidationError("binary", msg)
}
