package codec

import (
	"fmt"
	"slices"
)

type typeCodec struct {
	toJSON   func(c *Codec, b []byte) ([]byte, error)
	toBinary func(c *Codec, data []byte) ([]byte, error)
}

var typeCodecs = map[string]typeCodec{
	"Instruction": {
		toJSON: func(_ *Codec, b []byte) ([]byte, error) {
			ins, err := DecodeInstruction(b)
			if err != nil {
				return nil, err
			}
			return EncodeInstructionJSON(ins)
		},
		toBinary: func(c *Codec, data []byte) ([]byte, error) {
			ins, err := c.DecodeInstructionJSON(data)
			if err != nil {
				return nil, err
			}
			return EncodeInstruction(ins)
		},
	},
	"Account": {
		toJSON: func(_ *Codec, b []byte) ([]byte, error) {
			acc, err := DecodeAccount(b)
			if err != nil {
				return nil, err
			}
			return EncodeAccountJSON(acc)
		},
		toBinary: func(c *Codec, data []byte) ([]byte, error) {
			acc, err := c.DecodeAccountJSON(data)
			if err != nil {
				return nil, err
			}
			return EncodeAccount(acc), nil
		},
	},
	"Asset": {
		toJSON: func(_ *Codec, b []byte) ([]byte, error) {
			a, err := DecodeAsset(b)
			if err != nil {
				return nil, err
			}
			return EncodeAssetJSON(a)
		},
		toBinary: func(c *Codec, data []byte) ([]byte, error) {
			a, err := c.DecodeAssetJSON(data)
			if err != nil {
				return nil, err
			}
			return EncodeAsset(a), nil
		},
	},
}

// Types lists the type names BinaryToJSON and JSONToBinary accept.
func Types() []string {
	names := make([]string, 0, len(typeCodecs))
	for name := range typeCodecs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// BinaryToJSON converts a binary value of the named type to JSON.
func (c *Codec) BinaryToJSON(typeName string, b []byte) ([]byte, error) {
	tc, ok := typeCodecs[typeName]
	if !ok {
		return nil, unknownType(typeName)
	}
	return tc.toJSON(c, b)
}

// JSONToBinary converts a JSON value of the named type to binary.
func (c *Codec) JSONToBinary(typeName string, data []byte) ([]byte, error) {
	tc, ok := typeCodecs[typeName]
	if !ok {
		return nil, unknownType(typeName)
	}
	return tc.toBinary(c, data)
}

func unknownType(name string) error {
	return fmt.Errorf("unknown type: `%s`", name)
}
