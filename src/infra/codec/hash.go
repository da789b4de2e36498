package codec

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"isiledger/src/core/domain"
)

// Hash returns the hex blake2b-256 digest of the binary encoding of ins.
func (c *Codec) Hash(ins domain.Instruction) (string, error) {
	b, err := EncodeInstruction(ins)
	if err != nil {
		return "", err
	}
	return HashBytes(b), nil
}

// HashBytes returns the hex blake2b-256 digest of an encoded instruction.
func HashBytes(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}
