// Package codec converts instructions and their objects between the domain
// model and the two wire forms: JSON (validated against an embedded JSON
// Schema) and a compact protobuf-wire binary encoding. It also derives the
// blake2b content hash of an instruction.
package codec

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"isiledger/src/core/domain"
	"isiledger/src/core/ports"
)

//go:embed schemas/ledger.schema.json
var schemaFS embed.FS

const schemaURL = "https://isiledger.local/schemas/ledger.schema.json"

// Codec holds the compiled schemas. It is safe for concurrent use.
type Codec struct {
	instruction *jsonschema.Schema
	account     *jsonschema.Schema
	asset       *jsonschema.Schema
}

var _ ports.Hasher = (*Codec)(nil)

// New compiles the embedded schemas.
func New() (*Codec, error) {
	raw, err := schemaFS.ReadFile("schemas/ledger.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to add schema: %w", err)
	}

	compile := func(def string) (*jsonschema.Schema, error) {
		s, err := compiler.Compile(schemaURL + "#/$defs/" + def)
		if err != nil {
			return nil, fmt.Errorf("failed to compile %s schema: %w", def, err)
		}
		return s, nil
	}

	c := &Codec{}
	if c.instruction, err = compile("instruction"); err != nil {
		return nil, err
	}
	if c.account, err = compile("account"); err != nil {
		return nil, err
	}
	if c.asset, err = compile("asset"); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew is New for program start-up and tests.
func MustNew() *Codec {
	c, err := New()
	if err != nil {
		panic(err)
	}
	return c
}

func validate(s *jsonschema.Schema, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return domain.NewValidationError("body", fmt.Sprintf("malformed JSON: %v", err))
	}
	if _, err := dec.Token(); err != io.EOF {
		return domain.NewValidationError("body", "malformed JSON: trailing data")
	}
	if err := s.Validate(doc); err != nil {
		return domain.NewValidationError("body", err.Error())
	}
	return nil
}
