// Package schema checks rendered skill responses against a JSON Schema of
// the Open Builder response envelope.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const envelopeURL = "skill-response.schema.json"

//go:embed envelope.schema.json
var envelopeSchema []byte

// ErrMismatch is wrapped by every document rejection.
var ErrMismatch = errors.New("schema mismatch")

// Validator holds the compiled envelope schema. It is safe for concurrent
// use.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles the embedded envelope schema.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(envelopeURL, bytes.NewReader(envelopeSchema)); err != nil {
		return nil, fmt.Errorf("add envelope schema: %w", err)
	}
	compiled, err := compiler.Compile(envelopeURL)
	if err != nil {
		return nil, fmt.Errorf("compile envelope schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// Validate checks an encoded response document.
func (v *Validator) Validate(doc []byte) error {
	var decoded any
	if err := json.Unmarshal(doc, &decoded); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrMismatch, err)
	}
	if err := v.schema.Validate(decoded); err != nil {
		return fmt.Errorf("%w: %v", ErrMismatch, err)
	}
	return nil
}
