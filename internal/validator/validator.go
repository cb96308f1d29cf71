// Package validator enforces the output document contract with a CUE schema.
// Validation failures mean the extractor or the projection broke the
// contract; crash loudly rather than let an editor consumer receive malformed
// data.
package validator

import (
	"embed"
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaFS embed.FS

// Validator validates introspection documents against the embedded CUE
// schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New creates a Validator with the embedded CUE schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()

	schemaBytes, err := schemaFS.ReadFile("schema.cue")
	if err != nil {
		return nil, fmt.Errorf("loading embedded schema: %w", err)
	}

	schema := ctx.CompileBytes(schemaBytes)
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", schema.Err())
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate checks that a document conforms to the schema. Returns nil if
// valid, or a detailed error explaining what failed.
func (v *Validator) Validate(doc interface{}) error {
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling document to JSON: %w", err)
	}
	return v.ValidateJSON(jsonBytes)
}

// ValidateJSON validates JSON bytes directly against the schema.
func (v *Validator) ValidateJSON(jsonBytes []byte) error {
	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return fmt.Errorf("compiling document as CUE: %w", dataValue.Err())
	}

	docDef := v.schema.LookupPath(cue.ParsePath("#Document"))
	if docDef.Err() != nil {
		return fmt.Errorf("looking up #Document definition: %w", docDef.Err())
	}

	unified := docDef.Unify(dataValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// ValidationErrors returns every validation error for a document, one
// message per error, or nil when the document is valid.
func (v *Validator) ValidationErrors(doc interface{}) []string {
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return []string{fmt.Sprintf("marshal error: %v", err)}
	}

	dataValue := v.ctx.CompileBytes(jsonBytes)
	if dataValue.Err() != nil {
		return []string{fmt.Sprintf("compile error: %v", dataValue.Err())}
	}

	docDef := v.schema.LookupPath(cue.ParsePath("#Document"))
	if docDef.Err() != nil {
		return []string{fmt.Sprintf("schema lookup error: %v", docDef.Err())}
	}

	unified := docDef.Unify(dataValue)
	err = unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var msgs []string
	for _, e := range errors.Errors(err) {
		msgs = append(msgs, e.Error())
	}
	return msgs
}
