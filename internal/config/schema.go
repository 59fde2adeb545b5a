package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/cathy-go/internal/utils"
)

//go:embed cathy.schema.json
var schemaJSON []byte

const schemaURL = "cathy.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// SchemaJSON returns the JSON Schema config files are validated against.
func SchemaJSON() []byte {
	return bytes.Clone(schemaJSON)
}

// validateDocument checks doc against the config schema. doc is round-tripped
// through JSON so TOML tables and Go structs validate the same way.
func validateDocument(doc any) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if err := schema.Validate(obj); err != nil {
		return schemaError(err)
	}
	return nil
}

// schemaError converts a jsonschema failure into a ValidationError for its
// first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Err: err}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ValidationError{
		Path: utils.JSONPointerToPath(ve.InstanceLocation),
		Err:  errors.New(ve.Message),
	}
}
