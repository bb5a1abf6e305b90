package model

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchemaViolation marks parser output that does not have the document
// shape. Callers keep their previous document when they see it.
var ErrSchemaViolation = errors.New("schema violation")

//go:embed resume.schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// ValidateJSON validates raw parser output against resume.schema.json.
func ValidateJSON(b []byte) error {
	return validate(gojsonschema.NewBytesLoader(b))
}

func validate(doc gojsonschema.JSONLoader) error {
	res, err := gojsonschema.Validate(schemaLoader, doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(msgs, "; "))
}

// SchemaJSON returns the document schema, for embedding in parser prompts.
func SchemaJSON() []byte {
	return append([]byte(nil), schemaJSON...)
}
