package validation

import (
	"fmt"
	"strings"

	"bizcoach-workers/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Schema is a compiled JSON schema for one task type's job variables.
type Schema struct {
	name   string
	schema *gojsonschema.Schema
}

// Compile parses a JSON schema document.
func Compile(name, document string) (*Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(document))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}
	return &Schema{name: name, schema: s}, nil
}

// MustCompile is Compile for package-level schemas; it panics on a bad document.
func MustCompile(name, document string) *Schema {
	s, err := Compile(name, document)
	if err != nil {
		panic(err)
	}
	return s
}

// Check validates a raw JSON document and reports every violation.
func (s *Schema) Check(variables string) (*ValidationResult, error) {
	if strings.TrimSpace(variables) == "" {
		variables = "{}"
	}

	result, err := s.schema.Validate(gojsonschema.NewStringLoader(variables))
	if err != nil {
		return nil, err
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

// Validate returns an INVALID_INPUT StandardError when variables do not
// satisfy the schema or are not JSON at all.
func (s *Schema) Validate(variables string) error {
	result, err := s.Check(variables)
	if err != nil {
		return errors.NewInvalidInputError(fmt.Sprintf("%s: malformed variables: %v", s.name, err))
	}
	if result.Valid {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field, e.Message))
	}
	return errors.NewInvalidInputError(strings.Join(msgs, "; ")).
		WithMetadata("validationErrors", result.Errors)
}
