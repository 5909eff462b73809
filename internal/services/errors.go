package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFileNotFound      = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrJSONRecovery      = errors.New("could not extract valid JSON from response")
	ErrSchemaValidation  = errors.New("schema validation failed")
	ErrLLM               = errors.New("llm request failed")
	ErrStorage           = errors.New("storage error")
)

// FieldError is a single validation failure at a JSON path such as
// "education[1].institution".
type FieldError struct {
	Field   string
	Message string
}

type SchemaValidationError struct {
	Fields []FieldError
}

func (e *SchemaValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return fmt.Sprintf("%s: %s", ErrSchemaValidation.Error(), strings.Join(parts, "; "))
}

func (e *SchemaValidationError) Unwrap() error {
	return ErrSchemaValidation
}
