package cli

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/uqlt/translate"
	"github.com/roach88/uqlt/uql"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // Query file not found
	ErrCodeReadFailed  = "E003" // Query file unreadable
	ErrCodeDecodeError = "E004" // Document is not valid JSON/YAML
	ErrCodeNotObject   = "E005" // Document decoded to a non-object

	// Query validation errors
	ErrCodeStructural = "E101" // Malformed document shape
	ErrCodeIdentifier = "E102" // Invalid identifier
	ErrCodeArity      = "E103" // Operator/value shape mismatch
	ErrCodeFieldType  = "E104" // Operator/field_type mismatch
	ErrCodePagination = "E105" // Negative or fractional limit/offset

	// Translation errors
	ErrCodeUnsupportedOp = "E201" // Operator not supported by backend
	ErrCodeBackendLimit  = "E202" // Backend pagination constraint
)

// LoadError represents an error that occurred while loading a query file.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDocument reads a query file and decodes it into a raw document.
// YAML is a superset of JSON, so a single decoder handles both.
func LoadDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("query file not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeReadFailed, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeError, Message: fmt.Sprintf("decoding %s: %v", path, err)}
	}

	doc, err := toStringKeyed(raw)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadQuery reads, decodes and parses a query file in one step.
func LoadQuery(path string) (*uql.Query, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return uql.ParseDocument(doc)
}

// toStringKeyed normalizes the decoder's top-level output to a
// string-keyed map. yaml.v3 produces map[string]any for mappings with
// string keys; anything else is rejected here rather than deep in the
// parser.
func toStringKeyed(raw any) (map[string]any, error) {
	switch doc := raw.(type) {
	case map[string]any:
		return doc, nil
	case map[any]any:
		out := make(map[string]any, len(doc))
		for k, v := range doc {
			ks, ok := k.(string)
			if !ok {
				return nil, &LoadError{Code: ErrCodeNotObject, Message: fmt.Sprintf("document keys must be strings, got %T", k)}
			}
			out[ks] = v
		}
		return out, nil
	default:
		return nil, &LoadError{Code: ErrCodeNotObject, Message: fmt.Sprintf("document must be an object, got %T", raw)}
	}
}

// ClassifyError maps an error from the parser or a translator to a
// stable CLI error code.
func ClassifyError(err error) string {
	var (
		loadErr       *LoadError
		identErr      *uql.IdentifierError
		structErr     *uql.StructuralError
		arityErr      *uql.OperatorArityError
		fieldTypeErr  *uql.OperatorFieldTypeError
		unsupportedOp *translate.UnsupportedOperatorError
		pagingErr     *translate.PaginationConstraintError
	)

	switch {
	case errors.As(err, &loadErr):
		return loadErr.Code
	case errors.As(err, &identErr):
		return ErrCodeIdentifier
	case errors.As(err, &arityErr):
		return ErrCodeArity
	case errors.As(err, &fieldTypeErr):
		return ErrCodeFieldType
	case errors.As(err, &structErr):
		return ErrCodeStructural
	case errors.As(err, &unsupportedOp):
		return ErrCodeUnsupportedOp
	case errors.As(err, &pagingErr):
		return ErrCodeBackendLimit
	default:
		return ErrCodeGeneric
	}
}
