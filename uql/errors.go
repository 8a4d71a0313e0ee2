package uql

import "fmt"

// IdentifierError reports a dotted name that does not match the identifier
// grammar (segments [A-Za-z_][A-Za-z0-9_]* joined by dots).
type IdentifierError struct {
	// Name is the offending identifier as supplied by the caller.
	Name string
}

func (e *IdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q", e.Name)
}

// StructuralError reports a malformed document shape: a missing "from",
// a filter node without a recognized type tag, a select list that mixes
// "*" with explicit fields, wrong container types, and so on.
//
// Structural errors are raised at parse time and prevent an invalid AST
// from ever existing. They are never deferred to translation.
type StructuralError struct {
	// Path locates the offending element ("where.must[2]", "select", ...).
	// May be empty when the error concerns the document as a whole.
	Path string

	// Message is a human-readable description.
	Message string
}

func (e *StructuralError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// OperatorArityError reports a condition value whose shape does not match
// the operator's registry rule: "between" without exactly two ordered
// elements, "in" with an empty list, a non-string "regex" pattern, etc.
type OperatorArityError struct {
	Operator Operator
	Message  string
}

func (e *OperatorArityError) Error() string {
	return fmt.Sprintf("operator %q: %s", e.Operator, e.Message)
}

// OperatorFieldTypeError reports a field_type hint that is incompatible
// with the condition's operator (e.g. a string operator on a field hinted
// as number). The hint is advisory: absent or "unknown" hints skip the
// check entirely.
type OperatorFieldTypeError struct {
	Operator  Operator
	FieldType FieldType
}

func (e *OperatorFieldTypeError) Error() string {
	return fmt.Sprintf("operator %q is not applicable to fields of type %q", e.Operator, e.FieldType)
}

// structErr is shorthand for building a *StructuralError.
func structErr(path, format string, args ...any) *StructuralError {
	return &StructuralError{Path: path, Message: fmt.Sprintf(format, args...)}
}
