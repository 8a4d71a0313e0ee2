package translate

import (
	"fmt"

	"github.com/roach88/uqlt/uql"
)

// UnsupportedOperatorError reports an operator that is valid in the AST
// but absent from the chosen backend's support table. Raised only at
// translate time.
type UnsupportedOperatorError struct {
	Operator uql.Operator
	Backend  Backend
}

func (e *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("operator %q is not supported by backend %q", e.Operator, e.Backend)
}

// PaginationConstraintError reports a pagination or ordering construct
// the backend cannot express and for which no safe auto-correction
// applies (e.g. OFFSET on Cassandra). Feature names the construct.
type PaginationConstraintError struct {
	Backend Backend
	Feature string
	Message string
}

func (e *PaginationConstraintError) Error() string {
	return fmt.Sprintf("backend %q cannot express %s: %s", e.Backend, e.Feature, e.Message)
}
