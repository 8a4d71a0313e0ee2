package uql

// SemanticallyValid reports whether the boolean structure of a query's
// filter is well-formed: every And/Or has at least one child, every Not
// has exactly one, and no node is nil or of an unknown kind.
//
// This is a pure predicate: it never returns an error and never panics.
// Queries produced by Parse always satisfy it; the check exists for ASTs
// assembled programmatically without going through the parser.
func SemanticallyValid(q *Query) bool {
	if q == nil {
		return false
	}
	if q.Where == nil {
		return true
	}
	for _, e := range q.Where.Must {
		if !ExprSemanticallyValid(e) {
			return false
		}
	}
	for _, e := range q.Where.MustNot {
		if !ExprSemanticallyValid(e) {
			return false
		}
	}
	return true
}

// ExprSemanticallyValid is SemanticallyValid for a single filter
// expression.
func ExprSemanticallyValid(e Expr) bool {
	switch node := e.(type) {
	case *Condition:
		return node != nil

	case *AndExpr:
		if node == nil || len(node.Exprs) == 0 {
			return false
		}
		for _, child := range node.Exprs {
			if !ExprSemanticallyValid(child) {
				return false
			}
		}
		return true

	case *OrExpr:
		if node == nil || len(node.Exprs) == 0 {
			return false
		}
		for _, child := range node.Exprs {
			if !ExprSemanticallyValid(child) {
				return false
			}
		}
		return true

	case *NotExpr:
		return node != nil && node.Expr != nil && ExprSemanticallyValid(node.Expr)

	default:
		// nil Expr or a kind outside the sealed set.
		return false
	}
}
