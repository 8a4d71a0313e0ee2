package uql

// Expr is any node of the filter AST: a leaf Condition or one of the
// boolean combinators. The interface is sealed by the marker method so
// backend translators can type-switch exhaustively.
type Expr interface {
	expr() // Marker method - seals interface to this package
}

// Condition is the leaf node: one field, one operator, one value.
// Immutable once constructed; build via Cond / CondTyped or the parser so
// the capability registry has vetted the value shape.
type Condition struct {
	// Field is a dotted identifier naming the filtered field.
	Field string

	// Operator is one of the closed operator set.
	Operator Operator

	// Value carries the operand. Null for unary operators.
	Value Value

	// FieldType is the optional advisory type hint; empty when absent.
	FieldType FieldType
}

func (*Condition) expr() {}

// AndExpr is true when every child is true. Children are ordered and
// there is always at least one.
type AndExpr struct {
	Exprs []Expr
}

func (*AndExpr) expr() {}

// OrExpr is true when at least one child is true. Children are ordered
// and there is always at least one.
type OrExpr struct {
	Exprs []Expr
}

func (*OrExpr) expr() {}

// NotExpr negates exactly one child.
type NotExpr struct {
	Expr Expr
}

func (*NotExpr) expr() {}

// WhereClause groups filter expressions. Every entry of Must must hold;
// every entry of MustNot must not hold. Both lists default to empty.
type WhereClause struct {
	Must    []Expr
	MustNot []Expr
}

// Empty reports whether the clause carries no filter content at all.
func (w *WhereClause) Empty() bool {
	return w == nil || (len(w.Must) == 0 && len(w.MustNot) == 0)
}

// SortOrder is the direction of an OrderByItem.
type SortOrder string

const (
	Asc  SortOrder = "ASC"
	Desc SortOrder = "DESC"
)

// OrderByItem names one sort key. Order defaults to Asc when the wire
// document omits it.
type OrderByItem struct {
	Field string
	Order SortOrder
}

// Query is the parsed UQL document. From is always non-empty; everything
// else is optional. Instances are read-only after construction and safe
// for concurrent translation.
type Query struct {
	// Select lists projection items: dotted identifiers, identifiers with
	// a trailing "*" segment, or the single bare "*". Never an empty
	// list; nil means "no explicit projection" (same as ["*"]).
	Select []string

	// From is the dotted source name (table, collection, index, label).
	From string

	Where   *WhereClause
	OrderBy []OrderByItem

	// Limit and Offset are optional non-negative row bounds.
	Limit  *int
	Offset *int
}

// WildcardSelect reports whether the query projects every field, either
// implicitly (no select) or via the bare "*".
func (q *Query) WildcardSelect() bool {
	return len(q.Select) == 0 || (len(q.Select) == 1 && q.Select[0] == "*")
}
