package uql

// Cond constructs a validated Condition. The field must be a dotted
// identifier (no wildcard), and the value must satisfy the operator's
// shape rule in the default registry. exists/nexists values are
// normalized to Null regardless of what the caller passes.
func Cond(field string, op Operator, value Value) (*Condition, error) {
	return CondTyped(field, op, value, "")
}

// CondTyped is Cond with an advisory field-type hint, which additionally
// must be compatible with the operator.
func CondTyped(field string, op Operator, value Value, ft FieldType) (*Condition, error) {
	if err := checkIdentifier(field, false, false); err != nil {
		return nil, err
	}
	reg := defaultRegistry
	if _, ok := reg.Rule(op); !ok {
		return nil, &OperatorArityError{Operator: op, Message: "unknown operator"}
	}
	if err := reg.CheckValue(op, value); err != nil {
		return nil, err
	}
	if err := reg.CheckFieldType(op, ft); err != nil {
		return nil, err
	}

	if value == nil || op == OpExists || op == OpNexists {
		value = Null{}
	}
	return &Condition{Field: field, Operator: op, Value: value, FieldType: ft}, nil
}

// AndOf builds a conjunction. The signature makes an empty child list
// unrepresentable.
func AndOf(first Expr, rest ...Expr) *AndExpr {
	return &AndExpr{Exprs: append([]Expr{first}, rest...)}
}

// OrOf builds a disjunction. The signature makes an empty child list
// unrepresentable.
func OrOf(first Expr, rest ...Expr) *OrExpr {
	return &OrExpr{Exprs: append([]Expr{first}, rest...)}
}

// Negate wraps an expression in a NotExpr.
func Negate(e Expr) *NotExpr {
	return &NotExpr{Expr: e}
}

// FieldRef is a fluent handle for building conditions against one field,
// mirroring the wire operators one method each.
//
//	age, err := uql.F("age").Gte(uql.Number(18))
type FieldRef struct {
	name      string
	fieldType FieldType
}

// F returns a FieldRef for the given dotted field name.
func F(name string) FieldRef {
	return FieldRef{name: name}
}

// FT returns a FieldRef carrying an advisory field-type hint.
func FT(name string, ft FieldType) FieldRef {
	return FieldRef{name: name, fieldType: ft}
}

func (f FieldRef) cond(op Operator, v Value) (*Condition, error) {
	return CondTyped(f.name, op, v, f.fieldType)
}

func (f FieldRef) Eq(v Value) (*Condition, error)  { return f.cond(OpEq, v) }
func (f FieldRef) Neq(v Value) (*Condition, error) { return f.cond(OpNeq, v) }
func (f FieldRef) Gt(v Value) (*Condition, error)  { return f.cond(OpGt, v) }
func (f FieldRef) Gte(v Value) (*Condition, error) { return f.cond(OpGte, v) }
func (f FieldRef) Lt(v Value) (*Condition, error)  { return f.cond(OpLt, v) }
func (f FieldRef) Lte(v Value) (*Condition, error) { return f.cond(OpLte, v) }

func (f FieldRef) In(values ...Value) (*Condition, error)  { return f.cond(OpIn, List(values)) }
func (f FieldRef) Nin(values ...Value) (*Condition, error) { return f.cond(OpNin, List(values)) }

func (f FieldRef) Exists() (*Condition, error)  { return f.cond(OpExists, Null{}) }
func (f FieldRef) Nexists() (*Condition, error) { return f.cond(OpNexists, Null{}) }

func (f FieldRef) Between(min, max Value) (*Condition, error) {
	return f.cond(OpBetween, List{min, max})
}

func (f FieldRef) Contains(s string) (*Condition, error)   { return f.cond(OpContains, String(s)) }
func (f FieldRef) Ncontains(s string) (*Condition, error)  { return f.cond(OpNcontains, String(s)) }
func (f FieldRef) Icontains(s string) (*Condition, error)  { return f.cond(OpIcontains, String(s)) }
func (f FieldRef) StartsWith(s string) (*Condition, error) { return f.cond(OpStartsWith, String(s)) }
func (f FieldRef) EndsWith(s string) (*Condition, error)   { return f.cond(OpEndsWith, String(s)) }
func (f FieldRef) Ilike(pattern string) (*Condition, error) {
	return f.cond(OpIlike, String(pattern))
}
func (f FieldRef) Regex(pattern string) (*Condition, error) {
	return f.cond(OpRegex, String(pattern))
}

func (f FieldRef) ArrayContains(v Value) (*Condition, error) {
	return f.cond(OpArrayContains, v)
}
func (f FieldRef) ArrayOverlap(values ...Value) (*Condition, error) {
	return f.cond(OpArrayOverlap, List(values))
}
func (f FieldRef) ArrayContained(values ...Value) (*Condition, error) {
	return f.cond(OpArrayContained, List(values))
}

func (f FieldRef) GeoWithin(geometry Object) (*Condition, error) {
	return f.cond(OpGeoWithin, geometry)
}
func (f FieldRef) GeoIntersects(geometry Object) (*Condition, error) {
	return f.cond(OpGeoIntersects, geometry)
}
