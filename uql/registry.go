package uql

import "fmt"

// Shape is the value shape an operator requires of its condition value.
type Shape int

const (
	// ShapeAny accepts any JSON value, including null (eq, neq).
	ShapeAny Shape = iota

	// ShapeScalar accepts a single string, number or bool (gt, gte, lt, lte).
	ShapeScalar

	// ShapeString accepts a string (pattern and regex operators).
	ShapeString

	// ShapeList accepts a non-empty list; an empty list is an arity
	// violation (in, nin, array_overlap, array_contained).
	ShapeList

	// ShapeRange accepts exactly a 2-element ordered [min, max] list with
	// min <= max, both numbers or both strings (between).
	ShapeRange

	// ShapeNone ignores the value entirely; it is normalized to Null at
	// construction time (exists, nexists).
	ShapeNone

	// ShapeElement accepts a scalar, never a list or object
	// (array_contains).
	ShapeElement

	// ShapeObject accepts an object (geo operators).
	ShapeObject
)

// Rule describes one operator's capability entry: the value shape it
// requires and the field-type hints it is compatible with. A nil
// FieldTypes set means every hint is acceptable.
type Rule struct {
	Shape      Shape
	FieldTypes []FieldType
}

func (r Rule) compatible(ft FieldType) bool {
	if ft == "" || ft == FieldUnknown || r.FieldTypes == nil {
		return true
	}
	for _, allowed := range r.FieldTypes {
		if allowed == ft {
			return true
		}
	}
	return false
}

// Registry is the operator capability table: operator -> Rule. It is
// immutable after construction; extension produces a new Registry via
// With, never in-place mutation, so a shared instance is safe for
// concurrent use.
type Registry struct {
	rules map[Operator]Rule
}

var orderedTypes = []FieldType{FieldString, FieldNumber, FieldDate, FieldDatetime}

var defaultRegistry = &Registry{rules: map[Operator]Rule{
	OpEq:  {Shape: ShapeAny},
	OpNeq: {Shape: ShapeAny},

	OpGt:  {Shape: ShapeScalar, FieldTypes: orderedTypes},
	OpGte: {Shape: ShapeScalar, FieldTypes: orderedTypes},
	OpLt:  {Shape: ShapeScalar, FieldTypes: orderedTypes},
	OpLte: {Shape: ShapeScalar, FieldTypes: orderedTypes},

	OpIn:  {Shape: ShapeList},
	OpNin: {Shape: ShapeList},

	OpExists:  {Shape: ShapeNone},
	OpNexists: {Shape: ShapeNone},

	OpBetween: {Shape: ShapeRange, FieldTypes: orderedTypes},

	OpContains:   {Shape: ShapeString, FieldTypes: []FieldType{FieldString}},
	OpNcontains:  {Shape: ShapeString, FieldTypes: []FieldType{FieldString}},
	OpIcontains:  {Shape: ShapeString, FieldTypes: []FieldType{FieldString}},
	OpStartsWith: {Shape: ShapeString, FieldTypes: []FieldType{FieldString}},
	OpEndsWith:   {Shape: ShapeString, FieldTypes: []FieldType{FieldString}},
	OpIlike:      {Shape: ShapeString, FieldTypes: []FieldType{FieldString}},
	OpRegex:      {Shape: ShapeString, FieldTypes: []FieldType{FieldString}},

	OpArrayContains:  {Shape: ShapeElement, FieldTypes: []FieldType{FieldArray}},
	OpArrayOverlap:   {Shape: ShapeList, FieldTypes: []FieldType{FieldArray}},
	OpArrayContained: {Shape: ShapeList, FieldTypes: []FieldType{FieldArray}},

	OpGeoWithin:     {Shape: ShapeObject, FieldTypes: []FieldType{FieldObject}},
	OpGeoIntersects: {Shape: ShapeObject, FieldTypes: []FieldType{FieldObject}},
}}

// DefaultRegistry returns the process-wide capability table. It is built
// once and must be treated as read-only.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Rule returns the entry for op; false when op is outside the closed set.
func (r *Registry) Rule(op Operator) (Rule, bool) {
	rule, ok := r.rules[op]
	return rule, ok
}

// With returns a new Registry containing every rule of r plus (or
// replacing) the given operator's rule. r itself is left untouched.
func (r *Registry) With(op Operator, rule Rule) *Registry {
	rules := make(map[Operator]Rule, len(r.rules)+1)
	for k, v := range r.rules {
		rules[k] = v
	}
	rules[op] = rule
	return &Registry{rules: rules}
}

// CheckValue validates a condition value against the operator's shape
// rule. A nil value is treated as Null.
func (r *Registry) CheckValue(op Operator, v Value) error {
	rule, ok := r.rules[op]
	if !ok {
		return &OperatorArityError{Operator: op, Message: "unknown operator"}
	}
	if v == nil {
		v = Null{}
	}

	switch rule.Shape {
	case ShapeAny, ShapeNone:
		return nil

	case ShapeScalar:
		if !isScalar(v) {
			return &OperatorArityError{Operator: op, Message: "requires a scalar value"}
		}
		return nil

	case ShapeString:
		if _, ok := v.(String); !ok {
			return &OperatorArityError{Operator: op, Message: "requires a string value"}
		}
		return nil

	case ShapeList:
		list, ok := v.(List)
		if !ok {
			return &OperatorArityError{Operator: op, Message: "requires a list value"}
		}
		if len(list) == 0 {
			return &OperatorArityError{Operator: op, Message: "requires a non-empty list"}
		}
		return nil

	case ShapeRange:
		return checkRange(op, v)

	case ShapeElement:
		if !isScalar(v) {
			return &OperatorArityError{Operator: op, Message: "requires a scalar value, not a list or object"}
		}
		return nil

	case ShapeObject:
		if _, ok := v.(Object); !ok {
			return &OperatorArityError{Operator: op, Message: "requires an object value"}
		}
		return nil

	default:
		return &OperatorArityError{Operator: op, Message: fmt.Sprintf("unhandled shape %d", rule.Shape)}
	}
}

// CheckFieldType validates an advisory field-type hint against the
// operator's compatibility set.
func (r *Registry) CheckFieldType(op Operator, ft FieldType) error {
	rule, ok := r.rules[op]
	if !ok {
		return &OperatorArityError{Operator: op, Message: "unknown operator"}
	}
	if !rule.compatible(ft) {
		return &OperatorFieldTypeError{Operator: op, FieldType: ft}
	}
	return nil
}

// checkRange enforces the between contract: exactly [min, max], both
// numbers or both strings, min <= max.
func checkRange(op Operator, v Value) error {
	list, ok := v.(List)
	if !ok || len(list) != 2 {
		return &OperatorArityError{Operator: op, Message: "requires a 2-element [min, max] list"}
	}

	switch min := list[0].(type) {
	case Number:
		max, ok := list[1].(Number)
		if !ok {
			return &OperatorArityError{Operator: op, Message: "min and max must be the same kind"}
		}
		if float64(min) > float64(max) {
			return &OperatorArityError{Operator: op, Message: "min must not exceed max"}
		}
	case String:
		max, ok := list[1].(String)
		if !ok {
			return &OperatorArityError{Operator: op, Message: "min and max must be the same kind"}
		}
		if string(min) > string(max) {
			return &OperatorArityError{Operator: op, Message: "min must not exceed max"}
		}
	default:
		return &OperatorArityError{Operator: op, Message: "bounds must be numbers or strings"}
	}
	return nil
}
