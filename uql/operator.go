package uql

// Operator is the closed set of condition operators a UQL document may
// use. Whether a given backend can render an operator is a separate,
// translate-time concern; see package translate.
type Operator string

const (
	// Comparison
	OpEq  Operator = "eq"
	OpNeq Operator = "neq"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"

	// Membership
	OpIn  Operator = "in"
	OpNin Operator = "nin"

	// Existence
	OpExists  Operator = "exists"
	OpNexists Operator = "nexists"

	// Range
	OpBetween Operator = "between"

	// Strings
	OpContains   Operator = "contains"
	OpNcontains  Operator = "ncontains"
	OpIcontains  Operator = "icontains"
	OpStartsWith Operator = "starts_with"
	OpEndsWith   Operator = "ends_with"
	OpIlike      Operator = "ilike"
	OpRegex      Operator = "regex"

	// Arrays
	OpArrayContains  Operator = "array_contains"
	OpArrayOverlap   Operator = "array_overlap"
	OpArrayContained Operator = "array_contained"

	// Geospatial
	OpGeoWithin     Operator = "geo_within"
	OpGeoIntersects Operator = "geo_intersects"
)

// Operators returns every operator in declaration order.
func Operators() []Operator {
	return []Operator{
		OpEq, OpNeq, OpGt, OpGte, OpLt, OpLte,
		OpIn, OpNin,
		OpExists, OpNexists,
		OpBetween,
		OpContains, OpNcontains, OpIcontains, OpStartsWith, OpEndsWith, OpIlike, OpRegex,
		OpArrayContains, OpArrayOverlap, OpArrayContained,
		OpGeoWithin, OpGeoIntersects,
	}
}

// ParseOperator maps a wire string to an Operator. The second return is
// false for anything outside the closed set.
func ParseOperator(s string) (Operator, bool) {
	op := Operator(s)
	_, ok := defaultRegistry.rules[op]
	return op, ok
}
