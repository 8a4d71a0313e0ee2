package uql

// FieldType is an advisory hint about the type of the field a condition
// filters on. When present (and not FieldUnknown) it narrows the
// operator-compatibility check at construction time. It never changes how
// a backend renders the condition.
type FieldType string

const (
	FieldString   FieldType = "string"
	FieldNumber   FieldType = "number"
	FieldBoolean  FieldType = "boolean"
	FieldDate     FieldType = "date"
	FieldDatetime FieldType = "datetime"
	FieldArray    FieldType = "array"
	FieldObject   FieldType = "object"
	FieldUnknown  FieldType = "unknown"
)

// ParseFieldType maps a wire string to a FieldType; false for anything
// outside the enumeration.
func ParseFieldType(s string) (FieldType, bool) {
	switch ft := FieldType(s); ft {
	case FieldString, FieldNumber, FieldBoolean, FieldDate, FieldDatetime,
		FieldArray, FieldObject, FieldUnknown:
		return ft, true
	default:
		return "", false
	}
}
