package uql

import "strings"

// ValidIdentifier reports whether name matches the dotted identifier
// grammar: segments [A-Za-z_][A-Za-z0-9_]* joined by single dots, no
// empty segments. Pure function, no side effects.
func ValidIdentifier(name string) bool {
	return checkIdentifier(name, false, false) == nil
}

// ValidSelectItem reports whether name is valid in a select list: a plain
// dotted identifier, a dotted identifier with a trailing "*" segment
// (e.g. "schema.table.*"), or the bare "*".
func ValidSelectItem(name string) bool {
	return checkIdentifier(name, true, true) == nil
}

// checkIdentifier validates a dotted name. allowStar permits the bare
// "*"; allowTrailingStar permits a final ".*" segment.
func checkIdentifier(name string, allowStar, allowTrailingStar bool) error {
	raw := strings.TrimSpace(name)

	if raw == "*" {
		if allowStar {
			return nil
		}
		return &IdentifierError{Name: name}
	}

	if allowTrailingStar && strings.HasSuffix(raw, ".*") {
		raw = raw[:len(raw)-2]
		if raw == "" {
			return &IdentifierError{Name: name}
		}
	}

	for _, seg := range strings.Split(raw, ".") {
		if !validSegment(seg) {
			return &IdentifierError{Name: name}
		}
	}
	return nil
}

func validSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for i, r := range seg {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// Segments returns the dotted segments of an already-validated
// identifier, with a flag for a trailing "*" segment. Used by backend
// adapters when quoting.
func Segments(name string) (segs []string, trailingStar bool) {
	raw := strings.TrimSpace(name)
	if strings.HasSuffix(raw, ".*") {
		return strings.Split(raw[:len(raw)-2], "."), true
	}
	return strings.Split(raw, "."), false
}
