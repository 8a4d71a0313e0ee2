package translate

import (
	"fmt"

	"github.com/roach88/uqlt/uql"
)

// postgresOps: the shared SQL set plus native regex and all three array
// operators (PostgreSQL is the only dialect with native array types).
var postgresOps = opSet(append(sqlFamilyOps,
	uql.OpRegex,
	uql.OpArrayContains, uql.OpArrayOverlap, uql.OpArrayContained,
)...)

// postgresDialect emits PostgreSQL: double-quoted identifiers, $n
// placeholders, native ILIKE and ~, array operators, LIMIT/OFFSET.
type postgresDialect struct{}

func (postgresDialect) backend() Backend                    { return BackendPostgreSQL }
func (postgresDialect) supports() map[uql.Operator]bool     { return postgresOps }
func (postgresDialect) quote(seg string) string             { return `"` + seg + `"` }
func (postgresDialect) placeholder(n int) string            { return fmt.Sprintf("$%d", n) }
func (postgresDialect) likeEscape() string                  { return ` ESCAPE '\'` }
func (postgresDialect) extraLikeMeta() string               { return "" }

func (d postgresDialect) renderICase(w *sqlParams, col, pattern string) string {
	return col + " ILIKE " + w.bind(pattern) + d.likeEscape()
}

func (postgresDialect) renderIlike(w *sqlParams, col, pattern string) string {
	return col + " ILIKE " + w.bind(pattern)
}

func (postgresDialect) renderRegex(w *sqlParams, col, pattern string) (string, error) {
	return col + " ~ " + w.bind(pattern), nil
}

func (d postgresDialect) renderArray(w *sqlParams, col string, c *uql.Condition) (string, error) {
	switch c.Operator {
	case uql.OpArrayContains:
		return w.bind(uql.Native(c.Value)) + " = ANY(" + col + ")", nil
	case uql.OpArrayOverlap:
		return col + " && " + w.bind(uql.Native(c.Value)), nil
	case uql.OpArrayContained:
		return col + " <@ " + w.bind(uql.Native(c.Value)), nil
	default:
		return "", &UnsupportedOperatorError{Operator: c.Operator, Backend: d.backend()}
	}
}

func (postgresDialect) paging(q *uql.Query, hasOrder bool) (string, error) {
	switch {
	case q.Limit != nil && q.Offset != nil:
		return fmt.Sprintf("LIMIT %d OFFSET %d", *q.Limit, *q.Offset), nil
	case q.Limit != nil:
		return fmt.Sprintf("LIMIT %d", *q.Limit), nil
	case q.Offset != nil:
		return fmt.Sprintf("OFFSET %d", *q.Offset), nil
	default:
		return "", nil
	}
}
