package translate

import (
	"fmt"

	"github.com/roach88/uqlt/uql"
)

// oracleOps: the shared SQL set plus regex via the REGEXP_LIKE function.
// No array support.
var oracleOps = opSet(append(sqlFamilyOps, uql.OpRegex)...)

// oracleDialect emits Oracle SQL: double-quoted identifiers, :n
// placeholders, REGEXP_LIKE, and FETCH-FIRST/OFFSET-ROWS pagination
// instead of LIMIT/OFFSET tokens.
type oracleDialect struct{}

func (oracleDialect) backend() Backend                { return BackendOracle }
func (oracleDialect) supports() map[uql.Operator]bool { return oracleOps }
func (oracleDialect) quote(seg string) string         { return `"` + seg + `"` }
func (oracleDialect) placeholder(n int) string        { return fmt.Sprintf(":%d", n) }
func (oracleDialect) likeEscape() string              { return ` ESCAPE '\'` }
func (oracleDialect) extraLikeMeta() string           { return "" }

func (d oracleDialect) renderICase(w *sqlParams, col, pattern string) string {
	return "LOWER(" + col + ") LIKE LOWER(" + w.bind(pattern) + ")" + d.likeEscape()
}

func (oracleDialect) renderIlike(w *sqlParams, col, pattern string) string {
	return "LOWER(" + col + ") LIKE LOWER(" + w.bind(pattern) + ")"
}

func (oracleDialect) renderRegex(w *sqlParams, col, pattern string) (string, error) {
	return "REGEXP_LIKE(" + col + ", " + w.bind(pattern) + ")", nil
}

func (d oracleDialect) renderArray(_ *sqlParams, _ string, c *uql.Condition) (string, error) {
	return "", &UnsupportedOperatorError{Operator: c.Operator, Backend: d.backend()}
}

func (oracleDialect) paging(q *uql.Query, hasOrder bool) (string, error) {
	switch {
	case q.Limit != nil && q.Offset != nil:
		return fmt.Sprintf("OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", *q.Offset, *q.Limit), nil
	case q.Limit != nil:
		return fmt.Sprintf("FETCH FIRST %d ROWS ONLY", *q.Limit), nil
	case q.Offset != nil:
		return fmt.Sprintf("OFFSET %d ROWS", *q.Offset), nil
	default:
		return "", nil
	}
}
