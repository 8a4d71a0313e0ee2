package translate

import (
	"fmt"

	"github.com/roach88/uqlt/uql"
)

// mssqlOps is exactly the shared SQL set: T-SQL has no regex operator and
// no array types, so both families raise.
var mssqlOps = opSet(sqlFamilyOps...)

// mssqlDialect emits T-SQL: bracketed identifiers, @pN placeholders,
// OFFSET/FETCH pagination with an injected no-op ORDER BY when needed.
type mssqlDialect struct{}

func (mssqlDialect) backend() Backend                { return BackendMSSQL }
func (mssqlDialect) supports() map[uql.Operator]bool { return mssqlOps }
func (mssqlDialect) quote(seg string) string         { return "[" + seg + "]" }
func (mssqlDialect) placeholder(n int) string        { return fmt.Sprintf("@p%d", n) }
func (mssqlDialect) likeEscape() string              { return ` ESCAPE '\'` }

// T-SQL LIKE additionally treats [ as a metacharacter.
func (mssqlDialect) extraLikeMeta() string { return "[" }

func (d mssqlDialect) renderICase(w *sqlParams, col, pattern string) string {
	return "LOWER(" + col + ") LIKE LOWER(" + w.bind(pattern) + ")" + d.likeEscape()
}

func (mssqlDialect) renderIlike(w *sqlParams, col, pattern string) string {
	return "LOWER(" + col + ") LIKE LOWER(" + w.bind(pattern) + ")"
}

func (d mssqlDialect) renderRegex(*sqlParams, string, string) (string, error) {
	return "", &UnsupportedOperatorError{Operator: uql.OpRegex, Backend: d.backend()}
}

func (d mssqlDialect) renderArray(_ *sqlParams, _ string, c *uql.Condition) (string, error) {
	return "", &UnsupportedOperatorError{Operator: c.Operator, Backend: d.backend()}
}

// paging renders OFFSET/FETCH. SQL Server refuses OFFSET/FETCH without an
// ORDER BY, so a deterministic no-op ordering is injected when the caller
// supplied none.
func (mssqlDialect) paging(q *uql.Query, hasOrder bool) (string, error) {
	if q.Limit == nil && q.Offset == nil {
		return "", nil
	}

	clause := ""
	if !hasOrder {
		clause = "ORDER BY (SELECT NULL) "
	}

	offset := 0
	if q.Offset != nil {
		offset = *q.Offset
	}
	clause += fmt.Sprintf("OFFSET %d ROWS", offset)

	if q.Limit != nil {
		clause += fmt.Sprintf(" FETCH NEXT %d ROWS ONLY", *q.Limit)
	}
	return clause, nil
}
