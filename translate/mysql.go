package translate

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/uqlt/uql"
)

// mysqlOps: the shared SQL set plus the native REGEXP operator and
// array_contains via JSON_CONTAINS. array_overlap/array_contained have no
// MySQL rendering and raise.
var mysqlOps = opSet(append(sqlFamilyOps,
	uql.OpRegex,
	uql.OpArrayContains,
)...)

// mysqlSentinelLimit is emitted when only an offset is requested:
// MySQL cannot express OFFSET without LIMIT, so the maximum row count
// stands in for "no limit".
const mysqlSentinelLimit = "18446744073709551615"

// mysqlDialect emits MySQL: backtick identifiers, ? placeholders,
// REGEXP, LIMIT offset, count pagination.
type mysqlDialect struct{}

func (mysqlDialect) backend() Backend                { return BackendMySQL }
func (mysqlDialect) supports() map[uql.Operator]bool { return mysqlOps }
func (mysqlDialect) quote(seg string) string         { return "`" + seg + "`" }
func (mysqlDialect) placeholder(int) string          { return "?" }

// MySQL string literals treat backslash as an escape, so the ESCAPE
// clause needs it doubled.
func (mysqlDialect) likeEscape() string    { return ` ESCAPE '\\'` }
func (mysqlDialect) extraLikeMeta() string { return "" }

func (d mysqlDialect) renderICase(w *sqlParams, col, pattern string) string {
	return "LOWER(" + col + ") LIKE LOWER(" + w.bind(pattern) + ")" + d.likeEscape()
}

func (mysqlDialect) renderIlike(w *sqlParams, col, pattern string) string {
	return "LOWER(" + col + ") LIKE LOWER(" + w.bind(pattern) + ")"
}

func (mysqlDialect) renderRegex(w *sqlParams, col, pattern string) (string, error) {
	return col + " REGEXP " + w.bind(pattern), nil
}

func (d mysqlDialect) renderArray(w *sqlParams, col string, c *uql.Condition) (string, error) {
	if c.Operator != uql.OpArrayContains {
		return "", &UnsupportedOperatorError{Operator: c.Operator, Backend: d.backend()}
	}
	// JSON_CONTAINS compares against a JSON-encoded candidate.
	encoded, err := json.Marshal(uql.Native(c.Value))
	if err != nil {
		return "", fmt.Errorf("encode array_contains candidate: %w", err)
	}
	return "JSON_CONTAINS(" + col + ", " + w.bind(string(encoded)) + ")", nil
}

func (mysqlDialect) paging(q *uql.Query, hasOrder bool) (string, error) {
	switch {
	case q.Limit != nil && q.Offset != nil:
		return fmt.Sprintf("LIMIT %d, %d", *q.Offset, *q.Limit), nil
	case q.Limit != nil:
		return fmt.Sprintf("LIMIT %d", *q.Limit), nil
	case q.Offset != nil:
		return fmt.Sprintf("LIMIT %d, %s", *q.Offset, mysqlSentinelLimit), nil
	default:
		return "", nil
	}
}
