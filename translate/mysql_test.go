package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/uqlt/uql"
)

func TestMySQL_FullQuery(t *testing.T) {
	q := mustParse(t, `{
		"select": ["id", "name"],
		"from": "users",
		"where": {"must": [
			{"type": "condition", "field": "status", "operator": "eq", "value": "active"}
		]},
		"orderBy": [{"field": "name"}],
		"limit": 10,
		"offset": 20
	}`)

	text := textQuery(t, BackendMySQL, q)
	assert.Equal(t,
		"SELECT `id`, `name` FROM `users` WHERE (`status` = ?) ORDER BY `name` ASC LIMIT 20, 10;",
		text.Query)
	assert.Equal(t, []any{"active"}, text.Params)
}

func TestMySQL_OffsetWithoutLimitUsesSentinel(t *testing.T) {
	// MySQL cannot express OFFSET alone; the max row count stands in.
	q := mustParse(t, `{"from": "users", "offset": 40}`)
	text := textQuery(t, BackendMySQL, q)
	assert.Equal(t, "SELECT * FROM `users` LIMIT 40, 18446744073709551615;", text.Query)
}

func TestMySQL_Regexp(t *testing.T) {
	q := mustParse(t, `{
		"from": "users",
		"where": {"type": "condition", "field": "name", "operator": "regex", "value": "^A"}
	}`)

	text := textQuery(t, BackendMySQL, q)
	assert.Equal(t, "SELECT * FROM `users` WHERE (`name` REGEXP ?);", text.Query)
	assert.Equal(t, []any{"^A"}, text.Params)
}

func TestMySQL_DoubledEscapeClause(t *testing.T) {
	// Backslash is itself an escape in MySQL string literals, so the
	// ESCAPE clause carries a doubled backslash.
	q := mustParse(t, `{
		"from": "files",
		"where": {"type": "condition", "field": "name", "operator": "contains", "value": "10%"}
	}`)

	text := textQuery(t, BackendMySQL, q)
	assert.Equal(t, "SELECT * FROM `files` WHERE (`name` LIKE ? ESCAPE '\\\\');", text.Query)
	assert.Equal(t, []any{`%10\%%`}, text.Params)
}

func TestMySQL_ArrayContainsViaJSON(t *testing.T) {
	q := mustParse(t, `{
		"from": "posts",
		"where": {"type": "condition", "field": "tags", "operator": "array_contains", "value": "go"}
	}`)

	text := textQuery(t, BackendMySQL, q)
	assert.Equal(t, "SELECT * FROM `posts` WHERE (JSON_CONTAINS(`tags`, ?));", text.Query)
	// The candidate is JSON-encoded, not raw.
	assert.Equal(t, []any{`"go"`}, text.Params)
}

func TestMySQL_ArrayOverlapUnsupported(t *testing.T) {
	q := mustParse(t, `{
		"from": "posts",
		"where": {"type": "condition", "field": "tags", "operator": "array_overlap", "value": ["a"]}
	}`)

	tr, err := New(BackendMySQL)
	require.NoError(t, err)
	_, err = tr.Translate(q)

	var unsupported *UnsupportedOperatorError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, uql.OpArrayOverlap, unsupported.Operator)
	assert.Equal(t, BackendMySQL, unsupported.Backend)
}
