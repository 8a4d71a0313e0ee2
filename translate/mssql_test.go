package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/uqlt/uql"
)

func TestMSSQL_FullQuery(t *testing.T) {
	q := mustParse(t, `{
		"select": ["id", "name"],
		"from": "users",
		"where": {"must": [
			{"type": "condition", "field": "status", "operator": "eq", "value": "active"},
			{"type": "condition", "field": "age", "operator": "lt", "value": 65}
		]},
		"orderBy": [{"field": "name", "order": "DESC"}],
		"limit": 10,
		"offset": 20
	}`)

	text := textQuery(t, BackendMSSQL, q)
	assert.Equal(t,
		`SELECT [id], [name] FROM [users] WHERE ([status] = @p1 AND [age] < @p2) ORDER BY [name] DESC OFFSET 20 ROWS FETCH NEXT 10 ROWS ONLY;`,
		text.Query)
	assert.Equal(t, []any{"active", int64(65)}, text.Params)
}

func TestMSSQL_PagingWithoutOrderInjectsNoopOrderBy(t *testing.T) {
	// OFFSET/FETCH is illegal without ORDER BY, so a deterministic no-op
	// ordering is injected.
	q := mustParse(t, `{"from": "users", "limit": 10}`)
	text := textQuery(t, BackendMSSQL, q)
	assert.Equal(t,
		`SELECT * FROM [users] ORDER BY (SELECT NULL) OFFSET 0 ROWS FETCH NEXT 10 ROWS ONLY;`,
		text.Query)
}

func TestMSSQL_OffsetOnly(t *testing.T) {
	q := mustParse(t, `{"from": "users", "offset": 5}`)
	text := textQuery(t, BackendMSSQL, q)
	assert.Equal(t,
		`SELECT * FROM [users] ORDER BY (SELECT NULL) OFFSET 5 ROWS;`,
		text.Query)
}

func TestMSSQL_BracketIsLikeMetacharacter(t *testing.T) {
	// T-SQL LIKE treats [ as a range opener, so literal [ is escaped too.
	q := mustParse(t, `{
		"from": "logs",
		"where": {"type": "condition", "field": "line", "operator": "contains", "value": "[error]"}
	}`)

	text := textQuery(t, BackendMSSQL, q)
	assert.Equal(t, `SELECT * FROM [logs] WHERE ([line] LIKE @p1 ESCAPE '\');`, text.Query)
	assert.Equal(t, []any{`%\[error]%`}, text.Params)
}

func TestMSSQL_RegexUnsupported(t *testing.T) {
	q := mustParse(t, `{
		"from": "users",
		"where": {"type": "condition", "field": "name", "operator": "regex", "value": "^A"}
	}`)

	tr, err := New(BackendMSSQL)
	require.NoError(t, err)
	_, err = tr.Translate(q)

	var unsupported *UnsupportedOperatorError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, uql.OpRegex, unsupported.Operator)
	assert.Equal(t, BackendMSSQL, unsupported.Backend)
}

func TestMSSQL_Icontains(t *testing.T) {
	q := mustParse(t, `{
		"from": "users",
		"where": {"type": "condition", "field": "name", "operator": "icontains", "value": "ann"}
	}`)

	text := textQuery(t, BackendMSSQL, q)
	assert.Equal(t,
		`SELECT * FROM [users] WHERE (LOWER([name]) LIKE LOWER(@p1) ESCAPE '\');`,
		text.Query)
	assert.Equal(t, []any{"%ann%"}, text.Params)
}
