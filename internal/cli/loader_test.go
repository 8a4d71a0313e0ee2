package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/uqlt/uql"
)

func writeQueryFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadQuery_JSON(t *testing.T) {
	path := writeQueryFile(t, "query.json", `{
		"from": "users",
		"where": {"type": "condition", "field": "age", "operator": "gte", "value": 18},
		"limit": 10
	}`)

	q, err := LoadQuery(path)
	require.NoError(t, err)
	assert.Equal(t, "users", q.From)
	require.NotNil(t, q.Limit)
	assert.Equal(t, 10, *q.Limit)
}

func TestLoadQuery_YAML(t *testing.T) {
	path := writeQueryFile(t, "query.yaml", `
from: users
select:
  - id
  - name
where:
  type: condition
  field: status
  operator: eq
  value: active
orderBy:
  - field: name
    order: DESC
limit: 5
`)

	q, err := LoadQuery(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, q.Select)
	require.Len(t, q.Where.Must, 1)

	cond := q.Where.Must[0].(*uql.Condition)
	assert.Equal(t, uql.OpEq, cond.Operator)
	assert.Equal(t, uql.String("active"), cond.Value)
	assert.Equal(t, uql.Desc, q.OrderBy[0].Order)
}

func TestLoadDocument_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDocument(filepath.Join(t.TempDir(), "absent.json"))
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, ErrCodeNotFound, loadErr.Code)
	})

	t.Run("undecodable content", func(t *testing.T) {
		path := writeQueryFile(t, "bad.json", `{"from": `)
		_, err := LoadDocument(path)
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, ErrCodeDecodeError, loadErr.Code)
	})

	t.Run("non-object document", func(t *testing.T) {
		path := writeQueryFile(t, "list.json", `[1, 2, 3]`)
		_, err := LoadDocument(path)
		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		assert.Equal(t, ErrCodeNotObject, loadErr.Code)
	})
}

func TestClassifyError(t *testing.T) {
	_, identErr := uql.Cond("bad name", uql.OpEq, uql.String("x"))
	require.Error(t, identErr)
	assert.Equal(t, ErrCodeIdentifier, ClassifyError(identErr))

	_, arityErr := uql.Cond("tags", uql.OpIn, uql.List{})
	require.Error(t, arityErr)
	assert.Equal(t, ErrCodeArity, ClassifyError(arityErr))

	_, ftErr := uql.CondTyped("age", uql.OpContains, uql.String("x"), uql.FieldNumber)
	require.Error(t, ftErr)
	assert.Equal(t, ErrCodeFieldType, ClassifyError(ftErr))

	_, structuralErr := uql.Parse([]byte(`{"select": ["id"]}`))
	require.Error(t, structuralErr)
	assert.Equal(t, ErrCodeStructural, ClassifyError(structuralErr))

	assert.Equal(t, ErrCodeGeneric, ClassifyError(os.ErrPermission))
}
