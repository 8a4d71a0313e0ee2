package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const translateFixture = `{
	"select": ["id", "name"],
	"from": "users",
	"where": {"type": "condition", "field": "status", "operator": "eq", "value": "active"},
	"limit": 10
}`

func TestTranslateTextBackend(t *testing.T) {
	path := writeQueryFile(t, "query.json", translateFixture)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--backend", "postgresql"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `SELECT "id", "name" FROM "users"`)
	assert.Contains(t, output, "$1")
	assert.Contains(t, output, "param 1: active")
	// The value itself never appears inside the query text.
	assert.NotContains(t, output, `= 'active'`)
}

func TestTranslateJSONOutput(t *testing.T) {
	path := writeQueryFile(t, "query.json", translateFixture)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "-b", "mysql"})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "mysql", data["backend"])
	assert.Contains(t, data["query"], "LIMIT 10")
	assert.Equal(t, []any{"active"}, data["params"])
}

func TestTranslateObjectBackend(t *testing.T) {
	path := writeQueryFile(t, "query.json", translateFixture)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--backend", "mongodb"})

	err := cmd.Execute()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "users", doc["collection"])
	assert.NotNil(t, doc["filter"])
}

func TestTranslateUnknownBackend(t *testing.T) {
	path := writeQueryFile(t, "query.json", translateFixture)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--backend", "sqlite"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "unknown backend")
}

func TestTranslateUnsupportedOperator(t *testing.T) {
	path := writeQueryFile(t, "query.json", `{
		"from": "users",
		"where": {"type": "condition", "field": "name", "operator": "regex", "value": "^A"}
	}`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--backend", "mssql"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), ErrCodeUnsupportedOp)
}

func TestTranslatePaginationConstraint(t *testing.T) {
	path := writeQueryFile(t, "query.json", `{"from": "users", "offset": 10}`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--backend", "cassandra"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), ErrCodeBackendLimit)
}

func TestTranslateInvalidQueryDocument(t *testing.T) {
	path := writeQueryFile(t, "query.json", `{"from": "users", "limit": -2}`)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewTranslateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{path, "--backend", "postgresql"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), ErrCodeStructural)
}
