package uql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAny(t *testing.T) {
	v, err := FromAny(nil)
	require.NoError(t, err)
	assert.Equal(t, Null{}, v)

	v, err = FromAny("x")
	require.NoError(t, err)
	assert.Equal(t, String("x"), v)

	// YAML decodes integers as int, JSON as float64.
	v, err = FromAny(7)
	require.NoError(t, err)
	assert.Equal(t, Number(7), v)

	v, err = FromAny(7.5)
	require.NoError(t, err)
	assert.Equal(t, Number(7.5), v)

	v, err = FromAny([]any{"a", 1, nil})
	require.NoError(t, err)
	assert.Equal(t, List{String("a"), Number(1), Null{}}, v)

	v, err = FromAny(map[string]any{"type": "Point", "coordinates": []any{1.0, 2.0}})
	require.NoError(t, err)
	obj, ok := v.(Object)
	require.True(t, ok)
	assert.Equal(t, String("Point"), obj["type"])
}

func TestFromAny_RejectsNonStringKeys(t *testing.T) {
	_, err := FromAny(map[any]any{1: "x"})
	require.Error(t, err)
	assert.IsType(t, &StructuralError{}, err)

	// Nested rejection too.
	_, err = FromAny([]any{map[any]any{true: "x"}})
	require.Error(t, err)
}

func TestNative(t *testing.T) {
	// Whole numbers come back as int64 so drivers bind integers.
	assert.Equal(t, int64(42), Native(Number(42)))
	assert.Equal(t, 4.5, Native(Number(4.5)))
	assert.Nil(t, Native(Null{}))
	assert.Nil(t, Native(nil))
	assert.Equal(t, "x", Native(String("x")))
	assert.Equal(t, true, Native(Bool(true)))
	assert.Equal(t, []any{"a", int64(1)}, Native(List{String("a"), Number(1)}))
	assert.Equal(t,
		map[string]any{"k": int64(2)},
		Native(Object{"k": Number(2)}))
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(nil))
	assert.True(t, IsNull(Null{}))
	assert.False(t, IsNull(String("")))
	assert.False(t, IsNull(Number(0)))
}
