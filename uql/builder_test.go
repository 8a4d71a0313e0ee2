package uql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCond_Valid(t *testing.T) {
	cond, err := Cond("status", OpEq, String("active"))
	require.NoError(t, err)
	assert.Equal(t, "status", cond.Field)
	assert.Equal(t, OpEq, cond.Operator)
	assert.Equal(t, String("active"), cond.Value)
	assert.Equal(t, FieldType(""), cond.FieldType)
}

func TestCond_InvalidField(t *testing.T) {
	_, err := Cond("not a field", OpEq, String("x"))
	require.Error(t, err)
	assert.IsType(t, &IdentifierError{}, err)
}

func TestCond_ArityViolation(t *testing.T) {
	_, err := Cond("tags", OpIn, List{})
	require.Error(t, err)
	assert.IsType(t, &OperatorArityError{}, err)
}

func TestCond_NormalizesUnaryValue(t *testing.T) {
	// Whatever the caller passes, exists/nexists carry Null.
	cond, err := Cond("email", OpExists, String("ignored"))
	require.NoError(t, err)
	assert.Equal(t, Null{}, cond.Value)

	cond, err = Cond("email", OpNexists, nil)
	require.NoError(t, err)
	assert.Equal(t, Null{}, cond.Value)
}

func TestCondTyped_FieldTypeMismatch(t *testing.T) {
	_, err := CondTyped("age", OpContains, String("x"), FieldNumber)
	require.Error(t, err)
	assert.IsType(t, &OperatorFieldTypeError{}, err)
}

func TestFieldRef_Builders(t *testing.T) {
	eq, err := F("status").Eq(String("active"))
	require.NoError(t, err)
	assert.Equal(t, OpEq, eq.Operator)

	between, err := F("age").Between(Number(18), Number(65))
	require.NoError(t, err)
	assert.Equal(t, List{Number(18), Number(65)}, between.Value)

	in, err := F("role").In(String("admin"), String("editor"))
	require.NoError(t, err)
	assert.Equal(t, OpIn, in.Operator)
	assert.Len(t, in.Value, 2)

	typed, err := FT("name", FieldString).StartsWith("Jo")
	require.NoError(t, err)
	assert.Equal(t, FieldString, typed.FieldType)

	_, err = F("age").Between(Number(65), Number(18))
	require.Error(t, err)

	_, err = FT("age", FieldNumber).Icontains("x")
	require.Error(t, err)
}

func TestBooleanCombinators(t *testing.T) {
	a, err := F("a").Eq(Number(1))
	require.NoError(t, err)
	b, err := F("b").Eq(Number(2))
	require.NoError(t, err)

	and := AndOf(a, b)
	assert.Len(t, and.Exprs, 2)

	or := OrOf(a)
	assert.Len(t, or.Exprs, 1)

	not := Negate(or)
	assert.Same(t, or, not.Expr.(*OrExpr))
}
