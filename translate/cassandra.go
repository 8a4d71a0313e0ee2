package translate

import (
	"fmt"
	"strings"

	"github.com/roach88/uqlt/uql"
)

// cassandraOps: comparison, membership, existence, between and the
// case-sensitive pattern operators. No icontains/ilike (CQL LIKE is
// case-sensitive only), no regex, no arrays, no geo.
var cassandraOps = opSet(
	uql.OpEq, uql.OpNeq, uql.OpGt, uql.OpGte, uql.OpLt, uql.OpLte,
	uql.OpIn, uql.OpNin,
	uql.OpExists, uql.OpNexists,
	uql.OpBetween,
	uql.OpContains, uql.OpNcontains, uql.OpStartsWith, uql.OpEndsWith,
)

// cassandraInverse maps leaf operators to their negation. must_not
// entries prefer operator inversion over wrapping in NOT, which CQL
// handles poorly.
var cassandraInverse = map[uql.Operator]uql.Operator{
	uql.OpEq:  uql.OpNeq,
	uql.OpNeq: uql.OpEq,
	uql.OpGt:  uql.OpLte,
	uql.OpGte: uql.OpLt,
	uql.OpLt:  uql.OpGte,
	uql.OpLte: uql.OpGt,
	uql.OpIn:  uql.OpNin,
	uql.OpNin: uql.OpIn,

	uql.OpExists:  uql.OpNexists,
	uql.OpNexists: uql.OpExists,

	uql.OpContains:  uql.OpNcontains,
	uql.OpNcontains: uql.OpContains,
}

// cassandraTranslator emits CQL with ? placeholders. CQL cannot express
// OFFSET at all, and ORDER BY is only meaningful with partition-key
// context this translator does not have, so both raise
// PaginationConstraintError rather than being dropped silently.
type cassandraTranslator struct{}

func (*cassandraTranslator) Backend() Backend { return BackendCassandra }

func (t *cassandraTranslator) Translate(q *uql.Query) (Artifact, error) {
	if q.Offset != nil {
		return nil, &PaginationConstraintError{
			Backend: BackendCassandra,
			Feature: "OFFSET",
			Message: "CQL has no offset construct",
		}
	}
	if len(q.OrderBy) > 0 {
		return nil, &PaginationConstraintError{
			Backend: BackendCassandra,
			Feature: "ORDER BY",
			Message: "ordering requires partition-key clustering context",
		}
	}

	var params []any

	selectClause := "SELECT *"
	if !q.WildcardSelect() {
		selectClause = "SELECT " + strings.Join(q.Select, ", ")
	}
	parts := []string{selectClause, "FROM " + q.From}

	var groups []string
	if q.Where != nil {
		if len(q.Where.Must) > 0 {
			frags := make([]string, len(q.Where.Must))
			for i, e := range q.Where.Must {
				frag, err := t.renderExpr(e, &params)
				if err != nil {
					return nil, err
				}
				frags[i] = frag
			}
			groups = append(groups, "("+strings.Join(frags, " AND ")+")")
		}
		if len(q.Where.MustNot) > 0 {
			frags := make([]string, len(q.Where.MustNot))
			for i, e := range q.Where.MustNot {
				frag, err := t.renderNegated(e, &params)
				if err != nil {
					return nil, err
				}
				frags[i] = frag
			}
			groups = append(groups, "("+strings.Join(frags, " AND ")+")")
		}
	}
	if len(groups) > 0 {
		parts = append(parts, "WHERE "+strings.Join(groups, " AND "))
	}

	if q.Limit != nil {
		parts = append(parts, fmt.Sprintf("LIMIT %d", *q.Limit))
	}

	return &TextQuery{Query: strings.Join(parts, " ") + ";", Params: params}, nil
}

// renderNegated prefers inverting a leaf condition's operator and falls
// back to NOT (...) for boolean nodes and uninvertible operators.
func (t *cassandraTranslator) renderNegated(e uql.Expr, params *[]any) (string, error) {
	if cond, ok := e.(*uql.Condition); ok {
		if inv, ok := cassandraInverse[cond.Operator]; ok {
			flipped := &uql.Condition{
				Field:     cond.Field,
				Operator:  inv,
				Value:     cond.Value,
				FieldType: cond.FieldType,
			}
			return t.renderCondition(flipped, params)
		}
	}
	frag, err := t.renderExpr(e, params)
	if err != nil {
		return "", err
	}
	return "NOT (" + frag + ")", nil
}

func (t *cassandraTranslator) renderExpr(e uql.Expr, params *[]any) (string, error) {
	switch node := e.(type) {
	case *uql.Condition:
		return t.renderCondition(node, params)

	case *uql.AndExpr:
		return t.renderBool(node.Exprs, " AND ", params)

	case *uql.OrExpr:
		return t.renderBool(node.Exprs, " OR ", params)

	case *uql.NotExpr:
		sub, err := t.renderExpr(node.Expr, params)
		if err != nil {
			return "", err
		}
		return "NOT (" + sub + ")", nil

	default:
		return "", fmt.Errorf("cassandra: unknown filter node %T", e)
	}
}

func (t *cassandraTranslator) renderBool(children []uql.Expr, sep string, params *[]any) (string, error) {
	frags := make([]string, len(children))
	for i, child := range children {
		frag, err := t.renderExpr(child, params)
		if err != nil {
			return "", err
		}
		frags[i] = frag
	}
	return "(" + strings.Join(frags, sep) + ")", nil
}

func (t *cassandraTranslator) renderCondition(c *uql.Condition, params *[]any) (string, error) {
	if !cassandraOps[c.Operator] {
		return "", &UnsupportedOperatorError{Operator: c.Operator, Backend: BackendCassandra}
	}

	bind := func(v any) string {
		*params = append(*params, v)
		return "?"
	}

	switch c.Operator {
	case uql.OpEq:
		if uql.IsNull(c.Value) {
			return c.Field + " IS NULL", nil
		}
		return c.Field + " = " + bind(uql.Native(c.Value)), nil

	case uql.OpNeq:
		if uql.IsNull(c.Value) {
			return c.Field + " IS NOT NULL", nil
		}
		return c.Field + " != " + bind(uql.Native(c.Value)), nil

	case uql.OpGt:
		return c.Field + " > " + bind(uql.Native(c.Value)), nil
	case uql.OpGte:
		return c.Field + " >= " + bind(uql.Native(c.Value)), nil
	case uql.OpLt:
		return c.Field + " < " + bind(uql.Native(c.Value)), nil
	case uql.OpLte:
		return c.Field + " <= " + bind(uql.Native(c.Value)), nil

	case uql.OpBetween:
		bounds := c.Value.(uql.List)
		return "(" + c.Field + " >= " + bind(uql.Native(bounds[0])) +
			" AND " + c.Field + " <= " + bind(uql.Native(bounds[1])) + ")", nil

	case uql.OpIn, uql.OpNin:
		items := c.Value.(uql.List)
		marks := make([]string, len(items))
		for i, item := range items {
			marks[i] = bind(uql.Native(item))
		}
		kw := " IN ("
		if c.Operator == uql.OpNin {
			kw = " NOT IN ("
		}
		return c.Field + kw + strings.Join(marks, ", ") + ")", nil

	case uql.OpExists:
		return c.Field + " IS NOT NULL", nil
	case uql.OpNexists:
		return c.Field + " IS NULL", nil

	case uql.OpContains:
		return c.Field + " LIKE " + bind("%"+string(c.Value.(uql.String))+"%"), nil
	case uql.OpNcontains:
		return c.Field + " NOT LIKE " + bind("%"+string(c.Value.(uql.String))+"%"), nil
	case uql.OpStartsWith:
		return c.Field + " LIKE " + bind(string(c.Value.(uql.String))+"%"), nil
	case uql.OpEndsWith:
		return c.Field + " LIKE " + bind("%"+string(c.Value.(uql.String))), nil

	default:
		return "", &UnsupportedOperatorError{Operator: c.Operator, Backend: BackendCassandra}
	}
}
