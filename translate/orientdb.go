package translate

import (
	"fmt"
	"strings"

	"github.com/roach88/uqlt/uql"
)

// orientdbOps: comparison, membership, existence, between and the
// positive pattern operators. OrientDB LIKE has no NOT LIKE form worth
// relying on across versions, so ncontains raises.
var orientdbOps = opSet(
	uql.OpEq, uql.OpNeq, uql.OpGt, uql.OpGte, uql.OpLt, uql.OpLte,
	uql.OpIn, uql.OpNin,
	uql.OpExists, uql.OpNexists,
	uql.OpBetween,
	uql.OpContains, uql.OpStartsWith, uql.OpEndsWith,
)

// orientdbTranslator emits OrientDB SQL: unquoted identifiers, ?
// placeholders, SKIP/LIMIT pagination.
type orientdbTranslator struct{}

func (*orientdbTranslator) Backend() Backend { return BackendOrientDB }

func (t *orientdbTranslator) Translate(q *uql.Query) (Artifact, error) {
	var params []any

	selectClause := "SELECT"
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
				frag, err := t.renderExpr(e, &params)
				if err != nil {
					return nil, err
				}
				frags[i] = "NOT (" + frag + ")"
			}
			groups = append(groups, "("+strings.Join(frags, " AND ")+")")
		}
	}
	if len(groups) > 0 {
		parts = append(parts, "WHERE "+strings.Join(groups, " AND "))
	}

	if len(q.OrderBy) > 0 {
		items := make([]string, len(q.OrderBy))
		for i, o := range q.OrderBy {
			dir := "ASC"
			if o.Order == uql.Desc {
				dir = "DESC"
			}
			items[i] = o.Field + " " + dir
		}
		parts = append(parts, "ORDER BY "+strings.Join(items, ", "))
	}

	if q.Offset != nil {
		parts = append(parts, fmt.Sprintf("SKIP %d", *q.Offset))
	}
	if q.Limit != nil {
		parts = append(parts, fmt.Sprintf("LIMIT %d", *q.Limit))
	}

	return &TextQuery{Query: strings.Join(parts, " ") + ";", Params: params}, nil
}

func (t *orientdbTranslator) renderExpr(e uql.Expr, params *[]any) (string, error) {
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
		return "", fmt.Errorf("orientdb: unknown filter node %T", e)
	}
}

func (t *orientdbTranslator) renderBool(children []uql.Expr, sep string, params *[]any) (string, error) {
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

func (t *orientdbTranslator) renderCondition(c *uql.Condition, params *[]any) (string, error) {
	if !orientdbOps[c.Operator] {
		return "", &UnsupportedOperatorError{Operator: c.Operator, Backend: BackendOrientDB}
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
		return c.Field + " <> " + bind(uql.Native(c.Value)), nil

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
		return c.Field + " BETWEEN " + bind(uql.Native(bounds[0])) +
			" AND " + bind(uql.Native(bounds[1])), nil

	case uql.OpIn, uql.OpNin:
		items := c.Value.(uql.List)
		marks := make([]string, len(items))
		for i, item := range items {
			marks[i] = bind(uql.Native(item))
		}
		kw := " IN ["
		if c.Operator == uql.OpNin {
			kw = " NOT IN ["
		}
		return c.Field + kw + strings.Join(marks, ", ") + "]", nil

	case uql.OpExists:
		return c.Field + " IS NOT NULL", nil
	case uql.OpNexists:
		return c.Field + " IS NULL", nil

	case uql.OpContains:
		return c.Field + " LIKE " + bind("%"+string(c.Value.(uql.String))+"%"), nil
	case uql.OpStartsWith:
		return c.Field + " LIKE " + bind(string(c.Value.(uql.String))+"%"), nil
	case uql.OpEndsWith:
		return c.Field + " LIKE " + bind("%"+string(c.Value.(uql.String))), nil

	default:
		return "", &UnsupportedOperatorError{Operator: c.Operator, Backend: BackendOrientDB}
	}
}
