package translate

import (
	"fmt"
	"strings"

	"github.com/roach88/uqlt/uql"
)

// neo4jOps: comparison, membership, existence, between, the Cypher
// string predicates and =~ regex. Cypher has no case-insensitive LIKE
// form, so icontains/ilike raise.
var neo4jOps = opSet(
	uql.OpEq, uql.OpNeq, uql.OpGt, uql.OpGte, uql.OpLt, uql.OpLte,
	uql.OpIn, uql.OpNin,
	uql.OpExists, uql.OpNexists,
	uql.OpBetween,
	uql.OpContains, uql.OpNcontains, uql.OpStartsWith, uql.OpEndsWith,
	uql.OpRegex,
)

// neo4jTranslator emits Cypher against a single node variable n bound to
// the source label: MATCH (n:Label) WHERE ... RETURN ... with $n
// parameters and inline SKIP/LIMIT.
type neo4jTranslator struct{}

func (*neo4jTranslator) Backend() Backend { return BackendNeo4j }

func (t *neo4jTranslator) Translate(q *uql.Query) (Artifact, error) {
	var params []any

	parts := []string{"MATCH (n:" + q.From + ")"}

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

	if q.WildcardSelect() {
		parts = append(parts, "RETURN n")
	} else {
		items := make([]string, len(q.Select))
		for i, f := range q.Select {
			items[i] = "n." + f
		}
		parts = append(parts, "RETURN "+strings.Join(items, ", "))
	}

	if len(q.OrderBy) > 0 {
		items := make([]string, len(q.OrderBy))
		for i, o := range q.OrderBy {
			dir := "ASC"
			if o.Order == uql.Desc {
				dir = "DESC"
			}
			items[i] = "n." + o.Field + " " + dir
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

func (t *neo4jTranslator) renderExpr(e uql.Expr, params *[]any) (string, error) {
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
		return "", fmt.Errorf("neo4j: unknown filter node %T", e)
	}
}

func (t *neo4jTranslator) renderBool(children []uql.Expr, sep string, params *[]any) (string, error) {
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

func (t *neo4jTranslator) renderCondition(c *uql.Condition, params *[]any) (string, error) {
	if !neo4jOps[c.Operator] {
		return "", &UnsupportedOperatorError{Operator: c.Operator, Backend: BackendNeo4j}
	}

	bind := func(v any) string {
		*params = append(*params, v)
		return fmt.Sprintf("$%d", len(*params))
	}
	prop := "n." + c.Field

	switch c.Operator {
	case uql.OpEq:
		if uql.IsNull(c.Value) {
			return prop + " IS NULL", nil
		}
		return prop + " = " + bind(uql.Native(c.Value)), nil

	case uql.OpNeq:
		if uql.IsNull(c.Value) {
			return prop + " IS NOT NULL", nil
		}
		return prop + " <> " + bind(uql.Native(c.Value)), nil

	case uql.OpGt:
		return prop + " > " + bind(uql.Native(c.Value)), nil
	case uql.OpGte:
		return prop + " >= " + bind(uql.Native(c.Value)), nil
	case uql.OpLt:
		return prop + " < " + bind(uql.Native(c.Value)), nil
	case uql.OpLte:
		return prop + " <= " + bind(uql.Native(c.Value)), nil

	case uql.OpBetween:
		bounds := c.Value.(uql.List)
		return "(" + prop + " >= " + bind(uql.Native(bounds[0])) +
			" AND " + prop + " <= " + bind(uql.Native(bounds[1])) + ")", nil

	// Cypher IN compares against a list parameter, not expanded marks.
	case uql.OpIn:
		return prop + " IN " + bind(uql.Native(c.Value)), nil
	case uql.OpNin:
		return "NOT (" + prop + " IN " + bind(uql.Native(c.Value)) + ")", nil

	case uql.OpExists:
		return prop + " IS NOT NULL", nil
	case uql.OpNexists:
		return prop + " IS NULL", nil

	case uql.OpContains:
		return prop + " CONTAINS " + bind(string(c.Value.(uql.String))), nil
	case uql.OpNcontains:
		return "NOT (" + prop + " CONTAINS " + bind(string(c.Value.(uql.String))) + ")", nil
	case uql.OpStartsWith:
		return prop + " STARTS WITH " + bind(string(c.Value.(uql.String))), nil
	case uql.OpEndsWith:
		return prop + " ENDS WITH " + bind(string(c.Value.(uql.String))), nil

	case uql.OpRegex:
		return prop + " =~ " + bind(string(c.Value.(uql.String))), nil

	default:
		return "", &UnsupportedOperatorError{Operator: c.Operator, Backend: BackendNeo4j}
	}
}
