package translate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/roach88/uqlt/uql"
)

// mongoOps: every registered operator has a MongoDB rendering.
var mongoOps = opSet(uql.Operators()...)

// mongoTranslator emits a MongoDB find document. The filter key is
// always present, even when empty, so callers can pass it to a driver
// unconditionally.
type mongoTranslator struct{}

func (*mongoTranslator) Backend() Backend { return BackendMongoDB }

func (t *mongoTranslator) Translate(q *uql.Query) (Artifact, error) {
	doc := map[string]any{
		"collection": q.From,
	}

	filter, err := t.buildFilter(q.Where)
	if err != nil {
		return nil, err
	}
	doc["filter"] = filter

	if !q.WildcardSelect() {
		projection := map[string]any{}
		for _, f := range q.Select {
			projection[f] = 1
		}
		doc["projection"] = projection
	}

	if len(q.OrderBy) > 0 {
		sort := make([]any, len(q.OrderBy))
		for i, o := range q.OrderBy {
			dir := 1
			if o.Order == uql.Desc {
				dir = -1
			}
			sort[i] = []any{o.Field, dir}
		}
		doc["sort"] = sort
	}

	if q.Limit != nil {
		doc["limit"] = *q.Limit
	}
	if q.Offset != nil {
		doc["skip"] = *q.Offset
	}

	return &ObjectQuery{Doc: doc}, nil
}

// buildFilter combines the must conjunction with a $nor over the
// must_not entries ($nor of [e1, e2] holds when neither matches, which
// is the conjunction of their negations).
func (t *mongoTranslator) buildFilter(w *uql.WhereClause) (map[string]any, error) {
	if w == nil || w.Empty() {
		return map[string]any{}, nil
	}

	var docs []map[string]any
	for _, e := range w.Must {
		d, err := t.renderExpr(e)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if len(w.MustNot) > 0 {
		nor := make([]any, len(w.MustNot))
		for i, e := range w.MustNot {
			d, err := t.renderExpr(e)
			if err != nil {
				return nil, err
			}
			nor[i] = d
		}
		docs = append(docs, map[string]any{"$nor": nor})
	}

	if len(docs) == 1 {
		return docs[0], nil
	}
	joined := make([]any, len(docs))
	for i, d := range docs {
		joined[i] = d
	}
	return map[string]any{"$and": joined}, nil
}

func (t *mongoTranslator) renderExpr(e uql.Expr) (map[string]any, error) {
	switch node := e.(type) {
	case *uql.Condition:
		return t.renderCondition(node)

	case *uql.AndExpr:
		children, err := t.renderChildren(node.Exprs)
		if err != nil {
			return nil, err
		}
		return map[string]any{"$and": children}, nil

	case *uql.OrExpr:
		children, err := t.renderChildren(node.Exprs)
		if err != nil {
			return nil, err
		}
		return map[string]any{"$or": children}, nil

	case *uql.NotExpr:
		sub, err := t.renderExpr(node.Expr)
		if err != nil {
			return nil, err
		}
		return map[string]any{"$nor": []any{sub}}, nil

	default:
		return nil, fmt.Errorf("mongodb: unknown filter node %T", e)
	}
}

func (t *mongoTranslator) renderChildren(children []uql.Expr) ([]any, error) {
	out := make([]any, len(children))
	for i, child := range children {
		d, err := t.renderExpr(child)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func (t *mongoTranslator) renderCondition(c *uql.Condition) (map[string]any, error) {
	field := c.Field
	wrap := func(op string, v any) map[string]any {
		return map[string]any{field: map[string]any{op: v}}
	}

	switch c.Operator {
	case uql.OpEq:
		return wrap("$eq", uql.Native(c.Value)), nil
	case uql.OpNeq:
		return wrap("$ne", uql.Native(c.Value)), nil
	case uql.OpGt:
		return wrap("$gt", uql.Native(c.Value)), nil
	case uql.OpGte:
		return wrap("$gte", uql.Native(c.Value)), nil
	case uql.OpLt:
		return wrap("$lt", uql.Native(c.Value)), nil
	case uql.OpLte:
		return wrap("$lte", uql.Native(c.Value)), nil

	case uql.OpIn:
		return wrap("$in", uql.Native(c.Value)), nil
	case uql.OpNin:
		return wrap("$nin", uql.Native(c.Value)), nil

	case uql.OpBetween:
		bounds := c.Value.(uql.List)
		return map[string]any{field: map[string]any{
			"$gte": uql.Native(bounds[0]),
			"$lte": uql.Native(bounds[1]),
		}}, nil

	// A field "exists" only when present with a non-null value; a bare
	// $exists:true would match explicit nulls.
	case uql.OpExists:
		return map[string]any{field: map[string]any{
			"$exists": true,
			"$ne":     nil,
		}}, nil
	case uql.OpNexists:
		return map[string]any{"$or": []any{
			map[string]any{field: map[string]any{"$exists": false}},
			map[string]any{field: nil},
		}}, nil

	case uql.OpContains:
		return wrap("$regex", regexp.QuoteMeta(string(c.Value.(uql.String)))), nil
	case uql.OpNcontains:
		return wrap("$not", map[string]any{
			"$regex": regexp.QuoteMeta(string(c.Value.(uql.String))),
		}), nil
	case uql.OpIcontains:
		return map[string]any{field: map[string]any{
			"$regex":   regexp.QuoteMeta(string(c.Value.(uql.String))),
			"$options": "i",
		}}, nil
	case uql.OpStartsWith:
		return wrap("$regex", "^"+regexp.QuoteMeta(string(c.Value.(uql.String)))), nil
	case uql.OpEndsWith:
		return wrap("$regex", regexp.QuoteMeta(string(c.Value.(uql.String)))+"$"), nil

	case uql.OpIlike:
		return map[string]any{field: map[string]any{
			"$regex":   likeToRegex(string(c.Value.(uql.String))),
			"$options": "i",
		}}, nil

	case uql.OpRegex:
		return wrap("$regex", string(c.Value.(uql.String))), nil

	// Mongo equality against an array field matches elements, which is
	// exactly array_contains.
	case uql.OpArrayContains:
		return wrap("$eq", uql.Native(c.Value)), nil
	case uql.OpArrayOverlap:
		return wrap("$in", uql.Native(c.Value)), nil
	case uql.OpArrayContained:
		return wrap("$not", map[string]any{
			"$elemMatch": map[string]any{"$nin": uql.Native(c.Value)},
		}), nil

	case uql.OpGeoWithin:
		return wrap("$geoWithin", map[string]any{"$geometry": uql.Native(c.Value)}), nil
	case uql.OpGeoIntersects:
		return wrap("$geoIntersects", map[string]any{"$geometry": uql.Native(c.Value)}), nil

	default:
		return nil, &UnsupportedOperatorError{Operator: c.Operator, Backend: BackendMongoDB}
	}
}

// likeToRegex converts a SQL LIKE pattern into an anchored regular
// expression: regex metacharacters are escaped first, then % becomes .*
// and _ becomes . (neither is a regex metacharacter, so QuoteMeta
// leaves them alone).
func likeToRegex(pattern string) string {
	quoted := regexp.QuoteMeta(pattern)
	quoted = strings.ReplaceAll(quoted, "%", ".*")
	quoted = strings.ReplaceAll(quoted, "_", ".")
	return "^" + quoted + "$"
}
