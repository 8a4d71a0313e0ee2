package translate

import (
	"fmt"
	"strings"

	"github.com/roach88/uqlt/uql"
)

// elasticOps: every registered operator has an Elasticsearch rendering.
var elasticOps = opSet(uql.Operators()...)

// elasticTranslator emits an Elasticsearch search body. An empty filter
// becomes an explicit match_all so the body is always a runnable search.
type elasticTranslator struct{}

func (*elasticTranslator) Backend() Backend { return BackendElasticsearch }

func (t *elasticTranslator) Translate(q *uql.Query) (Artifact, error) {
	doc := map[string]any{
		"index": q.From,
	}

	query, err := t.buildQuery(q.Where)
	if err != nil {
		return nil, err
	}
	doc["query"] = query

	if !q.WildcardSelect() {
		source := make([]any, len(q.Select))
		for i, f := range q.Select {
			source[i] = f
		}
		doc["_source"] = source
	}

	if len(q.OrderBy) > 0 {
		sort := make([]any, len(q.OrderBy))
		for i, o := range q.OrderBy {
			dir := "asc"
			if o.Order == uql.Desc {
				dir = "desc"
			}
			sort[i] = map[string]any{o.Field: map[string]any{"order": dir}}
		}
		doc["sort"] = sort
	}

	if q.Limit != nil {
		doc["size"] = *q.Limit
	}
	if q.Offset != nil {
		doc["from"] = *q.Offset
	}

	return &ObjectQuery{Doc: doc}, nil
}

func (t *elasticTranslator) buildQuery(w *uql.WhereClause) (map[string]any, error) {
	if w == nil || w.Empty() {
		return map[string]any{"match_all": map[string]any{}}, nil
	}

	boolQ := map[string]any{}
	if len(w.Must) > 0 {
		must, err := t.renderChildren(w.Must)
		if err != nil {
			return nil, err
		}
		boolQ["must"] = must
	}
	if len(w.MustNot) > 0 {
		mustNot, err := t.renderChildren(w.MustNot)
		if err != nil {
			return nil, err
		}
		boolQ["must_not"] = mustNot
	}
	return map[string]any{"bool": boolQ}, nil
}

func (t *elasticTranslator) renderExpr(e uql.Expr) (map[string]any, error) {
	switch node := e.(type) {
	case *uql.Condition:
		return t.renderCondition(node)

	case *uql.AndExpr:
		children, err := t.renderChildren(node.Exprs)
		if err != nil {
			return nil, err
		}
		return map[string]any{"bool": map[string]any{"must": children}}, nil

	case *uql.OrExpr:
		children, err := t.renderChildren(node.Exprs)
		if err != nil {
			return nil, err
		}
		return map[string]any{"bool": map[string]any{
			"should":               children,
			"minimum_should_match": 1,
		}}, nil

	case *uql.NotExpr:
		sub, err := t.renderExpr(node.Expr)
		if err != nil {
			return nil, err
		}
		return map[string]any{"bool": map[string]any{"must_not": []any{sub}}}, nil

	default:
		return nil, fmt.Errorf("elasticsearch: unknown filter node %T", e)
	}
}

func (t *elasticTranslator) renderChildren(children []uql.Expr) ([]any, error) {
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

func (t *elasticTranslator) renderCondition(c *uql.Condition) (map[string]any, error) {
	field := c.Field
	mustNot := func(inner map[string]any) map[string]any {
		return map[string]any{"bool": map[string]any{"must_not": []any{inner}}}
	}

	switch c.Operator {
	case uql.OpEq:
		return map[string]any{"term": map[string]any{field: uql.Native(c.Value)}}, nil
	case uql.OpNeq:
		return mustNot(map[string]any{"term": map[string]any{field: uql.Native(c.Value)}}), nil

	case uql.OpGt:
		return rangeQuery(field, "gt", uql.Native(c.Value)), nil
	case uql.OpGte:
		return rangeQuery(field, "gte", uql.Native(c.Value)), nil
	case uql.OpLt:
		return rangeQuery(field, "lt", uql.Native(c.Value)), nil
	case uql.OpLte:
		return rangeQuery(field, "lte", uql.Native(c.Value)), nil

	case uql.OpBetween:
		bounds := c.Value.(uql.List)
		return map[string]any{"range": map[string]any{field: map[string]any{
			"gte": uql.Native(bounds[0]),
			"lte": uql.Native(bounds[1]),
		}}}, nil

	case uql.OpIn:
		return map[string]any{"terms": map[string]any{field: uql.Native(c.Value)}}, nil
	case uql.OpNin:
		return mustNot(map[string]any{"terms": map[string]any{field: uql.Native(c.Value)}}), nil

	case uql.OpExists:
		return map[string]any{"exists": map[string]any{"field": field}}, nil
	case uql.OpNexists:
		return mustNot(map[string]any{"exists": map[string]any{"field": field}}), nil

	case uql.OpContains:
		return wildcardQuery(field, "*"+escapeWildcard(string(c.Value.(uql.String)))+"*", false), nil
	case uql.OpNcontains:
		return mustNot(wildcardQuery(field, "*"+escapeWildcard(string(c.Value.(uql.String)))+"*", false)), nil

	// match with operator "and" gives analyzed, case-insensitive
	// substring-ish behavior without wildcard scan cost.
	case uql.OpIcontains:
		return map[string]any{"match": map[string]any{field: map[string]any{
			"query":    string(c.Value.(uql.String)),
			"operator": "and",
		}}}, nil

	case uql.OpStartsWith:
		return map[string]any{"prefix": map[string]any{field: string(c.Value.(uql.String))}}, nil
	case uql.OpEndsWith:
		return wildcardQuery(field, "*"+escapeWildcard(string(c.Value.(uql.String))), false), nil

	case uql.OpIlike:
		pattern := escapeWildcard(string(c.Value.(uql.String)))
		pattern = strings.ReplaceAll(pattern, "%", "*")
		pattern = strings.ReplaceAll(pattern, "_", "?")
		return wildcardQuery(field, pattern, true), nil

	case uql.OpRegex:
		return map[string]any{"regexp": map[string]any{field: string(c.Value.(uql.String))}}, nil

	// Term queries against array fields match elements.
	case uql.OpArrayContains:
		return map[string]any{"term": map[string]any{field: uql.Native(c.Value)}}, nil
	case uql.OpArrayOverlap:
		return map[string]any{"terms": map[string]any{field: uql.Native(c.Value)}}, nil

	// No native "subset of" query; a painless script checks every
	// element against the allowed list.
	case uql.OpArrayContained:
		return map[string]any{"script": map[string]any{
			"script": map[string]any{
				"lang": "painless",
				"source": "for (item in doc['" + field + "']) " +
					"{ if (!params.allowed.contains(item)) { return false } } return true",
				"params": map[string]any{"allowed": uql.Native(c.Value)},
			},
		}}, nil

	case uql.OpGeoWithin:
		return geoShapeQuery(field, "within", uql.Native(c.Value)), nil
	case uql.OpGeoIntersects:
		return geoShapeQuery(field, "intersects", uql.Native(c.Value)), nil

	default:
		return nil, &UnsupportedOperatorError{Operator: c.Operator, Backend: BackendElasticsearch}
	}
}

func rangeQuery(field, op string, v any) map[string]any {
	return map[string]any{"range": map[string]any{field: map[string]any{op: v}}}
}

func wildcardQuery(field, pattern string, caseInsensitive bool) map[string]any {
	inner := map[string]any{"value": pattern}
	if caseInsensitive {
		inner["case_insensitive"] = true
	}
	return map[string]any{"wildcard": map[string]any{field: inner}}
}

func geoShapeQuery(field, relation string, shape any) map[string]any {
	return map[string]any{"geo_shape": map[string]any{field: map[string]any{
		"shape":    shape,
		"relation": relation,
	}}}
}

// escapeWildcard backslash-escapes the wildcard metacharacters so
// literal text survives inside a wildcard query.
func escapeWildcard(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', '*', '?':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
