package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElastic_EmptyFilterIsMatchAll(t *testing.T) {
	q := mustParse(t, `{"from": "users"}`)
	doc := objectQuery(t, BackendElasticsearch, q)

	assert.Equal(t, "users", doc["index"])
	assert.Equal(t, map[string]any{"match_all": map[string]any{}}, doc["query"])
}

func TestElastic_BoolMustAndMustNot(t *testing.T) {
	q := mustParse(t, `{
		"from": "users",
		"where": {
			"must": [{"type": "condition", "field": "status", "operator": "eq", "value": "active"}],
			"must_not": [{"type": "condition", "field": "banned", "operator": "eq", "value": true}]
		}
	}`)

	doc := objectQuery(t, BackendElasticsearch, q)
	assert.Equal(t, map[string]any{"bool": map[string]any{
		"must": []any{
			map[string]any{"term": map[string]any{"status": "active"}},
		},
		"must_not": []any{
			map[string]any{"term": map[string]any{"banned": true}},
		},
	}}, doc["query"])
}

func TestElastic_LeafQueries(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		want map[string]any
	}{
		{
			name: "neq is negated term",
			doc:  `{"type": "condition", "field": "f", "operator": "neq", "value": "x"}`,
			want: map[string]any{"bool": map[string]any{"must_not": []any{
				map[string]any{"term": map[string]any{"f": "x"}},
			}}},
		},
		{
			name: "range gt",
			doc:  `{"type": "condition", "field": "f", "operator": "gt", "value": 5}`,
			want: map[string]any{"range": map[string]any{"f": map[string]any{"gt": int64(5)}}},
		},
		{
			name: "between collapses to one range",
			doc:  `{"type": "condition", "field": "f", "operator": "between", "value": [1, 9]}`,
			want: map[string]any{"range": map[string]any{"f": map[string]any{"gte": int64(1), "lte": int64(9)}}},
		},
		{
			name: "in is terms",
			doc:  `{"type": "condition", "field": "f", "operator": "in", "value": ["a", "b"]}`,
			want: map[string]any{"terms": map[string]any{"f": []any{"a", "b"}}},
		},
		{
			name: "exists",
			doc:  `{"type": "condition", "field": "f", "operator": "exists"}`,
			want: map[string]any{"exists": map[string]any{"field": "f"}},
		},
		{
			name: "nexists is negated exists",
			doc:  `{"type": "condition", "field": "f", "operator": "nexists"}`,
			want: map[string]any{"bool": map[string]any{"must_not": []any{
				map[string]any{"exists": map[string]any{"field": "f"}},
			}}},
		},
		{
			name: "contains is wrapped wildcard with escaping",
			doc:  `{"type": "condition", "field": "f", "operator": "contains", "value": "a*b"}`,
			want: map[string]any{"wildcard": map[string]any{"f": map[string]any{"value": `*a\*b*`}}},
		},
		{
			name: "starts_with is prefix",
			doc:  `{"type": "condition", "field": "f", "operator": "starts_with", "value": "Jo"}`,
			want: map[string]any{"prefix": map[string]any{"f": "Jo"}},
		},
		{
			name: "icontains is an and-match",
			doc:  `{"type": "condition", "field": "f", "operator": "icontains", "value": "big red"}`,
			want: map[string]any{"match": map[string]any{"f": map[string]any{
				"query": "big red", "operator": "and",
			}}},
		},
		{
			name: "ilike maps like wildcards onto wildcard query",
			doc:  `{"type": "condition", "field": "f", "operator": "ilike", "value": "jo%_n"}`,
			want: map[string]any{"wildcard": map[string]any{"f": map[string]any{
				"value": "jo*?n", "case_insensitive": true,
			}}},
		},
		{
			name: "regex",
			doc:  `{"type": "condition", "field": "f", "operator": "regex", "value": "a.*z"}`,
			want: map[string]any{"regexp": map[string]any{"f": "a.*z"}},
		},
		{
			name: "array_contains is term",
			doc:  `{"type": "condition", "field": "f", "operator": "array_contains", "value": "go"}`,
			want: map[string]any{"term": map[string]any{"f": "go"}},
		},
		{
			name: "array_overlap is terms",
			doc:  `{"type": "condition", "field": "f", "operator": "array_overlap", "value": ["a", "b"]}`,
			want: map[string]any{"terms": map[string]any{"f": []any{"a", "b"}}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := mustParse(t, `{"from": "idx", "where": `+tc.doc+`}`)
			doc := objectQuery(t, BackendElasticsearch, q)
			boolQ := doc["query"].(map[string]any)["bool"].(map[string]any)
			must := boolQ["must"].([]any)
			require.Len(t, must, 1)
			assert.Equal(t, tc.want, must[0])
		})
	}
}

func TestElastic_OrUsesShouldWithMinimumMatch(t *testing.T) {
	q := mustParse(t, `{
		"from": "users",
		"where": {"type": "or", "expressions": [
			{"type": "condition", "field": "a", "operator": "eq", "value": 1},
			{"type": "condition", "field": "b", "operator": "eq", "value": 2}
		]}
	}`)

	doc := objectQuery(t, BackendElasticsearch, q)
	must := doc["query"].(map[string]any)["bool"].(map[string]any)["must"].([]any)
	require.Len(t, must, 1)
	assert.Equal(t, map[string]any{"bool": map[string]any{
		"should": []any{
			map[string]any{"term": map[string]any{"a": int64(1)}},
			map[string]any{"term": map[string]any{"b": int64(2)}},
		},
		"minimum_should_match": 1,
	}}, must[0])
}

func TestElastic_ArrayContainedUsesScript(t *testing.T) {
	q := mustParse(t, `{
		"from": "posts",
		"where": {"type": "condition", "field": "tags", "operator": "array_contained", "value": ["a", "b"]}
	}`)

	doc := objectQuery(t, BackendElasticsearch, q)
	must := doc["query"].(map[string]any)["bool"].(map[string]any)["must"].([]any)
	script := must[0].(map[string]any)["script"].(map[string]any)["script"].(map[string]any)
	assert.Equal(t, "painless", script["lang"])
	assert.Contains(t, script["source"], "params.allowed")
	assert.Equal(t, map[string]any{"allowed": []any{"a", "b"}}, script["params"])
}

func TestElastic_GeoShape(t *testing.T) {
	q := mustParse(t, `{
		"from": "places",
		"where": {"type": "condition", "field": "area", "operator": "geo_intersects",
			"value": {"type": "Point", "coordinates": [1.5, 2.5]}}
	}`)

	doc := objectQuery(t, BackendElasticsearch, q)
	must := doc["query"].(map[string]any)["bool"].(map[string]any)["must"].([]any)
	geo := must[0].(map[string]any)["geo_shape"].(map[string]any)["area"].(map[string]any)
	assert.Equal(t, "intersects", geo["relation"])
	shape := geo["shape"].(map[string]any)
	assert.Equal(t, "Point", shape["type"])
}

func TestElastic_SourceSortAndPaging(t *testing.T) {
	q := mustParse(t, `{
		"select": ["id", "name"],
		"from": "users",
		"orderBy": [{"field": "name"}, {"field": "age", "order": "DESC"}],
		"limit": 10,
		"offset": 5
	}`)

	doc := objectQuery(t, BackendElasticsearch, q)
	assert.Equal(t, []any{"id", "name"}, doc["_source"])
	assert.Equal(t, []any{
		map[string]any{"name": map[string]any{"order": "asc"}},
		map[string]any{"age": map[string]any{"order": "desc"}},
	}, doc["sort"])
	assert.Equal(t, 10, doc["size"])
	assert.Equal(t, 5, doc["from"])
}
