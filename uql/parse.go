package uql

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Parse decodes a JSON UQL document and structurally validates it into a
// Query. All shape rules are enforced here, so a Query returned by Parse
// never violates the model invariants; translators do not re-validate.
func Parse(data []byte) (*Query, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, structErr("", "invalid JSON: %v", err)
	}
	doc, ok := raw.(map[string]any)
	if !ok {
		return nil, structErr("", "document must be a JSON object, got %T", raw)
	}
	return ParseDocument(doc)
}

var queryKeys = map[string]bool{
	"select": true, "from": true, "where": true,
	"orderBy": true, "limit": true, "offset": true,
}

// ParseDocument structurally validates an already-decoded document (as
// produced by encoding/json or yaml.v3 into map[string]any).
func ParseDocument(doc map[string]any) (*Query, error) {
	for key := range doc {
		if !queryKeys[key] {
			return nil, structErr(key, "unknown field")
		}
	}

	q := &Query{}

	from, ok := doc["from"]
	if !ok {
		return nil, structErr("from", "required field is missing")
	}
	fromStr, ok := from.(string)
	if !ok {
		return nil, structErr("from", "must be a string, got %T", from)
	}
	fromStr = strings.TrimSpace(fromStr)
	if fromStr == "" {
		return nil, structErr("from", "must not be empty")
	}
	if err := checkIdentifier(fromStr, false, false); err != nil {
		return nil, err
	}
	q.From = fromStr

	if raw, ok := doc["select"]; ok {
		sel, err := parseSelect(raw)
		if err != nil {
			return nil, err
		}
		q.Select = sel
	}

	if raw, ok := doc["where"]; ok && raw != nil {
		where, err := parseWhere(raw)
		if err != nil {
			return nil, err
		}
		q.Where = where
	}

	if raw, ok := doc["orderBy"]; ok && raw != nil {
		order, err := parseOrderBy(raw)
		if err != nil {
			return nil, err
		}
		q.OrderBy = order
	}

	var err error
	if q.Limit, err = parseBound(doc, "limit"); err != nil {
		return nil, err
	}
	if q.Offset, err = parseBound(doc, "offset"); err != nil {
		return nil, err
	}

	return q, nil
}

func parseSelect(raw any) ([]string, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, structErr("select", "must be an array, got %T", raw)
	}
	if len(list) == 0 {
		return nil, structErr("select", "must not be empty")
	}

	fields := make([]string, len(list))
	star := false
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, structErr(fmt.Sprintf("select[%d]", i), "must be a string, got %T", item)
		}
		s = strings.TrimSpace(s)
		if s == "*" {
			star = true
		} else if err := checkIdentifier(s, false, true); err != nil {
			return nil, err
		}
		fields[i] = s
	}
	if star && len(fields) > 1 {
		return nil, structErr("select", "cannot contain \"*\" alongside explicit fields")
	}
	return fields, nil
}

// parseWhere accepts either a full WhereClause object ({"must": [...],
// "must_not": [...]}) or a single bare filter expression, which is
// auto-wrapped into {"must": [expr]}.
func parseWhere(raw any) (*WhereClause, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, structErr("where", "must be an object, got %T", raw)
	}

	_, hasMust := node["must"]
	_, hasMustNot := node["must_not"]
	if !hasMust && !hasMustNot {
		// Bare expression form.
		expr, err := parseExpr("where", raw)
		if err != nil {
			return nil, err
		}
		return &WhereClause{Must: []Expr{expr}}, nil
	}

	for key := range node {
		if key != "must" && key != "must_not" {
			return nil, structErr("where."+key, "unknown field")
		}
	}

	clause := &WhereClause{}
	var err error
	if hasMust {
		if clause.Must, err = parseExprList("where.must", node["must"]); err != nil {
			return nil, err
		}
	}
	if hasMustNot {
		if clause.MustNot, err = parseExprList("where.must_not", node["must_not"]); err != nil {
			return nil, err
		}
	}
	return clause, nil
}

func parseExprList(path string, raw any) ([]Expr, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, structErr(path, "must be an array, got %T", raw)
	}
	exprs := make([]Expr, len(list))
	for i, item := range list {
		expr, err := parseExpr(fmt.Sprintf("%s[%d]", path, i), item)
		if err != nil {
			return nil, err
		}
		exprs[i] = expr
	}
	return exprs, nil
}

// parseExpr validates one filter node. The wire format is a discriminated
// union on "type" with exactly four tags: condition, and, or, not.
func parseExpr(path string, raw any) (Expr, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, structErr(path, "filter node must be an object, got %T", raw)
	}

	tagRaw, ok := node["type"]
	if !ok {
		return nil, structErr(path, "filter node is missing its \"type\" discriminator")
	}
	tag, ok := tagRaw.(string)
	if !ok {
		return nil, structErr(path+".type", "must be a string, got %T", tagRaw)
	}

	switch tag {
	case "condition":
		return parseCondition(path, node)

	case "and", "or":
		if err := checkKeys(path, node, "type", "expressions"); err != nil {
			return nil, err
		}
		children, err := parseExprList(path+".expressions", node["expressions"])
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			return nil, structErr(path+".expressions", "boolean node requires at least one child")
		}
		if tag == "and" {
			return &AndExpr{Exprs: children}, nil
		}
		return &OrExpr{Exprs: children}, nil

	case "not":
		if err := checkKeys(path, node, "type", "expression"); err != nil {
			return nil, err
		}
		childRaw, ok := node["expression"]
		if !ok {
			return nil, structErr(path+".expression", "not node requires exactly one child")
		}
		child, err := parseExpr(path+".expression", childRaw)
		if err != nil {
			return nil, err
		}
		return &NotExpr{Expr: child}, nil

	default:
		return nil, structErr(path+".type", "unrecognized filter node type %q", tag)
	}
}

func parseCondition(path string, node map[string]any) (*Condition, error) {
	if err := checkKeys(path, node, "type", "field", "operator", "value", "field_type"); err != nil {
		return nil, err
	}

	fieldRaw, ok := node["field"]
	if !ok {
		return nil, structErr(path+".field", "required field is missing")
	}
	field, ok := fieldRaw.(string)
	if !ok {
		return nil, structErr(path+".field", "must be a string, got %T", fieldRaw)
	}

	opRaw, ok := node["operator"]
	if !ok {
		return nil, structErr(path+".operator", "required field is missing")
	}
	opStr, ok := opRaw.(string)
	if !ok {
		return nil, structErr(path+".operator", "must be a string, got %T", opRaw)
	}
	op, ok := ParseOperator(opStr)
	if !ok {
		return nil, structErr(path+".operator", "unknown operator %q", opStr)
	}

	var ft FieldType
	if ftRaw, ok := node["field_type"]; ok && ftRaw != nil {
		ftStr, ok := ftRaw.(string)
		if !ok {
			return nil, structErr(path+".field_type", "must be a string, got %T", ftRaw)
		}
		if ft, ok = ParseFieldType(ftStr); !ok {
			return nil, structErr(path+".field_type", "unknown field type %q", ftStr)
		}
	}

	value, err := FromAny(node["value"])
	if err != nil {
		return nil, err
	}

	return CondTyped(field, op, value, ft)
}

func parseOrderBy(raw any) ([]OrderByItem, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, structErr("orderBy", "must be an array, got %T", raw)
	}

	items := make([]OrderByItem, len(list))
	for i, entry := range list {
		path := fmt.Sprintf("orderBy[%d]", i)
		node, ok := entry.(map[string]any)
		if !ok {
			return nil, structErr(path, "must be an object, got %T", entry)
		}
		if err := checkKeys(path, node, "field", "order"); err != nil {
			return nil, err
		}

		fieldRaw, ok := node["field"]
		if !ok {
			return nil, structErr(path+".field", "required field is missing")
		}
		field, ok := fieldRaw.(string)
		if !ok {
			return nil, structErr(path+".field", "must be a string, got %T", fieldRaw)
		}
		if err := checkIdentifier(field, false, false); err != nil {
			return nil, err
		}

		order := Asc
		if orderRaw, ok := node["order"]; ok {
			orderStr, ok := orderRaw.(string)
			if !ok {
				return nil, structErr(path+".order", "must be a string, got %T", orderRaw)
			}
			switch SortOrder(orderStr) {
			case Asc, Desc:
				order = SortOrder(orderStr)
			default:
				return nil, structErr(path+".order", "must be ASC or DESC, got %q", orderStr)
			}
		}

		items[i] = OrderByItem{Field: field, Order: order}
	}
	return items, nil
}

// parseBound reads an optional non-negative integer (limit / offset).
// JSON decodes numbers as float64, YAML as int; both are accepted as long
// as the value is whole and non-negative.
func parseBound(doc map[string]any, key string) (*int, error) {
	raw, ok := doc[key]
	if !ok || raw == nil {
		return nil, nil
	}

	var n int
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return nil, structErr(key, "must be an integer, got %v", v)
		}
		n = int(v)
	case int:
		n = v
	case int64:
		n = int(v)
	default:
		return nil, structErr(key, "must be an integer, got %T", raw)
	}

	if n < 0 {
		return nil, structErr(key, "must not be negative, got %d", n)
	}
	return &n, nil
}

func checkKeys(path string, node map[string]any, allowed ...string) error {
	for key := range node {
		found := false
		for _, a := range allowed {
			if key == a {
				found = true
				break
			}
		}
		if !found {
			return structErr(path+"."+key, "unknown field")
		}
	}
	return nil
}
