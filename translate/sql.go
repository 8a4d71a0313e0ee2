package translate

import (
	"strings"

	"github.com/roach88/uqlt/uql"
)

// sqlDialect captures everything that differs between the SQL dialects:
// quoting, placeholder notation, LIKE escaping, regex/array rendering and
// pagination quirks. The shared walk lives in sqlTranslator.
type sqlDialect interface {
	backend() Backend
	supports() map[uql.Operator]bool

	// quote quotes a single already-validated identifier segment.
	quote(seg string) string

	// placeholder renders the n-th (1-based) parameter marker.
	placeholder(n int) string

	// likeEscape is the ESCAPE clause appended to LIKE predicates whose
	// pattern had metacharacters escaped (empty when not needed).
	likeEscape() string

	// extraLikeMeta lists dialect metacharacters to escape in LIKE
	// literals beyond the standard % and _.
	extraLikeMeta() string

	// renderICase emits a case-insensitive LIKE against an
	// escaped pattern parameter (icontains).
	renderICase(w *sqlParams, col, pattern string) string

	// renderIlike emits the ilike operator; the caller-supplied pattern
	// passes through untouched (it is itself a LIKE pattern).
	renderIlike(w *sqlParams, col, pattern string) string

	// renderRegex emits the regex operator. Only called when the support
	// table contains it.
	renderRegex(w *sqlParams, col, pattern string) (string, error)

	// renderArray emits one of the array operators. Only called when the
	// support table contains the condition's operator.
	renderArray(w *sqlParams, col string, c *uql.Condition) (string, error)

	// paging renders the pagination tail (may be empty). hasOrder tells
	// dialects that must inject a no-op ORDER BY whether one exists.
	paging(q *uql.Query, hasOrder bool) (string, error)
}

// sqlParams accumulates bound parameters during one translation; binding
// a value returns its placeholder, so placeholder order and parameter
// order agree by construction.
type sqlParams struct {
	d      sqlDialect
	params []any
}

func (w *sqlParams) bind(v any) string {
	w.params = append(w.params, v)
	return w.d.placeholder(len(w.params))
}

// sqlTranslator is the shared SQL-family translator; all dialect variance
// goes through the sqlDialect hooks.
type sqlTranslator struct {
	d sqlDialect
}

func (t *sqlTranslator) Backend() Backend { return t.d.backend() }

func (t *sqlTranslator) Translate(q *uql.Query) (Artifact, error) {
	w := &sqlParams{d: t.d}

	parts := []string{t.selectClause(q), "FROM " + t.quoteName(q.From)}

	where, err := t.whereClause(w, q.Where)
	if err != nil {
		return nil, err
	}
	if where != "" {
		parts = append(parts, where)
	}

	order := t.orderClause(q)
	if order != "" {
		parts = append(parts, order)
	}

	paging, err := t.d.paging(q, order != "")
	if err != nil {
		return nil, err
	}
	if paging != "" {
		parts = append(parts, paging)
	}

	return &TextQuery{Query: strings.Join(parts, " ") + ";", Params: w.params}, nil
}

func (t *sqlTranslator) selectClause(q *uql.Query) string {
	if q.WildcardSelect() {
		return "SELECT *"
	}
	cols := make([]string, len(q.Select))
	for i, field := range q.Select {
		cols[i] = t.quoteColumn(field)
	}
	return "SELECT " + strings.Join(cols, ", ")
}

func (t *sqlTranslator) orderClause(q *uql.Query) string {
	if len(q.OrderBy) == 0 {
		return ""
	}
	keys := make([]string, len(q.OrderBy))
	for i, item := range q.OrderBy {
		keys[i] = t.quoteColumn(item.Field) + " " + string(item.Order)
	}
	return "ORDER BY " + strings.Join(keys, ", ")
}

// whereClause renders must as a conjunction and must_not as a
// conjunction of negations, both grouped, then conjoined.
func (t *sqlTranslator) whereClause(w *sqlParams, where *uql.WhereClause) (string, error) {
	if where.Empty() {
		return "", nil
	}

	var groups []string

	if len(where.Must) > 0 {
		frags := make([]string, len(where.Must))
		for i, e := range where.Must {
			frag, err := t.renderExpr(w, e)
			if err != nil {
				return "", err
			}
			frags[i] = frag
		}
		groups = append(groups, "("+strings.Join(frags, " AND ")+")")
	}

	if len(where.MustNot) > 0 {
		frags := make([]string, len(where.MustNot))
		for i, e := range where.MustNot {
			frag, err := t.renderExpr(w, e)
			if err != nil {
				return "", err
			}
			frags[i] = "NOT (" + frag + ")"
		}
		groups = append(groups, "("+strings.Join(frags, " AND ")+")")
	}

	return "WHERE " + strings.Join(groups, " AND "), nil
}

func (t *sqlTranslator) renderExpr(w *sqlParams, e uql.Expr) (string, error) {
	switch node := e.(type) {
	case *uql.Condition:
		return t.renderCondition(w, node)

	case *uql.AndExpr:
		return t.renderBool(w, node.Exprs, " AND ")

	case *uql.OrExpr:
		return t.renderBool(w, node.Exprs, " OR ")

	case *uql.NotExpr:
		sub, err := t.renderExpr(w, node.Expr)
		if err != nil {
			return "", err
		}
		return "NOT (" + sub + ")", nil

	default:
		// Unreachable: Expr is sealed.
		return "", &UnsupportedOperatorError{Backend: t.d.backend()}
	}
}

func (t *sqlTranslator) renderBool(w *sqlParams, children []uql.Expr, sep string) (string, error) {
	frags := make([]string, len(children))
	for i, child := range children {
		frag, err := t.renderExpr(w, child)
		if err != nil {
			return "", err
		}
		frags[i] = frag
	}
	return "(" + strings.Join(frags, sep) + ")", nil
}

func (t *sqlTranslator) renderCondition(w *sqlParams, c *uql.Condition) (string, error) {
	if !t.d.supports()[c.Operator] {
		return "", &UnsupportedOperatorError{Operator: c.Operator, Backend: t.d.backend()}
	}

	col := t.quoteColumn(c.Field)

	switch c.Operator {
	case uql.OpEq:
		if uql.IsNull(c.Value) {
			return col + " IS NULL", nil
		}
		return col + " = " + w.bind(uql.Native(c.Value)), nil

	case uql.OpNeq:
		if uql.IsNull(c.Value) {
			return col + " IS NOT NULL", nil
		}
		return col + " != " + w.bind(uql.Native(c.Value)), nil

	case uql.OpGt:
		return col + " > " + w.bind(uql.Native(c.Value)), nil
	case uql.OpGte:
		return col + " >= " + w.bind(uql.Native(c.Value)), nil
	case uql.OpLt:
		return col + " < " + w.bind(uql.Native(c.Value)), nil
	case uql.OpLte:
		return col + " <= " + w.bind(uql.Native(c.Value)), nil

	case uql.OpBetween:
		bounds := c.Value.(uql.List) // arity validated at construction
		return col + " BETWEEN " + w.bind(uql.Native(bounds[0])) +
			" AND " + w.bind(uql.Native(bounds[1])), nil

	case uql.OpIn, uql.OpNin:
		items := c.Value.(uql.List)
		marks := make([]string, len(items))
		for i, item := range items {
			marks[i] = w.bind(uql.Native(item))
		}
		kw := " IN ("
		if c.Operator == uql.OpNin {
			kw = " NOT IN ("
		}
		return col + kw + strings.Join(marks, ", ") + ")", nil

	case uql.OpExists:
		return col + " IS NOT NULL", nil
	case uql.OpNexists:
		return col + " IS NULL", nil

	case uql.OpContains:
		pattern := "%" + t.escapeLike(string(c.Value.(uql.String))) + "%"
		return col + " LIKE " + w.bind(pattern) + t.d.likeEscape(), nil

	case uql.OpNcontains:
		pattern := "%" + t.escapeLike(string(c.Value.(uql.String))) + "%"
		return col + " NOT LIKE " + w.bind(pattern) + t.d.likeEscape(), nil

	case uql.OpIcontains:
		pattern := "%" + t.escapeLike(string(c.Value.(uql.String))) + "%"
		return t.d.renderICase(w, col, pattern), nil

	case uql.OpStartsWith:
		pattern := t.escapeLike(string(c.Value.(uql.String))) + "%"
		return col + " LIKE " + w.bind(pattern) + t.d.likeEscape(), nil

	case uql.OpEndsWith:
		pattern := "%" + t.escapeLike(string(c.Value.(uql.String)))
		return col + " LIKE " + w.bind(pattern) + t.d.likeEscape(), nil

	case uql.OpIlike:
		return t.d.renderIlike(w, col, string(c.Value.(uql.String))), nil

	case uql.OpRegex:
		return t.d.renderRegex(w, col, string(c.Value.(uql.String)))

	case uql.OpArrayContains, uql.OpArrayOverlap, uql.OpArrayContained:
		return t.d.renderArray(w, col, c)

	default:
		// geo and anything future: not in any SQL support table.
		return "", &UnsupportedOperatorError{Operator: c.Operator, Backend: t.d.backend()}
	}
}

// escapeLike escapes the LIKE metacharacters (%, _, the escape char
// itself, plus dialect extras) in literal user text so the text cannot
// alter the pattern's meaning.
func (t *sqlTranslator) escapeLike(s string) string {
	var b strings.Builder
	extra := t.d.extraLikeMeta()
	for _, r := range s {
		if r == '\\' || r == '%' || r == '_' || strings.ContainsRune(extra, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// quoteName quotes a dotted identifier segment by segment.
func (t *sqlTranslator) quoteName(name string) string {
	segs, _ := uql.Segments(name)
	for i, seg := range segs {
		segs[i] = t.d.quote(seg)
	}
	return strings.Join(segs, ".")
}

// quoteColumn is quoteName plus support for a trailing ".*" select item.
func (t *sqlTranslator) quoteColumn(name string) string {
	segs, star := uql.Segments(name)
	for i, seg := range segs {
		segs[i] = t.d.quote(seg)
	}
	quoted := strings.Join(segs, ".")
	if star {
		return quoted + ".*"
	}
	return quoted
}
