package translate

import (
	"fmt"

	"github.com/roach88/uqlt/uql"
)

// Backend identifies a translation target.
type Backend string

const (
	BackendPostgreSQL    Backend = "postgresql"
	BackendMySQL         Backend = "mysql"
	BackendMSSQL         Backend = "mssql"
	BackendOracle        Backend = "oracle"
	BackendCassandra     Backend = "cassandra"
	BackendOrientDB      Backend = "orientdb"
	BackendNeo4j         Backend = "neo4j"
	BackendMongoDB       Backend = "mongodb"
	BackendElasticsearch Backend = "elasticsearch"
)

// Backends returns every known backend in stable order.
func Backends() []Backend {
	return []Backend{
		BackendPostgreSQL, BackendMySQL, BackendMSSQL, BackendOracle,
		BackendCassandra, BackendOrientDB, BackendNeo4j,
		BackendMongoDB, BackendElasticsearch,
	}
}

// ParseBackend maps a string to a Backend; errors on anything unknown.
func ParseBackend(s string) (Backend, error) {
	b := Backend(s)
	for _, known := range Backends() {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown backend %q", s)
}

// Artifact is the sealed result of a translation: TextQuery for text
// backends, ObjectQuery for document/search backends.
type Artifact interface {
	artifact() // Marker method - seals interface to this package
}

// TextQuery is a parameterized query string. Params holds one entry per
// placeholder in the text, in left-to-right order.
type TextQuery struct {
	Query  string
	Params []any
}

func (*TextQuery) artifact() {}

// ObjectQuery is a structured query document, e.g. a MongoDB find document
// or an Elasticsearch search body. The map contains only plain Go JSON
// types (nil, string, bool, int64/float64, []any, map[string]any).
type ObjectQuery struct {
	Doc map[string]any
}

func (*ObjectQuery) artifact() {}

// Translator compiles validated queries for one backend. Implementations
// hold no per-call state and are safe for concurrent use.
type Translator interface {
	Backend() Backend
	Translate(q *uql.Query) (Artifact, error)
}

// New returns the Translator for a backend.
func New(b Backend) (Translator, error) {
	switch b {
	case BackendPostgreSQL:
		return &sqlTranslator{d: postgresDialect{}}, nil
	case BackendMySQL:
		return &sqlTranslator{d: mysqlDialect{}}, nil
	case BackendMSSQL:
		return &sqlTranslator{d: mssqlDialect{}}, nil
	case BackendOracle:
		return &sqlTranslator{d: oracleDialect{}}, nil
	case BackendCassandra:
		return &cassandraTranslator{}, nil
	case BackendOrientDB:
		return &orientdbTranslator{}, nil
	case BackendNeo4j:
		return &neo4jTranslator{}, nil
	case BackendMongoDB:
		return &mongoTranslator{}, nil
	case BackendElasticsearch:
		return &elasticTranslator{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", b)
	}
}

// Supports reports whether a backend's support table contains op.
// Useful for capability listings; Translate performs the same check
// per condition and raises UnsupportedOperatorError itself.
func Supports(b Backend, op uql.Operator) bool {
	switch b {
	case BackendPostgreSQL:
		return postgresOps[op]
	case BackendMySQL:
		return mysqlOps[op]
	case BackendMSSQL:
		return mssqlOps[op]
	case BackendOracle:
		return oracleOps[op]
	case BackendCassandra:
		return cassandraOps[op]
	case BackendOrientDB:
		return orientdbOps[op]
	case BackendNeo4j:
		return neo4jOps[op]
	case BackendMongoDB:
		return mongoOps[op]
	case BackendElasticsearch:
		return elasticOps[op]
	default:
		return false
	}
}

// opSet builds an operator support table.
func opSet(ops ...uql.Operator) map[uql.Operator]bool {
	set := make(map[uql.Operator]bool, len(ops))
	for _, op := range ops {
		set[op] = true
	}
	return set
}

// sqlFamilyOps is the operator set every SQL dialect shares: comparison,
// between, membership, existence and the pattern string operators.
// Never geo; regex and arrays vary per dialect.
var sqlFamilyOps = []uql.Operator{
	uql.OpEq, uql.OpNeq, uql.OpGt, uql.OpGte, uql.OpLt, uql.OpLte,
	uql.OpIn, uql.OpNin,
	uql.OpExists, uql.OpNexists,
	uql.OpBetween,
	uql.OpContains, uql.OpNcontains, uql.OpIcontains,
	uql.OpStartsWith, uql.OpEndsWith, uql.OpIlike,
}
