// Package translate compiles a parsed uql.Query into the native query
// representation of a chosen backend.
//
// Backends fall into two families:
//
//   - Text backends (the SQL dialects, Cassandra, OrientDB, Neo4j) emit a
//     parameterized query string plus an ordered parameter list
//     (TextQuery). Placeholders appear in strict left-to-right AST
//     traversal order and the parameter list has exactly one entry per
//     placeholder, in that order, for every query including nested
//     boolean combinations.
//   - Object backends (MongoDB, Elasticsearch) emit a structured query
//     document (ObjectQuery). A query without any filter content compiles
//     to an explicit "match everything" artifact, never an absent filter.
//
// Each adapter carries an operator support table consulted before any
// condition is emitted. An operator the backend cannot render raises
// UnsupportedOperatorError naming both operator and backend - at
// translate time, never at parse time: the same AST can be valid for one
// backend and rejected by another.
//
// Translation is a single synchronous tree walk with no retained state.
// Adapters hold no per-call mutable fields, so one Translator instance is
// safe for concurrent use, as is translating one Query concurrently to
// several backends.
//
// Inputs are assumed to have passed uql.Parse (or equivalent
// construction-time validation); translators check backend support and
// backend-specific pagination rules, nothing structural.
package translate
