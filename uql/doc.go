// Package uql defines the backend-neutral query model (UQL) and its
// validation rules.
//
// A UQL document describes a filtering/selection intent once:
//
//	{
//	  "select": ["id", "name"],
//	  "from": "app.users",
//	  "where": {
//	    "must": [
//	      {"type": "condition", "field": "age", "operator": "gte", "value": 18}
//	    ]
//	  },
//	  "orderBy": [{"field": "name"}],
//	  "limit": 20
//	}
//
// The document parses into an immutable AST (Query, WhereClause, Expr)
// which package translate compiles into backend-native queries.
//
// LAYERS:
//
//   - Parse / ParseDocument — structural validation. Malformed shapes never
//     become AST nodes: missing "from", unknown node tags, empty select,
//     bad identifiers, and operator/value arity violations all fail here,
//     with typed errors (StructuralError, IdentifierError,
//     OperatorArityError, OperatorFieldTypeError).
//   - SemanticallyValid — a pure predicate over an already-built AST.
//     It never returns an error; it exists for callers that construct
//     nodes programmatically and bypass the parser.
//   - Registry — the operator capability table: which value shape each
//     operator requires and which field-type hints it tolerates. Built
//     once, immutable; extended by copying (With), never by mutation.
//
// SEALED TYPES:
//
// Expr and Value are sealed interfaces using the marker method pattern.
// Only types in this package implement them, so backend translators can
// type-switch exhaustively.
//
// All nodes are read-only after construction. A single Query may be
// translated concurrently to any number of backends without locking.
//
// Callers at the system boundary are responsible for capping input size
// (node count, nesting depth, list lengths) before parsing; the package
// itself recurses only to the depth of the input.
package uql
