// Package sqlgen turns data sets into SQL SELECT statements.
//
// Two query shapes are supported:
//
//   - Flattened: one row per row of the root entity table, with one
//     column per visible attribute of every connected entity, aliased
//     to its generated display name, plus one column per metric. This
//     is the shape consumed by spreadsheet-style frontends.
//
//   - Star: the fact-table shape for OLAP engines. Root attributes and
//     metric source columns are selected raw; date and duration
//     attributes become derived foreign-key columns; every non-root
//     path collapses into a single join foreign-key column so the
//     linked entity's table can serve as a dimension table.
//
// Both shapes share the same FROM/JOIN clause: the root table aliased
// to the entity name and one LEFT JOIN per resolved path in discovery
// order. Identifier quoting is delegated to a dialect.Dialect; all
// other SQL (casts, functions, join syntax) is fixed.
//
//	g := sqlgen.New(sqlgen.WithDialect(dialect.Postgres))
//	fmt.Println(g.Flattened(orderItems))
package sqlgen
