// Package dialect provides SQL identifier quoting for the query
// generators.
//
// The generator core supplies raw identifiers only; how an identifier
// is escaped and delimited is a per-database concern delegated to a
// Dialect. No further dialect negotiation happens: casts, functions and
// join syntax in generated queries are fixed.
//
// # Supported Dialects
//
//   - Postgres: double-quoted identifiers, `"` doubled
//   - MySQL: backtick-quoted identifiers, backticks doubled
//   - SQLite: double-quoted identifiers, `"` doubled
//   - ANSI: standard double-quoted identifiers
package dialect

import (
	"strings"

	"github.com/lib/pq"
)

// Dialect quotes SQL identifiers for one database system.
type Dialect interface {
	// Name returns the dialect name, e.g. "postgres".
	Name() string
	// QuoteIdent returns the identifier escaped and delimited for use
	// in a SQL statement.
	QuoteIdent(name string) string
}

// Dialects.
var (
	Postgres Dialect = postgres{}
	MySQL    Dialect = mysql{}
	SQLite   Dialect = sqlite{}
	ANSI     Dialect = ansi{}
)

type postgres struct{}

func (postgres) Name() string { return "postgres" }

func (postgres) QuoteIdent(name string) string {
	return pq.QuoteIdentifier(name)
}

type mysql struct{}

func (mysql) Name() string { return "mysql" }

func (mysql) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

type sqlite struct{}

func (sqlite) Name() string { return "sqlite" }

func (sqlite) QuoteIdent(name string) string {
	return quoteDouble(name)
}

type ansi struct{}

func (ansi) Name() string { return "ansi" }

func (ansi) QuoteIdent(name string) string {
	return quoteDouble(name)
}

func quoteDouble(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
