package sqlgen

import (
	"fmt"
	"strings"

	"github.com/syssam/martgen/dialect"
	"github.com/syssam/martgen/resolve"
	"github.com/syssam/martgen/schema"
)

// Generator builds SQL SELECT statements from data sets. It is
// configured once and safe for concurrent use.
type Generator struct {
	dialect     dialect.Dialect
	namer       *resolve.Namer
	resolveOpts []resolve.Option
}

// Option configures a Generator.
type Option func(*Generator)

// WithDialect sets the identifier-quoting dialect. Defaults to
// dialect.Postgres.
func WithDialect(d dialect.Dialect) Option {
	return func(g *Generator) { g.dialect = d }
}

// WithNamer sets the name generator used for column aliases. Defaults
// to resolve.NewNamer().
func WithNamer(n *resolve.Namer) Option {
	return func(g *Generator) { g.namer = n }
}

// ExcludePersonalData leaves attributes flagged as personal data out
// of generated queries.
func ExcludePersonalData() Option {
	return func(g *Generator) {
		g.resolveOpts = append(g.resolveOpts, resolve.ExcludePersonalData())
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		dialect: dialect.Postgres,
		namer:   resolve.NewNamer(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) resolver(ds *schema.DataSet) *resolve.Resolver {
	opts := append([]resolve.Option{resolve.WithNamer(g.namer)}, g.resolveOpts...)
	return resolve.New(ds, opts...)
}

// quote shortens the dialect call.
func (g *Generator) quote(ident string) string {
	return g.dialect.QuoteIdent(ident)
}

// column renders a table-qualified column reference.
func (g *Generator) column(tableAlias, columnName string) string {
	return g.quote(tableAlias) + "." + g.quote(columnName)
}

// Flattened returns a SELECT statement producing the flattened view of
// the data set: one aliased column per visible attribute at the root
// and at every resolved path, followed by one column per metric.
func (g *Generator) Flattened(ds *schema.DataSet) string {
	r := g.resolver(ds)
	root := ds.Entity().Name()

	var columns []string
	for _, pa := range r.Attributes() {
		alias := root
		if len(pa.Path) > 0 {
			alias = g.namer.TableAlias(pa.Path)
		}
		for _, na := range pa.Attributes {
			expr := g.column(alias, na.Attribute.ColumnName())
			if na.Attribute.Type() == schema.TypeEnum {
				expr += "::TEXT"
			}
			columns = append(columns, expr+" AS "+g.quote(na.Name))
		}
	}
	for _, m := range ds.Metrics() {
		columns = append(columns, g.MetricExpression(m)+" AS "+g.quote(m.Name()))
	}

	return g.selectStatement(columns, r)
}

// Star returns a SELECT statement producing the star-schema fact table
// of the data set: raw root attribute and metric source columns, one
// derived foreign-key column per date or duration attribute, and one
// join foreign-key column per resolved path.
func (g *Generator) Star(ds *schema.DataSet) string {
	r := g.resolver(ds)
	root := ds.Entity().Name()

	var columns []string
	seen := map[string]bool{}
	addOnce := func(expr string) {
		if !seen[expr] {
			seen[expr] = true
			columns = append(columns, expr)
		}
	}

	attrs := r.Attributes()

	// Raw root columns for untemplated attributes and metric sources,
	// deduplicated in definition order.
	for _, na := range attrs[0].Attributes {
		if t := na.Attribute.Type(); t != schema.TypeDate && t != schema.TypeDuration {
			addOnce(g.column(root, na.Attribute.ColumnName()))
		}
	}
	for _, m := range ds.Metrics() {
		if sm, ok := m.(*schema.SimpleMetric); ok {
			addOnce(g.column(root, sm.ColumnName()))
		}
	}

	// Derived foreign keys for the root's templated attributes.
	for _, na := range attrs[0].Attributes {
		if fk, ok := g.derivedForeignKey(root, na.Attribute, nil); ok {
			columns = append(columns, fk)
		}
	}

	// One join foreign key per path, followed by the derived foreign
	// keys of the path's templated attributes.
	for _, pa := range attrs[1:] {
		parent := root
		if len(pa.Path) > 1 {
			parent = g.namer.TableAlias(pa.Path[:len(pa.Path)-1])
		}
		fkColumn := pa.Path[len(pa.Path)-1].ForeignKeyColumn()
		columns = append(columns,
			g.column(parent, fkColumn)+" AS "+g.quote(g.namer.PathJoinKey(ds.Entity(), pa.Path)))

		alias := g.namer.TableAlias(pa.Path)
		for _, na := range pa.Attributes {
			if fk, ok := g.derivedForeignKey(alias, na.Attribute, pa.Path); ok {
				columns = append(columns, fk)
			}
		}
	}

	return g.selectStatement(columns, r)
}

// CreateStarTable wraps Star in a CREATE TABLE statement for the fact
// table of the data set in the given target schema.
func (g *Generator) CreateStarTable(ds *schema.DataSet, targetSchema string) string {
	table := g.quote(targetSchema) + "." + g.quote(ds.Entity().TableName()+"_fact")
	return "CREATE TABLE " + table + " AS\n" + g.Star(ds)
}

// derivedForeignKey renders the foreign-key expression standing in for
// a date or duration attribute in the star schema. Dates truncate to a
// YYYYMMDD integer, durations pass through.
func (g *Generator) derivedForeignKey(tableAlias string, a *schema.Attribute, path schema.Path) (string, bool) {
	name := g.quote(g.namer.AttributeForeignKey(a, path))
	switch a.Type() {
	case schema.TypeDate:
		return fmt.Sprintf("TO_CHAR(%s, 'YYYYMMDD')::INTEGER AS %s",
			g.column(tableAlias, a.ColumnName()), name), true
	case schema.TypeDuration:
		return g.column(tableAlias, a.ColumnName()) + " AS " + name, true
	}
	return "", false
}

// MetricExpression renders the SQL expression computing a metric from
// one row of the data set's root table. Count-like aggregations become
// a null-safe presence indicator, other simple aggregations are
// null-coalesced to zero, and composed metrics substitute their
// parents' expressions recursively, guarding every divided parent with
// NULLIF.
func (g *Generator) MetricExpression(m schema.Metric) string {
	switch m := m.(type) {
	case *schema.SimpleMetric:
		col := g.column(m.DataSet().Entity().Name(), m.ColumnName())
		switch m.Aggregation() {
		case schema.Count, schema.DistinctCount:
			return "(" + col + " IS NOT NULL)::INTEGER::SMALLINT"
		default:
			return "COALESCE(" + col + ", 0)"
		}
	case *schema.ComposedMetric:
		parents := m.Parents()
		exprs := make([]string, len(parents))
		for i, parent := range parents {
			expr := g.MetricExpression(parent)
			if m.DividedParent(i) {
				exprs[i] = "(NULLIF(" + expr + ", 0.0))"
			} else {
				exprs[i] = "(" + expr + ")"
			}
		}
		return m.Substitute(exprs...)
	}
	return ""
}

// selectStatement assembles the final statement from the column list
// and the shared FROM/JOIN clause.
func (g *Generator) selectStatement(columns []string, r *resolve.Resolver) string {
	var b strings.Builder
	b.WriteString("SELECT\n    ")
	b.WriteString(strings.Join(columns, ",\n    "))
	b.WriteString("\n")
	b.WriteString(g.fromClause(r))
	return b.String()
}

// fromClause renders the root table and one LEFT JOIN per resolved
// path in discovery order. A path joins its parent alias (the root, or
// the alias of the path minus its last link) to the target table on
// the link's foreign-key column.
func (g *Generator) fromClause(r *resolve.Resolver) string {
	entity := r.DataSet().Entity()
	root := entity.Name()

	lines := []string{
		"FROM " + g.column(entity.SchemaName(), entity.TableName()) + " AS " + g.quote(root),
	}
	for _, path := range r.Paths() {
		parent := root
		if len(path) > 1 {
			parent = g.namer.TableAlias(path[:len(path)-1])
		}
		link := path[len(path)-1]
		target := link.Target()
		alias := g.namer.TableAlias(path)
		lines = append(lines, fmt.Sprintf("LEFT JOIN %s AS %s ON %s = %s",
			g.column(target.SchemaName(), target.TableName()),
			g.quote(alias),
			g.column(parent, link.ForeignKeyColumn()),
			g.column(alias, target.PrimaryKeyColumn())))
	}
	return strings.Join(lines, "\n")
}
