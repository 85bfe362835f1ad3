// Package martgen generates analytics artifacts from dimensional data
// set models: flattened SQL views, star-schema fact-table SQL and
// Mondrian OLAP schema documents.
//
// Models are defined with the schema package (entities, attributes,
// links, data sets, metrics), resolved by the resolve package and
// rendered by the sqlgen and mondrian packages. This package ties them
// together for batch generation:
//
//	g := martgen.New(
//		martgen.WithSQL(sqlgen.New(sqlgen.WithDialect(dialect.Postgres))),
//		martgen.WithMondrian(mondrian.NewGenerator(mondrian.FactTableSchema("af_dim"))),
//	)
//	artifacts, err := g.Generate(ctx, orderItems, customers, products)
package martgen

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/martgen/mondrian"
	"github.com/syssam/martgen/schema"
	"github.com/syssam/martgen/sqlgen"
)

// Artifacts holds everything generated for one data set.
type Artifacts struct {
	DataSet      *schema.DataSet
	FlattenedSQL string
	StarSQL      string
	Cube         *mondrian.Cube
}

// Generator renders artifacts for whole sets of data sets in parallel.
type Generator struct {
	sql      *sqlgen.Generator
	mondrian *mondrian.Generator
	workers  int
	cache    Cache
}

// Option configures a Generator.
type Option func(*Generator)

// WithSQL sets the SQL generator. Defaults to sqlgen.New().
func WithSQL(g *sqlgen.Generator) Option {
	return func(gen *Generator) { gen.sql = g }
}

// WithMondrian sets the Mondrian schema generator. Defaults to
// mondrian.NewGenerator().
func WithMondrian(g *mondrian.Generator) Option {
	return func(gen *Generator) { gen.mondrian = g }
}

// WithWorkers sets the number of data sets rendered in parallel.
// Defaults to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(gen *Generator) {
		if n > 0 {
			gen.workers = n
		}
	}
}

// WithCache reuses previously generated artifacts per data set.
// Callers are responsible for invalidating entries when the model
// changes.
func WithCache(c Cache) Option {
	return func(gen *Generator) { gen.cache = c }
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{
		sql:      sqlgen.New(),
		mondrian: mondrian.NewGenerator(),
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the artifacts of every data set, in input order.
// Data sets are processed in parallel; the first error cancels the
// remaining work.
func (g *Generator) Generate(ctx context.Context, dataSets ...*schema.DataSet) ([]*Artifacts, error) {
	results := make([]*Artifacts, len(dataSets))

	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for i, ds := range dataSets {
		i, ds := i, ds
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = g.generate(ds)
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (g *Generator) generate(ds *schema.DataSet) *Artifacts {
	if g.cache != nil {
		if a, ok := g.cache.Get(ds.ID()); ok {
			return a
		}
	}
	a := &Artifacts{
		DataSet:      ds,
		FlattenedSQL: g.sql.Flattened(ds),
		StarSQL:      g.sql.Star(ds),
		Cube:         g.mondrian.Cube(ds),
	}
	if g.cache != nil {
		g.cache.Put(ds.ID(), a)
	}
	return a
}
