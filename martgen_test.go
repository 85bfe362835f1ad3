package martgen_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/martgen"
	"github.com/syssam/martgen/dialect"
	"github.com/syssam/martgen/examples/ecommerce"
	"github.com/syssam/martgen/mondrian"
	"github.com/syssam/martgen/sqlgen"
)

func TestGenerate(t *testing.T) {
	model, err := ecommerce.NewModel()
	require.NoError(t, err)

	g := martgen.New(
		martgen.WithSQL(sqlgen.New(sqlgen.WithDialect(dialect.Postgres))),
		martgen.WithMondrian(mondrian.NewGenerator(mondrian.FactTableSchema("af_dim"))),
		martgen.WithWorkers(2),
	)

	artifacts, err := g.Generate(context.Background(), model.DataSets()...)
	require.NoError(t, err)
	require.Len(t, artifacts, 3)

	t.Run("input_order", func(t *testing.T) {
		assert.Equal(t, model.OrderItems, artifacts[0].DataSet)
		assert.Equal(t, model.Customers, artifacts[1].DataSet)
		assert.Equal(t, model.Products, artifacts[2].DataSet)
	})

	t.Run("flattened_sql", func(t *testing.T) {
		sql := artifacts[0].FlattenedSQL
		assert.Contains(t, sql, `FROM "dim"."order_item" AS "Order item"`)
		assert.Contains(t, sql, `AS "Order date"`)
		assert.Contains(t, sql, `AS "Revenue"`)
		// The composed AOV guards its denominator.
		assert.Contains(t, sql, `NULLIF`)
	})

	t.Run("star_sql", func(t *testing.T) {
		sql := artifacts[0].StarSQL
		assert.Contains(t, sql, `"Order item"."order_fk" AS "Order item order_fk"`)
		assert.Contains(t, sql, `TO_CHAR("Order"."order_date", 'YYYYMMDD')::INTEGER`)
	})

	t.Run("cube", func(t *testing.T) {
		cube := artifacts[0].Cube
		require.NotNil(t, cube)
		assert.Equal(t, "Order items", cube.Name)
		assert.Equal(t, "order_item_fact", cube.Table.Name)
		assert.Equal(t, "# Order items", cube.DefaultMeasure)
	})
}

func TestGenerateCancellation(t *testing.T) {
	model, err := ecommerce.NewModel()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = martgen.New().Generate(ctx, model.DataSets()...)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateWithCache(t *testing.T) {
	model, err := ecommerce.NewModel()
	require.NoError(t, err)

	cache := martgen.NewMapCache()
	g := martgen.New(martgen.WithCache(cache))

	first, err := g.Generate(context.Background(), model.Products)
	require.NoError(t, err)
	second, err := g.Generate(context.Background(), model.Products)
	require.NoError(t, err)

	t.Run("hit_returns_cached_artifacts", func(t *testing.T) {
		assert.Same(t, first[0], second[0])
	})

	t.Run("invalidate_forces_regeneration", func(t *testing.T) {
		cache.Invalidate(model.Products.ID())
		third, err := g.Generate(context.Background(), model.Products)
		require.NoError(t, err)
		assert.NotSame(t, first[0], third[0])
	})
}

func TestMapCache(t *testing.T) {
	cache := martgen.NewMapCache()

	_, ok := cache.Get("order_items")
	assert.False(t, ok)

	a := &martgen.Artifacts{}
	cache.Put("order_items", a)
	got, ok := cache.Get("order_items")
	require.True(t, ok)
	assert.Same(t, a, got)

	cache.Invalidate("order_items")
	_, ok = cache.Get("order_items")
	assert.False(t, ok)
}
