package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/martgen/resolve"
	"github.com/syssam/martgen/schema"
)

// shopModel is a small web-shop graph with a link cycle:
//
//	Order item -> Order ("") -> Customer -> Product category ("Favourite product category")
//	                                     -> Order ("First order") -> Customer (cycle)
//	Order item -> Product -> Product category
type shopModel struct {
	orderItem, order, customer, product, category *schema.Entity

	toOrder, toProduct, toCustomer    *schema.EntityLink
	toFavouriteCategory, toFirstOrder *schema.EntityLink
	toProductCategory                 *schema.EntityLink
}

func newShopModel(t *testing.T) *shopModel {
	t.Helper()
	m := &shopModel{
		orderItem: schema.NewEntity("Order item", "", "dim"),
		order:     schema.NewEntity("Order", "", "dim"),
		customer:  schema.NewEntity("Customer", "", "dim"),
		product:   schema.NewEntity("Product", "", "dim"),
		category:  schema.NewEntity("Product category", "", "dim"),
	}
	require.NoError(t, m.orderItem.AddAttribute(schema.Attr("Order item ID").Type(schema.TypeID)))
	require.NoError(t, m.order.AddAttribute(schema.Attr("Order ID").Type(schema.TypeID)))
	require.NoError(t, m.order.AddAttribute(schema.Attr("Order date").Type(schema.TypeDate)))
	require.NoError(t, m.order.AddAttribute(schema.Attr("Status").Type(schema.TypeEnum).RootOnly()))
	require.NoError(t, m.customer.AddAttribute(schema.Attr("Customer ID").Type(schema.TypeID)))
	require.NoError(t, m.customer.AddAttribute(schema.Attr("Email").PersonalData()))
	require.NoError(t, m.product.AddAttribute(schema.Attr("SKU").Column("sku")))
	require.NoError(t, m.category.AddAttribute(schema.Attr("Level 1").Column("main_category")))

	m.toOrder = m.orderItem.LinkEntity(m.order, schema.Prefix(""))
	m.toProduct = m.orderItem.LinkEntity(m.product)
	m.toCustomer = m.order.LinkEntity(m.customer)
	m.toFavouriteCategory = m.customer.LinkEntity(m.category,
		schema.Prefix("Favourite product category"),
		schema.ForeignKeyColumn("favourite_product_category_fk"))
	m.toFirstOrder = m.customer.LinkEntity(m.order,
		schema.Prefix("First order"),
		schema.ForeignKeyColumn("first_order_fk"))
	m.toProductCategory = m.product.LinkEntity(m.category)
	return m
}

func assertPaths(t *testing.T, want []schema.Path, got []schema.Path) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "path %d", i)
	}
}

func TestPaths(t *testing.T) {
	t.Run("depth_first_discovery_order", func(t *testing.T) {
		m := newShopModel(t)
		ds := schema.NewDataSet(m.orderItem, "Order items")

		assertPaths(t, []schema.Path{
			{m.toOrder},
			{m.toOrder, m.toCustomer},
			{m.toOrder, m.toCustomer, m.toFavouriteCategory},
			{m.toOrder, m.toCustomer, m.toFirstOrder},
			{m.toProduct},
			{m.toProduct, m.toProductCategory},
		}, resolve.New(ds).Paths())
	})

	t.Run("cycles_stop_at_repeated_link_instance", func(t *testing.T) {
		m := newShopModel(t)
		ds := schema.NewDataSet(m.customer, "Customers")

		// Customer -> First order -> Customer ends there: the next hop
		// would reuse the Order -> Customer link instance.
		assertPaths(t, []schema.Path{
			{m.toFavouriteCategory},
			{m.toFirstOrder},
			{m.toFirstOrder, m.toCustomer},
			{m.toFirstOrder, m.toCustomer, m.toFavouriteCategory},
		}, resolve.New(ds).Paths())
	})

	t.Run("excluded_path_cuts_off_subtree", func(t *testing.T) {
		m := newShopModel(t)
		ds := schema.NewDataSet(m.customer, "Customers")
		require.NoError(t, ds.ExcludePath(schema.Via("Order"), schema.Via("Customer")))

		assertPaths(t, []schema.Path{
			{m.toFavouriteCategory},
			{m.toFirstOrder},
		}, resolve.New(ds).Paths())
	})

	t.Run("depth_limit_with_exclusion", func(t *testing.T) {
		m := newShopModel(t)
		ds := schema.NewDataSet(m.customer, "Customers", schema.MaxLinkDepth(2))
		require.NoError(t, ds.ExcludePath(schema.Via("Order"), schema.Via("Customer")))
		require.NoError(t, ds.ExcludePath(schema.Via("Product category")))

		assertPaths(t, []schema.Path{
			{m.toFirstOrder},
		}, resolve.New(ds).Paths())
	})

	t.Run("depth_limit", func(t *testing.T) {
		m := newShopModel(t)
		ds := schema.NewDataSet(m.orderItem, "Order items", schema.MaxLinkDepth(1))

		assertPaths(t, []schema.Path{
			{m.toOrder},
			{m.toProduct},
		}, resolve.New(ds).Paths())
	})

	t.Run("included_path_overrides_depth_limit_with_prefix_closure", func(t *testing.T) {
		m := newShopModel(t)
		ds := schema.NewDataSet(m.orderItem, "Order items", schema.MaxLinkDepth(1))
		require.NoError(t, ds.IncludeAttributes(
			[]schema.Hop{schema.Via("Order"), schema.Via("Customer"), schema.Via("Order")},
			"Order date"))

		// The 3-hop path survives together with its prefixes; sibling
		// paths beyond the depth limit stay invisible.
		assertPaths(t, []schema.Path{
			{m.toOrder},
			{m.toOrder, m.toCustomer},
			{m.toOrder, m.toCustomer, m.toFirstOrder},
			{m.toProduct},
		}, resolve.New(ds).Paths())
	})
}

func TestAttributes(t *testing.T) {
	t.Run("root_first_then_paths", func(t *testing.T) {
		m := newShopModel(t)
		ds := schema.NewDataSet(m.orderItem, "Order items", schema.MaxLinkDepth(1))

		attrs := resolve.New(ds).Attributes()
		require.Len(t, attrs, 3)

		assert.Empty(t, attrs[0].Path)
		assert.Equal(t, m.orderItem, attrs[0].Entity)
		require.Len(t, attrs[0].Attributes, 1)
		assert.Equal(t, "Order item ID", attrs[0].Attributes[0].Name)

		assert.Equal(t, m.order, attrs[1].Entity)
		assert.Equal(t, m.product, attrs[2].Entity)
	})

	t.Run("root_only_attributes_are_hidden_at_paths", func(t *testing.T) {
		m := newShopModel(t)
		ds := schema.NewDataSet(m.orderItem, "Order items", schema.MaxLinkDepth(1))

		attrs := resolve.New(ds).Attributes()
		var names []string
		for _, na := range attrs[1].Attributes {
			names = append(names, na.Name)
		}
		// "Status" is not accessible via entity links.
		assert.Equal(t, []string{"Order ID", "Order date"}, names)
	})

	t.Run("root_only_attributes_stay_visible_at_root", func(t *testing.T) {
		m := newShopModel(t)
		ds := schema.NewDataSet(m.order, "Orders")

		attrs := resolve.New(ds).Attributes()
		var names []string
		for _, na := range attrs[0].Attributes {
			names = append(names, na.Name)
		}
		assert.Equal(t, []string{"Order ID", "Order date", "Status"}, names)
	})

	t.Run("personal_data_filter", func(t *testing.T) {
		m := newShopModel(t)
		ds := schema.NewDataSet(m.customer, "Customers")
		require.NoError(t, ds.ExcludePath(schema.Via("Order"), schema.Via("Customer")))

		withPD := resolve.New(ds).Attributes()
		require.Len(t, withPD[0].Attributes, 2)

		withoutPD := resolve.New(ds, resolve.ExcludePersonalData()).Attributes()
		require.Len(t, withoutPD[0].Attributes, 1)
		assert.Equal(t, "Customer ID", withoutPD[0].Attributes[0].Name)
	})

	t.Run("excluded_attributes", func(t *testing.T) {
		m := newShopModel(t)
		ds := schema.NewDataSet(m.orderItem, "Order items", schema.MaxLinkDepth(1))
		require.NoError(t, ds.ExcludeAttributes([]schema.Hop{schema.Via("Order")}, "Order ID"))

		attrs := resolve.New(ds).Attributes()
		require.Len(t, attrs[1].Attributes, 1)
		assert.Equal(t, "Order date", attrs[1].Attributes[0].Name)
	})

	t.Run("attribute_whitelist_on_deep_path", func(t *testing.T) {
		m := newShopModel(t)
		ds := schema.NewDataSet(m.orderItem, "Order items", schema.MaxLinkDepth(1))
		require.NoError(t, ds.IncludeAttributes(
			[]schema.Hop{schema.Via("Order"), schema.Via("Customer"), schema.Via("Order")},
			"Order date"))

		attrs := resolve.New(ds).Attributes()
		require.Len(t, attrs, 5)

		deep := attrs[3]
		require.True(t, deep.Path.Equal(schema.Path{m.toOrder, m.toCustomer, m.toFirstOrder}))
		require.Len(t, deep.Attributes, 1)
		assert.Equal(t, "Customer first order date", deep.Attributes[0].Name)
	})

	t.Run("generated_names_carry_prefixes", func(t *testing.T) {
		m := newShopModel(t)
		ds := schema.NewDataSet(m.orderItem, "Order items")

		attrs := resolve.New(ds).Attributes()
		byPath := map[string]string{}
		for _, pa := range attrs[1:] {
			for _, na := range pa.Attributes {
				byPath[na.Name] = pa.Entity.Name()
			}
		}
		assert.Equal(t, "Product category", byPath["Customer favourite product category level 1"])
		assert.Equal(t, "Order", byPath["Customer first order ID"])
	})
}
