// Package schema provides the building blocks for defining dimensional
// data-set models: business entities, their attributes, foreign-key links
// between entities, and aggregated metrics.
//
// A model is assembled once during a definition phase and is read-only
// afterwards. Downstream packages consume the assembled model:
//
//   - [github.com/syssam/martgen/resolve]: reachable link-paths and
//     visible attributes per data set
//   - [github.com/syssam/martgen/sqlgen]: flattened and star-schema queries
//   - [github.com/syssam/martgen/mondrian]: OLAP cube schema documents
//
// # Quick Start
//
// Define entities with attributes and link them along their foreign keys:
//
//	order := schema.NewEntity("Order", "Valid orders with an invoice", "dim")
//	order.AddAttribute(schema.Attr("Order ID").
//	    Description("The invoice number of the order").
//	    Type(schema.TypeID).
//	    HighCardinality())
//	order.AddAttribute(schema.Attr("Order date").
//	    Description("The date when the order was placed").
//	    Type(schema.TypeDate))
//
//	customer := schema.NewEntity("Customer", "People that placed an order", "dim")
//	order.LinkEntity(customer)
//	customer.LinkEntity(order,
//	    schema.ForeignKeyColumn("first_order_fk"),
//	    schema.Prefix("First order"))
//
// Then root a data set at one entity and attach metrics and visibility
// overrides:
//
//	orders := schema.NewDataSet(order, "Orders", schema.MaxLinkDepth(2))
//	orders.AddSimpleMetric("# Orders", "Number of orders", "order_id",
//	    schema.Count)
//	orders.AddComposedMetric("AOV", "Average order value",
//	    "[Revenue] / [# Orders]")
//	orders.ExcludePath(schema.Via("Customer"), schema.ViaPrefixed("Order", "First order"))
//
// # Naming Defaults
//
// Table, column and key names are derived from display names unless given
// explicitly: the entity "Order item" maps to table "order_item" with
// primary key "order_item_id", a link to it defaults to the foreign-key
// column "order_item_fk", and the attribute "Order date" maps to the
// column "order_date".
//
// # Errors
//
// All failures are definition-time configuration bugs and are reported
// immediately as [DefinitionError] or [LookupError] with the entity and
// data-set context in the message. Once a model definition has been
// assembled without errors, resolution and generation never fail.
package schema
