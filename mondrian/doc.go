// Package mondrian generates Mondrian OLAP schema documents from data
// sets.
//
// Every data set becomes one cube over its star-schema fact table
// (sqlgen.Generator.Star). Visible attributes become dimensions:
//
//   - private dimensions for untemplated root attributes, bound
//     directly to a fact-table column
//   - linked dimensions for attributes of connected entities, joined
//     through the path's foreign-key column to the entity's own table
//   - templated dimensions for date and duration attributes, built
//     from hierarchy templates (see DefaultDateHierarchies and
//     DefaultDurationHierarchies) over shared time tables
//
// Simple metrics become measures, composed metrics become calculated
// members with MDX formulas. The document model in this package
// mirrors the Mondrian XML schema elements and serializes with
// encoding/xml:
//
//	g := mondrian.NewGenerator(mondrian.FactTableSchema("af_dim"))
//	doc := g.Schema("CompanyXYZ", dataSets...)
//	out, err := doc.Marshal()
package mondrian
