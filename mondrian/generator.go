package mondrian

import (
	"strings"

	"github.com/syssam/martgen/resolve"
	"github.com/syssam/martgen/schema"
)

// Generator builds Mondrian schema documents from data sets. It is
// configured once and safe for concurrent use.
type Generator struct {
	factTableSchema        string
	templates              map[schema.Type][]*Hierarchy
	namer                  *resolve.Namer
	includePersonalData    bool
	includeHighCardinality bool
}

// Option configures a Generator.
type Option func(*Generator)

// FactTableSchema sets the database schema that holds the generated
// fact tables.
func FactTableSchema(name string) Option {
	return func(g *Generator) { g.factTableSchema = name }
}

// Templates sets the hierarchy templates used for templated dimensions
// per attribute type. Defaults to DefaultDateHierarchies and
// DefaultDurationHierarchies.
func Templates(templates map[schema.Type][]*Hierarchy) Option {
	return func(g *Generator) { g.templates = templates }
}

// WithNamer sets the name generator used for dimension and foreign-key
// names. Defaults to resolve.NewNamer().
func WithNamer(n *resolve.Namer) Option {
	return func(g *Generator) { g.namer = n }
}

// IncludePersonalData builds dimensions for attributes flagged as
// personal data, which are left out by default.
func IncludePersonalData() Option {
	return func(g *Generator) { g.includePersonalData = true }
}

// IncludeHighCardinality builds dimensions for high-cardinality
// attributes, which are left out by default.
func IncludeHighCardinality() Option {
	return func(g *Generator) { g.includeHighCardinality = true }
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		templates: map[schema.Type][]*Hierarchy{
			schema.TypeDate:     DefaultDateHierarchies(),
			schema.TypeDuration: DefaultDurationHierarchies(),
		},
		namer: resolve.NewNamer(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Schema builds a schema document with one cube per data set.
func (g *Generator) Schema(name string, dataSets ...*schema.DataSet) *Schema {
	doc := &Schema{Name: name}
	for _, ds := range dataSets {
		doc.Cubes = append(doc.Cubes, g.Cube(ds))
	}
	return doc
}

// Cube builds the cube of one data set over its fact table.
func (g *Generator) Cube(ds *schema.DataSet) *Cube {
	cube := &Cube{
		Name:        ds.Name(),
		Description: ds.Entity().Description(),
		Table: &Table{
			Schema: g.factTableSchema,
			Name:   ds.Entity().TableName() + "_fact",
		},
	}
	if metrics := ds.Metrics(); len(metrics) > 0 {
		cube.DefaultMeasure = metrics[0].Name()
	}

	opts := []resolve.Option{resolve.WithNamer(g.namer)}
	if !g.includePersonalData {
		opts = append(opts, resolve.ExcludePersonalData())
	}
	r := resolve.New(ds, opts...)

	for _, pa := range r.Attributes() {
		for _, na := range pa.Attributes {
			if d := g.dimension(ds, pa, na); d != nil {
				cube.Dimensions = append(cube.Dimensions, d)
			}
		}
	}

	for _, m := range ds.Metrics() {
		switch m := m.(type) {
		case *schema.SimpleMetric:
			cube.Measures = append(cube.Measures, g.measure(m))
		case *schema.ComposedMetric:
			cube.CalculatedMembers = append(cube.CalculatedMembers, g.calculatedMember(m))
		}
	}
	return cube
}

// dimension builds the dimension of one visible attribute, or nil for
// attributes that do not become dimensions.
func (g *Generator) dimension(ds *schema.DataSet, pa resolve.PathAttributes, na resolve.NamedAttribute) *Dimension {
	a := na.Attribute
	if a.Type() == schema.TypeArray {
		return nil
	}
	if a.HighCardinality() && !g.includeHighCardinality {
		return nil
	}

	if templates, ok := g.templates[a.Type()]; ok {
		return g.templatedDimension(na.Name, a, pa.Path, templates)
	}
	if len(pa.Path) == 0 {
		return privateDimension(na.Name, a)
	}
	return g.linkedDimension(ds, na.Name, a, pa)
}

// privateDimension binds an untemplated root attribute directly to its
// fact-table column.
func privateDimension(name string, a *schema.Attribute) *Dimension {
	return &Dimension{
		Name:        name,
		Description: a.Description(),
		Hierarchies: []*Hierarchy{{
			AllMemberName: "All " + name,
			HasAll:        true,
			Levels: []*Level{{
				Name:          name,
				Column:        a.ColumnName(),
				UniqueMembers: true,
			}},
		}},
	}
}

// linkedDimension joins an attribute of a connected entity through the
// path's foreign-key column to the entity's own table.
func (g *Generator) linkedDimension(ds *schema.DataSet, name string, a *schema.Attribute, pa resolve.PathAttributes) *Dimension {
	return &Dimension{
		Name:        name,
		Description: a.Description(),
		ForeignKey:  g.namer.PathJoinKey(ds.Entity(), pa.Path),
		Hierarchies: []*Hierarchy{{
			AllMemberName: "All " + name,
			HasAll:        true,
			PrimaryKey:    pa.Entity.PrimaryKeyColumn(),
			Table: &Table{
				Schema: pa.Entity.SchemaName(),
				Name:   pa.Entity.TableName(),
			},
			Levels: []*Level{{
				Name:          name,
				Column:        a.ColumnName(),
				UniqueMembers: true,
			}},
		}},
	}
}

// templatedDimension instantiates the hierarchy templates of a date or
// duration attribute, joined through its derived foreign-key column.
func (g *Generator) templatedDimension(name string, a *schema.Attribute, path schema.Path, templates []*Hierarchy) *Dimension {
	dimensionType := "StandardDimension"
	if a.Type() == schema.TypeDate {
		dimensionType = "TimeDimension"
	}
	d := &Dimension{
		Name:        name,
		Type:        dimensionType,
		Description: a.Description(),
		ForeignKey:  g.namer.AttributeForeignKey(a, path),
	}
	for _, t := range templates {
		h := *t
		h.AllMemberName = "All " + strings.ToLower(name) + "s"
		h.HasAll = true
		d.Hierarchies = append(d.Hierarchies, &h)
	}
	return d
}

func (g *Generator) measure(m *schema.SimpleMetric) *Measure {
	datatype := "Numeric"
	switch m.Aggregation() {
	case schema.Count, schema.DistinctCount:
		datatype = "Integer"
	}
	return &Measure{
		Name:         m.Name(),
		Description:  m.Description(),
		Column:       m.ColumnName(),
		Aggregator:   m.Aggregation().String(),
		FormatString: m.NumberFormat().String(),
		Datatype:     datatype,
	}
}

// calculatedMember renders a composed metric as an MDX formula over
// measure references. A divided parent is wrapped in an IIF guard that
// turns zero denominators into NULL, matching the NULLIF guard in the
// generated SQL.
func (g *Generator) calculatedMember(m *schema.ComposedMetric) *CalculatedMember {
	parents := m.Parents()
	exprs := make([]string, len(parents))
	for i, parent := range parents {
		ref := "[Measures].[" + parent.Name() + "]"
		if m.DividedParent(i) {
			exprs[i] = "IIF(" + ref + " = 0, NULL, " + ref + ")"
		} else {
			exprs[i] = ref
		}
	}
	return &CalculatedMember{
		Name:        m.Name(),
		Dimension:   "Measures",
		Description: m.Description(),
		Formula:     m.Substitute(exprs...),
		Properties: []*CalculatedMemberProperty{{
			Name:  "FORMAT_STRING",
			Value: m.NumberFormat().String(),
		}},
	}
}
