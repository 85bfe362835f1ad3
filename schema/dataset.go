package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// Path is an ordered tuple of entity links describing a traversal from
// a data set's root entity. Path identity is the identity of the link
// instances: two links to the same target entity with different
// prefixes form distinct paths.
type Path []*EntityLink

// Equal reports whether both paths consist of the same link instances
// in the same order.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Contains reports whether the link instance occurs in the path.
func (p Path) Contains(l *EntityLink) bool {
	for _, el := range p {
		if el == l {
			return true
		}
	}
	return false
}

// Target returns the terminal entity of the path, or nil for the empty
// path.
func (p Path) Target() *Entity {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1].target
}

// containsPath reports whether the list holds an equal path.
func containsPath(paths []Path, p Path) bool {
	for _, candidate := range paths {
		if candidate.Equal(p) {
			return true
		}
	}
	return false
}

// Hop is one segment of a path specification: a target entity name with
// an optional link prefix to disambiguate parallel links.
type Hop struct {
	entity    string
	prefix    string
	hasPrefix bool
}

// Via specifies a path segment by target entity name.
func Via(entity string) Hop {
	return Hop{entity: entity}
}

// ViaPrefixed specifies a path segment by target entity name and link
// prefix, for entities that are linked more than once.
func ViaPrefixed(entity, prefix string) Hop {
	return Hop{entity: entity, prefix: prefix, hasPrefix: true}
}

// DataSet is a named view rooted at one entity, with metrics and
// visibility overrides for recursively linked entities.
type DataSet struct {
	entity       *Entity
	name         string
	maxLinkDepth int // -1 when unlimited

	metricOrder []string
	metrics     map[string]Metric

	excludedPaths []Path
	includedPaths []Path
	excludedAttrs []pathAttributes
	includedAttrs []pathAttributes
}

// pathAttributes binds an attribute override set to an exact path.
type pathAttributes struct {
	path  Path
	attrs []*Attribute
}

// DataSetOption configures a new data set.
type DataSetOption func(*DataSet)

// MaxLinkDepth limits how many entity links may be traversed from the
// root entity. Paths beyond the limit are dropped unless explicitly
// included with IncludePath.
func MaxLinkDepth(depth int) DataSetOption {
	return func(ds *DataSet) { ds.maxLinkDepth = depth }
}

// NewDataSet creates a data set rooted at the given entity and
// registers itself as the entity's data set.
func NewDataSet(entity *Entity, name string, opts ...DataSetOption) *DataSet {
	ds := &DataSet{
		entity:       entity,
		name:         name,
		maxLinkDepth: -1,
		metrics:      make(map[string]Metric),
	}
	for _, opt := range opts {
		opt(ds)
	}
	entity.dataSet = ds
	return ds
}

// Entity returns the root entity of the data set.
func (ds *DataSet) Entity() *Entity { return ds.entity }

// Name returns the name of the data set.
func (ds *DataSet) Name() string { return ds.name }

// ID returns a representation of the name that can be used in URLs and
// cache keys.
func (ds *DataSet) ID() string {
	return strings.ToLower(strings.ReplaceAll(ds.name, " ", "_"))
}

// MaxLinkDepth returns the maximal link-traversal depth and whether a
// limit is set.
func (ds *DataSet) MaxLinkDepth() (int, bool) {
	if ds.maxLinkDepth < 0 {
		return 0, false
	}
	return ds.maxLinkDepth, true
}

// Metrics returns the metrics in definition order.
func (ds *DataSet) Metrics() []Metric {
	result := make([]Metric, 0, len(ds.metricOrder))
	for _, name := range ds.metricOrder {
		result = append(result, ds.metrics[name])
	}
	return result
}

// Metric returns the metric with the given name.
func (ds *DataSet) Metric(name string) (Metric, bool) {
	m, ok := ds.metrics[name]
	return m, ok
}

// AddSimpleMetric adds a metric that is computed as a direct
// aggregation on an entity table column. Metric names must be unique
// within the data set.
func (ds *DataSet) AddSimpleMetric(name, description, columnName string, aggregation Aggregation, opts ...MetricOption) error {
	if err := ds.checkNewMetric(name); err != nil {
		return err
	}
	var cfg metricConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	ds.registerMetric(&SimpleMetric{
		name:        name,
		description: description,
		columnName:  columnName,
		aggregation: aggregation,
		important:   cfg.important,
		format:      cfg.format,
		dataSet:     ds,
	})
	return nil
}

// metricRefPattern matches bracketed metric references in a composed
// formula, e.g. "[Revenue]" in "[Revenue] / [# Orders]".
var metricRefPattern = regexp.MustCompile(`\[(.*?)\]`)

// AddComposedMetric adds a metric that is computed from other metrics
// of the data set. The formula references parent metrics by bracketed
// display name, e.g. "[Revenue] / ([# Orders] + [# Carts])". A
// reference to an unknown metric is a definition error.
func (ds *DataSet) AddComposedMetric(name, description, formula string, opts ...MetricOption) error {
	if err := ds.checkNewMetric(name); err != nil {
		return err
	}
	var cfg metricConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	// "[a] \n   + [b]" -> "[a] + [b]"
	cleaned := strings.Join(strings.Fields(formula), " ")

	var (
		parents  []Metric
		literals []string
		last     int
	)
	for _, loc := range metricRefPattern.FindAllStringSubmatchIndex(cleaned, -1) {
		literals = append(literals, cleaned[last:loc[0]])
		last = loc[1]
		ref := cleaned[loc[2]:loc[3]]
		parent, ok := ds.metrics[ref]
		if !ok {
			return NewDefinitionError(ds.name, "", fmt.Sprintf("formula of metric %q references unknown metric %q", name, ref), nil)
		}
		parents = append(parents, parent)
	}
	literals = append(literals, cleaned[last:])

	ds.registerMetric(&ComposedMetric{
		name:        name,
		description: description,
		parents:     parents,
		literals:    literals,
		important:   cfg.important,
		format:      cfg.format,
		dataSet:     ds,
	})
	return nil
}

func (ds *DataSet) checkNewMetric(name string) error {
	if name == "" {
		return NewDefinitionError(ds.name, "", "metric name must not be empty", nil)
	}
	if _, ok := ds.metrics[name]; ok {
		return NewDefinitionError(ds.name, "", fmt.Sprintf("metric %q already exists", name), nil)
	}
	return nil
}

func (ds *DataSet) registerMetric(m Metric) {
	ds.metrics[m.Name()] = m
	ds.metricOrder = append(ds.metricOrder, m.Name())
}

// ParsePath resolves a path specification into the tuple of entity
// link instances it names, starting at the root entity.
func (ds *DataSet) ParsePath(hops ...Hop) (Path, error) {
	entity := ds.entity
	path := make(Path, 0, len(hops))
	for _, hop := range hops {
		if hop.entity == "" {
			return nil, NewDefinitionError(ds.name, entity.name, "path segment must name a target entity", nil)
		}
		var (
			link *EntityLink
			err  error
		)
		if hop.hasPrefix {
			link, err = entity.FindEntityLink(hop.entity, hop.prefix)
		} else {
			link, err = entity.FindEntityLink(hop.entity)
		}
		if err != nil {
			return nil, err
		}
		path = append(path, link)
		entity = link.target
	}
	return path, nil
}

// ExcludePath excludes a connected entity, and everything reachable
// through it, from the resolved data set.
func (ds *DataSet) ExcludePath(hops ...Hop) error {
	path, err := ds.ParsePath(hops...)
	if err != nil {
		return err
	}
	if !containsPath(ds.excludedPaths, path) {
		ds.excludedPaths = append(ds.excludedPaths, path)
	}
	return nil
}

// IncludePath includes a connected entity that would otherwise be
// dropped by the MaxLinkDepth limit. The override applies to the exact
// path only, not to its descendants.
func (ds *DataSet) IncludePath(hops ...Hop) error {
	path, err := ds.ParsePath(hops...)
	if err != nil {
		return err
	}
	if !containsPath(ds.includedPaths, path) {
		ds.includedPaths = append(ds.includedPaths, path)
	}
	return nil
}

// ExcludeAttributes hides attributes of the connected entity at the
// given path. Without attribute names, all attributes of the entity
// are hidden.
func (ds *DataSet) ExcludeAttributes(hops []Hop, attributeNames ...string) error {
	path, err := ds.ParsePath(hops...)
	if err != nil {
		return err
	}
	if len(path) == 0 {
		return NewDefinitionError(ds.name, ds.entity.name, "attribute overrides require a non-empty path", nil)
	}
	entity := path.Target()
	attrs := entity.attributes
	if len(attributeNames) > 0 {
		attrs, err = findAttributes(entity, attributeNames)
		if err != nil {
			return err
		}
	}
	ds.excludedAttrs = setPathAttributes(ds.excludedAttrs, path, attrs)
	return nil
}

// IncludeAttributes hides all attributes of the connected entity at
// the given path except the named ones. The presence of an include
// call makes the list exhaustive for that path. The path itself is
// implicitly included against the MaxLinkDepth limit, as an attribute
// whitelist is meaningless for an invisible path.
func (ds *DataSet) IncludeAttributes(hops []Hop, attributeNames ...string) error {
	path, err := ds.ParsePath(hops...)
	if err != nil {
		return err
	}
	if len(path) == 0 {
		return NewDefinitionError(ds.name, ds.entity.name, "attribute overrides require a non-empty path", nil)
	}
	attrs, err := findAttributes(path.Target(), attributeNames)
	if err != nil {
		return err
	}
	ds.includedAttrs = setPathAttributes(ds.includedAttrs, path, attrs)
	if !containsPath(ds.includedPaths, path) {
		ds.includedPaths = append(ds.includedPaths, path)
	}
	return nil
}

// setPathAttributes replaces the override for an equal path, or
// appends a new one. A repeated call for the same path wins.
func setPathAttributes(overrides []pathAttributes, path Path, attrs []*Attribute) []pathAttributes {
	for i, pa := range overrides {
		if pa.path.Equal(path) {
			overrides[i].attrs = attrs
			return overrides
		}
	}
	return append(overrides, pathAttributes{path: path, attrs: attrs})
}

func findAttributes(entity *Entity, names []string) ([]*Attribute, error) {
	attrs := make([]*Attribute, 0, len(names))
	for _, name := range names {
		a, err := entity.FindAttribute(name)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

// ExcludedPaths returns the excluded paths in definition order. The
// returned slice must not be modified.
func (ds *DataSet) ExcludedPaths() []Path { return ds.excludedPaths }

// IncludedPaths returns the depth-override paths in definition order.
// The returned slice must not be modified.
func (ds *DataSet) IncludedPaths() []Path { return ds.includedPaths }

// ExcludedAttributesFor returns the excluded attributes for the exact
// path, and whether an exclude override exists for it.
func (ds *DataSet) ExcludedAttributesFor(p Path) ([]*Attribute, bool) {
	for _, pa := range ds.excludedAttrs {
		if pa.path.Equal(p) {
			return pa.attrs, true
		}
	}
	return nil, false
}

// IncludedAttributesFor returns the attribute whitelist for the exact
// path, and whether an include override exists for it.
func (ds *DataSet) IncludedAttributesFor(p Path) ([]*Attribute, bool) {
	for _, pa := range ds.includedAttrs {
		if pa.path.Equal(p) {
			return pa.attrs, true
		}
	}
	return nil, false
}
