package resolve

import "github.com/syssam/martgen/schema"

// Resolver computes the visible paths and attributes of one data set.
// It is configured once and safe for repeated use; every call re-walks
// the model.
type Resolver struct {
	dataSet             *schema.DataSet
	namer               *Namer
	includePersonalData bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithNamer sets the name generator used for display names. Defaults
// to NewNamer().
func WithNamer(n *Namer) Option {
	return func(r *Resolver) { r.namer = n }
}

// ExcludePersonalData hides attributes flagged as personal data from
// the resolved view.
func ExcludePersonalData() Option {
	return func(r *Resolver) { r.includePersonalData = false }
}

// New creates a Resolver for the data set. Personal data is included
// unless ExcludePersonalData is given.
func New(ds *schema.DataSet, opts ...Option) *Resolver {
	r := &Resolver{
		dataSet:             ds,
		namer:               NewNamer(),
		includePersonalData: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DataSet returns the data set being resolved.
func (r *Resolver) DataSet() *schema.DataSet { return r.dataSet }

// Namer returns the name generator of the resolver.
func (r *Resolver) Namer() *Namer { return r.namer }

// Paths returns all visible paths to connected entities in depth-first
// discovery order, deduplicated, with every path's proper prefixes
// present.
//
// Extending a path by one link is pruned if the link instance already
// occurs in the path (cycle avoidance), if the extended path is
// explicitly excluded (which also stops descent, implicitly excluding
// all longer paths), or if the extended path exceeds the data set's
// maximum link depth without being explicitly included. The
// depth-include override applies to the exact path only, so traversal
// still descends through it looking for further included paths.
func (r *Resolver) Paths() []schema.Path {
	ds := r.dataSet
	maxDepth, depthLimited := ds.MaxLinkDepth()

	var paths []schema.Path

	// appendWithPrefixes registers a surviving path together with all
	// of its proper prefixes, each at most once, preserving
	// first-discovery order.
	appendWithPrefixes := func(path schema.Path) {
		for i := 1; i <= len(path); i++ {
			if !pathListContains(paths, path[:i]) {
				paths = append(paths, path[:i])
			}
		}
	}

	var traverse func(entity *schema.Entity, current schema.Path)
	traverse = func(entity *schema.Entity, current schema.Path) {
		for _, link := range entity.Links() {
			if current.Contains(link) {
				continue
			}
			path := append(append(schema.Path{}, current...), link)
			if pathListContains(ds.ExcludedPaths(), path) {
				continue
			}
			if !depthLimited || len(path) <= maxDepth || pathListContains(ds.IncludedPaths(), path) {
				appendWithPrefixes(path)
			}
			// Descend even past the depth limit: a longer path may be
			// explicitly included. Exclusion is the only rule that
			// cuts off a whole subtree.
			traverse(link.Target(), path)
		}
	}
	traverse(ds.Entity(), nil)

	return paths
}

// NamedAttribute is an attribute under its generated display name.
type NamedAttribute struct {
	Name      string
	Attribute *schema.Attribute
}

// PathAttributes holds the visible attributes of the entity reached
// through one path. The empty path stands for the root entity itself.
type PathAttributes struct {
	Path       schema.Path
	Entity     *schema.Entity
	Attributes []NamedAttribute
}

// Attributes returns the visible attributes at the root and at every
// path from Paths, in path order, each attribute under its generated
// display name in entity definition order.
//
// An attribute of the entity at a non-empty path is visible iff it is
// not excluded for the path, it is on the path's whitelist if one
// exists, it is accessible via entity links, and it either is not
// personal data or personal data is included. Root attributes are
// subject only to the personal-data filter.
func (r *Resolver) Attributes() []PathAttributes {
	ds := r.dataSet
	root := PathAttributes{Entity: ds.Entity()}
	for _, a := range ds.Entity().Attributes() {
		if !r.includePersonalData && a.PersonalData() {
			continue
		}
		root.Attributes = append(root.Attributes, NamedAttribute{
			Name:      r.namer.AttributeName(a, nil),
			Attribute: a,
		})
	}
	result := []PathAttributes{root}

	for _, path := range r.Paths() {
		entity := path.Target()
		pa := PathAttributes{Path: path, Entity: entity}
		excluded, hasExcluded := ds.ExcludedAttributesFor(path)
		included, hasIncluded := ds.IncludedAttributesFor(path)
		for _, a := range entity.Attributes() {
			if hasExcluded && containsAttribute(excluded, a) {
				continue
			}
			if hasIncluded && !containsAttribute(included, a) {
				continue
			}
			if !a.AccessibleViaLink() {
				continue
			}
			if !r.includePersonalData && a.PersonalData() {
				continue
			}
			pa.Attributes = append(pa.Attributes, NamedAttribute{
				Name:      r.namer.AttributeName(a, path),
				Attribute: a,
			})
		}
		result = append(result, pa)
	}
	return result
}

func pathListContains(paths []schema.Path, p schema.Path) bool {
	for _, candidate := range paths {
		if candidate.Equal(p) {
			return true
		}
	}
	return false
}

func containsAttribute(attrs []*schema.Attribute, a *schema.Attribute) bool {
	for _, candidate := range attrs {
		if candidate == a {
			return true
		}
	}
	return false
}
