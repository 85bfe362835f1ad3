package schema

import (
	"fmt"
	"strings"
)

// Entity is a business object with attributes and links to other
// entities. It corresponds to a table in the dimensional schema.
type Entity struct {
	name        string
	description string
	schemaName  string
	tableName   string
	pkColumn    string

	attributes []*Attribute
	links      []*EntityLink

	// dataSet is the data set rooted at this entity, if any. Lookup
	// only: the entity does not own the data set.
	dataSet *DataSet
}

// EntityOption configures a new entity.
type EntityOption func(*Entity)

// TableName sets the name of the underlying table in the dimensional
// schema. It defaults to the lower-cased entity name with spaces
// replaced by underscores.
func TableName(name string) EntityOption {
	return func(e *Entity) { e.tableName = name }
}

// PrimaryKey sets the primary-key column of the underlying table.
// It defaults to the table name suffixed with "_id".
func PrimaryKey(column string) EntityOption {
	return func(e *Entity) { e.pkColumn = column }
}

// NewEntity creates an entity.
//
// The name is a short noun phrase that captures the nature of the
// entity, e.g. "Customer" or "Order item". The description helps to
// understand the underlying business process. The schema name is the
// database schema of the underlying table, e.g. "dim".
func NewEntity(name, description, schemaName string, opts ...EntityOption) *Entity {
	e := &Entity{
		name:        name,
		description: description,
		schemaName:  schemaName,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.tableName == "" {
		e.tableName = underscore(name)
	}
	if e.pkColumn == "" {
		e.pkColumn = e.tableName + "_id"
	}
	return e
}

// Name returns the display name of the entity.
func (e *Entity) Name() string { return e.name }

// Description returns the business description of the entity.
func (e *Entity) Description() string { return e.description }

// SchemaName returns the database schema of the underlying table.
func (e *Entity) SchemaName() string { return e.schemaName }

// TableName returns the name of the underlying table.
func (e *Entity) TableName() string { return e.tableName }

// PrimaryKeyColumn returns the primary-key column of the underlying table.
func (e *Entity) PrimaryKeyColumn() string { return e.pkColumn }

// Attributes returns the attributes in definition order. The returned
// slice must not be modified.
func (e *Entity) Attributes() []*Attribute { return e.attributes }

// Links returns the outgoing entity links in definition order. The
// returned slice must not be modified.
func (e *Entity) Links() []*EntityLink { return e.links }

// DataSet returns the data set rooted at this entity, or nil.
func (e *Entity) DataSet() *DataSet { return e.dataSet }

// AddAttribute adds an attribute built with Attr to the entity.
// Attribute names must be non-blank and unique within the entity.
func (e *Entity) AddAttribute(b *AttributeBuilder) error {
	a := b.build()
	if strings.TrimSpace(a.name) == "" {
		return NewDefinitionError("", e.name, "attribute name must not be blank", nil)
	}
	for _, existing := range e.attributes {
		if existing.name == a.name {
			return NewDefinitionError("", e.name, fmt.Sprintf("attribute %q already exists", a.name), nil)
		}
	}
	e.attributes = append(e.attributes, a)
	return nil
}

// FindAttribute returns the attribute with the given name.
func (e *Entity) FindAttribute(name string) (*Attribute, error) {
	for _, a := range e.attributes {
		if a.name == name {
			return a, nil
		}
	}
	return nil, NewLookupError(e.name, "attribute", name, "", 0)
}

// LinkEntity adds a link from the entity to another entity,
// corresponding to a foreign-key relationship. The foreign-key column
// defaults to the target table name suffixed with "_fk", the prefix
// defaults to the target entity name.
func (e *Entity) LinkEntity(target *Entity, opts ...LinkOption) *EntityLink {
	l := &EntityLink{
		target: target,
		prefix: target.name,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.fkColumn == "" {
		l.fkColumn = target.tableName + "_fk"
	}
	e.links = append(e.links, l)
	return l
}

// FindEntityLink returns the unique link whose target entity name
// matches, and whose prefix matches if one is given. Zero or multiple
// matches fail with a LookupError.
func (e *Entity) FindEntityLink(targetName string, prefix ...string) (*EntityLink, error) {
	var matches []*EntityLink
	for _, l := range e.links {
		if l.target.name != targetName {
			continue
		}
		if len(prefix) > 0 && l.prefix != prefix[0] {
			continue
		}
		matches = append(matches, l)
	}
	var p string
	if len(prefix) > 0 {
		p = prefix[0]
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return nil, NewLookupError(e.name, "entity link", targetName, p, 0)
	default:
		return nil, NewLookupError(e.name, "entity link", targetName, p, len(matches))
	}
}

// ConnectedEntities returns the entity and all recursively linked
// entities in first-discovery order. It is used for model discovery
// only, not for path enumeration.
func (e *Entity) ConnectedEntities() []*Entity {
	visited := map[*Entity]bool{e: true}
	result := []*Entity{e}
	var traverse func(*Entity)
	traverse = func(entity *Entity) {
		for _, l := range entity.links {
			if !visited[l.target] {
				visited[l.target] = true
				result = append(result, l.target)
				traverse(l.target)
			}
		}
	}
	traverse(e)
	return result
}

// EntityLink is a directed link from one entity to another,
// corresponding to a foreign-key relationship. Two links to the same
// target entity with different prefixes are distinct edges.
type EntityLink struct {
	target      *Entity
	prefix      string
	description string
	fkColumn    string
}

// LinkOption configures an entity link.
type LinkOption func(*EntityLink)

// ForeignKeyColumn sets the foreign-key column in the source entity,
// e.g. "first_order_fk" in the "customer" table.
func ForeignKeyColumn(column string) LinkOption {
	return func(l *EntityLink) { l.fkColumn = column }
}

// Prefix sets the prefix for attributes reached through the link,
// e.g. "First order". An explicitly empty prefix leaves linked
// attribute names unprefixed.
func Prefix(prefix string) LinkOption {
	return func(l *EntityLink) { l.prefix = prefix }
}

// LinkDescription sets a short explanation for the relation between
// the two entities.
func LinkDescription(description string) LinkOption {
	return func(l *EntityLink) { l.description = description }
}

// Target returns the referenced entity.
func (l *EntityLink) Target() *Entity { return l.target }

// Prefix returns the attribute name prefix of the link.
func (l *EntityLink) Prefix() string { return l.prefix }

// Description returns the description of the relation, if any.
func (l *EntityLink) Description() string { return l.description }

// ForeignKeyColumn returns the foreign-key column in the source entity.
func (l *EntityLink) ForeignKeyColumn() string { return l.fkColumn }
