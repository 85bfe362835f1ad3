package schema

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// Type classifies attributes that need special treatment during artifact
// generation. The zero value means the attribute has no special type.
type Type int

// Attribute types.
const (
	// TypeNone marks attributes without special treatment.
	TypeNone Type = iota
	// TypeID marks attributes that identify rows, such as invoice
	// numbers.
	TypeID
	// TypeDate marks date attributes. In star-schema mode they become
	// integer foreign keys to a date dimension.
	TypeDate
	// TypeDuration marks duration attributes. In star-schema mode they
	// become foreign keys to a duration dimension.
	TypeDuration
	// TypeEnum marks enumeration attributes that are cast to text in
	// flattened tables.
	TypeEnum
	// TypeArray marks array attributes. They are excluded from cube
	// dimensions.
	TypeArray
)

// String returns the lower-case name of the type.
func (t Type) String() string {
	switch t {
	case TypeID:
		return "id"
	case TypeDate:
		return "date"
	case TypeDuration:
		return "duration"
	case TypeEnum:
		return "enum"
	case TypeArray:
		return "array"
	default:
		return "none"
	}
}

// Attribute is a property of an entity, corresponding to a column in the
// underlying dimensional table. Attributes are immutable after they have
// been added to an entity.
type Attribute struct {
	name            string
	description     string
	columnName      string
	typ             Type
	highCardinality bool
	personalData    bool
	importantField  bool
	linkable        bool
}

// Name returns how the attribute is displayed in front-ends, e.g. "Order date".
func (a *Attribute) Name() string { return a.name }

// Description returns the business definition of the attribute.
func (a *Attribute) Description() string { return a.description }

// ColumnName returns the column in the underlying database table.
func (a *Attribute) ColumnName() string { return a.columnName }

// Type returns the attribute type tag.
func (a *Attribute) Type() Type { return a.typ }

// HighCardinality reports whether the attribute values are mostly
// uncommon or unique. High-cardinality attributes are excluded from cube
// dimensions by default.
func (a *Attribute) HighCardinality() bool { return a.highCardinality }

// PersonalData reports whether the attribute holds person-related data,
// e.g. an email address.
func (a *Attribute) PersonalData() bool { return a.personalData }

// ImportantField reports whether the attribute is a key field that is
// shown by default in overviews.
func (a *Attribute) ImportantField() bool { return a.importantField }

// AccessibleViaLink reports whether the attribute may surface through
// entity links. If false, the attribute is only visible on the data set
// rooted at its own entity.
func (a *Attribute) AccessibleViaLink() bool { return a.linkable }

// AttributeBuilder builds an Attribute for Entity.AddAttribute.
type AttributeBuilder struct {
	attr Attribute
}

// Attr starts building an attribute with the given display name.
// The column name defaults to the lower-cased name with spaces replaced
// by underscores.
func Attr(name string) *AttributeBuilder {
	return &AttributeBuilder{attr: Attribute{name: name, linkable: true}}
}

// Description sets the business definition of the attribute.
func (b *AttributeBuilder) Description(description string) *AttributeBuilder {
	b.attr.description = description
	return b
}

// Column sets the column name in the underlying database table.
func (b *AttributeBuilder) Column(name string) *AttributeBuilder {
	b.attr.columnName = name
	return b
}

// Type sets the attribute type tag.
func (b *AttributeBuilder) Type(t Type) *AttributeBuilder {
	b.attr.typ = t
	return b
}

// HighCardinality marks the attribute values as mostly uncommon or unique.
func (b *AttributeBuilder) HighCardinality() *AttributeBuilder {
	b.attr.highCardinality = true
	return b
}

// PersonalData marks the attribute as person-related data.
func (b *AttributeBuilder) PersonalData() *AttributeBuilder {
	b.attr.personalData = true
	return b
}

// ImportantField marks the attribute as a key field of its entity.
func (b *AttributeBuilder) ImportantField() *AttributeBuilder {
	b.attr.importantField = true
	return b
}

// RootOnly restricts the attribute to the data set rooted at its own
// entity: it never surfaces through an entity link.
func (b *AttributeBuilder) RootOnly() *AttributeBuilder {
	b.attr.linkable = false
	return b
}

// build finalizes the attribute, deriving the column name if unset.
func (b *AttributeBuilder) build() *Attribute {
	a := b.attr
	if a.columnName == "" {
		a.columnName = underscore(a.name)
	}
	return &a
}

// underscore derives a database identifier from a display name,
// e.g. "Order item" -> "order_item", "OrderItem" -> "order_item".
func underscore(name string) string {
	return inflect.Underscore(strings.ReplaceAll(name, " ", "_"))
}
