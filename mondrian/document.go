package mondrian

import "encoding/xml"

// Element names and attributes follow the Mondrian 3 schema
// definition, https://mondrian.pentaho.com/documentation/xml_schema.php.

// Schema is the root element of a Mondrian schema document.
type Schema struct {
	XMLName xml.Name `xml:"Schema"`
	Name    string   `xml:"name,attr"`
	Cubes   []*Cube  `xml:"Cube"`
}

// Marshal serializes the document with an XML declaration and
// indentation.
func (s *Schema) Marshal() ([]byte, error) {
	out, err := xml.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

// Cube is a named collection of dimensions and measures over one fact
// table.
type Cube struct {
	Name              string              `xml:"name,attr"`
	Description       string              `xml:"description,attr,omitempty"`
	DefaultMeasure    string              `xml:"defaultMeasure,attr,omitempty"`
	Table             *Table              `xml:"Table"`
	Dimensions        []*Dimension        `xml:"Dimension"`
	Measures          []*Measure          `xml:"Measure"`
	CalculatedMembers []*CalculatedMember `xml:"CalculatedMember"`
}

// Table references a database table within a hierarchy or cube.
type Table struct {
	Schema string `xml:"schema,attr,omitempty"`
	Name   string `xml:"name,attr"`
}

// Dimension is a collection of hierarchies over one fact-table column.
// Type is "StandardDimension" or "TimeDimension"; ForeignKey is set for
// dimensions joined through a foreign key of the fact table.
type Dimension struct {
	Name        string       `xml:"name,attr"`
	Type        string       `xml:"type,attr,omitempty"`
	Description string       `xml:"description,attr,omitempty"`
	ForeignKey  string       `xml:"foreignKey,attr,omitempty"`
	Hierarchies []*Hierarchy `xml:"Hierarchy"`
}

// Hierarchy is an ordered set of levels. PrimaryKey and Table are set
// when the hierarchy's levels live in their own dimension table.
type Hierarchy struct {
	Name          string   `xml:"name,attr,omitempty"`
	AllMemberName string   `xml:"allMemberName,attr,omitempty"`
	HasAll        bool     `xml:"hasAll,attr"`
	PrimaryKey    string   `xml:"primaryKey,attr,omitempty"`
	Table         *Table   `xml:"Table,omitempty"`
	Levels        []*Level `xml:"Level"`
}

// Level is one level of a hierarchy.
type Level struct {
	Name          string `xml:"name,attr"`
	Column        string `xml:"column,attr"`
	NameColumn    string `xml:"nameColumn,attr,omitempty"`
	Type          string `xml:"type,attr,omitempty"`
	LevelType     string `xml:"levelType,attr,omitempty"`
	UniqueMembers bool   `xml:"uniqueMembers,attr"`
}

// Measure is a direct aggregation over a fact-table column.
type Measure struct {
	Name         string `xml:"name,attr"`
	Description  string `xml:"description,attr,omitempty"`
	Column       string `xml:"column,attr"`
	Aggregator   string `xml:"aggregator,attr"`
	FormatString string `xml:"formatString,attr,omitempty"`
	Datatype     string `xml:"datatype,attr,omitempty"`
}

// CalculatedMember is a measure computed from other measures by an MDX
// formula.
type CalculatedMember struct {
	Name        string                      `xml:"name,attr"`
	Dimension   string                      `xml:"dimension,attr"`
	Description string                      `xml:"description,attr,omitempty"`
	Formula     string                      `xml:"Formula"`
	Properties  []*CalculatedMemberProperty `xml:"CalculatedMemberProperty"`
}

// CalculatedMemberProperty sets a named property of a calculated
// member, e.g. FORMAT_STRING.
type CalculatedMemberProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}
