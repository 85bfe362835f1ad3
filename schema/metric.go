package schema

import "strings"

// Aggregation is the aggregation method of a simple metric.
type Aggregation int

// Aggregation methods.
const (
	Sum Aggregation = iota
	Average
	Count
	DistinctCount
)

// String returns the aggregator name as used in generated artifacts.
func (a Aggregation) String() string {
	switch a {
	case Average:
		return "avg"
	case Count:
		return "count"
	case DistinctCount:
		return "distinct-count"
	default:
		return "sum"
	}
}

// NumberFormat is the display format of metric values.
type NumberFormat int

// Number formats.
const (
	NumberFormatStandard NumberFormat = iota
	NumberFormatCurrency
	NumberFormatPercent
)

// String returns the format name as used in generated artifacts.
func (f NumberFormat) String() string {
	switch f {
	case NumberFormatCurrency:
		return "Currency"
	case NumberFormatPercent:
		return "Percent"
	default:
		return "Standard"
	}
}

// Metric is a numeric aggregation over columns of an entity table:
// either a SimpleMetric or a ComposedMetric.
type Metric interface {
	// Name returns how the metric is displayed in front-ends.
	Name() string
	// Description returns the business definition of the metric.
	Description() string
	// ImportantField reports whether this is a key business metric.
	ImportantField() bool
	// NumberFormat returns the display format of the metric.
	NumberFormat() NumberFormat
	// DataSet returns the data set that contains the metric.
	DataSet() *DataSet
	// DisplayFormula returns a documentation string for the metric
	// formula, e.g. "sum(revenue)" or "[Revenue] / [# Orders]".
	DisplayFormula() string
}

// MetricOption configures a metric added to a data set.
type MetricOption func(*metricConfig)

type metricConfig struct {
	important bool
	format    NumberFormat
}

// Important marks the metric as a key business metric.
func Important() MetricOption {
	return func(c *metricConfig) { c.important = true }
}

// Format sets the display format of the metric. Defaults to
// NumberFormatStandard.
func Format(f NumberFormat) MetricOption {
	return func(c *metricConfig) { c.format = f }
}

// SimpleMetric is a metric computed as a direct aggregation on an
// entity table column.
type SimpleMetric struct {
	name        string
	description string
	columnName  string
	aggregation Aggregation
	important   bool
	format      NumberFormat
	dataSet     *DataSet
}

// Name returns the display name of the metric.
func (m *SimpleMetric) Name() string { return m.name }

// Description returns the business definition of the metric.
func (m *SimpleMetric) Description() string { return m.description }

// ColumnName returns the column the aggregation is based on.
func (m *SimpleMetric) ColumnName() string { return m.columnName }

// Aggregation returns the aggregation method.
func (m *SimpleMetric) Aggregation() Aggregation { return m.aggregation }

// ImportantField reports whether this is a key business metric.
func (m *SimpleMetric) ImportantField() bool { return m.important }

// NumberFormat returns the display format of the metric.
func (m *SimpleMetric) NumberFormat() NumberFormat { return m.format }

// DataSet returns the data set that contains the metric.
func (m *SimpleMetric) DataSet() *DataSet { return m.dataSet }

// DisplayFormula returns a documentation string, e.g. "sum(revenue)".
func (m *SimpleMetric) DisplayFormula() string {
	return m.aggregation.String() + "(" + m.columnName + ")"
}

// ComposedMetric is a metric composed from other metrics through a
// formula template. Parents are referenced positionally; the literal
// template fragments around them are kept verbatim.
//
// Composed metrics may reference other composed metrics. Because a
// formula can only reference metrics that already exist in the data
// set, the metric graph is a DAG by construction.
type ComposedMetric struct {
	name        string
	description string
	parents     []Metric
	// literals holds the template fragments around the positional
	// parent placeholders; len(literals) == len(parents)+1.
	literals  []string
	important bool
	format    NumberFormat
	dataSet   *DataSet
}

// Name returns the display name of the metric.
func (m *ComposedMetric) Name() string { return m.name }

// Description returns the business definition of the metric.
func (m *ComposedMetric) Description() string { return m.description }

// Parents returns the parent metrics in template order. The returned
// slice must not be modified.
func (m *ComposedMetric) Parents() []Metric { return m.parents }

// ImportantField reports whether this is a key business metric.
func (m *ComposedMetric) ImportantField() bool { return m.important }

// NumberFormat returns the display format of the metric.
func (m *ComposedMetric) NumberFormat() NumberFormat { return m.format }

// DataSet returns the data set that contains the metric.
func (m *ComposedMetric) DataSet() *DataSet { return m.dataSet }

// DisplayFormula returns the formula with parents shown by bracketed
// name, e.g. "[Revenue] / [# Orders]".
func (m *ComposedMetric) DisplayFormula() string {
	parts := make([]string, 0, len(m.parents))
	for _, p := range m.parents {
		parts = append(parts, "["+p.Name()+"]")
	}
	return m.Substitute(parts...)
}

// Substitute replaces the positional parent placeholders of the formula
// template with the given expressions.
func (m *ComposedMetric) Substitute(exprs ...string) string {
	var b strings.Builder
	for i, lit := range m.literals {
		b.WriteString(lit)
		if i < len(exprs) {
			b.WriteString(exprs[i])
		}
	}
	return b.String()
}

// DividedParent reports whether the parent at index i appears after a
// division operator in the formula template. Such parents are guarded
// against zero in generated expressions.
func (m *ComposedMetric) DividedParent(i int) bool {
	for j := 0; j <= i && j < len(m.literals); j++ {
		if strings.Contains(m.literals[j], "/") {
			return true
		}
	}
	return false
}
