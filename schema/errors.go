package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for model definition failures.
var (
	// ErrDefinition indicates an invalid model definition, such as a
	// duplicate metric name or a formula referencing an unknown metric.
	ErrDefinition = errors.New("martgen: invalid definition")

	// ErrLookup indicates a by-name lookup that matched zero or more
	// than one element of the model.
	ErrLookup = errors.New("martgen: lookup failed")
)

// DefinitionError reports an invalid model definition. It is returned
// from definition-phase calls only; resolution and generation never
// raise it.
type DefinitionError struct {
	DataSet string // data set name, if the failure has data-set context
	Entity  string // entity name, if the failure has entity context
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	var b strings.Builder
	b.WriteString("martgen: definition error")
	if e.DataSet != "" {
		fmt.Fprintf(&b, " in data set %q", e.DataSet)
	}
	if e.Entity != "" {
		fmt.Fprintf(&b, " on entity %q", e.Entity)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *DefinitionError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for DefinitionError.
func (e *DefinitionError) Is(target error) bool {
	return target == ErrDefinition
}

// NewDefinitionError creates a new DefinitionError.
func NewDefinitionError(dataSet, entity, message string, cause error) *DefinitionError {
	return &DefinitionError{
		DataSet: dataSet,
		Entity:  entity,
		Message: message,
		Cause:   cause,
	}
}

// IsDefinitionError returns true if the error is a DefinitionError.
func IsDefinitionError(err error) bool {
	if err == nil {
		return false
	}
	var e *DefinitionError
	return errors.As(err, &e) || errors.Is(err, ErrDefinition)
}

// LookupError reports a by-name lookup that did not match exactly one
// element: an entity link, an attribute, or a metric.
type LookupError struct {
	Entity  string // entity the lookup ran against
	Kind    string // what was looked up: "entity link", "attribute", "metric"
	Name    string // the name that was looked up
	Prefix  string // the link prefix constraint, if any
	Matches int    // number of matches found
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	ref := fmt.Sprintf("%q", e.Name)
	if e.Prefix != "" {
		ref = fmt.Sprintf("%q / prefix %q", e.Name, e.Prefix)
	}
	if e.Matches > 1 {
		return fmt.Sprintf("martgen: multiple %ss found for %s in entity %q", e.Kind, ref, e.Entity)
	}
	return fmt.Sprintf("martgen: %s %s not found in entity %q", e.Kind, ref, e.Entity)
}

// Is reports whether the target matches the sentinel error for LookupError.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}

// NewLookupError creates a new LookupError.
func NewLookupError(entity, kind, name, prefix string, matches int) *LookupError {
	return &LookupError{
		Entity:  entity,
		Kind:    kind,
		Name:    name,
		Prefix:  prefix,
		Matches: matches,
	}
}

// IsLookupError returns true if the error is a LookupError.
func IsLookupError(err error) bool {
	if err == nil {
		return false
	}
	var e *LookupError
	return errors.As(err, &e) || errors.Is(err, ErrLookup)
}
