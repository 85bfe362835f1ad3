package schema_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/martgen/schema"
)

func TestDefinitionError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := schema.NewDefinitionError("Order items", "Order", "duplicate metric", nil)
		assert.Equal(t,
			`martgen: definition error in data set "Order items" on entity "Order": duplicate metric`,
			err.Error())
	})

	t.Run("Error_with_cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := schema.NewDefinitionError("", "", "invalid formula", cause)
		assert.Equal(t, "martgen: definition error: invalid formula: boom", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := schema.NewDefinitionError("Order items", "", "duplicate metric", nil)
		assert.True(t, errors.Is(err, schema.ErrDefinition))
	})

	t.Run("Unwrap", func(t *testing.T) {
		cause := errors.New("boom")
		err := schema.NewDefinitionError("", "", "invalid formula", cause)
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("IsDefinitionError", func(t *testing.T) {
		err := schema.NewDefinitionError("Order items", "", "duplicate metric", nil)
		assert.True(t, schema.IsDefinitionError(err))

		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, schema.IsDefinitionError(wrapped))

		assert.True(t, schema.IsDefinitionError(schema.ErrDefinition))

		assert.False(t, schema.IsDefinitionError(errors.New("other error")))
		assert.False(t, schema.IsDefinitionError(nil))
	})
}

func TestLookupError(t *testing.T) {
	t.Run("Error_not_found", func(t *testing.T) {
		err := schema.NewLookupError("Customer", "entity link", "Product", "", 0)
		assert.Equal(t, `martgen: entity link "Product" not found in entity "Customer"`, err.Error())
	})

	t.Run("Error_with_prefix", func(t *testing.T) {
		err := schema.NewLookupError("Customer", "entity link", "Order", "First order", 0)
		assert.Equal(t,
			`martgen: entity link "Order" / prefix "First order" not found in entity "Customer"`,
			err.Error())
	})

	t.Run("Error_ambiguous", func(t *testing.T) {
		err := schema.NewLookupError("Customer", "entity link", "Order", "", 2)
		assert.Equal(t,
			`martgen: multiple entity links found for "Order" in entity "Customer"`,
			err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := schema.NewLookupError("Order", "attribute", "Order date", "", 0)
		assert.True(t, errors.Is(err, schema.ErrLookup))
	})

	t.Run("IsLookupError", func(t *testing.T) {
		err := schema.NewLookupError("Order", "attribute", "Order date", "", 0)
		assert.True(t, schema.IsLookupError(err))

		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, schema.IsLookupError(wrapped))

		assert.True(t, schema.IsLookupError(schema.ErrLookup))

		assert.False(t, schema.IsLookupError(errors.New("other error")))
		assert.False(t, schema.IsLookupError(nil))
	})
}
