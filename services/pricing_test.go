package services_test

import (
	"errors"
	"testing"

	"github.com/Atlas00000/productvisualizer/models"
	"github.com/Atlas00000/productvisualizer/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteSelection_BrownLeather(t *testing.T) {
	p := chair()

	q, err := services.QuoteSelection(&p, services.Selection{Color: "Brown", Material: "Leather"})
	require.NoError(t, err)
	assert.Equal(t, 374.0, q.Total)
	assert.Equal(t, 299.0, q.BasePrice)
	assert.Equal(t, 25.0, q.ColorPrice)
	assert.Equal(t, 50.0, q.MaterialPrice)
	assert.Zero(t, q.ComponentsPrice)
}

func TestTotal_OrderIndependent(t *testing.T) {
	assert.Equal(t, services.Total(299, 25, 50), services.Total(299, 50, 25))
	assert.Equal(t, 374.0, services.Total(299, 50, 25))
	assert.Equal(t, 299.0, services.Total(299))
}

func TestQuoteSelection_Components(t *testing.T) {
	p := chair()

	q, err := services.QuoteSelection(&p, services.Selection{
		Color:      "Black",
		Material:   "Fabric",
		Components: []string{"Metal Legs", "Standard Legs"},
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, q.ComponentsPrice)
	assert.Equal(t, 329.0, q.Total)
}

func TestQuoteSelection_NegativeDelta(t *testing.T) {
	p := chair()

	q, err := services.QuoteSelection(&p, services.Selection{Color: "Black", Material: "Plastic"})
	require.NoError(t, err)
	assert.Equal(t, 289.0, q.Total)
}

// Stacked discounts can take a product total below zero. Nothing clamps it;
// whether that should be allowed is still undecided.
func TestTotal_BelowZeroIsNotClamped(t *testing.T) {
	p := models.Product{
		BasePrice: 5,
		CustomizationOptions: models.CustomizationOptions{
			Colors:    []models.ColorOption{{Name: "Black", Hex: "#000000", Price: -2}},
			Materials: []models.MaterialOption{{Name: "Plastic", Price: -10}},
		},
	}

	q, err := services.QuoteSelection(&p, services.Selection{Color: "Black", Material: "Plastic"})
	require.NoError(t, err)
	assert.Equal(t, -7.0, q.Total)
}

func TestQuoteSelection_UnknownOptions(t *testing.T) {
	p := chair()

	_, err := services.QuoteSelection(&p, services.Selection{
		Color:      "Green",
		Material:   "Leather",
		Components: []string{"Wheels"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrValidation))

	var svcErr *services.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Len(t, svcErr.Details, 2)
	assert.Contains(t, svcErr.Details[0], `color "Green"`)
	assert.Contains(t, svcErr.Details[1], `component "Wheels"`)
}
