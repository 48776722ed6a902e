package services

import (
	"fmt"

	"github.com/Atlas00000/productvisualizer/models"
)

// Total adds every option delta to the base price. Deltas may be negative and
// the result is not floored.
func Total(basePrice float64, deltas ...float64) float64 {
	total := basePrice
	for _, d := range deltas {
		total += d
	}
	return total
}

// Selection names the chosen options of a product.
type Selection struct {
	Color      string
	Material   string
	Components []string
}

// Quote is the price breakdown for a selection.
type Quote struct {
	BasePrice       float64 `json:"basePrice"`
	ColorPrice      float64 `json:"colorPrice"`
	MaterialPrice   float64 `json:"materialPrice"`
	ComponentsPrice float64 `json:"componentsPrice"`
	Total           float64 `json:"totalPrice"`
}

// QuoteSelection prices sel against the product's options. Every named option
// must exist on the product.
func QuoteSelection(p *models.Product, sel Selection) (Quote, error) {
	opts := p.CustomizationOptions
	var missing []string

	color, ok := opts.FindColor(sel.Color)
	if !ok {
		missing = append(missing, fmt.Sprintf("color %q is not offered for this product", sel.Color))
	}
	material, ok := opts.FindMaterial(sel.Material)
	if !ok {
		missing = append(missing, fmt.Sprintf("material %q is not offered for this product", sel.Material))
	}

	var components float64
	for _, name := range sel.Components {
		comp, ok := opts.FindComponent(name)
		if !ok {
			missing = append(missing, fmt.Sprintf("component %q is not offered for this product", name))
			continue
		}
		components += comp.Price
	}
	if len(missing) > 0 {
		return Quote{}, newValidationError(missing...)
	}

	return Quote{
		BasePrice:       p.BasePrice,
		ColorPrice:      color.Price,
		MaterialPrice:   material.Price,
		ComponentsPrice: components,
		Total:           Total(p.BasePrice, color.Price, material.Price, components),
	}, nil
}
