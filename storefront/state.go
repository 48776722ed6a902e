// Package storefront is the shopper-facing customizer: an immutable selection
// state, pure HTML views of it and the gin handlers that serve them.
package storefront

import (
	"context"

	"github.com/Atlas00000/productvisualizer/models"
	"github.com/Atlas00000/productvisualizer/services"

	"go.uber.org/zap"
)

// Product is the part of a catalog product the customizer shows.
type Product struct {
	ID        string
	Name      string
	BasePrice float64
	ModelURL  string
	Colors    []models.ColorOption
	Materials []models.MaterialOption
}

// FromModel converts a stored product.
func FromModel(p *models.Product) Product {
	return Product{
		ID:        p.ID.Hex(),
		Name:      p.Name,
		BasePrice: p.BasePrice,
		ModelURL:  p.ModelURL,
		Colors:    p.CustomizationOptions.Colors,
		Materials: p.CustomizationOptions.Materials,
	}
}

func (p Product) model() *models.Product {
	return &models.Product{
		Name:      p.Name,
		BasePrice: p.BasePrice,
		CustomizationOptions: models.CustomizationOptions{
			Colors:    p.Colors,
			Materials: p.Materials,
		},
	}
}

// DefaultProduct is the built-in chair shown before a catalog product loads.
func DefaultProduct() Product {
	return Product{
		ID:        "chair-001",
		Name:      "Modern Chair",
		BasePrice: 299,
		Colors: []models.ColorOption{
			{Name: "Black", Hex: "#000000", Price: 0},
			{Name: "White", Hex: "#ffffff", Price: 0},
			{Name: "Brown", Hex: "#8B4513", Price: 25},
			{Name: "Blue", Hex: "#1e40af", Price: 30},
		},
		Materials: []models.MaterialOption{
			{Name: "Fabric", Price: 0},
			{Name: "Leather", Price: 50},
			{Name: "Mesh", Price: 25},
		},
	}
}

// State is a snapshot of the customizer. Transitions return a new State and
// never modify the receiver.
type State struct {
	Loading          bool
	Product          Product
	SelectedColor    models.ColorOption
	SelectedMaterial models.MaterialOption
	TotalPrice       float64
}

// NewState selects the first color and material of p and starts loading.
func NewState(p Product) State {
	st := State{Loading: true, Product: p}
	if len(p.Colors) > 0 {
		st.SelectedColor = p.Colors[0]
	}
	if len(p.Materials) > 0 {
		st.SelectedMaterial = p.Materials[0]
	}
	st.TotalPrice = st.price()
	return st
}

// Ready ends loading. There is no way back to Loading.
func Ready(st State) State {
	st.Loading = false
	return st
}

// SelectColor picks the named color. Unknown names leave the state unchanged.
func (st State) SelectColor(name string) State {
	for _, c := range st.Product.Colors {
		if c.Name == name {
			st.SelectedColor = c
			st.TotalPrice = st.price()
			return st
		}
	}
	return st
}

// SelectMaterial picks the named material. Unknown names leave the state unchanged.
func (st State) SelectMaterial(name string) State {
	for _, m := range st.Product.Materials {
		if m.Name == name {
			st.SelectedMaterial = m
			st.TotalPrice = st.price()
			return st
		}
	}
	return st
}

func (st State) price() float64 {
	return services.Total(st.Product.BasePrice, st.SelectedColor.Price, st.SelectedMaterial.Price)
}

// Loader fetches the product to customize.
type Loader func(ctx context.Context) (Product, error)

// Init loads a product and moves to Ready. A failed load is only logged: the
// state still becomes Ready, showing the default product.
func Init(ctx context.Context, load Loader, logger *zap.Logger) State {
	st := NewState(DefaultProduct())
	p, err := load(ctx)
	if err != nil {
		logger.Error("Failed to initialize customizer", zap.Error(err))
		return Ready(st)
	}
	return Ready(NewState(p))
}

// ViewerUpdate stands in for the 3D viewer, which only records the selection.
func ViewerUpdate(logger *zap.Logger, st State) {
	logger.Debug("Updating 3D model",
		zap.String("product", st.Product.Name),
		zap.String("color", st.SelectedColor.Name),
		zap.String("material", st.SelectedMaterial.Name),
	)
}
