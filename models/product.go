package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry that shoppers can customize.
type Product struct {
	ID                   primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	Name                 string               `json:"name" bson:"name" validate:"required"`
	Description          string               `json:"description" bson:"description" validate:"required"`
	BasePrice            float64              `json:"basePrice" bson:"basePrice" validate:"gte=0"`
	ModelURL             string               `json:"modelUrl" bson:"modelUrl" validate:"required"`
	CustomizationOptions CustomizationOptions `json:"customizationOptions" bson:"customizationOptions"`
	IsActive             bool                 `json:"isActive" bson:"isActive"`
	CreatedAt            time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// CustomizationOptions holds the ordered option lists offered for a product.
type CustomizationOptions struct {
	Colors     []ColorOption     `json:"colors" bson:"colors" validate:"dive"`
	Materials  []MaterialOption  `json:"materials" bson:"materials" validate:"dive"`
	Components []ComponentOption `json:"components" bson:"components" validate:"dive"`
}

// ColorOption is a selectable color. Price is a delta and may be negative.
type ColorOption struct {
	Name  string  `json:"name" bson:"name" validate:"required"`
	Hex   string  `json:"hex" bson:"hex" validate:"required"`
	Price float64 `json:"price" bson:"price"`
}

type MaterialOption struct {
	Name       string  `json:"name" bson:"name" validate:"required"`
	TextureURL string  `json:"textureUrl,omitempty" bson:"textureUrl,omitempty"`
	Price      float64 `json:"price" bson:"price"`
}

type ComponentOption struct {
	Name     string  `json:"name" bson:"name" validate:"required"`
	ModelURL string  `json:"modelUrl,omitempty" bson:"modelUrl,omitempty"`
	Price    float64 `json:"price" bson:"price"`
}

// FindColor returns the color option with the given name.
func (o CustomizationOptions) FindColor(name string) (ColorOption, bool) {
	for _, c := range o.Colors {
		if c.Name == name {
			return c, true
		}
	}
	return ColorOption{}, false
}

// FindMaterial returns the material option with the given name.
func (o CustomizationOptions) FindMaterial(name string) (MaterialOption, bool) {
	for _, m := range o.Materials {
		if m.Name == name {
			return m, true
		}
	}
	return MaterialOption{}, false
}

// FindComponent returns the component option with the given name.
func (o CustomizationOptions) FindComponent(name string) (ComponentOption, bool) {
	for _, c := range o.Components {
		if c.Name == name {
			return c, true
		}
	}
	return ComponentOption{}, false
}
