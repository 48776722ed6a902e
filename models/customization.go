package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customization is a shopper's saved configuration of a product together with
// the price it had when it was saved. ProductID is a soft reference: nothing
// cascades when the product is deactivated.
type Customization struct {
	ID            primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	ProductID     primitive.ObjectID `json:"productId" bson:"productId"`
	UserID        string             `json:"userId" bson:"userId" validate:"required"`
	Configuration Configuration      `json:"configuration" bson:"configuration"`
	TotalPrice    float64            `json:"totalPrice" bson:"totalPrice" validate:"gte=0"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Configuration struct {
	SelectedColor      string   `json:"selectedColor" bson:"selectedColor" validate:"required"`
	SelectedMaterial   string   `json:"selectedMaterial" bson:"selectedMaterial" validate:"required"`
	SelectedComponents []string `json:"selectedComponents" bson:"selectedComponents"`
}

// CartEvent is emitted when a customization is added to the cart.
type CartEvent struct {
	EventType          string    `json:"event_type"`
	CustomizationID    string    `json:"customization_id,omitempty"`
	ProductID          string    `json:"product_id"`
	ProductName        string    `json:"product_name"`
	UserID             string    `json:"user_id"`
	SelectedColor      string    `json:"selected_color"`
	SelectedMaterial   string    `json:"selected_material"`
	SelectedComponents []string  `json:"selected_components,omitempty"`
	TotalPrice         float64   `json:"total_price"`
	Timestamp          time.Time `json:"timestamp"`
}

const CartEventItemAdded = "cart.item_added"
