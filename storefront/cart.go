package storefront

import (
	"time"

	"github.com/Atlas00000/productvisualizer/models"
)

// CartItem is the flat record handed to the cart.
type CartItem struct {
	ProductID        string  `json:"productId"`
	ProductName      string  `json:"productName"`
	SelectedColor    string  `json:"selectedColor"`
	SelectedMaterial string  `json:"selectedMaterial"`
	TotalPrice       float64 `json:"totalPrice"`
}

// AddToCart packages the current selection.
func AddToCart(st State) CartItem {
	return CartItem{
		ProductID:        st.Product.ID,
		ProductName:      st.Product.Name,
		SelectedColor:    st.SelectedColor.Name,
		SelectedMaterial: st.SelectedMaterial.Name,
		TotalPrice:       st.TotalPrice,
	}
}

// Event wraps item for a services.CartSink.
func (item CartItem) Event(userID string, at time.Time) models.CartEvent {
	return models.CartEvent{
		EventType:        models.CartEventItemAdded,
		ProductID:        item.ProductID,
		ProductName:      item.ProductName,
		UserID:           userID,
		SelectedColor:    item.SelectedColor,
		SelectedMaterial: item.SelectedMaterial,
		TotalPrice:       item.TotalPrice,
		Timestamp:        at,
	}
}
