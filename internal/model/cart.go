package model

// CartLine is one product-quantity pairing in a shopping cart. The display
// fields are copied from the product at the time it was first added.
type CartLine struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	ImageURL  string `json:"imageUrl,omitempty"`
	UnitPrice int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Subtotal returns UnitPrice × Quantity.
func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// CartSnapshot is a read-only view of a cart with derived totals.
type CartSnapshot struct {
	Lines      []CartLine `json:"lines"`
	TotalPrice int64      `json:"totalPrice"`
	TotalItems int        `json:"totalItems"`
}

// AddItemRequest is the payload for POST /api/cart/items.
type AddItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

// UpdateQuantityRequest is the payload for PATCH /api/cart/items/{id}.
type UpdateQuantityRequest struct {
	Delta int `json:"delta" validate:"required,ne=0"`
}
