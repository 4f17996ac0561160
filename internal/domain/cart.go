package domain

import "time"

type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"-"`
	UserID    string     `bson:"user_id" json:"userId"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}

// CartItem is one line in a cart. Name, price and image are denormalized
// copies of product data taken at the time the item was added.
type CartItem struct {
	ProductID int     `bson:"product_id" json:"id"`
	Name      string  `bson:"name,omitempty" json:"name,omitempty"`
	Size      string  `bson:"size,omitempty" json:"size,omitempty"`
	Color     string  `bson:"color,omitempty" json:"color,omitempty"`
	Price     float64 `bson:"price,omitempty" json:"price,omitempty"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

// SameVariant reports whether two items refer to the same product variant.
// Size and color absent on both sides count as a match.
func (i CartItem) SameVariant(other CartItem) bool {
	return i.ProductID == other.ProductID && i.Size == other.Size && i.Color == other.Color
}
