package domain

import (
	"time"
)

// CartItem is one pending product line in a customer's cart ("venta").
// At most one cart item may exist per (customer, product) pair; the row is
// never updated in place; quantity changes require delete then re-add.
type CartItem struct {
	ID         int64     `json:"id" db:"id"`
	AddedAt    time.Time `json:"added_at" db:"added_at"`
	ProductID  int64     `json:"product_id" db:"product_id"`
	CustomerID int64     `json:"customer_id" db:"customer_id"`
	Quantity   int       `json:"quantity" db:"quantity"`
}
