package domain

import (
	"time"
)

// Product is an item in the brewery catalog. Only the name is updatable
// after creation; everything else is fixed at registration time.
type Product struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Measure         string    `json:"measure" db:"measure"` // "<n> ml" or "<n> g"
	ExpiresAt       time.Time `json:"expires_at" db:"expires_at"`
	ProductionPrice int64     `json:"production_price" db:"production_price"`
	SalePrice       int64     `json:"sale_price" db:"sale_price"`
}
