package domain

import (
	"time"
)

// InvoiceLine is one aggregated product line on an invoice.
type InvoiceLine struct {
	ProductName string    `json:"product_name"`
	UnitPrice   int64     `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	AddedAt     time.Time `json:"added_at"`
	Total       int64     `json:"total"`
}

// Invoice is a derived aggregate of a customer's cart at a point in time.
// It is never persisted; building it twice from an unchanged cart yields
// identical lines and total under two different numbers.
//
// Customer is nil when the customer record could not be found; such an
// invoice is not deliverable.
type Invoice struct {
	Number   string                `json:"number"`
	IssuedAt time.Time             `json:"issued_at"`
	Customer *Customer             `json:"customer,omitempty"`
	Lines    map[int64]InvoiceLine `json:"lines"`
	Total    int64                 `json:"total"`
}
