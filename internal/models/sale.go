package models

import "time"

// Sale is a terminal transaction: recording one marks the product sold.
// A product has at most one sale.
type Sale struct {
	ID         int       `json:"id"`
	ProductID  int       `json:"product_id"`
	SoldByID   int       `json:"sold_by_id"`
	SoldTo     string    `json:"sold_to"`
	SoldAt     time.Time `json:"sold_at"`
	SalePrice  float64   `json:"sale_price"`
	InvoiceRef string    `json:"invoice_ref,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
