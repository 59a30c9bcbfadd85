package handlers

import "encoding/json"

type ProductRequest struct {
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	SKU             string          `json:"sku"`
	SerialNumber    string          `json:"serial_number"`
	Vendor          string          `json:"vendor"`
	Brand           string          `json:"brand"`
	Model           string          `json:"model"`
	ModelNumber     string          `json:"model_number"`
	Location        string          `json:"location"`
	Status          string          `json:"status"`
	Condition       string          `json:"condition"`
	PurchaseDate    string          `json:"purchase_date"`
	PurchasePrice   *float64        `json:"purchase_price"`
	LastServiceDate string          `json:"last_service_date"`
	NextServiceDue  string          `json:"next_service_due"`
	Notes           string          `json:"notes"`
	AllocatedToID   *int            `json:"allocated_to_id"`
	Specifications  json.RawMessage `json:"specifications"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type ProductsSearchResult struct {
	Data []map[string]any `json:"data"`
	Meta Meta             `json:"meta,omitempty"`
}

// APIMeta extends the listing metadata for the public API endpoint.
type APIMeta struct {
	TotalCount  int    `json:"total_count"`
	ProductType string `json:"product_type"`
	Cached      bool   `json:"cached"`
	GeneratedAt string `json:"generated_at"`
}

type APIProductsResult struct {
	Success bool             `json:"success"`
	Data    []map[string]any `json:"data"`
	Meta    APIMeta          `json:"meta"`
}

type SaleRequest struct {
	ProductID  int     `json:"product_id"`
	SoldTo     string  `json:"sold_to"`
	SoldAt     string  `json:"sold_at"`
	SalePrice  float64 `json:"sale_price"`
	InvoiceRef string  `json:"invoice_ref"`
}

type UserLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type DashboardResult struct {
	Stats  any    `json:"stats"`
	Cached bool   `json:"cached"`
	AsOf   string `json:"as_of"`
}
