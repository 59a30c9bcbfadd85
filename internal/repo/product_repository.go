package repo

import (
	"time"

	"github.com/ditservices/asset-tracker/internal/models"
)

// ProductFilter narrows product listings. Query matches name, sku,
// serial number, brand, and model case-insensitively.
type ProductFilter struct {
	Query    string
	Category *models.Category
	Status   *models.Status
	Offset   *int
	Limit    *int
}

// ProductRepository defines the interface for product data operations.
// Create and Update write the product and its equipment record atomically:
// either both persist or neither does.
type ProductRepository interface {
	Create(product models.Product) (models.Product, error)
	Filter(filter ProductFilter) ([]models.Product, int, error)
	GetByID(id int) (models.Product, error)
	Update(product models.Product) (models.Product, error)
	Delete(id int) error
	ServiceDueBetween(from, to time.Time) ([]models.Product, error)
}
