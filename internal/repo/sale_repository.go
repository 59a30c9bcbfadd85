package repo

import "github.com/ditservices/asset-tracker/internal/models"

// SaleRepository records terminal sale transactions. Create persists the sale
// and forces the referenced product's status to sold in one atomic operation.
type SaleRepository interface {
	Create(sale models.Sale) (models.Sale, error)
	GetAll() ([]models.Sale, error)
	GetByID(id int) (models.Sale, error)
	GetByProductID(productID int) (models.Sale, error)
}
