package repo

import (
	"sort"
	"sync"
	"time"

	"github.com/ditservices/asset-tracker/internal/models"
)

// InMemorySaleRepository is an in-memory implementation of SaleRepository.
type InMemorySaleRepository struct {
	mu       sync.Mutex
	sales    map[int]models.Sale
	nextID   int
	products *InMemoryProductRepository
}

func NewInMemorySaleRepository() *InMemorySaleRepository {
	return &InMemorySaleRepository{sales: map[int]models.Sale{}, nextID: 1}
}

// SetProductRepository wires the product store whose status is updated when a
// sale is recorded.
func (r *InMemorySaleRepository) SetProductRepository(p *InMemoryProductRepository) {
	r.products = p
}

func (r *InMemorySaleRepository) Create(sale models.Sale) (models.Sale, error) {
	r.mu.Lock()
	for _, existing := range r.sales {
		if existing.ProductID == sale.ProductID {
			r.mu.Unlock()
			return models.Sale{}, ErrDuplicatedValueUnique
		}
	}
	r.mu.Unlock()

	// Mark the product sold first; if it fails the sale is never stored, so
	// both effects stand or fall together.
	if err := r.products.markSold(sale.ProductID); err != nil {
		return models.Sale{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	sale.ID = r.nextID
	r.nextID++
	sale.CreatedAt = time.Now().UTC()
	r.sales[sale.ID] = sale
	return sale, nil
}

func (r *InMemorySaleRepository) GetAll() ([]models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SoldAt.After(out[j].SoldAt) })
	return out, nil
}

func (r *InMemorySaleRepository) GetByID(id int) (models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sales[id]
	if !ok {
		return models.Sale{}, ErrSaleNotFound
	}
	return s, nil
}

func (r *InMemorySaleRepository) GetByProductID(productID int) (models.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sales {
		if s.ProductID == productID {
			return s, nil
		}
	}
	return models.Sale{}, ErrSaleNotFound
}

func (r *InMemorySaleRepository) hasSaleForProduct(productID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sales {
		if s.ProductID == productID {
			return true
		}
	}
	return false
}

func (r *InMemorySaleRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales = map[int]models.Sale{}
	r.nextID = 1
}
