package repo

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ditservices/asset-tracker/internal/equipment"
	"github.com/ditservices/asset-tracker/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository, used by the handler test suites.
type InMemoryProductRepository struct {
	mu       sync.Mutex
	products map[int]models.Product
	nextID   int
	nextEqID int
	sales    *InMemorySaleRepository
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: map[int]models.Product{},
		nextID:   1,
		nextEqID: 1,
	}
}

// SetSaleRepository wires the sale store used for delete restriction.
func (r *InMemoryProductRepository) SetSaleRepository(s *InMemorySaleRepository) {
	r.sales = s
}

func (r *InMemoryProductRepository) Create(p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.products {
		if existing.SKU == p.SKU || existing.SerialNumber == p.SerialNumber {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}

	p.ID = r.nextID
	r.nextID++
	if p.Equipment != nil {
		p.Equipment.SetEquipmentID(r.nextEqID)
		r.nextEqID++
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.products[p.ID] = cloneProduct(p)
	return p, nil
}

func (r *InMemoryProductRepository) Filter(filter ProductFilter) ([]models.Product, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.Product
	for _, p := range r.products {
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		if filter.Query != "" && !matchesQuery(p, filter.Query) {
			continue
		}
		matched = append(matched, cloneProduct(p))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := len(matched)
	if filter.Offset != nil && *filter.Offset > 0 {
		if *filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[*filter.Offset:]
		}
	}
	if filter.Limit != nil && *filter.Limit > 0 && *filter.Limit < len(matched) {
		matched = matched[:*filter.Limit]
	}
	return matched, total, nil
}

func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r *InMemoryProductRepository) Update(p models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[p.ID]
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	if stored.Status == models.StatusSold && p.Status != models.StatusSold {
		return models.Product{}, ErrProductSold
	}
	for _, existing := range r.products {
		if existing.ID == p.ID {
			continue
		}
		if existing.SKU == p.SKU || existing.SerialNumber == p.SerialNumber {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}

	p.CreatedAt = stored.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	if p.Equipment != nil && p.Equipment.EquipmentID() == 0 {
		p.Equipment.SetEquipmentID(stored.Equipment.EquipmentID())
	}
	r.products[p.ID] = cloneProduct(p)
	return p, nil
}

func (r *InMemoryProductRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	if r.sales != nil && r.sales.hasSaleForProduct(id) {
		return ErrHasDependentSale
	}
	delete(r.products, id)
	return nil
}

func (r *InMemoryProductRepository) ServiceDueBetween(from, to time.Time) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var due []models.Product
	for _, p := range r.products {
		if p.NextServiceDue == nil || p.Status == models.StatusSold || p.Status == models.StatusRetired {
			continue
		}
		if p.NextServiceDue.Before(from) || p.NextServiceDue.After(to) {
			continue
		}
		due = append(due, cloneProduct(p))
	}
	sort.Slice(due, func(i, j int) bool { return due[i].NextServiceDue.Before(*due[j].NextServiceDue) })
	return due, nil
}

// markSold is invoked by the sale repository inside its logical transaction.
func (r *InMemoryProductRepository) markSold(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[id]
	if !ok {
		return ErrProductNotFound
	}
	p.Status = models.StatusSold
	p.UpdatedAt = time.Now().UTC()
	r.products[id] = p
	return nil
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = map[int]models.Product{}
	r.nextID = 1
	r.nextEqID = 1
}

func matchesQuery(p models.Product, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{p.Name, p.SKU, p.SerialNumber, p.Brand, p.Model} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func cloneProduct(p models.Product) models.Product {
	if p.Equipment == nil {
		return p
	}
	h, err := equipment.Lookup(p.Equipment.EquipmentCategory())
	if err != nil {
		return p
	}
	clone := h.New()
	data, _ := json.Marshal(p.Equipment)
	_ = json.Unmarshal(data, clone)
	clone.SetEquipmentID(p.Equipment.EquipmentID())
	p.Equipment = clone
	return p
}
