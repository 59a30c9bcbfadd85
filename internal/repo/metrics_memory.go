package repo

import "github.com/ditservices/asset-tracker/internal/models"

// InMemoryMetricsRepository computes dashboard stats from the in-memory
// product and sale repositories.
type InMemoryMetricsRepository struct {
	products *InMemoryProductRepository
	sales    *InMemorySaleRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (r *InMemoryMetricsRepository) SetRepositories(products *InMemoryProductRepository, sales *InMemorySaleRepository) {
	r.products = products
	r.sales = sales
}

func (r *InMemoryMetricsRepository) GetDashboardStats() (models.DashboardStats, error) {
	var stats models.DashboardStats

	products, _, err := r.products.Filter(ProductFilter{})
	if err != nil {
		return stats, err
	}
	stats.TotalProducts = len(products)
	for _, p := range products {
		switch p.Status {
		case models.StatusAvailable:
			stats.AvailableProducts++
		case models.StatusAllocated:
			stats.AllocatedProducts++
		case models.StatusInService:
			stats.InServiceProducts++
		case models.StatusRetired:
			stats.RetiredProducts++
		case models.StatusSold:
			stats.SoldProducts++
		}
	}

	sales, err := r.sales.GetAll()
	if err != nil {
		return stats, err
	}
	stats.TotalSales = len(sales)
	for _, s := range sales {
		stats.TotalRevenue += s.SalePrice
	}
	if stats.TotalSales > 0 {
		stats.AvgSalePrice = stats.TotalRevenue / float64(stats.TotalSales)
	}
	return stats, nil
}
