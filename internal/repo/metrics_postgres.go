package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/ditservices/asset-tracker/internal/models"
)

// PostgresMetricsRepository computes dashboard aggregates with SQL.
type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardStats() (models.DashboardStats, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var stats models.DashboardStats
	err := r.db.QueryRowContext(ctx, `SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = $1),
		COUNT(*) FILTER (WHERE status = $2),
		COUNT(*) FILTER (WHERE status = $3),
		COUNT(*) FILTER (WHERE status = $4),
		COUNT(*) FILTER (WHERE status = $5)
		FROM products`,
		int(models.StatusAvailable), int(models.StatusAllocated), int(models.StatusInService),
		int(models.StatusRetired), int(models.StatusSold)).
		Scan(&stats.TotalProducts, &stats.AvailableProducts, &stats.AllocatedProducts,
			&stats.InServiceProducts, &stats.RetiredProducts, &stats.SoldProducts)
	if err != nil {
		return models.DashboardStats{}, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(sale_price), 0), COALESCE(AVG(sale_price), 0) FROM sales`).
		Scan(&stats.TotalSales, &stats.TotalRevenue, &stats.AvgSalePrice)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
