package repo

import "github.com/ditservices/asset-tracker/internal/models"

// MetricsRepository computes the dashboard aggregates. Callers cache the
// result; the repository always computes fresh values.
type MetricsRepository interface {
	GetDashboardStats() (models.DashboardStats, error)
}
