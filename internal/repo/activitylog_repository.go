package repo

import (
	"time"

	"github.com/ditservices/asset-tracker/internal/models"
)

// ActivityLogFilter narrows audit trail listings.
type ActivityLogFilter struct {
	UserID     *int
	EntityType string
	EntityID   *int
	ActionType string
	FromDate   *time.Time
	ToDate     *time.Time
	Limit      int
}

// ActivityLogRepository is the append-only audit trail. Entries are created
// by the activity logger and never updated or deleted.
type ActivityLogRepository interface {
	Create(entry models.ActivityLog) (models.ActivityLog, error)
	Filter(filter ActivityLogFilter) ([]models.ActivityLog, error)
}
