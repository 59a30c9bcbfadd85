package repo

import (
	"sort"
	"sync"
	"time"

	"github.com/ditservices/asset-tracker/internal/models"
)

// InMemoryActivityLogRepository is an in-memory implementation of
// ActivityLogRepository.
type InMemoryActivityLogRepository struct {
	mu      sync.Mutex
	entries []models.ActivityLog
	nextID  int
}

func NewInMemoryActivityLogRepository() *InMemoryActivityLogRepository {
	return &InMemoryActivityLogRepository{nextID: 1}
}

func (r *InMemoryActivityLogRepository) Create(entry models.ActivityLog) (models.ActivityLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = r.nextID
	r.nextID++
	entry.CreatedAt = time.Now().UTC()
	r.entries = append(r.entries, entry)
	return entry, nil
}

func (r *InMemoryActivityLogRepository) Filter(filter ActivityLogFilter) ([]models.ActivityLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []models.ActivityLog
	for _, e := range r.entries {
		if filter.UserID != nil && e.UserID != *filter.UserID {
			continue
		}
		if filter.EntityType != "" && e.EntityType != filter.EntityType {
			continue
		}
		if filter.EntityID != nil && e.EntityID != *filter.EntityID {
			continue
		}
		if filter.ActionType != "" && e.ActionType != filter.ActionType {
			continue
		}
		if filter.FromDate != nil && e.CreatedAt.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && e.CreatedAt.After(*filter.ToDate) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *InMemoryActivityLogRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
	r.nextID = 1
}
