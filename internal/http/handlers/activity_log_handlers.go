package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ditservices/asset-tracker/internal/repo"
)

const maxActivityLogPage = 500

// GetActivityLogsHandler godoc
// @Summary Browse the audit trail
// @Description Lists audit entries newest first, capped at 500 per request.
// @Tags activity_logs
// @Produce json
// @Security BearerAuth
// @Param user_id query int false "Acting user"
// @Param entity_type query string false "Entity type (product, sale, user, attachment)"
// @Param entity_id query int false "Entity id"
// @Param action_type query string false "Action (create, update, delete, sale, login, logout)"
// @Param from query string false "Lower bound, YYYY-MM-DD"
// @Param to query string false "Upper bound, YYYY-MM-DD"
// @Param limit query int false "Page size, up to 500"
// @Success 200 {array} models.ActivityLog
// @Router /activity_logs [get]
func GetActivityLogsHandler(w http.ResponseWriter, r *http.Request) {
	filter := repo.ActivityLogFilter{
		EntityType: r.URL.Query().Get("entity_type"),
		ActionType: r.URL.Query().Get("action_type"),
		Limit:      maxActivityLogPage,
	}

	if v := r.URL.Query().Get("user_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "user_id must be an integer", http.StatusBadRequest)
			return
		}
		filter.UserID = &id
	}
	if v := r.URL.Query().Get("entity_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "entity_id must be an integer", http.StatusBadRequest)
			return
		}
		filter.EntityID = &id
	}
	if v := r.URL.Query().Get("from"); v != "" {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			http.Error(w, "from must be a YYYY-MM-DD date", http.StatusBadRequest)
			return
		}
		filter.FromDate = &from
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err := time.Parse(dateLayout, v)
		if err != nil {
			http.Error(w, "to must be a YYYY-MM-DD date", http.StatusBadRequest)
			return
		}
		// Inclusive upper bound: cover the whole day.
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.ToDate = &end
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		if limit > maxActivityLogPage {
			limit = maxActivityLogPage
		}
		filter.Limit = limit
	}

	entries, err := activityRepo.Filter(filter)
	if err != nil {
		http.Error(w, "could not retrieve activity logs", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
