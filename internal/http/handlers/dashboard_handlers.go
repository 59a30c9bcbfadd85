package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ditservices/asset-tracker/internal/models"
	"github.com/ditservices/asset-tracker/internal/redissvc"
)

type cachedStats struct {
	Stats models.DashboardStats `json:"stats"`
	AsOf  string                `json:"as_of"`
}

// DashboardHandler godoc
// @Summary Inventory and sales aggregates
// @Description Counts by status plus sales totals, cached for fifteen minutes.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResult
// @Router /dashboard [get]
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	if cache != nil {
		var cached cachedStats
		err := cache.GetJSON(r.Context(), dashboardCacheKey, &cached)
		if err == nil {
			writeJSON(w, http.StatusOK, DashboardResult{Stats: cached.Stats, Cached: true, AsOf: cached.AsOf})
			return
		}
		if err != redissvc.ErrCacheMiss {
			zap.L().Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	stats, err := metricsRepo.GetDashboardStats()
	if err != nil {
		http.Error(w, "could not compute dashboard stats", http.StatusInternalServerError)
		return
	}

	asOf := time.Now().Format(time.RFC3339)
	if cache != nil {
		if err := cache.SetJSON(r.Context(), dashboardCacheKey, cachedStats{Stats: stats, AsOf: asOf}, dashboardCacheTTL); err != nil {
			zap.L().Warn("dashboard cache write failed", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, DashboardResult{Stats: stats, Cached: false, AsOf: asOf})
}

// ClearDashboardCacheHandler godoc
// @Summary Drop the cached dashboard aggregates
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /dashboard/clear_cache [post]
func ClearDashboardCacheHandler(w http.ResponseWriter, r *http.Request) {
	if cache != nil {
		if err := cache.Delete(r.Context(), dashboardCacheKey); err != nil {
			http.Error(w, "could not clear cache", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "dashboard cache cleared"})
}
