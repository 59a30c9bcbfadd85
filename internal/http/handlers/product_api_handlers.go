package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ditservices/asset-tracker/internal/models"
	"github.com/ditservices/asset-tracker/internal/redissvc"
	"github.com/ditservices/asset-tracker/internal/repo"
)

// APIProductsHandler godoc
// @Summary Public product listing
// @Description Lists products, optionally filtered by product_type. Responses are cached for five minutes.
// @Tags api
// @Produce json
// @Param product_type query string false "Category name"
// @Success 200 {object} APIProductsResult
// @Failure 429 {object} map[string]any "Rate limit exceeded"
// @Router /api/v1/products [get]
func APIProductsHandler(w http.ResponseWriter, r *http.Request) {
	productType := r.URL.Query().Get("product_type")

	filter := repo.ProductFilter{}
	cacheSuffix := "all"
	if productType != "" {
		category, err := models.ParseCategory(productType)
		if err != nil {
			// An unknown product_type is ignored rather than rejected, so
			// probing values cannot distinguish categories from errors.
			zap.L().Info("ignoring unknown product_type", zap.String("product_type", productType))
			productType = ""
		} else {
			filter.Category = &category
			cacheSuffix = category.String()
		}
	}

	cacheKey := productsCachePrefix + cacheSuffix
	if cache != nil {
		var cached APIProductsResult
		err := cache.GetJSON(r.Context(), cacheKey, &cached)
		if err == nil {
			cached.Meta.Cached = true
			writeJSON(w, http.StatusOK, cached)
			return
		}
		if err != redissvc.ErrCacheMiss {
			zap.L().Warn("products cache read failed", zap.Error(err))
		}
	}

	products, total, err := productRepo.Filter(filter)
	if err != nil {
		http.Error(w, "could not retrieve products", http.StatusInternalServerError)
		return
	}

	data := make([]map[string]any, 0, len(products))
	for _, p := range products {
		data = append(data, serializeProduct(p))
	}

	result := APIProductsResult{
		Success: true,
		Data:    data,
		Meta: APIMeta{
			TotalCount:  total,
			ProductType: productType,
			Cached:      false,
			GeneratedAt: time.Now().Format(time.RFC3339),
		},
	}

	if cache != nil {
		if err := cache.SetJSON(r.Context(), cacheKey, result, productsCacheTTL); err != nil {
			zap.L().Warn("products cache write failed", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, result)
}
