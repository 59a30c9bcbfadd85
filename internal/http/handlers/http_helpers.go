package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

const (
	productsCachePrefix = "api:v1:products:"
	dashboardCacheKey   = "dashboard_stats"
	productsCacheTTL    = 5 * time.Minute
	dashboardCacheTTL   = 15 * time.Minute
)

// invalidateProductCaches drops the cached API listings touched by a product
// mutation plus the dashboard aggregates. Cache trouble is logged, never
// surfaced to the client.
func invalidateProductCaches(ctx context.Context, categories ...string) {
	if cache == nil {
		return
	}
	keys := []string{productsCachePrefix + "all", dashboardCacheKey}
	for _, c := range categories {
		keys = append(keys, productsCachePrefix+c)
	}
	if err := cache.Delete(ctx, keys...); err != nil {
		zap.L().Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
