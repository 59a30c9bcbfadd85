package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/ditservices/asset-tracker/internal/http/handlers"
)

func apiGet(r http.Handler, path, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAPIProductsHandler_PublicListing(t *testing.T) {
	t.Cleanup(clearAllProducts)
	t.Cleanup(windowStore.Reset)
	r := newRouter()

	createProduct(r, laptopRequest("MacBook", "DIT-900", "SN-900"))

	w := apiGet(r, "/api/v1/products", "198.51.100.10")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 without a token, got %d", w.Code)
	}

	var resp handler.APIProductsResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success true")
	}
	if resp.Meta.TotalCount != 1 {
		t.Errorf("expected 1 product, got %d", resp.Meta.TotalCount)
	}
	if resp.Meta.Cached {
		t.Error("first response should not be cached")
	}
	if resp.Meta.GeneratedAt == "" {
		t.Error("expected generated_at")
	}
}

func TestAPIProductsHandler_UnknownTypeIsIgnored(t *testing.T) {
	t.Cleanup(clearAllProducts)
	t.Cleanup(windowStore.Reset)
	r := newRouter()

	createProduct(r, laptopRequest("MacBook", "DIT-901", "SN-901"))

	// A hostile-looking value falls back to the unfiltered listing.
	w := apiGet(r, "/api/v1/products?product_type=%27%3B+DROP+TABLE+products%3B--", "198.51.100.11")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp handler.APIProductsResult
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Meta.TotalCount != 1 {
		t.Errorf("expected the unfiltered listing, got %d products", resp.Meta.TotalCount)
	}
	if resp.Meta.ProductType != "" {
		t.Errorf("expected empty product_type, got %q", resp.Meta.ProductType)
	}
}

func TestAPIProductsHandler_FilterByType(t *testing.T) {
	t.Cleanup(clearAllProducts)
	t.Cleanup(windowStore.Reset)
	r := newRouter()

	createProduct(r, laptopRequest("MacBook", "DIT-902", "SN-902"))

	w := apiGet(r, "/api/v1/products?product_type=mouse", "198.51.100.12")
	var resp handler.APIProductsResult
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Meta.TotalCount != 0 {
		t.Errorf("expected no mice, got %d", resp.Meta.TotalCount)
	}
	if resp.Meta.ProductType != "mouse" {
		t.Errorf("expected product_type mouse, got %q", resp.Meta.ProductType)
	}
}

func TestAPIProductsHandler_RateLimit(t *testing.T) {
	t.Cleanup(clearAllProducts)
	t.Cleanup(windowStore.Reset)
	r := newRouter()

	ip := "203.0.113.50"
	for i := 1; i <= 100; i++ {
		w := apiGet(r, "/api/v1/products", ip)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}

	w := apiGet(r, "/api/v1/products", ip)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("request 101: expected 429, got %d", w.Code)
	}

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("error decoding 429 body: %v", err)
	}
	if body["retry_after"] != float64(60) {
		t.Errorf("expected retry_after 60, got %v", body["retry_after"])
	}

	// Another client still has budget.
	if w := apiGet(r, "/api/v1/products", "203.0.113.51"); w.Code != http.StatusOK {
		t.Errorf("other client should not be limited, got %d", w.Code)
	}
}
