package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	handler "github.com/ditservices/asset-tracker/internal/http/handlers"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, laptopRequest("MacBook Pro 14", "DIT-100", "SN-1001"))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}

	if resp["name"] != "MacBook Pro 14" {
		t.Errorf("expected name 'MacBook Pro 14', got %v", resp["name"])
	}
	if resp["category"] != "laptop" {
		t.Errorf("expected category laptop, got %v", resp["category"])
	}
	if resp["status"] != "available" {
		t.Errorf("expected default status available, got %v", resp["status"])
	}

	specs, ok := resp["specifications"].(map[string]any)
	if !ok {
		t.Fatalf("expected specifications object, got %T", resp["specifications"])
	}
	if specs["cpu"] != "Apple M3" {
		t.Errorf("expected cpu 'Apple M3', got %v", specs["cpu"])
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectedErrors []string
	}{
		{
			name:           "missing required fields",
			payload:        handler.ProductRequest{Category: "laptop"},
			expectedErrors: []string{"name", "sku", "serial_number"},
		},
		{
			name: "unknown category",
			payload: handler.ProductRequest{
				Name: "Thing", SKU: "DIT-300", SerialNumber: "SN-3", Category: "toaster",
			},
			expectedErrors: []string{"category"},
		},
		{
			name: "negative purchase price",
			payload: func() handler.ProductRequest {
				p := laptopRequest("X", "DIT-301", "SN-301")
				price := -10.0
				p.PurchasePrice = &price
				return p
			}(),
			expectedErrors: []string{"purchase_price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}

			var errs []handler.ProductValidationError
			if err := json.NewDecoder(w.Body).Decode(&errs); err != nil {
				t.Fatalf("error decoding validation errors: %v", err)
			}
			got := map[string]bool{}
			for _, e := range errs {
				got[e.Field] = true
			}
			for _, field := range tt.expectedErrors {
				if !got[field] {
					t.Errorf("expected a validation error for %q, got %v", field, errs)
				}
			}
		})
	}
}

func TestCreateProductHandler_RejectsUnknownSpecificationFields(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	p := laptopRequest("MacBook", "DIT-310", "SN-310")
	p.Specifications = json.RawMessage(`{"cpu":"M3","rack_units":4}`)

	w := createProduct(r, p)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a server field on a laptop, got %d", w.Code)
	}
}

func TestCreateProductHandler_DuplicateSKU(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	if w := createProduct(r, laptopRequest("First", "DIT-100", "SN-1")); w.Code != http.StatusCreated {
		t.Fatalf("seed create failed: %d", w.Code)
	}

	w := createProduct(r, laptopRequest("Second", "DIT-100", "SN-2"))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate sku, got %d", w.Code)
	}
}

func TestGetProductsHandler_FilterAndSearch(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	createProduct(r, laptopRequest("MacBook Pro", "DIT-401", "SN-401"))

	mouse := handler.ProductRequest{
		Name: "MX Master 3", Category: "mouse", SKU: "DIT-402", SerialNumber: "SN-402",
		Specifications: json.RawMessage(`{"connectivity":"bluetooth","dpi":8000}`),
	}
	if w := createProduct(r, mouse); w.Code != http.StatusCreated {
		t.Fatalf("mouse create failed: %d %s", w.Code, w.Body.String())
	}

	tests := []struct {
		query     string
		wantCount int
	}{
		{"", 2},
		{"?category=mouse", 1},
		{"?q=macbook", 1},
		{"?q=nothing-matches", 0},
		{"?status=sold", 0},
	}

	for _, tt := range tests {
		w := doJSON(r, http.MethodGet, "/products"+tt.query, nil, adminToken)
		if w.Code != http.StatusOK {
			t.Fatalf("listing %q: expected 200, got %d", tt.query, w.Code)
		}
		var resp handler.ProductsSearchResult
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("error decoding response: %v", err)
		}
		if resp.Meta.TotalCount != tt.wantCount {
			t.Errorf("listing %q: expected %d products, got %d", tt.query, tt.wantCount, resp.Meta.TotalCount)
		}
	}
}

func TestUpdateProductHandler_PersistsSpecificationChanges(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, laptopRequest("MacBook", "DIT-450", "SN-450"))
	var created map[string]any
	json.NewDecoder(w.Body).Decode(&created)
	id := int(created["id"].(float64))

	update := laptopRequest("MacBook", "DIT-450", "SN-450")
	update.Specifications, _ = json.Marshal(map[string]any{
		"cpu":              "Apple M4",
		"ram_size":         "32GB",
		"storage_capacity": "1TB",
	})
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/products/%d", id), update, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, adminToken)
	var fetched map[string]any
	json.NewDecoder(w.Body).Decode(&fetched)
	specs, ok := fetched["specifications"].(map[string]any)
	if !ok {
		t.Fatalf("missing specifications in %v", fetched)
	}
	if specs["cpu"] != "Apple M4" {
		t.Errorf("expected cpu Apple M4 after update, got %v", specs["cpu"])
	}
	if specs["ram_size"] != "32GB" {
		t.Errorf("expected ram_size 32GB after update, got %v", specs["ram_size"])
	}
}

func TestUpdateProductHandler_SoldProductsAreImmutable(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, laptopRequest("MacBook", "DIT-500", "SN-500"))
	var created map[string]any
	json.NewDecoder(w.Body).Decode(&created)
	id := int(created["id"].(float64))

	if w := recordSale(r, handler.SaleRequest{ProductID: id, SoldTo: "Acme Corp", SalePrice: 900}); w.Code != http.StatusCreated {
		t.Fatalf("sale failed: %d %s", w.Code, w.Body.String())
	}

	update := laptopRequest("MacBook Renamed", "DIT-500", "SN-500")
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/products/%d", id), update, adminToken)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 updating a sold product, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDeleteProductHandler_RequiresAdmin(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, laptopRequest("MacBook", "DIT-600", "SN-600"))
	var created map[string]any
	json.NewDecoder(w.Body).Decode(&created)
	id := int(created["id"].(float64))

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, employeeToken)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for employee delete, got %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, adminToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin delete, got %d", w.Code)
	}
}

func TestDeleteProductHandler_SoldProductIsKept(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := createProduct(r, laptopRequest("MacBook", "DIT-700", "SN-700"))
	var created map[string]any
	json.NewDecoder(w.Body).Decode(&created)
	id := int(created["id"].(float64))

	if w := recordSale(r, handler.SaleRequest{ProductID: id, SoldTo: "Acme Corp", SalePrice: 1200}); w.Code != http.StatusCreated {
		t.Fatalf("sale failed: %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, adminToken)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 deleting a sold product, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProductHandlers_RequireAuth(t *testing.T) {
	r := newRouter()

	w := doJSON(r, http.MethodGet, "/products", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/products", nil, "not-a-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with a malformed token, got %d", w.Code)
	}
}
