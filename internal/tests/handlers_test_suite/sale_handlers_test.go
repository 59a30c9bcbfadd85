package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	handler "github.com/ditservices/asset-tracker/internal/http/handlers"
	"github.com/ditservices/asset-tracker/internal/models"
)

func createProductID(t *testing.T, r http.Handler, sku, serial string) int {
	t.Helper()
	w := createProduct(r, laptopRequest("MacBook", sku, serial))
	if w.Code != http.StatusCreated {
		t.Fatalf("product create failed: %d %s", w.Code, w.Body.String())
	}
	var created map[string]any
	json.NewDecoder(w.Body).Decode(&created)
	return int(created["id"].(float64))
}

func TestCreateSaleHandler_MarksProductSold(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	id := createProductID(t, r, "DIT-800", "SN-800")

	w := recordSale(r, handler.SaleRequest{
		ProductID:  id,
		SoldTo:     "Acme Corp",
		SalePrice:  1250.50,
		InvoiceRef: "INV-2026-001",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var sale models.Sale
	if err := json.NewDecoder(w.Body).Decode(&sale); err != nil {
		t.Fatalf("error decoding sale: %v", err)
	}
	if sale.ProductID != id {
		t.Errorf("expected product_id %d, got %d", id, sale.ProductID)
	}
	if sale.SoldByID == 0 {
		t.Error("expected sold_by_id to be the authenticated user")
	}

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, adminToken)
	var product map[string]any
	json.NewDecoder(w.Body).Decode(&product)
	if product["status"] != "sold" {
		t.Errorf("expected product status sold after sale, got %v", product["status"])
	}
}

func TestCreateSaleHandler_ProductCanOnlyBeSoldOnce(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	id := createProductID(t, r, "DIT-801", "SN-801")

	if w := recordSale(r, handler.SaleRequest{ProductID: id, SoldTo: "First Buyer", SalePrice: 100}); w.Code != http.StatusCreated {
		t.Fatalf("first sale failed: %d", w.Code)
	}

	w := recordSale(r, handler.SaleRequest{ProductID: id, SoldTo: "Second Buyer", SalePrice: 100})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a second sale, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateSaleHandler_UnknownProduct(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	w := recordSale(r, handler.SaleRequest{ProductID: 99999, SoldTo: "Nobody", SalePrice: 1})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCreateSaleHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	id := createProductID(t, r, "DIT-802", "SN-802")

	tests := []struct {
		name    string
		payload handler.SaleRequest
	}{
		{"negative price", handler.SaleRequest{ProductID: id, SoldTo: "Acme", SalePrice: -5}},
		{"zero price", handler.SaleRequest{ProductID: id, SoldTo: "Acme", SalePrice: 0}},
		{"blank buyer", handler.SaleRequest{ProductID: id, SoldTo: "   ", SalePrice: 100}},
		{"zero price and blank buyer", handler.SaleRequest{ProductID: id, SoldTo: "", SalePrice: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := recordSale(r, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}

	// The rejected attempts must not have marked the product sold.
	w := doJSON(r, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, adminToken)
	var product map[string]any
	json.NewDecoder(w.Body).Decode(&product)
	if product["status"] != "available" {
		t.Errorf("expected product to stay available, got %v", product["status"])
	}
}

func TestGetSaleHandlers(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := newRouter()

	id := createProductID(t, r, "DIT-803", "SN-803")
	w := recordSale(r, handler.SaleRequest{ProductID: id, SoldTo: "Acme", SalePrice: 450})
	var created models.Sale
	json.NewDecoder(w.Body).Decode(&created)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/sales/%d", created.ID), nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/sales", nil, adminToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 listing sales, got %d", w.Code)
	}
	var sales []models.Sale
	json.NewDecoder(w.Body).Decode(&sales)
	found := false
	for _, s := range sales {
		if s.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Error("expected recorded sale in listing")
	}

	w = doJSON(r, http.MethodGet, "/sales/99999", nil, adminToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown sale, got %d", w.Code)
	}
}
