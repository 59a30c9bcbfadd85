package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ditservices/asset-tracker/internal/activity"
	"github.com/ditservices/asset-tracker/internal/models"
	"github.com/ditservices/asset-tracker/internal/repo"
	"github.com/ditservices/asset-tracker/internal/ws"
)

// CreateSaleHandler godoc
// @Summary Record a sale
// @Description Persists the sale and marks the product sold in one transaction. A product can be sold once.
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sale body SaleRequest true "Sale to record"
// @Success 201 {object} models.Sale
// @Failure 400 {string} string "Missing buyer or non-positive price"
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Product already sold"
// @Router /sales [post]
func CreateSaleHandler(w http.ResponseWriter, r *http.Request) {
	var req SaleRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.SoldTo) == "" {
		http.Error(w, "sold_to is required", http.StatusBadRequest)
		return
	}
	if req.SalePrice <= 0 {
		http.Error(w, "sale_price must be greater than zero", http.StatusBadRequest)
		return
	}

	product, err := productRepo.GetByID(req.ProductID)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not retrieve product", http.StatusInternalServerError)
		return
	}

	claims, _ := currentClaims(r)

	sale := models.Sale{
		ProductID:  req.ProductID,
		SoldByID:   claims.UserID,
		SoldTo:     req.SoldTo,
		SalePrice:  req.SalePrice,
		InvoiceRef: req.InvoiceRef,
		SoldAt:     time.Now(),
	}
	if req.SoldAt != "" {
		soldAt, err := time.Parse(time.RFC3339, req.SoldAt)
		if err != nil {
			http.Error(w, "sold_at must be an RFC 3339 timestamp", http.StatusBadRequest)
			return
		}
		sale.SoldAt = soldAt
	}

	created, err := saleRepo.Create(sale)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicatedValueUnique), errors.Is(err, repo.ErrProductSold):
			http.Error(w, "product already sold", http.StatusConflict)
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		default:
			http.Error(w, "could not record sale", http.StatusInternalServerError)
		}
		return
	}

	auditLog.Record(r, claims.UserID, activity.ActionSale, "sale", created.ID, nil, created)
	invalidateProductCaches(r.Context(), product.Category.String())
	alertsHub.Broadcast(ws.Alert{
		Event:   "product.sold",
		Message: fmt.Sprintf("%s sold to %s", product.DisplayName(), created.SoldTo),
		Data:    map[string]any{"product_id": created.ProductID, "sale_id": created.ID},
	})

	writeJSON(w, http.StatusCreated, created)
}

// GetSalesHandler godoc
// @Summary List all sales
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Sale
// @Router /sales [get]
func GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	sales, err := saleRepo.GetAll()
	if err != nil {
		http.Error(w, "could not retrieve sales", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

// GetSaleByIDHandler godoc
// @Summary Get a sale by its id
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Success 200 {object} models.Sale
// @Failure 404 {string} string "Sale not found"
// @Router /sales/{id} [get]
func GetSaleByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid sale id", http.StatusBadRequest)
		return
	}

	sale, err := saleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrSaleNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not retrieve sale", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, sale)
}
