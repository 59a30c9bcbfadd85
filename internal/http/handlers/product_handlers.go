package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ditservices/asset-tracker/internal/activity"
	"github.com/ditservices/asset-tracker/internal/models"
	"github.com/ditservices/asset-tracker/internal/repo"
	"github.com/ditservices/asset-tracker/internal/ws"
)

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds an asset with its category equipment record
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} map[string]any
// @Failure 400 {array} ProductValidationError
// @Failure 409 {string} string "Duplicate sku or serial number"
// @Router /products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}

	product, buildErrors := buildProduct(req)
	if len(buildErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, buildErrors)
		return
	}

	created, err := productRepo.Create(product)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create product: sku or serial number already in use", http.StatusConflict)
			return
		}
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	claims, _ := currentClaims(r)
	auditLog.Record(r, claims.UserID, activity.ActionCreate, "product", created.ID, nil, created)
	invalidateProductCaches(r.Context(), created.Category.String())
	alertsHub.Broadcast(ws.Alert{
		Event:   "product.created",
		Message: fmt.Sprintf("%s added to inventory", created.DisplayName()),
		Data:    map[string]any{"id": created.ID, "sku": created.SKU},
	})

	writeJSON(w, http.StatusCreated, serializeProduct(created))
}

// GetProductsHandler godoc
// @Summary Search and filter products
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param q query string false "Matches name, sku, serial number, brand and model"
// @Param category query string false "Category name"
// @Param status query string false "Status name"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size"
// @Success 200 {object} ProductsSearchResult
// @Router /products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	filter, errMsg := productFilterFromQuery(r)
	if errMsg != "" {
		http.Error(w, errMsg, http.StatusBadRequest)
		return
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

	writeJSON(w, http.StatusOK, ProductsSearchResult{Data: data, Meta: Meta{TotalCount: total}})
}

// GetProductByIDHandler godoc
// @Summary Get a product by its id
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]any
// @Failure 404 {string} string "Product not found"
// @Router /products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	product, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not retrieve product", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, serializeProduct(product))
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Updates the asset and its equipment record. Sold products are immutable.
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "New product values"
// @Success 200 {object} map[string]any
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Duplicate sku or serial number"
// @Failure 422 {string} string "Product already sold"
// @Router /products/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	existing, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not retrieve product", http.StatusInternalServerError)
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateProduct(req)
	if len(validationErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, validationErrors)
		return
	}
	if req.Category != existing.Category.String() {
		writeJSON(w, http.StatusBadRequest, []ProductValidationError{
			{Field: "category", Description: "category cannot be changed"},
		})
		return
	}

	product, buildErrors := buildProduct(req)
	if len(buildErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, buildErrors)
		return
	}
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt

	updated, err := productRepo.Update(product)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductSold):
			http.Error(w, "sold products cannot be modified", http.StatusUnprocessableEntity)
		case errors.Is(err, repo.ErrDuplicatedValueUnique):
			http.Error(w, "could not update product: sku or serial number already in use", http.StatusConflict)
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		default:
			http.Error(w, "could not update product", http.StatusInternalServerError)
		}
		return
	}

	claims, _ := currentClaims(r)
	auditLog.Record(r, claims.UserID, activity.ActionUpdate, "product", updated.ID, existing, updated)
	invalidateProductCaches(r.Context(), updated.Category.String())
	if updated.Status != existing.Status {
		alertsHub.Broadcast(ws.Alert{
			Event:   "product.status_changed",
			Message: fmt.Sprintf("%s is now %s", updated.DisplayName(), updated.Status),
			Data:    map[string]any{"id": updated.ID, "status": updated.Status.String()},
		})
	}

	writeJSON(w, http.StatusOK, serializeProduct(updated))
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Description Removes the asset and its equipment record. Sold products cannot be deleted.
// @Tags products
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204 {string} string "No content"
// @Failure 404 {string} string "Product not found"
// @Failure 409 {string} string "Product has a recorded sale"
// @Router /products/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	existing, err := productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not retrieve product", http.StatusInternalServerError)
		return
	}

	if err := productRepo.Delete(id); err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			http.Error(w, "product not found", http.StatusNotFound)
		case errors.Is(err, repo.ErrHasDependentSale):
			http.Error(w, "product has a recorded sale and cannot be deleted", http.StatusConflict)
		default:
			http.Error(w, "could not delete product", http.StatusInternalServerError)
		}
		return
	}

	claims, _ := currentClaims(r)
	auditLog.Record(r, claims.UserID, activity.ActionDelete, "product", id, existing, nil)
	invalidateProductCaches(r.Context(), existing.Category.String())

	w.WriteHeader(http.StatusNoContent)
}

func productFilterFromQuery(r *http.Request) (repo.ProductFilter, string) {
	filter := repo.ProductFilter{Query: r.URL.Query().Get("q")}

	if c := r.URL.Query().Get("category"); c != "" {
		category, err := models.ParseCategory(c)
		if err != nil {
			return filter, "unknown category"
		}
		filter.Category = &category
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status, err := models.ParseStatus(s)
		if err != nil {
			return filter, "unknown status"
		}
		filter.Status = &status
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		offset, err := strconv.Atoi(o)
		if err != nil || offset < 0 {
			return filter, "offset must be a non-negative integer"
		}
		filter.Offset = &offset
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		limit, err := strconv.Atoi(l)
		if err != nil || limit < 0 {
			return filter, "limit must be a non-negative integer"
		}
		filter.Limit = &limit
	}
	return filter, ""
}
