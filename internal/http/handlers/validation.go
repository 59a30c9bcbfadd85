package handlers

import (
	"strings"
	"time"

	"github.com/ditservices/asset-tracker/internal/equipment"
	"github.com/ditservices/asset-tracker/internal/models"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

const maxPurchasePrice = 10_000_000_000 // ten billion, exclusive

const dateLayout = "2006-01-02"

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "name", Description: "name is required"})
	}
	if strings.TrimSpace(p.SKU) == "" {
		errs = append(errs, ProductValidationError{Field: "sku", Description: "sku is required"})
	}
	if strings.TrimSpace(p.SerialNumber) == "" {
		errs = append(errs, ProductValidationError{Field: "serial_number", Description: "serial_number is required"})
	}
	if _, err := equipment.LookupName(p.Category); err != nil {
		errs = append(errs, ProductValidationError{Field: "category", Description: "unknown category"})
	}
	if p.Status != "" {
		if _, err := models.ParseStatus(p.Status); err != nil {
			errs = append(errs, ProductValidationError{Field: "status", Description: "unknown status"})
		}
	}
	if p.Condition != "" {
		if _, err := models.ParseCondition(p.Condition); err != nil {
			errs = append(errs, ProductValidationError{Field: "condition", Description: "unknown condition"})
		}
	}
	if p.PurchasePrice != nil && (*p.PurchasePrice < 0 || *p.PurchasePrice >= maxPurchasePrice) {
		errs = append(errs, ProductValidationError{Field: "purchase_price", Description: "purchase_price must be between 0 and 10000000000"})
	}
	for _, f := range []struct{ name, value string }{
		{"purchase_date", p.PurchaseDate},
		{"last_service_date", p.LastServiceDate},
		{"next_service_due", p.NextServiceDue},
	} {
		if f.value == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, f.value); err != nil {
			errs = append(errs, ProductValidationError{Field: f.name, Description: "must be a YYYY-MM-DD date"})
		}
	}
	return errs
}

// buildProduct converts a validated request into a model, decoding the
// specifications against the category's permitted fields. Callers must run
// validateProduct first.
func buildProduct(req ProductRequest) (models.Product, []ProductValidationError) {
	handler, err := equipment.LookupName(req.Category)
	if err != nil {
		return models.Product{}, []ProductValidationError{{Field: "category", Description: "unknown category"}}
	}

	eq := handler.New()
	if len(req.Specifications) > 0 {
		eq, err = handler.Decode(req.Specifications)
		if err != nil {
			return models.Product{}, []ProductValidationError{{Field: "specifications", Description: err.Error()}}
		}
	}
	if fieldErrs := handler.Validate(eq); len(fieldErrs) > 0 {
		errs := make([]ProductValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			errs = append(errs, ProductValidationError{Field: fe.Field, Description: fe.Description})
		}
		return models.Product{}, errs
	}

	product := models.Product{
		Name:          strings.TrimSpace(req.Name),
		Category:      handler.Category(),
		SKU:           strings.TrimSpace(req.SKU),
		SerialNumber:  strings.TrimSpace(req.SerialNumber),
		Vendor:        req.Vendor,
		Brand:         req.Brand,
		Model:         req.Model,
		ModelNumber:   req.ModelNumber,
		Location:      req.Location,
		Notes:         req.Notes,
		PurchasePrice: req.PurchasePrice,
		AllocatedToID: req.AllocatedToID,
		Equipment:     eq,
	}

	if req.Status != "" {
		product.Status, _ = models.ParseStatus(req.Status)
	}
	if req.Condition != "" {
		product.Condition, _ = models.ParseCondition(req.Condition)
	}
	product.PurchaseDate = parseDate(req.PurchaseDate)
	product.LastServiceDate = parseDate(req.LastServiceDate)
	product.NextServiceDue = parseDate(req.NextServiceDue)

	return product, nil
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
