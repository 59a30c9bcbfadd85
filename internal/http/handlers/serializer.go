package handlers

import (
	"time"

	"go.uber.org/zap"

	"github.com/ditservices/asset-tracker/internal/equipment"
	"github.com/ditservices/asset-tracker/internal/jobs"
	"github.com/ditservices/asset-tracker/internal/models"
)

// imageUnavailable is returned in place of a variant URL when the variant
// has not been generated, so one bad image never breaks a whole listing.
const imageUnavailable = "Image processing failed"

// serializeProduct renders a product with its category specifications and
// image URLs. Unknown equipment payloads degrade to an empty specifications
// object rather than failing the response.
func serializeProduct(p models.Product) map[string]any {
	out := map[string]any{
		"id":            p.ID,
		"name":          p.Name,
		"category":      p.Category.String(),
		"sku":           p.SKU,
		"serial_number": p.SerialNumber,
		"status":        p.Status.String(),
		"condition":     p.Condition.String(),
		"created_at":    p.CreatedAt.Format(time.RFC3339),
		"updated_at":    p.UpdatedAt.Format(time.RFC3339),
	}

	putIfSet(out, "vendor", p.Vendor)
	putIfSet(out, "brand", p.Brand)
	putIfSet(out, "model", p.Model)
	putIfSet(out, "model_number", p.ModelNumber)
	putIfSet(out, "location", p.Location)
	putIfSet(out, "notes", p.Notes)
	if p.PurchaseDate != nil {
		out["purchase_date"] = p.PurchaseDate.Format(dateLayout)
	}
	if p.PurchasePrice != nil {
		out["purchase_price"] = *p.PurchasePrice
	}
	if p.LastServiceDate != nil {
		out["last_service_date"] = p.LastServiceDate.Format(dateLayout)
	}
	if p.NextServiceDue != nil {
		out["next_service_due"] = p.NextServiceDue.Format(dateLayout)
	}
	if p.AllocatedToID != nil {
		out["allocated_to_id"] = *p.AllocatedToID
	}

	out["specifications"] = serializeSpecifications(p)
	out["images"] = serializeImages(p.ID)

	return out
}

func serializeSpecifications(p models.Product) map[string]any {
	if p.Equipment == nil {
		return map[string]any{}
	}
	handler, err := equipment.Lookup(p.Category)
	if err != nil {
		zap.L().Warn("product has unknown category", zap.Int("product_id", p.ID))
		return map[string]any{}
	}
	return handler.Project(p.Equipment)
}

func serializeImages(productID int) []map[string]any {
	if attachmentRepo == nil || diskStore == nil {
		return []map[string]any{}
	}
	attachments, err := attachmentRepo.GetByProductID(productID)
	if err != nil {
		zap.L().Warn("listing attachments failed", zap.Int("product_id", productID), zap.Error(err))
		return []map[string]any{}
	}

	images := make([]map[string]any, 0, len(attachments))
	for _, att := range attachments {
		entry := map[string]any{
			"id":           att.ID,
			"filename":     att.Filename,
			"content_type": att.ContentType,
			"byte_size":    att.ByteSize,
			"url":          diskStore.URL(att.Key),
		}
		if att.IsImage() {
			variants := make(map[string]any, len(jobs.VariantNames))
			for _, name := range jobs.VariantNames {
				if diskStore.VariantExists(att.Key, name) {
					variants[name] = diskStore.VariantURL(att.Key, name)
				} else {
					variants[name] = imageUnavailable
				}
			}
			entry["variants"] = variants
		}
		images = append(images, entry)
	}
	return images
}

func putIfSet(out map[string]any, key, value string) {
	if value != "" {
		out[key] = value
	}
}
