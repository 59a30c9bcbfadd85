package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ditservices/asset-tracker/internal/activity"
	"github.com/ditservices/asset-tracker/internal/jobs"
	"github.com/ditservices/asset-tracker/internal/models"
	"github.com/ditservices/asset-tracker/internal/repo"
)

const maxUploadBytes = 10 << 20 // 10 MB

// UploadProductImageHandler godoc
// @Summary Attach an image to a product
// @Description Stores the upload and schedules size variant generation in the background
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param image formData file true "Image file"
// @Success 201 {object} models.Attachment
// @Failure 404 {string} string "Product not found"
// @Failure 413 {string} string "File too large"
// @Router /products/{id}/images [post]
func UploadProductImageHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if _, err := productRepo.GetByID(productID); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not retrieve product", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "file too large or malformed upload", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	key, size, err := diskStore.Save(file, header.Filename)
	if err != nil {
		http.Error(w, "could not store file", http.StatusInternalServerError)
		return
	}

	attachment, err := attachmentRepo.Create(models.Attachment{
		ProductID:   productID,
		Filename:    header.Filename,
		ContentType: contentType,
		ByteSize:    size,
		Key:         key,
	})
	if err != nil {
		if removeErr := diskStore.Remove(key); removeErr != nil {
			zap.L().Warn("orphaned upload not removed", zap.String("key", key), zap.Error(removeErr))
		}
		http.Error(w, "could not record attachment", http.StatusInternalServerError)
		return
	}

	if attachment.IsImage() {
		jobQueue.Enqueue(jobs.ImageVariantJob{
			AttachmentID: attachment.ID,
			Attachments:  attachmentRepo,
			Store:        diskStore,
		})
	}

	claims, _ := currentClaims(r)
	auditLog.Record(r, claims.UserID, activity.ActionCreate, "attachment", attachment.ID, nil, attachment)
	invalidateProductCaches(r.Context())

	writeJSON(w, http.StatusCreated, attachment)
}

// DeleteProductImageHandler godoc
// @Summary Remove an image from a product
// @Tags products
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param imageID path int true "Attachment ID"
// @Success 204 {string} string "No content"
// @Failure 404 {string} string "Attachment not found"
// @Router /products/{id}/images/{imageID} [delete]
func DeleteProductImageHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	imageID, err := strconv.Atoi(chi.URLParam(r, "imageID"))
	if err != nil {
		http.Error(w, "invalid image id", http.StatusBadRequest)
		return
	}

	attachment, err := attachmentRepo.GetByID(imageID)
	if err != nil || attachment.ProductID != productID {
		http.Error(w, "attachment not found", http.StatusNotFound)
		return
	}

	if err := attachmentRepo.Delete(imageID); err != nil {
		http.Error(w, "could not delete attachment", http.StatusInternalServerError)
		return
	}
	if err := diskStore.Remove(attachment.Key, jobs.VariantNames...); err != nil {
		zap.L().Warn("attachment files not removed", zap.String("key", attachment.Key), zap.Error(err))
	}

	claims, _ := currentClaims(r)
	auditLog.Record(r, claims.UserID, activity.ActionDelete, "attachment", imageID, attachment, nil)
	invalidateProductCaches(r.Context())

	w.WriteHeader(http.StatusNoContent)
}
