package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/ditservices/asset-tracker/internal/models"
)

func uploadFile(r http.Handler, productID int, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, _ := writer.CreatePart(header)
	part.Write(content)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/products/%d/images", productID), &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadProductImageHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	t.Cleanup(attachmentRepo.Clear)
	r := newRouter()

	id := createProductID(t, r, "DIT-980", "SN-980")

	w := uploadFile(r, id, "invoice.pdf", "application/pdf", []byte("%PDF-1.4 stub"))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var attachment models.Attachment
	if err := json.NewDecoder(w.Body).Decode(&attachment); err != nil {
		t.Fatalf("error decoding attachment: %v", err)
	}
	if attachment.ProductID != id {
		t.Errorf("expected product_id %d, got %d", id, attachment.ProductID)
	}
	if attachment.Filename != "invoice.pdf" {
		t.Errorf("expected original filename, got %q", attachment.Filename)
	}
	if attachment.Key == "" {
		t.Error("expected a storage key")
	}
	if attachment.ByteSize == 0 {
		t.Error("expected byte_size to be recorded")
	}

	// The product serialization now carries the attachment.
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, adminToken)
	var product map[string]any
	json.NewDecoder(w.Body).Decode(&product)
	images, ok := product["images"].([]any)
	if !ok || len(images) != 1 {
		t.Fatalf("expected 1 image on the product, got %v", product["images"])
	}
	entry := images[0].(map[string]any)
	if entry["content_type"] != "application/pdf" {
		t.Errorf("expected content_type application/pdf, got %v", entry["content_type"])
	}
	if size, _ := entry["byte_size"].(float64); int(size) != len("%PDF-1.4 stub") {
		t.Errorf("expected byte_size %d, got %v", len("%PDF-1.4 stub"), entry["byte_size"])
	}
	if entry["filename"] != "invoice.pdf" {
		t.Errorf("expected filename invoice.pdf, got %v", entry["filename"])
	}
	if url, _ := entry["url"].(string); url == "" {
		t.Error("expected a download url")
	}
}

func TestUploadProductImageHandler_UnknownProduct(t *testing.T) {
	t.Cleanup(attachmentRepo.Clear)
	r := newRouter()

	w := uploadFile(r, 99999, "photo.jpg", "image/jpeg", []byte("not really a jpeg"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDeleteProductImageHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	t.Cleanup(attachmentRepo.Clear)
	r := newRouter()

	id := createProductID(t, r, "DIT-981", "SN-981")

	w := uploadFile(r, id, "note.txt", "text/plain", []byte("asset note"))
	var attachment models.Attachment
	json.NewDecoder(w.Body).Decode(&attachment)

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/products/%d/images/%d", id, attachment.ID), nil, adminToken)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	// Deleting under the wrong product is a 404.
	w = uploadFile(r, id, "note2.txt", "text/plain", []byte("asset note"))
	json.NewDecoder(w.Body).Decode(&attachment)
	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/products/%d/images/%d", id+1, attachment.ID), nil, adminToken)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for mismatched product, got %d", w.Code)
	}
}
