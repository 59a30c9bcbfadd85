package models

import "time"

// Attachment is the metadata row for an image stored on disk under Key.
type Attachment struct {
	ID          int       `json:"id"`
	ProductID   int       `json:"product_id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	ByteSize    int64     `json:"byte_size"`
	Key         string    `json:"key"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsImage reports whether the attachment is eligible for size variants.
func (a Attachment) IsImage() bool {
	return len(a.ContentType) >= 6 && a.ContentType[:6] == "image/"
}
