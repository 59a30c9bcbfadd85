package repo

import "github.com/ditservices/asset-tracker/internal/models"

// AttachmentRepository stores image attachment metadata. The bytes live in
// the disk store under Attachment.Key.
type AttachmentRepository interface {
	Create(attachment models.Attachment) (models.Attachment, error)
	GetByProductID(productID int) ([]models.Attachment, error)
	GetByID(id int) (models.Attachment, error)
	Delete(id int) error
}
