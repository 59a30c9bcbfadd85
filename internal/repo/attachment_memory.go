package repo

import (
	"sort"
	"sync"
	"time"

	"github.com/ditservices/asset-tracker/internal/models"
)

// InMemoryAttachmentRepository is an in-memory implementation of
// AttachmentRepository.
type InMemoryAttachmentRepository struct {
	mu          sync.Mutex
	attachments map[int]models.Attachment
	nextID      int
}

func NewInMemoryAttachmentRepository() *InMemoryAttachmentRepository {
	return &InMemoryAttachmentRepository{attachments: map[int]models.Attachment{}, nextID: 1}
}

func (r *InMemoryAttachmentRepository) Create(a models.Attachment) (models.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.ID = r.nextID
	r.nextID++
	a.CreatedAt = time.Now().UTC()
	r.attachments[a.ID] = a
	return a, nil
}

func (r *InMemoryAttachmentRepository) GetByProductID(productID int) ([]models.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Attachment
	for _, a := range r.attachments {
		if a.ProductID == productID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryAttachmentRepository) GetByID(id int) (models.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.attachments[id]
	if !ok {
		return models.Attachment{}, ErrAttachmentNotFound
	}
	return a, nil
}

func (r *InMemoryAttachmentRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.attachments[id]; !ok {
		return ErrAttachmentNotFound
	}
	delete(r.attachments, id)
	return nil
}

func (r *InMemoryAttachmentRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attachments = map[int]models.Attachment{}
	r.nextID = 1
}
