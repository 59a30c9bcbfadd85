package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"

	"github.com/ditservices/asset-tracker/internal/repo"
	"github.com/ditservices/asset-tracker/internal/storage"
)

// Variants maps each size variant name to its bounding box in pixels.
// Images are resized to fit the box, preserving aspect ratio.
var Variants = map[string]int{
	"thumbnail": 150,
	"medium":    400,
	"large":     800,
}

// VariantNames lists the variant names in ascending size order.
var VariantNames = []string{"thumbnail", "medium", "large"}

// ImageVariantJob renders the size variants for one attachment. Generation
// is idempotent: variants that already exist on disk are skipped, so a
// retried or duplicated job does no extra work.
type ImageVariantJob struct {
	AttachmentID int
	Attachments  repo.AttachmentRepository
	Store        *storage.DiskStore
}

func (j ImageVariantJob) Name() string {
	return fmt.Sprintf("image_variants:%d", j.AttachmentID)
}

func (j ImageVariantJob) Run(_ context.Context) error {
	att, err := j.Attachments.GetByID(j.AttachmentID)
	if errors.Is(err, repo.ErrAttachmentNotFound) {
		return ErrGone
	}
	if err != nil {
		return err
	}
	if !att.IsImage() {
		return nil
	}

	src, err := imaging.Open(j.Store.Path(att.Key))
	if err != nil {
		return fmt.Errorf("opening source image: %w", err)
	}

	for _, name := range VariantNames {
		if j.Store.VariantExists(att.Key, name) {
			continue
		}
		box := Variants[name]
		resized := imaging.Fit(src, box, box, imaging.Lanczos)
		if err := imaging.Save(resized, j.Store.VariantPath(att.Key, name)); err != nil {
			return fmt.Errorf("saving %s variant: %w", name, err)
		}
	}
	return nil
}
