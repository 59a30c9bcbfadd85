package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ditservices/asset-tracker/internal/models"
)

// PostgresAttachmentRepository persists attachment metadata.
type PostgresAttachmentRepository struct {
	db *sql.DB
}

func NewPostgresAttachmentRepository(db *sql.DB) *PostgresAttachmentRepository {
	return &PostgresAttachmentRepository{db: db}
}

const attachmentColumns = `id, product_id, filename, content_type, byte_size, key, created_at`

func (r *PostgresAttachmentRepository) Create(a models.Attachment) (models.Attachment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	a.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, `INSERT INTO attachments
		(product_id, filename, content_type, byte_size, key, created_at)
		VALUES ($1,$2,$3,$4,$5,$6) RETURNING id`,
		a.ProductID, a.Filename, a.ContentType, a.ByteSize, a.Key, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return models.Attachment{}, ErrProductNotFound
		}
		return models.Attachment{}, err
	}
	return a, nil
}

func (r *PostgresAttachmentRepository) GetByProductID(productID int) ([]models.Attachment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+attachmentColumns+" FROM attachments WHERE product_id=$1 ORDER BY id", productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attachments []models.Attachment
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Filename, &a.ContentType,
			&a.ByteSize, &a.Key, &a.CreatedAt); err != nil {
			return nil, err
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

func (r *PostgresAttachmentRepository) GetByID(id int) (models.Attachment, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var a models.Attachment
	err := r.db.QueryRowContext(ctx, "SELECT "+attachmentColumns+" FROM attachments WHERE id=$1", id).
		Scan(&a.ID, &a.ProductID, &a.Filename, &a.ContentType, &a.ByteSize, &a.Key, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Attachment{}, ErrAttachmentNotFound
	}
	return a, err
}

func (r *PostgresAttachmentRepository) Delete(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}
