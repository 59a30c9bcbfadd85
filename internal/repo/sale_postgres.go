package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ditservices/asset-tracker/internal/models"
)

// PostgresSaleRepository persists sales. Recording a sale and marking the
// product sold happen in the same transaction.
type PostgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

func (r *PostgresSaleRepository) Create(sale models.Sale) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Sale{}, err
	}
	defer tx.Rollback()

	sale.CreatedAt = time.Now().UTC()
	err = tx.QueryRowContext(ctx, `INSERT INTO sales
		(product_id, sold_by_id, sold_to, sold_at, sale_price, invoice_ref, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		sale.ProductID, sale.SoldByID, sale.SoldTo, sale.SoldAt, sale.SalePrice,
		sale.InvoiceRef, sale.CreatedAt).Scan(&sale.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Sale{}, ErrDuplicatedValueUnique
		}
		if isForeignKeyViolation(err) {
			return models.Sale{}, ErrProductNotFound
		}
		return models.Sale{}, err
	}

	res, err := tx.ExecContext(ctx, `UPDATE products SET status=$1, updated_at=$2 WHERE id=$3`,
		int(models.StatusSold), time.Now().UTC(), sale.ProductID)
	if err != nil {
		return models.Sale{}, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return models.Sale{}, ErrProductNotFound
	}

	if err := tx.Commit(); err != nil {
		return models.Sale{}, err
	}
	return sale, nil
}

const saleColumns = `id, product_id, sold_by_id, sold_to, sold_at, sale_price, invoice_ref, created_at`

func (r *PostgresSaleRepository) GetAll() ([]models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, "SELECT "+saleColumns+" FROM sales ORDER BY sold_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.ProductID, &s.SoldByID, &s.SoldTo, &s.SoldAt,
			&s.SalePrice, &s.InvoiceRef, &s.CreatedAt); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *PostgresSaleRepository) GetByID(id int) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var s models.Sale
	err := r.db.QueryRowContext(ctx, "SELECT "+saleColumns+" FROM sales WHERE id=$1", id).
		Scan(&s.ID, &s.ProductID, &s.SoldByID, &s.SoldTo, &s.SoldAt, &s.SalePrice,
			&s.InvoiceRef, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrSaleNotFound
	}
	return s, err
}

func (r *PostgresSaleRepository) GetByProductID(productID int) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var s models.Sale
	err := r.db.QueryRowContext(ctx, "SELECT "+saleColumns+" FROM sales WHERE product_id=$1", productID).
		Scan(&s.ID, &s.ProductID, &s.SoldByID, &s.SoldTo, &s.SoldAt, &s.SalePrice,
			&s.InvoiceRef, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrSaleNotFound
	}
	return s, err
}
