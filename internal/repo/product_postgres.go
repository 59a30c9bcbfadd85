package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ditservices/asset-tracker/internal/models"
)

// PostgresProductRepository persists products and their equipment records.
// Writes that touch both rows run inside one transaction.
type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, name, category, sku, serial_number, vendor, brand, model,
	model_number, location, status, condition, purchase_date, purchase_price,
	last_service_date, next_service_due, notes, allocated_to_id, equipment_id,
	created_at, updated_at`

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, err
	}
	defer tx.Rollback()

	if err := insertEquipment(ctx, tx, p.Equipment); err != nil {
		return models.Product{}, err
	}

	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	err = tx.QueryRowContext(ctx, `INSERT INTO products
		(name, category, sku, serial_number, vendor, brand, model, model_number, location,
		status, condition, purchase_date, purchase_price, last_service_date, next_service_due,
		notes, allocated_to_id, equipment_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING id`,
		p.Name, int(p.Category), p.SKU, p.SerialNumber, p.Vendor, p.Brand, p.Model,
		p.ModelNumber, p.Location, int(p.Status), int(p.Condition), p.PurchaseDate,
		p.PurchasePrice, p.LastServiceDate, p.NextServiceDue, p.Notes, p.AllocatedToID,
		p.Equipment.EquipmentID(), p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *PostgresProductRepository) Filter(filter ProductFilter) ([]models.Product, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conditions, args, argIdx := productFilterConditions(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := "SELECT " + productColumns + " FROM products WHERE 1=1" + conditions + " ORDER BY created_at DESC, id DESC"
	if filter.Limit != nil && *filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *filter.Limit)
		argIdx++
	}
	if filter.Offset != nil && *filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, equipmentID, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		p.Equipment, err = getEquipment(ctx, r.db, p.Category, equipmentID)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	row := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id=$1", id)
	p, equipmentID, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}

	p.Equipment, err = getEquipment(ctx, r.db, p.Category, equipmentID)
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, err
	}
	defer tx.Rollback()

	var storedStatus, equipmentID int
	err = tx.QueryRowContext(ctx, `SELECT status, equipment_id FROM products WHERE id=$1 FOR UPDATE`, p.ID).
		Scan(&storedStatus, &equipmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	if models.Status(storedStatus) == models.StatusSold && p.Status != models.StatusSold {
		return models.Product{}, ErrProductSold
	}

	// Callers build the equipment record from the request payload, so it
	// arrives without the stored row id.
	if p.Equipment != nil && p.Equipment.EquipmentID() == 0 {
		p.Equipment.SetEquipmentID(equipmentID)
	}

	// Equipment attributes first, then the common attributes; a failure in
	// either rolls back both.
	if err := updateEquipment(ctx, tx, p.Equipment); err != nil {
		return models.Product{}, err
	}

	p.UpdatedAt = time.Now().UTC()
	res, err := tx.ExecContext(ctx, `UPDATE products SET
		name=$1, sku=$2, serial_number=$3, vendor=$4, brand=$5, model=$6, model_number=$7,
		location=$8, status=$9, condition=$10, purchase_date=$11, purchase_price=$12,
		last_service_date=$13, next_service_due=$14, notes=$15, allocated_to_id=$16, updated_at=$17
		WHERE id=$18`,
		p.Name, p.SKU, p.SerialNumber, p.Vendor, p.Brand, p.Model, p.ModelNumber,
		p.Location, int(p.Status), int(p.Condition), p.PurchaseDate, p.PurchasePrice,
		p.LastServiceDate, p.NextServiceDue, p.Notes, p.AllocatedToID, p.UpdatedAt, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return models.Product{}, ErrProductNotFound
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func (r *PostgresProductRepository) Delete(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var category, equipmentID int
	err = tx.QueryRowContext(ctx, `SELECT category, equipment_id FROM products WHERE id=$1`, id).
		Scan(&category, &equipmentID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return ErrHasDependentSale
		}
		return err
	}
	if err := deleteEquipment(ctx, tx, models.Category(category), equipmentID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresProductRepository) ServiceDueBetween(from, to time.Time) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, "SELECT "+productColumns+` FROM products
		WHERE next_service_due BETWEEN $1 AND $2 AND status NOT IN ($3, $4)
		ORDER BY next_service_due`,
		from, to, int(models.StatusSold), int(models.StatusRetired))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, equipmentID, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		p.Equipment, err = getEquipment(ctx, r.db, p.Category, equipmentID)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, int, error) {
	var (
		p               models.Product
		category        int
		status          int
		condition       int
		purchaseDate    sql.NullTime
		purchasePrice   sql.NullFloat64
		lastServiceDate sql.NullTime
		nextServiceDue  sql.NullTime
		allocatedToID   sql.NullInt64
		equipmentID     int
	)
	err := row.Scan(&p.ID, &p.Name, &category, &p.SKU, &p.SerialNumber, &p.Vendor,
		&p.Brand, &p.Model, &p.ModelNumber, &p.Location, &status, &condition,
		&purchaseDate, &purchasePrice, &lastServiceDate, &nextServiceDue, &p.Notes,
		&allocatedToID, &equipmentID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Product{}, 0, err
	}

	p.Category = models.Category(category)
	p.Status = models.Status(status)
	p.Condition = models.Condition(condition)
	if purchaseDate.Valid {
		p.PurchaseDate = &purchaseDate.Time
	}
	if purchasePrice.Valid {
		p.PurchasePrice = &purchasePrice.Float64
	}
	if lastServiceDate.Valid {
		p.LastServiceDate = &lastServiceDate.Time
	}
	if nextServiceDue.Valid {
		p.NextServiceDue = &nextServiceDue.Time
	}
	if allocatedToID.Valid {
		id := int(allocatedToID.Int64)
		p.AllocatedToID = &id
	}
	return p, equipmentID, nil
}

func productFilterConditions(filter ProductFilter) (string, []any, int) {
	conditions := ""
	args := []any{}
	argIdx := 1

	if filter.Query != "" {
		conditions += fmt.Sprintf(` AND (name ILIKE $%d OR sku ILIKE $%d OR serial_number ILIKE $%d OR brand ILIKE $%d OR model ILIKE $%d)`,
			argIdx, argIdx, argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Query+"%")
		argIdx++
	}
	if filter.Category != nil {
		conditions += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, int(*filter.Category))
		argIdx++
	}
	if filter.Status != nil {
		conditions += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, int(*filter.Status))
		argIdx++
	}
	return conditions, args, argIdx
}
