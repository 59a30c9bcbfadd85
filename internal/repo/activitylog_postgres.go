package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ditservices/asset-tracker/internal/models"
)

// PostgresActivityLogRepository persists the append-only audit trail.
type PostgresActivityLogRepository struct {
	db *sql.DB
}

func NewPostgresActivityLogRepository(db *sql.DB) *PostgresActivityLogRepository {
	return &PostgresActivityLogRepository{db: db}
}

func (r *PostgresActivityLogRepository) Create(entry models.ActivityLog) (models.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	entry.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, `INSERT INTO activity_logs
		(user_id, action_type, entity_type, entity_id, old_values, new_values, ip_address, user_agent, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING id`,
		entry.UserID, entry.ActionType, entry.EntityType, entry.EntityID,
		nullableJSON(entry.OldValues), nullableJSON(entry.NewValues),
		entry.IPAddress, entry.UserAgent, entry.CreatedAt).Scan(&entry.ID)
	if err != nil {
		return models.ActivityLog{}, err
	}
	return entry, nil
}

func (r *PostgresActivityLogRepository) Filter(filter ActivityLogFilter) ([]models.ActivityLog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := `SELECT id, user_id, action_type, entity_type, entity_id, old_values, new_values,
		ip_address, user_agent, created_at FROM activity_logs WHERE 1=1`
	args := []any{}
	argIdx := 1

	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.EntityType != "" {
		query += fmt.Sprintf(" AND entity_type = $%d", argIdx)
		args = append(args, filter.EntityType)
		argIdx++
	}
	if filter.EntityID != nil {
		query += fmt.Sprintf(" AND entity_id = $%d", argIdx)
		args = append(args, *filter.EntityID)
		argIdx++
	}
	if filter.ActionType != "" {
		query += fmt.Sprintf(" AND action_type = $%d", argIdx)
		args = append(args, filter.ActionType)
		argIdx++
	}
	if filter.FromDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *filter.FromDate)
		argIdx++
	}
	if filter.ToDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *filter.ToDate)
		argIdx++
	}

	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.ActivityLog
	for rows.Next() {
		var (
			e                    models.ActivityLog
			oldValues, newValues []byte
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.ActionType, &e.EntityType, &e.EntityID,
			&oldValues, &newValues, &e.IPAddress, &e.UserAgent, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.OldValues = oldValues
		e.NewValues = newValues
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}
