package db

import (
	"context"
	"database/sql"
	"time"
)

// Category, status, condition, and role columns hold the smallint values
// defined in internal/models.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role SMALLINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS index_users_on_email ON users (lower(email))`,

	`CREATE TABLE IF NOT EXISTS laptops (
		id SERIAL PRIMARY KEY,
		cpu TEXT NOT NULL DEFAULT '', cpu_generation TEXT NOT NULL DEFAULT '', gpu TEXT NOT NULL DEFAULT '',
		ram_size TEXT NOT NULL DEFAULT '', ram_type TEXT NOT NULL DEFAULT '',
		storage_capacity TEXT NOT NULL DEFAULT '', storage_type TEXT NOT NULL DEFAULT '',
		screen_size TEXT NOT NULL DEFAULT '', screen_resolution TEXT NOT NULL DEFAULT '', display_type TEXT NOT NULL DEFAULT '',
		keyboard_type TEXT NOT NULL DEFAULT '', keyboard_backlight BOOLEAN NOT NULL DEFAULT FALSE,
		battery_capacity TEXT NOT NULL DEFAULT '',
		webcam BOOLEAN NOT NULL DEFAULT FALSE, microphone BOOLEAN NOT NULL DEFAULT FALSE,
		wifi_type TEXT NOT NULL DEFAULT '', bluetooth_version TEXT NOT NULL DEFAULT '', ports TEXT NOT NULL DEFAULT '',
		weight TEXT NOT NULL DEFAULT '', operating_system TEXT NOT NULL DEFAULT '', license_key TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS mice (
		id SERIAL PRIMARY KEY,
		connectivity TEXT NOT NULL DEFAULT '', dpi INTEGER NOT NULL DEFAULT 0,
		buttons INTEGER NOT NULL DEFAULT 0, color TEXT NOT NULL DEFAULT '',
		rechargeable BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS keyboards (
		id SERIAL PRIMARY KEY,
		layout TEXT NOT NULL DEFAULT '', switch_type TEXT NOT NULL DEFAULT '', backlit BOOLEAN NOT NULL DEFAULT FALSE,
		connectivity TEXT NOT NULL DEFAULT '', wireless BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS servers (
		id SERIAL PRIMARY KEY,
		cpu_model TEXT NOT NULL DEFAULT '', cpu_count INTEGER NOT NULL DEFAULT 0,
		ram_size TEXT NOT NULL DEFAULT '', storage_capacity TEXT NOT NULL DEFAULT '', storage_type TEXT NOT NULL DEFAULT '',
		raid_level TEXT NOT NULL DEFAULT '', operating_system TEXT NOT NULL DEFAULT '', rack_units TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS desktop_pcs (
		id SERIAL PRIMARY KEY,
		cpu TEXT NOT NULL DEFAULT '', ram_size TEXT NOT NULL DEFAULT '', storage_capacity TEXT NOT NULL DEFAULT '', storage_type TEXT NOT NULL DEFAULT '',
		gpu TEXT NOT NULL DEFAULT '', form_factor TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS accessories (
		id SERIAL PRIMARY KEY,
		accessory_type TEXT NOT NULL DEFAULT '', color TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		category SMALLINT NOT NULL DEFAULT 0,
		sku TEXT NOT NULL,
		serial_number TEXT NOT NULL,
		vendor TEXT NOT NULL DEFAULT '', brand TEXT NOT NULL DEFAULT '', model TEXT NOT NULL DEFAULT '', model_number TEXT NOT NULL DEFAULT '', location TEXT NOT NULL DEFAULT '',
		status SMALLINT NOT NULL DEFAULT 0,
		condition SMALLINT NOT NULL DEFAULT 0,
		purchase_date DATE,
		purchase_price NUMERIC(12,2),
		last_service_date DATE,
		next_service_due DATE,
		notes TEXT NOT NULL DEFAULT '',
		allocated_to_id INTEGER REFERENCES users(id),
		equipment_id INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS index_products_on_sku ON products (sku)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS index_products_on_serial_number ON products (serial_number)`,
	`CREATE INDEX IF NOT EXISTS index_products_on_category ON products (category)`,
	`CREATE INDEX IF NOT EXISTS index_products_on_status ON products (status)`,

	`CREATE TABLE IF NOT EXISTS sales (
		id SERIAL PRIMARY KEY,
		product_id INTEGER NOT NULL UNIQUE REFERENCES products(id) ON DELETE RESTRICT,
		sold_by_id INTEGER NOT NULL REFERENCES users(id) ON DELETE RESTRICT,
		sold_to TEXT NOT NULL,
		sold_at TIMESTAMPTZ NOT NULL,
		sale_price NUMERIC(10,2) NOT NULL,
		invoice_ref TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS activity_logs (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		action_type TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id INTEGER NOT NULL,
		old_values JSONB,
		new_values JSONB,
		ip_address TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS index_activity_logs_on_entity ON activity_logs (entity_type, entity_id)`,
	`CREATE INDEX IF NOT EXISTS index_activity_logs_on_created_at ON activity_logs (created_at)`,

	`CREATE TABLE IF NOT EXISTS blacklisted_tokens (
		id SERIAL PRIMARY KEY,
		token_digest TEXT NOT NULL UNIQUE,
		expires_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS index_blacklisted_tokens_on_expires_at ON blacklisted_tokens (expires_at)`,

	`CREATE TABLE IF NOT EXISTS attachments (
		id SERIAL PRIMARY KEY,
		product_id INTEGER NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		filename TEXT NOT NULL,
		content_type TEXT NOT NULL,
		byte_size BIGINT NOT NULL,
		key TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema creates all tables and indexes if they do not exist yet.
func EnsureSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
