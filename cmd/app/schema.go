package main

import "database/sql"

// schemaStatements is applied in order on boot. Everything is idempotent so
// a restart against an existing database is a no-op.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'user',
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		avatar_url TEXT,
		wishlist integer[] NOT NULL DEFAULT '{}',
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		product_id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC NOT NULL DEFAULT 0,
		category TEXT NOT NULL DEFAULT '',
		subcategory TEXT NOT NULL DEFAULT '',
		sizes text[] NOT NULL DEFAULT '{}',
		stock INT NOT NULL DEFAULT 0,
		ratings NUMERIC NOT NULL DEFAULT 0,
		number_of_reviews INT NOT NULL DEFAULT 0,
		image TEXT,
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		review_id SERIAL PRIMARY KEY,
		product_id INT NOT NULL,
		user_id INT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		rating INT NOT NULL DEFAULT 0,
		comment TEXT NOT NULL DEFAULT '',
		created_at TEXT,
		UNIQUE (product_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id SERIAL PRIMARY KEY,
		user_id INT NOT NULL,
		shipping jsonb NOT NULL DEFAULT '{}',
		payment jsonb NOT NULL DEFAULT '{}',
		item_price NUMERIC NOT NULL DEFAULT 0,
		tax_price NUMERIC NOT NULL DEFAULT 0,
		shipping_price NUMERIC NOT NULL DEFAULT 0,
		total_price NUMERIC NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'Verification Pending',
		paid_at TEXT,
		delivered_at TEXT,
		created_at TEXT,
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_item_id SERIAL PRIMARY KEY,
		order_id INT NOT NULL,
		product_id INT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		price NUMERIC NOT NULL DEFAULT 0,
		quantity INT NOT NULL DEFAULT 0,
		size TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS order_items_product_idx ON order_items (product_id)`,
	`CREATE INDEX IF NOT EXISTS order_items_order_idx ON order_items (order_id)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		cart_item_id SERIAL PRIMARY KEY,
		user_id INT NOT NULL,
		product_id INT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		size TEXT NOT NULL DEFAULT '',
		UNIQUE (user_id, product_id, size)
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		address_id SERIAL PRIMARY KEY,
		user_id INT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		line TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		state TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		pin_code TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		is_default BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS otps (
		otp_id SERIAL PRIMARY KEY,
		email TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		code_hash TEXT NOT NULL,
		purpose TEXT NOT NULL,
		attempts INT NOT NULL DEFAULT 0,
		expires_at TEXT NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE (email, purpose)
	)`,
	`CREATE TABLE IF NOT EXISTS chatbot_responses (
		response_id SERIAL PRIMARY KEY,
		keywords text[] NOT NULL DEFAULT '{}',
		reply TEXT NOT NULL,
		suggestions text[] NOT NULL DEFAULT '{}',
		priority INT NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS site_content (
		key TEXT PRIMARY KEY,
		doc jsonb NOT NULL DEFAULT '{}',
		updated_at TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		notification_id SERIAL PRIMARY KEY,
		user_id INT NOT NULL,
		type TEXT NOT NULL DEFAULT 'general',
		title TEXT NOT NULL DEFAULT '',
		body TEXT NOT NULL DEFAULT '',
		read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS notifications_user_idx ON notifications (user_id)`,
}

func ensureSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
