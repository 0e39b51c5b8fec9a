package main

import (
	"database/sql"
	"fmt"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS categories (
		id SERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		color VARCHAR(7) DEFAULT '#667eea',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id SERIAL PRIMARY KEY,
		date DATE NOT NULL,
		description TEXT NOT NULL,
		raw_description TEXT NOT NULL DEFAULT '',
		details TEXT NOT NULL DEFAULT '',
		counterparty VARCHAR(255),
		amount DECIMAL(12,2) NOT NULL,
		category VARCHAR(50) NOT NULL DEFAULT 'Other',
		type VARCHAR(100) NOT NULL DEFAULT '',
		source VARCHAR(30) NOT NULL DEFAULT 'bank_statement',
		is_credit_card_payment BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Remove duplicates before enforcing uniqueness
	DO $$
	BEGIN
		IF EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = 'transactions'
		) THEN
			WITH d AS (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY date, amount, raw_description ORDER BY id) rn
				FROM transactions
			)
			DELETE FROM transactions WHERE id IN (SELECT id FROM d WHERE rn > 1);
		END IF;
	END $$;

	-- The dedup key: re-importing the same source row is a silent no-op
	CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_dedup
		ON transactions(date, amount, raw_description);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name ON categories(name);
	CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
	CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category);
`

const seedSQL = `
	INSERT INTO categories (name, color) VALUES
		('Income', '#27ae60'),
		('Groceries', '#e74c3c'),
		('Dining', '#e67e22'),
		('Transportation', '#3498db'),
		('Housing', '#8e44ad'),
		('Utilities', '#f39c12'),
		('Shopping', '#d35400'),
		('Entertainment', '#9b59b6'),
		('Health & Fitness', '#16a085'),
		('Credit Card Payment', '#7f8c8d'),
		('Subscriptions', '#2980b9'),
		('Travel', '#1abc9c'),
		('Other', '#95a5a6')
	ON CONFLICT (name) DO NOTHING;
`

func ensureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func seedCategories(db *sql.DB) error {
	if _, err := db.Exec(seedSQL); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}
