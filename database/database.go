package database

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/lib/pq"
)

var DB *sql.DB

// InitDatabase opens the connection pool against the configured Postgres
// endpoint and verifies it with a ping.
func InitDatabase(connString string) error {
	if connString == "" {
		return fmt.Errorf("database connection string is required")
	}

	var err error
	DB, err = sql.Open("postgres", connString)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %v", err)
	}

	log.Println("Successfully connected to database")
	return nil
}

// CreateTables creates the worker's tables if they don't exist.
func CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			user_id VARCHAR(255) NOT NULL,
			name TEXT NOT NULL,
			url TEXT,
			current_price DECIMAL(10,2),
			currency VARCHAR(3) DEFAULT 'USD',
			status VARCHAR(20) DEFAULT 'queued' CHECK (status IN ('queued', 'scraping', 'tracking', 'scrape_failed')),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			last_checked TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS price_history (
			id SERIAL PRIMARY KEY,
			product_id INTEGER REFERENCES products(id) ON DELETE CASCADE,
			price DECIMAL(10,2) NOT NULL,
			currency VARCHAR(3) DEFAULT 'USD',
			source VARCHAR(20) DEFAULT 'auto',
			recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS comparison_prices (
			id SERIAL PRIMARY KEY,
			product_id INTEGER REFERENCES products(id) ON DELETE CASCADE,
			store_name TEXT NOT NULL,
			store_url TEXT NOT NULL,
			price DECIMAL(10,2),
			currency VARCHAR(3) DEFAULT 'USD',
			is_available BOOLEAN DEFAULT FALSE,
			last_checked TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (product_id, store_name)
		)`,
		`CREATE TABLE IF NOT EXISTS user_settings (
			id VARCHAR(255) PRIMARY KEY,
			discord_webhook TEXT,
			check_frequency INTEGER DEFAULT 12,
			default_currency VARCHAR(3) DEFAULT 'USD',
			username TEXT,
			avatar_url TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_products_url ON products (id) WHERE url IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_price_history_product ON price_history (product_id, recorded_at)`,
	}

	for _, query := range queries {
		_, err := DB.Exec(query)
		if err != nil {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}

	return nil
}

// CloseDatabase closes the database connection.
func CloseDatabase() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
