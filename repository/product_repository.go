package repository

import (
	"fmt"
	"time"

	"shopscout/database"
	"shopscout/models"
)

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// GetCheckableProducts returns all products with a source URL, the set a
// check cycle operates on. Products without a URL are user-managed records
// the worker never touches.
func (r *ProductRepository) GetCheckableProducts() ([]models.Product, error) {
	query := `
		SELECT id, user_id, name, url, current_price, currency, status, created_at, last_checked
		FROM products
		WHERE url IS NOT NULL AND url != ''
		ORDER BY last_checked ASC NULLS FIRST
	`

	rows, err := database.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkable products: %v", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.URL,
			&p.CurrentPrice, &p.Currency, &p.Status,
			&p.CreatedAt, &p.LastChecked,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %v", err)
		}
		products = append(products, p)
	}

	return products, nil
}

// MarkScraping flags a product as being checked right now.
func (r *ProductRepository) MarkScraping(id int) error {
	query := `UPDATE products SET status = $2 WHERE id = $1`

	_, err := database.DB.Exec(query, id, models.StatusScraping)
	if err != nil {
		return fmt.Errorf("failed to mark product scraping: %v", err)
	}

	return nil
}

// UpdateAfterCheck records a successful scrape: new price, possibly updated
// name and currency, and a transition to the tracking status.
func (r *ProductRepository) UpdateAfterCheck(id int, name string, price float64, currency string) error {
	query := `
		UPDATE products
		SET name = $2, current_price = $3, currency = $4, status = $5, last_checked = $6
		WHERE id = $1
	`

	_, err := database.DB.Exec(query, id, name, price, currency, models.StatusTracking, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update product after check: %v", err)
	}

	return nil
}

// MarkCheckFailed transitions a product to scrape_failed. The stored price
// is left as-is so the last known value survives a bad cycle.
func (r *ProductRepository) MarkCheckFailed(id int) error {
	query := `
		UPDATE products
		SET status = $2, last_checked = $3
		WHERE id = $1
	`

	_, err := database.DB.Exec(query, id, models.StatusScrapeFailed, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark product check failed: %v", err)
	}

	return nil
}

// AddHistory appends an immutable price observation tagged with the worker
// source.
func (r *ProductRepository) AddHistory(productID int, price float64, currency string) error {
	query := `
		INSERT INTO price_history (product_id, price, currency, source, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := database.DB.Exec(query, productID, price, currency, models.HistorySourceAuto, time.Now())
	if err != nil {
		return fmt.Errorf("failed to add price history: %v", err)
	}

	return nil
}

// StatusCounts returns the number of products per lifecycle status, for
// the status endpoint.
func (r *ProductRepository) StatusCounts() (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM products GROUP BY status`

	rows, err := database.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %v", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %v", err)
		}
		counts[status] = count
	}

	return counts, nil
}
