package repository

import (
	"database/sql"
	"fmt"
	"time"

	"shopscout/database"
)

type ComparisonRepository struct{}

func NewComparisonRepository() *ComparisonRepository {
	return &ComparisonRepository{}
}

// UpsertOffer writes the comparison row for one (product, store) pair. At
// most one row per pair exists; a repeat check overwrites the previous
// observation.
func (r *ComparisonRepository) UpsertOffer(productID int, storeName, storeURL string, price float64, currency string) error {
	query := `
		INSERT INTO comparison_prices (product_id, store_name, store_url, price, currency, is_available, last_checked)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6)
		ON CONFLICT (product_id, store_name) DO UPDATE SET
			store_url = EXCLUDED.store_url,
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			is_available = EXCLUDED.is_available,
			last_checked = EXCLUDED.last_checked
	`

	_, err := database.DB.Exec(query, productID, storeName, storeURL, price, currency, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert comparison offer: %v", err)
	}

	return nil
}

// UpsertUnavailable records that a store yielded no confident match this
// cycle. The row survives with a null price so the store link remains
// usable, but availability is cleared.
func (r *ComparisonRepository) UpsertUnavailable(productID int, storeName, storeURL, currency string) error {
	query := `
		INSERT INTO comparison_prices (product_id, store_name, store_url, price, currency, is_available, last_checked)
		VALUES ($1, $2, $3, NULL, $4, FALSE, $5)
		ON CONFLICT (product_id, store_name) DO UPDATE SET
			store_url = EXCLUDED.store_url,
			price = NULL,
			currency = EXCLUDED.currency,
			is_available = FALSE,
			last_checked = EXCLUDED.last_checked
	`

	_, err := database.DB.Exec(query, productID, storeName, storeURL, currency, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert unavailable offer: %v", err)
	}

	return nil
}

// CountAvailable returns the number of comparison rows currently carrying
// a live price, for the status endpoint.
func (r *ComparisonRepository) CountAvailable() (int, error) {
	var count int
	err := database.DB.QueryRow(`SELECT COUNT(*) FROM comparison_prices WHERE is_available = TRUE`).Scan(&count)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to count comparison offers: %v", err)
	}
	return count, nil
}
