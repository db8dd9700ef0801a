package migrations

import (
	"gorm.io/gorm"
)

// AddOrderIndexes creates the indexes the ledger aggregation queries depend on
func AddOrderIndexes(db *gorm.DB) error {
	// Using raw SQL for index creation to have more control over index types
	indexes := []string{
		// Composite index covering the holdings aggregation queries:
		// by user, by (user, stock) and by (user, stock, order_type)
		`CREATE INDEX IF NOT EXISTS idx_orders_user_stock_type
		 ON orders(user_id, stock_id, order_type)`,

		// Index for cascade deletion of a stock's orders
		`CREATE INDEX IF NOT EXISTS idx_orders_stock
		 ON orders(stock_id)`,

		// Index for placed_at timestamp (useful for time-based queries)
		`CREATE INDEX IF NOT EXISTS idx_orders_placed_at
		 ON orders(placed_at)`,
	}

	// Execute each index creation
	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			return err
		}
	}

	return nil
}
