package trading

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ksred/folio-api/internal/types"
)

// Database is the append-only order ledger. Orders are inserted and queried;
// there is no update or delete path.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

// CreateOrder appends an order to the ledger. The primary key and placement
// timestamp are assigned on insert.
func (d *Database) CreateOrder(order *types.Order) error {
	return d.db.Create(order).Error
}

// GetOrdersByUser returns all of a user's orders in insertion order
func (d *Database) GetOrdersByUser(userID uint) ([]types.Order, error) {
	var orders []types.Order
	if err := d.db.Where("user_id = ?", userID).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrdersByUserAndStock returns a user's orders for one stock
func (d *Database) GetOrdersByUserAndStock(userID, stockID uint) ([]types.Order, error) {
	var orders []types.Order
	if err := d.db.Where("user_id = ? AND stock_id = ?", userID, stockID).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (d *Database) GetStock(stockID uint) (*types.Stock, error) {
	var stock types.Stock
	if err := d.db.First(&stock, stockID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}
