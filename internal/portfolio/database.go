package portfolio

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ksred/folio-api/internal/types"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

// GetOrdersByUser returns all of a user's orders in insertion order
func (d *Database) GetOrdersByUser(userID uint) ([]types.Order, error) {
	var orders []types.Order
	if err := d.db.Where("user_id = ?", userID).Order("id ASC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrdersByUserStockType returns a user's orders for one stock and one
// order type
func (d *Database) GetOrdersByUserStockType(userID, stockID uint, orderType string) ([]types.Order, error) {
	var orders []types.Order
	err := d.db.
		Where("user_id = ? AND stock_id = ? AND order_type = ?", userID, stockID, orderType).
		Find(&orders).Error
	if err != nil {
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

// GetStocksByIDs returns the stocks with the given ids keyed by id
func (d *Database) GetStocksByIDs(ids []uint) (map[uint]types.Stock, error) {
	stocks := make(map[uint]types.Stock, len(ids))
	if len(ids) == 0 {
		return stocks, nil
	}

	var rows []types.Stock
	if err := d.db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, stock := range rows {
		stocks[stock.ID] = stock
	}
	return stocks, nil
}
