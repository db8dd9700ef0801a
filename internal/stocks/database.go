package stocks

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

func (d *Database) CreateStock(stock *types.Stock) error {
	return d.db.Create(stock).Error
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

func (d *Database) ListStocks() ([]types.Stock, error) {
	var stocks []types.Stock
	if err := d.db.Order("id ASC").Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

func (d *Database) UpdateStock(stock *types.Stock) error {
	return d.db.Save(stock).Error
}

// DeleteStockCascade removes a stock and all orders referencing it in a
// single transaction, preserving referential integrity.
func (d *Database) DeleteStockCascade(stockID uint) error {
	tx := d.db.Begin()
	if err := tx.Error; err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Where("stock_id = ?", stockID).Delete(&types.Order{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&types.Stock{}, stockID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
