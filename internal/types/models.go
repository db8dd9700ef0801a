package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order types accepted by the ledger.
const (
	OrderTypeBuy  = "buy"
	OrderTypeSell = "sell"
)

// Stock represents a tradeable instrument. Price is the current market price
// and is the only price the system knows: orders carry no price snapshot, so
// every valuation uses the price at query time.
type Stock struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	Name      string          `gorm:"size:100;not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Order is an immutable ledger entry recording a buy or sell of a quantity of
// a stock by a user. Orders are only ever inserted, never updated; the one
// exception is cascade removal when an admin deletes the referenced stock.
type Order struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null" json:"-"`
	StockID   uint      `gorm:"not null" json:"stock"`
	OrderType string    `gorm:"size:4;not null" json:"order_type"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	PlacedAt  time.Time `gorm:"autoCreateTime" json:"date_time_placed"`
}

// ValidOrderType reports whether t is one of the accepted order types.
func ValidOrderType(t string) bool {
	return t == OrderTypeBuy || t == OrderTypeSell
}
