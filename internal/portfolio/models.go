package portfolio

import (
	"github.com/shopspring/decimal"
)

// HoldingsSummary is the per-stock aggregation derived from a user's order
// history. It is computed on demand and never persisted.
type HoldingsSummary struct {
	StockID           uint            `json:"stock_id"`
	StockName         string          `json:"stock_name"`
	TotalBuyQuantity  int64           `json:"total_buy_quantity"`
	TotalSellQuantity int64           `json:"total_sell_quantity"`
	NetQuantity       int64           `json:"net_quantity"`
	TotalValue        decimal.Decimal `json:"total_value"`
}

// Position is one entry of a user's valued portfolio: a stock held with
// positive net quantity, valued at the stock's current price.
type Position struct {
	StockName  string          `json:"stock_name"`
	Quantity   int64           `json:"quantity"`
	TotalValue decimal.Decimal `json:"total_value"`
}
