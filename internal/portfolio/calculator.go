package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/ksred/folio-api/internal/types"
)

// CalculateHoldings aggregates a user's order history into one summary per
// stock. Orders are grouped by stock id; buys and sells are summed per group
// and net quantity is buys minus sells. A positive net position is valued at
// the stock's current price from the stocks map; zero or negative positions
// are valued at zero, never negative.
//
// The result preserves first-seen order: summaries appear in the order their
// stock first occurs in the input. An empty input yields an empty result.
func CalculateHoldings(orders []types.Order, stocks map[uint]types.Stock) []HoldingsSummary {
	summaries := make([]HoldingsSummary, 0, len(stocks))
	index := make(map[uint]int, len(stocks))

	for _, order := range orders {
		i, seen := index[order.StockID]
		if !seen {
			i = len(summaries)
			index[order.StockID] = i
			summaries = append(summaries, HoldingsSummary{
				StockID:    order.StockID,
				StockName:  stocks[order.StockID].Name,
				TotalValue: decimal.Zero,
			})
		}

		switch order.OrderType {
		case types.OrderTypeBuy:
			summaries[i].TotalBuyQuantity += order.Quantity
		case types.OrderTypeSell:
			summaries[i].TotalSellQuantity += order.Quantity
		}
	}

	for i := range summaries {
		s := &summaries[i]
		s.NetQuantity = s.TotalBuyQuantity - s.TotalSellQuantity
		if s.NetQuantity > 0 {
			s.TotalValue = stocks[s.StockID].Price.Mul(decimal.NewFromInt(s.NetQuantity))
		}
	}

	return summaries
}

// NetQuantity is the single-stock sub-computation of CalculateHoldings: total
// bought minus total sold over the given orders. Callers pass orders already
// restricted to one (user, stock) pair; the sell-validation path uses this to
// determine the quantity available for sale.
func NetQuantity(orders []types.Order) int64 {
	var net int64
	for _, order := range orders {
		switch order.OrderType {
		case types.OrderTypeBuy:
			net += order.Quantity
		case types.OrderTypeSell:
			net -= order.Quantity
		}
	}
	return net
}
