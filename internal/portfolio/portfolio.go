package portfolio

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ksred/folio-api/internal/types"
	"github.com/ksred/folio-api/pkg/middleware"
	"github.com/ksred/folio-api/pkg/response"
)

// ErrEmptyPortfolio signals that a user holds no stocks with positive net
// quantity. It is a distinct outcome, not a failure: the HTTP layer renders
// it as a successful response with an explanatory message.
var ErrEmptyPortfolio = errors.New("no stocks in portfolio")

// Service derives portfolio views from the order ledger
type Service struct {
	db *Database
}

// NewService creates a new portfolio service with the given database connection
func NewService(gormDB *gorm.DB) *Service {
	return &Service{
		db: NewDatabase(gormDB),
	}
}

// Portfolio returns the user's current holdings valued at current prices.
// Stocks with zero or negative net quantity are dropped; remaining positions
// keep the first-occurrence order of their orders in the ledger. Returns
// ErrEmptyPortfolio when nothing is held.
func (s *Service) Portfolio(userID uint) ([]Position, error) {
	logger := log.With().
		Uint("user_id", userID).
		Str("service", "portfolio").
		Logger()

	orders, err := s.db.GetOrdersByUser(userID)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch orders")
		return nil, err
	}

	stocks, err := s.db.GetStocksByIDs(stockIDs(orders))
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch stocks")
		return nil, err
	}

	summaries := CalculateHoldings(orders, stocks)

	positions := make([]Position, 0, len(summaries))
	for _, summary := range summaries {
		if summary.NetQuantity <= 0 {
			continue
		}
		positions = append(positions, Position{
			StockName:  summary.StockName,
			Quantity:   summary.NetQuantity,
			TotalValue: summary.TotalValue,
		})
	}

	if len(positions) == 0 {
		return nil, ErrEmptyPortfolio
	}

	logger.Debug().
		Int("orders", len(orders)).
		Int("positions", len(positions)).
		Msg("computed portfolio")

	return positions, nil
}

// TotalValueInvested computes the net value a user has invested in one stock:
// total buy value minus total sell value, both at the stock's current price.
// A stock the user never traded yields zero; an unknown stock id yields
// types.ErrStockNotFound.
func (s *Service) TotalValueInvested(userID, stockID uint) (decimal.Decimal, error) {
	stock, err := s.db.GetStock(stockID)
	if err != nil {
		return decimal.Zero, err
	}
	if stock == nil {
		return decimal.Zero, types.ErrStockNotFound
	}

	buyOrders, err := s.db.GetOrdersByUserStockType(userID, stockID, types.OrderTypeBuy)
	if err != nil {
		return decimal.Zero, err
	}
	sellOrders, err := s.db.GetOrdersByUserStockType(userID, stockID, types.OrderTypeSell)
	if err != nil {
		return decimal.Zero, err
	}

	totalBuyValue := orderValue(buyOrders, stock.Price)
	totalSellValue := orderValue(sellOrders, stock.Price)

	return totalBuyValue.Sub(totalSellValue), nil
}

func orderValue(orders []types.Order, price decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(price.Mul(decimal.NewFromInt(order.Quantity)))
	}
	return total
}

// stockIDs collects the distinct stock ids referenced by the orders
func stockIDs(orders []types.Order) []uint {
	seen := make(map[uint]bool, len(orders))
	ids := make([]uint, 0, len(orders))
	for _, order := range orders {
		if !seen[order.StockID] {
			seen[order.StockID] = true
			ids = append(ids, order.StockID)
		}
	}
	return ids
}

// GinHandlers contains HTTP handlers for portfolio endpoints
type GinHandlers struct {
	service *Service
}

// NewGinHandlers creates a new set of HTTP handlers for portfolio endpoints
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

// PortfolioHandler handles GET requests for the authenticated user's portfolio
// Requires a valid JWT token
func (h *GinHandlers) PortfolioHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Unauthorized(c, "Missing authenticated user")
			return
		}

		positions, err := h.service.Portfolio(userID)
		if errors.Is(err, ErrEmptyPortfolio) {
			response.Success(c, gin.H{
				"message": "You currently have no stocks in your portfolio",
			})
			return
		}
		response.Handle(c, positions, err)
	}
}

// TotalValueInvestedHandler handles GET requests for the net value invested
// in a single stock
// Requires a valid JWT token
// URL parameter: stock_id
func (h *GinHandlers) TotalValueInvestedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Unauthorized(c, "Missing authenticated user")
			return
		}

		stockID, err := strconv.ParseUint(c.Param("stock_id"), 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid stock ID")
			return
		}

		totalValue, err := h.service.TotalValueInvested(userID, uint(stockID))
		if err != nil {
			response.Handle(c, nil, err)
			return
		}

		response.Success(c, gin.H{"total_value": totalValue})
	}
}
