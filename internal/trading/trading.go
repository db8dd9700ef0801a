package trading

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/ksred/folio-api/internal/portfolio"
	"github.com/ksred/folio-api/internal/types"
	"github.com/ksred/folio-api/pkg/middleware"
	"github.com/ksred/folio-api/pkg/response"
)

// Service handles order placement and the order history
type Service struct {
	db *Database
}

// NewService creates a new trading service with the given database connection
func NewService(gormDB *gorm.DB) *Service {
	return &Service{
		db: NewDatabase(gormDB),
	}
}

// CreateOrderRequest represents an order placement request
type CreateOrderRequest struct {
	StockID   uint   `json:"stock"`
	OrderType string `json:"order_type"`
	Quantity  int64  `json:"quantity"`
}

// CreateOrder validates and appends a new order to the ledger on behalf of
// the given user. Quantity must be positive and the order type one of buy or
// sell. Sell orders are additionally checked against the user's current net
// holdings of the stock; a sell exceeding the available quantity is rejected
// and nothing is persisted.
//
// The holdings check and the insert are two steps without a lock between
// them, so two concurrent sells can both pass the check. This mirrors the
// original system's behavior; see DESIGN.md.
func (s *Service) CreateOrder(userID uint, req CreateOrderRequest) (*types.Order, error) {
	logger := log.With().
		Uint("user_id", userID).
		Uint("stock_id", req.StockID).
		Str("order_type", req.OrderType).
		Int64("quantity", req.Quantity).
		Str("service", "trading").
		Logger()

	if req.Quantity <= 0 {
		return nil, types.NewValidationError("quantity must be a positive integer")
	}
	if !types.ValidOrderType(req.OrderType) {
		return nil, types.NewValidationError("order_type must be one of: buy, sell")
	}

	stock, err := s.db.GetStock(req.StockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, types.ErrStockNotFound
	}

	if req.OrderType == types.OrderTypeSell {
		existing, err := s.db.GetOrdersByUserAndStock(userID, req.StockID)
		if err != nil {
			return nil, err
		}

		available := portfolio.NetQuantity(existing)
		if req.Quantity > available {
			logger.Warn().
				Int64("available", available).
				Msg("sell order exceeds holdings")
			return nil, types.NewValidationError(
				"You cannot sell more than your current holdings. Available quantity: %d",
				available)
		}
	}

	order := &types.Order{
		UserID:    userID,
		StockID:   req.StockID,
		OrderType: req.OrderType,
		Quantity:  req.Quantity,
	}
	if err := s.db.CreateOrder(order); err != nil {
		logger.Error().Err(err).Msg("failed to persist order")
		return nil, err
	}

	logger.Info().
		Uint("order_id", order.ID).
		Msg("order placed")

	return order, nil
}

// ListOrders returns the user's full order history in placement order
func (s *Service) ListOrders(userID uint) ([]types.Order, error) {
	return s.db.GetOrdersByUser(userID)
}

// GinHandlers contains HTTP handlers for order endpoints
type GinHandlers struct {
	service *Service
}

// NewGinHandlers creates a new set of HTTP handlers for order endpoints
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

// CreateOrderHandler handles POST requests to place new orders
// Requires a valid JWT token; the order is recorded against the
// authenticated user
func (h *GinHandlers) CreateOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Unauthorized(c, "Missing authenticated user")
			return
		}

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		order, err := h.service.CreateOrder(userID, req)
		response.Handle(c, order, err)
	}
}

// ListOrdersHandler handles GET requests for the authenticated user's orders
// Requires a valid JWT token; only the caller's own orders are returned
func (h *GinHandlers) ListOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			response.Unauthorized(c, "Missing authenticated user")
			return
		}

		orders, err := h.service.ListOrders(userID)
		response.Handle(c, orders, err)
	}
}
