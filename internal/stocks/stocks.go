package stocks

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ksred/folio-api/internal/types"
	"github.com/ksred/folio-api/pkg/response"
)

// Service handles the administrative stock catalogue
type Service struct {
	db *Database
}

// NewService creates a new stocks service with the given database connection
func NewService(gormDB *gorm.DB) *Service {
	return &Service{
		db: NewDatabase(gormDB),
	}
}

// StockRequest represents a stock create or update request
type StockRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func validateStockRequest(req StockRequest) error {
	if req.Name == "" {
		return types.NewValidationError("name must not be empty")
	}
	if req.Price.IsNegative() {
		return types.NewValidationError("price must not be negative")
	}
	return nil
}

// CreateStock adds a new stock to the catalogue
func (s *Service) CreateStock(req StockRequest) (*types.Stock, error) {
	if err := validateStockRequest(req); err != nil {
		return nil, err
	}

	stock := &types.Stock{
		Name:  req.Name,
		Price: req.Price,
	}
	if err := s.db.CreateStock(stock); err != nil {
		return nil, err
	}

	log.Info().
		Uint("stock_id", stock.ID).
		Str("name", stock.Name).
		Str("price", stock.Price.String()).
		Msg("stock created")

	return stock, nil
}

// GetStock retrieves a stock by id
func (s *Service) GetStock(stockID uint) (*types.Stock, error) {
	stock, err := s.db.GetStock(stockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, types.ErrStockNotFound
	}
	return stock, nil
}

// ListStocks returns all stocks in the catalogue
func (s *Service) ListStocks() ([]types.Stock, error) {
	return s.db.ListStocks()
}

// UpdateStock replaces a stock's name and price. Orders referencing the stock
// are untouched; subsequent valuations use the new price.
func (s *Service) UpdateStock(stockID uint, req StockRequest) (*types.Stock, error) {
	if err := validateStockRequest(req); err != nil {
		return nil, err
	}

	stock, err := s.db.GetStock(stockID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, types.ErrStockNotFound
	}

	stock.Name = req.Name
	stock.Price = req.Price
	if err := s.db.UpdateStock(stock); err != nil {
		return nil, err
	}

	return stock, nil
}

// DeleteStock removes a stock and, cascading, every order that references it
func (s *Service) DeleteStock(stockID uint) error {
	stock, err := s.db.GetStock(stockID)
	if err != nil {
		return err
	}
	if stock == nil {
		return types.ErrStockNotFound
	}

	if err := s.db.DeleteStockCascade(stockID); err != nil {
		return err
	}

	log.Info().
		Uint("stock_id", stockID).
		Str("name", stock.Name).
		Msg("stock deleted with cascading orders")

	return nil
}

// GinHandlers contains HTTP handlers for stock endpoints
type GinHandlers struct {
	service *Service
}

// NewGinHandlers creates a new set of HTTP handlers for stock endpoints
func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

func stockIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("stock_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid stock ID")
		return 0, false
	}
	return uint(id), true
}

// ListStocksHandler handles GET requests for the stock catalogue
func (h *GinHandlers) ListStocksHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stocks, err := h.service.ListStocks()
		response.Handle(c, stocks, err)
	}
}

// GetStockHandler handles GET requests for a single stock
// URL parameter: stock_id
func (h *GinHandlers) GetStockHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stockID, ok := stockIDParam(c)
		if !ok {
			return
		}

		stock, err := h.service.GetStock(stockID)
		response.Handle(c, stock, err)
	}
}

// CreateStockHandler handles POST requests to add stocks
// Requires an admin token
func (h *GinHandlers) CreateStockHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		stock, err := h.service.CreateStock(req)
		response.Handle(c, stock, err)
	}
}

// UpdateStockHandler handles PUT requests to modify stocks
// Requires an admin token
// URL parameter: stock_id
func (h *GinHandlers) UpdateStockHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stockID, ok := stockIDParam(c)
		if !ok {
			return
		}

		var req StockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		stock, err := h.service.UpdateStock(stockID, req)
		response.Handle(c, stock, err)
	}
}

// DeleteStockHandler handles DELETE requests to remove stocks
// Requires an admin token
// URL parameter: stock_id
func (h *GinHandlers) DeleteStockHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		stockID, ok := stockIDParam(c)
		if !ok {
			return
		}

		err := h.service.DeleteStock(stockID)
		response.Handle(c, gin.H{"deleted": stockID}, err)
	}
}
