package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/gin-gonic/gin"

	"github.com/ksred/folio-api/internal/auth"
	"github.com/ksred/folio-api/internal/database"
	"github.com/ksred/folio-api/internal/portfolio"
	"github.com/ksred/folio-api/internal/stocks"
	"github.com/ksred/folio-api/internal/trading"
	"github.com/ksred/folio-api/pkg/middleware"
)

// init configures the application logging based on environment settings
// In development mode, it enables pretty printing with timestamps
// Debug logging can be enabled via DEBUG environment variable
func init() {
	// Configure pretty logging for development
	if os.Getenv("ENV") != "production" {
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
		zlog.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global log level
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("DEBUG") == "true" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// main initializes and runs the portfolio API server with graceful shutdown
// support. It sets up all required services, database connections, and API
// routes.
func main() {
	// Initialize database
	db, err := database.NewDatabase()
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to initialize database")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "folio-secret-key"
	}

	// Initialize router
	router := gin.Default()

	// Initialize services and handlers
	authService := auth.NewService(db, jwtSecret)
	authHandlers := auth.NewGinHandlers(authService)

	tradingService := trading.NewService(db)
	tradingHandlers := trading.NewGinHandlers(tradingService)

	portfolioService := portfolio.NewService(db)
	portfolioHandlers := portfolio.NewGinHandlers(portfolioService)

	stocksService := stocks.NewService(db)
	stocksHandlers := stocks.NewGinHandlers(stocksService)

	// Setup middleware
	router.Use(middleware.RateLimit())

	// Setup API routes
	setupRoutes(router, jwtSecret, authHandlers, tradingHandlers, portfolioHandlers, stocksHandlers)

	// Get port from env otherwise it's 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Create server
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	// Graceful shutdown setup
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal().Err(err).Msg("listen")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info().Msg("Shutting down server...")

	// Give outstanding operations 5 seconds to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	zlog.Info().Msg("Server exiting")
}

// setupRoutes configures all API endpoints and their handlers
// It groups routes by functionality and applies appropriate middleware:
// - Auth routes: Public endpoints for registration and token issuance
// - Order and portfolio routes: Protected by JWT authentication
// - Stock catalogue: Reads require JWT, mutations additionally require admin
func setupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authHandlers *auth.GinHandlers,
	tradingHandlers *trading.GinHandlers,
	portfolioHandlers *portfolio.GinHandlers,
	stocksHandlers *stocks.GinHandlers,
) {
	v1 := router.Group("/api/v1")
	{
		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandlers.RegisterHandler())
			authGroup.POST("/token", authHandlers.GenerateTokenHandler())
		}

		// Order routes
		orders := v1.Group("/orders")
		orders.Use(middleware.JWTAuth(jwtSecret))
		{
			orders.POST("", tradingHandlers.CreateOrderHandler())
			orders.GET("", tradingHandlers.ListOrdersHandler())
		}

		// Portfolio routes
		portfolioGroup := v1.Group("/portfolio")
		portfolioGroup.Use(middleware.JWTAuth(jwtSecret))
		{
			portfolioGroup.GET("", portfolioHandlers.PortfolioHandler())
			portfolioGroup.GET("/invested/:stock_id", portfolioHandlers.TotalValueInvestedHandler())
		}

		// Stock catalogue
		stocksGroup := v1.Group("/stocks")
		stocksGroup.Use(middleware.JWTAuth(jwtSecret))
		{
			stocksGroup.GET("", stocksHandlers.ListStocksHandler())
			stocksGroup.GET("/:stock_id", stocksHandlers.GetStockHandler())

			admin := stocksGroup.Group("")
			admin.Use(middleware.AdminOnly())
			{
				admin.POST("", stocksHandlers.CreateStockHandler())
				admin.PUT("/:stock_id", stocksHandlers.UpdateStockHandler())
				admin.DELETE("/:stock_id", stocksHandlers.DeleteStockHandler())
			}
		}
	}
}
