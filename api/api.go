package api

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MaximEdogawa/pengui-sub000/internal/market"
	"github.com/MaximEdogawa/pengui-sub000/internal/model"
	"github.com/MaximEdogawa/pengui-sub000/internal/service"
)

// This file is the entry point for the API package: the handler struct and
// its dependencies. Routing lives here; request handlers, middleware, and
// validation are split into their own files:
// - api.go: handler struct, dependencies, routes (this file)
// - handler.go: HTTP request handlers
// - middleware.go: middleware functions
// - validator.go: request validation

// Constants
const (
	DefaultTimeout      = 30 * time.Second
	DefaultTimeframe    = "1h"
	ServiceVersion      = "1.0.0"
	ServiceName         = "offer-book-service"
	RequestIDContextKey = "request_id"
	RequestIDHeaderKey  = "X-Request-ID"
)

// MarketService is the aggregation pipeline as the API consumes it.
type MarketService interface {
	GetOrderBook(ctx context.Context, q market.SearchQuery) (model.OrderBook, error)
	GetCandles(ctx context.Context, buyAsset, sellAsset, timeframe string, limit int) (model.ChartData, error)
	GetIndicators(ctx context.Context, buyAsset, sellAsset, timeframe string, limit int) (service.IndicatorBundle, error)
	Tickers(ctx context.Context) ([]model.Ticker, error)
}

// OfferStore keeps the offers created on this client.
type OfferStore interface {
	SaveOffer(offer model.LocalOffer) error
	GetOffer(ctx context.Context, id string) (model.LocalOffer, bool)
	ListOffers(ctx context.Context) ([]model.LocalOffer, error)
	DeleteOffer(id string) error
}

// APIHandler handles HTTP requests using the Gin framework.
type APIHandler struct {
	marketService MarketService
	offers        OfferStore
	validator     *Validator
	logger        *slog.Logger
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(marketService MarketService, offers OfferStore, logger *slog.Logger) *APIHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &APIHandler{
		marketService: marketService,
		offers:        offers,
		validator:     GetValidator(),
		logger:        logger,
	}
}

// StartServer starts the HTTP server.
func (h *APIHandler) StartServer(port int) error {
	router := h.SetupRoutes()
	return router.Run(":" + strconv.Itoa(port))
}

// SetupRoutes configures all API routes.
func (h *APIHandler) SetupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(requestIDMiddleware())
	router.Use(ginLoggerMiddleware())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/orderbook", h.GetOrderBook)
	router.GET("/candles", h.GetCandles)
	router.GET("/indicators", h.GetIndicators)
	router.GET("/tickers", h.GetTickers)
	router.GET("/offers", h.ListOffers)
	router.POST("/offers", h.SaveOffer)
	router.DELETE("/offers/:id", h.DeleteOffer)
	router.GET("/health", h.HealthCheck)

	return router
}
