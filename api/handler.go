package api

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MaximEdogawa/pengui-sub000/internal/market"
	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

// GetOrderBook handles GET /orderbook requests.
func (h *APIHandler) GetOrderBook(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	req, err := h.validator.ValidateBookRequest(
		c.Query("buy"), c.Query("sell"), c.Query("page"), c.DefaultQuery("count", string(model.Count10)))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}

	book, err := h.marketService.GetOrderBook(ctx, market.SearchQuery{
		Page:  req.Page,
		Count: req.Count,
		Filter: &model.PairFilter{
			BuyAsset:  req.BuyAsset,
			SellAsset: req.SellAsset,
		},
	})
	if err != nil {
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, book)
}

// GetCandles handles GET /candles requests.
func (h *APIHandler) GetCandles(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	req, err := h.validator.ValidateChartRequest(
		c.Query("buy"), c.Query("sell"),
		c.DefaultQuery("timeframe", DefaultTimeframe), c.Query("limit"))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}

	data, err := h.marketService.GetCandles(ctx, req.BuyAsset, req.SellAsset, req.Timeframe, req.Limit)
	if err != nil {
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetIndicators handles GET /indicators requests. NaN positions in the
// indicator series become nulls on the wire to keep the JSON valid while
// preserving index alignment with the candles.
func (h *APIHandler) GetIndicators(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	req, err := h.validator.ValidateChartRequest(
		c.Query("buy"), c.Query("sell"),
		c.DefaultQuery("timeframe", DefaultTimeframe), c.Query("limit"))
	if err != nil {
		h.handleValidationError(c, err)
		return
	}

	bundle, err := h.marketService.GetIndicators(ctx, req.BuyAsset, req.SellAsset, req.Timeframe, req.Limit)
	if err != nil {
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candles":   bundle.Candles,
		"synthetic": bundle.Synthetic,
		"sma":       nullableSeries(bundle.SMA),
		"ema":       nullableSeries(bundle.EMA),
		"rsi":       nullableSeries(bundle.RSI),
		"macd": gin.H{
			"macd":      nullableSeries(bundle.MACD),
			"signal":    nullableSeries(bundle.MACDSignal),
			"histogram": nullableSeries(bundle.MACDHistogram),
		},
		"bollinger": gin.H{
			"upper":  nullableSeries(bundle.BollingerUpper),
			"middle": nullableSeries(bundle.BollingerMid),
			"lower":  nullableSeries(bundle.BollingerLower),
		},
	})
}

// GetTickers handles GET /tickers requests.
func (h *APIHandler) GetTickers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), DefaultTimeout)
	defer cancel()

	tickers, err := h.marketService.Tickers(ctx)
	if err != nil {
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, tickers)
}

// ListOffers handles GET /offers requests.
func (h *APIHandler) ListOffers(c *gin.Context) {
	offers, err := h.offers.ListOffers(c.Request.Context())
	if err != nil {
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusOK, offers)
}

// SaveOffer handles POST /offers requests.
func (h *APIHandler) SaveOffer(c *gin.Context) {
	var offer model.LocalOffer
	if err := c.ShouldBindJSON(&offer); err != nil {
		h.handleValidationError(c, err)
		return
	}
	if err := h.validator.ValidateOffer(offer); err != nil {
		h.handleValidationError(c, err)
		return
	}
	if offer.ID == "" {
		offer.ID = uuid.NewString()
	}

	if err := h.offers.SaveOffer(offer); err != nil {
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.JSON(http.StatusCreated, offer)
}

// DeleteOffer handles DELETE /offers/:id requests.
func (h *APIHandler) DeleteOffer(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.offers.GetOffer(c.Request.Context(), id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
		return
	}
	if err := h.offers.DeleteOffer(id); err != nil {
		h.handleError(c, err, http.StatusInternalServerError, "Internal server error")
		return
	}
	c.Status(http.StatusNoContent)
}

// HealthCheck handles GET /health requests.
func (h *APIHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   ServiceVersion,
	})
}

// nullableSeries converts NaN sentinels to nil for JSON encoding.
func nullableSeries(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if !math.IsNaN(values[i]) {
			v := values[i]
			out[i] = &v
		}
	}
	return out
}

// handleError logs the error and sends an appropriate HTTP response.
func (h *APIHandler) handleError(c *gin.Context, err error, statusCode int, userMessage string) {
	requestID := requestIDFromContext(c)

	h.logger.Error("API error",
		slog.String("request_id", requestID),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", statusCode),
		slog.String("error", err.Error()))

	c.JSON(statusCode, gin.H{"error": userMessage})
}

// handleValidationError sends a 400 with the validation message.
func (h *APIHandler) handleValidationError(c *gin.Context, err error) {
	h.logger.Debug("validation failed",
		slog.String("request_id", requestIDFromContext(c)),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", err.Error()))

	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func requestIDFromContext(c *gin.Context) string {
	if v, ok := c.Get(RequestIDContextKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return "unknown"
}
