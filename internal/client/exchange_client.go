// Package client implements the HTTP client for the marketplace exchange
// REST API: listing search, published tickers, and historical trades.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

const (
	offersPath           = "/v1/offers"
	tickersPath          = "/v1/tickers"
	historicalTradesPath = "/v1/historical_trades"
)

// ExchangeClient talks to one exchange API base URL.
type ExchangeClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewExchangeClient creates a client with a per-request timeout.
func NewExchangeClient(baseURL string, timeout time.Duration, logger *slog.Logger) *ExchangeClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExchangeClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Search queries the listing API. Only set filters are sent; status is
// always sent, zero meaning open listings.
func (c *ExchangeClient) Search(ctx context.Context, params model.SearchParams) (model.SearchResponse, error) {
	query := url.Values{}
	if params.Requested != "" {
		query.Set("requested", params.Requested)
	}
	if params.Offered != "" {
		query.Set("offered", params.Offered)
	}
	if params.Maker != "" {
		query.Set("maker", params.Maker)
	}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(params.PageSize))
	}
	query.Set("status", strconv.Itoa(params.Status))

	body, err := c.get(ctx, offersPath, query)
	if err != nil {
		return model.SearchResponse{}, err
	}

	var resp model.SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.SearchResponse{}, fmt.Errorf("decoding search response: %w", err)
	}
	return resp, nil
}

// Tickers fetches the published trading pairs.
func (c *ExchangeClient) Tickers(ctx context.Context) ([]model.Ticker, error) {
	body, err := c.get(ctx, tickersPath, nil)
	if err != nil {
		return nil, err
	}

	var tickers []model.Ticker
	if err := json.Unmarshal(body, &tickers); err != nil {
		return nil, fmt.Errorf("decoding tickers: %w", err)
	}
	return tickers, nil
}

// HistoricalTrades fetches raw trade records for a ticker. Upstreams disagree
// on the envelope, so three shapes are accepted: a bare array, {"trades":[..]},
// and {"data":[..]}.
func (c *ExchangeClient) HistoricalTrades(ctx context.Context, tickerID string, limit int) ([]model.RawTrade, error) {
	query := url.Values{}
	query.Set("ticker_id", tickerID)
	query.Set("limit", strconv.Itoa(limit))

	body, err := c.get(ctx, historicalTradesPath, query)
	if err != nil {
		return nil, err
	}
	return decodeTradesPayload(body)
}

func decodeTradesPayload(body []byte) ([]model.RawTrade, error) {
	var bare []model.RawTrade
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var wrapped struct {
		Trades []model.RawTrade `json:"trades"`
		Data   []model.RawTrade `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding trades payload: %w", err)
	}
	if wrapped.Trades != nil {
		return wrapped.Trades, nil
	}
	if wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return []model.RawTrade{}, nil
}

func (c *ExchangeClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", path, err)
	}
	return body, nil
}
