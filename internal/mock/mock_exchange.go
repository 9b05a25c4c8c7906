package mock

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

// GeneratorConfig holds configuration for the mock exchange.
type GeneratorConfig struct {
	Network      string
	AssetCodes   []string
	BasePrices   map[string]float64
	Listings     int
	TradesPerDay int
	HistoryDays  int
	Volatility   float64
}

// DefaultGeneratorConfig returns a sensible default configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Network:    model.NetworkMainnet,
		AssetCodes: []string{"SBX", "DBX", "USDS"},
		BasePrices: map[string]float64{
			"SBX":  0.00002,
			"DBX":  0.0004,
			"USDS": 0.035,
		},
		Listings:     120,
		TradesPerDay: 48,
		HistoryDays:  14,
		Volatility:   0.02,
	}
}

// Exchange is an in-memory stand-in for the real exchange API. It satisfies
// both the search and trade-source contracts, so the whole pipeline runs
// against generated data in the demo server and in tests.
type Exchange struct {
	config   GeneratorConfig
	listings []model.RawListing
	trades   map[string][]model.RawTrade
	tickers  []model.Ticker
	rng      *rand.Rand
}

// NewExchange creates a mock exchange with default config.
func NewExchange() *Exchange {
	return NewExchangeWithConfig(DefaultGeneratorConfig())
}

// NewExchangeWithConfig creates a mock exchange and pre-generates listings,
// tickers, and trade history.
func NewExchangeWithConfig(config GeneratorConfig) *Exchange {
	ex := &Exchange{
		config: config,
		trades: make(map[string][]model.RawTrade),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	ex.generateTickers()
	ex.generateListings()
	ex.generateTradeHistory()
	return ex
}

// Search filters the generated listings the way the real API would.
func (ex *Exchange) Search(ctx context.Context, params model.SearchParams) (model.SearchResponse, error) {
	var matched []model.RawListing
	for _, l := range ex.listings {
		if l.Status != params.Status {
			continue
		}
		if params.Requested != "" && !sideHasCode(l.Requested, params.Requested) {
			continue
		}
		if params.Offered != "" && !sideHasCode(l.Offered, params.Offered) {
			continue
		}
		matched = append(matched, l)
	}

	total := len(matched)
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return model.SearchResponse{
		Success:  true,
		Data:     matched[start:end],
		Total:    &total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// Tickers returns one published pair per generated asset.
func (ex *Exchange) Tickers(ctx context.Context) ([]model.Ticker, error) {
	return ex.tickers, nil
}

// HistoricalTrades returns up to limit generated trades for a ticker.
func (ex *Exchange) HistoricalTrades(ctx context.Context, tickerID string, limit int) ([]model.RawTrade, error) {
	trades := ex.trades[tickerID]
	if limit > 0 && len(trades) > limit {
		trades = trades[len(trades)-limit:]
	}
	return trades, nil
}

func (ex *Exchange) generateTickers() {
	native := model.NativeTicker(ex.config.Network)
	for _, code := range ex.config.AssetCodes {
		ex.tickers = append(ex.tickers, model.Ticker{
			TickerID:       code + "_" + strings.ToLower(native),
			BaseCurrency:   code,
			BaseCode:       code,
			TargetCurrency: native,
			TargetCode:     native,
		})
	}
}

func (ex *Exchange) generateListings() {
	now := time.Now().UTC()
	for i := 0; i < ex.config.Listings; i++ {
		code := ex.config.AssetCodes[ex.rng.Intn(len(ex.config.AssetCodes))]
		price := ex.config.BasePrices[code] * (1 + ex.rng.NormFloat64()*ex.config.Volatility*5)
		if price <= 0 {
			price = ex.config.BasePrices[code]
		}
		tokenAmount := float64(100 + ex.rng.Intn(100000))
		nativeAmount := tokenAmount * price

		native := model.RawAsset{ID: "", Code: model.NativeTicker(ex.config.Network), Amount: nativeAmount}
		token := model.RawAsset{ID: uuid.NewString(), Code: code, Amount: tokenAmount}

		listing := model.RawListing{
			ID:        uuid.NewString(),
			Status:    0,
			DateFound: now.Add(-time.Duration(ex.rng.Intn(72)) * time.Hour).Format(time.RFC3339),
		}
		// Half the book offers the native token, half requests it.
		if i%2 == 0 {
			listing.Offered = []model.RawAsset{native}
			listing.Requested = []model.RawAsset{token}
		} else {
			listing.Offered = []model.RawAsset{token}
			listing.Requested = []model.RawAsset{native}
		}
		ex.listings = append(ex.listings, listing)
	}
}

// generateTradeHistory walks a price path per ticker. Records deliberately
// vary their field spelling the way real upstreams do: numeric strings,
// trade_timestamp vs timestamp, base_volume vs volume.
func (ex *Exchange) generateTradeHistory() {
	now := time.Now()
	for _, t := range ex.tickers {
		price := ex.config.BasePrices[t.BaseCode]
		total := ex.config.TradesPerDay * ex.config.HistoryDays
		step := 24 * time.Hour / time.Duration(ex.config.TradesPerDay)

		var trades []model.RawTrade
		for i := 0; i < total; i++ {
			price *= 1 + ex.rng.NormFloat64()*ex.config.Volatility
			if price <= 0 {
				price = ex.config.BasePrices[t.BaseCode]
			}
			ts := now.Add(-time.Duration(total-i) * step)
			volume := 10 + ex.rng.Float64()*1000

			trade := model.RawTrade{Price: price}
			if i%3 == 0 {
				trade.TradeTimestamp = float64(ts.UnixMilli())
				trade.BaseVolume = volume
			} else {
				trade.Timestamp = float64(ts.Unix())
				trade.Volume = volume
			}
			trades = append(trades, trade)
		}
		ex.trades[t.TickerID] = trades
	}
}

func sideHasCode(side []model.RawAsset, code string) bool {
	for _, a := range side {
		if a.Code == code {
			return true
		}
	}
	return false
}

