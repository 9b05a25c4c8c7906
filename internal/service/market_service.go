package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MaximEdogawa/pengui-sub000/internal/book"
	"github.com/MaximEdogawa/pengui-sub000/internal/chart"
	"github.com/MaximEdogawa/pengui-sub000/internal/indicator"
	"github.com/MaximEdogawa/pengui-sub000/internal/market"
	"github.com/MaximEdogawa/pengui-sub000/internal/model"
	"github.com/MaximEdogawa/pengui-sub000/internal/ticker"
)

// DefaultTradeLimit is how many historical trades are requested per chart.
const DefaultTradeLimit = 1000

// TradeSource provides the exchange's published tickers and historical
// trades. The production implementation is the HTTP client; tests inject
// their own.
type TradeSource interface {
	Tickers(ctx context.Context) ([]model.Ticker, error)
	HistoricalTrades(ctx context.Context, tickerID string, limit int) ([]model.RawTrade, error)
}

// IndicatorBundle carries a candle series together with the indicator values
// computed over its closes. All indicator slices align index-for-index with
// Candles; undefined positions hold NaN.
type IndicatorBundle struct {
	Candles        []model.Candle
	Synthetic      bool
	SMA            []float64
	EMA            []float64
	RSI            []float64
	MACD           []float64
	MACDSignal     []float64
	MACDHistogram  []float64
	BollingerUpper []float64
	BollingerMid   []float64
	BollingerLower []float64
}

// MarketService wires the aggregation pipeline together: fetch orchestration,
// conversion, book shaping, and chart building. It holds no mutable state;
// every call builds its own result.
type MarketService struct {
	fetcher *market.Fetcher
	source  TradeSource
	network string
	logger  *slog.Logger
}

// NewMarketService creates the service for one network.
func NewMarketService(fetcher *market.Fetcher, source TradeSource, network string, logger *slog.Logger) *MarketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarketService{
		fetcher: fetcher,
		source:  source,
		network: network,
		logger:  logger,
	}
}

// GetOrderBook runs a query through the full book pipeline:
// fetch → convert → deduplicate → canonical sort.
func (s *MarketService) GetOrderBook(ctx context.Context, q market.SearchQuery) (model.OrderBook, error) {
	if q.Network == "" {
		q.Network = s.network
	}
	if q.Count == "" {
		q.Count = model.Count10
	}

	res, err := s.fetcher.Fetch(ctx, q)
	if err != nil {
		return model.OrderBook{}, fmt.Errorf("fetching listings: %w", err)
	}

	orders := book.ConvertListings(res.Listings, s.network, s.logger)
	orders = book.Deduplicate(orders)
	orders = book.SortOrders(orders, s.network)

	return model.OrderBook{
		Orders:  orders,
		Total:   res.Total,
		HasMore: res.HasMore,
	}, nil
}

// Tickers returns the exchange's published trading pairs.
func (s *MarketService) Tickers(ctx context.Context) ([]model.Ticker, error) {
	tickers, err := s.source.Tickers(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching tickers: %w", err)
	}
	return tickers, nil
}

// GetCandles builds the candle series for a pair. An unresolvable ticker is
// not an error: the result is simply empty and the caller shows "no chart
// data". When trades exist but aggregate to nothing, or none exist at all,
// a synthetic series derived from the order book stands in, flagged as such.
func (s *MarketService) GetCandles(ctx context.Context, buyAsset, sellAsset, timeframe string, limit int) (model.ChartData, error) {
	if limit <= 0 {
		limit = DefaultTradeLimit
	}

	tickers, err := s.source.Tickers(ctx)
	if err != nil {
		return model.ChartData{}, fmt.Errorf("fetching tickers: %w", err)
	}

	tickerID, ok := ticker.Resolve(buyAsset, sellAsset, s.network, tickers)
	if !ok {
		s.logger.Debug("no ticker resolvable for pair",
			"buy", buyAsset,
			"sell", sellAsset)
		return model.ChartData{Candles: []model.Candle{}}, nil
	}

	raw, err := s.source.HistoricalTrades(ctx, tickerID, limit)
	if err != nil {
		return model.ChartData{}, fmt.Errorf("fetching trades for %s: %w", tickerID, err)
	}

	trades := chart.NormalizeTrades(raw, s.logger)
	candles := chart.AggregateCandles(trades, timeframe)
	data := model.ChartData{TickerID: tickerID, Candles: candles}

	if len(candles) == 0 {
		if bid, ask, found := s.bestBidAsk(ctx, buyAsset, sellAsset); found {
			data.Candles = chart.SyntheticCandles(bid, ask, timeframe)
			data.Synthetic = len(data.Candles) > 0
		}
	}
	return data, nil
}

// GetIndicators computes the default indicator set over a pair's candles.
func (s *MarketService) GetIndicators(ctx context.Context, buyAsset, sellAsset, timeframe string, limit int) (IndicatorBundle, error) {
	data, err := s.GetCandles(ctx, buyAsset, sellAsset, timeframe, limit)
	if err != nil {
		return IndicatorBundle{}, err
	}

	closes := make([]float64, len(data.Candles))
	for i, c := range data.Candles {
		closes[i] = c.Close
	}

	bundle := IndicatorBundle{
		Candles:   data.Candles,
		Synthetic: data.Synthetic,
		SMA:       indicator.SMA(closes, indicator.DefaultSMAPeriod),
		EMA:       indicator.EMA(closes, indicator.DefaultEMAPeriod),
		RSI:       indicator.RSI(closes, indicator.DefaultRSIPeriod),
	}
	bundle.MACD, bundle.MACDSignal, bundle.MACDHistogram = indicator.MACD(
		closes, indicator.DefaultMACDFast, indicator.DefaultMACDSlow, indicator.DefaultMACDSignal)
	bundle.BollingerMid, bundle.BollingerUpper, bundle.BollingerLower = indicator.BollingerBands(
		closes, indicator.DefaultBollingerPeriod, indicator.DefaultBollingerStdDev)
	return bundle, nil
}

// bestBidAsk fetches the pair's book and extracts the tightest prices. Any
// failure just means no synthetic fallback.
func (s *MarketService) bestBidAsk(ctx context.Context, buyAsset, sellAsset string) (bid, ask float64, ok bool) {
	ob, err := s.GetOrderBook(ctx, market.SearchQuery{
		Page:    1,
		Count:   model.Count100,
		Network: s.network,
		Filter:  &model.PairFilter{BuyAsset: buyAsset, SellAsset: sellAsset},
	})
	if err != nil {
		s.logger.Warn("order book unavailable for synthetic fallback", "error", err)
		return 0, 0, false
	}
	bid, ask = book.BestBidAsk(ob.Orders, s.network)
	return bid, ask, bid > 0 && ask > 0
}
