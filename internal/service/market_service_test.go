package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/MaximEdogawa/pengui-sub000/internal/market"
	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

type stubSource struct {
	tickers    []model.Ticker
	tickersErr error
	trades     []model.RawTrade
	tradesErr  error
	lastTicker string
}

func (s *stubSource) Tickers(ctx context.Context) ([]model.Ticker, error) {
	return s.tickers, s.tickersErr
}

func (s *stubSource) HistoricalTrades(ctx context.Context, tickerID string, limit int) ([]model.RawTrade, error) {
	s.lastTicker = tickerID
	return s.trades, s.tradesErr
}

func sellListing(id string, price float64) model.RawListing {
	return model.RawListing{
		ID:        id,
		Offered:   []model.RawAsset{{ID: "", Code: "XCH", Amount: 1.0}},
		Requested: []model.RawAsset{{ID: "a1", Code: "SBX", Amount: price}},
	}
}

func buyListing(id string, price float64) model.RawListing {
	return model.RawListing{
		ID:        id,
		Offered:   []model.RawAsset{{ID: "a1", Code: "SBX", Amount: 1.0}},
		Requested: []model.RawAsset{{ID: "", Code: "XCH", Amount: price}},
	}
}

func staticSearch(listings ...model.RawListing) market.SearchFunc {
	return func(ctx context.Context, params model.SearchParams) (model.SearchResponse, error) {
		total := len(listings)
		return model.SearchResponse{
			Success:  true,
			Data:     listings,
			Total:    &total,
			Page:     params.Page,
			PageSize: params.PageSize,
		}, nil
	}
}

func newTestService(search market.SearchFunc, source TradeSource) *MarketService {
	return NewMarketService(market.NewFetcher(search, nil), source, model.NetworkMainnet, nil)
}

func TestGetOrderBookPipeline(t *testing.T) {
	// Both fetch directions reply with the same listings, so the raw result
	// contains duplicates that the pipeline must collapse.
	svc := newTestService(
		staticSearch(sellListing("s1", 5), sellListing("s2", 3), buyListing("b1", 2)),
		&stubSource{},
	)

	ob, err := svc.GetOrderBook(context.Background(), market.SearchQuery{
		Page:   1,
		Count:  model.Count10,
		Filter: &model.PairFilter{BuyAsset: "SBX", SellAsset: "XCH"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ob.Orders) != 3 {
		t.Fatalf("expected 3 deduplicated orders, got %d", len(ob.Orders))
	}
	// Canonical order: sells descending, then buys.
	wantIDs := []string{"s1", "s2", "b1"}
	for i, want := range wantIDs {
		if ob.Orders[i].ID != want {
			t.Errorf("position %d = %s, want %s", i, ob.Orders[i].ID, want)
		}
	}
}

func TestGetOrderBookFetchError(t *testing.T) {
	failing := func(ctx context.Context, params model.SearchParams) (model.SearchResponse, error) {
		return model.SearchResponse{}, errors.New("exchange down")
	}
	svc := newTestService(failing, &stubSource{})

	// A fully failed unfiltered fetch still yields an empty book, because
	// direction failures are tolerated.
	ob, err := svc.GetOrderBook(context.Background(), market.SearchQuery{Page: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ob.Orders) != 0 {
		t.Errorf("expected empty book, got %d orders", len(ob.Orders))
	}
}

func TestGetCandlesAggregates(t *testing.T) {
	source := &stubSource{
		tickers: []model.Ticker{{TickerID: "SBX_XCH", BaseCode: "SBX", TargetCode: "XCH"}},
		trades: []model.RawTrade{
			{Price: 10.0, Timestamp: 1709290000.0, Volume: 5.0},
			{Price: 12.0, Timestamp: 1709290030.0, Volume: 3.0},
		},
	}
	svc := newTestService(staticSearch(), source)

	data, err := svc.GetCandles(context.Background(), "SBX", "XCH", "1d", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if source.lastTicker != "SBX_XCH" {
		t.Errorf("resolved ticker = %q, want SBX_XCH", source.lastTicker)
	}
	if data.Synthetic {
		t.Error("real trades must not be flagged synthetic")
	}
	if len(data.Candles) != 1 {
		t.Fatalf("expected 1 candle, got %d", len(data.Candles))
	}
	c := data.Candles[0]
	if c.Open != 10 || c.Close != 12 || c.Volume != 8 {
		t.Errorf("candle = %+v", c)
	}
}

func TestGetCandlesUnresolvableTickerIsNotAnError(t *testing.T) {
	svc := newTestService(staticSearch(), &stubSource{})

	data, err := svc.GetCandles(context.Background(), "MRMT", "DBX", "1h", 0)
	if err != nil {
		t.Fatalf("unresolvable pair must not error: %v", err)
	}
	if len(data.Candles) != 0 || data.Synthetic {
		t.Errorf("expected empty non-synthetic chart, got %+v", data)
	}
}

func TestGetCandlesSyntheticFallback(t *testing.T) {
	source := &stubSource{
		tickers: []model.Ticker{{TickerID: "SBX_XCH", BaseCode: "SBX", TargetCode: "XCH"}},
		trades:  nil, // no history at all
	}
	svc := newTestService(
		staticSearch(sellListing("s1", 3), buyListing("b1", 2)),
		source,
	)

	data, err := svc.GetCandles(context.Background(), "SBX", "XCH", "1h", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !data.Synthetic {
		t.Fatal("book-derived candles must be flagged synthetic")
	}
	if len(data.Candles) != 10 {
		t.Errorf("expected 10 intraday synthetic candles, got %d", len(data.Candles))
	}
}

func TestGetCandlesNoFallbackWithoutBook(t *testing.T) {
	source := &stubSource{
		tickers: []model.Ticker{{TickerID: "SBX_XCH", BaseCode: "SBX", TargetCode: "XCH"}},
	}
	svc := newTestService(staticSearch(), source)

	data, err := svc.GetCandles(context.Background(), "SBX", "XCH", "1h", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Synthetic || len(data.Candles) != 0 {
		t.Errorf("empty book must not synthesize candles, got %+v", data)
	}
}

func TestGetIndicatorsAligned(t *testing.T) {
	trades := make([]model.RawTrade, 0, 40)
	for i := 0; i < 40; i++ {
		trades = append(trades, model.RawTrade{
			Price:     100.0 + float64(i),
			Timestamp: 1709290000.0 + float64(i*3600),
			Volume:    1.0,
		})
	}
	source := &stubSource{
		tickers: []model.Ticker{{TickerID: "SBX_XCH", BaseCode: "SBX", TargetCode: "XCH"}},
		trades:  trades,
	}
	svc := newTestService(staticSearch(), source)

	bundle, err := svc.GetIndicators(context.Background(), "SBX", "XCH", "1h", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	n := len(bundle.Candles)
	if n == 0 {
		t.Fatal("expected candles")
	}
	for name, series := range map[string][]float64{
		"sma": bundle.SMA, "ema": bundle.EMA, "rsi": bundle.RSI,
		"macd": bundle.MACD, "signal": bundle.MACDSignal, "histogram": bundle.MACDHistogram,
		"bollinger_upper": bundle.BollingerUpper,
		"bollinger_mid":   bundle.BollingerMid,
		"bollinger_lower": bundle.BollingerLower,
	} {
		if len(series) != n {
			t.Errorf("%s length %d, want %d", name, len(series), n)
		}
	}
	if !math.IsNaN(bundle.SMA[0]) {
		t.Error("warmup positions must be NaN")
	}
}

func TestTickersPassThrough(t *testing.T) {
	source := &stubSource{tickersErr: errors.New("boom")}
	svc := newTestService(staticSearch(), source)

	if _, err := svc.Tickers(context.Background()); err == nil {
		t.Error("expected error from failing source")
	}
}
