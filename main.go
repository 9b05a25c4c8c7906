// Standalone demo server over generated exchange data. The production
// entrypoint lives in cmd/; this one exists to poke at the aggregation
// pipeline without network access or configuration.
package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/MaximEdogawa/pengui-sub000/internal/chart"
	"github.com/MaximEdogawa/pengui-sub000/internal/market"
	"github.com/MaximEdogawa/pengui-sub000/internal/mock"
	"github.com/MaximEdogawa/pengui-sub000/internal/model"
	"github.com/MaximEdogawa/pengui-sub000/internal/service"
)

type demoServer struct {
	market *service.MarketService
}

func (s *demoServer) handleOrderBook(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	count := model.PageCount(r.URL.Query().Get("count"))
	if !count.Valid() {
		count = model.Count50
	}

	book, err := s.market.GetOrderBook(r.Context(), market.SearchQuery{
		Page:  page,
		Count: count,
		Filter: &model.PairFilter{
			BuyAsset:  r.URL.Query().Get("buy"),
			SellAsset: r.URL.Query().Get("sell"),
		},
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, book)
}

func (s *demoServer) handleCandles(w http.ResponseWriter, r *http.Request) {
	timeframe := r.URL.Query().Get("timeframe")
	if !chart.ValidTimeframe(timeframe) {
		timeframe = chart.TimeframeHour
	}

	data, err := s.market.GetCandles(r.Context(),
		r.URL.Query().Get("buy"), r.URL.Query().Get("sell"), timeframe, 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, data)
}

func (s *demoServer) handleTickers(w http.ResponseWriter, r *http.Request) {
	tickers, err := s.market.Tickers(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, tickers)
}

func (s *demoServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func main() {
	logger := slog.Default()

	ex := mock.NewExchange()
	fetcher := market.NewFetcher(ex.Search, logger)
	srv := &demoServer{
		market: service.NewMarketService(fetcher, ex, model.NetworkMainnet, logger),
	}

	router := mux.NewRouter()
	router.HandleFunc("/orderbook", srv.handleOrderBook).Methods("GET")
	router.HandleFunc("/candles", srv.handleCandles).Methods("GET")
	router.HandleFunc("/tickers", srv.handleTickers).Methods("GET")
	router.HandleFunc("/health", srv.handleHealth).Methods("GET")

	log.Println("Demo offer book server on :8080 (mock exchange data)")
	log.Fatal(http.ListenAndServe(":8080", router))
}
