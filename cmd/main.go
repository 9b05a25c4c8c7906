package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MaximEdogawa/pengui-sub000/api"
	"github.com/MaximEdogawa/pengui-sub000/internal/cache"
	"github.com/MaximEdogawa/pengui-sub000/internal/client"
	"github.com/MaximEdogawa/pengui-sub000/internal/config"
	"github.com/MaximEdogawa/pengui-sub000/internal/core"
	"github.com/MaximEdogawa/pengui-sub000/internal/data"
	"github.com/MaximEdogawa/pengui-sub000/internal/market"
	"github.com/MaximEdogawa/pengui-sub000/internal/mock"
	"github.com/MaximEdogawa/pengui-sub000/internal/model"
	"github.com/MaximEdogawa/pengui-sub000/internal/service"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived shutdown signal, stopping services...")
		cancel()
	}()

	cfg := config.Load()
	logger := slog.Default()

	// 1. Exchange backend: the real REST API, or generated data for local runs
	var search market.SearchFunc
	var source service.TradeSource
	if cfg.UseMockExchange {
		ex := mock.NewExchangeWithConfig(mockConfig(cfg))
		search = ex.Search
		source = ex
		logger.Info("using mock exchange data")
	} else {
		ec := client.NewExchangeClient(cfg.ExchangeBaseURL, cfg.RequestTimeout, logger)
		search = ec.Search
		source = ec
	}

	// 2. Optional Redis read-through cache in front of the search call
	if cfg.RedisAddr != "" {
		sc := cache.NewSearchCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL, search, logger)
		if err := sc.Ping(ctx); err != nil {
			logger.Warn("redis unavailable, running without search cache", "error", err)
		} else {
			defer sc.Close()
			search = sc.Search
			logger.Info("search cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
		}
	}

	// 3. Aggregation pipeline
	fetcher := market.NewFetcher(search, logger)
	marketService := service.NewMarketService(fetcher, source, cfg.Network, logger)

	// 4. Keep the configured pair's book warm
	refresher := core.NewBookRefresher(marketService, cfg.RefreshInterval)
	refresher.Start(ctx)
	if cfg.WatchBuyAsset != "" || cfg.WatchSellAsset != "" {
		refresher.Watch(market.SearchQuery{
			Page:    1,
			Count:   model.Count100,
			Network: cfg.Network,
			Filter: &model.PairFilter{
				BuyAsset:  cfg.WatchBuyAsset,
				SellAsset: cfg.WatchSellAsset,
			},
		})
	}

	// 5. Local offer store + API
	offerStore := data.NewInMemoryOfferStorage()
	apiHandler := api.NewAPIHandler(marketService, offerStore, logger)

	fmt.Printf("Offer book service starting on port %d (network: %s)\n", cfg.Port, cfg.Network)
	fmt.Printf("Endpoints:\n")
	fmt.Printf("  GET /orderbook?buy=SBX&sell=XCH&page=1&count=50\n")
	fmt.Printf("  GET /candles?buy=SBX&sell=XCH&timeframe=1h\n")
	fmt.Printf("  GET /indicators?buy=SBX&sell=XCH&timeframe=1d\n")
	fmt.Printf("  GET /tickers\n")
	fmt.Printf("  GET /health\n")
	fmt.Printf("Press Ctrl+C to gracefully shutdown\n")

	log.Fatal(apiHandler.StartServer(cfg.Port))
}

func mockConfig(cfg *config.Config) mock.GeneratorConfig {
	gc := mock.DefaultGeneratorConfig()
	gc.Network = cfg.Network
	return gc
}
