// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

// Config holds everything the service needs at startup.
type Config struct {
	Port            int
	Network         string
	ExchangeBaseURL string
	RequestTimeout  time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	RefreshInterval time.Duration
	WatchBuyAsset   string
	WatchSellAsset  string

	UseMockExchange bool
}

// Load reads the environment. A missing .env file is fine; real deployments
// set variables directly.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	return &Config{
		Port:            getEnvInt("PORT", 8080),
		Network:         getEnv("NETWORK", model.NetworkMainnet),
		ExchangeBaseURL: getEnv("EXCHANGE_BASE_URL", "https://api.dexie.space"),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		CacheTTL:      getEnvDuration("CACHE_TTL", 30*time.Second),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", time.Minute),
		WatchBuyAsset:   getEnv("WATCH_BUY_ASSET", ""),
		WatchSellAsset:  getEnv("WATCH_SELL_ASSET", ""),

		UseMockExchange: getEnvBool("USE_MOCK_EXCHANGE", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in environment, using fallback", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid boolean in environment, using fallback", "key", key, "value", v)
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration in environment, using fallback", "key", key, "value", v)
		return fallback
	}
	return d
}
