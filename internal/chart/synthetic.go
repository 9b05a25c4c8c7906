package chart

import (
	"math"
	"math/rand"
	"time"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

const (
	syntheticCandlesIntraday = 10
	syntheticCandlesDaily    = 5
)

// SyntheticCandles derives a short illustrative candle series from the best
// bid and ask when a pair has no trade history at all. Candles walk around
// the book mid-price with small pseudo-random variation. Callers must keep
// the synthetic flag attached (model.ChartData.Synthetic) so the UI can
// disclose that these are not real trades.
func SyntheticCandles(bestBid, bestAsk float64, timeframe string) []model.Candle {
	if bestBid <= 0 || bestAsk <= 0 {
		return []model.Candle{}
	}

	duration := TimeframeDuration(timeframe)
	count := syntheticCandlesIntraday
	if duration >= 24*time.Hour {
		count = syntheticCandlesDaily
	}

	mid := (bestBid + bestAsk) / 2
	scale := math.Abs(bestAsk-bestBid) / 2
	if scale == 0 {
		scale = mid * 0.005
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	nowMs := time.Now().UnixMilli()
	lastBucket := BucketStart(nowMs, timeframe)

	candles := make([]model.Candle, 0, count)
	open := mid
	for i := count - 1; i >= 0; i-- {
		bucket := stepBack(lastBucket, timeframe, i)

		closePrice := open + rng.NormFloat64()*scale*0.4
		if closePrice <= 0 {
			closePrice = open
		}
		high := math.Max(open, closePrice) + rng.Float64()*scale*0.3
		low := math.Min(open, closePrice) - rng.Float64()*scale*0.3
		if low <= 0 {
			low = math.Min(open, closePrice) * 0.99
		}

		candles = append(candles, model.Candle{
			Time:  bucket / 1000,
			Open:  open,
			High:  high,
			Low:   low,
			Close: closePrice,
		})
		open = closePrice
	}
	return candles
}

// stepBack returns the bucket start i buckets before an aligned bucket.
// Months step by calendar, everything else by fixed width (weekly buckets
// stay Monday-aligned because the width is exactly seven days).
func stepBack(alignedMs int64, timeframe string, i int) int64 {
	if i == 0 {
		return alignedMs
	}
	if timeframe == TimeframeMonth {
		return time.UnixMilli(alignedMs).UTC().AddDate(0, -i, 0).UnixMilli()
	}
	return alignedMs - int64(i)*TimeframeDuration(timeframe).Milliseconds()
}
