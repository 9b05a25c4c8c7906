package chart

import (
	"sort"
	"time"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

// Supported timeframe labels.
const (
	TimeframeMinute         = "1m"
	TimeframeFiveMinutes    = "5m"
	TimeframeFifteenMinutes = "15m"
	TimeframeHour           = "1h"
	TimeframeFourHours      = "4h"
	TimeframeDay            = "1d"
	TimeframeWeek           = "1w"
	TimeframeMonth          = "1M"
)

// secondsThreshold separates second-resolution timestamps from millisecond
// ones: anything below it is seconds. (10,000,000,000 seconds is year 2286.)
const secondsThreshold = 10_000_000_000

// ValidTimeframe reports whether a label is supported.
func ValidTimeframe(tf string) bool {
	switch tf {
	case TimeframeMinute, TimeframeFiveMinutes, TimeframeFifteenMinutes,
		TimeframeHour, TimeframeFourHours, TimeframeDay, TimeframeWeek, TimeframeMonth:
		return true
	}
	return false
}

// TimeframeDuration returns the nominal bucket width. Months use 30 days;
// actual month buckets are calendar-aligned and only the nominal width is
// used for sizing decisions.
func TimeframeDuration(tf string) time.Duration {
	switch tf {
	case TimeframeMinute:
		return time.Minute
	case TimeframeFiveMinutes:
		return 5 * time.Minute
	case TimeframeFifteenMinutes:
		return 15 * time.Minute
	case TimeframeHour:
		return time.Hour
	case TimeframeFourHours:
		return 4 * time.Hour
	case TimeframeDay:
		return 24 * time.Hour
	case TimeframeWeek:
		return 7 * 24 * time.Hour
	case TimeframeMonth:
		return 30 * 24 * time.Hour
	default:
		return time.Minute
	}
}

// AggregateCandles buckets normalized trades into OHLCV candles for a
// timeframe. Input order does not matter (sorting is internal) and the input
// slice is never mutated. Candle times are bucket starts in seconds,
// strictly increasing.
func AggregateCandles(trades []model.Trade, timeframe string) []model.Candle {
	if len(trades) == 0 {
		return []model.Candle{}
	}

	sorted := make([]model.Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})

	buckets := make(map[int64][]model.Trade)
	for _, t := range sorted {
		start := BucketStart(toMillis(t.Timestamp), timeframe)
		buckets[start] = append(buckets[start], t)
	}

	starts := make([]int64, 0, len(buckets))
	for start := range buckets {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	candles := make([]model.Candle, 0, len(starts))
	for _, start := range starts {
		group := buckets[start]
		c := model.Candle{
			Time:  start / 1000,
			Open:  group[0].Price,
			High:  group[0].Price,
			Low:   group[0].Price,
			Close: group[len(group)-1].Price,
		}
		for _, t := range group {
			if t.Price > c.High {
				c.High = t.Price
			}
			if t.Price < c.Low {
				c.Low = t.Price
			}
			c.Volume += t.Volume
		}
		candles = append(candles, c)
	}
	return candles
}

// toMillis scales a second-resolution timestamp up to milliseconds and leaves
// millisecond timestamps alone.
func toMillis(ts float64) int64 {
	if ts < secondsThreshold {
		return int64(ts * 1000)
	}
	return int64(ts)
}

// BucketStart returns the bucket boundary (milliseconds) containing a
// millisecond timestamp. Month, week, and day buckets align to the UTC
// calendar; everything finer is a fixed-width floor.
func BucketStart(ms int64, timeframe string) int64 {
	switch timeframe {
	case TimeframeMonth:
		t := time.UnixMilli(ms).UTC()
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	case TimeframeWeek:
		t := time.UnixMilli(ms).UTC()
		daysSinceMonday := (int(t.Weekday()) + 6) % 7
		monday := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, -daysSinceMonday)
		return monday.UnixMilli()
	case TimeframeDay:
		t := time.UnixMilli(ms).UTC()
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).UnixMilli()
	default:
		durationMs := TimeframeDuration(timeframe).Milliseconds()
		return ms / durationMs * durationMs
	}
}
