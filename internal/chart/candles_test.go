package chart

import (
	"testing"
	"time"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

func TestAggregateCandlesSingleDailyBucket(t *testing.T) {
	t0 := float64(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Unix())
	trades := []model.Trade{
		{Price: 10, Timestamp: t0, Volume: 5},
		{Price: 12, Timestamp: t0 + 30, Volume: 3},
	}

	candles := AggregateCandles(trades, TimeframeDay)

	if len(candles) != 1 {
		t.Fatalf("expected 1 candle, got %d", len(candles))
	}
	c := candles[0]
	if c.Open != 10 || c.High != 12 || c.Low != 10 || c.Close != 12 {
		t.Errorf("ohlc = %v/%v/%v/%v, want 10/12/10/12", c.Open, c.High, c.Low, c.Close)
	}
	if c.Volume != 8 {
		t.Errorf("volume = %v, want 8", c.Volume)
	}
	wantTime := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Unix()
	if c.Time != wantTime {
		t.Errorf("candle time = %d, want midnight UTC %d", c.Time, wantTime)
	}
}

func TestAggregateCandlesDailyBoundarySplits(t *testing.T) {
	trades := []model.Trade{
		{Price: 10, Timestamp: float64(time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC).Unix()), Volume: 1},
		{Price: 11, Timestamp: float64(time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC).Unix()), Volume: 1},
	}

	daily := AggregateCandles(trades, TimeframeDay)
	if len(daily) != 2 {
		t.Fatalf("trades on either side of midnight must split: got %d candles", len(daily))
	}
	if daily[0].Time >= daily[1].Time {
		t.Error("candle times must be strictly increasing")
	}

	// The same trades are two hours apart, so hourly buckets split too.
	hourly := AggregateCandles(trades, TimeframeHour)
	if len(hourly) != 2 {
		t.Errorf("hourly aggregation: expected 2 candles, got %d", len(hourly))
	}
}

func TestAggregateCandlesSecondsAndMillisAgree(t *testing.T) {
	instant := time.Date(2024, 3, 1, 12, 34, 56, 0, time.UTC)
	seconds := []model.Trade{{Price: 10, Timestamp: float64(instant.Unix()), Volume: 1}}
	millis := []model.Trade{{Price: 10, Timestamp: float64(instant.UnixMilli()), Volume: 1}}

	a := AggregateCandles(seconds, TimeframeHour)
	b := AggregateCandles(millis, TimeframeHour)

	if len(a) != 1 || len(b) != 1 {
		t.Fatalf("expected single candles, got %d and %d", len(a), len(b))
	}
	if a[0].Time != b[0].Time {
		t.Errorf("second and millisecond inputs bucket differently: %d vs %d", a[0].Time, b[0].Time)
	}
}

func TestAggregateCandlesOrderIndependent(t *testing.T) {
	t0 := float64(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Unix())
	trades := []model.Trade{
		{Price: 12, Timestamp: t0 + 30, Volume: 3},
		{Price: 10, Timestamp: t0, Volume: 5},
	}

	candles := AggregateCandles(trades, TimeframeDay)

	if len(candles) != 1 {
		t.Fatalf("expected 1 candle, got %d", len(candles))
	}
	if candles[0].Open != 10 || candles[0].Close != 12 {
		t.Errorf("open/close must follow timestamp order, got %v/%v", candles[0].Open, candles[0].Close)
	}
	if trades[0].Price != 12 {
		t.Error("input slice must not be reordered")
	}
}

func TestAggregateCandlesEmptyInput(t *testing.T) {
	candles := AggregateCandles(nil, TimeframeHour)
	if candles == nil || len(candles) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", candles)
	}
}

func TestBucketStartCalendarAlignment(t *testing.T) {
	// 2024-03-01 is a Friday.
	ms := time.Date(2024, 3, 1, 23, 45, 0, 0, time.UTC).UnixMilli()

	tests := []struct {
		timeframe string
		want      time.Time
	}{
		{TimeframeMonth, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{TimeframeWeek, time.Date(2024, 2, 26, 0, 0, 0, 0, time.UTC)}, // Monday
		{TimeframeDay, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{TimeframeHour, time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)},
		{TimeframeFifteenMinutes, time.Date(2024, 3, 1, 23, 45, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.timeframe, func(t *testing.T) {
			got := BucketStart(ms, tt.timeframe)
			if got != tt.want.UnixMilli() {
				t.Errorf("bucket start = %s, want %s",
					time.UnixMilli(got).UTC(), tt.want)
			}
		})
	}
}

func TestBucketStartWeekOfMonday(t *testing.T) {
	// A Monday is its own week start.
	monday := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	got := BucketStart(monday.UnixMilli(), TimeframeWeek)
	want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC).UnixMilli()
	if got != want {
		t.Errorf("monday week start = %s, want %s",
			time.UnixMilli(got).UTC(), time.UnixMilli(want).UTC())
	}

	// A Sunday belongs to the preceding Monday's week.
	sunday := time.Date(2024, 3, 10, 10, 0, 0, 0, time.UTC)
	got = BucketStart(sunday.UnixMilli(), TimeframeWeek)
	if got != want {
		t.Errorf("sunday week start = %s, want %s",
			time.UnixMilli(got).UTC(), time.UnixMilli(want).UTC())
	}
}

func TestValidTimeframe(t *testing.T) {
	for _, tf := range []string{"1m", "5m", "15m", "1h", "4h", "1d", "1w", "1M"} {
		if !ValidTimeframe(tf) {
			t.Errorf("%s should be valid", tf)
		}
	}
	for _, tf := range []string{"", "2h", "1D", "month"} {
		if ValidTimeframe(tf) {
			t.Errorf("%s should be invalid", tf)
		}
	}
}
