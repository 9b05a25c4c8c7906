// Package chart turns raw historical trade records into OHLCV candle series:
// validation and numeric normalization first, then calendar-aware bucketing,
// with a synthetic order-book fallback when no trades exist.
package chart

import (
	"log/slog"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

// NormalizeTrades validates and normalizes a raw trade batch.
//
// A record survives only if its price parses to a finite number, at least one
// timestamp field parses to a positive finite number, and at least one volume
// field does too. Failing records are excluded whole, never partially used.
// Field-name aliases are resolved by priority at this boundary; downstream
// code sees a single canonical shape.
//
// If the whole batch is rejected, one diagnostic is logged and an empty slice
// is returned; the caller aggregates nothing rather than erroring.
func NormalizeTrades(raw []model.RawTrade, logger *slog.Logger) []model.Trade {
	if logger == nil {
		logger = slog.Default()
	}

	trades := make([]model.Trade, 0, len(raw))
	rejected := 0
	var sample *model.RawTrade
	for i := range raw {
		t, ok := normalizeTrade(raw[i])
		if !ok {
			if rejected == 0 {
				sample = &raw[i]
			}
			rejected++
			continue
		}
		trades = append(trades, t)
	}

	if rejected > 0 && len(trades) == 0 && len(raw) > 0 {
		logger.Warn("entire trade batch rejected during normalization",
			"batch_size", len(raw),
			"sample", *sample)
	} else if rejected > 0 {
		logger.Debug("rejected malformed trades",
			"rejected", rejected,
			"kept", len(trades))
	}
	return trades
}

func normalizeTrade(r model.RawTrade) (model.Trade, bool) {
	price, ok := model.ParseFloat(r.Price)
	if !ok {
		return model.Trade{}, false
	}
	if !hasPositiveNumber(r.Timestamp, r.TradeTimestamp) {
		return model.Trade{}, false
	}
	if !hasPositiveNumber(r.Volume, r.BaseVolume, r.TargetVolume) {
		return model.Trade{}, false
	}

	return model.Trade{
		Price:     price,
		Timestamp: firstPresent(r.Timestamp, r.TradeTimestamp),
		Volume:    firstPresent(r.Volume, r.BaseVolume, r.TargetVolume),
	}, true
}

// hasPositiveNumber reports whether at least one alias parses to a positive
// finite number.
func hasPositiveNumber(values ...any) bool {
	for _, v := range values {
		if f, ok := model.ParseFloat(v); ok && f > 0 {
			return true
		}
	}
	return false
}

// firstPresent resolves alias priority: the first field that is present at
// all wins, parsed with a zero default. Priority is by presence, not by
// parseability, so a garbled primary field never falls through to an alias.
func firstPresent(values ...any) float64 {
	for _, v := range values {
		if v != nil {
			return model.ToFloat(v)
		}
	}
	return 0
}
