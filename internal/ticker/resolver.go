// Package ticker matches a buy/sell asset pair against the exchange's
// published trading pairs to find the identifier used for historical trades.
package ticker

import (
	"strings"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

// Resolve finds the ticker id for a pair, trying published tickers in both
// orientations and synthesizing an id by convention when exactly one side is
// the native token. The ok result is false when neither works; that is an
// expected outcome (no chart data), not an error.
func Resolve(buyAsset, sellAsset, network string, tickers []model.Ticker) (string, bool) {
	buy := canonical(buyAsset, network)
	sell := canonical(sellAsset, network)
	if buy == "" && sell == "" {
		return "", false
	}

	for _, t := range tickers {
		base := tickerCodes(t.BaseCurrency, t.BaseCode, network)
		target := tickerCodes(t.TargetCurrency, t.TargetCode, network)
		if (matchesAny(base, buy) && matchesAny(target, sell)) ||
			(matchesAny(base, sell) && matchesAny(target, buy)) {
			return t.TickerID, true
		}
	}

	// No published pair. If exactly one side is native, the exchange names
	// the pair {asset}_{native} by convention.
	native := strings.ToLower(model.NativeTicker(network))
	buyNative := buy != "" && model.IsNativeAlias(buy)
	sellNative := sell != "" && model.IsNativeAlias(sell)
	switch {
	case buyNative && !sellNative && sell != "":
		return sell + "_" + native, true
	case sellNative && !buyNative && buy != "":
		return buy + "_" + native, true
	}
	return "", false
}

// canonical lowercases an asset code and folds every native alias onto one
// token so "XCH", "txch" and "" compare equal.
func canonical(code, network string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if model.IsNativeAlias(code) {
		return strings.ToLower(model.NativeTicker(network))
	}
	return code
}

func tickerCodes(currency, code, network string) []string {
	var out []string
	if c := canonical(currency, network); c != "" {
		out = append(out, c)
	}
	if c := canonical(code, network); c != "" {
		out = append(out, c)
	}
	return out
}

// matchesAny compares one pair side against a ticker's currency and code.
// Exact match first; substring containment is the fallback, so a full
// currency name still matches its short code.
func matchesAny(candidates []string, asset string) bool {
	if asset == "" {
		return false
	}
	for _, c := range candidates {
		if c == asset {
			return true
		}
	}
	for _, c := range candidates {
		if strings.Contains(c, asset) || strings.Contains(asset, c) {
			return true
		}
	}
	return false
}
