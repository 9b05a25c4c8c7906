package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseFloat coerces a JSON-decoded value (number, numeric string, or
// json.Number) into a float64. The second return is false when the value is
// absent, non-numeric, or not finite.
func ParseFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(n)
	case float32:
		return finite(float64(n))
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return finite(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	default:
		return 0, false
	}
}

// ToFloat is ParseFloat with a zero default: anything unparseable becomes 0,
// never an error. Upstream data is noisy and a bad amount must not abort a
// whole batch.
func ToFloat(v any) float64 {
	f, ok := ParseFloat(v)
	if !ok {
		return 0
	}
	return f
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NativeTicker returns the native-token ticker for a network.
func NativeTicker(network string) string {
	if network == NetworkTestnet {
		return NativeTickerTestnet
	}
	return NativeTickerMainnet
}

// IsNativeAlias reports whether a code is one of the known spellings of the
// native token. An empty code counts: the chain identifies its base currency
// by an empty asset id.
func IsNativeAlias(code string) bool {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "", "xch", "txch":
		return true
	}
	return false
}

// NormalizeNativeAsset rewrites any native-token alias to the network-correct
// ticker and leaves every other code untouched.
func NormalizeNativeAsset(code, network string) string {
	if code == "" {
		return ""
	}
	if IsNativeAlias(code) {
		return NativeTicker(network)
	}
	return code
}

// IsNativeEntry reports whether an order side-entry refers to the native
// token, either by empty asset id or by alias code. A non-empty id with an
// empty code is some other asset, not the native token.
func IsNativeEntry(a AssetAmount) bool {
	if a.AssetID == "" {
		return true
	}
	return a.Code != "" && IsNativeAlias(a.Code)
}
