// Package book converts raw marketplace listings into canonical orders and
// shapes them into the order book: deduplicated, asks above bids, best price
// first within each side.
package book

import (
	"log/slog"
	"time"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

const makerDisplayEdge = 4

// ValidListing reports whether a raw listing is complete enough to convert.
// Both sides must be non-empty; anything else is upstream noise.
func ValidListing(l model.RawListing) bool {
	return len(l.Offered) > 0 && len(l.Requested) > 0
}

// ConvertListing maps one validated raw listing into an Order. Amounts are
// coerced to numbers with a zero default, so a malformed amount degrades a
// single entry instead of failing the listing.
func ConvertListing(l model.RawListing, network string) model.Order {
	offering := convertSide(l.Offered)
	requesting := convertSide(l.Requested)

	return model.Order{
		ID:                 l.ID,
		Offering:           offering,
		Requesting:         requesting,
		Maker:              makerDisplay(l.ID),
		Timestamp:          displayTimestamp(l.DateFound),
		OfferingXCHValue:   nativeValue(offering, network),
		RequestingXCHValue: nativeValue(requesting, network),
		PricePerUnit:       pricePerUnit(offering, requesting),
		Status:             l.Status,
		DateFound:          l.DateFound,
		DateCompleted:      l.DateCompleted,
		DatePending:        l.DatePending,
		DateExpiry:         l.DateExpiry,
		KnownTaker:         l.KnownTaker != nil,
	}
}

// ConvertListings filters and converts a raw batch. Incomplete listings are
// dropped silently; if any were, one diagnostic is logged for the whole batch.
func ConvertListings(listings []model.RawListing, network string, logger *slog.Logger) []model.Order {
	if logger == nil {
		logger = slog.Default()
	}

	orders := make([]model.Order, 0, len(listings))
	dropped := 0
	var sampleID string
	for _, l := range listings {
		if !ValidListing(l) {
			if dropped == 0 {
				sampleID = l.ID
			}
			dropped++
			continue
		}
		orders = append(orders, ConvertListing(l, network))
	}

	if dropped > 0 {
		logger.Debug("dropped incomplete listings",
			"dropped", dropped,
			"kept", len(orders),
			"sample_id", sampleID)
	}
	return orders
}

func convertSide(raw []model.RawAsset) []model.AssetAmount {
	side := make([]model.AssetAmount, 0, len(raw))
	for _, a := range raw {
		side = append(side, model.AssetAmount{
			AssetID: a.ID,
			Code:    a.Code,
			Amount:  model.ToFloat(a.Amount),
		})
	}
	return side
}

// nativeValue sums the amounts on one side that belong to the native token,
// whatever alias the upstream used for it.
func nativeValue(side []model.AssetAmount, network string) float64 {
	ticker := model.NativeTicker(network)
	var sum float64
	for _, a := range side {
		if model.IsNativeEntry(a) || a.Code == ticker {
			sum += a.Amount
		}
	}
	return sum
}

// pricePerUnit is requested/offered, defined only for one-asset-per-side
// listings with a positive offered amount. Everything else prices at 0,
// never NaN.
func pricePerUnit(offering, requesting []model.AssetAmount) float64 {
	if len(offering) != 1 || len(requesting) != 1 {
		return 0
	}
	if offering[0].Amount <= 0 {
		return 0
	}
	return requesting[0].Amount / offering[0].Amount
}

// makerDisplay derives a presentation placeholder from the listing id. It is
// not an address, just a stable short handle for the UI.
func makerDisplay(id string) string {
	if len(id) <= makerDisplayEdge*2 {
		return id
	}
	return id[:makerDisplayEdge] + "..." + id[len(id)-makerDisplayEdge:]
}

// displayTimestamp renders a listing date as a human-readable UTC string,
// falling back to the raw value when it is not RFC 3339.
func displayTimestamp(date string) string {
	if date == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		return date
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
