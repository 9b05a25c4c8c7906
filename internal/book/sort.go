package book

import (
	"sort"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

// Deduplicate collapses repeated orders by id. The first occurrence wins and
// survivors keep their original relative order.
func Deduplicate(orders []model.Order) []model.Order {
	seen := make(map[string]struct{}, len(orders))
	result := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if _, dup := seen[o.ID]; dup {
			continue
		}
		seen[o.ID] = struct{}{}
		result = append(result, o)
	}
	return result
}

// IsSellOrder classifies an order as an ask: it offers the native token.
// An order offering only non-native assets is a bid from the book's
// perspective, whatever it requests.
func IsSellOrder(o model.Order, network string) bool {
	ticker := model.NativeTicker(network)
	for _, a := range o.Offering {
		if model.IsNativeEntry(a) || a.Code == ticker {
			return true
		}
	}
	return false
}

// BestBidAsk scans a book for the tightest priced orders: the lowest-priced
// ask and the highest-priced bid. Zero-priced orders (multi-asset sides) are
// skipped; a zero return means that side has no usable price.
func BestBidAsk(orders []model.Order, network string) (bestBid, bestAsk float64) {
	for _, o := range orders {
		if o.PricePerUnit <= 0 {
			continue
		}
		if IsSellOrder(o, network) {
			if bestAsk == 0 || o.PricePerUnit < bestAsk {
				bestAsk = o.PricePerUnit
			}
		} else if o.PricePerUnit > bestBid {
			bestBid = o.PricePerUnit
		}
	}
	return bestBid, bestAsk
}

// SortOrders imposes the canonical book shape on a copy of the input: asks
// first (price descending), then bids (price ascending). The ask-before-bid
// rule is fixed, not price-based, which is what puts asks above bids when the
// two classes mix.
func SortOrders(orders []model.Order, network string) []model.Order {
	sorted := make([]model.Order, len(orders))
	copy(sorted, orders)

	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := IsSellOrder(sorted[i], network), IsSellOrder(sorted[j], network)
		if si != sj {
			return si
		}
		if si {
			return sorted[i].PricePerUnit > sorted[j].PricePerUnit
		}
		return sorted[i].PricePerUnit < sorted[j].PricePerUnit
	})
	return sorted
}
