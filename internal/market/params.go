package market

import (
	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

// OpenListingsStatus is the lifecycle code the search API uses for offers
// that are still open.
const OpenListingsStatus = 0

// SearchQuery describes one book query before it is lowered into API
// parameters: which page, how many results, which network, and how each side
// of the pair is selected.
type SearchQuery struct {
	Page     int
	Count    model.PageCount
	Network  string
	Buy      model.AssetSelector
	Sell     model.AssetSelector
	Filter   *model.PairFilter
	PageSize int // 0 derives the size from Count
}

// resolveSide applies the override precedence for one side of the pair:
// an explicit asset wins, an explicit "no asset" wins over the filter, and
// otherwise the filter value is used.
func resolveSide(sel model.AssetSelector, filterAsset string) string {
	switch sel.Mode {
	case model.SelectorExplicit:
		return sel.Asset
	case model.SelectorNone:
		return ""
	default:
		return filterAsset
	}
}

// EffectivePair returns the buy and sell assets the query actually targets,
// with native-token aliases normalized to the network-correct ticker.
func (q SearchQuery) EffectivePair() (buy, sell string) {
	var filterBuy, filterSell string
	if q.Filter != nil {
		filterBuy = q.Filter.BuyAsset
		filterSell = q.Filter.SellAsset
	}
	buy = model.NormalizeNativeAsset(resolveSide(q.Buy, filterBuy), q.Network)
	sell = model.NormalizeNativeAsset(resolveSide(q.Sell, filterSell), q.Network)
	return buy, sell
}

// effectivePageSize returns the explicit page-size override when present,
// else the default for the pagination setting.
func (q SearchQuery) effectivePageSize() int {
	if q.PageSize > 0 {
		return q.PageSize
	}
	return q.Count.PageSize()
}

// BuildSearchParams lowers a query into listing-API parameters. A buy-side
// asset constrains what the listing must request, a sell-side asset what it
// must offer. Pure: no side effects, same output for the same query.
func BuildSearchParams(q SearchQuery) model.SearchParams {
	buy, sell := q.EffectivePair()

	params := model.SearchParams{
		Page:     q.Page,
		PageSize: q.effectivePageSize(),
		Status:   OpenListingsStatus,
	}
	if buy != "" {
		params.Requested = buy
	}
	if sell != "" {
		params.Offered = sell
	}
	return params
}
