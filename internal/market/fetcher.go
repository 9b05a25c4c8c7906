package market

import (
	"context"
	"log/slog"
	"sync"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

// SearchFunc is the injected listing-search call. Implementations may hit the
// exchange API directly or go through a caching layer; the fetcher does not
// care which.
type SearchFunc func(ctx context.Context, params model.SearchParams) (model.SearchResponse, error)

// FetchResult is the merged raw outcome of one query across however many
// API requests its strategy needed.
type FetchResult struct {
	Listings []model.RawListing
	Total    int
	HasMore  bool
}

// Fetcher turns a SearchQuery into raw listings, picking a request strategy
// from which pair filters are set.
type Fetcher struct {
	search SearchFunc
	logger *slog.Logger
}

// NewFetcher creates a fetcher around an injected search function.
func NewFetcher(search SearchFunc, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{search: search, logger: logger}
}

// Fetch resolves the strategy for a query and runs it.
//
// Both assets set: two queries, one per direction, so listings surface no
// matter which side the assets sit on. One asset set: two queries with the
// asset as requested and as offered. Neither: a single unfiltered query.
// The "all" pagination setting swaps each single request for an exhaustive
// page walk.
func (f *Fetcher) Fetch(ctx context.Context, q SearchQuery) (FetchResult, error) {
	directions := f.directions(q)
	exhaustive := q.Count == model.CountAll

	contributions := make([]FetchResult, len(directions))
	if len(directions) == 1 {
		contributions[0] = f.fetchDirection(ctx, directions[0], exhaustive)
	} else {
		// The two directions have no ordering dependency; fan out and wait
		// for both. A failed direction contributes an empty result.
		var wg sync.WaitGroup
		for i, params := range directions {
			wg.Add(1)
			go func(i int, params model.SearchParams) {
				defer wg.Done()
				contributions[i] = f.fetchDirection(ctx, params, exhaustive)
			}(i, params)
		}
		wg.Wait()
	}

	var merged FetchResult
	for _, c := range contributions {
		merged.Listings = append(merged.Listings, c.Listings...)
		merged.Total += c.Total
		merged.HasMore = merged.HasMore || c.HasMore
	}
	return merged, nil
}

// directions builds the parameter set for each constituent request.
func (f *Fetcher) directions(q SearchQuery) []model.SearchParams {
	buy, sell := q.EffectivePair()
	base := BuildSearchParams(q)

	switch {
	case buy != "" && sell != "":
		// Bidirectional: the straight pair plus the swapped pair.
		swapped := base
		swapped.Requested = sell
		swapped.Offered = buy
		return []model.SearchParams{base, swapped}
	case buy != "":
		// Buy-only: the asset may appear on either side of a listing.
		flipped := base
		flipped.Requested = ""
		flipped.Offered = buy
		return []model.SearchParams{base, flipped}
	case sell != "":
		flipped := base
		flipped.Offered = ""
		flipped.Requested = sell
		return []model.SearchParams{base, flipped}
	default:
		return []model.SearchParams{base}
	}
}

// fetchDirection runs one request (or one exhaustive page walk) and folds the
// response into a contribution. Transport failure is tolerated: the direction
// resolves to an empty contribution so the other direction still counts.
func (f *Fetcher) fetchDirection(ctx context.Context, params model.SearchParams, exhaustive bool) FetchResult {
	if exhaustive {
		return f.fetchAllPages(ctx, params)
	}

	resp, err := f.search(ctx, params)
	if err != nil {
		f.logger.Warn("search direction failed, contributing empty result",
			"requested", params.Requested,
			"offered", params.Offered,
			"error", err)
		return FetchResult{}
	}
	return foldResponse(resp, params.PageSize)
}

// fetchAllPages walks pages until one comes back short of the page size,
// accumulating listings. The walk is inherently sequential: each continuation
// depends on the previous page's length.
func (f *Fetcher) fetchAllPages(ctx context.Context, params model.SearchParams) FetchResult {
	params.PageSize = model.ExhaustivePageSize

	var acc FetchResult
	page := params.Page
	if page < 1 {
		page = 1
	}
	for {
		params.Page = page
		resp, err := f.search(ctx, params)
		if err != nil {
			f.logger.Warn("page walk aborted, keeping pages fetched so far",
				"requested", params.Requested,
				"offered", params.Offered,
				"page", page,
				"error", err)
			return acc
		}

		acc.Listings = append(acc.Listings, resp.Data...)
		if resp.Total != nil {
			acc.Total = *resp.Total
		} else {
			acc.Total += len(resp.Data)
		}

		if len(resp.Data) < model.ExhaustivePageSize {
			return acc
		}
		page++
	}
}

// foldResponse converts one response into a contribution. When the server
// does not report a total, the page length stands in for it. A full page
// signals more results behind it.
func foldResponse(resp model.SearchResponse, pageSize int) FetchResult {
	result := FetchResult{Listings: resp.Data}
	if resp.Total != nil {
		result.Total = *resp.Total
	} else {
		result.Total = len(resp.Data)
	}
	switch {
	case resp.Total != nil && pageSize > 0 && resp.Page > 0:
		result.HasMore = resp.Page*pageSize < *resp.Total
	case pageSize > 0 && len(resp.Data) == pageSize:
		result.HasMore = true
	}
	return result
}
