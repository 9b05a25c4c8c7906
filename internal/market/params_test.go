package market

import (
	"testing"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

func TestBuildSearchParamsFilterMapping(t *testing.T) {
	tests := []struct {
		name          string
		filter        *model.PairFilter
		wantRequested string
		wantOffered   string
	}{
		{
			name:          "both assets set",
			filter:        &model.PairFilter{BuyAsset: "SBX", SellAsset: "USDS"},
			wantRequested: "SBX",
			wantOffered:   "USDS",
		},
		{
			name:          "buy only",
			filter:        &model.PairFilter{BuyAsset: "SBX"},
			wantRequested: "SBX",
			wantOffered:   "",
		},
		{
			name:          "sell only",
			filter:        &model.PairFilter{SellAsset: "USDS"},
			wantRequested: "",
			wantOffered:   "USDS",
		},
		{
			name:          "no filter",
			filter:        nil,
			wantRequested: "",
			wantOffered:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := BuildSearchParams(SearchQuery{
				Page:    1,
				Count:   model.Count50,
				Network: model.NetworkMainnet,
				Filter:  tt.filter,
			})

			if params.Requested != tt.wantRequested {
				t.Errorf("requested = %q, want %q", params.Requested, tt.wantRequested)
			}
			if params.Offered != tt.wantOffered {
				t.Errorf("offered = %q, want %q", params.Offered, tt.wantOffered)
			}
			if params.Status != OpenListingsStatus {
				t.Errorf("status = %d, want %d", params.Status, OpenListingsStatus)
			}
		})
	}
}

func TestBuildSearchParamsOverridePrecedence(t *testing.T) {
	filter := &model.PairFilter{BuyAsset: "SBX", SellAsset: "USDS"}

	// Explicit override wins over the filter.
	params := BuildSearchParams(SearchQuery{
		Count:   model.Count10,
		Network: model.NetworkMainnet,
		Buy:     model.Explicit("DBX"),
		Filter:  filter,
	})
	if params.Requested != "DBX" {
		t.Errorf("explicit override: requested = %q, want DBX", params.Requested)
	}

	// Forced-absent wins over the filter.
	params = BuildSearchParams(SearchQuery{
		Count:   model.Count10,
		Network: model.NetworkMainnet,
		Buy:     model.NoAsset(),
		Filter:  filter,
	})
	if params.Requested != "" {
		t.Errorf("forced absent: requested = %q, want empty", params.Requested)
	}
	if params.Offered != "USDS" {
		t.Errorf("forced absent should not touch the other side, offered = %q", params.Offered)
	}
}

func TestBuildSearchParamsNativeAliasing(t *testing.T) {
	tests := []struct {
		name    string
		network string
		buy     string
		want    string
	}{
		{"xch lowercase on mainnet", model.NetworkMainnet, "xch", "XCH"},
		{"txch alias on mainnet", model.NetworkMainnet, "txch", "XCH"},
		{"xch on testnet", model.NetworkTestnet, "xch", "TXCH"},
		{"non-native untouched", model.NetworkMainnet, "SBX", "SBX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := BuildSearchParams(SearchQuery{
				Count:   model.Count10,
				Network: tt.network,
				Filter:  &model.PairFilter{BuyAsset: tt.buy},
			})
			if params.Requested != tt.want {
				t.Errorf("requested = %q, want %q", params.Requested, tt.want)
			}
		})
	}
}

func TestBuildSearchParamsPageSize(t *testing.T) {
	tests := []struct {
		name     string
		count    model.PageCount
		override int
		want     int
	}{
		{"count 10", model.Count10, 0, 10},
		{"count 15", model.Count15, 0, 15},
		{"count 100", model.Count100, 0, 100},
		{"all defaults to exhaustive size", model.CountAll, 0, 100},
		{"explicit override wins", model.Count10, 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := BuildSearchParams(SearchQuery{
				Count:    tt.count,
				Network:  model.NetworkMainnet,
				PageSize: tt.override,
			})
			if params.PageSize != tt.want {
				t.Errorf("page_size = %d, want %d", params.PageSize, tt.want)
			}
		})
	}
}
