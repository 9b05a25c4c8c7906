package book

import (
	"testing"

	"github.com/MaximEdogawa/pengui-sub000/internal/model"
)

func TestConvertListingRoundTrip(t *testing.T) {
	listing := model.RawListing{
		ID:        "offer123456789",
		Offered:   []model.RawAsset{{ID: "", Amount: 1000.0}},
		Requested: []model.RawAsset{{ID: "abc", Code: "SBX", Amount: 2000.0}},
	}

	order := ConvertListing(listing, model.NetworkMainnet)

	if order.PricePerUnit != 2 {
		t.Errorf("pricePerUnit = %v, want 2", order.PricePerUnit)
	}
	if order.OfferingXCHValue != 1000 {
		t.Errorf("offeringXchValue = %v, want 1000 (empty asset id is native)", order.OfferingXCHValue)
	}
	if order.RequestingXCHValue != 0 {
		t.Errorf("requestingXchValue = %v, want 0", order.RequestingXCHValue)
	}
}

func TestConvertListingCoercesAmounts(t *testing.T) {
	listing := model.RawListing{
		ID:        "o1",
		Offered:   []model.RawAsset{{ID: "", Amount: "12.5"}},
		Requested: []model.RawAsset{{ID: "abc", Code: "SBX", Amount: "not-a-number"}},
	}

	order := ConvertListing(listing, model.NetworkMainnet)

	if order.Offering[0].Amount != 12.5 {
		t.Errorf("numeric string should parse, got %v", order.Offering[0].Amount)
	}
	if order.Requesting[0].Amount != 0 {
		t.Errorf("garbage amount must coerce to 0, got %v", order.Requesting[0].Amount)
	}
	if order.PricePerUnit != 0 {
		t.Errorf("pricePerUnit with zero requested = %v, want 0", order.PricePerUnit)
	}
}

func TestConvertListingPricePerUnitRules(t *testing.T) {
	tests := []struct {
		name      string
		offered   []model.RawAsset
		requested []model.RawAsset
		want      float64
	}{
		{
			name:      "single asset each side",
			offered:   []model.RawAsset{{ID: "", Amount: 4.0}},
			requested: []model.RawAsset{{ID: "a", Amount: 10.0}},
			want:      2.5,
		},
		{
			name:      "multiple offered assets",
			offered:   []model.RawAsset{{ID: "", Amount: 4.0}, {ID: "b", Amount: 1.0}},
			requested: []model.RawAsset{{ID: "a", Amount: 10.0}},
			want:      0,
		},
		{
			name:      "zero offered amount",
			offered:   []model.RawAsset{{ID: "", Amount: 0.0}},
			requested: []model.RawAsset{{ID: "a", Amount: 10.0}},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := ConvertListing(model.RawListing{
				ID: "o", Offered: tt.offered, Requested: tt.requested,
			}, model.NetworkMainnet)
			if order.PricePerUnit != tt.want {
				t.Errorf("pricePerUnit = %v, want %v", order.PricePerUnit, tt.want)
			}
		})
	}
}

func TestConvertListingsDropsIncomplete(t *testing.T) {
	listings := []model.RawListing{
		{ID: "good", Offered: []model.RawAsset{{ID: "", Amount: 1.0}}, Requested: []model.RawAsset{{ID: "a", Amount: 2.0}}},
		{ID: "no-offered", Requested: []model.RawAsset{{ID: "a", Amount: 2.0}}},
		{ID: "no-requested", Offered: []model.RawAsset{{ID: "", Amount: 1.0}}},
		{ID: "empty"},
	}

	orders := ConvertListings(listings, model.NetworkMainnet, nil)

	if len(orders) != 1 {
		t.Fatalf("expected 1 surviving order, got %d", len(orders))
	}
	if orders[0].ID != "good" {
		t.Errorf("wrong survivor: %s", orders[0].ID)
	}
}

func TestMakerDisplay(t *testing.T) {
	order := ConvertListing(model.RawListing{
		ID:        "abcdefghijklmnop",
		Offered:   []model.RawAsset{{ID: "", Amount: 1.0}},
		Requested: []model.RawAsset{{ID: "a", Amount: 2.0}},
	}, model.NetworkMainnet)

	if order.Maker != "abcd...mnop" {
		t.Errorf("maker = %q, want abcd...mnop", order.Maker)
	}

	short := ConvertListing(model.RawListing{
		ID:        "tiny",
		Offered:   []model.RawAsset{{ID: "", Amount: 1.0}},
		Requested: []model.RawAsset{{ID: "a", Amount: 2.0}},
	}, model.NetworkMainnet)
	if short.Maker != "tiny" {
		t.Errorf("short id should pass through, got %q", short.Maker)
	}
}

func TestConvertListingNativeAliases(t *testing.T) {
	listing := model.RawListing{
		ID: "o1",
		Offered: []model.RawAsset{
			{ID: "", Code: "XCH", Amount: 1.0},
			{ID: "x2", Code: "xch", Amount: 2.0},
			{ID: "a1", Code: "SBX", Amount: 100.0},
		},
		Requested: []model.RawAsset{{ID: "a2", Code: "DBX", Amount: 5.0}},
	}

	order := ConvertListing(listing, model.NetworkMainnet)
	if order.OfferingXCHValue != 3 {
		t.Errorf("native sum should accept aliases, got %v", order.OfferingXCHValue)
	}
}
