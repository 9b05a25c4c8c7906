package model

// Network identifiers supported by the marketplace client.
const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// Native-token tickers per network.
const (
	NativeTickerMainnet = "XCH"
	NativeTickerTestnet = "TXCH"
)

// AssetAmount is one side-entry of an order: an asset plus how much of it.
type AssetAmount struct {
	AssetID string  `json:"assetId"`
	Code    string  `json:"code,omitempty"`
	Amount  float64 `json:"amount"`
}

// Order is the canonical, converted representation of a marketplace listing.
// Orders are values: every transform returns a new one, nothing mutates in place.
type Order struct {
	ID                 string        `json:"id"`
	Offering           []AssetAmount `json:"offering"`
	Requesting         []AssetAmount `json:"requesting"`
	Maker              string        `json:"maker"`
	Timestamp          string        `json:"timestamp"`
	OfferingXCHValue   float64       `json:"offeringXchValue"`
	RequestingXCHValue float64       `json:"requestingXchValue"`
	PricePerUnit       float64       `json:"pricePerUnit"`
	Status             int           `json:"status"`
	DateFound          string        `json:"dateFound,omitempty"`
	DateCompleted      string        `json:"dateCompleted,omitempty"`
	DatePending        string        `json:"datePending,omitempty"`
	DateExpiry         string        `json:"dateExpiry,omitempty"`
	KnownTaker         bool          `json:"knownTaker,omitempty"`
}

// OrderBook is the deduplicated, canonically sorted result of a market query.
type OrderBook struct {
	Orders  []Order `json:"orders"`
	Total   int     `json:"total"`
	HasMore bool    `json:"hasMore"`
}

// RawAsset is one asset entry as returned by the listing API. Amount may be
// a JSON number or a numeric string depending on the upstream source.
type RawAsset struct {
	ID     string `json:"id"`
	Code   string `json:"code,omitempty"`
	Name   string `json:"name,omitempty"`
	Amount any    `json:"amount"`
}

// RawListing is one pre-conversion offer record from the marketplace search API.
type RawListing struct {
	ID            string     `json:"id"`
	Offered       []RawAsset `json:"offered"`
	Requested     []RawAsset `json:"requested"`
	Status        int        `json:"status"`
	DateFound     string     `json:"date_found,omitempty"`
	DateCompleted string     `json:"date_completed,omitempty"`
	DatePending   string     `json:"date_pending,omitempty"`
	DateExpiry    string     `json:"date_expiry,omitempty"`
	KnownTaker    any        `json:"known_taker,omitempty"`
}

// SearchParams is the query contract of the listing search API.
// Status is always sent; zero means "open listings only".
type SearchParams struct {
	Requested string `json:"requested,omitempty"`
	Offered   string `json:"offered,omitempty"`
	Maker     string `json:"maker,omitempty"`
	Page      int    `json:"page,omitempty"`
	PageSize  int    `json:"page_size,omitempty"`
	Status    int    `json:"status"`
}

// SearchResponse is the listing search API response envelope.
// Total is a pointer because not every upstream reports it.
type SearchResponse struct {
	Success  bool         `json:"success"`
	Data     []RawListing `json:"data"`
	Total    *int         `json:"total,omitempty"`
	Page     int          `json:"page,omitempty"`
	PageSize int          `json:"page_size,omitempty"`
}

// RawTrade is one historical trade record as delivered upstream. Field names
// for the same semantic value differ between sources, and numeric values may
// arrive as strings, so everything stays untyped until normalization.
type RawTrade struct {
	Price          any `json:"price"`
	Timestamp      any `json:"timestamp,omitempty"`
	TradeTimestamp any `json:"trade_timestamp,omitempty"`
	Volume         any `json:"volume,omitempty"`
	BaseVolume     any `json:"base_volume,omitempty"`
	TargetVolume   any `json:"target_volume,omitempty"`
	Type           any `json:"type,omitempty"`
}

// Trade is a validated, normalized trade ready for candle aggregation.
// Timestamp keeps the upstream resolution (seconds or milliseconds); the
// aggregator disambiguates before bucketing.
type Trade struct {
	Price     float64 `json:"price"`
	Volume    float64 `json:"volume"`
	Timestamp float64 `json:"timestamp"`
}

// Candle is an OHLCV summary of the trades inside one time bucket.
// Time is the bucket start in seconds.
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// ChartData is a candle sequence plus provenance. Synthetic candles derived
// from order-book prices are flagged so the UI can disclose the approximation.
type ChartData struct {
	TickerID  string   `json:"tickerId,omitempty"`
	Candles   []Candle `json:"candles"`
	Synthetic bool     `json:"synthetic"`
}

// Ticker is a published trading-pair identifier from the exchange API.
type Ticker struct {
	TickerID       string `json:"ticker_id"`
	BaseCurrency   string `json:"base_currency"`
	BaseCode       string `json:"base_code,omitempty"`
	TargetCurrency string `json:"target_currency"`
	TargetCode     string `json:"target_code,omitempty"`
	LastPrice      any    `json:"last_price,omitempty"`
	BaseVolume     any    `json:"base_volume,omitempty"`
	TargetVolume   any    `json:"target_volume,omitempty"`
}

// PairFilter is the buy/sell asset filter a user applies to the book.
type PairFilter struct {
	BuyAsset  string `json:"buyAsset,omitempty"`
	SellAsset string `json:"sellAsset,omitempty"`
}

// SelectorMode discriminates the asset-override variants. Consumers switch on
// it exhaustively instead of probing optional fields.
type SelectorMode int

const (
	// SelectorFromFilter falls back to the pair filter for this side.
	SelectorFromFilter SelectorMode = iota
	// SelectorExplicit uses the selector's own asset, ignoring the filter.
	SelectorExplicit
	// SelectorNone forces this side empty even when the filter has a value.
	SelectorNone
)

// AssetSelector is the tri-state override for one side of a pair query.
type AssetSelector struct {
	Mode  SelectorMode `json:"mode"`
	Asset string       `json:"asset,omitempty"`
}

// FromFilter selects whatever the pair filter holds.
func FromFilter() AssetSelector { return AssetSelector{Mode: SelectorFromFilter} }

// Explicit selects a fixed asset regardless of the filter.
func Explicit(asset string) AssetSelector {
	return AssetSelector{Mode: SelectorExplicit, Asset: asset}
}

// NoAsset forces the side to stay unset.
func NoAsset() AssetSelector { return AssetSelector{Mode: SelectorNone} }

// PageCount is the "how many results" pagination setting.
type PageCount string

const (
	Count10  PageCount = "10"
	Count15  PageCount = "15"
	Count50  PageCount = "50"
	Count100 PageCount = "100"
	CountAll PageCount = "all"
)

// ExhaustivePageSize is the per-page size used when CountAll pages through
// every result.
const ExhaustivePageSize = 100

// PageSize returns the effective page size for the setting.
func (c PageCount) PageSize() int {
	switch c {
	case Count10:
		return 10
	case Count15:
		return 15
	case Count50:
		return 50
	case Count100:
		return 100
	case CountAll:
		return ExhaustivePageSize
	default:
		return 10
	}
}

// Valid reports whether the setting is one of the supported values.
func (c PageCount) Valid() bool {
	switch c {
	case Count10, Count15, Count50, Count100, CountAll:
		return true
	}
	return false
}

// LocalOffer is a client-side record of an offer the user created locally.
type LocalOffer struct {
	ID        string `json:"id"`
	Offer     string `json:"offer"`
	Status    int    `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
