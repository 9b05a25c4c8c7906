package api

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/MaximEdogawa/pengui-sub000/internal/chart"
	"github.com/MaximEdogawa/pengui-sub000/internal/model"
	"github.com/MaximEdogawa/pengui-sub000/internal/service"
)

const maxTradeLimit = 10000

// BookRequest is a validated order-book query.
type BookRequest struct {
	BuyAsset  string
	SellAsset string
	Page      int
	Count     model.PageCount
}

// ChartRequest is a validated candle/indicator query.
type ChartRequest struct {
	BuyAsset  string
	SellAsset string
	Timeframe string
	Limit     int
}

// Validator handles validation logic separate from HTTP concerns.
type Validator struct {
	assetRegex *regexp.Regexp
}

var (
	validatorInstance *Validator
	validatorOnce     sync.Once
)

// GetValidator returns the singleton validator instance.
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		validatorInstance = &Validator{
			// Asset codes are short tickers; hex asset ids also pass.
			assetRegex: regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`),
		}
	})
	return validatorInstance
}

// ValidateBookRequest validates and sanitizes an order-book query.
func (v *Validator) ValidateBookRequest(buy, sell, pageStr, countStr string) (BookRequest, error) {
	req := BookRequest{
		BuyAsset:  v.sanitizeInput(buy),
		SellAsset: v.sanitizeInput(sell),
	}
	if err := v.validateAsset(req.BuyAsset); err != nil {
		return BookRequest{}, fmt.Errorf("buy: %w", err)
	}
	if err := v.validateAsset(req.SellAsset); err != nil {
		return BookRequest{}, fmt.Errorf("sell: %w", err)
	}

	page, err := v.validatePage(pageStr)
	if err != nil {
		return BookRequest{}, err
	}
	req.Page = page

	count := model.PageCount(v.sanitizeInput(countStr))
	if !count.Valid() {
		return BookRequest{}, fmt.Errorf("count must be one of 10, 15, 50, 100, all")
	}
	req.Count = count
	return req, nil
}

// ValidateChartRequest validates and sanitizes a candle/indicator query.
func (v *Validator) ValidateChartRequest(buy, sell, timeframe, limitStr string) (ChartRequest, error) {
	req := ChartRequest{
		BuyAsset:  v.sanitizeInput(buy),
		SellAsset: v.sanitizeInput(sell),
		Timeframe: v.sanitizeInput(timeframe),
	}
	if req.BuyAsset == "" && req.SellAsset == "" {
		return ChartRequest{}, errors.New("at least one of buy or sell is required")
	}
	if err := v.validateAsset(req.BuyAsset); err != nil {
		return ChartRequest{}, fmt.Errorf("buy: %w", err)
	}
	if err := v.validateAsset(req.SellAsset); err != nil {
		return ChartRequest{}, fmt.Errorf("sell: %w", err)
	}

	if req.Timeframe == "" {
		req.Timeframe = DefaultTimeframe
	}
	if !chart.ValidTimeframe(req.Timeframe) {
		return ChartRequest{}, fmt.Errorf("unsupported timeframe %q", req.Timeframe)
	}

	limit, err := v.validateLimit(limitStr)
	if err != nil {
		return ChartRequest{}, err
	}
	req.Limit = limit
	return req, nil
}

// ValidateOffer checks a locally created offer before it is stored.
func (v *Validator) ValidateOffer(offer model.LocalOffer) error {
	if strings.TrimSpace(offer.Offer) == "" {
		return errors.New("offer string is required")
	}
	if len(offer.Offer) > 32*1024 {
		return errors.New("offer string too large")
	}
	return nil
}

// sanitizeInput removes control characters, trims whitespace, and caps length.
func (v *Validator) sanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.Map(func(r rune) rune {
		if r < 32 {
			return -1
		}
		return r
	}, input)

	if len(input) > 100 {
		input = input[:100]
	}
	return input
}

// validateAsset accepts an empty filter or a well-formed asset code/id.
func (v *Validator) validateAsset(asset string) error {
	if asset == "" {
		return nil
	}
	if !v.assetRegex.MatchString(asset) {
		return fmt.Errorf("invalid asset %q", asset)
	}
	return nil
}

func (v *Validator) validatePage(pageStr string) (int, error) {
	if pageStr == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, errors.New("page must be a positive integer")
	}
	return page, nil
}

func (v *Validator) validateLimit(limitStr string) (int, error) {
	if limitStr == "" {
		return service.DefaultTradeLimit, nil
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		return 0, errors.New("limit must be a positive integer")
	}
	if limit > maxTradeLimit {
		return 0, fmt.Errorf("limit must be at most %d", maxTradeLimit)
	}
	return limit, nil
}
