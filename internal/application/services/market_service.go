package services

import (
	"aetherium-service/internal/domain/apperrors"
	"aetherium-service/internal/domain/entities"
	"aetherium-service/internal/domain/interfaces"
	"aetherium-service/internal/infrastructure/logging"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultConvert    = "GBP"
	DefaultVsCurrency = "gbp"
	DefaultChartDays  = 7
	MaxChartDays      = 365
	historyConvert    = "GBP"
	responseKeyPrefix = "resp:"
)

// marketService relays listings, quotes, history and chart data from the upstream providers
type marketService struct {
	market   interfaces.MarketDataProvider
	coins    interfaces.CoinDataProvider
	resolver interfaces.SymbolResolver
	cache    interfaces.ResponseCache
	now      func() time.Time
}

// NewMarketService creates the market service. cache may be nil to disable response caching.
func NewMarketService(
	market interfaces.MarketDataProvider,
	coins interfaces.CoinDataProvider,
	resolver interfaces.SymbolResolver,
	cache interfaces.ResponseCache,
) interfaces.MarketService {
	return &marketService{
		market:   market,
		coins:    coins,
		resolver: resolver,
		cache:    cache,
		now:      time.Now,
	}
}

// NormalizeConvert uppercases the target currency, defaulting to GBP
func NormalizeConvert(convert string) string {
	convert = strings.ToUpper(strings.TrimSpace(convert))
	if convert == "" {
		return DefaultConvert
	}
	return convert
}

func (s *marketService) Listings(ctx context.Context, convert string) (json.RawMessage, error) {
	convert = NormalizeConvert(convert)
	return s.cached(ctx, "listings:"+convert, func() (json.RawMessage, error) {
		return s.market.Listings(ctx, convert)
	})
}

func (s *marketService) Quote(ctx context.Context, id, convert string) (json.RawMessage, error) {
	id, err := requireParam("id", id)
	if err != nil {
		return nil, err
	}
	convert = NormalizeConvert(convert)
	return s.cached(ctx, "quote:"+id+":"+convert, func() (json.RawMessage, error) {
		return s.market.Quote(ctx, id, convert)
	})
}

// History always converts to GBP; the start date is derived from timeframe at call time
func (s *marketService) History(ctx context.Context, id string, timeframe entities.Timeframe) (json.RawMessage, error) {
	id, err := requireParam("id", id)
	if err != nil {
		return nil, err
	}
	timeframe = entities.ParseTimeframe(string(timeframe))

	return s.cached(ctx, "history:"+id+":"+string(timeframe), func() (json.RawMessage, error) {
		start := timeframe.StartDate(s.now())
		logging.Debug(ctx, "Requesting historical quotes", logging.Fields{
			logging.FieldProviderID: id,
			logging.FieldTimeframe:  string(timeframe),
			"time_start":            start.UTC(),
		})
		return s.market.Historical(ctx, id, historyConvert, start)
	})
}

func (s *marketService) CoinDetail(ctx context.Context, geckoID string) (json.RawMessage, error) {
	geckoID, err := requireParam("gecko id", geckoID)
	if err != nil {
		return nil, err
	}
	geckoID = strings.ToLower(geckoID)
	return s.cached(ctx, "coin:"+geckoID, func() (json.RawMessage, error) {
		return s.coins.CoinDetail(ctx, geckoID)
	})
}

func (s *marketService) MarketChart(ctx context.Context, geckoID, vsCurrency string, days int) (json.RawMessage, error) {
	geckoID, err := requireParam("gecko id", geckoID)
	if err != nil {
		return nil, err
	}
	geckoID = strings.ToLower(geckoID)

	vsCurrency = strings.ToLower(strings.TrimSpace(vsCurrency))
	if vsCurrency == "" {
		vsCurrency = DefaultVsCurrency
	}
	if days <= 0 {
		days = DefaultChartDays
	}
	if days > MaxChartDays {
		return nil, fmt.Errorf("%w: days must be at most %d", apperrors.ErrValidation, MaxChartDays)
	}

	key := "chart:" + geckoID + ":" + vsCurrency + ":" + strconv.Itoa(days)
	return s.cached(ctx, key, func() (json.RawMessage, error) {
		return s.coins.MarketChart(ctx, geckoID, vsCurrency, days)
	})
}

// ChartBySymbol resolves symbol to a CoinGecko id and then fetches its market chart
func (s *marketService) ChartBySymbol(ctx context.Context, symbol, vsCurrency string, days int) (json.RawMessage, error) {
	geckoID, err := s.resolver.Resolve(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return s.MarketChart(ctx, geckoID, vsCurrency, days)
}

// cached serves key from the response cache when enabled; only successful bodies are stored
func (s *marketService) cached(ctx context.Context, key string, fetch func() (json.RawMessage, error)) (json.RawMessage, error) {
	if s.cache == nil {
		return fetch()
	}

	key = responseKeyPrefix + key
	if body, ok := s.cache.Get(ctx, key); ok {
		return body, nil
	}

	body, err := fetch()
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, body)
	return body, nil
}

func requireParam(name, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", apperrors.ErrValidation, name)
	}
	return value, nil
}
