package handlers

import (
	"aetherium-service/internal/domain/entities"
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) raw(args mock.Arguments) (json.RawMessage, error) {
	if body := args.Get(0); body != nil {
		return body.(json.RawMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockMarketService) Listings(ctx context.Context, convert string) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, convert))
}

func (m *MockMarketService) Quote(ctx context.Context, id, convert string) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, id, convert))
}

func (m *MockMarketService) History(ctx context.Context, id string, timeframe entities.Timeframe) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, id, timeframe))
}

func (m *MockMarketService) CoinDetail(ctx context.Context, geckoID string) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, geckoID))
}

func (m *MockMarketService) MarketChart(ctx context.Context, geckoID, vsCurrency string, days int) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, geckoID, vsCurrency, days))
}

func (m *MockMarketService) ChartBySymbol(ctx context.Context, symbol, vsCurrency string, days int) (json.RawMessage, error) {
	return m.raw(m.Called(ctx, symbol, vsCurrency, days))
}

type MockSymbolResolver struct {
	mock.Mock
}

func (m *MockSymbolResolver) Resolve(ctx context.Context, symbol string) (string, error) {
	args := m.Called(ctx, symbol)
	return args.String(0), args.Error(1)
}

func (m *MockSymbolResolver) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSymbolResolver) Snapshot(ctx context.Context) (*entities.CoinListSnapshot, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.(*entities.CoinListSnapshot), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSymbolResolver) Window() time.Duration {
	return time.Hour
}

type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) AnalyzeCoin(ctx context.Context, coinName string) (*entities.Analysis, error) {
	args := m.Called(ctx, coinName)
	if a := args.Get(0); a != nil {
		return a.(*entities.Analysis), args.Error(1)
	}
	return nil, args.Error(1)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(ctx context.Context) error {
	return p.err
}
