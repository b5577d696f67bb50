package interfaces

import (
	"context"
	"encoding/json"
	"time"

	"aetherium-service/internal/domain/entities"
)

// SymbolResolver maps ticker symbols to price-history provider ids.
type SymbolResolver interface {
	// Resolve is case-insensitive. It may refresh the coin list before answering.
	Resolve(ctx context.Context, symbol string) (string, error)

	// Refresh fetches a new coin list unconditionally and replaces the snapshot.
	Refresh(ctx context.Context) error

	// Snapshot returns the current snapshot without triggering a refresh.
	Snapshot(ctx context.Context) (*entities.CoinListSnapshot, error)

	// Window is how long a snapshot is served before the next lookup refreshes it.
	Window() time.Duration
}

// MarketService covers the pass-through market data use cases.
type MarketService interface {
	Listings(ctx context.Context, convert string) (json.RawMessage, error)
	Quote(ctx context.Context, id, convert string) (json.RawMessage, error)
	History(ctx context.Context, id string, timeframe entities.Timeframe) (json.RawMessage, error)
	CoinDetail(ctx context.Context, geckoID string) (json.RawMessage, error)
	MarketChart(ctx context.Context, geckoID, vsCurrency string, days int) (json.RawMessage, error)
	ChartBySymbol(ctx context.Context, symbol, vsCurrency string, days int) (json.RawMessage, error)
}

// AnalysisService produces the narrative index summary for a coin.
type AnalysisService interface {
	AnalyzeCoin(ctx context.Context, coinName string) (*entities.Analysis, error)
}
