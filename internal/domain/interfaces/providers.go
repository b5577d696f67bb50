package interfaces

import (
	"context"
	"encoding/json"
	"time"

	"aetherium-service/internal/domain/entities"
)

// MarketDataProvider wraps the listings/quotes/historical upstream. Bodies are
// returned untouched so handlers can relay them verbatim.
type MarketDataProvider interface {
	Listings(ctx context.Context, convert string) (json.RawMessage, error)
	Quote(ctx context.Context, id, convert string) (json.RawMessage, error)
	Historical(ctx context.Context, id, convert string, start time.Time) (json.RawMessage, error)
}

// CoinListProvider returns the full symbol→id list of the price-history upstream.
type CoinListProvider interface {
	CoinList(ctx context.Context) ([]entities.CoinListEntry, error)
}

// CoinDataProvider exposes per-coin detail and market chart data keyed by provider id.
type CoinDataProvider interface {
	CoinDetail(ctx context.Context, id string) (json.RawMessage, error)
	MarketChart(ctx context.Context, id, vsCurrency string, days int) (json.RawMessage, error)
}

// TextGenerator produces text for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, cfg entities.GenerationConfig) (*entities.Generation, error)
}
