package services

import (
	"aetherium-service/internal/domain/apperrors"
	"aetherium-service/internal/domain/entities"
	"aetherium-service/internal/domain/interfaces"
	"aetherium-service/internal/infrastructure/logging"
	"aetherium-service/internal/infrastructure/metrics"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultStalenessWindow is how long a coin list snapshot is served before a refresh
	DefaultStalenessWindow = time.Hour

	refreshKey = "coin-list"
)

// symbolResolver maps ticker symbols to CoinGecko ids using a snapshot of the full coin list.
// The snapshot lives in a SnapshotStore; concurrent refreshes collapse into one upstream call.
type symbolResolver struct {
	provider interfaces.CoinListProvider
	store    interfaces.SnapshotStore
	window   time.Duration
	now      func() time.Time
	group    singleflight.Group
}

// NewSymbolResolver creates the resolver. window <= 0 falls back to DefaultStalenessWindow.
func NewSymbolResolver(provider interfaces.CoinListProvider, store interfaces.SnapshotStore, window time.Duration) interfaces.SymbolResolver {
	if window <= 0 {
		window = DefaultStalenessWindow
	}
	return &symbolResolver{
		provider: provider,
		store:    store,
		window:   window,
		now:      time.Now,
	}
}

// Resolve returns the provider id of the first coin list entry whose symbol matches, ignoring case
func (r *symbolResolver) Resolve(ctx context.Context, symbol string) (string, error) {
	symbol = strings.ToLower(strings.TrimSpace(symbol))
	if symbol == "" {
		metrics.RecordSymbolLookup("error")
		return "", fmt.Errorf("%w: symbol is required", apperrors.ErrValidation)
	}

	snapshot, err := r.activeSnapshot(ctx, symbol)
	if err != nil {
		metrics.RecordSymbolLookup("error")
		return "", err
	}

	id, ok := snapshot.Lookup(symbol)
	if !ok {
		metrics.RecordSymbolLookup("not_found")
		logging.Symbols().SymbolNotFound(ctx, symbol, len(snapshot.Entries))
		return "", &apperrors.NotFoundError{Symbol: symbol}
	}

	metrics.RecordSymbolLookup("hit")
	logging.Symbols().SymbolResolved(ctx, symbol, id)
	return id, nil
}

// Refresh replaces the snapshot unconditionally. The previous one is kept on failure.
func (r *symbolResolver) Refresh(ctx context.Context) error {
	_, err := r.refresh(ctx)
	return err
}

// Snapshot returns the stored snapshot without refreshing it; nil when none was fetched yet
func (r *symbolResolver) Snapshot(ctx context.Context) (*entities.CoinListSnapshot, error) {
	return r.load(ctx), nil
}

// Window reports the staleness window in use
func (r *symbolResolver) Window() time.Duration {
	return r.window
}

// activeSnapshot returns a snapshot usable for lookups, refreshing it first when absent or expired
func (r *symbolResolver) activeSnapshot(ctx context.Context, symbol string) (*entities.CoinListSnapshot, error) {
	now := r.now()
	current := r.load(ctx)
	if current != nil && !current.IsStale(now, r.window) {
		metrics.UpdateSnapshot(len(current.Entries), current.Age(now).Seconds())
		return current, nil
	}

	fresh, err := r.refresh(ctx)
	if err == nil {
		return fresh, nil
	}

	if current == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUpstreamUnavailable, err)
	}

	metrics.RecordSnapshotRefresh("stale_fallback")
	age := current.Age(now)
	metrics.UpdateSnapshot(len(current.Entries), age.Seconds())
	logging.Symbols().StaleSnapshotServed(ctx, symbol, age)
	return current, nil
}

// refresh fetches the coin list once for all concurrent callers. The fetch ignores
// the caller's cancellation; the provider timeout bounds it.
func (r *symbolResolver) refresh(ctx context.Context) (*entities.CoinListSnapshot, error) {
	v, err, _ := r.group.Do(refreshKey, func() (interface{}, error) {
		fetchCtx := context.WithoutCancel(ctx)
		start := time.Now()

		entries, err := r.provider.CoinList(fetchCtx)
		if err == nil && len(entries) == 0 {
			err = errors.New("provider returned an empty coin list")
		}
		if err != nil {
			metrics.RecordSnapshotRefresh("error")
			logging.Symbols().SnapshotRefreshFailed(fetchCtx, err, r.load(fetchCtx) != nil)
			return nil, err
		}

		snapshot := entities.NewCoinListSnapshot(entries, r.now())
		if storeErr := r.store.Store(fetchCtx, snapshot); storeErr != nil {
			// el snapshot recién obtenido se sirve igual
			logging.Cache().CacheError(fetchCtx, logging.CacheOpSet, refreshKey, storeErr)
		}

		metrics.RecordSnapshotRefresh("success")
		metrics.UpdateSnapshot(len(entries), 0)
		logging.Symbols().SnapshotRefreshed(fetchCtx, len(entries), time.Since(start))
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entities.CoinListSnapshot), nil
}

// load treats a store failure as "no snapshot"
func (r *symbolResolver) load(ctx context.Context) *entities.CoinListSnapshot {
	snapshot, err := r.store.Load(ctx)
	if err != nil {
		logging.Cache().CacheError(ctx, logging.CacheOpGet, refreshKey, err)
		return nil
	}
	return snapshot
}
