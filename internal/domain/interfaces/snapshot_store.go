package interfaces

import (
	"context"

	"aetherium-service/internal/domain/entities"
)

// SnapshotStore holds the single current coin-list snapshot. Store replaces
// the previous snapshot as a whole; readers never see a partial write.
type SnapshotStore interface {
	// Load returns the current snapshot, or nil when none has been stored yet.
	Load(ctx context.Context) (*entities.CoinListSnapshot, error)
	Store(ctx context.Context, snapshot *entities.CoinListSnapshot) error
}
