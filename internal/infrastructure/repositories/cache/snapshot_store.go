package cache

import (
	"aetherium-service/internal/domain/entities"
	"aetherium-service/internal/domain/interfaces"
	"aetherium-service/internal/infrastructure/logging"
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"
)

// MemorySnapshotStore keeps the coin list snapshot in process. Store swaps the
// pointer, so readers see the old or the new snapshot, never a mix.
type MemorySnapshotStore struct {
	current atomic.Pointer[entities.CoinListSnapshot]
}

var _ interfaces.SnapshotStore = (*MemorySnapshotStore)(nil)

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

func (s *MemorySnapshotStore) Load(ctx context.Context) (*entities.CoinListSnapshot, error) {
	return s.current.Load(), nil
}

func (s *MemorySnapshotStore) Store(ctx context.Context, snapshot *entities.CoinListSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}
	s.current.Store(snapshot)
	return nil
}

// CacheSnapshotStore serializa el snapshot como un único documento JSON en el cache
// compartido, para que varias réplicas usen la misma lista. Se guarda sin TTL: la
// vigencia la decide el resolver con FetchedAt.
//
// La última copia decodificada se mantiene en proceso. Mientras esté dentro de la
// ventana no se toca el backend; al vencer se lee primero la clave fetched_at y el
// documento completo solo se decodifica si otra réplica guardó uno más nuevo.
type CacheSnapshotStore struct {
	backend interfaces.Cache
	key     string
	window  time.Duration
	now     func() time.Time
	local   atomic.Pointer[entities.CoinListSnapshot]
}

var _ interfaces.SnapshotStore = (*CacheSnapshotStore)(nil)

// NewCacheSnapshotStore creates the store. window <= 0 falls back to one hour.
func NewCacheSnapshotStore(backend interfaces.Cache, key string, window time.Duration) *CacheSnapshotStore {
	if window <= 0 {
		window = time.Hour
	}
	return &CacheSnapshotStore{
		backend: backend,
		key:     key,
		window:  window,
		now:     time.Now,
	}
}

func (s *CacheSnapshotStore) fetchedAtKey() string {
	return s.key + ":fetched_at"
}

func (s *CacheSnapshotStore) Load(ctx context.Context) (*entities.CoinListSnapshot, error) {
	local := s.local.Load()
	if local != nil && !local.IsStale(s.now(), s.window) {
		return local, nil
	}

	if local != nil {
		stamp, err := s.backend.Get(ctx, s.fetchedAtKey())
		switch {
		case IsMiss(err):
			return local, nil
		case err != nil:
			// la copia local sigue sirviendo como respaldo
			logging.Cache().CacheError(ctx, logging.CacheOpGet, s.fetchedAtKey(), err)
			return local, nil
		}
		if fetchedAt, parseErr := time.Parse(time.RFC3339Nano, stamp); parseErr == nil && !fetchedAt.After(local.FetchedAt) {
			return local, nil
		}
	}

	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		if IsMiss(err) {
			return local, nil
		}
		return nil, fmt.Errorf("load snapshot %s: %w", s.key, err)
	}

	var snapshot entities.CoinListSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", s.key, err)
	}
	fresh := entities.NewCoinListSnapshot(snapshot.Entries, snapshot.FetchedAt)
	s.local.Store(fresh)
	return fresh, nil
}

// Store escribe primero el documento y después fetched_at, así la marca nunca
// apunta a un documento que no existe.
func (s *CacheSnapshotStore) Store(ctx context.Context, snapshot *entities.CoinListSnapshot) error {
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, string(raw), 0); err != nil {
		return fmt.Errorf("store snapshot %s: %w", s.key, err)
	}
	stamp := snapshot.FetchedAt.UTC().Format(time.RFC3339Nano)
	if err := s.backend.Set(ctx, s.fetchedAtKey(), stamp, 0); err != nil {
		return fmt.Errorf("store snapshot %s: %w", s.fetchedAtKey(), err)
	}
	s.local.Store(snapshot)
	return nil
}
