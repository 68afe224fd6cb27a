package cache

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/ristretto"
	"go.uber.org/zap"

	"waitstats/storage"
)

// Store resolves precomputed wait-times blobs through three layers: a
// ristretto in-memory cache of decoded blobs, a local Backend holding
// raw JSON, and finally a remote fetch. Fetched bodies are persisted
// to the Backend on success.
type Store struct {
	backend      storage.Backend
	fetcher      *Fetcher
	version      string
	cacheEnabled bool
	decodedCache *ristretto.Cache
	logger       *zap.Logger
}

func NewStore(backend storage.Backend, fetcher *Fetcher, version string, cacheEnabled bool, logger *zap.Logger) *Store {
	if version == "" {
		version = DefaultVersion
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	decodedCache, _ := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e4,
		MaxCost:     1 << 26,
		BufferItems: 64,
	})

	return &Store{
		backend:      backend,
		fetcher:      fetcher,
		version:      version,
		cacheEnabled: cacheEnabled,
		decodedCache: decodedCache,
		logger:       logger,
	}
}

// GetWaitTimes returns the precomputed wait times for one agency, day
// and statistic. startTimeStr/endTimeStr optionally restrict the
// statistic to a time-of-day range ("07:00" style); both empty means
// the whole day. Identifier validation happens before any file or
// network access.
func (store *Store) GetWaitTimes(ctx context.Context, agencyID string, d time.Time, statID, startTimeStr, endTimeStr string) (*WaitTimes, error) {
	timeRangePath := TimeRangePath(startTimeStr, endTimeStr)

	cacheKey, err := CachePath(agencyID, d, statID, timeRangePath, store.version)
	if err != nil {
		return nil, err
	}

	if store.cacheEnabled {
		if cached, found := store.decodedCache.Get(cacheKey); found {
			return cached.(*WaitTimes), nil
		}
	}

	buf, err := store.backend.Get(cacheKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		buf, err = store.fetchAndPersist(ctx, agencyID, d, statID, timeRangePath, cacheKey)
	}
	if err != nil {
		return nil, err
	}

	waitTimes, err := decodeWaitTimes(buf)
	if err != nil {
		return nil, err
	}

	if store.cacheEnabled {
		store.decodedCache.Set(cacheKey, waitTimes, int64(len(buf)))
	}

	return waitTimes, nil
}

func (store *Store) fetchAndPersist(ctx context.Context, agencyID string, d time.Time, statID, timeRangePath, cacheKey string) ([]byte, error) {
	remotePath, err := RemotePath(agencyID, d, statID, timeRangePath, store.version)
	if err != nil {
		return nil, err
	}

	buf, err := store.fetcher.Fetch(ctx, remotePath)
	if err != nil {
		return nil, err
	}

	if err := store.backend.Put(cacheKey, buf); err != nil {
		// The fetched blob is still usable; the local cache just
		// missed an update.
		store.logger.Warn("failed to persist wait times to local cache",
			zap.String("key", cacheKey),
			zap.Error(err))
	}

	return buf, nil
}

func (store *Store) Close() error {
	if store.decodedCache != nil {
		store.decodedCache.Close()
	}
	return store.backend.Close()
}
