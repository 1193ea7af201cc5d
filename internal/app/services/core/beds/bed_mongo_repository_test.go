package beds

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"medicore-service/internal/app/contracts"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingCache struct {
	mu        sync.Mutex
	values    map[string]string
	deleted   []string
	deleteErr error
}

func newRecordingCache() *recordingCache {
	return &recordingCache{values: make(map[string]string)}
}

func (c *recordingCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *recordingCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *recordingCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleteErr != nil {
		return c.deleteErr
	}
	delete(c.values, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *recordingCache) TrySetNX(ctx context.Context, key, value string, expiration time.Duration) (bool, error) {
	return true, nil
}

var _ contracts.RedisRepository = (*recordingCache)(nil)

func TestBedMongoRepository_InvalidateAvailability(t *testing.T) {
	t.Run("drops the ward scoped and the kind wide counts", func(t *testing.T) {
		cache := newRecordingCache()
		repo := &BedMongoRepository{Cache: cache, Log: zap.NewNop()}

		repo.invalidateAvailability(context.Background(), "ward", "ward-7")

		require.ElementsMatch(t, []string{
			availabilityCacheKey("ward", ""),
			availabilityCacheKey("ward", "ward-7"),
		}, cache.deleted)
	})

	t.Run("drops only the kind wide count for a bed without a ward", func(t *testing.T) {
		cache := newRecordingCache()
		repo := &BedMongoRepository{Cache: cache, Log: zap.NewNop()}

		repo.invalidateAvailability(context.Background(), "icu", "")

		require.Equal(t, []string{availabilityCacheKey("icu", "")}, cache.deleted)
	})

	t.Run("survives an unreachable cache", func(t *testing.T) {
		cache := newRecordingCache()
		cache.deleteErr = errors.New("redis: connection refused")
		repo := &BedMongoRepository{Cache: cache, Log: zap.NewNop()}

		repo.invalidateAvailability(context.Background(), "ward", "ward-7")

		require.Empty(t, cache.deleted)
	})
}
