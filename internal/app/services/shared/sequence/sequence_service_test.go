package sequence

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSequenceCode(t *testing.T) {
	t.Run("pads values below ten thousand to four digits", func(t *testing.T) {
		assert.Equal(t, "ADM202401010007", FormatSequenceCode("ADM", "20240101", 7))
		assert.Equal(t, "WL202401010042", FormatSequenceCode("WL", "20240101", 42))
		assert.Equal(t, "OT202412310999", FormatSequenceCode("OT", "20241231", 999))
	})

	t.Run("does not truncate values past the pad width", func(t *testing.T) {
		assert.Equal(t, "ADM2024010112345", FormatSequenceCode("ADM", "20240101", 12345))
	})

	t.Run("distinct days produce distinct codes for the same value", func(t *testing.T) {
		first := FormatSequenceCode("ADM", "20240101", 1)
		second := FormatSequenceCode("ADM", "20240102", 1)
		assert.NotEqual(t, first, second)
	})
}

// counterStore mirrors the findOneAndUpdate $inc upsert the service runs:
// one indivisible increment-and-return per call, first call creating the
// counter at one.
type counterStore struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newCounterStore() *counterStore {
	return &counterStore{counters: make(map[string]int64)}
}

func (s *counterStore) Next(ctx context.Context, kind, dateKey string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := kind + ":" + dateKey
	s.counters[key]++
	return s.counters[key], nil
}

func TestSequence_ConcurrentCallersGetDistinctValues(t *testing.T) {
	const (
		callers        = 16
		callsPerCaller = 25
	)

	store := newCounterStore()
	values := make(chan int64, callers*callsPerCaller)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerCaller; j++ {
				value, err := store.Next(context.Background(), "ADM", "20240101")
				assert.NoError(t, err)
				values <- value
			}
		}()
	}
	wg.Wait()
	close(values)

	seen := make(map[int64]bool)
	for value := range values {
		require.False(t, seen[value], "value %d was handed out twice", value)
		seen[value] = true
	}
	require.Len(t, seen, callers*callsPerCaller)
	for i := int64(1); i <= callers*callsPerCaller; i++ {
		assert.True(t, seen[i], "value %d was skipped", i)
	}

	codes := make(map[string]bool)
	for value := range seen {
		codes[FormatSequenceCode("ADM", "20240101", value)] = true
	}
	assert.Len(t, codes, callers*callsPerCaller)
}
