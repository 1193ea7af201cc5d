package beds

import (
	"context"
	"sync"
	"testing"

	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBedRepository struct {
	mu           sync.Mutex
	beds         map[string]*models.Bed
	releaseCalls int
}

func newFakeBedRepository(beds ...*models.Bed) *fakeBedRepository {
	repo := &fakeBedRepository{beds: make(map[string]*models.Bed)}
	for _, bed := range beds {
		repo.beds[bed.ID] = bed
	}
	return repo
}

func (f *fakeBedRepository) FindByID(ctx context.Context, bedID string) (*models.Bed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bed, ok := f.beds[bedID]
	if !ok {
		return nil, nil
	}
	copied := *bed
	return &copied, nil
}

func (f *fakeBedRepository) ReserveAvailable(ctx context.Context, kind, wardID string) (*models.Bed, error) {
	return nil, nil
}

func (f *fakeBedRepository) MarkOccupied(ctx context.Context, bedID, occupantID string) (*models.Bed, error) {
	return nil, nil
}

func (f *fakeBedRepository) Release(ctx context.Context, bedID string) (*models.Bed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bed, ok := f.beds[bedID]
	if !ok || bed.Status == constvars.BedStatusMaintenance {
		return nil, nil
	}
	f.releaseCalls++
	bed.Status = constvars.BedStatusAvailable
	bed.OccupantID = ""
	bed.ReservedAt = nil
	copied := *bed
	return &copied, nil
}

func (f *fakeBedRepository) CountAvailable(ctx context.Context, kind, wardID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, bed := range f.beds {
		if bed.Kind == kind && bed.Status == constvars.BedStatusAvailable {
			count++
		}
	}
	return count, nil
}

var _ contracts.BedRepository = (*fakeBedRepository)(nil)

type capturedEvents struct {
	mu     sync.Mutex
	events []*contracts.DispositionEvent
}

func (c *capturedEvents) PublishDispositionEvent(ctx context.Context, event *contracts.DispositionEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func occupiedBed(id string) *models.Bed {
	return &models.Bed{
		ID:         id,
		BedNumber:  1,
		WardID:     "ward-7",
		Kind:       constvars.BedKindWard,
		Status:     constvars.BedStatusOccupied,
		OccupantID: "patient-1",
	}
}

func newBedUsecaseUnderTest(repo contracts.BedRepository, cache contracts.RedisRepository, sink contracts.EventPublisher) *bedUsecase {
	return &bedUsecase{
		BedRepository:   repo,
		RedisRepository: cache,
		EventPublisher:  sink,
		Log:             zap.NewNop(),
	}
}

func TestBedUsecase_ReleaseBed(t *testing.T) {
	t.Run("returns an occupied bed to the pool and announces it", func(t *testing.T) {
		repo := newFakeBedRepository(occupiedBed("bed-1"))
		sink := &capturedEvents{}
		uc := newBedUsecaseUnderTest(repo, newRecordingCache(), sink)

		err := uc.ReleaseBed(context.Background(), "bed-1")

		require.NoError(t, err)
		bed, _ := repo.FindByID(context.Background(), "bed-1")
		assert.Equal(t, constvars.BedStatusAvailable, bed.Status)
		assert.Empty(t, bed.OccupantID)
		require.Len(t, sink.events, 1)
		assert.Equal(t, constvars.EventTopicBedReleased, sink.events[0].Topic)
		assert.Equal(t, "bed-1", sink.events[0].BedID)
	})

	t.Run("a second release changes nothing and stays silent", func(t *testing.T) {
		repo := newFakeBedRepository(occupiedBed("bed-1"))
		sink := &capturedEvents{}
		uc := newBedUsecaseUnderTest(repo, newRecordingCache(), sink)

		require.NoError(t, uc.ReleaseBed(context.Background(), "bed-1"))
		require.NoError(t, uc.ReleaseBed(context.Background(), "bed-1"))

		bed, _ := repo.FindByID(context.Background(), "bed-1")
		assert.Equal(t, constvars.BedStatusAvailable, bed.Status)
		assert.Len(t, sink.events, 1, "an already available bed must not be announced again")
	})

	t.Run("responds not found for an unknown bed", func(t *testing.T) {
		repo := newFakeBedRepository()
		uc := newBedUsecaseUnderTest(repo, newRecordingCache(), &capturedEvents{})

		err := uc.ReleaseBed(context.Background(), "bed-missing")

		require.Error(t, err)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}
