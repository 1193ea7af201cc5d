package beds

import (
	"context"
	"fmt"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/pkg/constvars"
	"medicore-service/internal/pkg/exceptions"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	bedUsecaseInstance contracts.BedUsecase
	onceBedUsecase     sync.Once
)

type bedUsecase struct {
	BedRepository   contracts.BedRepository
	RedisRepository contracts.RedisRepository
	EventPublisher  contracts.EventPublisher
	Log             *zap.Logger
}

func NewBedUsecase(
	bedMongoRepository contracts.BedRepository,
	redisRepository contracts.RedisRepository,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) contracts.BedUsecase {
	onceBedUsecase.Do(func() {
		instance := &bedUsecase{
			BedRepository:   bedMongoRepository,
			RedisRepository: redisRepository,
			EventPublisher:  eventPublisher,
			Log:             logger,
		}
		bedUsecaseInstance = instance
	})
	return bedUsecaseInstance
}

// ReleaseBed is the administrative override used when a patient leaves
// through another part of the system. Idempotent: releasing an available bed
// succeeds without any change.
func (uc *bedUsecase) ReleaseBed(ctx context.Context, bedID string) error {
	existing, err := uc.BedRepository.FindByID(ctx, bedID)
	if err != nil {
		return err
	}
	if existing == nil {
		return exceptions.ErrBedNotFound(nil)
	}

	alreadyAvailable := existing.Status == constvars.BedStatusAvailable

	bed, err := uc.BedRepository.Release(ctx, bedID)
	if err != nil {
		return err
	}
	if bed == nil {
		return exceptions.ErrBedNotFound(fmt.Errorf("bed %s cannot be released from status %s", bedID, existing.Status))
	}

	if alreadyAvailable {
		return nil
	}

	// Fire-and-forget: the release already committed.
	event := &contracts.DispositionEvent{
		ID:         uuid.NewString(),
		Topic:      constvars.EventTopicBedReleased,
		Outcome:    constvars.BedStatusAvailable,
		BedID:      bed.ID,
		OccurredAt: time.Now(),
	}
	if err := uc.EventPublisher.PublishDispositionEvent(ctx, event); err != nil {
		uc.Log.Error("bedUsecase.ReleaseBed failed to publish event",
			zap.String(constvars.LoggingBedIDKey, bed.ID),
			zap.Error(err),
		)
	}
	return nil
}

func (uc *bedUsecase) GetAvailability(ctx context.Context, kind, wardID string) (int64, error) {
	cacheKey := availabilityCacheKey(kind, wardID)
	if cached, err := uc.RedisRepository.Get(ctx, cacheKey); err == nil && cached != "" {
		if count, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			return count, nil
		}
	}

	count, err := uc.BedRepository.CountAvailable(ctx, kind, wardID)
	if err != nil {
		return 0, err
	}

	if err := uc.RedisRepository.Set(ctx, cacheKey, strconv.FormatInt(count, 10), 30*time.Second); err != nil {
		uc.Log.Warn(constvars.ErrDevAvailabilityCacheUnhealthy,
			zap.String(constvars.LoggingRedisKey, cacheKey),
			zap.Error(err),
		)
	}
	return count, nil
}

func availabilityCacheKey(kind, wardID string) string {
	if wardID == "" {
		return constvars.RedisKeyBedAvailabilityPrefix + kind
	}
	return fmt.Sprintf("%s%s:%s", constvars.RedisKeyBedAvailabilityPrefix, kind, wardID)
}
