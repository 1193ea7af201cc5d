package waitlists

import (
	"context"
	"fmt"
	"medicore-service/internal/app/config"
	"medicore-service/internal/app/contracts"
	"medicore-service/internal/app/models"
	"medicore-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Monitor periodically matches pending waitlist entries against beds that
// have since become available. Entries are scanned in priority order and each
// fulfillment is its own small saga, so one stuck entry never blocks the rest.
type Monitor struct {
	log        *zap.Logger
	cfg        *config.InternalConfig
	locker     contracts.LockerService
	waitlists  contracts.WaitlistRepository
	beds       contracts.BedRepository
	admissions contracts.AdmissionRepository
	sequences  contracts.SequenceService
	publisher  contracts.EventPublisher
	stop       chan struct{}
}

func NewMonitor(
	log *zap.Logger,
	cfg *config.InternalConfig,
	lockerSvc contracts.LockerService,
	waitlistRepository contracts.WaitlistRepository,
	bedRepository contracts.BedRepository,
	admissionRepository contracts.AdmissionRepository,
	sequenceService contracts.SequenceService,
	eventPublisher contracts.EventPublisher,
) *Monitor {
	return &Monitor{
		log:        log,
		cfg:        cfg,
		locker:     lockerSvc,
		waitlists:  waitlistRepository,
		beds:       bedRepository,
		admissions: admissionRepository,
		sequences:  sequenceService,
		publisher:  eventPublisher,
		stop:       make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function to halt execution.
func (m *Monitor) Start(ctx context.Context) (stop func()) {
	interval := time.Duration(m.cfg.Disposition.WaitlistMonitorIntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	stopped := make(chan struct{})

	fmt.Println("Waitlist monitor started")

	go func() {
		defer close(stopped)
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-m.stop:
				ticker.Stop()
				return
			case now := <-ticker.C:
				m.runOnce(ctx, now, interval)
			}
		}
	}()

	return func() {
		close(m.stop)
	}
}

func (m *Monitor) runOnce(ctx context.Context, now time.Time, interval time.Duration) {
	m.log.Info("waitlists.monitor.runOnce tick",
		zap.Time("now", now))

	// Acquire best-effort distributed lock
	ttl := interval - 1*time.Second
	if ttl < 1*time.Second {
		ttl = 1 * time.Second
	}
	acquired, lockVal, err := m.locker.TryLock(ctx, constvars.RedisKeyWaitlistMonitorLock, ttl)
	if err != nil {
		m.log.Info("monitor lock attempt failed",
			zap.Error(err))
		return
	}
	if !acquired {
		m.log.Warn("monitor lock not acquired; another instance is running")
		return
	}

	m.log.Info("monitor lock acquired")
	defer func() {
		if err := m.locker.Unlock(ctx, constvars.RedisKeyWaitlistMonitorLock, lockVal); err != nil {
			m.log.Error("monitor unlock failed", zap.Error(err))
		}
	}()

	batch := m.cfg.Disposition.WaitlistMonitorBatchSize
	if batch <= 0 {
		batch = 1
	}
	entries, err := m.waitlists.FindPending(ctx, int64(batch))
	if err != nil {
		m.log.Info("waitlists.FindPending error", zap.Error(err))
		return
	}

	m.log.Info("waitlists.FindPending success", zap.Int("pending_count", len(entries)))

	for i := range entries {
		m.fulfillEntry(ctx, &entries[i])
	}
}

// fulfillEntry tries to move one pending entry into a real admission. The bed
// is reserved first; if the entry CAS then loses, the bed goes straight back,
// so a raced entry costs nothing.
func (m *Monitor) fulfillEntry(ctx context.Context, entry *models.WaitlistEntry) {
	bed, err := m.beds.ReserveAvailable(ctx, entry.RequestedKind, entry.WardID)
	if err != nil {
		m.log.Info("monitor bed reserve failed",
			zap.String(constvars.LoggingWaitlistIDKey, entry.ID),
			zap.Error(err))
		return
	}
	if bed == nil {
		// Nothing free for this kind yet; later entries may want a
		// different kind or ward, so keep scanning.
		return
	}

	admissionCode, err := m.sequences.NextCode(ctx, constvars.SequenceKindAdmission, time.Now())
	if err != nil {
		m.releaseBed(ctx, bed.ID)
		return
	}

	admission := &models.Admission{
		EncounterID:  entry.EncounterID,
		PatientID:    entry.PatientID,
		BedID:        bed.ID,
		SequenceCode: admissionCode,
		Status:       constvars.AdmissionStatusActive,
	}
	admissionID, err := m.admissions.CreateAdmission(ctx, admission)
	if err != nil {
		m.log.Error("monitor admission create failed",
			zap.String(constvars.LoggingWaitlistIDKey, entry.ID),
			zap.Error(err))
		m.releaseBed(ctx, bed.ID)
		return
	}

	occupied, err := m.beds.MarkOccupied(ctx, bed.ID, entry.PatientID)
	if err != nil || occupied == nil {
		m.log.Error("monitor failed to occupy reserved bed",
			zap.String(constvars.LoggingBedIDKey, bed.ID),
			zap.String(constvars.LoggingAdmissionIDKey, admissionID),
			zap.Error(err))
		m.compensate(ctx, admissionID, bed.ID)
		return
	}

	// Commit point. Everything before this is undone when the entry CAS
	// loses; everything after is log-and-continue.
	fulfilled, err := m.waitlists.MarkFulfilled(ctx, entry.ID, admissionID)
	if err != nil || !fulfilled {
		// Another runner or a cancellation got there first.
		m.log.Warn("monitor lost fulfillment race",
			zap.String(constvars.LoggingWaitlistIDKey, entry.ID),
			zap.Error(err))
		m.compensate(ctx, admissionID, bed.ID)
		return
	}

	m.log.Info("waitlist entry fulfilled",
		zap.String(constvars.LoggingWaitlistIDKey, entry.ID),
		zap.String(constvars.LoggingAdmissionIDKey, admissionID),
		zap.String(constvars.LoggingBedIDKey, bed.ID))

	event := &contracts.DispositionEvent{
		ID:              uuid.NewString(),
		Topic:           constvars.EventTopicWaitlistFulfilled,
		EncounterID:     entry.EncounterID,
		PatientID:       entry.PatientID,
		Outcome:         constvars.DispositionOutcomeAdmitted,
		AdmissionID:     admissionID,
		BedID:           bed.ID,
		WaitlistEntryID: entry.ID,
		OccurredAt:      time.Now(),
	}
	if err := m.publisher.PublishDispositionEvent(ctx, event); err != nil {
		m.log.Error(constvars.ErrDevEventPublishFailed,
			zap.String(constvars.LoggingEventIDKey, event.ID),
			zap.String(constvars.LoggingTopicKey, event.Topic),
			zap.Error(err))
	}
}

func (m *Monitor) compensate(ctx context.Context, admissionID, bedID string) {
	if err := m.admissions.MarkOrphaned(ctx, admissionID); err != nil {
		m.log.Error("monitor failed to orphan admission",
			zap.String(constvars.LoggingAdmissionIDKey, admissionID),
			zap.Error(err))
	}
	m.releaseBed(ctx, bedID)
}

func (m *Monitor) releaseBed(ctx context.Context, bedID string) {
	if _, err := m.beds.Release(ctx, bedID); err != nil {
		m.log.Error(constvars.ErrDevCompensationReleaseFailed,
			zap.String(constvars.LoggingBedIDKey, bedID),
			zap.Error(err))
	}
}
